package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the profile of every OpenID user once",
		Long: `Exchanges the stored refresh token of every OpenID user and updates
their name, email and picture from the provider. Users whose refresh
fails are skipped and listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.services.Refresh.RefreshAll(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s: refreshed %d of %d users\n", report.RunID, report.Refreshed, report.Total)
			for _, skipped := range report.Skipped {
				fmt.Fprintf(out, "  skipped %s: %v\n", skipped.Email, skipped.Err)
			}
			return nil
		},
	}
}
