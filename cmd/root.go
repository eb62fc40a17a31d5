package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/fysikteknologsektionen/ftek-login/services"
)

// Exit codes for CLI commands
const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
	// ExitCodeNotConfigured means the OpenID settings are incomplete
	ExitCodeNotConfigured = 2
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ftek-login",
	Short: "OpenID Connect login for the Ftek site",
	Long: `ftek-login signs users in through an OpenID Connect provider,
creates local accounts for admitted email addresses and keeps their
profiles in sync with the provider.`,
	SilenceUsage: true,
}

// SetVersion sets the version reported by --version
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "ftek-login version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(getExitCode(err))
	}
}

func getExitCode(err error) int {
	var cfgErr *services.ConfigurationError
	if errors.As(err, &cfgErr) {
		return ExitCodeNotConfigured
	}
	return ExitCodeError
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newRefreshCmd())
	rootCmd.AddCommand(newMigrateCmd())
}
