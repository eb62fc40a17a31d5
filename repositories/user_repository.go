package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fysikteknologsektionen/ftek-login/models"
)

// ErrUserNotFound is returned when no user matches the lookup
var ErrUserNotFound = errors.New("user not found")

// UserRepository interface defines user database operations
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListWithRefreshToken(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	GetRoles(ctx context.Context, userID int64) (models.RoleSet, error)
	AddRole(ctx context.Context, userID int64, role string) error
	RemoveRole(ctx context.Context, userID int64, role string) error
	SaveProfile(ctx context.Context, user *models.User, addRoles, removeRoles []string) error
	Count(ctx context.Context) (int, error)
}

// userRepository implements UserRepository interface
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, login, email, password_hash, first_name, last_name, display_name,
		       picture, is_oauth_user, refresh_token, registered_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var refreshToken sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Login,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.DisplayName,
		&user.Picture,
		&user.IsOAuthUser,
		&refreshToken,
		&user.RegisteredAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Convert NULL values to empty string/nil
	if refreshToken.Valid {
		user.RefreshToken = refreshToken.String
	}
	if updatedAt.Valid {
		user.UpdatedAt = &updatedAt.Time
	}

	return &user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user with ID %d: %w", id, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.Roles, err = r.GetRoles(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByEmail retrieves a user by exact email address
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user with email %s: %w", email, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.Roles, err = r.GetRoles(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// ListWithRefreshToken retrieves every user holding a stored refresh token
func (r *userRepository) ListWithRefreshToken(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE refresh_token IS NOT NULL AND refresh_token != ''
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// Create inserts a new user and sets its ID
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (login, email, password_hash, first_name, last_name, display_name,
		                   picture, is_oauth_user, refresh_token, registered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if user.RegisteredAt.IsZero() {
		user.RegisteredAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx, query,
		user.Login,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.DisplayName,
		user.Picture,
		user.IsOAuthUser,
		nullString(user.RefreshToken),
		user.RegisteredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get user ID: %w", err)
	}

	user.ID = id
	return nil
}

// Update writes the profile fields and refresh token of an existing user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return updateUser(ctx, r.db, user)
}

// SaveProfile writes the profile of user and applies the role changes in a
// single transaction
func (r *userRepository) SaveProfile(ctx context.Context, user *models.User, addRoles, removeRoles []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// updated_at is only kept on the model once the transaction commits
	updatedAt := user.UpdatedAt
	if err := saveProfile(ctx, tx, user, addRoles, removeRoles); err != nil {
		user.UpdatedAt = updatedAt
		return err
	}
	if err := tx.Commit(); err != nil {
		user.UpdatedAt = updatedAt
		return fmt.Errorf("failed to commit profile: %w", err)
	}
	return nil
}

func saveProfile(ctx context.Context, tx *sql.Tx, user *models.User, addRoles, removeRoles []string) error {
	if err := updateUser(ctx, tx, user); err != nil {
		return err
	}
	for _, role := range removeRoles {
		if err := removeRole(ctx, tx, user.ID, role); err != nil {
			return err
		}
	}
	for _, role := range addRoles {
		if err := addRole(ctx, tx, user.ID, role); err != nil {
			return err
		}
	}
	return nil
}

// execer is satisfied by *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func updateUser(ctx context.Context, ex execer, user *models.User) error {
	query := `
		UPDATE users
		SET first_name = ?, last_name = ?, display_name = ?, picture = ?,
		    is_oauth_user = ?, refresh_token = ?, updated_at = ?
		WHERE id = ?
	`

	now := time.Now().UTC()
	result, err := ex.ExecContext(ctx, query,
		user.FirstName,
		user.LastName,
		user.DisplayName,
		user.Picture,
		user.IsOAuthUser,
		nullString(user.RefreshToken),
		now,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user with ID %d: %w", user.ID, ErrUserNotFound)
	}

	user.UpdatedAt = &now
	return nil
}

// GetRoles retrieves the roles held by a user
func (r *userRepository) GetRoles(ctx context.Context, userID int64) (models.RoleSet, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role FROM user_roles WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user roles: %w", err)
	}
	defer rows.Close()

	roles := models.NewRoleSet()
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("failed to scan user role: %w", err)
		}
		roles.Add(role)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user roles: %w", err)
	}

	return roles, nil
}

// AddRole grants a role, ignoring roles the user already holds
func (r *userRepository) AddRole(ctx context.Context, userID int64, role string) error {
	return addRole(ctx, r.db, userID, role)
}

// RemoveRole revokes a role
func (r *userRepository) RemoveRole(ctx context.Context, userID int64, role string) error {
	return removeRole(ctx, r.db, userID, role)
}

func addRole(ctx context.Context, ex execer, userID int64, role string) error {
	_, err := ex.ExecContext(ctx, `INSERT OR IGNORE INTO user_roles (user_id, role) VALUES (?, ?)`, userID, role)
	if err != nil {
		return fmt.Errorf("failed to add role %s: %w", role, err)
	}
	return nil
}

func removeRole(ctx context.Context, ex execer, userID int64, role string) error {
	_, err := ex.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = ? AND role = ?`, userID, role)
	if err != nil {
		return fmt.Errorf("failed to remove role %s: %w", role, err)
	}
	return nil
}

// Count returns the total number of users
func (r *userRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
