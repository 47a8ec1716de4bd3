package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-board/internal/query"
)

const userColumns = `id, name, email, phone, role, password_hash, status,
	is_verified, is_restricted, is_profile_completed, created_at, updated_at`

func scanUserRow(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.PasswordHash,
		&u.Status, &u.IsVerified, &u.IsRestricted, &u.IsProfileCompleted,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a user and returns its ID. The password is set in a
// second step by UpdatePassword.
func (db *DB) CreateUser(ctx context.Context, name, email, phone, role string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, phone, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		name, email, phone, role,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by ID. Returns nil without an error when absent.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUserRow(row)
}

// GetUserByEmail retrieves a user by email. Returns nil when absent.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUserRow(row)
}

// CheckEmailExists reports whether the email is already registered.
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// UpdatePassword stores a new password hash for the user.
func (db *DB) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// ListUsersPage lists users for the admin moderation view, newest first,
// wrapped in the same pagination envelope the jobs and applications
// listings use. The password hash is excluded at JSON level by the User
// type.
func (db *DB) ListUsersPage(ctx context.Context, pp query.PageParams) (query.Page[User], error) {
	var total int
	err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total)
	if err != nil {
		return query.Page[User]{}, fmt.Errorf("failed to count users: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		pp.Limit, pp.Offset(),
	)
	if err != nil {
		return query.Page[User]{}, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.PasswordHash,
			&u.Status, &u.IsVerified, &u.IsRestricted, &u.IsProfileCompleted,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return query.Page[User]{}, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return query.Page[User]{}, fmt.Errorf("failed to list users: %w", err)
	}

	return query.NewPage(users, total, pp.Page, pp.Limit), nil
}

// UpdateUserProfile applies the non-nil self-service fields.
func (db *DB) UpdateUserProfile(ctx context.Context, id uuid.UUID, input UserProfileUpdate) error {
	var sets []string
	var args []any
	argIndex := 1

	set := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if input.Name != nil {
		set("name", *input.Name)
	}
	if input.Phone != nil {
		set("phone", *input.Phone)
	}
	if input.IsProfileCompleted != nil {
		set("is_profile_completed", *input.IsProfileCompleted)
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	sql := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(sets, ", "), argIndex)

	if _, err := db.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	return nil
}

// UpdateUserModeration applies the admin-only moderation flags.
func (db *DB) UpdateUserModeration(ctx context.Context, id uuid.UUID, input UserModerationUpdate) error {
	var sets []string
	var args []any
	argIndex := 1

	set := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if input.Status != nil {
		set("status", *input.Status)
	}
	if input.IsRestricted != nil {
		set("is_restricted", *input.IsRestricted)
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	sql := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(sets, ", "), argIndex)

	if _, err := db.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to update user moderation flags: %w", err)
	}
	return nil
}
