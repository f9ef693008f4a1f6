// Package user implements account persistence and role checks for the
// moderation surface.
package user

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/neuroblog/neuroblog/pkg/storage"
)

// Roles. Every agent operation requires RoleAdmin.
const (
	RoleAdmin  = "admin"
	RoleReader = "reader"
)

// Schema is the SQLite schema for users.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'reader',
    created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// User is an account in the blog system.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
}

// IsAdmin reports whether the user may call moderation operations.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Store provides user persistence.
type Store struct {
	db *storage.DB
}

// NewStore creates a new user store.
func NewStore(db *storage.DB) *Store {
	return &Store{db: db}
}

// Create inserts a new user with a bcrypt-hashed password.
func (s *Store) Create(ctx context.Context, email, password, role string) (int64, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if role == "" {
		role = RoleReader
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, role) VALUES (?, ?, ?)`,
		email, string(hash), role)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// GetByEmail finds a user by email. Returns (nil, nil) when absent.
func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role FROM users WHERE email = ?`, email)
	u := &User{}
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// GetByID finds a user by id. Returns (nil, nil) when absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role FROM users WHERE id = ?`, id)
	u := &User{}
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// CheckPassword verifies a candidate password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
