package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/behaviormetrics/capture-api/internal/model"
)

// UserRepository persists and looks up identity records.
type UserRepository interface {
	// Create inserts a new user and fills in the generated ID.
	// A duplicate username surfaces the driver's unique-constraint
	// error unchanged so callers (and the global error handler) can
	// map it.
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// GetByID returns the user with the given ID, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// GetByUsername returns the user with the given username, or ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// GetByCredentials returns the user matching both username and
	// stored password exactly, or ErrNotFound.
	GetByCredentials(ctx context.Context, username, password string) (*model.User, error)
}

// SQLiteUserRepository implements UserRepository over database/sql.
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository constructs a UserRepository backed by db.
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

func (r *SQLiteUserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	query := `INSERT INTO users (username, password, created_at)
	          VALUES (?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, user.Username, user.Password, user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading inserted user id: %w", err)
	}
	user.ID = id

	return user, nil
}

func (r *SQLiteUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT id, username, password, created_at FROM users WHERE id = ?`

	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Username, &user.Password, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying user by id: %w", err)
	}

	return user, nil
}

func (r *SQLiteUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT id, username, password, created_at FROM users WHERE username = ?`

	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.Password, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying user by username: %w", err)
	}

	return user, nil
}

func (r *SQLiteUserRepository) GetByCredentials(ctx context.Context, username, password string) (*model.User, error) {
	query := `SELECT id, username, password, created_at FROM users
	          WHERE username = ? AND password = ?`

	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, username, password).
		Scan(&user.ID, &user.Username, &user.Password, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying user by credentials: %w", err)
	}

	return user, nil
}
