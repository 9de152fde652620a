package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/campus-bookings/internal/apperror"
	"github.com/sakif/campus-bookings/internal/model"
	"github.com/sakif/campus-bookings/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new user and fills in the generated ID and timestamp.
//
// Username uniqueness rides on the UNIQUE constraint rather than a prior
// SELECT: ON CONFLICT DO NOTHING makes the insert a no-op when the name is
// taken, and zero rows affected maps to Conflict. A check-then-insert would
// leave a window where two registrations of the same name both pass the
// check.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	user.CreatedAt = time.Now().UTC()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, is_professor, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(username) DO NOTHING`,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.IsProfessor,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking insert result for user %q: %w", user.Username, err)
	}
	if affected == 0 {
		return apperror.Conflict(fmt.Sprintf("username %q is already taken", user.Username))
	}

	return nil
}

// GetUserByUsername retrieves a user by their unique username.
// Returns apperror.ErrNotFound if no such user exists.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return db.getUser(ctx,
		`SELECT id, username, password_hash, is_professor, created_at
		 FROM users WHERE username = ?`, username)
}

// GetUserByID retrieves a user by their internal ID.
// Returns apperror.ErrNotFound if no such user exists.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return db.getUser(ctx,
		`SELECT id, username, password_hash, is_professor, created_at
		 FROM users WHERE id = ?`, id)
}

func (db *DB) getUser(ctx context.Context, query, key string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx, query, key).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.IsProfessor,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", key)
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", key, err)
	}

	return &u, nil
}

// ListProfessors returns all users with the professor flag set, in insertion
// (rowid) order.
func (db *DB) ListProfessors(ctx context.Context) ([]model.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, username, password_hash, is_professor, created_at
		 FROM users WHERE is_professor = 1 ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing professors: %w", err)
	}
	defer rows.Close()

	professors := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsProfessor, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning professor row: %w", err)
		}
		professors = append(professors, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating professor rows: %w", err)
	}

	return professors, nil
}
