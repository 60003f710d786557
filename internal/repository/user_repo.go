package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"usersvc/internal/model"
	"usersvc/pkg/metrics"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// List returns every user in insertion order.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("list", "users", time.Since(start)) }()

	query := `
        SELECT id, name, email, password
        FROM users
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// Create inserts a new user and fills in the assigned id.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("create", "users", time.Since(start)) }()

	query := `
        INSERT INTO users (name, email, password)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	return r.db.QueryRow(ctx, query, u.Name, u.Email, u.Password).Scan(&u.ID)
}

// GetByID returns the user for id, or pgx.ErrNoRows if absent.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("get_by_id", "users", time.Since(start)) }()

	query := `
        SELECT id, name, email, password
        FROM users
        WHERE id = $1
    `
	var u model.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Password,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Update overwrites every non-id field of the row.
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("update", "users", time.Since(start)) }()

	query := `
        UPDATE users
        SET name = $1, email = $2, password = $3
        WHERE id = $4
    `
	_, err := r.db.Exec(ctx, query, u.Name, u.Email, u.Password, u.ID)
	return err
}

// Delete removes the row for id.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("delete", "users", time.Since(start)) }()

	query := `DELETE FROM users WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
