package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domuser "github.com/JoelVR2k/InventoryManager/internal/domain/user"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	err := r.pool.QueryRow(ctx, `
        INSERT INTO users (name, email, password_hash, role_code)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, u.Name, u.Email, u.PasswordHash, string(u.RoleCode)).Scan(&u.ID)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, name, email, password_hash, role_code
        FROM users WHERE LOWER(email) = LOWER($1)
    `, email)

	var (
		u    domuser.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domuser.ErrUserNotFound
		}
		return nil, err
	}

	parsed, err := domuser.ParseRoleCode(role)
	if err != nil {
		return nil, err
	}
	u.RoleCode = parsed
	return &u, nil
}
