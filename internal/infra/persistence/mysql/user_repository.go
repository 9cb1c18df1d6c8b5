package mysql

import (
	"context"
	"database/sql"
	"errors"

	domuser "github.com/JoelVR2k/InventoryManager/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	res, err := r.db.ExecContext(ctx, `
        INSERT INTO users (name, email, password_hash, role_code)
        VALUES (?, ?, ?, ?)
    `, u.Name, u.Email, u.PasswordHash, string(u.RoleCode))
	if err != nil {
		return nil, err
	}
	u.ID, _ = res.LastInsertId()
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, email, password_hash, role_code
        FROM users WHERE LOWER(email) = LOWER(?)
    `, email)

	var (
		u    domuser.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
