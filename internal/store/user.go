package store

import (
	"context"
	"errors"
	"fmt"

	"blog-server/internal/database"
	"blog-server/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, name, password_hash, role, attributes, created_at`

func scanUser(row scanner) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.Role,
		&u.Attributes,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE email = $1`,
		email,
	)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("GetUserByEmail: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

// CreateUser 寫入新使用者；email 已存在時回傳 created=false 且不寫入
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, bool, error) {
	u.ID = newID()
	u.Attributes = attributesOrEmpty(u.Attributes)
	row := db.QueryRow(ctx,
		`INSERT INTO users (id, email, name, password_hash, role, attributes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING created_at`,
		u.ID,
		u.Email,
		u.Name,
		u.PasswordHash,
		u.Role,
		u.Attributes,
	)
	if err := row.Scan(&u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("CreateUser: %w", err)
	}
	return u, true, nil
}

func ListUsers(ctx context.Context, db database.DB) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}
