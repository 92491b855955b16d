package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getUserByEmail = `
SELECT id, email, encrypted_private_key, created_at, updated_at
FROM users
WHERE email = $1
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.EncryptedPrivateKey, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const createUser = `
INSERT INTO users (email, encrypted_private_key)
VALUES ($1, $2)
RETURNING id, email, encrypted_private_key, created_at, updated_at
`

type CreateUserParams struct {
	Email               string
	EncryptedPrivateKey pgtype.Text
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser, arg.Email, arg.EncryptedPrivateKey)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.EncryptedPrivateKey, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const updateUserEncryptedKey = `
UPDATE users
SET encrypted_private_key = $2, updated_at = now()
WHERE email = $1
RETURNING id, email, encrypted_private_key, created_at, updated_at
`

type UpdateUserEncryptedKeyParams struct {
	Email               string
	EncryptedPrivateKey pgtype.Text
}

func (q *Queries) UpdateUserEncryptedKey(ctx context.Context, arg UpdateUserEncryptedKeyParams) (User, error) {
	row := q.db.QueryRow(ctx, updateUserEncryptedKey, arg.Email, arg.EncryptedPrivateKey)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.EncryptedPrivateKey, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
