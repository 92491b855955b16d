package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createUserAuthorization = `
INSERT INTO user_authorizations (user_email, smart_account_address, business_wallet, business_name, delegation)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, user_email, smart_account_address, business_wallet, business_name, delegation, created_at, updated_at
`

type CreateUserAuthorizationParams struct {
	UserEmail           string
	SmartAccountAddress string
	BusinessWallet      string
	BusinessName        string
	Delegation          string
}

// CreateUserAuthorization inserts a new authorization row. The compound
// unique index on (user_email, business_wallet, smart_account_address)
// rejects a second live authorization for the same tuple; callers detect
// that with IsUniqueViolation.
func (q *Queries) CreateUserAuthorization(ctx context.Context, arg CreateUserAuthorizationParams) (UserAuthorization, error) {
	row := q.db.QueryRow(ctx, createUserAuthorization,
		arg.UserEmail, arg.SmartAccountAddress, arg.BusinessWallet, arg.BusinessName, arg.Delegation)
	var a UserAuthorization
	err := row.Scan(&a.ID, &a.UserEmail, &a.SmartAccountAddress, &a.BusinessWallet, &a.BusinessName, &a.Delegation, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

const listUserAuthorizations = `
SELECT id, user_email, smart_account_address, business_wallet, business_name, delegation, created_at, updated_at
FROM user_authorizations
WHERE user_email = $1
  AND ($2::text IS NULL OR business_wallet = $2)
  AND ($3::text IS NULL OR smart_account_address = $3)
ORDER BY created_at DESC
`

type ListUserAuthorizationsParams struct {
	UserEmail           string
	BusinessWallet      pgtype.Text
	SmartAccountAddress pgtype.Text
}

// ListUserAuthorizations returns the caller's authorizations newest first,
// optionally narrowed to one recipient wallet or one smart account. Every
// query is scoped by user email.
func (q *Queries) ListUserAuthorizations(ctx context.Context, arg ListUserAuthorizationsParams) ([]UserAuthorization, error) {
	rows, err := q.db.Query(ctx, listUserAuthorizations,
		arg.UserEmail, arg.BusinessWallet, arg.SmartAccountAddress)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []UserAuthorization
	for rows.Next() {
		var a UserAuthorization
		if err := rows.Scan(&a.ID, &a.UserEmail, &a.SmartAccountAddress, &a.BusinessWallet, &a.BusinessName, &a.Delegation, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

const getUserAuthorization = `
SELECT id, user_email, smart_account_address, business_wallet, business_name, delegation, created_at, updated_at
FROM user_authorizations
WHERE user_email = $1
  AND business_wallet = $2
  AND smart_account_address = $3
`

type GetUserAuthorizationParams struct {
	UserEmail           string
	BusinessWallet      string
	SmartAccountAddress string
}

func (q *Queries) GetUserAuthorization(ctx context.Context, arg GetUserAuthorizationParams) (UserAuthorization, error) {
	row := q.db.QueryRow(ctx, getUserAuthorization,
		arg.UserEmail, arg.BusinessWallet, arg.SmartAccountAddress)
	var a UserAuthorization
	err := row.Scan(&a.ID, &a.UserEmail, &a.SmartAccountAddress, &a.BusinessWallet, &a.BusinessName, &a.Delegation, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

const deleteUserAuthorization = `
DELETE FROM user_authorizations
WHERE user_email = $1
  AND business_wallet = $2
  AND smart_account_address = $3
`

type DeleteUserAuthorizationParams struct {
	UserEmail           string
	BusinessWallet      string
	SmartAccountAddress string
}

// DeleteUserAuthorization removes the authorization for the given tuple and
// returns the number of rows removed. Deleting a tuple that does not exist
// is not an error; it simply reports zero rows, which keeps the operation
// idempotent for revoke retries.
func (q *Queries) DeleteUserAuthorization(ctx context.Context, arg DeleteUserAuthorizationParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteUserAuthorization,
		arg.UserEmail, arg.BusinessWallet, arg.SmartAccountAddress)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
