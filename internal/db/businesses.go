package db

import (
	"context"
)

const getBusinessByWallet = `
SELECT id, name, wallet, description, logo, banner, callback_url, country, created_at, updated_at
FROM businesses
WHERE wallet = $1
`

func (q *Queries) GetBusinessByWallet(ctx context.Context, wallet string) (Business, error) {
	row := q.db.QueryRow(ctx, getBusinessByWallet, wallet)
	var b Business
	err := row.Scan(&b.ID, &b.Name, &b.Wallet, &b.Description, &b.Logo, &b.Banner, &b.CallbackUrl, &b.Country, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

const listBusinesses = `
SELECT id, name, wallet, description, logo, banner, callback_url, country, created_at, updated_at
FROM businesses
ORDER BY created_at DESC
`

func (q *Queries) ListBusinesses(ctx context.Context) ([]Business, error) {
	rows, err := q.db.Query(ctx, listBusinesses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Business
	for rows.Next() {
		var b Business
		if err := rows.Scan(&b.ID, &b.Name, &b.Wallet, &b.Description, &b.Logo, &b.Banner, &b.CallbackUrl, &b.Country, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

const createBusiness = `
INSERT INTO businesses (name, wallet, description, logo, banner, callback_url, country)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, name, wallet, description, logo, banner, callback_url, country, created_at, updated_at
`

type CreateBusinessParams struct {
	Name        string
	Wallet      string
	Description string
	Logo        string
	Banner      string
	CallbackUrl string
	Country     string
}

func (q *Queries) CreateBusiness(ctx context.Context, arg CreateBusinessParams) (Business, error) {
	row := q.db.QueryRow(ctx, createBusiness,
		arg.Name, arg.Wallet, arg.Description, arg.Logo, arg.Banner, arg.CallbackUrl, arg.Country)
	var b Business
	err := row.Scan(&b.ID, &b.Name, &b.Wallet, &b.Description, &b.Logo, &b.Banner, &b.CallbackUrl, &b.Country, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

const updateBusiness = `
UPDATE businesses
SET name = COALESCE(NULLIF($2, ''), name),
    description = COALESCE(NULLIF($3, ''), description),
    logo = COALESCE(NULLIF($4, ''), logo),
    banner = COALESCE(NULLIF($5, ''), banner),
    updated_at = now()
WHERE wallet = $1
RETURNING id, name, wallet, description, logo, banner, callback_url, country, created_at, updated_at
`

type UpdateBusinessParams struct {
	Wallet      string
	Name        string
	Description string
	Logo        string
	Banner      string
}

func (q *Queries) UpdateBusiness(ctx context.Context, arg UpdateBusinessParams) (Business, error) {
	row := q.db.QueryRow(ctx, updateBusiness,
		arg.Wallet, arg.Name, arg.Description, arg.Logo, arg.Banner)
	var b Business
	err := row.Scan(&b.ID, &b.Name, &b.Wallet, &b.Description, &b.Logo, &b.Banner, &b.CallbackUrl, &b.Country, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

const deleteBusiness = `
DELETE FROM businesses
WHERE wallet = $1
`

func (q *Queries) DeleteBusiness(ctx context.Context, wallet string) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteBusiness, wallet)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
