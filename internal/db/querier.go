package db

import (
	"context"
)

// Querier is the query interface implemented by Queries. Services depend on
// this so tests can substitute a mock.
type Querier interface {
	GetUserByEmail(ctx context.Context, email string) (User, error)
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	UpdateUserEncryptedKey(ctx context.Context, arg UpdateUserEncryptedKeyParams) (User, error)

	GetBusinessByWallet(ctx context.Context, wallet string) (Business, error)
	ListBusinesses(ctx context.Context) ([]Business, error)
	CreateBusiness(ctx context.Context, arg CreateBusinessParams) (Business, error)
	UpdateBusiness(ctx context.Context, arg UpdateBusinessParams) (Business, error)
	DeleteBusiness(ctx context.Context, wallet string) (int64, error)

	CreateUserAuthorization(ctx context.Context, arg CreateUserAuthorizationParams) (UserAuthorization, error)
	ListUserAuthorizations(ctx context.Context, arg ListUserAuthorizationsParams) ([]UserAuthorization, error)
	GetUserAuthorization(ctx context.Context, arg GetUserAuthorizationParams) (UserAuthorization, error)
	DeleteUserAuthorization(ctx context.Context, arg DeleteUserAuthorizationParams) (int64, error)
}

var _ Querier = (*Queries)(nil)
