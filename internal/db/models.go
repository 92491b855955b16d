package db

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// User is an authenticated identity plus its encrypted signing key material.
// The plaintext key never touches this table.
type User struct {
	ID                  uuid.UUID
	Email               string
	EncryptedPrivateKey pgtype.Text
	CreatedAt           pgtype.Timestamptz
	UpdatedAt           pgtype.Timestamptz
}

// Business is a registered recipient app, looked up by wallet address when
// creating an authorization.
type Business struct {
	ID          uuid.UUID
	Name        string
	Wallet      string
	Description string
	Logo        string
	Banner      string
	CallbackUrl string
	Country     string
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

// UserAuthorization is one stored spending authorization: the encoded signed
// delegation plus the tuple identifying it. Rows are created and deleted,
// never updated in place.
type UserAuthorization struct {
	ID                  uuid.UUID
	UserEmail           string
	SmartAccountAddress string
	BusinessWallet      string
	BusinessName        string
	Delegation          string
	CreatedAt           pgtype.Timestamptz
	UpdatedAt           pgtype.Timestamptz
}
