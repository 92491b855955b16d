package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/atlas-card/atlas-api/internal/db"
	"github.com/atlas-card/atlas-api/internal/delegation"
	"github.com/atlas-card/atlas-api/internal/helpers"
	"github.com/atlas-card/atlas-api/internal/smartaccount"
)

// FeeSource quotes user operation gas prices. Quotes are requested fresh
// per submission.
type FeeSource interface {
	GetUserOperationGasPrice(ctx context.Context) (smartaccount.FeeParams, error)
}

// Manager orchestrates the authorization lifecycle: creating a signed,
// scoped delegation and storing it; revoking it on chain and removing the
// stored record; and answering "is this recipient authorized". All
// dependencies are injected at construction; the per-user signer arrives
// with each request.
type Manager struct {
	queries db.Querier
	factory *delegation.Factory
	codec   *delegation.Codec
	env     *delegation.Environment
	fees    FeeSource
	logger  *zap.Logger
}

// NewManager creates a lifecycle manager.
func NewManager(queries db.Querier, factory *delegation.Factory, codec *delegation.Codec, env *delegation.Environment, fees FeeSource, logger *zap.Logger) *Manager {
	return &Manager{
		queries: queries,
		factory: factory,
		codec:   codec,
		env:     env,
		fees:    fees,
		logger:  logger,
	}
}

// AuthorizeParams carries one create request. Binder signs for the user's
// smart account, which becomes the delegator.
type AuthorizeParams struct {
	UserEmail      string
	Binder         smartaccount.Binder
	BusinessWallet common.Address
	BusinessName   string
	Scope          delegation.SpendingScope
}

// Authorize builds, signs, encodes and stores a delegation for the given
// recipient. Creation has no on-chain footprint, so any failure before the
// store write leaves nothing behind and the whole flow is safe to retry
// (each retry draws a fresh salt). A storage conflict surfaces as
// ErrDuplicateAuthorization, never as silent success.
func (m *Manager) Authorize(ctx context.Context, p AuthorizeParams) (*db.UserAuthorization, error) {
	unsigned, err := m.factory.Build(p.Scope, p.Binder.Address(), p.BusinessWallet)
	if err != nil {
		return nil, err
	}

	signature, err := p.Binder.SignDelegation(ctx, unsigned)
	if err != nil {
		return nil, fmt.Errorf("failed during authorize-sign: %w", err)
	}

	signed := &delegation.SignedDelegation{
		Delegation: *unsigned,
		Signature:  signature,
	}

	encoded, err := m.codec.Encode(signed)
	if err != nil {
		return nil, fmt.Errorf("failed during authorize-encode: %w", err)
	}

	record, err := m.queries.CreateUserAuthorization(ctx, db.CreateUserAuthorizationParams{
		UserEmail:           p.UserEmail,
		SmartAccountAddress: helpers.NormalizeAddress(p.Binder.Address()),
		BusinessWallet:      helpers.NormalizeAddress(p.BusinessWallet),
		BusinessName:        p.BusinessName,
		Delegation:          encoded,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicateAuthorization
		}
		return nil, fmt.Errorf("failed during authorize-store: %w", err)
	}

	m.logger.Info("Authorization created",
		zap.String("user_email", p.UserEmail),
		zap.String("business_wallet", record.BusinessWallet),
		zap.String("smart_account", record.SmartAccountAddress))

	return &record, nil
}

// RevokeParams identifies the authorization to revoke; Binder signs the
// on-chain disable for the delegator smart account.
type RevokeParams struct {
	UserEmail      string
	Binder         smartaccount.Binder
	BusinessWallet common.Address
}

// Revoke disables the stored delegation on chain, then deletes the record.
// The ordering is deliberate: a failed submit leaves the record (and the
// authorization) intact for a clean retry, while a failed delete after a
// successful submit returns RevokeStoreError so the caller knows the chain
// side effect already happened. Retrying the delete alone is idempotent.
func (m *Manager) Revoke(ctx context.Context, p RevokeParams) error {
	record, err := m.queries.GetUserAuthorization(ctx, db.GetUserAuthorizationParams{
		UserEmail:           p.UserEmail,
		BusinessWallet:      helpers.NormalizeAddress(p.BusinessWallet),
		SmartAccountAddress: helpers.NormalizeAddress(p.Binder.Address()),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAuthorizationNotFound
		}
		return fmt.Errorf("failed during revoke-lookup: %w", err)
	}

	signed, err := m.codec.Decode(record.Delegation)
	if err != nil {
		return &CorruptRecordError{Err: err}
	}

	disableData, err := delegation.EncodeDisableDelegation(signed)
	if err != nil {
		return fmt.Errorf("failed during revoke-encode: %w", err)
	}

	fee, err := m.fees.GetUserOperationGasPrice(ctx)
	if err != nil {
		return fmt.Errorf("failed during revoke-fee-quote: %w", err)
	}

	opHash, err := p.Binder.SubmitUserOperation(ctx, []smartaccount.Call{
		{To: m.env.DelegationManager, Data: disableData},
	}, fee)
	if err != nil {
		return fmt.Errorf("failed during revoke-submit: %w", err)
	}

	m.logger.Info("Delegation disable submitted",
		zap.String("user_email", p.UserEmail),
		zap.String("business_wallet", record.BusinessWallet),
		zap.String("user_op_hash", opHash.Hex()))

	if _, err := m.queries.DeleteUserAuthorization(ctx, db.DeleteUserAuthorizationParams{
		UserEmail:           p.UserEmail,
		BusinessWallet:      record.BusinessWallet,
		SmartAccountAddress: record.SmartAccountAddress,
	}); err != nil {
		// The delegation is dead on chain but still listed. Surfaced
		// distinctly so the caller retries only the delete.
		m.logger.Error("Failed during revoke-store-delete; record remains after on-chain disable",
			zap.String("user_email", p.UserEmail),
			zap.String("business_wallet", record.BusinessWallet),
			zap.String("user_op_hash", opHash.Hex()),
			zap.Error(err))
		return &RevokeStoreError{UserOpHash: opHash, Err: err}
	}

	m.logger.Info("Authorization revoked",
		zap.String("user_email", p.UserEmail),
		zap.String("business_wallet", record.BusinessWallet))

	return nil
}

// ListFilters narrows a listing to one recipient wallet and/or one smart
// account.
type ListFilters struct {
	BusinessWallet      *common.Address
	SmartAccountAddress *common.Address
}

// List returns the user's stored authorizations, newest first.
func (m *Manager) List(ctx context.Context, userEmail string, filters ListFilters) ([]db.UserAuthorization, error) {
	params := db.ListUserAuthorizationsParams{UserEmail: userEmail}
	if filters.BusinessWallet != nil {
		params.BusinessWallet = pgtype.Text{String: helpers.NormalizeAddress(*filters.BusinessWallet), Valid: true}
	}
	if filters.SmartAccountAddress != nil {
		params.SmartAccountAddress = pgtype.Text{String: helpers.NormalizeAddress(*filters.SmartAccountAddress), Valid: true}
	}

	records, err := m.queries.ListUserAuthorizations(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list authorizations: %w", err)
	}
	return records, nil
}

// IsAuthorized reports whether the user holds any stored authorization for
// the given recipient. This is a store read only; it can go stale relative
// to a disable performed outside this service.
func (m *Manager) IsAuthorized(ctx context.Context, userEmail string, businessWallet common.Address) (bool, error) {
	records, err := m.List(ctx, userEmail, ListFilters{BusinessWallet: &businessWallet})
	if err != nil {
		return false, err
	}
	return len(records) > 0, nil
}
