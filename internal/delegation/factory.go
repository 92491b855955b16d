package delegation

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var zeroAddress common.Address

// backdateTolerance is how far in the past a scope's start date may sit
// before it is rejected as backdated rather than treated as clock skew.
const backdateTolerance = 5 * time.Minute

// Factory builds unsigned delegations from a spending scope. It is pure with
// respect to chain state: nothing is signed or submitted here.
type Factory struct {
	env *Environment
	now func() time.Time
}

// NewFactory creates a delegation factory bound to a chain environment.
func NewFactory(env *Environment) *Factory {
	return &Factory{env: env, now: time.Now}
}

// Build constructs an unsigned delegation granting delegate a periodic
// ERC-20 spending allowance from delegator. Every call draws a fresh random
// salt, so two delegations over the same scope and pair never collide.
func (f *Factory) Build(scope SpendingScope, delegator, delegate common.Address) (*Delegation, error) {
	if scope.PeriodAmount == nil || scope.PeriodAmount.Sign() <= 0 {
		return nil, &InvalidScopeError{Reason: "period amount must be positive"}
	}
	if scope.PeriodDuration == 0 {
		return nil, &InvalidScopeError{Reason: "period duration must be positive"}
	}
	if delegator == delegate {
		return nil, &InvalidScopeError{Reason: "delegator and delegate must differ"}
	}
	if scope.TokenAddress == zeroAddress {
		return nil, &InvalidScopeError{Reason: "token address is required"}
	}

	now := f.now()
	startDate := scope.StartDate
	if startDate == 0 {
		startDate = uint64(now.Unix())
	} else if int64(startDate) < now.Add(-backdateTolerance).Unix() {
		return nil, &InvalidScopeError{Reason: "start date is too far in the past"}
	}

	salt, err := randomSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate delegation salt: %w", err)
	}

	return &Delegation{
		Delegate:  delegate,
		Delegator: delegator,
		Authority: RootAuthority,
		Caveats: []Caveat{
			{
				Enforcer: f.env.ERC20PeriodTransferEnforcer,
				Terms:    periodTransferTerms(scope.TokenAddress, scope.PeriodAmount, scope.PeriodDuration, startDate),
				Args:     hexutil.Bytes{},
			},
		},
		Salt: salt,
	}, nil
}

// periodTransferTerms packs the enforcer terms the way the on-chain
// ERC20PeriodTransferEnforcer expects:
// token address (20 bytes) || period amount || period duration || start date
// (three 32-byte words).
func periodTransferTerms(token common.Address, amount *big.Int, duration, start uint64) hexutil.Bytes {
	terms := make([]byte, 0, 20+3*32)
	terms = append(terms, token.Bytes()...)
	terms = append(terms, common.LeftPadBytes(amount.Bytes(), 32)...)
	terms = append(terms, common.LeftPadBytes(new(big.Int).SetUint64(duration).Bytes(), 32)...)
	terms = append(terms, common.LeftPadBytes(new(big.Int).SetUint64(start).Bytes(), 32)...)
	return terms
}

func randomSalt() (*hexutil.Big, error) {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, err
	}
	return (*hexutil.Big)(new(big.Int).SetBytes(buf[:])), nil
}
