package delegation

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// TokenInfo describes an ERC-20 token supported for spending scopes on a
// given chain.
type TokenInfo struct {
	Address  common.Address
	Decimals int32
}

// Environment carries the per-chain contract addresses the delegation
// framework needs: the manager that validates and disables delegations, the
// caveat enforcer for periodic ERC-20 transfers, and the account-abstraction
// entry point the bundler submits against.
type Environment struct {
	ChainID                     uint64
	DelegationManager           common.Address
	ERC20PeriodTransferEnforcer common.Address
	EntryPoint                  common.Address
	Tokens                      map[string]TokenInfo
}

// Token resolves a token symbol (case-insensitive) against the environment's
// registry.
func (e *Environment) Token(symbol string) (TokenInfo, error) {
	info, ok := e.Tokens[strings.ToUpper(symbol)]
	if !ok {
		return TokenInfo{}, fmt.Errorf("token %q is not supported on chain %d", symbol, e.ChainID)
	}
	return info, nil
}

var environments = map[uint64]*Environment{
	// Base Sepolia
	84532: {
		ChainID:                     84532,
		DelegationManager:           common.HexToAddress("0xdb9B1e94B5b69Df7e401DDbedE43491141047dB3"),
		ERC20PeriodTransferEnforcer: common.HexToAddress("0x474e3Ae7E169e940607cC624Da8A15Eb120139aB"),
		EntryPoint:                  common.HexToAddress("0x0000000071727De22E5E9d8BAf0edAc6f37da032"),
		Tokens: map[string]TokenInfo{
			"USDC": {
				Address:  common.HexToAddress("0xb4aE654Aca577781Ca1c5DE8FbE60c2F423f37da"),
				Decimals: 6,
			},
		},
	},
}

// ForChainID returns the environment for the given chain, or an error when
// the chain is not configured.
func ForChainID(chainID uint64) (*Environment, error) {
	env, ok := environments[chainID]
	if !ok {
		return nil, fmt.Errorf("no delegation environment configured for chain %d", chainID)
	}
	return env, nil
}
