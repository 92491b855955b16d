package delegation

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDelegator = common.HexToAddress("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	testDelegate  = common.HexToAddress("0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB")
)

func testFactory(t *testing.T) (*Factory, *Environment) {
	t.Helper()
	env, err := ForChainID(84532)
	require.NoError(t, err)
	return NewFactory(env), env
}

func usdcScope(t *testing.T, env *Environment) SpendingScope {
	t.Helper()
	token, err := env.Token("USDC")
	require.NoError(t, err)
	return SpendingScope{
		TokenAddress:   token.Address,
		PeriodAmount:   big.NewInt(100_000000), // 100 USDC at 6 decimals
		PeriodDuration: 86400,
	}
}

func TestFactory_Build(t *testing.T) {
	factory, env := testFactory(t)
	now := time.Unix(1_700_000_000, 0)
	factory.now = func() time.Time { return now }

	scope := usdcScope(t, env)
	d, err := factory.Build(scope, testDelegator, testDelegate)
	require.NoError(t, err)

	assert.Equal(t, testDelegator, d.Delegator)
	assert.Equal(t, testDelegate, d.Delegate)
	assert.Equal(t, RootAuthority, d.Authority)
	require.NotNil(t, d.Salt)

	require.Len(t, d.Caveats, 1)
	caveat := d.Caveats[0]
	assert.Equal(t, env.ERC20PeriodTransferEnforcer, caveat.Enforcer)
	assert.Empty(t, caveat.Args)

	// token (20) || amount || duration || start (32-byte words)
	require.Len(t, caveat.Terms, 20+3*32)
	assert.Equal(t, scope.TokenAddress.Bytes(), []byte(caveat.Terms[:20]))
	assert.Equal(t, big.NewInt(100_000000), new(big.Int).SetBytes(caveat.Terms[20:52]))
	assert.Equal(t, big.NewInt(86400), new(big.Int).SetBytes(caveat.Terms[52:84]))
	assert.Equal(t, now.Unix(), new(big.Int).SetBytes(caveat.Terms[84:]).Int64())
}

func TestFactory_Build_FreshSalts(t *testing.T) {
	factory, env := testFactory(t)
	scope := usdcScope(t, env)

	first, err := factory.Build(scope, testDelegator, testDelegate)
	require.NoError(t, err)
	second, err := factory.Build(scope, testDelegator, testDelegate)
	require.NoError(t, err)

	assert.NotEqual(t, first.Salt.ToInt(), second.Salt.ToInt(),
		"two delegations over the same scope must not collide")
}

func TestFactory_Build_ExplicitStartDate(t *testing.T) {
	factory, env := testFactory(t)
	now := time.Unix(1_700_000_000, 0)
	factory.now = func() time.Time { return now }

	scope := usdcScope(t, env)
	scope.StartDate = uint64(now.Add(time.Hour).Unix())

	d, err := factory.Build(scope, testDelegator, testDelegate)
	require.NoError(t, err)
	assert.Equal(t, int64(scope.StartDate), new(big.Int).SetBytes(d.Caveats[0].Terms[84:]).Int64())
}

func TestFactory_Build_InvalidScopes(t *testing.T) {
	factory, env := testFactory(t)
	now := time.Unix(1_700_000_000, 0)
	factory.now = func() time.Time { return now }

	tests := []struct {
		name      string
		mutate    func(s *SpendingScope)
		delegator common.Address
		delegate  common.Address
		reason    string
	}{
		{
			name:      "nil amount",
			mutate:    func(s *SpendingScope) { s.PeriodAmount = nil },
			delegator: testDelegator,
			delegate:  testDelegate,
			reason:    "period amount",
		},
		{
			name:      "zero amount",
			mutate:    func(s *SpendingScope) { s.PeriodAmount = big.NewInt(0) },
			delegator: testDelegator,
			delegate:  testDelegate,
			reason:    "period amount",
		},
		{
			name:      "negative amount",
			mutate:    func(s *SpendingScope) { s.PeriodAmount = big.NewInt(-1) },
			delegator: testDelegator,
			delegate:  testDelegate,
			reason:    "period amount",
		},
		{
			name:      "zero duration",
			mutate:    func(s *SpendingScope) { s.PeriodDuration = 0 },
			delegator: testDelegator,
			delegate:  testDelegate,
			reason:    "period duration",
		},
		{
			name:      "delegator equals delegate",
			mutate:    func(s *SpendingScope) {},
			delegator: testDelegator,
			delegate:  testDelegator,
			reason:    "must differ",
		},
		{
			name:      "zero token address",
			mutate:    func(s *SpendingScope) { s.TokenAddress = common.Address{} },
			delegator: testDelegator,
			delegate:  testDelegate,
			reason:    "token address",
		},
		{
			name: "backdated start",
			mutate: func(s *SpendingScope) {
				s.StartDate = uint64(now.Add(-time.Hour).Unix())
			},
			delegator: testDelegator,
			delegate:  testDelegate,
			reason:    "too far in the past",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := usdcScope(t, env)
			tt.mutate(&scope)

			d, err := factory.Build(scope, tt.delegator, tt.delegate)
			assert.Nil(t, d)
			require.Error(t, err)

			var scopeErr *InvalidScopeError
			require.ErrorAs(t, err, &scopeErr)
			assert.Contains(t, scopeErr.Reason, tt.reason)
		})
	}
}

func TestFactory_Build_ClockSkewTolerated(t *testing.T) {
	factory, env := testFactory(t)
	now := time.Unix(1_700_000_000, 0)
	factory.now = func() time.Time { return now }

	scope := usdcScope(t, env)
	scope.StartDate = uint64(now.Add(-time.Minute).Unix())

	_, err := factory.Build(scope, testDelegator, testDelegate)
	assert.NoError(t, err)
}
