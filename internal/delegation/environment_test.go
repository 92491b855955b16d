package delegation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas-card/atlas-api/internal/delegation"
)

func TestForChainID(t *testing.T) {
	env, err := delegation.ForChainID(84532)
	require.NoError(t, err)
	assert.Equal(t, uint64(84532), env.ChainID)
	assert.NotEqual(t, delegation.Environment{}.DelegationManager, env.DelegationManager)

	_, err = delegation.ForChainID(1)
	assert.Error(t, err)
}

func TestEnvironment_Token(t *testing.T) {
	env, err := delegation.ForChainID(84532)
	require.NoError(t, err)

	upper, err := env.Token("USDC")
	require.NoError(t, err)
	lower, err := env.Token("usdc")
	require.NoError(t, err)
	assert.Equal(t, upper, lower)
	assert.EqualValues(t, 6, upper.Decimals)

	_, err = env.Token("DOGE")
	assert.Error(t, err)
}
