package redeem_test

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/atlas-card/atlas-api/internal/delegation"
	"github.com/atlas-card/atlas-api/internal/lifecycle"
	"github.com/atlas-card/atlas-api/internal/logger"
	"github.com/atlas-card/atlas-api/internal/mocks"
	"github.com/atlas-card/atlas-api/internal/redeem"
	"github.com/atlas-card/atlas-api/internal/smartaccount"
)

func init() {
	logger.InitLogger("test")
}

var (
	delegator = common.HexToAddress("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	delegate  = common.HexToAddress("0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB")
)

func encodedDelegation(t *testing.T) string {
	t.Helper()
	env, err := delegation.ForChainID(84532)
	require.NoError(t, err)
	token, err := env.Token("USDC")
	require.NoError(t, err)

	unsigned, err := delegation.NewFactory(env).Build(delegation.SpendingScope{
		TokenAddress:   token.Address,
		PeriodAmount:   big.NewInt(100_000000),
		PeriodDuration: 86400,
	}, delegator, delegate)
	require.NoError(t, err)

	encoded, err := delegation.NewCodec().Encode(&delegation.SignedDelegation{
		Delegation: *unsigned,
		Signature:  []byte{0x01, 0x02, 0x03},
	})
	require.NoError(t, err)
	return encoded
}

func newTestExecutor(t *testing.T) (*redeem.Executor, *mocks.MockFeeSource, *mocks.MockBinder, *ecdsa.PrivateKey) {
	t.Helper()
	ctrl := gomock.NewController(t)
	fees := mocks.NewMockFeeSource(ctrl)
	binder := mocks.NewMockBinder(ctrl)

	env, err := delegation.ForChainID(84532)
	require.NoError(t, err)

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)

	newBinder := func(k *ecdsa.PrivateKey, address common.Address) smartaccount.Binder {
		assert.Equal(t, key, k)
		assert.Equal(t, delegate, address, "redemption must run as the delegate account")
		return binder
	}

	executor := redeem.NewExecutor(env, delegation.NewCodec(), fees, newBinder, 30*time.Second, logger.Log)
	return executor, fees, binder, key
}

// The redeem and lifecycle fee interfaces are shape-compatible so the same
// bundler client serves both.
var _ redeem.FeeSource = lifecycle.FeeSource(nil)

func TestExecutor_Redeem(t *testing.T) {
	executor, fees, binder, key := newTestExecutor(t)
	opHash := common.HexToHash("0x3333333333333333333333333333333333333333333333333333333333333333")
	txHash := common.HexToHash("0x4444444444444444444444444444444444444444444444444444444444444444")

	fees.EXPECT().GetUserOperationGasPrice(gomock.Any()).Return(smartaccount.FeeParams{
		MaxFeePerGas:         big.NewInt(1_000_000_000),
		MaxPriorityFeePerGas: big.NewInt(100_000_000),
	}, nil)
	binder.EXPECT().SubmitUserOperation(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, calls []smartaccount.Call, _ smartaccount.FeeParams) (common.Hash, error) {
			require.Len(t, calls, 1)
			env, err := delegation.ForChainID(84532)
			require.NoError(t, err)
			assert.Equal(t, env.DelegationManager, calls[0].To)
			assert.NotEmpty(t, calls[0].Data)
			return opHash, nil
		})
	binder.EXPECT().AwaitReceipt(gomock.Any(), opHash, 30*time.Second).Return(&smartaccount.Receipt{
		UserOpHash:      opHash,
		TransactionHash: txHash,
		Success:         true,
	}, nil)

	got, err := executor.Redeem(context.Background(), encodedDelegation(t), key, "USDC", "25.50")
	require.NoError(t, err)
	assert.Equal(t, txHash, got)
}

func TestExecutor_Redeem_EmptyDelegation(t *testing.T) {
	executor, _, _, key := newTestExecutor(t)

	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := executor.Redeem(context.Background(), input, key, "USDC", "10")
		assert.ErrorIs(t, err, redeem.ErrEmptyDelegation)
	}
}

func TestExecutor_Redeem_CorruptDelegation(t *testing.T) {
	executor, _, _, key := newTestExecutor(t)

	_, err := executor.Redeem(context.Background(), "!!!not-base64!!!", key, "USDC", "10")

	var corruptErr *redeem.CorruptDelegationError
	assert.ErrorAs(t, err, &corruptErr)
}

func TestExecutor_Redeem_UnsupportedToken(t *testing.T) {
	executor, _, _, key := newTestExecutor(t)

	_, err := executor.Redeem(context.Background(), encodedDelegation(t), key, "DOGE", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestExecutor_Redeem_SubmissionRejected(t *testing.T) {
	executor, fees, binder, key := newTestExecutor(t)

	fees.EXPECT().GetUserOperationGasPrice(gomock.Any()).Return(smartaccount.FeeParams{
		MaxFeePerGas:         big.NewInt(1),
		MaxPriorityFeePerGas: big.NewInt(1),
	}, nil)
	binder.EXPECT().SubmitUserOperation(gomock.Any(), gomock.Any(), gomock.Any()).Return(common.Hash{}, errors.New("AA23 reverted"))

	_, err := executor.Redeem(context.Background(), encodedDelegation(t), key, "USDC", "10")

	var redemptionErr *redeem.RedemptionError
	require.ErrorAs(t, err, &redemptionErr)
	assert.Contains(t, redemptionErr.Reason, "submission rejected")
}

func TestExecutor_Redeem_RevertedOnChain(t *testing.T) {
	executor, fees, binder, key := newTestExecutor(t)
	opHash := common.HexToHash("0x5555555555555555555555555555555555555555555555555555555555555555")

	fees.EXPECT().GetUserOperationGasPrice(gomock.Any()).Return(smartaccount.FeeParams{
		MaxFeePerGas:         big.NewInt(1),
		MaxPriorityFeePerGas: big.NewInt(1),
	}, nil)
	binder.EXPECT().SubmitUserOperation(gomock.Any(), gomock.Any(), gomock.Any()).Return(opHash, nil)
	binder.EXPECT().AwaitReceipt(gomock.Any(), opHash, gomock.Any()).Return(&smartaccount.Receipt{
		UserOpHash: opHash,
		Success:    false,
		Reason:     "period transfer amount exceeded",
	}, nil)

	_, err := executor.Redeem(context.Background(), encodedDelegation(t), key, "USDC", "10")

	var redemptionErr *redeem.RedemptionError
	require.ErrorAs(t, err, &redemptionErr)
	assert.Contains(t, redemptionErr.Reason, "exceeded")
}

func TestExecutor_Redeem_ReceiptTimeout(t *testing.T) {
	executor, fees, binder, key := newTestExecutor(t)
	opHash := common.HexToHash("0x6666666666666666666666666666666666666666666666666666666666666666")

	fees.EXPECT().GetUserOperationGasPrice(gomock.Any()).Return(smartaccount.FeeParams{
		MaxFeePerGas:         big.NewInt(1),
		MaxPriorityFeePerGas: big.NewInt(1),
	}, nil)
	binder.EXPECT().SubmitUserOperation(gomock.Any(), gomock.Any(), gomock.Any()).Return(opHash, nil)
	binder.EXPECT().AwaitReceipt(gomock.Any(), opHash, gomock.Any()).Return(nil, smartaccount.ErrReceiptTimeout)

	_, err := executor.Redeem(context.Background(), encodedDelegation(t), key, "USDC", "10")
	assert.ErrorIs(t, err, smartaccount.ErrReceiptTimeout)
}

func TestParseTokenAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int32
		want     *big.Int
		wantErr  bool
	}{
		{name: "whole amount", amount: "100", decimals: 6, want: big.NewInt(100_000000)},
		{name: "fractional amount", amount: "25.50", decimals: 6, want: big.NewInt(25_500000)},
		{name: "full precision", amount: "0.000001", decimals: 6, want: big.NewInt(1)},
		{name: "leading dot", amount: ".5", decimals: 6, want: big.NewInt(500000)},
		{name: "whitespace trimmed", amount: " 1 ", decimals: 6, want: big.NewInt(1_000000)},
		{name: "empty", amount: "", decimals: 6, wantErr: true},
		{name: "too many decimals", amount: "1.0000001", decimals: 6, wantErr: true},
		{name: "not a number", amount: "ten", decimals: 6, wantErr: true},
		{name: "zero", amount: "0", decimals: 6, wantErr: true},
		{name: "negative", amount: "-5", decimals: 6, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := redeem.ParseTokenAmount(tt.amount, tt.decimals)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
