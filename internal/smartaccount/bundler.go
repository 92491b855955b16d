package smartaccount

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
)

// ErrReceiptTimeout is returned when a user operation receipt did not appear
// within the caller's budget. The operation may still land later; state is
// whatever was last durably committed.
var ErrReceiptTimeout = errors.New("timed out waiting for user operation receipt")

// BundlerClient talks JSON-RPC to the bundler/paymaster pipeline
// (Pimlico-compatible endpoints).
type BundlerClient struct {
	rpc        *rpc.Client
	entryPoint common.Address
}

// NewBundlerClient dials the bundler endpoint.
func NewBundlerClient(ctx context.Context, url string, entryPoint common.Address) (*BundlerClient, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial bundler")
	}
	return &BundlerClient{rpc: client, entryPoint: entryPoint}, nil
}

// NewBundlerClientWithRPC wraps an existing RPC client; used by tests.
func NewBundlerClientWithRPC(client *rpc.Client, entryPoint common.Address) *BundlerClient {
	return &BundlerClient{rpc: client, entryPoint: entryPoint}
}

// Close releases the underlying connection.
func (c *BundlerClient) Close() {
	c.rpc.Close()
}

type gasPriceTier struct {
	MaxFeePerGas         *hexutil.Big `json:"maxFeePerGas"`
	MaxPriorityFeePerGas *hexutil.Big `json:"maxPriorityFeePerGas"`
}

type gasPriceResult struct {
	Slow     gasPriceTier `json:"slow"`
	Standard gasPriceTier `json:"standard"`
	Fast     gasPriceTier `json:"fast"`
}

// GetUserOperationGasPrice fetches a fresh fee quote and returns the fast
// tier. Gas price volatility makes stale quotes likely to fail or overpay,
// so callers request a quote per submission.
func (c *BundlerClient) GetUserOperationGasPrice(ctx context.Context) (FeeParams, error) {
	var result gasPriceResult
	if err := c.rpc.CallContext(ctx, &result, "pimlico_getUserOperationGasPrice"); err != nil {
		return FeeParams{}, errors.Wrap(err, "failed to fetch user operation gas price")
	}
	if result.Fast.MaxFeePerGas == nil || result.Fast.MaxPriorityFeePerGas == nil {
		return FeeParams{}, errors.New("bundler returned an incomplete gas price quote")
	}
	return FeeParams{
		MaxFeePerGas:         result.Fast.MaxFeePerGas.ToInt(),
		MaxPriorityFeePerGas: result.Fast.MaxPriorityFeePerGas.ToInt(),
	}, nil
}

type GasEstimate struct {
	CallGasLimit         *hexutil.Big `json:"callGasLimit"`
	VerificationGasLimit *hexutil.Big `json:"verificationGasLimit"`
	PreVerificationGas   *hexutil.Big `json:"preVerificationGas"`
}

// EstimateUserOperationGas asks the bundler for gas limits for the given
// operation.
func (c *BundlerClient) EstimateUserOperationGas(ctx context.Context, op *UserOperation) (GasEstimate, error) {
	var result GasEstimate
	if err := c.rpc.CallContext(ctx, &result, "eth_estimateUserOperationGas", op, c.entryPoint); err != nil {
		return GasEstimate{}, errors.Wrap(err, "failed to estimate user operation gas")
	}
	return result, nil
}

// SendUserOperation submits the operation and returns its hash. A returned
// hash means the bundler accepted the operation, not that it was mined.
func (c *BundlerClient) SendUserOperation(ctx context.Context, op *UserOperation) (common.Hash, error) {
	var hash common.Hash
	if err := c.rpc.CallContext(ctx, &hash, "eth_sendUserOperation", op, c.entryPoint); err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to send user operation")
	}
	return hash, nil
}

// GetNonce reads the sender's entry point nonce (key 0) via eth_call.
func (c *BundlerClient) GetNonce(ctx context.Context, sender common.Address) (*hexutil.Big, error) {
	// getNonce(address,uint192)
	data := make([]byte, 0, 4+64)
	data = append(data, 0x35, 0x56, 0x7e, 0x1a)
	data = append(data, common.LeftPadBytes(sender.Bytes(), 32)...)
	data = append(data, make([]byte, 32)...)

	var result hexutil.Big
	err := c.rpc.CallContext(ctx, &result, "eth_call", map[string]interface{}{
		"to":   c.entryPoint,
		"data": hexutil.Bytes(data),
	}, "latest")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read entry point nonce")
	}
	return &result, nil
}

type userOpReceipt struct {
	UserOpHash common.Hash `json:"userOpHash"`
	Success    bool        `json:"success"`
	Reason     string      `json:"reason"`
	Receipt    struct {
		TransactionHash common.Hash `json:"transactionHash"`
	} `json:"receipt"`
}

// GetUserOperationReceipt returns the receipt for a user operation, or nil
// when it has not been included yet.
func (c *BundlerClient) GetUserOperationReceipt(ctx context.Context, userOpHash common.Hash) (*Receipt, error) {
	var raw *userOpReceipt
	if err := c.rpc.CallContext(ctx, &raw, "eth_getUserOperationReceipt", userOpHash); err != nil {
		return nil, errors.Wrap(err, "failed to fetch user operation receipt")
	}
	if raw == nil {
		return nil, nil
	}
	return &Receipt{
		UserOpHash:      raw.UserOpHash,
		TransactionHash: raw.Receipt.TransactionHash,
		Success:         raw.Success,
		Reason:          raw.Reason,
	}, nil
}

// AwaitReceipt polls for the receipt with exponential backoff until the
// timeout elapses. On timeout it returns ErrReceiptTimeout; the caller must
// not assume either success or failure.
func (c *BundlerClient) AwaitReceipt(ctx context.Context, userOpHash common.Hash, timeout time.Duration) (*Receipt, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 2 * time.Second
	policy.MaxInterval = 15 * time.Second
	policy.MaxElapsedTime = timeout

	var receipt *Receipt
	operation := func() error {
		r, err := c.GetUserOperationReceipt(ctx, userOpHash)
		if err != nil {
			return backoff.Permanent(err)
		}
		if r == nil {
			return errors.New("receipt not available yet")
		}
		receipt = r
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		if receipt == nil {
			var permanent *backoff.PermanentError
			if errors.As(err, &permanent) {
				return nil, permanent.Err
			}
			return nil, ErrReceiptTimeout
		}
	}
	return receipt, nil
}
