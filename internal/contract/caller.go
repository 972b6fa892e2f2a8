package contract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/nickisanders/CPEService/internal/provider"
	"github.com/nickisanders/CPEService/internal/signer"
)

// receiptPollInterval is how often Transact polls for the mined receipt.
const receiptPollInterval = 500 * time.Millisecond

// MethodCaller binds a minimal ABI fragment to a contract address and a
// backend, optionally with a signer for write calls. Before any call the
// target method is checked against the parsed fragment, so a wrong
// address/ABI combination fails with a descriptive error instead of a
// generic unpack failure.
type MethodCaller struct {
	address common.Address
	abi     abi.ABI
	backend provider.Backend
	signer  signer.Signer
	logger  *zap.Logger
}

// NewMethodCaller parses the ABI fragment and binds it to the contract
// address. The signer may be nil for read-only use.
func NewMethodCaller(
	address common.Address,
	abiJSON string,
	backend provider.Backend,
	s signer.Signer,
	logger *zap.Logger,
) (*MethodCaller, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}

	return &MethodCaller{
		address: address,
		abi:     parsed,
		backend: backend,
		signer:  s,
		logger:  logger,
	}, nil
}

// Address returns the bound contract address.
func (c *MethodCaller) Address() common.Address {
	return c.address
}

// Call executes a read-only contract call and returns the unpacked
// output values.
func (c *MethodCaller) Call(ctx context.Context, method string, args ...any) ([]any, error) {
	input, err := c.pack(method, args)
	if err != nil {
		return nil, err
	}

	msg := ethereum.CallMsg{To: &c.address, Data: input}
	output, err := c.backend.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call to %s failed: %w", method, err)
	}

	values, err := c.abi.Unpack(method, output)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}

	return values, nil
}

// Transact submits a state-changing contract call, waits for it to be
// mined, and returns the receipt verbatim. A receipt with status 0 is a
// valid result: interpreting the execution status is left to the caller.
func (c *MethodCaller) Transact(ctx context.Context, method string, args ...any) (*types.Receipt, error) {
	if c.signer == nil {
		return nil, signer.ErrNoSigner
	}

	input, err := c.pack(method, args)
	if err != nil {
		return nil, err
	}

	from := c.signer.Address()

	chainID, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chain ID: %w", err)
	}

	nonce, err := c.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nonce for %s: %w", from.Hex(), err)
	}

	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gas price: %w", err)
	}

	msg := ethereum.CallMsg{From: from, To: &c.address, GasPrice: gasPrice, Data: input}
	gasLimit, err := c.backend.EstimateGas(ctx, msg)
	if err != nil {
		// Estimation failures carry the revert reason; pass it through.
		return nil, fmt.Errorf("failed to estimate gas for %s: %w", method, err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       &c.address,
		Data:     input,
	})

	signed, err := c.signer.SignTransaction(ctx, tx, chainID)
	if err != nil {
		return nil, err
	}

	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("failed to send %s transaction: %w", method, err)
	}

	c.logger.Info("Submitted contract transaction",
		zap.String("method", method),
		zap.String("contract", c.address.Hex()),
		zap.String("hash", signed.Hash().Hex()))

	return c.waitMined(ctx, signed.Hash())
}

// waitMined polls for the receipt of the given transaction until it is
// mined or the context is cancelled.
func (c *MethodCaller) waitMined(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(ctx, txHash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("failed to retrieve receipt for %s: %w", txHash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// pack verifies the method exists on the bound fragment, normalizes the
// arguments, and ABI-encodes the call.
func (c *MethodCaller) pack(method string, args []any) ([]byte, error) {
	m, ok := c.abi.Methods[method]
	if !ok {
		return nil, fmt.Errorf("function %q not found on contract %s: check the address and ABI", method, c.address.Hex())
	}

	normalized, err := normalizeArgs(m, args)
	if err != nil {
		return nil, fmt.Errorf("invalid arguments for %s: %w", method, err)
	}

	input, err := c.abi.Pack(method, normalized...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s call: %w", method, err)
	}

	return input, nil
}
