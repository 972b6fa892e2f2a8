package provider

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/nickisanders/CPEService/internal/model"
)

// ChainReader defines the read operations the query layer needs from a
// blockchain node. Lookups for entities that do not exist on chain return
// (nil, nil) rather than an error.
type ChainReader interface {
	// BlockNumber retrieves the latest block number.
	BlockNumber(ctx context.Context) (uint64, error)

	// BlockByIdentifier retrieves a block by decimal number, 0x-hex
	// quantity, 32-byte hash, or tag (latest/pending/earliest).
	BlockByIdentifier(ctx context.Context, identifier string) (*model.Block, error)

	// TransactionByHash retrieves a transaction by its hash. Pending
	// transactions are returned with nil block linkage.
	TransactionByHash(ctx context.Context, hash string) (*model.Transaction, error)

	// TransactionReceipt retrieves the receipt of a mined transaction.
	TransactionReceipt(ctx context.Context, hash string) (*model.Receipt, error)

	// Balance retrieves an account balance in wei.
	Balance(ctx context.Context, address string) (*big.Int, error)

	// GasPrice retrieves the node's suggested gas price in wei.
	GasPrice(ctx context.Context) (*big.Int, error)

	// Network identifies the connected chain.
	Network(ctx context.Context) (*model.Network, error)

	// TransactionCount retrieves the pending nonce for an account.
	TransactionCount(ctx context.Context, address string) (uint64, error)
}

// Backend is the subset of the Ethereum client surface the contract
// invocation layer depends on. *ethclient.Client satisfies it.
type Backend interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	ChainID(ctx context.Context) (*big.Int, error)
}
