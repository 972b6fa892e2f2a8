package provider

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/nickisanders/CPEService/internal/config"
	"github.com/nickisanders/CPEService/internal/model"
)

// chainNames maps well-known chain IDs to display names.
var chainNames = map[uint64]string{
	1:        "mainnet",
	5:        "goerli",
	10:       "optimism",
	137:      "polygon",
	1337:     "localhost",
	8453:     "base",
	17000:    "holesky",
	31337:    "localhost",
	42161:    "arbitrum",
	11155111: "sepolia",
}

// EthereumProvider implements the ChainReader interface over a JSON-RPC
// Ethereum node.
type EthereumProvider struct {
	config *config.EthereumConfig
	client *ethclient.Client
	logger *zap.Logger
}

// NewEthereumProvider creates a new Ethereum provider.
func NewEthereumProvider(config *config.EthereumConfig, logger *zap.Logger) *EthereumProvider {
	return &EthereumProvider{
		config: config,
		logger: logger,
	}
}

// Connect establishes the connection to the Ethereum node.
func (e *EthereumProvider) Connect(ctx context.Context) error {
	var err error

	e.client, err = ethclient.DialContext(ctx, e.config.NodeURL)
	if err != nil {
		return fmt.Errorf("failed to connect to Ethereum node: %w", err)
	}

	e.logger.Info("Connected to Ethereum node",
		zap.String("node_url", e.config.NodeURL))

	return nil
}

// Close closes the connection to the Ethereum node.
func (e *EthereumProvider) Close() error {
	if e.client != nil {
		e.client.Close()
	}

	e.logger.Info("Disconnected from Ethereum node")
	return nil
}

// Client exposes the underlying ethclient for components that need the
// full Backend surface (contract calls and transactions).
func (e *EthereumProvider) Client() *ethclient.Client {
	return e.client
}

// BlockNumber retrieves the latest block number.
func (e *EthereumProvider) BlockNumber(ctx context.Context) (uint64, error) {
	blockNumber, err := e.client.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch latest block number: %w", err)
	}

	return blockNumber, nil
}

// BlockByIdentifier retrieves a block by number, hash, or tag and converts
// it to the simplified model.Block. Returns nil when no such block exists.
func (e *EthereumProvider) BlockByIdentifier(ctx context.Context, identifier string) (*model.Block, error) {
	var (
		ethBlock *types.Block
		err      error
	)

	if isBlockHash(identifier) {
		ethBlock, err = e.client.BlockByHash(ctx, common.HexToHash(identifier))
	} else {
		var number *big.Int
		number, err = parseBlockNumber(identifier)
		if err != nil {
			return nil, err
		}
		ethBlock, err = e.client.BlockByNumber(ctx, number)
	}

	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch block %s: %w", identifier, err)
	}

	txHashes := make([]string, len(ethBlock.Transactions()))
	for i, tx := range ethBlock.Transactions() {
		txHashes[i] = tx.Hash().Hex()
	}

	return &model.Block{
		Number:       ethBlock.NumberU64(),
		Hash:         ethBlock.Hash().Hex(),
		ParentHash:   ethBlock.ParentHash().Hex(),
		Timestamp:    ethBlock.Time(),
		Miner:        ethBlock.Coinbase().Hex(),
		GasLimit:     ethBlock.GasLimit(),
		GasUsed:      ethBlock.GasUsed(),
		BaseFee:      ethBlock.BaseFee(),
		Transactions: txHashes,
	}, nil
}

// TransactionByHash retrieves a transaction and converts it to the
// simplified model.Transaction. Returns nil when no such transaction
// exists; pending transactions come back with nil block linkage.
func (e *EthereumProvider) TransactionByHash(ctx context.Context, hash string) (*model.Transaction, error) {
	txHash := common.HexToHash(hash)
	tx, isPending, err := e.client.TransactionByHash(ctx, txHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transaction %s: %w", hash, err)
	}

	from, err := e.txSender(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to get sender for transaction %s: %w", hash, err)
	}

	transaction := &model.Transaction{
		Hash:    tx.Hash().Hex(),
		From:    from,
		Value:   tx.Value(),
		Gas:     tx.Gas(),
		Nonce:   tx.Nonce(),
		Data:    "0x" + common.Bytes2Hex(tx.Data()),
		ChainID: tx.ChainId(),
	}

	if to := tx.To(); to != nil {
		hex := to.Hex()
		transaction.To = &hex
	}

	if tx.Type() == types.DynamicFeeTxType {
		transaction.MaxFeePerGas = tx.GasFeeCap()
		transaction.MaxPriorityFeePerGas = tx.GasTipCap()
	} else {
		transaction.GasPrice = tx.GasPrice()
	}

	if !isPending {
		receipt, err := e.client.TransactionReceipt(ctx, txHash)
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("failed to retrieve receipt for transaction %s: %w", hash, err)
		}
		if receipt != nil {
			blockHash := receipt.BlockHash.Hex()
			transaction.BlockNumber = receipt.BlockNumber
			transaction.BlockHash = &blockHash
		}
	}

	return transaction, nil
}

// TransactionReceipt retrieves the receipt for a mined transaction and
// converts it to the simplified model.Receipt. Returns nil when the
// transaction is unknown or not yet mined.
func (e *EthereumProvider) TransactionReceipt(ctx context.Context, hash string) (*model.Receipt, error) {
	txHash := common.HexToHash(hash)
	receipt, err := e.client.TransactionReceipt(ctx, txHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve receipt for transaction %s: %w", hash, err)
	}

	tx, _, err := e.client.TransactionByHash(ctx, txHash)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", hash, err)
	}

	from, err := e.txSender(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to get sender for transaction %s: %w", hash, err)
	}

	result := &model.Receipt{
		TransactionHash:   receipt.TxHash.Hex(),
		BlockNumber:       receipt.BlockNumber,
		BlockHash:         receipt.BlockHash.Hex(),
		From:              from,
		CumulativeGasUsed: receipt.CumulativeGasUsed,
		GasUsed:           receipt.GasUsed,
		Status:            receipt.Status,
		Logs:              make([]model.Log, 0, len(receipt.Logs)),
	}

	if to := tx.To(); to != nil {
		hex := to.Hex()
		result.To = &hex
	}

	if receipt.ContractAddress != (common.Address{}) {
		addr := receipt.ContractAddress.Hex()
		result.ContractAddress = &addr
	}

	for _, log := range receipt.Logs {
		topics := make([]string, len(log.Topics))
		for i, topic := range log.Topics {
			topics[i] = topic.Hex()
		}
		result.Logs = append(result.Logs, model.Log{
			Address: log.Address.Hex(),
			Topics:  topics,
			Data:    "0x" + common.Bytes2Hex(log.Data),
			Index:   log.Index,
		})
	}

	return result, nil
}

// Balance retrieves the wei balance of an account at the latest block.
func (e *EthereumProvider) Balance(ctx context.Context, address string) (*big.Int, error) {
	balance, err := e.client.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balance for %s: %w", address, err)
	}

	return balance, nil
}

// GasPrice retrieves the node's suggested gas price in wei.
func (e *EthereumProvider) GasPrice(ctx context.Context) (*big.Int, error) {
	gasPrice, err := e.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gas price: %w", err)
	}

	return gasPrice, nil
}

// Network identifies the connected chain by its chain ID.
func (e *EthereumProvider) Network(ctx context.Context) (*model.Network, error) {
	chainID, err := e.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chain ID: %w", err)
	}

	name := "unknown"
	if n, ok := chainNames[chainID.Uint64()]; ok {
		name = n
	}

	return &model.Network{Name: name, ChainID: chainID}, nil
}

// TransactionCount retrieves the pending nonce for an account.
func (e *EthereumProvider) TransactionCount(ctx context.Context, address string) (uint64, error) {
	nonce, err := e.client.PendingNonceAt(ctx, common.HexToAddress(address))
	if err != nil {
		return 0, fmt.Errorf("failed to fetch transaction count for %s: %w", address, err)
	}

	return nonce, nil
}

// txSender recovers the sender address of a transaction.
func (e *EthereumProvider) txSender(ctx context.Context, tx *types.Transaction) (string, error) {
	chainID, err := e.client.ChainID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch chain ID: %w", err)
	}

	from, err := types.Sender(types.LatestSignerForChainID(chainID), tx)
	if err != nil {
		return "", err
	}

	return from.Hex(), nil
}

// isBlockHash reports whether the identifier looks like a 32-byte block
// hash rather than a block number.
func isBlockHash(identifier string) bool {
	return strings.HasPrefix(identifier, "0x") && len(identifier) == 2+2*common.HashLength
}

// parseBlockNumber turns a tag, decimal, or 0x-hex identifier into the
// *big.Int form ethclient expects (nil means latest).
func parseBlockNumber(identifier string) (*big.Int, error) {
	switch identifier {
	case "", "latest":
		return nil, nil
	case "pending":
		return big.NewInt(-1), nil
	case "earliest":
		return big.NewInt(0), nil
	}

	base := 10
	digits := identifier
	if strings.HasPrefix(identifier, "0x") {
		base = 16
		digits = identifier[2:]
	}

	number, ok := new(big.Int).SetString(digits, base)
	if !ok || number.Sign() < 0 {
		return nil, fmt.Errorf("invalid block identifier %q", identifier)
	}

	return number, nil
}
