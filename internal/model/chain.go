package model

import (
	"math/big"
)

// Block represents a simplified view of an Ethereum block.
type Block struct {
	Number       uint64   `json:"number"`
	Hash         string   `json:"hash"`
	ParentHash   string   `json:"parent_hash"`
	Timestamp    uint64   `json:"timestamp"`
	Miner        string   `json:"miner"`
	GasLimit     uint64   `json:"gas_limit"`
	GasUsed      uint64   `json:"gas_used"`
	BaseFee      *big.Int `json:"base_fee,omitempty"`
	Transactions []string `json:"transactions"`
}

// Transaction represents a simplified model of an Ethereum transaction.
// BlockNumber and BlockHash are nil while the transaction is pending.
// Either GasPrice or the two EIP-1559 fee fields are populated, depending
// on the transaction type.
type Transaction struct {
	Hash                 string   `json:"hash"`
	From                 string   `json:"from"`
	To                   *string  `json:"to"` // nil for contract creation
	Value                *big.Int `json:"value"`
	Gas                  uint64   `json:"gas"`
	GasPrice             *big.Int `json:"gas_price,omitempty"`
	MaxFeePerGas         *big.Int `json:"max_fee_per_gas,omitempty"`
	MaxPriorityFeePerGas *big.Int `json:"max_priority_fee_per_gas,omitempty"`
	Nonce                uint64   `json:"nonce"`
	Data                 string   `json:"data"`
	ChainID              *big.Int `json:"chain_id"`
	BlockNumber          *big.Int `json:"block_number,omitempty"`
	BlockHash            *string  `json:"block_hash,omitempty"`
}

// Receipt represents the execution outcome of a mined transaction.
type Receipt struct {
	TransactionHash   string   `json:"transaction_hash"`
	BlockNumber       *big.Int `json:"block_number"`
	BlockHash         string   `json:"block_hash"`
	From              string   `json:"from"`
	To                *string  `json:"to"`
	CumulativeGasUsed uint64   `json:"cumulative_gas_used"`
	GasUsed           uint64   `json:"gas_used"`
	Status            uint64   `json:"status"` // 0 = failed, 1 = success
	ContractAddress   *string  `json:"contract_address,omitempty"`
	Logs              []Log    `json:"logs"`
}

// Log is a single event log emitted during transaction execution.
type Log struct {
	Address string   `json:"address"`
	Topics  []string `json:"topics"`
	Data    string   `json:"data"`
	Index   uint     `json:"index"`
}

// Network identifies the chain the provider is connected to.
type Network struct {
	Name    string   `json:"name"`
	ChainID *big.Int `json:"chain_id"`
}
