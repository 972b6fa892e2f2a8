package signer

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/nickisanders/CPEService/internal/config"
	"github.com/nickisanders/CPEService/internal/provider"
)

var (
	// ErrNoSigner is returned when a write operation is attempted on a
	// client that was built without any signing identity.
	ErrNoSigner = errors.New("no signer available: configure a private key or a delegated signer")

	// ErrNotImplemented is returned by delegated signer operations whose
	// wire protocol to the delegation service is not implemented.
	ErrNotImplemented = errors.New("delegated signer: operation not implemented")
)

// Signer is an identity capable of authorizing state-changing calls.
// Exactly one concrete variant is resolved per client instance.
type Signer interface {
	// Address returns the account the signer acts for.
	Address() common.Address

	// SignTransaction signs a transaction for the given chain.
	SignTransaction(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)

	// SignMessage signs an EIP-191 prefixed personal message.
	SignMessage(ctx context.Context, message []byte) ([]byte, error)

	// SignTypedData signs a pre-computed EIP-712 digest.
	SignTypedData(ctx context.Context, digest common.Hash) ([]byte, error)

	// Connect returns a signer with the same identity bound to a
	// different provider backend.
	Connect(backend provider.Backend) Signer
}

// Resolve picks the signing identity for a client from its configuration.
// A delegated signer wins over a local private key; with neither
// configured the result is nil and write operations must be rejected
// with ErrNoSigner.
func Resolve(cfg *config.SignerConfig, backend provider.Backend) (Signer, error) {
	if cfg == nil {
		return nil, nil
	}

	if cfg.Delegated.Address != "" {
		return NewDelegatedSigner(cfg.Delegated.Address, cfg.Delegated.Endpoint, backend)
	}

	if cfg.PrivateKey != "" {
		return NewLocalSigner(cfg.PrivateKey, backend)
	}

	return nil, nil
}
