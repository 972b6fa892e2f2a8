package signer

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/nickisanders/CPEService/internal/provider"
)

// DelegatedSigner represents an account held by a third-party wallet
// delegation service. Only the identity half is functional: the signing
// methods fail with ErrNotImplemented until the delegation service's
// signing endpoints are wired up.
type DelegatedSigner struct {
	address  common.Address
	endpoint string
	backend  provider.Backend
}

// NewDelegatedSigner binds the configured delegated account address and
// service endpoint. The address must be a valid hex address.
func NewDelegatedSigner(address, endpoint string, backend provider.Backend) (*DelegatedSigner, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid delegated signer address %q", address)
	}

	return &DelegatedSigner{
		address:  common.HexToAddress(address),
		endpoint: endpoint,
		backend:  backend,
	}, nil
}

func (s *DelegatedSigner) Address() common.Address {
	return s.address
}

func (s *DelegatedSigner) SignTransaction(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return nil, fmt.Errorf("%w: signTransaction", ErrNotImplemented)
}

func (s *DelegatedSigner) SignMessage(ctx context.Context, message []byte) ([]byte, error) {
	return nil, fmt.Errorf("%w: signMessage", ErrNotImplemented)
}

func (s *DelegatedSigner) SignTypedData(ctx context.Context, digest common.Hash) ([]byte, error) {
	return nil, fmt.Errorf("%w: signTypedData", ErrNotImplemented)
}

// Connect rebinds the signer to a different provider backend, preserving
// the delegated account identity.
func (s *DelegatedSigner) Connect(backend provider.Backend) Signer {
	return &DelegatedSigner{
		address:  s.address,
		endpoint: s.endpoint,
		backend:  backend,
	}
}
