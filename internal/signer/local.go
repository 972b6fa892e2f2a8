package signer

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/nickisanders/CPEService/internal/provider"
)

// LocalSigner signs with a raw secp256k1 private key held in memory.
type LocalSigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
	backend provider.Backend
}

// NewLocalSigner parses a hex-encoded private key (with or without the
// 0x prefix) and derives the signer address from it.
func NewLocalSigner(privateKeyHex string, backend provider.Backend) (*LocalSigner, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &LocalSigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		backend: backend,
	}, nil
}

func (s *LocalSigner) Address() common.Address {
	return s.address
}

func (s *LocalSigner) SignTransaction(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	return signed, nil
}

func (s *LocalSigner) SignMessage(ctx context.Context, message []byte) ([]byte, error) {
	signature, err := crypto.Sign(accounts.TextHash(message), s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}

	return signature, nil
}

func (s *LocalSigner) SignTypedData(ctx context.Context, digest common.Hash) ([]byte, error) {
	signature, err := crypto.Sign(digest.Bytes(), s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign typed data: %w", err)
	}

	return signature, nil
}

func (s *LocalSigner) Connect(backend provider.Backend) Signer {
	return &LocalSigner{
		key:     s.key,
		address: s.address,
		backend: backend,
	}
}
