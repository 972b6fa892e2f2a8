package certificate

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/nickisanders/CPEService/internal/contract"
	"github.com/nickisanders/CPEService/internal/model"
	"github.com/nickisanders/CPEService/internal/provider"
	"github.com/nickisanders/CPEService/internal/publisher"
	"github.com/nickisanders/CPEService/internal/signer"
)

// Reader is the read side of the certificate aggregator, as consumed by
// the query resolution layer.
type Reader interface {
	// CertificatesByOwner retrieves the on-chain certificate records
	// owned by an address, in contract return order.
	CertificatesByOwner(ctx context.Context, owner string) ([]model.CertificateData, error)

	// CertificatesWithMetadata retrieves the owned certificates and,
	// when includeMetadata is set, resolves each one's token URI and
	// off-chain metadata document on a best-effort basis.
	CertificatesWithMetadata(ctx context.Context, owner string, includeMetadata bool) ([]model.CertificateWithMetadata, error)
}

// MintRequest carries the fields of a certificate to mint. The numeric
// fields accept either a native integer or a *big.Int; both are widened
// to the contract's uint256 representation before the call.
type MintRequest struct {
	Recipient      string
	TokenURI       string
	Name           string
	Course         string
	Issuer         string
	CompletionDate any
	CreditHours    any
}

// Service aggregates certificate reads across the contract and the
// off-chain metadata documents, and drives the mint write path.
type Service struct {
	caller    *contract.MethodCaller
	signer    signer.Signer
	publisher publisher.Publisher
	http      *http.Client
	logger    *zap.Logger
}

// NewService binds the certificate contract at the given address. The
// signer may be nil, which leaves the service read-only.
func NewService(
	contractAddress common.Address,
	backend provider.Backend,
	s signer.Signer,
	pub publisher.Publisher,
	metadataTimeout time.Duration,
	logger *zap.Logger,
) (*Service, error) {
	caller, err := contract.NewMethodCaller(contractAddress, certificateABI, backend, s, logger)
	if err != nil {
		return nil, err
	}

	if metadataTimeout <= 0 {
		metadataTimeout = 10 * time.Second
	}

	return &Service{
		caller:    caller,
		signer:    s,
		publisher: pub,
		http:      &http.Client{Timeout: metadataTimeout},
		logger:    logger,
	}, nil
}

// CertificatesByOwner retrieves all certificate records owned by an
// address. An address owning nothing yields an empty slice.
func (s *Service) CertificatesByOwner(ctx context.Context, owner string) ([]model.CertificateData, error) {
	if !common.IsHexAddress(owner) {
		return nil, fmt.Errorf("invalid owner address %q", owner)
	}

	out, err := s.caller.Call(ctx, "getCertificatesByOwner", common.HexToAddress(owner))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch certificates for %s: %w", owner, err)
	}

	raw := *abi.ConvertType(out[0], new([]rawCertificate)).(*[]rawCertificate)

	certificates := make([]model.CertificateData, len(raw))
	for i, cert := range raw {
		certificates[i] = model.CertificateData{
			Name:           cert.Name,
			CertificateID:  cert.CertificateId,
			Course:         cert.Course,
			Issuer:         cert.Issuer,
			DateIssued:     cert.DateIssued,
			CompletionDate: cert.CompletionDate,
			CreditHours:    cert.CreditHours,
		}
	}

	return certificates, nil
}

// CertificatesWithMetadata retrieves the owned certificates and resolves
// each one's token URI and metadata document. Metadata resolution is
// best-effort per certificate: a failure at any step leaves that entry's
// TokenURI and Metadata unset and never fails the whole query. The
// per-certificate fetches run concurrently; output order follows the
// on-chain certificate order.
func (s *Service) CertificatesWithMetadata(ctx context.Context, owner string, includeMetadata bool) ([]model.CertificateWithMetadata, error) {
	base, err := s.CertificatesByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	results := make([]model.CertificateWithMetadata, len(base))
	for i, cert := range base {
		results[i] = model.CertificateWithMetadata{CertificateData: cert}
	}

	if !includeMetadata || len(results) == 0 {
		return results, nil
	}

	ownerAddress := common.HexToAddress(owner)

	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()

			uri, metadata, err := s.resolveMetadata(ctx, ownerAddress, index)
			if err != nil {
				s.logger.Warn("Failed to resolve certificate metadata",
					zap.String("owner", owner),
					zap.Int("index", index),
					zap.Error(err))
				return
			}

			results[index].TokenURI = &uri
			results[index].Metadata = metadata
		}(i)
	}
	wg.Wait()

	return results, nil
}

// resolveMetadata resolves the token at the owner's index to its URI and
// fetches the JSON metadata document behind it.
func (s *Service) resolveMetadata(ctx context.Context, owner common.Address, index int) (string, map[string]any, error) {
	out, err := s.caller.Call(ctx, "tokenOfOwnerByIndex", owner, big.NewInt(int64(index)))
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve token at index %d: %w", index, err)
	}
	tokenID := out[0].(*big.Int)

	out, err = s.caller.Call(ctx, "tokenURI", tokenID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve URI for token %s: %w", tokenID, err)
	}
	uri := out[0].(string)

	metadata, err := s.fetchMetadata(ctx, uri)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch metadata for token %s: %w", tokenID, err)
	}

	return uri, metadata, nil
}

// fetchMetadata retrieves and parses the JSON document behind a token URI.
func (s *Service) fetchMetadata(ctx context.Context, uri string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid metadata URI %q: %w", uri, err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metadata request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata request returned status %d", resp.StatusCode)
	}

	var metadata map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to parse metadata document: %w", err)
	}

	return metadata, nil
}

// Mint submits a mintCertificate transaction and waits for it to be
// mined. The receipt is returned verbatim, including when execution
// failed on chain (status 0); callers judge the status themselves. A
// mint event is published either way so downstream consumers see the
// outcome.
func (s *Service) Mint(ctx context.Context, req MintRequest) (*types.Receipt, error) {
	if s.signer == nil {
		return nil, signer.ErrNoSigner
	}

	if !common.IsHexAddress(req.Recipient) {
		return nil, fmt.Errorf("invalid recipient address %q", req.Recipient)
	}
	recipient := common.HexToAddress(req.Recipient)

	completionDate, err := contract.ToBigInt(req.CompletionDate)
	if err != nil {
		return nil, fmt.Errorf("invalid completion date: %w", err)
	}

	creditHours, err := contract.ToBigInt(req.CreditHours)
	if err != nil {
		return nil, fmt.Errorf("invalid credit hours: %w", err)
	}

	receipt, err := s.caller.Transact(ctx, "mintCertificate",
		recipient, req.TokenURI, req.Name, req.Course, req.Issuer,
		completionDate, creditHours)
	if err != nil {
		return nil, err
	}

	event := &model.MintEvent{
		TransactionHash: receipt.TxHash.Hex(),
		Recipient:       recipient.Hex(),
		Course:          req.Course,
		Issuer:          req.Issuer,
		Status:          receipt.Status,
		BlockNumber:     receipt.BlockNumber.Uint64(),
		Time:            time.Now(),
	}
	if err := s.publisher.PublishMint(ctx, event); err != nil {
		s.logger.Error("Failed to publish mint event",
			zap.String("hash", event.TransactionHash),
			zap.Error(err))
	}

	return receipt, nil
}
