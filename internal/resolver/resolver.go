package resolver

import (
	"context"
	"encoding/json"
	"math/big"

	"go.uber.org/zap"

	"github.com/nickisanders/CPEService/internal/certificate"
	"github.com/nickisanders/CPEService/internal/model"
	"github.com/nickisanders/CPEService/internal/provider"
)

// Resolver is the root query resolver. Each field maps to a single
// provider or aggregator call followed by response reshaping; absent
// chain entities resolve to null.
type Resolver struct {
	reader provider.ChainReader
	certs  certificate.Reader
	logger *zap.Logger
}

// New creates the root resolver.
func New(reader provider.ChainReader, certs certificate.Reader, logger *zap.Logger) *Resolver {
	return &Resolver{
		reader: reader,
		certs:  certs,
		logger: logger,
	}
}

func (r *Resolver) BlockNumber(ctx context.Context) (int32, error) {
	number, err := r.reader.BlockNumber(ctx)
	if err != nil {
		return 0, err
	}

	return int32(number), nil
}

func (r *Resolver) Block(ctx context.Context, args struct{ Identifier string }) (*BlockResolver, error) {
	block, err := r.reader.BlockByIdentifier(ctx, args.Identifier)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, nil
	}

	return &BlockResolver{block: block}, nil
}

func (r *Resolver) Transaction(ctx context.Context, args struct{ Hash string }) (*TransactionResolver, error) {
	tx, err := r.reader.TransactionByHash(ctx, args.Hash)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, nil
	}

	return &TransactionResolver{tx: tx}, nil
}

func (r *Resolver) TransactionReceipt(ctx context.Context, args struct{ Hash string }) (*ReceiptResolver, error) {
	receipt, err := r.reader.TransactionReceipt(ctx, args.Hash)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, nil
	}

	return &ReceiptResolver{receipt: receipt}, nil
}

func (r *Resolver) Balance(ctx context.Context, args struct{ Address string }) (string, error) {
	balance, err := r.reader.Balance(ctx, args.Address)
	if err != nil {
		return "", err
	}

	return model.WeiToEther(balance), nil
}

// GasPrice renders the suggested gas price in gwei; an unavailable fee
// quote degrades to "0" rather than failing the query.
func (r *Resolver) GasPrice(ctx context.Context) (string, error) {
	gasPrice, err := r.reader.GasPrice(ctx)
	if err != nil {
		r.logger.Warn("Gas price unavailable", zap.Error(err))
		return "0", nil
	}

	return model.WeiToGwei(gasPrice), nil
}

func (r *Resolver) Network(ctx context.Context) (*NetworkResolver, error) {
	network, err := r.reader.Network(ctx)
	if err != nil {
		return nil, err
	}

	return &NetworkResolver{network: network}, nil
}

func (r *Resolver) TransactionCount(ctx context.Context, args struct{ Address string }) (int32, error) {
	count, err := r.reader.TransactionCount(ctx, args.Address)
	if err != nil {
		return 0, err
	}

	return int32(count), nil
}

func (r *Resolver) Certificates(ctx context.Context, args struct {
	Owner        string
	WithMetadata *bool
}) ([]*CertificateResolver, error) {
	includeMetadata := args.WithMetadata == nil || *args.WithMetadata

	certificates, err := r.certs.CertificatesWithMetadata(ctx, args.Owner, includeMetadata)
	if err != nil {
		return nil, err
	}

	resolvers := make([]*CertificateResolver, len(certificates))
	for i := range certificates {
		resolvers[i] = &CertificateResolver{cert: &certificates[i], logger: r.logger}
	}

	return resolvers, nil
}

// BlockResolver reshapes a model.Block for transport.
type BlockResolver struct {
	block *model.Block
}

func (b *BlockResolver) Number() string     { return decimal(new(big.Int).SetUint64(b.block.Number)) }
func (b *BlockResolver) Hash() string       { return b.block.Hash }
func (b *BlockResolver) ParentHash() string { return b.block.ParentHash }
func (b *BlockResolver) Timestamp() string {
	return decimal(new(big.Int).SetUint64(b.block.Timestamp))
}
func (b *BlockResolver) Miner() string    { return b.block.Miner }
func (b *BlockResolver) GasLimit() string { return decimal(new(big.Int).SetUint64(b.block.GasLimit)) }
func (b *BlockResolver) GasUsed() string  { return decimal(new(big.Int).SetUint64(b.block.GasUsed)) }
func (b *BlockResolver) BaseFeePerGas() *string {
	if b.block.BaseFee == nil {
		return nil
	}
	fee := b.block.BaseFee.String()
	return &fee
}
func (b *BlockResolver) Transactions() []string { return b.block.Transactions }

// TransactionResolver reshapes a model.Transaction for transport. The
// value is rendered in ether and gas prices in gwei.
type TransactionResolver struct {
	tx *model.Transaction
}

func (t *TransactionResolver) Hash() string  { return t.tx.Hash }
func (t *TransactionResolver) From() string  { return t.tx.From }
func (t *TransactionResolver) To() *string   { return t.tx.To }
func (t *TransactionResolver) Value() string { return model.WeiToEther(t.tx.Value) }
func (t *TransactionResolver) Gas() string   { return decimal(new(big.Int).SetUint64(t.tx.Gas)) }
func (t *TransactionResolver) GasPrice() *string {
	return gweiOrNil(t.tx.GasPrice)
}
func (t *TransactionResolver) MaxFeePerGas() *string {
	return gweiOrNil(t.tx.MaxFeePerGas)
}
func (t *TransactionResolver) MaxPriorityFeePerGas() *string {
	return gweiOrNil(t.tx.MaxPriorityFeePerGas)
}
func (t *TransactionResolver) Nonce() int32 { return int32(t.tx.Nonce) }
func (t *TransactionResolver) Data() string { return t.tx.Data }
func (t *TransactionResolver) ChainId() string {
	return decimal(t.tx.ChainID)
}
func (t *TransactionResolver) BlockNumber() *string {
	if t.tx.BlockNumber == nil {
		return nil
	}
	number := t.tx.BlockNumber.String()
	return &number
}
func (t *TransactionResolver) BlockHash() *string { return t.tx.BlockHash }

// ReceiptResolver reshapes a model.Receipt for transport, mapping logs
// field by field in order.
type ReceiptResolver struct {
	receipt *model.Receipt
}

func (r *ReceiptResolver) TransactionHash() string { return r.receipt.TransactionHash }
func (r *ReceiptResolver) BlockNumber() string     { return decimal(r.receipt.BlockNumber) }
func (r *ReceiptResolver) BlockHash() string       { return r.receipt.BlockHash }
func (r *ReceiptResolver) From() string            { return r.receipt.From }
func (r *ReceiptResolver) To() *string             { return r.receipt.To }
func (r *ReceiptResolver) CumulativeGasUsed() string {
	return decimal(new(big.Int).SetUint64(r.receipt.CumulativeGasUsed))
}
func (r *ReceiptResolver) GasUsed() string {
	return decimal(new(big.Int).SetUint64(r.receipt.GasUsed))
}
func (r *ReceiptResolver) Status() int32            { return int32(r.receipt.Status) }
func (r *ReceiptResolver) ContractAddress() *string { return r.receipt.ContractAddress }
func (r *ReceiptResolver) Logs() []*LogResolver {
	logs := make([]*LogResolver, len(r.receipt.Logs))
	for i := range r.receipt.Logs {
		logs[i] = &LogResolver{log: &r.receipt.Logs[i]}
	}
	return logs
}

// LogResolver reshapes a single event log.
type LogResolver struct {
	log *model.Log
}

func (l *LogResolver) Address() string  { return l.log.Address }
func (l *LogResolver) Topics() []string { return l.log.Topics }
func (l *LogResolver) Data() string     { return l.log.Data }
func (l *LogResolver) Index() int32     { return int32(l.log.Index) }

// NetworkResolver reshapes the network identity.
type NetworkResolver struct {
	network *model.Network
}

func (n *NetworkResolver) Name() string    { return n.network.Name }
func (n *NetworkResolver) ChainId() string { return decimal(n.network.ChainID) }

// CertificateResolver reshapes a certificate with its optional metadata.
type CertificateResolver struct {
	cert   *model.CertificateWithMetadata
	logger *zap.Logger
}

func (c *CertificateResolver) Name() string           { return c.cert.Name }
func (c *CertificateResolver) CertificateId() string  { return c.cert.CertificateID }
func (c *CertificateResolver) Course() string         { return c.cert.Course }
func (c *CertificateResolver) Issuer() string         { return c.cert.Issuer }
func (c *CertificateResolver) DateIssued() string     { return decimal(c.cert.DateIssued) }
func (c *CertificateResolver) CompletionDate() string { return decimal(c.cert.CompletionDate) }
func (c *CertificateResolver) CreditHours() string    { return decimal(c.cert.CreditHours) }
func (c *CertificateResolver) TokenUri() *string      { return c.cert.TokenURI }
func (c *CertificateResolver) Metadata() *string {
	if c.cert.Metadata == nil {
		return nil
	}

	raw, err := json.Marshal(c.cert.Metadata)
	if err != nil {
		c.logger.Warn("Failed to render certificate metadata", zap.Error(err))
		return nil
	}

	rendered := string(raw)
	return &rendered
}

// decimal renders a big integer as a decimal string; nil renders as "0".
func decimal(value *big.Int) string {
	if value == nil {
		return "0"
	}
	return value.String()
}

// gweiOrNil renders an optional wei amount in gwei.
func gweiOrNil(wei *big.Int) *string {
	if wei == nil {
		return nil
	}
	gwei := model.WeiToGwei(wei)
	return &gwei
}
