package model

import (
	"math/big"
	"time"
)

// CertificateData mirrors the on-chain certificate record.
type CertificateData struct {
	Name           string   `json:"name"`
	CertificateID  string   `json:"certificate_id"`
	Course         string   `json:"course"`
	Issuer         string   `json:"issuer"`
	DateIssued     *big.Int `json:"date_issued"`
	CompletionDate *big.Int `json:"completion_date"`
	CreditHours    *big.Int `json:"credit_hours"`
}

// CertificateWithMetadata pairs an on-chain certificate record with its
// best-effort off-chain metadata. TokenURI and Metadata are nil when
// metadata resolution failed or was skipped for that certificate.
type CertificateWithMetadata struct {
	CertificateData
	TokenURI *string        `json:"token_uri,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// MintEvent is published to the message broker after a mint transaction
// has been mined. Status is carried verbatim so consumers can tell a
// successful mint from a mined-but-failed one.
type MintEvent struct {
	TransactionHash string    `json:"transaction_hash"`
	Recipient       string    `json:"recipient"`
	Course          string    `json:"course"`
	Issuer          string    `json:"issuer"`
	Status          uint64    `json:"status"`
	BlockNumber     uint64    `json:"block_number"`
	Time            time.Time `json:"time"`
}
