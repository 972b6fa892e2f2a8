package certificate

import "math/big"

// certificateABI is the minimal interface fragment of the certificate
// NFT contract: the enumeration and metadata views plus the mint entry
// point. Anything else the deployed contract exposes is irrelevant here.
const certificateABI = `[
	{
		"type": "function",
		"name": "getCertificatesByOwner",
		"stateMutability": "view",
		"inputs": [{"name": "owner", "type": "address"}],
		"outputs": [{
			"name": "",
			"type": "tuple[]",
			"components": [
				{"name": "name", "type": "string"},
				{"name": "certificateId", "type": "string"},
				{"name": "course", "type": "string"},
				{"name": "issuer", "type": "string"},
				{"name": "dateIssued", "type": "uint256"},
				{"name": "completionDate", "type": "uint256"},
				{"name": "creditHours", "type": "uint256"}
			]
		}]
	},
	{
		"type": "function",
		"name": "tokenOfOwnerByIndex",
		"stateMutability": "view",
		"inputs": [
			{"name": "owner", "type": "address"},
			{"name": "index", "type": "uint256"}
		],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"type": "function",
		"name": "tokenURI",
		"stateMutability": "view",
		"inputs": [{"name": "tokenId", "type": "uint256"}],
		"outputs": [{"name": "", "type": "string"}]
	},
	{
		"type": "function",
		"name": "mintCertificate",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "tokenURI", "type": "string"},
			{"name": "name", "type": "string"},
			{"name": "course", "type": "string"},
			{"name": "issuer", "type": "string"},
			{"name": "completionDate", "type": "uint256"},
			{"name": "creditHours", "type": "uint256"}
		],
		"outputs": [{"name": "", "type": "uint256"}]
	}
]`

// rawCertificate matches the on-chain tuple layout positionally; the abi
// package decodes each tuple into this shape.
type rawCertificate struct {
	Name           string
	CertificateId  string
	Course         string
	Issuer         string
	DateIssued     *big.Int
	CompletionDate *big.Int
	CreditHours    *big.Int
}
