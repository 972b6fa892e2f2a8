package provider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/nickisanders/CPEService/internal/config"
	"github.com/nickisanders/CPEService/internal/provider"
)

var hashPattern = regexp.MustCompile(`^0x[0-9a-f]{64}$`)

// blockFixture is a minimal but complete empty block at height 0x10, as
// eth_getBlockByNumber returns it.
var blockFixture = map[string]any{
	"hash":             "0x8e38b4dbf6b11fcc3b9dee84fb7986e29ca0a02cecd8977c161ff7333329681e",
	"parentHash":       "0x41800b5c3f1717687d85fc9018faac0a6e90b39deaa0b99e7fe4fe796ddeb26a",
	"sha3Uncles":       "0x1dcc4de8dec75d7aab85b567b6ccd41ad312451b948a7413f0a142fd40d49347",
	"miner":            "0x8888f1f195afa192cfee860698584c030f4c9db1",
	"stateRoot":        "0xd67e4d450343046425ae4271474353857ab860dbc0a1dde64b41b5cd3a532bf3",
	"transactionsRoot": "0x56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421",
	"receiptsRoot":     "0x56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421",
	"logsBloom":        "0x" + strings.Repeat("0", 512),
	"difficulty":       "0x1",
	"number":           "0x10",
	"gasLimit":         "0x1c9c380",
	"gasUsed":          "0x0",
	"timestamp":        "0x642c5b90",
	"extraData":        "0x",
	"mixHash":          "0x0000000000000000000000000000000000000000000000000000000000000000",
	"nonce":            "0x0000000000000000",
	"baseFeePerGas":    "0x3b9aca00",
	"transactions":     []any{},
	"uncles":           []any{},
}

// newRPCServer serves canned JSON-RPC responses for the methods the
// provider issues. Entities outside the fixtures come back null, which
// ethclient surfaces as ethereum.NotFound.
func newRPCServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage   `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("malformed rpc request: %v", err)
			return
		}

		var result any
		switch req.Method {
		case "eth_chainId":
			result = "0x539" // 1337
		case "eth_blockNumber":
			result = "0x10"
		case "eth_getBalance":
			result = "0x1bc16d674ec80000" // 2 ether
		case "eth_gasPrice":
			result = "0x77359400" // 2 gwei
		case "eth_getTransactionCount":
			result = "0x5"
		case "eth_getBlockByNumber":
			var number string
			json.Unmarshal(req.Params[0], &number)
			if number == "0x10" || number == "latest" {
				result = blockFixture
			}
		case "eth_getBlockByHash",
			"eth_getTransactionByHash",
			"eth_getTransactionReceipt":
			// unknown entity: null result
		default:
			t.Errorf("unexpected rpc method %s", req.Method)
		}

		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": result}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func newProvider(t *testing.T, url string) *provider.EthereumProvider {
	t.Helper()
	p := provider.NewEthereumProvider(&config.EthereumConfig{NodeURL: url}, zap.NewNop())
	if err := p.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestBlockNumber(t *testing.T) {
	server := newRPCServer(t)
	defer server.Close()
	p := newProvider(t, server.URL)

	number, err := p.BlockNumber(context.Background())
	if err != nil {
		t.Fatalf("BlockNumber: %v", err)
	}
	if number != 16 {
		t.Errorf("block number = %d, want 16", number)
	}
}

func TestBlockByIdentifier(t *testing.T) {
	server := newRPCServer(t)
	defer server.Close()
	p := newProvider(t, server.URL)

	for _, identifier := range []string{"16", "0x10", "latest"} {
		block, err := p.BlockByIdentifier(context.Background(), identifier)
		if err != nil {
			t.Fatalf("BlockByIdentifier(%q): %v", identifier, err)
		}
		if block == nil {
			t.Fatalf("BlockByIdentifier(%q) = nil", identifier)
		}
		if block.Number != 16 {
			t.Errorf("number = %d, want 16", block.Number)
		}
		if !hashPattern.MatchString(strings.ToLower(block.Hash)) {
			t.Errorf("hash %q is not 32-byte hex", block.Hash)
		}
		if block.BaseFee == nil || block.BaseFee.String() != "1000000000" {
			t.Errorf("base fee = %v, want 1000000000", block.BaseFee)
		}
	}
}

func TestBlockByIdentifierNotFound(t *testing.T) {
	server := newRPCServer(t)
	defer server.Close()
	p := newProvider(t, server.URL)

	block, err := p.BlockByIdentifier(context.Background(), "99")
	if err != nil {
		t.Fatalf("missing block must not error: %v", err)
	}
	if block != nil {
		t.Errorf("expected nil block, got %+v", block)
	}
}

func TestBlockByIdentifierInvalid(t *testing.T) {
	server := newRPCServer(t)
	defer server.Close()
	p := newProvider(t, server.URL)

	if _, err := p.BlockByIdentifier(context.Background(), "not-a-block"); err == nil {
		t.Error("expected error for malformed identifier")
	}
}

func TestTransactionNotFound(t *testing.T) {
	server := newRPCServer(t)
	defer server.Close()
	p := newProvider(t, server.URL)

	hash := "0x" + strings.Repeat("ab", 32)

	tx, err := p.TransactionByHash(context.Background(), hash)
	if err != nil {
		t.Fatalf("missing transaction must not error: %v", err)
	}
	if tx != nil {
		t.Errorf("expected nil transaction, got %+v", tx)
	}

	receipt, err := p.TransactionReceipt(context.Background(), hash)
	if err != nil {
		t.Fatalf("missing receipt must not error: %v", err)
	}
	if receipt != nil {
		t.Errorf("expected nil receipt, got %+v", receipt)
	}
}

func TestBalance(t *testing.T) {
	server := newRPCServer(t)
	defer server.Close()
	p := newProvider(t, server.URL)

	balance, err := p.Balance(context.Background(), "0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance.String() != "2000000000000000000" {
		t.Errorf("balance = %s, want 2000000000000000000", balance)
	}
	if balance.Sign() < 0 {
		t.Error("balance must be non-negative")
	}
}

func TestGasPrice(t *testing.T) {
	server := newRPCServer(t)
	defer server.Close()
	p := newProvider(t, server.URL)

	gasPrice, err := p.GasPrice(context.Background())
	if err != nil {
		t.Fatalf("GasPrice: %v", err)
	}
	if gasPrice.String() != "2000000000" {
		t.Errorf("gas price = %s, want 2000000000", gasPrice)
	}
}

func TestNetwork(t *testing.T) {
	server := newRPCServer(t)
	defer server.Close()
	p := newProvider(t, server.URL)

	network, err := p.Network(context.Background())
	if err != nil {
		t.Fatalf("Network: %v", err)
	}
	if network.ChainID.String() != "1337" {
		t.Errorf("chain id = %s, want 1337", network.ChainID)
	}
	if network.Name != "localhost" {
		t.Errorf("name = %q, want localhost", network.Name)
	}
}

func TestTransactionCount(t *testing.T) {
	server := newRPCServer(t)
	defer server.Close()
	p := newProvider(t, server.URL)

	count, err := p.TransactionCount(context.Background(), "0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	if err != nil {
		t.Fatalf("TransactionCount: %v", err)
	}
	if count != 5 {
		t.Errorf("count = %d, want 5", count)
	}
}
