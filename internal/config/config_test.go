package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nickisanders/CPEService/internal/config"
)

const sampleConfig = `
ethereum:
  node_url: "http://localhost:8545"

contract:
  address: "0x5FbDB2315678afecb367f032d93F642f64180aa3"

signer:
  private_key: "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
  delegated:
    address: ""
    endpoint: ""

metadata:
  timeout_seconds: 5

kafka:
  brokers: ["localhost:9092"]
  topic: "certificate-mints"
  batch_size: 10
  batch_timeout: 50

server:
  listen_addr: ":8080"

log:
  level: "debug"
  format: "json"
`

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(sampleConfig), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoadConfig(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Ethereum.NodeURL != "http://localhost:8545" {
		t.Errorf("node_url = %q", cfg.Ethereum.NodeURL)
	}
	if cfg.Contract.Address != "0x5FbDB2315678afecb367f032d93F642f64180aa3" {
		t.Errorf("contract address = %q", cfg.Contract.Address)
	}
	if cfg.Signer.PrivateKey == "" {
		t.Error("signer private key not loaded")
	}
	if cfg.Metadata.TimeoutSeconds != 5 {
		t.Errorf("metadata timeout = %d", cfg.Metadata.TimeoutSeconds)
	}
	if len(cfg.Kafka.Brokers) != 1 || cfg.Kafka.Brokers[0] != "localhost:9092" {
		t.Errorf("kafka brokers = %v", cfg.Kafka.Brokers)
	}
	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("listen addr = %q", cfg.Server.ListenAddr)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log config = %+v", cfg.Log)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := config.LoadConfig(t.TempDir()); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := config.NewLogger(&config.LogConfig{Level: "info", Format: "json"})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if logger == nil {
		t.Fatal("nil logger")
	}
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	if _, err := config.NewLogger(&config.LogConfig{Level: "chatty"}); err == nil {
		t.Error("expected error for invalid log level")
	}
}
