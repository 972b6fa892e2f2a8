package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nickisanders/CPEService/internal/certificate"
	"github.com/nickisanders/CPEService/internal/config"
	"github.com/nickisanders/CPEService/internal/provider"
	"github.com/nickisanders/CPEService/internal/publisher"
	"github.com/nickisanders/CPEService/internal/signer"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "cpeservice",
	Short: "GraphQL query layer over an Ethereum node with certificate NFT minting",
	Long: `CPEService exposes blockchain reads (blocks, transactions, receipts,
balances) as a GraphQL API and mints continuing-education certificate NFTs,
signing either with a local private key or through a delegated signer.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "directory containing config.yaml")
}

// bootstrap loads configuration, builds the logger, and connects the
// Ethereum provider. Callers own closing the returned provider and
// syncing the logger.
func bootstrap() (*config.Config, *zap.Logger, *provider.EthereumProvider, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := config.NewLogger(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	eth := provider.NewEthereumProvider(&cfg.Ethereum, logger)
	return cfg, logger, eth, nil
}

// buildCertificateService wires the signer, publisher, and certificate
// aggregator on top of a connected provider.
func buildCertificateService(cfg *config.Config, eth *provider.EthereumProvider, logger *zap.Logger) (*certificate.Service, publisher.Publisher, error) {
	backend := eth.Client()

	s, err := signer.Resolve(&cfg.Signer, backend)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve signer: %w", err)
	}

	var pub publisher.Publisher = publisher.Nop{}
	if len(cfg.Kafka.Brokers) > 0 {
		pub = publisher.NewKafkaPublisher(&cfg.Kafka, logger)
	}

	if !common.IsHexAddress(cfg.Contract.Address) {
		return nil, nil, fmt.Errorf("invalid contract address %q", cfg.Contract.Address)
	}

	service, err := certificate.NewService(
		common.HexToAddress(cfg.Contract.Address),
		backend,
		s,
		pub,
		time.Duration(cfg.Metadata.TimeoutSeconds)*time.Second,
		logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build certificate service: %w", err)
	}

	return service, pub, nil
}
