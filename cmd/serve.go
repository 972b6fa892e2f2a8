package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nickisanders/CPEService/internal/resolver"
	"github.com/nickisanders/CPEService/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the GraphQL query server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, eth, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting CPEService")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := eth.Connect(ctx); err != nil {
		logger.Fatal("Failed to connect to Ethereum node", zap.Error(err))
	}
	defer eth.Close()

	certs, pub, err := buildCertificateService(cfg, eth, logger)
	if err != nil {
		return err
	}

	if err := pub.Connect(ctx); err != nil {
		logger.Fatal("Failed to connect to Kafka", zap.Error(err))
	}
	defer pub.Close()

	root := resolver.New(eth, certs, logger)

	srv, err := server.New(&cfg.Server, root, logger)
	if err != nil {
		return err
	}
	srv.Start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Info("Shutdown signal received, gracefully shutting down...")
	cancel()

	if err := srv.Stop(context.Background()); err != nil {
		logger.Warn("Shutdown did not complete cleanly", zap.Error(err))
	} else {
		logger.Info("Graceful shutdown completed")
	}

	return nil
}
