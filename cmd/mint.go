package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nickisanders/CPEService/internal/certificate"
)

var (
	mintRecipient      string
	mintTokenURI       string
	mintName           string
	mintCourse         string
	mintIssuer         string
	mintCompletionDate int64
	mintCreditHours    int64
)

var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint a certificate NFT and wait for the mined receipt",
	RunE:  runMint,
}

func init() {
	mintCmd.Flags().StringVar(&mintRecipient, "recipient", "", "recipient address")
	mintCmd.Flags().StringVar(&mintTokenURI, "token-uri", "", "metadata document URI")
	mintCmd.Flags().StringVar(&mintName, "name", "", "certificate holder name")
	mintCmd.Flags().StringVar(&mintCourse, "course", "", "course title")
	mintCmd.Flags().StringVar(&mintIssuer, "issuer", "", "issuing organization")
	mintCmd.Flags().Int64Var(&mintCompletionDate, "completion-date", 0, "completion date (unix seconds)")
	mintCmd.Flags().Int64Var(&mintCreditHours, "credit-hours", 0, "credit hours earned")

	mintCmd.MarkFlagRequired("recipient")
	mintCmd.MarkFlagRequired("token-uri")
	mintCmd.MarkFlagRequired("name")
	mintCmd.MarkFlagRequired("course")
	mintCmd.MarkFlagRequired("issuer")

	rootCmd.AddCommand(mintCmd)
}

func runMint(cmd *cobra.Command, args []string) error {
	cfg, logger, eth, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()

	if err := eth.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to Ethereum node: %w", err)
	}
	defer eth.Close()

	certs, pub, err := buildCertificateService(cfg, eth, logger)
	if err != nil {
		return err
	}

	if err := pub.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}
	defer pub.Close()

	receipt, err := certs.Mint(ctx, certificate.MintRequest{
		Recipient:      mintRecipient,
		TokenURI:       mintTokenURI,
		Name:           mintName,
		Course:         mintCourse,
		Issuer:         mintIssuer,
		CompletionDate: mintCompletionDate,
		CreditHours:    mintCreditHours,
	})
	if err != nil {
		return err
	}

	logger.Info("Certificate mint mined",
		zap.String("hash", receipt.TxHash.Hex()),
		zap.Uint64("block", receipt.BlockNumber.Uint64()),
		zap.Uint64("status", receipt.Status))

	if receipt.Status == 0 {
		fmt.Printf("mint transaction %s was mined but execution failed (status 0)\n", receipt.TxHash.Hex())
	} else {
		fmt.Printf("minted certificate in transaction %s (block %s)\n", receipt.TxHash.Hex(), receipt.BlockNumber)
	}

	return nil
}
