package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/truthguard/truthguard/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "truthguard",
	Short: "Validation pipeline for AI customer-service responses",
	Long:  "Extracts factual claims from AI responses, verifies them against knowledge sources, checks citations, compliance rules, and company policies, and decides whether each response is approved, flagged, or blocked.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
