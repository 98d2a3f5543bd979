package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/jaundice-service/internal/app"
	"github.com/user/jaundice-service/pkg/config"
	"github.com/user/jaundice-service/pkg/logger"
	"github.com/user/jaundice-service/pkg/utils"
	"go.uber.org/zap"
)

var rateURLs string

var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Rate articles in-process, without a running server",
	Long: `Loads the same configuration as the server (environment and .env),
runs the rating pipeline locally and prints one card per URL in input order.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printCards, err := newPrinter(Flags.Output)
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log, err := logger.New(cfg.LogLevel, "console")
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		application, err := app.Build(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("start rating pipeline: %w", err)
		}
		defer application.Close()

		result, err := application.Rating.Rate(ctx, utils.SplitURLs(rateURLs))
		if err != nil {
			return err
		}
		log.Debug("batch finished", zap.String("batch_id", result.BatchID))
		return printCards(cmd.OutOrStdout(), result.Cards)
	},
}

func init() {
	rateCmd.Flags().StringVar(&rateURLs, "urls", joinURLs(demoURLs), "comma separated article URLs")
}
