package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/jaundice-service/internal/adapter/postgres"
	"github.com/user/jaundice-service/internal/adapter/wordlist"
	"github.com/user/jaundice-service/pkg/config"
)

var wordsTone string

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Manage the charged word dictionary stored in PostgreSQL",
}

var wordsImportCmd = &cobra.Command{
	Use:   "import <file-or-dir>...",
	Short: "Import charged words from text dictionaries into PostgreSQL",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.PostgresURL == "" {
			return errors.New("POSTGRES_URL is not set")
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		words, err := wordlist.NewFileSource(args...).LoadWords(ctx)
		if err != nil {
			return err
		}

		pool, err := postgres.NewPool(ctx, cfg.PostgresURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			return err
		}

		added, err := postgres.NewChargedWordRepo(pool).Import(ctx, words, wordsTone)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "read %d words, added %d new\n", len(words), added)
		return nil
	},
}

func init() {
	wordsImportCmd.Flags().StringVar(&wordsTone, "tone", "negative", "tone recorded for the imported words")
	wordsCmd.AddCommand(wordsImportCmd)
}
