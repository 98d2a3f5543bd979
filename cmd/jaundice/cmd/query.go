package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/jaundice-service/internal/entity"
)

var queryFlags struct {
	server  string
	urls    string
	timeout time.Duration
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Ask a running jaundice server to rate articles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printCards, err := newPrinter(Flags.Output)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), queryFlags.timeout)
		defer cancel()

		cards, err := queryServer(ctx, http.DefaultClient, queryFlags.server, queryFlags.urls)
		if err != nil {
			return err
		}
		return printCards(cmd.OutOrStdout(), cards)
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryFlags.server, "server", "http://127.0.0.1:8080/", "server base URL")
	queryCmd.Flags().StringVar(&queryFlags.urls, "urls", joinURLs(demoURLs), "comma separated article URLs")
	queryCmd.Flags().DurationVar(&queryFlags.timeout, "timeout", 30*time.Second, "overall request timeout")
}

// queryServer calls GET <server>?urls=... and decodes the card list.
func queryServer(ctx context.Context, client *http.Client, server, urls string) ([]entity.ArticleCard, error) {
	endpoint, err := url.Parse(server)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	q := endpoint.Query()
	q.Set("urls", urls)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query server: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read server response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("server rejected request (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var cards []entity.ArticleCard
	if err := json.Unmarshal(body, &cards); err != nil {
		return nil, fmt.Errorf("decode cards: %w", err)
	}
	return cards, nil
}

func joinURLs(urls []string) string {
	return strings.Join(urls, ",")
}
