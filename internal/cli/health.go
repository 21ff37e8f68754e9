package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

// HealthResult is the health check response
type HealthResult struct {
	Status string `json:"status"`
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			httpClient := &http.Client{Timeout: 10 * time.Second}

			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, cfg.HealthURL(), nil)
			if err != nil {
				return err
			}

			resp, err := httpClient.Do(req)
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("health check failed with status %d", resp.StatusCode)
			}

			var result HealthResult
			if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if cfg.Output == "json" {
				out.Print(result)
			} else {
				out.PrintMessage(fmt.Sprintf("Status: %s", result.Status))
			}
			return nil
		},
	}
}
