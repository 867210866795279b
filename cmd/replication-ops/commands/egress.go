package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/savaki/replication-ops/internal/constants"
	"github.com/savaki/replication-ops/internal/egress"
	"github.com/savaki/replication-ops/internal/settings"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

// EgressResult is one line of egress check output
type EgressResult struct {
	URL        string `json:"url"                yaml:"url"`
	StatusCode int    `json:"statusCode"         yaml:"statusCode"`
	Body       string `json:"body,omitempty"     yaml:"body,omitempty"`
	Error      string `json:"error,omitempty"    yaml:"error,omitempty"`
}

// EgressCommand returns the egress command for checking outbound connectivity
func EgressCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "egress",
		Usage: "Check outbound network egress",
		Subcommands: []*cli.Command{
			{
				Name:  "check",
				Usage: "GET each URL once and print the status and body",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "url",
						Usage: fmt.Sprintf("URL to fetch; may be repeated (default EGRESS_CHECK_URL or %s)", constants.DefaultEgressURL),
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "HTTP client timeout (default EGRESS_TIMEOUT or 10s)",
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Maximum number of URLs checked at once (0 for unlimited)",
					},
					&cli.BoolFlag{
						Name:  "omit-body",
						Usage: "Only print status codes",
					},
					outputFlag,
				},
				Action: func(c *cli.Context) error {
					ctx := logger.WithContext(c.Context)

					s, err := settings.Load()
					if err != nil {
						return err
					}
					if c.IsSet("timeout") {
						s.EgressTimeout = c.Duration("timeout")
					}

					urls := c.StringSlice("url")
					if len(urls) == 0 {
						urls = []string{s.EgressURL}
					}

					client := &http.Client{Timeout: s.EgressTimeout}
					results, checkErr := checkAll(ctx, client, urls, c.Int("concurrency"))
					if c.Bool("omit-body") {
						for i := range results {
							results[i].Body = ""
						}
					}

					if err := render(c.App.Writer, c.String(outputFlag.Name), results); err != nil {
						return err
					}

					// results are printed first so every URL is visible; the exit
					// status still reflects any failed check
					return checkErr
				},
			},
		},
	}
}

// checkAll checks every URL concurrently, at most limit at a time when limit
// is positive. Every URL gets a result; a failed check does not cancel the
// others, and the first failure is returned once all checks finish.
func checkAll(ctx context.Context, client egress.Doer, urls []string, limit int) ([]EgressResult, error) {
	results := make([]EgressResult, len(urls))

	var group errgroup.Group
	if limit > 0 {
		group.SetLimit(limit)
	}

	for i, url := range urls {
		group.Go(func() error {
			results[i] = EgressResult{URL: url}

			result, err := egress.NewChecker(client, url).Check(ctx)
			if err != nil {
				results[i].Error = err.Error()
				return fmt.Errorf("egress check failed: %w", err)
			}

			results[i].StatusCode = result.StatusCode
			results[i].Body = result.Body
			return nil
		})
	}

	return results, group.Wait()
}
