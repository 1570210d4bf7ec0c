package main

import (
	"context"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/thorne/topograph/internal/config"
	"github.com/thorne/topograph/internal/metadata"
)

var enrichTimeout time.Duration

func init() {
	enrichCmd.Flags().DurationVar(&enrichTimeout, "timeout", 30*time.Second, "Overall lookup deadline")
	rootCmd.AddCommand(enrichCmd)
}

var enrichCmd = &cobra.Command{
	Use:   "enrich <identifier>",
	Short: "Fetch page titles for a topic's or edge's URLs",
	Long: `Fetch page titles for a topic's or edge's URLs.

Lookups are best-effort: a URL that fails or times out is reported without
a title and does not affect the others. Rate limit and user agent come from
the global config; TG_LOOKUP_RATE in the environment (or a .env file)
overrides the rate.`,
	Args: cobra.ExactArgs(1),
	RunE: runEnrich,
}

// EnrichEntry is one URL's lookup outcome.
type EnrichEntry struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
	Error string `json:"error,omitempty"`
}

// EnrichResult is the response for the enrich command.
type EnrichResult struct {
	Identifier string        `json:"identifier"`
	Entries    []EnrichEntry `json:"entries"`
}

func runEnrich(cmd *cobra.Command, args []string) error {
	identifier := args[0]

	// Optional .env for lookup overrides, same habit as the data scripts
	// this toolkit grew out of. Absence is fine.
	godotenv.Load()

	root := mustFindRepository()
	cfg := mustLoadConfig(root)

	g, _, _ := loadGraph(root, cfg)
	urls := g.Index().URLsFor(identifier)
	if len(urls) == 0 {
		exitWithError(ExitDataError, "no urls attached to %s", identifier)
	}

	client := newLookupClient()

	ctx, cancel := context.WithTimeout(context.Background(), enrichTimeout)
	defer cancel()

	// One generation per display: results landing after the deadline (or
	// after a future invalidation) are discarded, never mixed in.
	var session metadata.Session
	token := session.Begin()

	entries := make([]EnrichEntry, len(urls))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i, u := range urls {
		entries[i] = EnrichEntry{URL: u}
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			info, err := client.Lookup(ctx, u)

			mu.Lock()
			defer mu.Unlock()
			if !session.Current(token) {
				return
			}
			if err != nil {
				entries[i].Error = err.Error()
				return
			}
			entries[i].Title = info.Title
		}(i, u)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		// Deadline hit: invalidate the generation so stragglers are
		// dropped, then report what resolved in time.
		mu.Lock()
		session.Begin()
		mu.Unlock()
	}

	mu.Lock()
	result := EnrichResult{Identifier: identifier, Entries: entries}
	mu.Unlock()

	if !humanOutput {
		outputJSON(result)
		return nil
	}

	for _, e := range result.Entries {
		switch {
		case e.Title != "":
			outputHuman("%s\n  %s\n", e.URL, e.Title)
		case e.Error != "":
			outputHuman("%s\n  (lookup failed: %s)\n", e.URL, e.Error)
		default:
			outputHuman("%s\n  (no title)\n", e.URL)
		}
	}
	return nil
}

// newLookupClient builds the metadata client from global config and
// environment overrides.
func newLookupClient() *metadata.Client {
	var opts []metadata.ClientOption

	if gc, err := config.LoadGlobalConfig(); err == nil {
		if gc.LookupUserAgent != "" {
			opts = append(opts, metadata.WithUserAgent(gc.LookupUserAgent))
		}
		if gc.LookupRateLimit > 0 {
			opts = append(opts, metadata.WithRateLimit(gc.LookupRateLimit))
		}
	}
	if v := os.Getenv("TG_LOOKUP_RATE"); v != "" {
		if rps, err := strconv.ParseFloat(v, 64); err == nil && rps > 0 {
			opts = append(opts, metadata.WithRateLimit(rps))
		}
	}

	return metadata.NewClient(opts...)
}
