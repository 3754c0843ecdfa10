package main

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/alitto/pond/v2"
	"github.com/spf13/cobra"

	"github.com/NethermindEth/twitterbot/pkg/twitter"
)

type searchFlags struct {
	resultType  string
	maxID       int64
	sinceID     int64
	concurrency int
}

type queryResult struct {
	Query    string                  `json:"query"`
	Statuses []twitter.Tweet         `json:"statuses"`
	Metadata *twitter.SearchMetadata `json:"search_metadata,omitempty"`
	Err      error                   `json:"-"`
}

func newSearchCmd(a *app) *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search <query> [query...]",
		Short: "Search recent tweets, one page of 100 per query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}

			var results []queryResult
			err = a.spin(fmt.Sprintf("Searching %d quer%s...", len(args), plural(len(args), "y", "ies")), func() error {
				results = searchAll(cmd.Context(), a.client, args, flags.concurrency, opts)
				return nil
			})
			if err != nil {
				return err
			}

			if a.jsonOutput {
				if err := a.printJSON(results); err != nil {
					return err
				}
			} else {
				a.printResults(results)
			}

			var errs []error
			for _, r := range results {
				if r.Err != nil {
					errs = append(errs, fmt.Errorf("query %q: %w", r.Query, r.Err))
				}
			}
			return stderrors.Join(errs...)
		},
	}

	cmd.Flags().StringVar(&flags.resultType, "result-type", "", "mixed, recent or popular")
	cmd.Flags().Int64Var(&flags.maxID, "max-id", 0, "Only return tweets with an id at most this value")
	cmd.Flags().Int64Var(&flags.sinceID, "since-id", 0, "Only return tweets with an id greater than this value")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 4, "Number of queries run in parallel")

	return cmd
}

func (f *searchFlags) options(cmd *cobra.Command) ([]twitter.SearchOption, error) {
	if f.concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1, got %d", f.concurrency)
	}

	var opts []twitter.SearchOption
	switch rt := twitter.ResultType(f.resultType); rt {
	case "":
	case twitter.ResultMixed, twitter.ResultRecent, twitter.ResultPopular:
		opts = append(opts, twitter.WithResultType(rt))
	default:
		return nil, fmt.Errorf("invalid result type %q", f.resultType)
	}
	if cmd.Flags().Changed("max-id") {
		opts = append(opts, twitter.WithMaxID(f.maxID))
	}
	if cmd.Flags().Changed("since-id") {
		opts = append(opts, twitter.WithSinceID(f.sinceID))
	}
	return opts, nil
}

// searchAll runs every query on a bounded pool. Results keep the order of
// queries; a failed query carries its error instead of statuses.
func searchAll(ctx context.Context, client *twitter.Client, queries []string, concurrency int, opts []twitter.SearchOption) []queryResult {
	pool := pond.NewPool(concurrency)
	defer pool.StopAndWait()

	results := make([]queryResult, len(queries))
	tasks := make([]pond.Task, len(queries))
	for i, query := range queries {
		i, query := i, query
		results[i].Query = query
		tasks[i] = pool.SubmitErr(func() error {
			page, err := client.SearchPage(ctx, query, opts...)
			if err != nil {
				return err
			}
			results[i].Statuses = page.Statuses
			results[i].Metadata = &page.Metadata
			return nil
		})
	}

	for i, task := range tasks {
		results[i].Err = task.Wait()
	}
	return results
}

func (a *app) printResults(results []queryResult) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(a.out, "\n%s %s: %v\n", fail("❌"), r.Query, r.Err)
			continue
		}

		fmt.Fprintf(a.out, "\n%s %s: %d result%s\n", info("🔍"), r.Query, len(r.Statuses), plural(len(r.Statuses), "", "s"))
		for i := range r.Statuses {
			fmt.Fprintf(a.out, "\n  %s\n", info(r.Statuses[i].IDStr()))
			writeTweet(a.out, &r.Statuses[i])
		}
		if r.Metadata != nil && r.Metadata.NextResults != "" {
			fmt.Fprintf(a.out, "\n  %s more results: --max-id %d\n", warn("…"), nextMaxID(r.Statuses))
		}
	}
}

// nextMaxID is the cursor for the page after statuses.
func nextMaxID(statuses []twitter.Tweet) int64 {
	if len(statuses) == 0 {
		return 0
	}
	lowest := statuses[0].ID()
	for _, t := range statuses[1:] {
		if t.ID() < lowest {
			lowest = t.ID()
		}
	}
	return lowest - 1
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
