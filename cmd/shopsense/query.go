package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/shopsense/internal/domain/search/result"
)

// queryOptions are the flags of the offline ranking commands.
type queryOptions struct {
	userID    string
	productID string
	asJSON    bool
	logLevel  string
}

func (q *queryOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&q.userID, "user", "u", "", "user id whose history is read and appended")
	cmd.Flags().BoolVar(&q.asJSON, "json", false, "output results as JSON")
	cmd.Flags().StringVar(&q.logLevel, "log-level", "", "log level for diagnostics on stderr")
}

// withEngine builds the engine for one offline command and releases it afterwards.
func withEngine(cmd *cobra.Command, opts *rootOptions, q *queryOptions, fn func(context.Context, *engine) error) error {
	cfg, err := opts.load(true)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newCLILogger(q.logLevel)
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	eng, err := buildEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer eng.close()
	return fn(ctx, eng)
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	q := &queryOptions{}
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Rank catalog products against a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, opts, q, func(ctx context.Context, eng *engine) error {
				results, err := eng.services.Search.Search(ctx, q.userID, strings.Join(args, " "))
				if err != nil {
					return fmt.Errorf("search failed: %w", err)
				}
				if q.asJSON {
					return printJSON(cmd, rows(results))
				}
				printResults(cmd, results, scoreColumn)
				return nil
			})
		},
	}
	q.bind(cmd)
	return cmd
}

func newChatCmd(opts *rootOptions) *cobra.Command {
	q := &queryOptions{}
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Ask the shopping assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, opts, q, func(ctx context.Context, eng *engine) error {
				reply, err := eng.services.Chat.Chat(ctx, q.userID, strings.Join(args, " "))
				if err != nil {
					return fmt.Errorf("chat failed: %w", err)
				}
				if q.asJSON {
					return printJSON(cmd, struct {
						Message  string      `json:"message"`
						Products []resultRow `json:"products"`
					}{reply.Message, rows(reply.Results)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), reply.Message)
				fmt.Fprintln(cmd.OutOrStdout())
				printResults(cmd, reply.Results, scoreColumn)
				return nil
			})
		},
	}
	q.bind(cmd)
	return cmd
}

func newRecommendCmd(opts *rootOptions) *cobra.Command {
	q := &queryOptions{}
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend products for a user and an optional current product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(cmd, opts, q, func(ctx context.Context, eng *engine) error {
				results, err := eng.services.Recommend.Recommend(ctx, q.userID, q.productID)
				if err != nil {
					return fmt.Errorf("recommend failed: %w", err)
				}
				if q.asJSON {
					return printJSON(cmd, rows(results))
				}
				printResults(cmd, results, reasonColumn)
				return nil
			})
		},
	}
	q.bind(cmd)
	cmd.Flags().StringVarP(&q.productID, "product", "p", "", "id of the product being viewed")
	return cmd
}

// resultRow is the JSON shape of one ranked product.
type resultRow struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Price    float64  `json:"price"`
	Score    *float64 `json:"relevanceScore,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}

func rows(results []result.Result) []resultRow {
	out := make([]resultRow, len(results))
	for i := range results {
		p := results[i].Product()
		out[i] = resultRow{
			ID:       p.ID(),
			Name:     p.Name(),
			Category: p.Category(),
			Price:    p.Price(),
			Reason:   results[i].Reason(),
		}
		if results[i].Reason() == "" {
			s := results[i].Score()
			out[i].Score = &s
		}
	}
	return out
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

type column func(r *result.Result) string

func scoreColumn(r *result.Result) string { return fmt.Sprintf("%.3f", r.Score()) }

func reasonColumn(r *result.Result) string { return r.Reason() }

func printResults(cmd *cobra.Command, results []result.Result, extra column) {
	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No results found.")
		return
	}
	for i := range results {
		p := results[i].Product()
		// Format: [N] Name (id, category, price) extra
		fmt.Fprintf(cmd.OutOrStdout(), "  [%d] %s (#%s, %s, $%.2f) %s\n", i+1, p.Name(), p.ID(), p.Category(), p.Price(), extra(&results[i]))
	}
}
