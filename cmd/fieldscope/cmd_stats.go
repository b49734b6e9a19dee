package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fieldscope/cmd/fieldscope/ui"
	"fieldscope/internal/api"
)

var statsPerField bool

// statsCmd prints aggregate crop-stress statistics
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show crop-stress statistics",
	Long: `Show the aggregate stress distribution across all your fields for
the configured window (default 30 days, override with --days).

With --per-field, statistics for every field are fetched concurrently and
printed after the aggregate.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsPerField, "per-field", false, "Also fetch statistics for every field")
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx := context.Background()
	days := a.cfg.StatsDays

	overall, err := a.client.OverallStats(ctx, days)
	if err != nil {
		if api.IsUnauthorized(err) {
			return fmt.Errorf("not logged in — run 'fieldscope login'")
		}
		return fmt.Errorf("failed to fetch statistics: %w", err)
	}

	fmt.Printf("Last %d days: %d fields, %d images\n", days, overall.TotalFields, overall.TotalImages)
	printDistribution(overall.StressDistribution)

	if !statsPerField {
		return nil
	}

	fields, err := a.client.ListFields(ctx)
	if err != nil {
		return fmt.Errorf("failed to list fields: %w", err)
	}
	if len(fields) == 0 {
		return nil
	}

	// One request per field, bounded so a large account does not stampede
	// the service.
	var (
		mu      sync.Mutex
		results = make(map[int]api.FieldStats, len(fields))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, f := range fields {
		g.Go(func() error {
			stats, err := a.client.FieldStats(gctx, f.ID, days)
			if err != nil {
				return fmt.Errorf("field %d: %w", f.ID, err)
			}
			mu.Lock()
			results[f.ID] = stats
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, f := range fields {
		stats := results[f.ID]
		fmt.Printf("\n%s (field %d): %d images\n", f.Name, f.ID, stats.TotalImages)
		printDistribution(stats.StressDistribution)
	}
	return nil
}

// printDistribution writes stress counts healthiest-first.
func printDistribution(dist map[string]int) {
	if len(dist) == 0 {
		fmt.Println("  no analysis data yet")
		return
	}

	for _, level := range ui.SortStressLevels(dist) {
		fmt.Printf("  %-12s %d\n", level, dist[level])
	}
}
