package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vytor/speakflash/internal/models"
)

func newStatsCmd() *cobra.Command {
	var (
		category string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show learning progress",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := context.Background()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer closeInto(ctx, a, &err)

			stat, err := a.learner.Stats(ctx, models.CategoryFilter(category))
			if err != nil {
				return err
			}
			cats, err := a.learner.CategoryStats(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"summary": stat, "categories": cats})
			}
			return printStats(cmd.OutOrStdout(), *stat, cats)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "limit the summary to one category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printStats(out io.Writer, stat models.ProgressStat, cats []models.CategoryStat) error {
	if _, err := fmt.Fprintf(out, "items: %d  started: %d  due: %d  mastered: %d\n",
		stat.TotalItems, stat.StartedCards, stat.DueCards, stat.MasteredCards); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "reviews: %d  accuracy: %.1f%%  avg ease: %.2f\n\n",
		stat.TotalReviews, stat.Accuracy, stat.AvgEaseFactor); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tITEMS\tNEW\tLEARNING\tMASTERED\tDUE")
	for _, c := range cats {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\n",
			c.Category, c.TotalItems, c.NewCards, c.LearningCards, c.MasteredCards, c.DueCards)
	}
	return tw.Flush()
}
