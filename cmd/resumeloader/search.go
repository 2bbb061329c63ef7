package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	resumatch "github.com/talentgrid/resumatch/pkg/sdk"
)

var (
	searchRole     string
	searchMinYears float64
	searchMaxYears float64
	searchSkills   []string
	searchTopK     int
	searchMinScore float64
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run a semantic search against the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return search(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchRole, "role", "", "exact role filter")
	searchCmd.Flags().Float64Var(&searchMinYears, "min-years", -1, "minimum years of experience")
	searchCmd.Flags().Float64Var(&searchMaxYears, "max-years", -1, "maximum years of experience")
	searchCmd.Flags().StringSliceVar(&searchSkills, "skills", nil, "required skills (any of)")
	searchCmd.Flags().IntVar(&searchTopK, "top-k", 5, "number of results")
	searchCmd.Flags().Float64Var(&searchMinScore, "min-score", 0, "drop matches scoring below this")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print raw JSON results")
}

func search(ctx context.Context, query string) error {
	matches, err := newClient().Search(ctx, resumatch.SearchRequest{
		Query:    query,
		Filters:  buildFilters(),
		TopK:     searchTopK,
		MinScore: searchMinScore,
	})
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if searchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}

	if len(matches) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for i, m := range matches {
		fmt.Printf("%2d. %-12s score=%.4f  %s (%gy)  %v\n",
			i+1, m.ID, m.Score, m.Role, m.Years, m.Skills)
	}
	return nil
}

func buildFilters() map[string]any {
	filters := make(map[string]any)
	if searchRole != "" {
		filters["role"] = searchRole
	}

	years := make(map[string]any)
	if searchMinYears >= 0 {
		years["$gte"] = searchMinYears
	}
	if searchMaxYears >= 0 {
		years["$lte"] = searchMaxYears
	}
	if len(years) > 0 {
		filters["years"] = years
	}

	if len(searchSkills) > 0 {
		filters["skills"] = map[string]any{"$in": searchSkills}
	}

	if len(filters) == 0 {
		return nil
	}
	return filters
}
