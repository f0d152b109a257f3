package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conorfabian/streamlinks/internal/catalog"
	"github.com/conorfabian/streamlinks/pkg/models"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search catalog sites by name, description, category or feature",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sites := ctx.catalog.Search(strings.Join(args, " "))
			return printSites(cmd, ctx, sites)
		},
	}
}

func newPopularCommand(ctx *commandContext) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "popular",
		Short: "List the highest-rated sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printSites(cmd, ctx, ctx.catalog.Popular(n))
		},
	}
	cmd.Flags().IntVarP(&n, "number", "n", 6, "How many sites to show")
	return cmd
}

func newCategoryCommand(ctx *commandContext) *cobra.Command {
	var (
		status string
		sort   string
	)
	cmd := &cobra.Command{
		Use:   "category [slug]",
		Short: "List categories, or the sites in one category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return printCategories(cmd, ctx, ctx.catalog.Categories())
			}
			cat, ok := models.CategoryFromSlug(args[0])
			if !ok {
				return fmt.Errorf("unknown category %q", args[0])
			}
			sites, _ := ctx.catalog.List(catalog.ListQuery{Category: cat, Status: status, Sort: sort})
			return printSites(cmd, ctx, sites)
		},
	}
	cmd.Flags().StringVar(&status, "status", "all", "Filter by status: all, working, issues, down")
	cmd.Flags().StringVar(&sort, "sort", "rating", "Sort by rating, name or newest")
	return cmd
}

func printSites(cmd *cobra.Command, ctx *commandContext, sites []models.DirectorySite) error {
	if ctx.jsonOutput() {
		if sites == nil {
			sites = []models.DirectorySite{}
		}
		return writeJSON(cmd, sites)
	}
	if len(sites) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No sites found")
		return nil
	}
	rows := make([][]string, 0, len(sites))
	for _, s := range sites {
		rows = append(rows, []string{
			s.Name,
			string(s.Category),
			strconv.FormatFloat(s.Rating, 'f', 1, 64),
			string(s.AdLevel),
			string(s.Status),
			s.LastUpdated,
			s.URL,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Name", "Category", "Rating", "Ads", "Status", "Updated", "URL"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight},
	))
	return nil
}

func printCategories(cmd *cobra.Command, ctx *commandContext, rows []catalog.CategoryCount) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, rows)
	}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{string(r.Category), r.Slug, strconv.Itoa(r.Count), strconv.Itoa(r.Working)})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Category", "Slug", "Sites", "Working"},
		table,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
	))
	return nil
}
