package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conorfabian/streamlinks/internal/search"
	"github.com/conorfabian/streamlinks/pkg/models"
)

func newSuggestCommand(ctx *commandContext) *cobra.Command {
	var (
		scope string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Show autocomplete suggestions for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := search.ParseScope(scope)
			if err != nil {
				return err
			}
			resp := ctx.search.Suggest(cmd.Context(), search.Request{
				Query: strings.Join(args, " "),
				Scope: sc,
				Limit: limit,
			})
			if ctx.jsonOutput() {
				if err := writeJSON(cmd, resp); err != nil {
					return err
				}
			} else {
				printSuggestions(cmd, resp)
			}
			if resp.Failed() {
				return errors.New(resp.Error)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&scope, "type", "t", "all", "Scope: all, sites or content")
	cmd.Flags().IntVarP(&limit, "limit", "l", search.DefaultLimit, "Maximum number of suggestions")
	return cmd
}

func printSuggestions(cmd *cobra.Command, resp search.Response) {
	out := cmd.OutOrStdout()
	if len(resp.Suggestions) == 0 {
		fmt.Fprintln(out, "No suggestions")
		return
	}
	rows := make([][]string, 0, len(resp.Suggestions))
	for _, s := range resp.Suggestions {
		rows = append(rows, []string{string(s.Kind), s.Title, s.Subtitle, s.Icon})
	}
	fmt.Fprintln(out, renderTable([]string{"Kind", "Title", "Subtitle", "Icon"}, rows, nil))
	if resp.Error != "" {
		fmt.Fprintf(out, "warning: %s\n", resp.Error)
	}
}

func newContentCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "content <title>",
		Short: "Find which sites are likely to carry a movie, show or anime",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := ctx.search.SearchContent(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, results)
			}
			printContentResults(cmd, results)
			return nil
		},
	}
}

func printContentResults(cmd *cobra.Command, results []models.ContentResult) {
	out := cmd.OutOrStdout()
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		heading := r.Content.Title
		if r.Content.Year > 0 {
			heading += " (" + strconv.Itoa(r.Content.Year) + ")"
		}
		fmt.Fprintf(out, "%s [%s]\n", heading, r.Content.Type.Label())

		rows := make([][]string, 0, len(r.AvailableOn))
		for _, m := range r.AvailableOn {
			rows = append(rows, []string{m.Site.Name, string(m.Confidence), strconv.Itoa(m.Score), m.DirectSearchURL})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Site", "Confidence", "Score", "Search link"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight},
		))
	}
}
