package main

import "github.com/spf13/cobra"

func newRootCommand() *cobra.Command {
	var (
		configFlag    string
		catalogFlag   string
		catalogDBFlag string
		jsonFlag      bool
	)

	ctx := newCommandContext(&configFlag, &catalogFlag, &catalogDBFlag, &jsonFlag)

	rootCmd := &cobra.Command{
		Use:           "streamlinks",
		Short:         "Search the streaming-site directory",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return ctx.ensure(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&catalogFlag, "catalog", "", "Catalog file (.toml or .csv); default is the built-in catalog")
	rootCmd.PersistentFlags().StringVar(&catalogDBFlag, "catalog-db", "", "Load the catalog from this SQLite database")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Print JSON instead of tables")

	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newPopularCommand(ctx))
	rootCmd.AddCommand(newCategoryCommand(ctx))
	rootCmd.AddCommand(newSuggestCommand(ctx))
	rootCmd.AddCommand(newContentCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))

	return rootCmd
}
