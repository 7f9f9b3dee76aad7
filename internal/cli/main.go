package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "merchlink",
		Short:        "Match product titles against a phrase catalog and emit links",
		SilenceUsage: true,
		RunE:         run,
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.Flags().String("catalog", getenvDefault("MERCHLINK_CATALOG", ""), "Catalog CSV file")
	root.Flags().String("links", "", "Catalog HTML links page (alternative to --catalog)")
	root.Flags().String("config", getenvDefault("MERCHLINK_CONFIG", ""), "Config YAML file")
	root.Flags().String("db", getenvDefault("MERCHLINK_DB", ""), "SQLite catalog database")
	root.Flags().String("strategy", "", "Matching strategy: exact or scattered")
	root.Flags().String("title", "", "One-shot title to match (interactive mode otherwise)")
	root.Flags().String("out", "", "Directory for exported links.html and report.yaml")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
