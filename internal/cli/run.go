package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/merchlink/merchlink/pkg/merchlink"
	"github.com/merchlink/merchlink/pkg/merchlink/config"
	"github.com/merchlink/merchlink/pkg/merchlink/internalerr"
	"github.com/merchlink/merchlink/pkg/merchlink/store"
	"github.com/merchlink/merchlink/pkg/merchlink/store/sqlite"
)

func run(cmd *cobra.Command, _ []string) error {
	catalogPath, _ := cmd.Flags().GetString("catalog")
	linksPath, _ := cmd.Flags().GetString("links")
	configPath, _ := cmd.Flags().GetString("config")
	dbPath, _ := cmd.Flags().GetString("db")
	strategy, _ := cmd.Flags().GetString("strategy")
	title, _ := cmd.Flags().GetString("title")
	outDir, _ := cmd.Flags().GetString("out")

	ctx := context.Background()

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	if strategy != "" {
		cfg.Strategy = strategy
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var st store.Store
	if cfg.DBPath != "" {
		var err error
		if st, err = sqlite.Open(ctx, cfg.DBPath); err != nil {
			return fmt.Errorf("open catalog db: %w", err)
		}
	}

	engine, err := merchlink.New(merchlink.Options{Store: st, Config: cfg})
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := loadCatalog(ctx, cmd, engine, catalogPath, linksPath); err != nil {
		return err
	}

	if title != "" {
		if err := matchTitle(ctx, cmd, engine, title); err != nil {
			return err
		}
		return export(engine, outDir)
	}

	cmd.Println("Type a product title to match (Ctrl+D to exit):")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := matchTitle(ctx, cmd, engine, line); err != nil {
			cmd.PrintErrln("Error:", err)
		}
	}
	cmd.Println()
	return export(engine, outDir)
}

func loadCatalog(ctx context.Context, cmd *cobra.Command, engine *merchlink.Engine, catalogPath, linksPath string) error {
	switch {
	case catalogPath != "":
		f, err := os.Open(catalogPath)
		if err != nil {
			return fmt.Errorf("open catalog: %w", err)
		}
		defer f.Close()
		stats, err := engine.LoadCSV(ctx, f)
		if err != nil {
			return err
		}
		cmd.Printf("Loaded %d phrases (%d rows dropped)\n", stats.Loaded, stats.Dropped)
	case linksPath != "":
		f, err := os.Open(linksPath)
		if err != nil {
			return fmt.Errorf("open links page: %w", err)
		}
		defer f.Close()
		stats, err := engine.LoadHTML(ctx, f)
		if err != nil {
			return err
		}
		cmd.Printf("Loaded %d phrases from links (%d dropped)\n", stats.Loaded, stats.Dropped)
	}
	// With neither flag the engine keeps whatever the store already holds
	// (a previously persisted sqlite catalog, or nothing).
	return nil
}

func matchTitle(ctx context.Context, cmd *cobra.Command, engine *merchlink.Engine, title string) error {
	res, err := engine.Match(ctx, title)
	if errors.Is(err, internalerr.ErrEmptyCatalog) {
		return errors.New("no catalog loaded: pass --catalog, --links, or a --db with a stored catalog")
	}
	if err != nil {
		return err
	}

	cmd.Printf("\n%s\n", res.Highlighted)
	if len(res.Matches) == 0 {
		cmd.Println("No matches.")
		return nil
	}
	for i, c := range res.Matches {
		cmd.Printf("%2d. %-10s score=%d  %s -> %s\n", i+1, c.Type, c.Score, c.Entry.Anchor, c.Entry.URL)
	}
	cmd.Println()
	return nil
}

func export(engine *merchlink.Engine, outDir string) error {
	if outDir == "" {
		return nil
	}
	if _, ok := engine.LastResult(); !ok {
		return nil
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	links, err := os.Create(filepath.Join(outDir, "links.html"))
	if err != nil {
		return err
	}
	defer links.Close()
	if err := engine.ExportLinks(links); err != nil {
		return err
	}

	debug, err := os.Create(filepath.Join(outDir, "report.yaml"))
	if err != nil {
		return err
	}
	defer debug.Close()
	return engine.ExportDebug(debug)
}
