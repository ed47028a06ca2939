package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/storefront"
	"storefront/internal/tui"
)

func main() {
	name := flag.String("catalog", string(domain.AmazonDeals), "catalog to open")
	flag.Parse()

	// stdout belongs to the terminal UI
	log.SetOutput(io.Discard)
	cfg := config.Load()
	if cfg.LogFile != "" {
		if f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
			log.SetOutput(f)
			defer f.Close()
		}
	}

	kind, ok := domain.ParseCatalogType(*name)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown catalog %q\n", *name)
		os.Exit(2)
	}

	store, err := catalog.OpenBolt(cfg.CatalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", cfg.CatalogPath, err)
		os.Exit(1)
	}
	defer store.Close()

	m, err := tui.New(catalog.NewService(store), kind, storefront.SessionOptions{
		Pipeline:  storefront.Pipeline{IncludePromotional: cfg.ShowPromotional},
		ReelDelay: cfg.ReelDelay,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer m.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
