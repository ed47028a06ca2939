// Package catalogctl implements the catalog maintenance CLI.
package catalogctl

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"storefront/internal/catalog"
	"storefront/internal/domain"
)

// app is the state shared by every subcommand for one invocation.
type app struct {
	storePath   string
	catalogName string

	svc  *catalog.Service
	kind domain.CatalogType
}

// withStore opens the store around run so the file lock is released even
// when the command fails.
func (a *app) withStore(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, err := catalog.OpenBolt(a.storePath)
		if err != nil {
			return fmt.Errorf("open %s: %w", a.storePath, err)
		}
		defer store.Close()
		a.svc = catalog.NewService(store)
		return run(cmd, args)
	}
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "catalogctl",
		Short: "Maintain storefront product catalogs",
		Long: `catalogctl edits the product catalogs stored in the storefront's catalog file.

CATALOGS:
  amazon_deals, ebooks, automation_apps

EXAMPLES:
  catalogctl list --catalog ebooks
  catalogctl add --title "Desk Lamp" --category Home --price "Rs 899"
  catalogctl update prod_1700000000000_ab12cd34e --status hot
  catalogctl export --catalog ebooks --out ebooks.json
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := domain.ParseCatalogType(a.catalogName)
			if !ok {
				return fmt.Errorf("unknown catalog %q", a.catalogName)
			}
			a.kind = kind
			return nil
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	defStore := os.Getenv("CATALOG_PATH")
	if defStore == "" {
		defStore = "./catalogs.db"
	}
	root.PersistentFlags().StringVar(&a.storePath, "store", defStore, "Catalog store file")
	root.PersistentFlags().StringVarP(&a.catalogName, "catalog", "c", string(domain.AmazonDeals), "Catalog to operate on")

	root.AddCommand(
		a.listCmd(),
		a.addCmd(),
		a.updateCmd(),
		a.deleteCmd(),
		a.duplicateCmd(),
		a.importCmd(),
		a.exportCmd(),
	)
	for _, c := range root.Commands() {
		c.RunE = a.withStore(c.RunE)
	}
	return root
}

// Execute runs the CLI with os.Args.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
