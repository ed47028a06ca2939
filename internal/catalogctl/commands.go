package catalogctl

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"storefront/internal/domain"
	"storefront/internal/validate"
)

func (a *app) listCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the products of a catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := a.svc.Load(a.kind)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(products)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTATUS\tCATEGORY\tPRICE\tTITLE")
			for _, p := range products {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Status, p.Category, p.Price, p.Title)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d product(s) in %s\n", len(products), a.kind)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Print the catalog as JSON")
	return cmd
}

// productFlags binds the editable product fields to cmd's flags.
type productFlags struct {
	title, description, searchTerms, category string
	price, link, status                       string
	rating                                    float64
	reviews                                   int
	images                                    []string
}

func (f *productFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.title, "title", "", "Product title")
	fl.StringVar(&f.description, "description", "", "Description")
	fl.StringVar(&f.searchTerms, "search-terms", "", "Extra search keywords")
	fl.StringVar(&f.category, "category", "", "Category")
	fl.StringVar(&f.price, "price", "", `Display price, e.g. "Rs 1,299"`)
	fl.StringVar(&f.link, "link", "", "Outbound purchase link")
	fl.StringVar(&f.status, "status", "", "active, inactive, hot, trending or bestseller")
	fl.Float64Var(&f.rating, "rating", 0, "Rating 0-5")
	fl.IntVar(&f.reviews, "reviews", 0, "Review count")
	fl.StringArrayVar(&f.images, "image", nil, "Image URL (repeatable)")
}

func (f *productFlags) product() domain.Product {
	return domain.Product{
		Title:       f.title,
		Description: f.description,
		SearchTerms: f.searchTerms,
		Category:    f.category,
		Rating:      f.rating,
		Reviews:     f.reviews,
		Price:       f.price,
		Images:      f.images,
		Link:        f.link,
		Status:      domain.Status(f.status),
	}
}

// patch keeps only the flags given on the command line.
func (f *productFlags) patch(cmd *cobra.Command) domain.ProductPatch {
	var pp domain.ProductPatch
	changed := cmd.Flags().Changed
	if changed("title") {
		pp.Title = &f.title
	}
	if changed("description") {
		pp.Description = &f.description
	}
	if changed("search-terms") {
		pp.SearchTerms = &f.searchTerms
	}
	if changed("category") {
		pp.Category = &f.category
	}
	if changed("price") {
		pp.Price = &f.price
	}
	if changed("link") {
		pp.Link = &f.link
	}
	if changed("status") {
		st := domain.Status(f.status)
		pp.Status = &st
	}
	if changed("rating") {
		pp.Rating = &f.rating
	}
	if changed("reviews") {
		pp.Reviews = &f.reviews
	}
	if changed("image") {
		pp.Images = &f.images
	}
	return pp
}

func (a *app) addCmd() *cobra.Command {
	f := &productFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product to the front of a catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := f.product()
			if msg := validate.Product(&p); msg != "" {
				return fmt.Errorf("invalid product: %s", msg)
			}
			added, err := a.svc.Add(a.kind, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", added.ID)
			return nil
		},
	}
	f.bind(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (a *app) updateCmd() *cobra.Command {
	f := &productFlags{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pp := f.patch(cmd)
			if msg := validate.Patch(&pp); msg != "" {
				return fmt.Errorf("invalid product: %s", msg)
			}
			updated, err := a.svc.Update(a.kind, args[0], pp)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", updated.ID)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.Delete(a.kind, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func (a *app) duplicateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <id>",
		Short: "Copy a product under a new id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cp, err := a.svc.Duplicate(a.kind, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "duplicated %s as %s\n", args[0], cp.ID)
			return nil
		},
	}
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace a catalog with the products of a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var products []domain.Product
			if err := json.Unmarshal(raw, &products); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			seen := make(map[string]bool, len(products))
			for i, p := range products {
				if p.ID == "" || seen[p.ID] {
					return fmt.Errorf("%s: product %d has a missing or duplicate id", args[0], i)
				}
				seen[p.ID] = true
			}
			if err := a.svc.Replace(a.kind, products); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d product(s) into %s\n", len(products), a.kind)
			return nil
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a catalog as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := a.svc.Load(a.kind)
			if err != nil {
				return err
			}
			raw, err := json.MarshalIndent(products, "", "  ")
			if err != nil {
				return err
			}
			raw = append(raw, '\n')
			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(raw)
				return err
			}
			return os.WriteFile(outPath, raw, 0o644)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	return cmd
}
