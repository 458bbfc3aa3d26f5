package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/kiruna-explorer/backend/pkg/catalog"
	"github.com/kiruna-explorer/backend/pkg/common"
	"github.com/kiruna-explorer/backend/pkg/filter"
	"github.com/kiruna-explorer/backend/pkg/store/memory"
	pgxstore "github.com/kiruna-explorer/backend/pkg/store/pgx"
)

// withCatalog opens a read-only view of the catalogue. Blob payloads are not
// needed by any command, so an empty in-memory blob store stands in.
func withCatalog(ctx context.Context, fn func(*catalog.Service) error) error {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	svc := catalog.NewService(pgxstore.NewCatalogDBStorageWithConnection(pool), memory.NewBlobStore(), catalog.Options{})
	return fn(svc)
}

var diagramCmd = &cobra.Command{
	Use:   "diagram",
	Short: "Print the diagram layout as JSON",
	Long: `Compute node positions, merged edges and the year axis exactly as the
API's /api/diagram endpoint does and print them as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd.Context(), func(svc *catalog.Service) error {
			d, err := svc.Diagram(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(d)
		})
	},
}

var searchFlags struct {
	title, documentType, stakeholder, from, to string
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "List documents matching the given filters",
	Long: `List documents matching every given filter.

Examples:
  catalogctl search --type Text
  catalogctl search --title plan --from 2014 --to 2016-06`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := buildFilter(cmd)
		if err != nil {
			return err
		}
		return withCatalog(cmd.Context(), func(svc *catalog.Service) error {
			docs, err := svc.SearchDocuments(cmd.Context(), f)
			if err != nil {
				return err
			}
			printDocuments(cmd.OutOrStdout(), docs)
			return nil
		})
	},
}

func buildFilter(cmd *cobra.Command) (filter.Filter, error) {
	var f filter.Filter
	flags := cmd.Flags()
	if flags.Changed("title") {
		f.Title = &searchFlags.title
	}
	if flags.Changed("type") {
		f.DocumentType = &searchFlags.documentType
	}
	if flags.Changed("stakeholder") {
		f.Stakeholders = []string{searchFlags.stakeholder}
	}
	for _, bound := range []struct {
		flag string
		raw  string
		dst  **common.PartialDate
	}{
		{"from", searchFlags.from, &f.IssuedFrom},
		{"to", searchFlags.to, &f.IssuedTo},
	} {
		if !flags.Changed(bound.flag) {
			continue
		}
		d, err := common.ParsePartialDate(bound.raw)
		if err != nil {
			return filter.Filter{}, fmt.Errorf("--%s: %w", bound.flag, err)
		}
		*bound.dst = &d
	}
	return f, nil
}

func printDocuments(w io.Writer, docs []common.Document) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents found")
		return
	}
	for _, d := range docs {
		date := d.IssuanceDate.String()
		if date == "" {
			date = "undated"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", d.ID, date, d.DocumentType, d.Title)
	}
}

func init() {
	searchCmd.Flags().StringVar(&searchFlags.title, "title", "", "case-insensitive title substring")
	searchCmd.Flags().StringVar(&searchFlags.documentType, "type", "", "exact document type")
	searchCmd.Flags().StringVar(&searchFlags.stakeholder, "stakeholder", "", "stakeholder the document must carry")
	searchCmd.Flags().StringVar(&searchFlags.from, "from", "", "earliest issuance date (YYYY, YYYY-MM or YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchFlags.to, "to", "", "latest issuance date")

	rootCmd.AddCommand(diagramCmd, searchCmd)
}
