package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/agencyops/internal/cli/formatter"
	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var (
		yes    bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load projects, budgets and expenses from a JSON bundle",
		Long: `Load a JSON bundle into the store in one transaction.

Records without an id are created. Records with an id replace the stored
record of that id. Nothing is written if any record is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := importer.Load(args[0])
			if err != nil {
				return err
			}
			if dryRun {
				if errs := importer.Validate(b); len(errs) > 0 {
					msgs := make([]string, len(errs))
					for i, e := range errs {
						msgs[i] = "  - " + e.Error()
					}
					return fmt.Errorf("bundle has %d problem(s):\n%s", len(errs), strings.Join(msgs, "\n"))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d record(s)\n", args[0], b.Count())
				return nil
			}

			ok, err := confirm(cmd, app, yes,
				fmt.Sprintf("Import %d record(s) from %s?", b.Count(), args[0]),
				"Records with an id overwrite the stored copy.")
			if err != nil || !ok {
				return err
			}

			result, err := app.Transfer.Import(cmd.Context(), b)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(docstore.Collections))
			for _, c := range docstore.Collections {
				rows = append(rows, []string{string(c), fmt.Sprintf("%d", result.Written[c])})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.RenderTable([]string{"COLLECTION", "WRITTEN"}, rows, 1))
			fmt.Fprintf(out, "%s %d created, %d replaced\n",
				formatter.Header("Imported"), result.Created, result.Replaced)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the bundle without writing")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every collection to a JSON bundle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			b, err := app.Transfer.Export(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" {
				return b.Encode(cmd.OutOrStdout())
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			defer func() {
				if cerr := f.Close(); cerr != nil {
					err = errors.Join(err, fmt.Errorf("closing %s: %w", out, cerr))
				}
			}()
			if err := b.Encode(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d record(s) to %s\n", b.Count(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to FILE instead of stdout")
	return cmd
}
