package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	"github.com/SscSPs/bookkeeping_core/internal/core/services"
	"github.com/SscSPs/bookkeeping_core/internal/utils/export"
	"github.com/spf13/cobra"
)

func newExportCommand() *cobra.Command {
	var (
		output   string
		template bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the ledger as a zip of CSV tables",
		Long:  "Writes Transactions.csv and ChartOfAccounts.csv into one zip archive. With --template the starter chart and sample transactions are written instead and the database is not opened.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var snapshot domain.LedgerSnapshot
			if template {
				snapshot = services.TemplateLedger()
			} else {
				a, err := startApp(cmd.Context(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				defer a.close(context.Background())

				snapshot, err = a.services.Export.ExportLedger(cmd.Context())
				if err != nil {
					return err
				}
			}

			if output == "-" {
				return export.WriteArchive(cmd.OutOrStdout(), snapshot)
			}
			return writeArchiveFile(output, snapshot)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "archive path, - for stdout")
	cmd.Flags().BoolVar(&template, "template", false, "write the starter template instead of the stored ledger")
	return cmd
}

func writeArchiveFile(path string, snapshot domain.LedgerSnapshot) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return export.WriteArchive(f, snapshot)
}
