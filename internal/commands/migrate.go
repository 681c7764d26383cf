package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/platform/schema"
	"github.com/SscSPs/bookkeeping_core/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			db, engine, err := openMigrated(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer database.CloseSQLite(db)

			out := cmd.OutOrStdout()
			if !status {
				version, err := engine.CurrentVersion(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "schema at version %d (latest known %d)\n", version, engine.LatestVersion())
				return nil
			}

			applied, err := engine.Applied(cmd.Context())
			if err != nil {
				return err
			}
			return printLedger(out, applied)
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "list applied migrations")

	return cmd
}

func printLedger(w io.Writer, rows []schema.AppliedMigration) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tDESCRIPTION\tAPPLIED AT")
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", row.Version, row.Description, row.AppliedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}
