package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the starter chart of accounts",
		Long:  "Creates Cash, Accounts Receivable, Accounts Payable, Owner's Equity, Revenue and Rent Expense. Names already in use are skipped.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := startApp(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close(context.Background())

			created, err := a.services.Account.SeedDefaultChart(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d accounts\n", created)
			return nil
		},
	}
}
