package commands

import (
	"fmt"
	"os"

	"github.com/pocket-ledger/backend/internal/events"
	"github.com/pocket-ledger/backend/internal/ledger"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/spf13/cobra"
)

func newApplyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <YYYY-MM>",
		Short: "Create the transactions of all recurring templates for a month",
		Long: "Create one transaction on the first day of the month for every recurring template.\n" +
			"Templates already applied to the month are skipped, running the command again is safe.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := setup(os.Stderr); err != nil {
				return err
			}
			defer closeDB()

			result, err := ledger.Apply(models.DB, args[0])
			if err != nil {
				return err
			}

			if result.Created > 0 {
				events.Publish(cmd.Context(), events.New(events.TemplatesApplied, result))
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d created, %d skipped\n", result.Month, result.Created, result.Skipped)
			return err
		},
	}
}
