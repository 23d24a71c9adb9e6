package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/pocket-ledger/backend/internal/ledger"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/spf13/cobra"
)

func newSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <YYYY>",
		Short: "Print the annual summary of a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := setup(os.Stderr); err != nil {
				return err
			}
			defer closeDB()

			summary, err := ledger.Annual(models.DB, args[0])
			if err != nil {
				return err
			}

			return printSummary(cmd.OutOrStdout(), summary)
		},
	}
}

func printSummary(out io.Writer, s ledger.AnnualSummary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(w, "Year\t%d\t\n", s.Year)
	fmt.Fprintf(w, "Income\t%s\t\n", s.Income)
	fmt.Fprintf(w, "Expense\t%s\t\n", s.Expense)
	fmt.Fprintf(w, "Savings\t%s\t\n", s.Savings)

	if len(s.Categories) > 0 {
		fmt.Fprintln(w, "\t\t")
		for _, c := range s.Categories {
			fmt.Fprintf(w, "%s\t%s\t\n", c.Name, c.Value)
		}
	}

	return w.Flush()
}
