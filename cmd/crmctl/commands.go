package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/straye-as/sales-crm-api/internal/hierarchy"
	"github.com/straye-as/sales-crm-api/internal/period"
	"github.com/straye-as/sales-crm-api/internal/repository"
	"gorm.io/gorm"
)

// dbOpener connects to the CRM database; only the pending command needs one
type dbOpener func() (*gorm.DB, error)

func newRootCmd(open dbOpener) *cobra.Command {
	root := &cobra.Command{
		Use:   "crmctl",
		Short: "Operator tooling for the sales CRM",
		Long: `Operator tooling for the sales CRM.

Available subcommands:
  quarter - Show the date window of a quarter
  prorate - Spread a target amount over a period
  pending - List profiles waiting for a role or org assignment`,
		SilenceUsage: true,
	}
	root.AddCommand(newQuarterCmd(), newProRateCmd(), newPendingCmd(open))
	return root
}

func newQuarterCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   `quarter ["Q<n> <year>"]`,
		Short: "Show the date window of a quarter",
		Long: `Show the first and last day of a quarter given as "Q2 2026".
Without a label the quarter containing --date (default today) is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p period.Period
			switch {
			case len(args) == 1:
				var err error
				if p, err = period.ParseQuarter(args[0]); err != nil {
					return err
				}
			case date != "":
				t, err := time.Parse(period.DateLayout, date)
				if err != nil {
					return fmt.Errorf("%w: date %q", period.ErrInvalidPeriod, date)
				}
				p = period.CurrentQuarter(t)
			default:
				p = period.CurrentQuarter(time.Now())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.Label, p.Start.Format(period.DateLayout), p.End.Format(period.DateLayout))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD) whose quarter to show")
	return cmd
}

func newProRateCmd() *cobra.Command {
	var table bool
	cmd := &cobra.Command{
		Use:   "prorate <amount> <start> <end>",
		Short: "Spread a target amount over a period",
		Long: `Spread a target amount over [start, end] and print the covered months
with the monthly and quarterly share. Dates use YYYY-MM-DD.

--table uses whole calendar months as the aggregated target tables do.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			if !amount.IsPositive() {
				return fmt.Errorf("amount must be positive, got %s", amount)
			}
			p, err := period.Parse("", args[1], args[2], time.Now())
			if err != nil {
				return err
			}

			b := period.ProRate(amount, p.Start, p.End)
			if table {
				b = period.TableProRate(amount, p.Start, p.End)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "period\t%s\n", p)
			fmt.Fprintf(w, "months\t%s\n", b.Months.StringFixed(3))
			fmt.Fprintf(w, "monthly\t%s\n", b.Monthly.StringFixed(2))
			fmt.Fprintf(w, "quarterly\t%s\n", b.Quarterly.StringFixed(2))
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&table, "table", false, "use whole calendar months")
	return cmd
}

func newPendingCmd(open dbOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List profiles waiting for a role or org assignment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}

			profiles, err := repository.NewProfileRepository(db).List(cmd.Context(), repository.ProfileFilter{ActiveOnly: true})
			if err != nil {
				return fmt.Errorf("failed to list profiles: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tEMAIL\tROLE\tMISSING")
			n := 0
			for i := range profiles {
				a := hierarchy.Classify(profiles[i])
				if !a.Pending {
					continue
				}
				role := string(a.Role)
				if role == "" {
					role = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", profiles[i].DisplayName(), profiles[i].Email, role, strings.Join(a.Missing, ","))
				n++
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d pending\n", n)
			return nil
		},
	}
}
