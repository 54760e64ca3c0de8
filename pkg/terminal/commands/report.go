package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/fin-tools/finsight/pkg/services/analytics"
	"github.com/fin-tools/finsight/pkg/store/sqlite"
	"github.com/fin-tools/finsight/pkg/store/sqlite/ledger"
	"github.com/fin-tools/finsight/pkg/terminal"
	"github.com/spf13/cobra"
)

type ReportCmd struct {
	dbPath    string
	user      string
	from      string
	to        string
	accountID string
	limit     int
	reporter  *terminal.Reporter
}

func NewReportCmd(reporter *terminal.Reporter) *cobra.Command {
	rc := &ReportCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a period summary with top categories",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.dbPath, "db", "finsight.db", "Path to the sqlite database")
	cmd.Flags().StringVar(&rc.user, "user", "", "User to report on")
	cmd.Flags().StringVar(&rc.from, "from", "", "Period start (yyyy-mm-dd, default 30 days ago)")
	cmd.Flags().StringVar(&rc.to, "to", "", "Period end (yyyy-mm-dd, default today)")
	cmd.Flags().StringVar(&rc.accountID, "account", "", "Restrict to one account")
	cmd.Flags().IntVar(&rc.limit, "limit", analytics.DefaultRankLimit, "Rank cutoff for category lists")

	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	db, err := sqlite.NewDB(sqlite.Settings{DbPath: rc.dbPath})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	store, err := ledger.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create ledger store: %w", err)
	}
	engine := analytics.NewEngine(store)

	query := analytics.Query{From: rc.from, To: rc.to, AccountID: rc.accountID}

	period, err := analytics.ResolvePeriod(time.Now(), rc.from, rc.to)
	if err != nil {
		return err
	}

	summary, err := engine.GetSummary(ctx, rc.user, query)
	if err != nil {
		return fmt.Errorf("failed to compute summary: %w", err)
	}

	topIncome, err := engine.GetTopCategories(ctx, rc.user, query, domain.FlowIncome, rc.limit)
	if err != nil {
		return fmt.Errorf("failed to rank income categories: %w", err)
	}

	topExpense, err := engine.GetTopCategories(ctx, rc.user, query, domain.FlowExpense, rc.limit)
	if err != nil {
		return fmt.Errorf("failed to rank expense categories: %w", err)
	}

	return rc.reporter.Handle(&terminal.Report{
		Owner:         rc.user,
		Period:        period,
		Summary:       summary,
		ZoomLevels:    analytics.ZoomLevels(period),
		TopIncomeCat:  topIncome,
		TopExpenseCat: topExpense,
	})
}
