// Package analytics turns a user's ledger of dated, signed amounts into
// period-bounded summaries, gapless trend series, ranked top-N views and
// budget/bill rollups. The engine holds no mutable state between calls;
// every operation is a pure function of the ledger snapshot, the resolved
// period and the filters.
package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/fin-tools/finsight/pkg/models/store"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Ledger is the single collaborator the engine consumes: set-based aggregate
// queries over the transaction and bill tables. An empty accountID means no
// account filter.
type Ledger interface {
	FinancialTotals(ctx context.Context, owner string, start, end time.Time, accountID string) (store.FinancialTotals, error)
	BucketedTotals(ctx context.Context, owner string, start, end time.Time, g domain.Granularity, accountID string) ([]store.BucketRow, error)
	TopTransactions(ctx context.Context, owner string, start, end time.Time, flow domain.Flow, limit int, accountID string) ([]store.TransactionRow, error)
	CategoryTotals(ctx context.Context, owner string, start, end time.Time, flow domain.Flow, accountID string) ([]store.CategoryTotal, error)
	CategoryActivity(ctx context.Context, owner string, start, end time.Time, accountID string) ([]store.CategoryActivity, error)
	BillGroups(ctx context.Context, owner string) ([]store.BillGroup, error)
	CountAccounts(ctx context.Context, owner string) (int64, error)
	CountCategories(ctx context.Context, owner string) (int64, error)
	CountTransactions(ctx context.Context, owner string) (int64, error)
	CountBills(ctx context.Context, owner string) (int64, error)
}

// Query carries the caller-supplied filters common to most operations.
// From and To are yyyy-mm-dd strings or empty; AccountID is empty for all
// accounts.
type Query struct {
	From      string
	To        string
	AccountID string
}

type Engine struct {
	ledger Ledger
	now    func() time.Time
}

func NewEngine(ledger Ledger) *Engine {
	return &Engine{
		ledger: ledger,
		now:    time.Now,
	}
}

// WithClock overrides the time source; tests pin "today" with it.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

func (e *Engine) resolve(q Query) (domain.Period, error) {
	return ResolvePeriod(e.now(), q.From, q.To)
}

// GetSummary compares the resolved period against the preceding one of
// identical length. The two scalar fetches are independent read queries and
// run in parallel; both must succeed.
func (e *Engine) GetSummary(ctx context.Context, owner string, q Query) (domain.Summary, error) {
	period, err := e.resolve(q)
	if err != nil {
		return domain.Summary{}, err
	}
	previous := PreviousPeriod(period)

	var current, last store.FinancialTotals
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = e.ledger.FinancialTotals(gctx, owner, period.Start, period.End, q.AccountID)
		return err
	})
	g.Go(func() error {
		var err error
		last, err = e.ledger.FinancialTotals(gctx, owner, previous.Start, previous.End, q.AccountID)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Summary{}, err
	}

	return domain.Summary{
		RemainingAmount: current.Remaining,
		RemainingChange: PercentageChange(current.Remaining, last.Remaining),
		IncomeAmount:    current.Income,
		IncomeChange:    PercentageChange(current.Income, last.Income),
		ExpensesAmount:  current.Expenses,
		ExpensesChange:  PercentageChange(current.Expenses, last.Expenses),
	}, nil
}

// GetActivePeriods builds one gapless bucket series per zoom level. The
// per-granularity fetches fan out concurrently and settle independently: a
// failed granularity is logged and dropped rather than failing the request.
func (e *Engine) GetActivePeriods(ctx context.Context, owner string, q Query) (domain.ActivePeriodsReport, error) {
	period, err := e.resolve(q)
	if err != nil {
		return domain.ActivePeriodsReport{}, err
	}

	levels := ZoomLevels(period)
	results := make([]*domain.ActivePeriod, len(levels))

	var wg sync.WaitGroup
	for i, level := range levels {
		wg.Add(1)
		go func(i int, level domain.Granularity) {
			defer wg.Done()
			rows, err := e.ledger.BucketedTotals(ctx, owner, period.Start, period.End, level, q.AccountID)
			if err != nil {
				zerolog.Ctx(ctx).Warn().
					Err(err).
					Str("granularity", string(level)).
					Msg("dropping bucket series")
				return
			}
			results[i] = &domain.ActivePeriod{
				DateTrunc: level,
				Data:      FillGaps(rows, period, level),
			}
		}(i, level)
	}
	wg.Wait()

	report := domain.ActivePeriodsReport{
		ActivePeriods: make([]domain.ActivePeriod, 0, len(levels)),
		ZoomLevels:    levels,
	}
	for _, r := range results {
		if r != nil {
			report.ActivePeriods = append(report.ActivePeriods, *r)
		}
	}
	return report, nil
}

// GetTopTransactions returns the limit highest-magnitude transactions of the
// given flow, amounts reported as absolute values.
func (e *Engine) GetTopTransactions(ctx context.Context, owner string, q Query, flow domain.Flow, limit int) ([]domain.RankedTransaction, error) {
	period, err := e.resolve(q)
	if err != nil {
		return nil, err
	}

	rows, err := e.ledger.TopTransactions(ctx, owner, period.Start, period.End, flow, ClampRankLimit(limit), q.AccountID)
	if err != nil {
		return nil, err
	}

	ranked := make([]domain.RankedTransaction, 0, len(rows))
	for _, r := range rows {
		ranked = append(ranked, domain.RankedTransaction{Date: r.Date, Amount: r.Amount, Payee: r.Payee})
	}
	return ranked, nil
}

// GetTopCategories groups the period's transactions of the given flow by
// category and applies the rank cutoff with the Other rollup.
func (e *Engine) GetTopCategories(ctx context.Context, owner string, q Query, flow domain.Flow, limit int) ([]domain.RankedCategory, error) {
	period, err := e.resolve(q)
	if err != nil {
		return nil, err
	}

	totals, err := e.ledger.CategoryTotals(ctx, owner, period.Start, period.End, flow, q.AccountID)
	if err != nil {
		return nil, err
	}

	categories := make([]domain.RankedCategory, 0, len(totals))
	for _, t := range totals {
		categories = append(categories, domain.RankedCategory{Name: t.Name, Value: t.Value})
	}
	return RankCategories(categories, limit), nil
}

// GetCategoriesBudget reports realized income and expense against each
// category's flat budget. Categories without in-period activity are omitted,
// not zero-filled.
func (e *Engine) GetCategoriesBudget(ctx context.Context, owner string, q Query) ([]domain.CategoryBudget, error) {
	period, err := e.resolve(q)
	if err != nil {
		return nil, err
	}

	rows, err := e.ledger.CategoryActivity(ctx, owner, period.Start, period.End, q.AccountID)
	if err != nil {
		return nil, err
	}

	budgets := make([]domain.CategoryBudget, 0, len(rows))
	for _, r := range rows {
		budgets = append(budgets, domain.CategoryBudget{
			Name:    r.Name,
			Income:  r.Income,
			Expense: r.Expense,
			Budget:  r.Budget,
		})
	}
	return budgets, nil
}

// GetBillsSummary rolls up all of the user's bills, independent of any date
// range.
func (e *Engine) GetBillsSummary(ctx context.Context, owner string) (domain.BillsReport, error) {
	groups, err := e.ledger.BillGroups(ctx, owner)
	if err != nil {
		return domain.BillsReport{}, err
	}
	return BuildBillsReport(groups), nil
}

// GetDataCount fetches the four record counts in parallel. Unlike the bucket
// fan-out these fail together: a count is cheap and a partial answer is not
// useful.
func (e *Engine) GetDataCount(ctx context.Context, owner string) (domain.DataCount, error) {
	var counts domain.DataCount

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts.Accounts, err = e.ledger.CountAccounts(gctx, owner)
		return err
	})
	g.Go(func() error {
		var err error
		counts.Categories, err = e.ledger.CountCategories(gctx, owner)
		return err
	})
	g.Go(func() error {
		var err error
		counts.Transactions, err = e.ledger.CountTransactions(gctx, owner)
		return err
	})
	g.Go(func() error {
		var err error
		counts.Bills, err = e.ledger.CountBills(gctx, owner)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.DataCount{}, err
	}
	return counts, nil
}
