// Package ledger implements the aggregate query layer over the transaction
// and bill tables: scalar and grouped sums the analytics engine consumes.
// All queries are read-only and scoped to a single owner.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/fin-tools/finsight/pkg/models/store"
)

const dateLayout = "2006-01-02"

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &Store{db: db}, nil
}

// flowCondition returns the sign predicate for a transaction flow.
func flowCondition(flow domain.Flow) (string, error) {
	switch flow {
	case domain.FlowIncome:
		return "t.amount > 0", nil
	case domain.FlowExpense:
		return "t.amount < 0", nil
	default:
		return "", fmt.Errorf("unknown flow %q", flow)
	}
}

// bucketExpr returns the SQL expression truncating t.date to the start of
// its calendar unit. Weeks are ISO, Monday start: stepping back six days and
// forward to the next-or-same Monday lands on the week's Monday for every
// weekday.
func bucketExpr(g domain.Granularity) (string, error) {
	switch g {
	case domain.GranularityDay:
		return "t.date", nil
	case domain.GranularityWeek:
		return "date(t.date, '-6 days', 'weekday 1')", nil
	case domain.GranularityMonth:
		return "strftime('%Y-%m-01', t.date)", nil
	case domain.GranularityYear:
		return "strftime('%Y-01-01', t.date)", nil
	default:
		return "", fmt.Errorf("unknown granularity %q", g)
	}
}

// periodFilter is the shared owner/date predicate. Every transaction query
// joins accounts to scope by owner and appends the optional account filter
// the same way.
func periodFilter(accountID string) string {
	filter := "a.user_id = ? AND t.date >= ? AND t.date <= ?"
	if accountID != "" {
		filter += " AND t.account_id = ?"
	}
	return filter
}

func periodArgs(owner string, start, end time.Time, accountID string) []any {
	args := []any{owner, start.Format(dateLayout), end.Format(dateLayout)}
	if accountID != "" {
		args = append(args, accountID)
	}
	return args
}

func (s *Store) FinancialTotals(
	ctx context.Context,
	owner string,
	start, end time.Time,
	accountID string,
) (store.FinancialTotals, error) {
	query := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(CASE WHEN t.amount > 0 THEN t.amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN t.amount < 0 THEN t.amount ELSE 0 END), 0) AS expenses,
			COALESCE(SUM(t.amount), 0) AS remaining
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE %s`, periodFilter(accountID))

	var totals store.FinancialTotals
	err := s.db.QueryRowContext(ctx, query, periodArgs(owner, start, end, accountID)...).
		Scan(&totals.Income, &totals.Expenses, &totals.Remaining)
	if err != nil {
		return store.FinancialTotals{}, fmt.Errorf("query financial totals: %w", err)
	}
	return totals, nil
}

func (s *Store) BucketedTotals(
	ctx context.Context,
	owner string,
	start, end time.Time,
	g domain.Granularity,
	accountID string,
) ([]store.BucketRow, error) {
	bucket, err := bucketExpr(g)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			%[1]s AS bucket_start,
			SUM(CASE WHEN t.amount >= 0 THEN t.amount ELSE 0 END) AS income,
			SUM(CASE WHEN t.amount < 0 THEN -t.amount ELSE 0 END) AS expenses
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE %[2]s
		GROUP BY %[1]s
		ORDER BY %[1]s`, bucket, periodFilter(accountID))

	rows, err := s.db.QueryContext(ctx, query, periodArgs(owner, start, end, accountID)...)
	if err != nil {
		return nil, fmt.Errorf("query bucketed totals: %w", err)
	}
	defer rows.Close()

	buckets := make([]store.BucketRow, 0)
	for rows.Next() {
		var (
			raw             string
			income, expense int64
		)
		if err := rows.Scan(&raw, &income, &expense); err != nil {
			return nil, err
		}
		bucketStart, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse bucket date %q: %w", raw, err)
		}
		buckets = append(buckets, store.BucketRow{
			BucketStart: bucketStart,
			Income:      income,
			Expenses:    expense,
		})
	}
	return buckets, rows.Err()
}

func (s *Store) TopTransactions(
	ctx context.Context,
	owner string,
	start, end time.Time,
	flow domain.Flow,
	limit int,
	accountID string,
) ([]store.TransactionRow, error) {
	sign, err := flowCondition(flow)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT t.date, ABS(t.amount) AS amount, t.payee
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE %s AND %s
		ORDER BY ABS(t.amount) DESC, t.id ASC
		LIMIT ?`, periodFilter(accountID), sign)

	args := append(periodArgs(owner, start, end, accountID), limit)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query top transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]store.TransactionRow, 0, limit)
	for rows.Next() {
		var (
			raw    string
			amount int64
			payee  string
		)
		if err := rows.Scan(&raw, &amount, &payee); err != nil {
			return nil, err
		}
		date, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse transaction date %q: %w", raw, err)
		}
		transactions = append(transactions, store.TransactionRow{
			Date:   date,
			Amount: amount,
			Payee:  payee,
		})
	}
	return transactions, rows.Err()
}

func (s *Store) CategoryTotals(
	ctx context.Context,
	owner string,
	start, end time.Time,
	flow domain.Flow,
	accountID string,
) ([]store.CategoryTotal, error) {
	sign, err := flowCondition(flow)
	if err != nil {
		return nil, err
	}

	// The inner join drops uncategorized transactions on purpose.
	query := fmt.Sprintf(`
		SELECT c.name, SUM(ABS(t.amount)) AS value
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		JOIN categories c ON c.id = t.category_id
		WHERE %s AND %s
		GROUP BY c.name
		ORDER BY value DESC, c.name ASC`, periodFilter(accountID), sign)

	rows, err := s.db.QueryContext(ctx, query, periodArgs(owner, start, end, accountID)...)
	if err != nil {
		return nil, fmt.Errorf("query category totals: %w", err)
	}
	defer rows.Close()

	totals := make([]store.CategoryTotal, 0)
	for rows.Next() {
		var t store.CategoryTotal
		if err := rows.Scan(&t.Name, &t.Value); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (s *Store) CategoryActivity(
	ctx context.Context,
	owner string,
	start, end time.Time,
	accountID string,
) ([]store.CategoryActivity, error) {
	// Income and expense are summed separately so a category with both
	// inflows and outflows reports each side, not the net.
	query := fmt.Sprintf(`
		SELECT
			c.name,
			c.budget,
			COALESCE(SUM(CASE WHEN t.amount > 0 THEN t.amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN t.amount < 0 THEN -t.amount ELSE 0 END), 0) AS expense
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		JOIN categories c ON c.id = t.category_id
		WHERE %s
		GROUP BY c.name, c.budget
		ORDER BY SUM(t.amount) DESC`, periodFilter(accountID))

	rows, err := s.db.QueryContext(ctx, query, periodArgs(owner, start, end, accountID)...)
	if err != nil {
		return nil, fmt.Errorf("query category activity: %w", err)
	}
	defer rows.Close()

	activity := make([]store.CategoryActivity, 0)
	for rows.Next() {
		var a store.CategoryActivity
		if err := rows.Scan(&a.Name, &a.Budget, &a.Income, &a.Expense); err != nil {
			return nil, err
		}
		activity = append(activity, a)
	}
	return activity, rows.Err()
}

func (s *Store) BillGroups(ctx context.Context, owner string) ([]store.BillGroup, error) {
	query := `
		SELECT
			CAST(strftime('%Y', due_date) AS INTEGER) AS year,
			CAST(strftime('%m', due_date) AS INTEGER) AS month,
			name,
			status,
			due_date,
			SUM(amount) AS amount
		FROM bills
		WHERE user_id = ?
		GROUP BY year, month, name, status, due_date
		ORDER BY year, month`

	rows, err := s.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("query bill groups: %w", err)
	}
	defer rows.Close()

	groups := make([]store.BillGroup, 0)
	for rows.Next() {
		var (
			g   store.BillGroup
			raw string
		)
		if err := rows.Scan(&g.Year, &g.Month, &g.Name, &g.Status, &raw, &g.Amount); err != nil {
			return nil, err
		}
		dueDate, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse bill due date %q: %w", raw, err)
		}
		g.DueDate = dueDate
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (s *Store) CountAccounts(ctx context.Context, owner string) (int64, error) {
	return s.count(ctx, "SELECT COUNT(id) FROM accounts WHERE user_id = ?", owner)
}

func (s *Store) CountCategories(ctx context.Context, owner string) (int64, error) {
	return s.count(ctx, "SELECT COUNT(id) FROM categories WHERE user_id = ?", owner)
}

func (s *Store) CountTransactions(ctx context.Context, owner string) (int64, error) {
	query := `
		SELECT COUNT(t.id)
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = ?`
	return s.count(ctx, query, owner)
}

func (s *Store) CountBills(ctx context.Context, owner string) (int64, error) {
	return s.count(ctx, "SELECT COUNT(id) FROM bills WHERE user_id = ?", owner)
}

func (s *Store) count(ctx context.Context, query string, owner string) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, query, owner).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return n, nil
}
