package adapters

import (
	"github.com/fin-tools/finsight/pkg/models/api"
	"github.com/fin-tools/finsight/pkg/models/domain"
)

func MapSummaryDomainToApi(s domain.Summary) api.Summary {
	return api.Summary{
		RemainingAmount: s.RemainingAmount,
		RemainingChange: s.RemainingChange,
		IncomeAmount:    s.IncomeAmount,
		IncomeChange:    s.IncomeChange,
		ExpensesAmount:  s.ExpensesAmount,
		ExpensesChange:  s.ExpensesChange,
	}
}

func MapActivePeriodsDomainToApi(r domain.ActivePeriodsReport) api.ActivePeriodsResponse {
	resp := api.ActivePeriodsResponse{
		ActivePeriods:  make([]api.ActivePeriod, 0, len(r.ActivePeriods)),
		ChartZoomLevel: make([]string, 0, len(r.ZoomLevels)),
	}
	for _, p := range r.ActivePeriods {
		data := make([]api.TimeBucket, 0, len(p.Data))
		for _, b := range p.Data {
			data = append(data, api.TimeBucket{Date: b.Date, Income: b.Income, Expenses: b.Expenses})
		}
		resp.ActivePeriods = append(resp.ActivePeriods, api.ActivePeriod{
			DateTrunc:        string(p.DateTrunc),
			ActivePeriodData: data,
		})
	}
	for _, z := range r.ZoomLevels {
		resp.ChartZoomLevel = append(resp.ChartZoomLevel, string(z))
	}
	return resp
}

func MapRankedTransactionsDomainToApi(txs []domain.RankedTransaction) []api.RankedTransaction {
	out := make([]api.RankedTransaction, 0, len(txs))
	for _, t := range txs {
		out = append(out, api.RankedTransaction{Date: t.Date, Amount: t.Amount, Payee: t.Payee})
	}
	return out
}

func MapRankedCategoriesDomainToApi(categories []domain.RankedCategory) []api.RankedCategory {
	out := make([]api.RankedCategory, 0, len(categories))
	for _, c := range categories {
		out = append(out, api.RankedCategory{Name: c.Name, Value: c.Value})
	}
	return out
}

func MapCategoryBudgetsDomainToApi(budgets []domain.CategoryBudget) []api.CategoryBudget {
	out := make([]api.CategoryBudget, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, api.CategoryBudget{
			Name:    b.Name,
			Income:  b.Income,
			Expense: b.Expense,
			Budget:  b.Budget,
		})
	}
	return out
}

func MapBillsReportDomainToApi(r domain.BillsReport) api.BillsResponse {
	resp := api.BillsResponse{
		BillsData:   make([]api.BillEntry, 0, len(r.Bills)),
		UniqueYears: r.UniqueYears,
	}
	if resp.UniqueYears == nil {
		resp.UniqueYears = []int{}
	}
	for _, b := range r.Bills {
		resp.BillsData = append(resp.BillsData, api.BillEntry{
			Year:    b.Year,
			Month:   b.Month,
			Name:    b.Name,
			Status:  b.Status,
			DueDate: b.DueDate,
			Amount:  b.Amount,
		})
	}
	return resp
}

func MapDataCountDomainToApi(c domain.DataCount) api.DataCountResponse {
	return api.DataCountResponse{
		AccountCount:     c.Accounts,
		CategoriesCount:  c.Categories,
		TransactionCount: c.Transactions,
		BillsCount:       c.Bills,
	}
}
