package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fin-tools/finsight/pkg/models/api"
	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/fin-tools/finsight/pkg/services/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetSummary(ctx context.Context, owner string, q analytics.Query) (domain.Summary, error) {
	args := m.Called(ctx, owner, q)
	return args.Get(0).(domain.Summary), args.Error(1)
}

func (m *mockService) GetActivePeriods(ctx context.Context, owner string, q analytics.Query) (domain.ActivePeriodsReport, error) {
	args := m.Called(ctx, owner, q)
	return args.Get(0).(domain.ActivePeriodsReport), args.Error(1)
}

func (m *mockService) GetTopTransactions(
	ctx context.Context,
	owner string,
	q analytics.Query,
	flow domain.Flow,
	limit int,
) ([]domain.RankedTransaction, error) {
	args := m.Called(ctx, owner, q, flow, limit)
	return args.Get(0).([]domain.RankedTransaction), args.Error(1)
}

func (m *mockService) GetTopCategories(
	ctx context.Context,
	owner string,
	q analytics.Query,
	flow domain.Flow,
	limit int,
) ([]domain.RankedCategory, error) {
	args := m.Called(ctx, owner, q, flow, limit)
	return args.Get(0).([]domain.RankedCategory), args.Error(1)
}

func (m *mockService) GetCategoriesBudget(ctx context.Context, owner string, q analytics.Query) ([]domain.CategoryBudget, error) {
	args := m.Called(ctx, owner, q)
	return args.Get(0).([]domain.CategoryBudget), args.Error(1)
}

func (m *mockService) GetBillsSummary(ctx context.Context, owner string) (domain.BillsReport, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(domain.BillsReport), args.Error(1)
}

func (m *mockService) GetDataCount(ctx context.Context, owner string) (domain.DataCount, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(domain.DataCount), args.Error(1)
}

func newRequest(method, target, user string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if user != "" {
		req.Header.Set(userHeader, user)
	}
	return req
}

func TestGetSummary(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		user           string
		setupMock      func(*mockService)
		expectedStatus int
		expectedBody   *api.Summary
	}{
		{
			name:   "successful response",
			target: "/api/v1/summary",
			user:   "user-1",
			setupMock: func(m *mockService) {
				m.On("GetSummary", mock.Anything, "user-1", analytics.Query{}).Return(
					domain.Summary{
						RemainingAmount: 300,
						RemainingChange: -25,
						IncomeAmount:    500,
						IncomeChange:    100,
						ExpensesAmount:  -200,
						ExpensesChange:  50,
					},
					nil,
				)
			},
			expectedStatus: http.StatusOK,
			expectedBody: &api.Summary{
				RemainingAmount: 300,
				RemainingChange: -25,
				IncomeAmount:    500,
				IncomeChange:    100,
				ExpensesAmount:  -200,
				ExpensesChange:  50,
			},
		},
		{
			name:   "query filters forwarded",
			target: "/api/v1/summary?from=2024-01-01&to=2024-01-31&accountId=acct-9",
			user:   "user-1",
			setupMock: func(m *mockService) {
				m.On("GetSummary", mock.Anything, "user-1", analytics.Query{
					From:      "2024-01-01",
					To:        "2024-01-31",
					AccountID: "acct-9",
				}).Return(domain.Summary{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   &api.Summary{},
		},
		{
			name:           "missing user header",
			target:         "/api/v1/summary",
			user:           "",
			setupMock:      func(m *mockService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "malformed date",
			target: "/api/v1/summary?from=not-a-date",
			user:   "user-1",
			setupMock: func(m *mockService) {
				m.On("GetSummary", mock.Anything, "user-1", mock.Anything).Return(
					domain.Summary{},
					fmt.Errorf("parse from: %w", analytics.ErrInvalidDate),
				)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "service failure",
			target: "/api/v1/summary",
			user:   "user-1",
			setupMock: func(m *mockService) {
				m.On("GetSummary", mock.Anything, "user-1", mock.Anything).Return(
					domain.Summary{},
					errors.New("storage unavailable"),
				)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			tt.setupMock(svc)
			handler := NewHandler(svc)

			w := httptest.NewRecorder()
			handler.GetSummary(w, newRequest(http.MethodGet, tt.target, tt.user))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != nil {
				var got api.Summary
				require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
				assert.Equal(t, *tt.expectedBody, got)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestGetActivePeriods(t *testing.T) {
	svc := &mockService{}
	svc.On("GetActivePeriods", mock.Anything, "user-1", analytics.Query{}).Return(
		domain.ActivePeriodsReport{
			ActivePeriods: []domain.ActivePeriod{
				{
					DateTrunc: domain.GranularityDay,
					Data: []domain.TimeBucket{
						{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Income: 100, Expenses: 40},
					},
				},
			},
			ZoomLevels: []domain.Granularity{domain.GranularityDay, domain.GranularityWeek},
		},
		nil,
	)
	handler := NewHandler(svc)

	w := httptest.NewRecorder()
	handler.GetActivePeriods(w, newRequest(http.MethodGet, "/api/v1/summary/active-periods", "user-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	var got api.ActivePeriodsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got.ActivePeriods, 1)
	assert.Equal(t, "day", got.ActivePeriods[0].DateTrunc)
	require.Len(t, got.ActivePeriods[0].ActivePeriodData, 1)
	assert.Equal(t, int64(100), got.ActivePeriods[0].ActivePeriodData[0].Income)
	assert.Equal(t, []string{"day", "week"}, got.ChartZoomLevel)
	svc.AssertExpectations(t)
}

func TestTopTransactions(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		flow           domain.Flow
		handle         func(*Handler, http.ResponseWriter, *http.Request)
		expectedLimit  int
		expectedStatus int
	}{
		{
			name:           "income default limit",
			target:         "/api/v1/summary/top-income-transactions",
			flow:           domain.FlowIncome,
			handle:         (*Handler).GetTopIncomeTransactions,
			expectedLimit:  analytics.DefaultRankLimit,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "expense explicit limit",
			target:         "/api/v1/summary/top-expense-transactions?limit=5",
			flow:           domain.FlowExpense,
			handle:         (*Handler).GetTopExpenseTransactions,
			expectedLimit:  5,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("GetTopTransactions", mock.Anything, "user-1", mock.Anything, tt.flow, tt.expectedLimit).Return(
				[]domain.RankedTransaction{
					{Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Amount: 900, Payee: "Acme Corp"},
				},
				nil,
			)
			handler := NewHandler(svc)

			w := httptest.NewRecorder()
			tt.handle(handler, w, newRequest(http.MethodGet, tt.target, "user-1"))

			assert.Equal(t, tt.expectedStatus, w.Code)
			var got api.TopTransactionsResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
			require.Len(t, got.TopTransactions, 1)
			assert.Equal(t, "Acme Corp", got.TopTransactions[0].Payee)
			svc.AssertExpectations(t)
		})
	}
}

func TestTopTransactions_InvalidLimit(t *testing.T) {
	for _, limit := range []string{"abc", "0", "-2"} {
		t.Run(limit, func(t *testing.T) {
			svc := &mockService{}
			handler := NewHandler(svc)

			w := httptest.NewRecorder()
			target := "/api/v1/summary/top-expense-transactions?limit=" + limit
			handler.GetTopExpenseTransactions(w, newRequest(http.MethodGet, target, "user-1"))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestTopCategories(t *testing.T) {
	svc := &mockService{}
	svc.On("GetTopCategories", mock.Anything, "user-1", mock.Anything, domain.FlowExpense, 3).Return(
		[]domain.RankedCategory{
			{Name: "Rent", Value: 50},
			{Name: "Groceries", Value: 40},
			{Name: analytics.OtherCategory, Value: 17},
		},
		nil,
	)
	handler := NewHandler(svc)

	w := httptest.NewRecorder()
	handler.GetTopExpenseCategories(w, newRequest(http.MethodGet, "/api/v1/summary/top-expense-categories?limit=3", "user-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	var got api.TopCategoriesResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got.TopCategories, 3)
	assert.Equal(t, analytics.OtherCategory, got.TopCategories[2].Name)
	svc.AssertExpectations(t)
}

func TestGetCategoriesBudget(t *testing.T) {
	svc := &mockService{}
	svc.On("GetCategoriesBudget", mock.Anything, "user-1", analytics.Query{}).Return(
		[]domain.CategoryBudget{
			{Name: "Groceries", Income: 0, Expense: 30, Budget: 100},
		},
		nil,
	)
	handler := NewHandler(svc)

	w := httptest.NewRecorder()
	handler.GetCategoriesBudget(w, newRequest(http.MethodGet, "/api/v1/summary/categories-budget", "user-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	var got api.CategoriesBudgetResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got.CategoriesBudgetData, 1)
	assert.Equal(t, int64(100), got.CategoriesBudgetData[0].Budget)
	svc.AssertExpectations(t)
}

func TestGetBills(t *testing.T) {
	svc := &mockService{}
	svc.On("GetBillsSummary", mock.Anything, "user-1").Return(
		domain.BillsReport{
			Bills: []domain.BillEntry{
				{Year: 2024, Month: "Jan", Name: "Rent", Status: "paid", DueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Amount: 1200000},
			},
			UniqueYears: []int{2024},
		},
		nil,
	)
	handler := NewHandler(svc)

	w := httptest.NewRecorder()
	handler.GetBills(w, newRequest(http.MethodGet, "/api/v1/summary/bills", "user-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	var got api.BillsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got.BillsData, 1)
	assert.Equal(t, "Jan", got.BillsData[0].Month)
	assert.Equal(t, []int{2024}, got.UniqueYears)
	svc.AssertExpectations(t)
}

func TestGetDataCount(t *testing.T) {
	svc := &mockService{}
	svc.On("GetDataCount", mock.Anything, "user-1").Return(
		domain.DataCount{Accounts: 2, Categories: 8, Transactions: 120, Bills: 6},
		nil,
	)
	handler := NewHandler(svc)

	w := httptest.NewRecorder()
	handler.GetDataCount(w, newRequest(http.MethodGet, "/api/v1/summary/data-count", "user-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	var got api.DataCountResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, int64(2), got.AccountCount)
	assert.Equal(t, int64(120), got.TransactionCount)
	svc.AssertExpectations(t)
}

func TestErrorBodyShape(t *testing.T) {
	svc := &mockService{}
	handler := NewHandler(svc)

	w := httptest.NewRecorder()
	handler.GetDataCount(w, newRequest(http.MethodGet, "/api/v1/summary/data-count", ""))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var got api.Error
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "unauthorized", got.Error)
}
