// Package summary exposes the analytics engine over HTTP. Handlers are thin:
// pull filters off the request, call the engine, map domain to API shapes.
package summary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fin-tools/finsight/pkg/adapters"
	"github.com/fin-tools/finsight/pkg/models/api"
	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/fin-tools/finsight/pkg/services/analytics"
	"github.com/rs/zerolog"
)

// userHeader carries the authenticated user id. Authentication itself lives
// in front of this service; an absent header is treated as unauthenticated.
const userHeader = "X-User-ID"

// Service is the engine surface the handlers consume.
type Service interface {
	GetSummary(ctx context.Context, owner string, q analytics.Query) (domain.Summary, error)
	GetActivePeriods(ctx context.Context, owner string, q analytics.Query) (domain.ActivePeriodsReport, error)
	GetTopTransactions(ctx context.Context, owner string, q analytics.Query, flow domain.Flow, limit int) ([]domain.RankedTransaction, error)
	GetTopCategories(ctx context.Context, owner string, q analytics.Query, flow domain.Flow, limit int) ([]domain.RankedCategory, error)
	GetCategoriesBudget(ctx context.Context, owner string, q analytics.Query) ([]domain.CategoryBudget, error)
	GetBillsSummary(ctx context.Context, owner string) (domain.BillsReport, error)
	GetDataCount(ctx context.Context, owner string) (domain.DataCount, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := requireUser(w, r)
	if !ok {
		return
	}

	summary, err := h.svc.GetSummary(ctx, owner, queryFromRequest(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, adapters.MapSummaryDomainToApi(summary))
}

func (h *Handler) GetActivePeriods(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := requireUser(w, r)
	if !ok {
		return
	}

	report, err := h.svc.GetActivePeriods(ctx, owner, queryFromRequest(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, adapters.MapActivePeriodsDomainToApi(report))
}

func (h *Handler) GetTopIncomeTransactions(w http.ResponseWriter, r *http.Request) {
	h.topTransactions(w, r, domain.FlowIncome)
}

func (h *Handler) GetTopExpenseTransactions(w http.ResponseWriter, r *http.Request) {
	h.topTransactions(w, r, domain.FlowExpense)
}

func (h *Handler) topTransactions(w http.ResponseWriter, r *http.Request, flow domain.Flow) {
	ctx := r.Context()
	owner, ok := requireUser(w, r)
	if !ok {
		return
	}
	limit, ok := limitFromRequest(w, r)
	if !ok {
		return
	}

	transactions, err := h.svc.GetTopTransactions(ctx, owner, queryFromRequest(r), flow, limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, api.TopTransactionsResponse{
		TopTransactions: adapters.MapRankedTransactionsDomainToApi(transactions),
	})
}

func (h *Handler) GetTopIncomeCategories(w http.ResponseWriter, r *http.Request) {
	h.topCategories(w, r, domain.FlowIncome)
}

func (h *Handler) GetTopExpenseCategories(w http.ResponseWriter, r *http.Request) {
	h.topCategories(w, r, domain.FlowExpense)
}

func (h *Handler) topCategories(w http.ResponseWriter, r *http.Request, flow domain.Flow) {
	ctx := r.Context()
	owner, ok := requireUser(w, r)
	if !ok {
		return
	}
	limit, ok := limitFromRequest(w, r)
	if !ok {
		return
	}

	categories, err := h.svc.GetTopCategories(ctx, owner, queryFromRequest(r), flow, limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, api.TopCategoriesResponse{
		TopCategories: adapters.MapRankedCategoriesDomainToApi(categories),
	})
}

func (h *Handler) GetCategoriesBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := requireUser(w, r)
	if !ok {
		return
	}

	budgets, err := h.svc.GetCategoriesBudget(ctx, owner, queryFromRequest(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, api.CategoriesBudgetResponse{
		CategoriesBudgetData: adapters.MapCategoryBudgetsDomainToApi(budgets),
	})
}

func (h *Handler) GetBills(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := requireUser(w, r)
	if !ok {
		return
	}

	report, err := h.svc.GetBillsSummary(ctx, owner)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, adapters.MapBillsReportDomainToApi(report))
}

func (h *Handler) GetDataCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := requireUser(w, r)
	if !ok {
		return
	}

	counts, err := h.svc.GetDataCount(ctx, owner)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, adapters.MapDataCountDomainToApi(counts))
}

func queryFromRequest(r *http.Request) analytics.Query {
	return analytics.Query{
		From:      r.URL.Query().Get("from"),
		To:        r.URL.Query().Get("to"),
		AccountID: r.URL.Query().Get("accountId"),
	}
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner := r.Header.Get(userHeader)
	if owner == "" {
		writeStatus(r.Context(), w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return owner, true
}

func limitFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return analytics.DefaultRankLimit, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		writeStatus(r.Context(), w, http.StatusBadRequest, "invalid limit")
		return 0, false
	}
	return limit, true
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, analytics.ErrInvalidDate) {
		writeStatus(ctx, w, http.StatusBadRequest, err.Error())
		return
	}
	zerolog.Ctx(ctx).Error().Err(err).Msg("summary request failed")
	writeStatus(ctx, w, http.StatusInternalServerError, "internal server error")
}

func writeStatus(ctx context.Context, w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(api.Error{Error: msg}); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode error response")
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}
