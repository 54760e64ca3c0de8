package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/fin-tools/finsight/pkg/handlers/summary"
	finsightmiddleware "github.com/fin-tools/finsight/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Summary handlers.Service
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(&logger, config.Dependencies)

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// ConfigureRouter wires every summary route under /api/v1/summary.
func ConfigureRouter(logger *zerolog.Logger, deps Dependencies) *chi.Mux {
	summaryHandler := handlers.NewHandler(deps.Summary)

	router := chi.NewRouter()
	router.Use(finsightmiddleware.Logger(logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1/summary", func(r chi.Router) {
		r.Get("/", summaryHandler.GetSummary)
		r.Get("/active-periods", summaryHandler.GetActivePeriods)
		r.Get("/data-count", summaryHandler.GetDataCount)
		r.Get("/top-income-transactions", summaryHandler.GetTopIncomeTransactions)
		r.Get("/top-expense-transactions", summaryHandler.GetTopExpenseTransactions)
		r.Get("/top-income-categories", summaryHandler.GetTopIncomeCategories)
		r.Get("/top-expense-categories", summaryHandler.GetTopExpenseCategories)
		r.Get("/categories-budget", summaryHandler.GetCategoriesBudget)
		r.Get("/bills", summaryHandler.GetBills)
	})

	return router
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
