package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pchouse/atqr/pkg/certreg"
	"github.com/pchouse/atqr/pkg/enrich"
	"github.com/pchouse/atqr/pkg/euvat"
	"github.com/pchouse/atqr/pkg/fiscalqr"
	"github.com/pchouse/atqr/pkg/httpserver"
	"github.com/pchouse/atqr/pkg/logger"
	"github.com/pchouse/atqr/pkg/messages"
	"github.com/pchouse/atqr/pkg/requestid"
	"github.com/pchouse/atqr/pkg/validateapi"
)

func runServe(cfg appConfig) error {
	log := logger.New(
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithLevel(cfg.LogLevel),
		logger.WithAttr(slog.String("app", "atqr")),
		logger.WithExtractor(requestid.LogExtractor()),
	)

	catalog, err := messages.New()
	if err != nil {
		return err
	}

	api := &apiServer{
		catalog: catalog,
		enricher: enrich.New(
			enrich.WithVATChecker(euvat.New()),
			enrich.WithCertificateRegistry(certreg.New()),
			enrich.WithRemoteValidator(validateapi.New(cfg.LookupTimeout), cfg.ValidateAPIURL),
			enrich.WithLogger(log),
		),
		lookupTimeout: cfg.LookupTimeout,
		logger:        log,
	}

	srv := httpserver.New(
		httpserver.WithAddr(fmt.Sprintf(":%d", cfg.Port)),
		httpserver.WithReadTimeout(cfg.ReadTimeout),
		httpserver.WithWriteTimeout(cfg.WriteTimeout),
		httpserver.WithShutdownTimeout(cfg.ShutdownTimeout),
		httpserver.WithLogger(log),
	)
	return srv.Run(context.Background(), api.routes())
}

type apiServer struct {
	catalog       *messages.Catalog
	enricher      *enrich.Enricher
	lookupTimeout time.Duration
	logger        *slog.Logger
}

func (s *apiServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(requestid.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Route("/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
	})
	return r
}

type validateRequest struct {
	Payload string `json:"payload"`
	Enrich  bool   `json:"enrich,omitempty"`
}

type apiError struct {
	Error string `json:"error"`
	Token string `json:"token,omitempty"`
}

// handleValidate decodes a payload posted as JSON. Field messages stay
// stable keys unless ?lang= asks for localized texts.
func (s *apiServer) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		s.writeJSON(r.Context(), w, http.StatusBadRequest, apiError{Error: "malformed request body"})
		return
	}

	res, err := fiscalqr.Parse(req.Payload)
	if err != nil {
		var perr *fiscalqr.ParseError
		if errors.As(err, &perr) {
			s.writeJSON(r.Context(), w, http.StatusUnprocessableEntity, apiError{Error: perr.Key, Token: perr.Token})
			return
		}
		s.logger.ErrorContext(r.Context(), "decode failed", "error", err)
		s.writeJSON(r.Context(), w, http.StatusInternalServerError, apiError{Error: "internal error"})
		return
	}

	var enrichment *enrich.Enrichment
	if req.Enrich {
		ctx, cancel := context.WithTimeout(r.Context(), s.lookupTimeout)
		defer cancel()
		enrichment = s.enricher.Enrich(ctx, req.Payload, res)
	}

	rep := buildReport(res, enrichment)
	if lang := r.URL.Query().Get("lang"); lang != "" {
		rep.localize(s.catalog, lang)
	}
	s.writeJSON(r.Context(), w, http.StatusOK, rep)
}

func (s *apiServer) writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.ErrorContext(ctx, "writing response failed", "error", err)
	}
}
