package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/outreach-cli/internal/ingest"
	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/outreach"
)

const (
	maxUploadBytes  = 10 << 20
	maxRequestBytes = 1 << 20
	shutdownTimeout = 10 * time.Second
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for lead scoring and AI openers",
	Long: `Serves the lead dashboard API:

  GET  /health                   liveness probe
  POST /api/leads                score a CSV export (raw body or multipart "file")
  POST /api/openers              draft a 2-sentence opener
  POST /api/openers/deep-dive    draft an opener grounded in the company website
  POST /api/subjects             draft a subject line and mailto: link`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if err := cfg.Validate("serve"); err != nil {
		return err
	}

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: newRouter(routerDeps{
			writer:         newGenerator(),
			requestsPerSec: cfg.Anthropic.RequestsPerSecond,
			salesGoal:      cfg.Outreach.SalesGoal,
			allowedOrigins: cfg.Server.AllowedOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zap.L().Info("starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "serve: listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return eris.Wrap(srv.Shutdown(shutdownCtx), "serve: shutdown")
	})
	return g.Wait()
}

type routerDeps struct {
	writer         outreach.Copywriter
	requestsPerSec float64
	salesGoal      string
	allowedOrigins []string
}

type api struct {
	writer    outreach.Copywriter
	batch     *outreach.Batch
	salesGoal string
}

// newRouter builds the HTTP API around a Copywriter. Every AI endpoint
// shares one limiter at deps.requestsPerSec.
func newRouter(deps routerDeps) http.Handler {
	writer := outreach.NewThrottled(deps.writer, deps.requestsPerSec)
	a := &api{
		writer:    writer,
		batch:     outreach.NewBatch(writer, 0),
		salesGoal: deps.salesGoal,
	}

	origins := deps.allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/leads", a.handleLeads)
		r.Post("/openers", a.handleOpener)
		r.Post("/openers/deep-dive", a.handleDeepDive)
		r.Post("/subjects", a.handleSubject)
	})
	return r
}

type leadsResponse struct {
	Leads []model.Lead `json:"leads"`
	Count int          `json:"count"`
}

func (a *api) handleLeads(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	text, err := readUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	leads, err := ingest.Load(text, ingest.ProcessOptions{})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ingest.ErrMalformedInput) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}

	writeJSON(w, http.StatusOK, leadsResponse{Leads: leads, Count: len(leads)})
}

// readUpload returns the CSV text from a multipart "file" field or the raw body.
func readUpload(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		f, _, err := r.FormFile("file")
		if err != nil {
			return "", eris.Wrap(err, "serve: read upload")
		}
		defer f.Close() //nolint:errcheck
		data, err := io.ReadAll(f)
		return string(data), eris.Wrap(err, "serve: read upload")
	}

	data, err := io.ReadAll(r.Body)
	return string(data), eris.Wrap(err, "serve: read body")
}

type textResponse struct {
	Opener  string `json:"opener,omitempty"`
	Subject string `json:"subject,omitempty"`
	Mailto  string `json:"mailto,omitempty"`
}

func (a *api) handleOpener(w http.ResponseWriter, r *http.Request) {
	var in outreach.OpenerInput
	if !decodeBody(w, r, &in) {
		return
	}
	if in.SalesGoal == "" {
		in.SalesGoal = a.salesGoal
	}

	opener, err := a.writer.Opener(r.Context(), in)
	if err != nil {
		writeGenerationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Opener: opener})
}

func (a *api) handleDeepDive(w http.ResponseWriter, r *http.Request) {
	var in outreach.DeepDiveInput
	if !decodeBody(w, r, &in) {
		return
	}
	if in.SalesGoal == "" {
		in.SalesGoal = a.salesGoal
	}

	opener, err := a.writer.DeepDiveOpener(r.Context(), in)
	if err != nil {
		writeGenerationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Opener: opener})
}

type subjectRequest struct {
	outreach.SubjectInput
	OwnerEmail string `json:"ownerEmail"`
}

func (a *api) handleSubject(w http.ResponseWriter, r *http.Request) {
	var req subjectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	goal := req.SalesGoal
	if goal == "" {
		goal = a.salesGoal
	}

	lead := model.Lead{
		CompanyName:  req.CompanyName,
		Industry:     req.Industry,
		OwnerEmail:   req.OwnerEmail,
		AIOpener:     req.Opener,
		OpenerStatus: model.OpenerGenerated,
	}
	subject := a.batch.GenerateSubject(r.Context(), &lead, goal)

	resp := textResponse{Subject: subject}
	if lead.OwnerEmail != "" {
		resp.Mailto = outreach.MailtoURL(lead, subject)
	}
	writeJSON(w, http.StatusOK, resp)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, eris.Wrap(err, "serve: invalid request body"))
		return false
	}
	return true
}

func writeGenerationError(w http.ResponseWriter, err error) {
	if errors.Is(err, outreach.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	zap.L().Warn("generation failed", zap.Error(err))
	writeError(w, http.StatusBadGateway, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
