// Package httpd exposes the portfolio backend over HTTP: the GitHub
// insights widget data, the contact form relay, and the read-only site
// content.
package httpd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/databricks/databricks-sdk-go/httpclient"
	"github.com/databricks/databricks-sdk-go/logger"

	"github.com/reqhiem/website/content"
	"github.com/reqhiem/website/insights"
	"github.com/reqhiem/website/notify"
)

type Server struct {
	Insights *insights.Service
	Mailer   *notify.Mailer
	Site     *content.Site
	Pages    []content.Page
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.health)
	mux.HandleFunc("/api/insights", s.insights)
	mux.HandleFunc("/api/contact", s.contact)
	mux.HandleFunc("/api/site", s.site)
	mux.HandleFunc("/api/pages/", s.page)
	return logRequests(mux)
}

// Serve blocks until ctx is cancelled, then drains in-flight requests.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		logger.Infof(ctx, "listening on %s", addr)
		errs <- srv.ListenAndServe()
	}()
	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	replyJSON(r.Context(), w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) insights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		replyError(r.Context(), w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	// Fetch never fails; degraded upstreams surface as empty data.
	replyJSON(r.Context(), w, http.StatusOK, s.Insights.Fetch(r.Context()))
}

func (s *Server) contact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.Method != http.MethodPost {
		replyError(ctx, w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	var sub notify.Submission
	err := json.NewDecoder(r.Body).Decode(&sub)
	if err != nil || !sub.Valid() {
		replyError(ctx, w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if s.Mailer == nil || !s.Mailer.Configured() {
		logger.Errorf(ctx, "contact relay misconfigured: missing brevo credentials")
		replyError(ctx, w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	err = s.Mailer.Send(ctx, sub)
	if err != nil {
		logger.Errorf(ctx, "contact relay: %s", err)
		replyError(ctx, w, upstreamStatus(err), "Failed to send email")
		return
	}
	replyJSON(ctx, w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) site(w http.ResponseWriter, r *http.Request) {
	if s.Site == nil {
		replyError(r.Context(), w, http.StatusNotFound, "Not Found")
		return
	}
	locale := content.DefaultLocale
	if q := r.URL.Query().Get("locale"); q != "" {
		parsed, err := content.ParseLocale(q)
		if err != nil {
			replyError(r.Context(), w, http.StatusBadRequest, err.Error())
			return
		}
		locale = parsed
	}
	replyJSON(r.Context(), w, http.StatusOK, map[string]any{
		"site":       s.Site,
		"nav":        s.Site.Nav(locale),
		"experience": s.Site.ExperienceSorted(),
		"featured":   s.Site.FeaturedProjects(),
	})
}

// page answers /api/pages/{locale}/{slug}.
func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rest := strings.TrimPrefix(r.URL.Path, "/api/pages/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 {
		replyError(ctx, w, http.StatusNotFound, "Not Found")
		return
	}
	locale, err := content.ParseLocale(parts[0])
	if err != nil {
		replyError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}
	page, ok := content.FindPage(s.Pages, parts[1], locale)
	if !ok {
		replyError(ctx, w, http.StatusNotFound, "Not Found")
		return
	}
	replyJSON(ctx, w, http.StatusOK, page)
}

// upstreamStatus passes the provider's status through when one exists,
// otherwise reports a bad gateway.
func upstreamStatus(err error) int {
	if errors.Is(err, notify.ErrNotConfigured) {
		return http.StatusInternalServerError
	}
	var httpErr *httpclient.HttpError
	if errors.As(err, &httpErr) && httpErr.StatusCode >= 400 {
		return httpErr.StatusCode
	}
	return http.StatusBadGateway
}

func replyJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		logger.Errorf(ctx, "encode response: %s", err)
	}
}

func replyError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	replyJSON(ctx, w, status, map[string]string{"error": message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		logger.Infof(r.Context(), "%s %s %d %s",
			r.Method, r.URL.Path, recorder.status,
			fmt.Sprintf("%dms", time.Since(started).Milliseconds()))
	})
}
