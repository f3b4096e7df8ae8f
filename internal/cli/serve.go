package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	svg2polylines "github.com/plotkit/svg2polylines"
	"github.com/plotkit/svg2polylines/svgraster"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an HTTP conversion service",
		Long: `Run an HTTP service with two endpoints:
POST /preview takes an SVG document body and returns polylines as JSON.
POST /render takes an SVG document body and returns a PNG preview.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg := opts.cfg
			if listen != "" {
				cfg.Serve.Listen = listen
			}
			conv, err := cfg.convertOptions()
			if err != nil {
				return err
			}
			srv := &server{logger: logger, conv: conv, raster: cfg.rasterOptions()}
			return srv.run(cmd.Context(), cfg.Serve.Listen)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default :8080)")
	return cmd
}

type server struct {
	logger *log.Logger
	conv   svg2polylines.Options
	raster svgraster.Options
}

func (s *server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/preview", s.handlePreview)
	r.Post("/render", s.handleRender)
	return r
}

func (s *server) run(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	err := <-errc
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *server) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// handlePreview converts the SVG body and answers with the polylines
// as a JSON array of point arrays.
func (s *server) handlePreview(w http.ResponseWriter, r *http.Request) {
	lines, err := svg2polylines.ParseReader(r.Body, s.conv)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.logger.Debug("converted", "polylines", len(lines))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lines)
}

// handleRender converts the SVG body and answers with a PNG preview.
func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	lines, err := svg2polylines.ParseReader(r.Body, s.conv)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := svgraster.RenderPNG(w, lines, s.raster); err != nil {
		s.logger.Error("encoding preview", "err", err)
	}
}
