package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/asrs-advisor/internal/model"
	"github.com/sells-group/asrs-advisor/internal/pipeline"
)

var servePort int

type chatRequest struct {
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
	Scope   string `json:"scope,omitempty"`
	Style   string `json:"style,omitempty"`
}

type chatResponse struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP consultation endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		consultant, closeFn, err := initConsultant(ctx, false)
		if err != nil {
			return err
		}
		defer closeFn()

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))

		r.Get("/", handleHealth)
		r.Post("/chat", handleChat(consultant))

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ASRS advisor is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func handleChat(consultant *pipeline.Consultant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Message == "" {
			http.Error(w, `{"error":"message is required"}`, http.StatusBadRequest)
			return
		}

		consultReq := model.ConsultRequest{
			Text:  req.Message,
			Scope: model.Scope(req.Scope),
			Style: model.Style(req.Style),
		}
		if req.Context != "" {
			consultReq.Supplemental = []string{req.Context}
		}
		if err := validateScope(consultReq.Scope); err != nil {
			http.Error(w, `{"error":"unknown scope"}`, http.StatusBadRequest)
			return
		}

		result := consultant.Consult(r.Context(), consultReq)

		writeJSON(w, http.StatusOK, chatResponse{
			Role:      "assistant",
			Content:   result.Report,
			Timestamp: result.CreatedAt.Format(time.RFC3339),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
