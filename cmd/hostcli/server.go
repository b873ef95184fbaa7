package main

// server.go exposes a minimal HTTP debug surface over the CLI's shared
// debug host: a liveness probe and a raw invoke endpoint. Adapted from the
// teacher's virtual_machine.go HTTP /execute handler (go-chi router,
// golang.org/x/time/rate limiter) generalized from opcode execution to
// contract invocation.

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"contracthost/cmd/cli"
	"contracthost/core"
)

type invokeRequest struct {
	Contract string `json:"contract"`
	Function string `json:"function"`
}

type invokeResponse struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func newServerRouter(limiter *rate.Limiter) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/invoke", handleInvoke)
	return r
}

func handleInvoke(w http.ResponseWriter, r *http.Request) {
	var req invokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvokeError(w, http.StatusBadRequest, err)
		return
	}

	host, _, err := cli.DebugHost()
	if err != nil {
		writeInvokeError(w, http.StatusInternalServerError, err)
		return
	}

	addrBytes, err := hex.DecodeString(req.Contract)
	if err != nil {
		writeInvokeError(w, http.StatusBadRequest, err)
		return
	}
	addr, err := core.AddressFromBytes(addrBytes)
	if err != nil {
		writeInvokeError(w, http.StatusBadRequest, err)
		return
	}

	out, err := host.Invoke(addr, req.Function, nil)
	if err != nil {
		writeInvokeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(invokeResponse{Result: out.String()})
}

func writeInvokeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(invokeResponse{Error: err.Error()})
}

func serveCmd() *cobra.Command {
	var addr string
	var ratePerSec float64

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the /healthz and /invoke debug HTTP surface",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limiter := rate.NewLimiter(rate.Limit(ratePerSec), int(ratePerSec))
			srv := &http.Server{
				Addr:         addr,
				Handler:      newServerRouter(limiter),
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 10 * time.Second,
			}
			return srv.ListenAndServe()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8787", "listen address")
	cmd.Flags().Float64Var(&ratePerSec, "rate", 50, "requests per second")
	return cmd
}
