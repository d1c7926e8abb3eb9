package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MidasFlow/internal/config"
	"MidasFlow/internal/query"

	"github.com/gorilla/mux"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to the configuration file.")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Find the first enabled ClickHouse writer config; the API serves the
	// scores that writer stored.
	var chCfg *config.ClickHouseConfig
	for _, writerDef := range cfg.Writers {
		if writerDef.Enabled && writerDef.Type == "clickhouse" {
			chCfg = &writerDef.ClickHouse
			break
		}
	}
	if chCfg == nil {
		log.Fatalf("No enabled ClickHouse writer found in config. API server cannot start.")
	}

	querier, err := query.NewClickHouseQuerier(*chCfg)
	if err != nil {
		log.Fatalf("Failed to create querier: %v", err)
	}

	r := mux.NewRouter()
	apiHandler := &APIHandler{querier: querier}
	r.HandleFunc("/api/v1/anomalies/top", apiHandler.topAnomaliesHandler).Methods("POST")
	r.HandleFunc("/api/v1/edges/trace", apiHandler.traceEdgeHandler).Methods("POST")

	server := &http.Server{
		Addr:    cfg.API.ListenAddr,
		Handler: r,
	}

	go func() {
		log.Printf("API server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v", server.Addr, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("API server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("API server exited.")
}

// APIHandler holds the dependencies for API handlers.
type APIHandler struct {
	querier query.Querier
}

type topAnomaliesRequest struct {
	Since time.Time `json:"since"`
	Limit int       `json:"limit"`
}

// topAnomaliesHandler returns the worst-scoring edges since a timestamp.
func (h *APIHandler) topAnomaliesHandler(w http.ResponseWriter, r *http.Request) {
	var req topAnomaliesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("failed to decode request: %v", err), http.StatusBadRequest)
		return
	}

	edges, err := h.querier.TopAnomalies(r.Context(), req.Since, req.Limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to query anomalies: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, edges)
}

type traceEdgeRequest struct {
	Source uint64    `json:"source"`
	Dest   uint64    `json:"dest"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// traceEdgeHandler returns the stored score history of one edge.
func (h *APIHandler) traceEdgeHandler(w http.ResponseWriter, r *http.Request) {
	var req traceEdgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("failed to decode request: %v", err), http.StatusBadRequest)
		return
	}

	points, err := h.querier.TraceEdge(r.Context(), req.Source, req.Dest, req.Start, req.End)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to trace edge: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, points)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
