package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dualquery/orchestrator/internal/adapter/backend"
	"github.com/dualquery/orchestrator/internal/adapter/llm"
	"github.com/dualquery/orchestrator/internal/combiner"
	"github.com/dualquery/orchestrator/internal/config"
	"github.com/dualquery/orchestrator/internal/domain"
	"github.com/dualquery/orchestrator/internal/routing"
	"github.com/dualquery/orchestrator/internal/service"
	"github.com/dualquery/orchestrator/internal/store"
	transport "github.com/dualquery/orchestrator/internal/transport/http"
	"github.com/dualquery/orchestrator/internal/workflow"
	"github.com/dualquery/orchestrator/policy"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting supervisor orchestrator...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("SQL backend: %s", cfg.SQLBackendURL)
	log.Printf("RAG backend: %s", cfg.RAGBackendURL)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize backend clients
	sqlBackend := backend.NewBackend(domain.AgentSQL, cfg.SQLBackendURL, cfg.SQLKeywords, cfg.BackendTimeout)
	ragBackend := backend.NewBackend(domain.AgentRAG, cfg.RAGBackendURL, cfg.RAGKeywords, cfg.BackendTimeout)

	// Initialize LLM client and combiner
	llmClient := llm.NewLLMClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	comb := combiner.New(llmClient)

	// Initialize classifier and workflow machine
	classifier := routing.NewClassifier(sqlBackend, ragBackend, routing.CueTables{
		Continuity: cfg.ContinuityCues,
		Explain:    cfg.ExplainCues,
	})
	machine := workflow.NewMachine(classifier, sqlBackend, ragBackend, comb, db, cfg.ContextWindow)

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize service
	svc := service.New(db, machine, policyEngine, cfg)

	// Create HTTP server
	server := transport.NewServer(svc)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down orchestrator...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Orchestrator stopped")
}
