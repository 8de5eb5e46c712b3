package backend

import (
	"log"
	"os"
	"time"

	"github.com/dualquery/orchestrator/internal/agent"
	"github.com/dualquery/orchestrator/internal/config"
)

// NewBackend creates a backend based on the SUPERVISOR_MODE environment
// variable. If SUPERVISOR_MODE=MOCK, returns a Mock; otherwise returns an
// HTTP client for the given endpoint.
func NewBackend(name, baseURL string, keywords []string, timeout time.Duration) agent.Backend {
	if os.Getenv(config.EnvMode) == config.ModeMock {
		log.Printf("SUPERVISOR_MODE=MOCK detected, using mock %s backend", name)
		return NewMock(name, keywords)
	}
	return NewClient(name, baseURL, keywords, timeout)
}
