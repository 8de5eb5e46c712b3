package llm

import (
	"log"
	"os"
	"time"

	"github.com/dualquery/orchestrator/internal/config"
)

// NewLLMClient creates an LLM client based on the SUPERVISOR_MODE
// environment variable. If SUPERVISOR_MODE=MOCK, returns a MockClient;
// otherwise returns a real Client.
func NewLLMClient(baseURL, apiKey, model string, timeout time.Duration) LLMClient {
	if os.Getenv(config.EnvMode) == config.ModeMock {
		log.Println("SUPERVISOR_MODE=MOCK detected, using mock LLM client")
		return NewMockClient()
	}
	return NewClient(baseURL, apiKey, model, timeout)
}
