// Package config provides configuration for the orchestrator.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// EnvMode is the environment variable name for mode selection.
	EnvMode = "SUPERVISOR_MODE"
	// ModeMock indicates mock adapters should be used.
	ModeMock = "MOCK"
)

// Config holds the orchestrator configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Backend endpoints
	SQLBackendURL  string
	RAGBackendURL  string
	BackendTimeout time.Duration

	// LLM settings (used by the combiner)
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
	LLMTimeout time.Duration

	// Memory settings
	HistoryLimit  int           // messages loaded into a run
	ContextWindow int           // previous messages considered for routing
	SessionTTL    time.Duration // advisory inactivity timeout, not enforced here

	// Routing keyword tables. Kept as data so they can be tuned
	// independently of the state machine logic.
	SQLKeywords    []string
	RAGKeywords    []string
	ContinuityCues []string
	ExplainCues    []string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		HTTPPort:       getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:    getEnv("DATABASE_URL", "file:sessions.db?cache=shared&mode=rwc"),
		SQLBackendURL:  getEnv("SQL_BACKEND_URL", "http://localhost:8091"),
		RAGBackendURL:  getEnv("RAG_BACKEND_URL", "http://localhost:8092"),
		BackendTimeout: time.Duration(getEnvInt("BACKEND_TIMEOUT_MS", 30000)) * time.Millisecond,
		LLMBaseURL:     getEnv("LLM_BASE_URL", "http://localhost:4000"),
		LLMAPIKey:      getEnv("LLM_API_KEY", ""),
		LLMModel:       getEnv("LLM_MODEL", "gemini-2.0-flash"),
		LLMTimeout:     time.Duration(getEnvInt("LLM_TIMEOUT_MS", 60000)) * time.Millisecond,
		HistoryLimit:   getEnvInt("HISTORY_LIMIT", 10),
		ContextWindow:  getEnvInt("CONTEXT_WINDOW", 5),
		SessionTTL:     time.Duration(getEnvInt("SESSION_TTL_MS", 3600000)) * time.Millisecond,
		SQLKeywords:    getEnvList("SQL_KEYWORDS", defaultSQLKeywords),
		RAGKeywords:    getEnvList("RAG_KEYWORDS", defaultRAGKeywords),
		ContinuityCues: getEnvList("CONTINUITY_CUES", defaultContinuityCues),
		ExplainCues:    getEnvList("EXPLAIN_CUES", defaultExplainCues),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

// Default routing keyword tables. Quantitative, temporal and entity-listing
// terms favor the structured backend; explanatory, definitional and
// comparative terms favor the semantic backend.
var defaultSQLKeywords = []string{
	"event", "events", "when", "where", "date", "time", "location",
	"article", "articles", "author", "company", "booth", "contact",
	"count", "how many", "number of", "total", "sum",
	"list", "show", "find", "search",
	"recent", "upcoming", "past", "latest", "oldest",
}

var defaultRAGKeywords = []string{
	"about", "explain", "tell me", "what is", "how does", "why",
	"content", "information", "details", "description",
	"similar", "related", "compare", "difference",
	"topic", "subject", "theme", "concept", "idea",
}

var defaultContinuityCues = []string{
	"more", "also", "what about", "continue",
	"additionally", "furthermore", "what else",
}

var defaultExplainCues = []string{
	"explain", "tell me more", "details",
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
