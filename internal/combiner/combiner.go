// Package combiner synthesizes one answer from the structured and
// semantic backend results.
package combiner

import (
	"context"
	"fmt"
	"log"

	"github.com/dualquery/orchestrator/internal/adapter/llm"
	"github.com/dualquery/orchestrator/internal/domain"
)

const synthesisInstructions = `You are a response synthesizer that combines information from structured database queries and semantic article search.

Your task is to create a comprehensive, coherent response that:
1. Integrates structured data from database queries with contextual information from articles
2. Provides a complete answer to the user's question
3. Maintains clarity and readability
4. Cites sources appropriately

Format your response to be helpful and informative, combining the best of both data sources. Keep the response under 2000 characters.`

// Combiner delegates synthesis to the language-generation collaborator.
type Combiner struct {
	llm llm.LLMClient
}

// New creates a combiner.
func New(client llm.LLMClient) *Combiner {
	return &Combiner{llm: client}
}

// Combine merges the two results into one response. On generation failure
// it returns a deterministic fallback embedding the error; it never fails.
func (c *Combiner) Combine(ctx context.Context, query string, sqlRes, ragRes *domain.AgentResult) string {
	user := fmt.Sprintf(`User Question: %s

Database Results:
%s

Article Search Results:
%s

Please provide a comprehensive response that combines these information sources.`,
		query,
		resultText(sqlRes, "No database results"),
		resultText(ragRes, "No article results"))

	out, err := c.llm.Generate(ctx, synthesisInstructions, user)
	if err != nil {
		log.Printf("ERROR: failed to generate combined response: %v", err)
		return fmt.Sprintf("I found information from both the database and the articles, but encountered an error combining them: %v", err)
	}
	return out
}

func resultText(res *domain.AgentResult, fallback string) string {
	if res == nil || res.Response == "" {
		return fallback
	}
	return res.Response
}
