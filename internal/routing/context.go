package routing

import (
	"strings"

	"github.com/dualquery/orchestrator/internal/domain"
)

// EmptyContext is the context string for a session with no history.
const EmptyContext = "This is the start of a new conversation session."

const contextContentLimit = 100

// FormatContext renders the most recent max messages as role/agent/content
// lines for the classifier and combiner. Content is truncated so one long
// answer cannot drown out the rest of the window.
func FormatContext(messages []domain.Message, max int) string {
	if len(messages) == 0 {
		return EmptyContext
	}
	if max > 0 && len(messages) > max {
		messages = messages[len(messages)-max:]
	}

	var b strings.Builder
	b.WriteString("Previous messages in this session:")
	for _, msg := range messages {
		b.WriteString("\n  ")
		b.WriteString(string(msg.Role))
		if msg.Agent != "" {
			b.WriteString(" (" + msg.Agent + ")")
		}
		b.WriteString(": ")
		content := msg.Content
		if len(content) > contextContentLimit {
			content = content[:contextContentLimit] + "..."
		}
		b.WriteString(content)
	}
	return b.String()
}
