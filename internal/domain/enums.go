// Package domain defines the core domain models for the orchestrator.
package domain

// Role identifies who produced a message.
type Role string

const (
	RoleUser       Role = "user"
	RoleAssistant  Role = "assistant"
	RoleSupervisor Role = "supervisor"
)

// Route is the routing decision for a run.
type Route string

const (
	RouteSQL  Route = "sql"
	RouteRAG  Route = "rag"
	RouteBoth Route = "both"
	RouteEnd  Route = "end"
)

// Agent names used in message tags and session metadata.
const (
	AgentSupervisor = "supervisor"
	AgentSQL        = "sql"
	AgentRAG        = "rag"
	AgentCombiner   = "combiner"
)
