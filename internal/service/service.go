// Package service implements the supervisor that owns one state-machine
// run per incoming query.
package service

import (
	"github.com/dualquery/orchestrator/internal/config"
	"github.com/dualquery/orchestrator/internal/store"
	"github.com/dualquery/orchestrator/internal/workflow"
	"github.com/dualquery/orchestrator/policy"
)

// Service wires the session store, the workflow machine and the admission
// policy together. All collaborators are injected at construction;
// lifecycle is the caller's responsibility.
type Service struct {
	store   store.Store
	machine *workflow.Machine
	policy  *policy.Engine
	config  *config.Config
}

// New creates a new supervisor service.
func New(st store.Store, machine *workflow.Machine, policyEngine *policy.Engine, cfg *config.Config) *Service {
	return &Service{
		store:   st,
		machine: machine,
		policy:  policyEngine,
		config:  cfg,
	}
}
