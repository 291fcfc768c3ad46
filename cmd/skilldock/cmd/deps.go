package cmd

import (
	"github.com/skilldock/skilldock/internal/core"
	"github.com/skilldock/skilldock/internal/core/agent"
)

// deps holds shared dependencies for CLI commands.
type deps struct {
	registry     *agent.Registry
	orchestrator *core.Orchestrator
}

// newDeps creates shared dependencies. Called lazily by commands that need them.
func newDeps() *deps {
	registry := agent.DefaultRegistry()
	return &deps{
		registry:     registry,
		orchestrator: core.NewOrchestrator(registry),
	}
}
