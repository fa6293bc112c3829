// Package routing maps (category, priority) to a department, supervisor
// contact and required action items via a deterministic lookup table. The
// table is data, not code, so deployments can swap it without touching
// engine logic.
package routing

import (
	"github.com/spec-kit/triage-engine/internal/domain"
	"github.com/spec-kit/triage-engine/pkg/util"
)

// Route is one routing table entry: the department owning a category and
// the action items per priority level.
type Route struct {
	Department string
	Supervisor string
	Contact    string
	Actions    map[domain.PriorityLevel][]string
}

// Table maps every category to its route.
type Table map[domain.Category]Route

// Resolver resolves finalized tickets against a validated table.
type Resolver struct {
	table Table
}

// NewResolver validates the table up front: every known category must be
// mapped and every (category, priority) pair must yield at least one action
// item. A gap is a deployment-configuration bug and fails fast here rather
// than during ticket processing.
func NewResolver(table Table) (*Resolver, error) {
	if len(table) == 0 {
		return nil, util.NewConfigurationError("routing table is empty", nil)
	}
	for _, category := range domain.Categories() {
		route, ok := table[category]
		if !ok {
			return nil, util.NewConfigurationError("routing table missing category",
				map[string]any{"category": string(category)})
		}
		if route.Department == "" {
			return nil, util.NewConfigurationError("routing table entry has no department",
				map[string]any{"category": string(category)})
		}
		for _, priority := range domain.Priorities() {
			if len(route.Actions[priority]) == 0 {
				return nil, util.NewConfigurationError("routing table entry has no action items",
					map[string]any{"category": string(category), "priority": string(priority)})
			}
		}
	}
	return &Resolver{table: table}, nil
}

// Resolve returns the routing decision for a category and final priority.
// Critical tickets are redirected to the emergency-response department
// regardless of category.
func (r *Resolver) Resolve(category domain.Category, priority domain.PriorityLevel) (domain.RoutingDecision, error) {
	route, ok := r.table[category]
	if !ok {
		return domain.RoutingDecision{}, util.NewConfigurationError("no route for category",
			map[string]any{"category": string(category)})
	}
	if priority == domain.PriorityCritical {
		if emergency, ok := r.table[domain.CategorySafetyEmergency]; ok {
			route = emergency
		}
	}

	actions := route.Actions[priority]
	if len(actions) == 0 {
		return domain.RoutingDecision{}, util.NewConfigurationError("no action items for priority",
			map[string]any{"category": string(category), "priority": string(priority)})
	}

	decision := domain.RoutingDecision{
		Department:  route.Department,
		Supervisor:  route.Supervisor,
		Contact:     route.Contact,
		ActionItems: make([]string, len(actions)),
	}
	copy(decision.ActionItems, actions)
	return decision, nil
}

// SentimentFollowUps returns the extra action items appended for strongly
// polarized citizen sentiment.
func SentimentFollowUps(sentiment domain.Sentiment) []string {
	switch sentiment {
	case domain.SentimentNegative:
		return []string{
			"Citizen frustration detected: escalate to supervisor",
			"Call citizen to address concerns",
		}
	case domain.SentimentPositive:
		return []string{"Log positive feedback for employee recognition"}
	default:
		return nil
	}
}
