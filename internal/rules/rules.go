// Package rules loads the emergency-keyword list and routing table from a
// YAML file, letting deployments override the built-in tables without code
// changes.
package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/triage-engine/internal/domain"
	"github.com/spec-kit/triage-engine/internal/routing"
	"github.com/spec-kit/triage-engine/pkg/util"
)

// File is the on-disk rule table format. Both sections are optional; an
// omitted section keeps the built-in defaults.
type File struct {
	EmergencyKeywords []string             `yaml:"emergency_keywords"`
	Routing           map[string]RouteRule `yaml:"routing"`
}

// RouteRule is one routing entry keyed by category label. Actions maps
// priority level names to action-item lists.
type RouteRule struct {
	Department string              `yaml:"department"`
	Supervisor string              `yaml:"supervisor"`
	Contact    string              `yaml:"contact"`
	Actions    map[string][]string `yaml:"actions"`
}

// Load parses a rule file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, util.NewConfigurationError(fmt.Sprintf("read rules file %s", path),
			map[string]any{"error": err.Error()})
	}
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, util.NewConfigurationError(fmt.Sprintf("parse rules file %s", path),
			map[string]any{"error": err.Error()})
	}
	return &file, nil
}

// Keywords returns the configured keyword list, or defaults when the file
// has none.
func (f *File) Keywords(defaults []string) []string {
	if f == nil || len(f.EmergencyKeywords) == 0 {
		return defaults
	}
	return f.EmergencyKeywords
}

// RoutingTable overlays the file's routing entries onto the default table.
// Unknown category labels or priority names are configuration errors.
func (f *File) RoutingTable(defaults routing.Table) (routing.Table, error) {
	table := make(routing.Table, len(defaults))
	for category, route := range defaults {
		table[category] = route
	}
	if f == nil {
		return table, nil
	}

	known := make(map[string]domain.Category)
	for _, category := range domain.Categories() {
		known[string(category)] = category
	}
	levels := make(map[string]domain.PriorityLevel)
	for _, priority := range domain.Priorities() {
		levels[string(priority)] = priority
	}

	for label, rule := range f.Routing {
		category, ok := known[label]
		if !ok {
			return nil, util.NewConfigurationError("rules file routes unknown category",
				map[string]any{"category": label})
		}
		actions := make(map[domain.PriorityLevel][]string, len(rule.Actions))
		for name, items := range rule.Actions {
			priority, ok := levels[name]
			if !ok {
				return nil, util.NewConfigurationError("rules file uses unknown priority level",
					map[string]any{"category": label, "priority": name})
			}
			actions[priority] = items
		}
		table[category] = routing.Route{
			Department: rule.Department,
			Supervisor: rule.Supervisor,
			Contact:    rule.Contact,
			Actions:    actions,
		}
	}
	return table, nil
}
