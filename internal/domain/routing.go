package domain

// RoutingDecision assigns a finalized ticket to a department with the
// concrete steps staff must take. ActionItems is never empty.
type RoutingDecision struct {
	Department  string   `json:"department"`
	Supervisor  string   `json:"supervisor"`
	Contact     string   `json:"contact"`
	ActionItems []string `json:"action_items"`
}
