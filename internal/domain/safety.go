package domain

// SafetyVerdict is the result of the rule-based emergency evaluation.
// MatchedKeywords lists every emergency term found in the text, including
// terms later discounted as spam; OverrideTriggered is true only when at
// least one match was honored.
type SafetyVerdict struct {
	OverrideTriggered bool          `json:"override_triggered"`
	MatchedKeywords   []string      `json:"matched_keywords,omitempty"`
	ForcedPriority    PriorityLevel `json:"forced_priority,omitempty"`
}
