package domain

// PriorityLevel enumerates triage urgency, ordered Low < Medium < High < Critical.
type PriorityLevel string

const (
	PriorityLow      PriorityLevel = "LOW"
	PriorityMedium   PriorityLevel = "MEDIUM"
	PriorityHigh     PriorityLevel = "HIGH"
	PriorityCritical PriorityLevel = "CRITICAL"
)

// Priorities returns all levels in ascending order.
func Priorities() []PriorityLevel {
	return []PriorityLevel{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// Rank returns the ordinal position of the level; unknown levels rank below Low.
func (p PriorityLevel) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityCritical:
		return 4
	default:
		return 0
	}
}

// Valid reports whether p is a known level.
func (p PriorityLevel) Valid() bool {
	return p.Rank() > 0
}

// MaxPriority returns the higher of two levels.
func MaxPriority(a, b PriorityLevel) PriorityLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}
