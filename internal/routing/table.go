package routing

import "github.com/spec-kit/triage-engine/internal/domain"

// DefaultTable returns the built-in routing table for UAE government
// service categories.
func DefaultTable() Table {
	return Table{
		domain.CategorySafetyEmergency: {
			Department: "Emergency Response Center",
			Supervisor: "Col. Ahmed Al Mansoori",
			Contact:    "999 / emergency@uae.gov.ae",
			Actions: withCriticalEscalation(map[domain.PriorityLevel][]string{
				domain.PriorityLow: {
					"Activate emergency response protocol",
					"Document incident for compliance",
				},
				domain.PriorityMedium: {
					"Activate emergency response protocol",
					"Dispatch field team to location",
					"Document incident for compliance",
				},
				domain.PriorityHigh: {
					"Activate emergency response protocol",
					"Dispatch field team to location",
					"Document incident for compliance",
					"Response time: 1 hour maximum",
				},
				domain.PriorityCritical: {
					"Activate emergency response protocol",
					"Dispatch field team to location",
					"Document incident for compliance",
				},
			}),
		},
		domain.CategoryTechnicalIT: {
			Department: "IT Support Division",
			Supervisor: "Eng. Fatima Al Zahrani",
			Contact:    "800-IT-HELP / itsupport@uae.gov.ae",
			Actions: withCriticalEscalation(map[domain.PriorityLevel][]string{
				domain.PriorityLow: {
					"Assign to IT support team",
					"SLA: resolve within 48 hours",
				},
				domain.PriorityMedium: {
					"Assign to IT support team",
					"SLA: resolve within 24 hours",
				},
				domain.PriorityHigh: {
					"Assign to IT support team",
					"SLA: resolve within 4 hours",
				},
				domain.PriorityCritical: {
					"Assign to IT support team",
				},
			}),
		},
		domain.CategoryBilling: {
			Department: "Finance & Accounts Department",
			Supervisor: "Mr. Khalid Al Qasimi",
			Contact:    "800-FINANCE / finance@uae.gov.ae",
			Actions: withCriticalEscalation(map[domain.PriorityLevel][]string{
				domain.PriorityLow: {
					"Forward to finance department",
					"Send acknowledgment email to citizen",
				},
				domain.PriorityMedium: {
					"Forward to finance department",
					"Verify charges with billing system",
					"Send acknowledgment email to citizen",
				},
				domain.PriorityHigh: {
					"Forward to finance department",
					"Verify charges with billing system",
					"SLA: respond within 4 hours",
				},
				domain.PriorityCritical: {
					"Forward to finance department",
				},
			}),
		},
		domain.CategoryFacilities: {
			Department: "Municipal Services Department",
			Supervisor: "Eng. Mohammed Al Shamsi",
			Contact:    "800-MUNICIPAL / municipal@uae.gov.ae",
			Actions: withCriticalEscalation(map[domain.PriorityLevel][]string{
				domain.PriorityLow: {
					"Assign maintenance team",
					"SLA: address within 72 hours",
				},
				domain.PriorityMedium: {
					"Assign maintenance team",
					"SLA: address within 48 hours",
				},
				domain.PriorityHigh: {
					"Assign maintenance team",
					"SLA: address within 8 hours",
				},
				domain.PriorityCritical: {
					"Assign maintenance team",
				},
			}),
		},
		domain.CategoryInquiry: {
			Department: "Customer Service Center",
			Supervisor: "Ms. Sara Al Muhairi",
			Contact:    "800-GOVERNMENT / customerservice@uae.gov.ae",
			Actions: withCriticalEscalation(map[domain.PriorityLevel][]string{
				domain.PriorityLow: {
					"Provide information package",
					"SLA: respond within 48 hours",
				},
				domain.PriorityMedium: {
					"Contact citizen for clarification",
					"Provide information package",
					"SLA: respond within 24 hours",
				},
				domain.PriorityHigh: {
					"Contact citizen for clarification",
					"SLA: respond within 4 hours",
				},
				domain.PriorityCritical: {
					"Contact citizen for clarification",
				},
			}),
		},
	}
}

// withCriticalEscalation prefixes the Critical action list with the
// immediate-response steps every Critical ticket requires.
func withCriticalEscalation(actions map[domain.PriorityLevel][]string) map[domain.PriorityLevel][]string {
	critical := []string{
		"IMMEDIATE ACTION REQUIRED: contact emergency services",
		"Notify department head immediately",
		"Response time: 15 minutes maximum",
	}
	actions[domain.PriorityCritical] = append(critical, actions[domain.PriorityCritical]...)
	return actions
}
