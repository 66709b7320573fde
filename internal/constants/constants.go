package constants

// Session and context keys
const (
	SessionCookieName = "chores_session"
	ContextKeyMember  = "member"
	SessionKeyMember  = "member"
)

// Pagination
const (
	MinPage         = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Identifier allocation
const (
	// MaxAllocateAttempts bounds the read-compute-append retry loop before an
	// allocation conflict is surfaced to the caller.
	MaxAllocateAttempts = 3
)

// Task defaults
const (
	DefaultPriority = 3
	MinPriority     = 1
	MaxPriority     = 5
)

// Budget escalation: 4% annual compounding from BudgetYear to the current year.
const BudgetEscalationRate = "1.04"
