package domain

import "time"

// Role represents a user role in the football school system
type Role string

const (
	RoleManager Role = "manager"
	RoleCoach   Role = "coach"
	RolePlayer  Role = "player"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleManager, RoleCoach, RolePlayer:
		return true
	}
	return false
}

// Actor is the resolved identity of a request. It is built once by the auth
// middleware from the authenticated user and its role record, and passed
// explicitly into every service operation. Exactly one of ManagerID, CoachID,
// PlayerID is non-zero unless the user is an admin with no role record.
type Actor struct {
	UserID  uint
	Role    Role
	IsAdmin bool

	ManagerID uint
	CoachID   uint
	PlayerID  uint

	// SchoolID is the school reachable from the role record:
	// the manager's own school, the coach's employing school,
	// or the player's enrolled school. Zero if none exists yet.
	SchoolID uint
}

// IsManager reports whether the actor acts as a manager.
func (a Actor) IsManager() bool { return a.Role == RoleManager && a.ManagerID != 0 }

// IsCoach reports whether the actor acts as a coach.
func (a Actor) IsCoach() bool { return a.Role == RoleCoach && a.CoachID != 0 }

// IsPlayer reports whether the actor acts as a player.
func (a Actor) IsPlayer() bool { return a.Role == RolePlayer && a.PlayerID != 0 }

// Scope is the set of organizational-graph IDs reachable from an actor.
// List endpoints filter their queries with these IDs up front instead of
// post-filtering a broader fetch.
type Scope struct {
	All       bool // admin: no filtering
	SchoolIDs []uint
	TeamIDs   []uint
	PlayerIDs []uint
}

// InvoiceStatus represents the derived state of a player invoice
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// DeriveInvoiceStatus computes the invoice status from its amount, the sum of
// its payments and the due date. The result is pure: recomputing with the
// same inputs yields the same status. Cancelled is a manual state and must be
// handled by the caller before derivation.
func DeriveInvoiceStatus(amount, totalPaid int64, dueDate, today time.Time) InvoiceStatus {
	if totalPaid >= amount {
		return InvoiceStatusPaid
	}
	if dueDate.Before(truncateToDay(today)) {
		return InvoiceStatusOverdue
	}
	return InvoiceStatusPending
}

// Outstanding returns the unpaid remainder of an invoice, never negative.
func Outstanding(amount, totalPaid int64) int64 {
	if rest := amount - totalPaid; rest > 0 {
		return rest
	}
	return 0
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// PaymentMethod represents how a fee payment was settled
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodOnline PaymentMethod = "online"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	return m == PaymentMethodCash || m == PaymentMethodOnline
}

// TeamPaymentType represents how a team collects its monthly fee
type TeamPaymentType string

const (
	TeamPaymentCardTransfer TeamPaymentType = "card_transfer"
	TeamPaymentCash         TeamPaymentType = "cash"
	TeamPaymentOnline       TeamPaymentType = "online"
)

// ValidTeamPaymentType reports whether t is a known team payment type.
func ValidTeamPaymentType(t TeamPaymentType) bool {
	switch t {
	case TeamPaymentCardTransfer, TeamPaymentCash, TeamPaymentOnline:
		return true
	}
	return false
}

// AttendanceStatus represents a single attendance outcome
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

// ValidAttendanceStatus reports whether s is a known attendance status.
func ValidAttendanceStatus(s AttendanceStatus) bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}

// SessionType represents the kind of a training session
type SessionType string

const (
	SessionTactical      SessionType = "tactical"
	SessionTechnical     SessionType = "technical"
	SessionFitness       SessionType = "fitness"
	SessionFriendlyMatch SessionType = "friendly_match"
)

// ValidSessionType reports whether t is a known session type.
func ValidSessionType(t SessionType) bool {
	switch t {
	case SessionTactical, SessionTechnical, SessionFitness, SessionFriendlyMatch:
		return true
	}
	return false
}

// SalaryStatus represents the state of a coach salary record
type SalaryStatus string

const (
	SalaryUnpaid  SalaryStatus = "unpaid"
	SalaryPending SalaryStatus = "pending"
	SalaryPaid    SalaryStatus = "paid"
)

// Weekday tags used for team weekly recurrence
var WeekdayTags = []string{"sat", "sun", "mon", "tue", "wed", "thu", "fri"}

// ValidWeekdayTag reports whether day is one of the weekday tags.
func ValidWeekdayTag(day string) bool {
	for _, d := range WeekdayTags {
		if d == day {
			return true
		}
	}
	return false
}
