package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveInvoiceStatus(t *testing.T) {
	today := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	due := func(daysFromToday int) time.Time {
		return time.Date(2026, 3, 15+daysFromToday, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name      string
		amount    int64
		totalPaid int64
		dueDate   time.Time
		want      InvoiceStatus
	}{
		{"unpaid before due", 1000, 0, due(14), InvoiceStatusPending},
		{"partially paid before due", 1000, 400, due(14), InvoiceStatusPending},
		{"fully paid", 1000, 1000, due(14), InvoiceStatusPaid},
		{"overpaid", 1000, 1500, due(14), InvoiceStatusPaid},
		{"zero amount is immediately paid", 0, 0, due(14), InvoiceStatusPaid},
		{"unpaid past due", 1000, 0, due(-1), InvoiceStatusOverdue},
		{"partially paid past due", 1000, 999, due(-1), InvoiceStatusOverdue},
		{"fully paid past due", 1000, 1000, due(-1), InvoiceStatusPaid},
		{"due today is not overdue", 1000, 0, due(0), InvoiceStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveInvoiceStatus(tt.amount, tt.totalPaid, tt.dueDate, today)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveInvoiceStatusIsPure(t *testing.T) {
	today := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	dueDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	first := DeriveInvoiceStatus(1000, 200, dueDate, today)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, DeriveInvoiceStatus(1000, 200, dueDate, today))
	}
}

func TestOutstandingFloorsAtZero(t *testing.T) {
	assert.Equal(t, int64(600), Outstanding(1000, 400))
	assert.Equal(t, int64(0), Outstanding(1000, 1000))
	assert.Equal(t, int64(0), Outstanding(1000, 1500))
	assert.Equal(t, int64(0), Outstanding(0, 0))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleManager))
	assert.True(t, ValidRole(RoleCoach))
	assert.True(t, ValidRole(RolePlayer))
	assert.False(t, ValidRole(Role("admin")))
	assert.False(t, ValidRole(Role("")))
}

func TestActorRoleHelpers(t *testing.T) {
	manager := Actor{Role: RoleManager, ManagerID: 3}
	assert.True(t, manager.IsManager())
	assert.False(t, manager.IsCoach())

	// role without a backing record does not count
	bare := Actor{Role: RoleCoach}
	assert.False(t, bare.IsCoach())
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod(PaymentMethodCash))
	assert.True(t, ValidPaymentMethod(PaymentMethodOnline))
	assert.False(t, ValidPaymentMethod(PaymentMethod("barter")))
}

func TestValidWeekdayTag(t *testing.T) {
	assert.True(t, ValidWeekdayTag("monday"))
	assert.True(t, ValidWeekdayTag("sunday"))
	assert.False(t, ValidWeekdayTag("Monday"))
	assert.False(t, ValidWeekdayTag("someday"))
}
