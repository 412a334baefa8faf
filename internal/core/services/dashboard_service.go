package services

import (
	"context"
	"time"

	"fieldside/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService aggregates per-role overview numbers straight from the
// database. Every query is bounded by the actor's own IDs.
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	TotalUsers    int64 `json:"total_users"`
	TotalManagers int64 `json:"total_managers"`
	TotalCoaches  int64 `json:"total_coaches"`
	TotalPlayers  int64 `json:"total_players"`
	TotalSchools  int64 `json:"total_schools"`
	ActiveSchools int64 `json:"active_schools"`
	TotalTeams    int64 `json:"total_teams"`

	TotalInvoices   int64 `json:"total_invoices"`
	PendingInvoices int64 `json:"pending_invoices"`
	OverdueInvoices int64 `json:"overdue_invoices"`
	PaidInvoices    int64 `json:"paid_invoices"`
	TotalCollected  int64 `json:"total_collected"`
}

// GetAdminDashboard returns platform-wide statistics
func (s *DashboardService) GetAdminDashboard(ctx context.Context, actor domain.Actor) (*AdminDashboardData, error) {
	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}

	data := &AdminDashboardData{}

	// Directory counts
	s.db.WithContext(ctx).Table("users").Where("deleted_at IS NULL").Count(&data.TotalUsers)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", domain.RoleManager).Count(&data.TotalManagers)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", domain.RoleCoach).Count(&data.TotalCoaches)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", domain.RolePlayer).Count(&data.TotalPlayers)
	s.db.WithContext(ctx).Table("schools").Count(&data.TotalSchools)
	s.db.WithContext(ctx).Table("schools").Where("is_active = ?", true).Count(&data.ActiveSchools)
	s.db.WithContext(ctx).Table("teams").Where("deleted_at IS NULL").Count(&data.TotalTeams)

	// Ledger counts
	s.db.WithContext(ctx).Table("player_invoices").Where("deleted_at IS NULL").Count(&data.TotalInvoices)
	s.db.WithContext(ctx).Table("player_invoices").Where("status = ? AND deleted_at IS NULL", domain.InvoiceStatusPending).Count(&data.PendingInvoices)
	s.db.WithContext(ctx).Table("player_invoices").Where("status = ? AND deleted_at IS NULL", domain.InvoiceStatusOverdue).Count(&data.OverdueInvoices)
	s.db.WithContext(ctx).Table("player_invoices").Where("status = ? AND deleted_at IS NULL", domain.InvoiceStatusPaid).Count(&data.PaidInvoices)
	s.db.WithContext(ctx).Table("player_fee_payments").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.TotalCollected)

	return data, nil
}

// ============================================================
// Manager Dashboard
// ============================================================

// ManagerDashboardData represents manager dashboard data
type ManagerDashboardData struct {
	TotalTeams   int64 `json:"total_teams"`
	TotalCoaches int64 `json:"total_coaches"`
	TotalPlayers int64 `json:"total_players"`

	PendingInvoices  int64 `json:"pending_invoices"`
	OverdueInvoices  int64 `json:"overdue_invoices"`
	TotalBilled      int64 `json:"total_billed"`
	TotalCollected   int64 `json:"total_collected"`
	TotalOutstanding int64 `json:"total_outstanding"`

	UnpaidSalaries int64 `json:"unpaid_salaries"`

	SessionsThisWeek int64 `json:"sessions_this_week"`
}

// GetManagerDashboard returns statistics for the manager's own school
func (s *DashboardService) GetManagerDashboard(ctx context.Context, actor domain.Actor) (*ManagerDashboardData, error) {
	if !actor.IsManager() {
		return nil, domain.ErrForbidden
	}

	data := &ManagerDashboardData{}
	if actor.SchoolID == 0 {
		return data, nil
	}

	// Directory counts inside the school
	s.db.WithContext(ctx).Table("teams").
		Where("school_id = ? AND deleted_at IS NULL", actor.SchoolID).
		Count(&data.TotalTeams)
	s.db.WithContext(ctx).Table("coaches").
		Where("school_id = ? AND deleted_at IS NULL", actor.SchoolID).
		Count(&data.TotalCoaches)
	s.db.WithContext(ctx).Table("players").
		Where("school_id = ? AND deleted_at IS NULL", actor.SchoolID).
		Count(&data.TotalPlayers)

	// Ledger over the school's teams
	invoiceScope := "player_invoices.team_id IN (SELECT id FROM teams WHERE school_id = ?)"
	s.db.WithContext(ctx).Table("player_invoices").
		Where(invoiceScope+" AND status = ? AND deleted_at IS NULL", actor.SchoolID, domain.InvoiceStatusPending).
		Count(&data.PendingInvoices)
	s.db.WithContext(ctx).Table("player_invoices").
		Where(invoiceScope+" AND status = ? AND deleted_at IS NULL", actor.SchoolID, domain.InvoiceStatusOverdue).
		Count(&data.OverdueInvoices)
	s.db.WithContext(ctx).Table("player_invoices").
		Where(invoiceScope+" AND status <> ? AND deleted_at IS NULL", actor.SchoolID, domain.InvoiceStatusCancelled).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.TotalBilled)
	s.db.WithContext(ctx).Table("player_fee_payments").
		Joins("JOIN player_invoices ON player_fee_payments.invoice_id = player_invoices.id").
		Where(invoiceScope, actor.SchoolID).
		Select("COALESCE(SUM(player_fee_payments.amount), 0)").
		Scan(&data.TotalCollected)
	data.TotalOutstanding = domain.Outstanding(data.TotalBilled, data.TotalCollected)

	// Payroll
	s.db.WithContext(ctx).Table("salary_records").
		Joins("JOIN coach_contracts ON salary_records.contract_id = coach_contracts.id").
		Where("coach_contracts.manager_id = ? AND salary_records.status <> ?", actor.ManagerID, domain.SalaryPaid).
		Count(&data.UnpaidSalaries)

	// Scheduling
	startOfWeek := time.Now().AddDate(0, 0, -int(time.Now().Weekday()))
	endOfWeek := startOfWeek.AddDate(0, 0, 7)
	s.db.WithContext(ctx).Table("training_sessions").
		Where("team_id IN (SELECT id FROM teams WHERE school_id = ?)", actor.SchoolID).
		Where("date >= ? AND date < ? AND is_canceled = ?",
			startOfWeek.Format("2006-01-02"), endOfWeek.Format("2006-01-02"), false).
		Count(&data.SessionsThisWeek)

	return data, nil
}

// ============================================================
// Coach Dashboard
// ============================================================

// CoachDashboardData represents coach dashboard data
type CoachDashboardData struct {
	TotalTeams       int64 `json:"total_teams"`
	TotalPlayers     int64 `json:"total_players"`
	SessionsThisWeek int64 `json:"sessions_this_week"`
	UpcomingSessions int64 `json:"upcoming_sessions"`
	RecordsToday     int64 `json:"records_today"`
}

// GetCoachDashboard returns statistics for the coach's own teams
func (s *DashboardService) GetCoachDashboard(ctx context.Context, actor domain.Actor) (*CoachDashboardData, error) {
	if !actor.IsCoach() {
		return nil, domain.ErrForbidden
	}

	data := &CoachDashboardData{}
	teamScope := "team_id IN (SELECT id FROM teams WHERE coach_id = ? AND deleted_at IS NULL)"

	s.db.WithContext(ctx).Table("teams").
		Where("coach_id = ? AND deleted_at IS NULL", actor.CoachID).
		Count(&data.TotalTeams)
	s.db.WithContext(ctx).Table("team_players").
		Where(teamScope, actor.CoachID).
		Count(&data.TotalPlayers)

	startOfWeek := time.Now().AddDate(0, 0, -int(time.Now().Weekday()))
	endOfWeek := startOfWeek.AddDate(0, 0, 7)
	s.db.WithContext(ctx).Table("training_sessions").
		Where(teamScope, actor.CoachID).
		Where("date >= ? AND date < ? AND is_canceled = ?",
			startOfWeek.Format("2006-01-02"), endOfWeek.Format("2006-01-02"), false).
		Count(&data.SessionsThisWeek)
	s.db.WithContext(ctx).Table("training_sessions").
		Where(teamScope, actor.CoachID).
		Where("date >= ? AND is_canceled = ?", time.Now().Format("2006-01-02"), false).
		Count(&data.UpcomingSessions)
	s.db.WithContext(ctx).Table("attendances").
		Where("recorded_by = ? AND DATE(recorded_at) = ?", actor.UserID, time.Now().Format("2006-01-02")).
		Count(&data.RecordsToday)

	return data, nil
}

// ============================================================
// Player Dashboard
// ============================================================

// PlayerDashboardData represents player dashboard data
type PlayerDashboardData struct {
	TotalTeams       int64 `json:"total_teams"`
	UpcomingSessions int64 `json:"upcoming_sessions"`

	TotalInvoices    int64 `json:"total_invoices"`
	OverdueInvoices  int64 `json:"overdue_invoices"`
	TotalOutstanding int64 `json:"total_outstanding"`

	SessionsAttended int64   `json:"sessions_attended"`
	SessionsMissed   int64   `json:"sessions_missed"`
	AverageScore     float64 `json:"average_score"`
}

// GetPlayerDashboard returns the player's own overview
func (s *DashboardService) GetPlayerDashboard(ctx context.Context, actor domain.Actor) (*PlayerDashboardData, error) {
	if !actor.IsPlayer() {
		return nil, domain.ErrForbidden
	}

	data := &PlayerDashboardData{}

	s.db.WithContext(ctx).Table("team_players").
		Where("player_id = ?", actor.PlayerID).
		Count(&data.TotalTeams)
	s.db.WithContext(ctx).Table("training_sessions").
		Where("team_id IN (SELECT team_id FROM team_players WHERE player_id = ?)", actor.PlayerID).
		Where("date >= ? AND is_canceled = ?", time.Now().Format("2006-01-02"), false).
		Count(&data.UpcomingSessions)

	// Ledger
	s.db.WithContext(ctx).Table("player_invoices").
		Where("player_id = ? AND deleted_at IS NULL", actor.PlayerID).
		Count(&data.TotalInvoices)
	s.db.WithContext(ctx).Table("player_invoices").
		Where("player_id = ? AND status = ? AND deleted_at IS NULL", actor.PlayerID, domain.InvoiceStatusOverdue).
		Count(&data.OverdueInvoices)

	var billed, collected int64
	s.db.WithContext(ctx).Table("player_invoices").
		Where("player_id = ? AND status <> ? AND deleted_at IS NULL", actor.PlayerID, domain.InvoiceStatusCancelled).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&billed)
	s.db.WithContext(ctx).Table("player_fee_payments").
		Joins("JOIN player_invoices ON player_fee_payments.invoice_id = player_invoices.id").
		Where("player_invoices.player_id = ? AND player_invoices.status <> ?", actor.PlayerID, domain.InvoiceStatusCancelled).
		Select("COALESCE(SUM(player_fee_payments.amount), 0)").
		Scan(&collected)
	data.TotalOutstanding = domain.Outstanding(billed, collected)

	// Attendance
	s.db.WithContext(ctx).Table("attendances").
		Where("player_id = ? AND status IN ?", actor.PlayerID, []domain.AttendanceStatus{domain.AttendancePresent, domain.AttendanceLate}).
		Count(&data.SessionsAttended)
	s.db.WithContext(ctx).Table("attendances").
		Where("player_id = ? AND status = ?", actor.PlayerID, domain.AttendanceAbsent).
		Count(&data.SessionsMissed)
	s.db.WithContext(ctx).Table("attendances").
		Where("player_id = ? AND score IS NOT NULL", actor.PlayerID).
		Select("COALESCE(AVG(score), 0)").
		Scan(&data.AverageScore)

	return data, nil
}
