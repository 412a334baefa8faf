package repositories

import (
	"context"
	"time"

	"fieldside/internal/adapters/persistence/models"
	"fieldside/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// DirectoryRepository resolves role records (Manager, Coach, Player) and
// their 1:1 identity links. It backs actor resolution and the role-specific
// registration flows.
type DirectoryRepository interface {
	CreateManager(ctx context.Context, m *models.Manager) error
	ManagerByID(ctx context.Context, id uint) (*models.Manager, error)
	ManagerByUserID(ctx context.Context, userID uint) (*models.Manager, error)
	UpdateManager(ctx context.Context, m *models.Manager) error
	// DeleteManager fails with domain.ErrConflict while a school, coach or
	// team still references the manager (protected delete).
	DeleteManager(ctx context.Context, id uint) error

	CreateCoach(ctx context.Context, c *models.Coach) error
	CoachByID(ctx context.Context, id uint) (*models.Coach, error)
	CoachByUserID(ctx context.Context, userID uint) (*models.Coach, error)
	UpdateCoach(ctx context.Context, c *models.Coach) error
	DeleteCoach(ctx context.Context, id uint) error
	ListCoaches(ctx context.Context, managerID uint, offset, limit int) ([]*models.Coach, int64, error)

	CreatePlayer(ctx context.Context, p *models.Player) error
	PlayerByID(ctx context.Context, id uint) (*models.Player, error)
	PlayerByUserID(ctx context.Context, userID uint) (*models.Player, error)
	UpdatePlayer(ctx context.Context, p *models.Player) error
	DeletePlayer(ctx context.Context, id uint) error
	ListPlayers(ctx context.Context, schoolIDs []uint, offset, limit int) ([]*models.Player, int64, error)
	PlayerIDsForSchool(ctx context.Context, schoolID uint) ([]uint, error)
}

// SchoolRepository defines school and semester data access
type SchoolRepository interface {
	Create(ctx context.Context, s *models.School) error
	GetByID(ctx context.Context, id uint) (*models.School, error)
	GetByManagerID(ctx context.Context, managerID uint) (*models.School, error)
	Update(ctx context.Context, s *models.School) error
	SetActive(ctx context.Context, id uint, active bool) error
	List(ctx context.Context, offset, limit int) ([]*models.School, int64, error)

	CreateSemester(ctx context.Context, s *models.Semester) error
	SemesterByID(ctx context.Context, id uint) (*models.Semester, error)
	ListSemesters(ctx context.Context, schoolID uint) ([]*models.Semester, error)
	DeleteSemester(ctx context.Context, id uint) error
}

// TeamFilter narrows team listings; nil/zero fields are ignored.
// SchoolIDs is the caller's read scope and is applied at the SQL level.
type TeamFilter struct {
	SchoolIDs []uint
	CoachID   *uint
	PlayerID  *uint
}

// TeamRepository defines team and roster data access
type TeamRepository interface {
	Create(ctx context.Context, t *models.Team) error
	GetByID(ctx context.Context, id uint) (*models.Team, error)
	Update(ctx context.Context, t *models.Team) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter TeamFilter, offset, limit int) ([]*models.Team, int64, error)

	AddPlayer(ctx context.Context, teamID, playerID uint) error
	RemovePlayer(ctx context.Context, teamID, playerID uint) error
	HasPlayer(ctx context.Context, teamID, playerID uint) (bool, error)
	RosterCount(ctx context.Context, teamID uint) (int64, error)

	TeamIDsForSchool(ctx context.Context, schoolID uint) ([]uint, error)
	TeamIDsForCoach(ctx context.Context, coachID uint) ([]uint, error)
	TeamIDsForPlayer(ctx context.Context, playerID uint) ([]uint, error)
}

// SessionFilter narrows training session listings
type SessionFilter struct {
	TeamIDs         []uint
	TeamID          *uint
	FromDate        *time.Time
	IncludeCanceled bool
}

// SessionRepository defines training session data access
type SessionRepository interface {
	Create(ctx context.Context, s *models.TrainingSession) error
	GetByID(ctx context.Context, id uint) (*models.TrainingSession, error)
	Update(ctx context.Context, s *models.TrainingSession) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter SessionFilter, offset, limit int) ([]*models.TrainingSession, int64, error)
}

// AttendanceRepository defines attendance data access.
// Create returns domain.ErrConflict when the (player, session) pair exists.
type AttendanceRepository interface {
	Create(ctx context.Context, a *models.Attendance) error
	GetByID(ctx context.Context, id uint) (*models.Attendance, error)
	Exists(ctx context.Context, playerID, sessionID uint) (bool, error)
	Update(ctx context.Context, a *models.Attendance) error
	ListBySession(ctx context.Context, sessionID uint) ([]*models.Attendance, error)
	ListByPlayer(ctx context.Context, playerID uint, offset, limit int) ([]*models.Attendance, int64, error)
}

// InvoiceFilter narrows invoice listings. TeamIDs is the caller's read scope.
type InvoiceFilter struct {
	TeamIDs  []uint
	PlayerID *uint
	Status   *domain.InvoiceStatus
}

// BillingRepository defines the ledger data access. RecordPayment is the
// exclusive mutation path for payments: it appends the payment and recomputes
// the owning invoice's status inside one transaction holding a row lock on
// the invoice, so concurrent payments cannot observe a stale total.
type BillingRepository interface {
	CreateInvoice(ctx context.Context, inv *models.PlayerInvoice) error
	GetInvoiceByID(ctx context.Context, id uint) (*models.PlayerInvoice, error)
	ListInvoices(ctx context.Context, filter InvoiceFilter, offset, limit int) ([]*models.PlayerInvoice, int64, error)
	TotalPaid(ctx context.Context, invoiceID uint) (int64, error)
	RecordPayment(ctx context.Context, payment *models.PlayerFeePayment, today time.Time) (*models.PlayerInvoice, error)
	CancelInvoice(ctx context.Context, id uint) error
	// MarkOverdue flips pending invoices whose due date has passed to
	// overdue. Used by the daily sweep; consistent with the derivation rule
	// since a pending invoice by definition has totalPaid < amount.
	MarkOverdue(ctx context.Context, today time.Time) (int64, error)
	ListPayments(ctx context.Context, invoiceID uint) ([]*models.PlayerFeePayment, error)
}

// PayrollRepository defines coach contract and salary data access
type PayrollRepository interface {
	CreateContract(ctx context.Context, c *models.CoachContract) error
	ContractByID(ctx context.Context, id uint) (*models.CoachContract, error)
	ContractByCoachID(ctx context.Context, coachID uint) (*models.CoachContract, error)
	UpdateContract(ctx context.Context, c *models.CoachContract) error
	DeleteContract(ctx context.Context, id uint) error
	ListContracts(ctx context.Context, managerID uint, offset, limit int) ([]*models.CoachContract, int64, error)
	ListActiveContracts(ctx context.Context, month time.Time) ([]*models.CoachContract, error)

	CreateSalaryRecord(ctx context.Context, r *models.SalaryRecord) error
	SalaryRecordByID(ctx context.Context, id uint) (*models.SalaryRecord, error)
	ListSalaryRecords(ctx context.Context, contractID uint) ([]*models.SalaryRecord, error)
	// PaySalary inserts the 1:1 payment and flips the record to paid in one
	// transaction. Fails with domain.ErrConflict if already paid.
	PaySalary(ctx context.Context, recordID uint, payment *models.SalaryPayment) (*models.SalaryRecord, error)
}

// MedicalRepository defines medical record data access
type MedicalRepository interface {
	Create(ctx context.Context, m *models.MedicalRecord) error
	GetByID(ctx context.Context, id uint) (*models.MedicalRecord, error)
	Update(ctx context.Context, m *models.MedicalRecord) error
	Delete(ctx context.Context, id uint) error
	ListByPlayer(ctx context.Context, playerID uint, offset, limit int) ([]*models.MedicalRecord, int64, error)
}
