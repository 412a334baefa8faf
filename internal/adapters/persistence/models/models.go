package models

import (
	"encoding/json"
	"time"

	"fieldside/internal/core/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ============================================================
// Identity & Role Directory
// ============================================================

// User represents the users table. Every user carries a role tag and links
// 1:1 to a role-specific record (Manager, Coach or Player).
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Username    string         `gorm:"uniqueIndex;size:25;not null" json:"username"`
	Email       string         `gorm:"uniqueIndex;size:50;not null" json:"email"`
	PhoneNumber string         `gorm:"uniqueIndex;size:20;not null" json:"phone_number"`
	Password    string         `gorm:"size:255;not null" json:"-"`
	FirstName   string         `gorm:"size:50" json:"first_name"`
	LastName    string         `gorm:"size:50" json:"last_name"`
	Role        domain.Role    `gorm:"size:10;default:'player'" json:"role"`
	IsAdmin     bool           `gorm:"default:false" json:"is_admin"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	BadgeUUID   string         `gorm:"size:36;uniqueIndex" json:"badge_uuid"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// FullName returns first and last name joined, falling back to the username.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserResponse DTO
type UserResponse struct {
	ID          uint        `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phone_number"`
	FullName    string      `json:"full_name"`
	Role        domain.Role `json:"role"`
	IsAdmin     bool        `json:"is_admin"`
	IsActive    bool        `json:"is_active"`
	BadgeUUID   string      `json:"badge_uuid"`
	CreatedAt   time.Time   `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		FullName:    u.FullName(),
		Role:        u.Role,
		IsAdmin:     u.IsAdmin,
		IsActive:    u.IsActive,
		BadgeUUID:   u.BadgeUUID,
		CreatedAt:   u.CreatedAt,
	}
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Organizational Graph
// ============================================================

// Manager represents a school manager. Deleting a manager is protected:
// it must fail while a school, coach or team still references it.
type Manager struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	BankAccountNumber *string   `gorm:"size:26" json:"bank_account_number"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Manager) TableName() string {
	return "managers"
}

// School belongs to exactly one manager. The is_active flag is only mutated
// through the guarded Activate/Deactivate transitions in the school service.
type School struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Address   string    `gorm:"type:text" json:"address"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`
	ManagerID uint      `gorm:"uniqueIndex;not null" json:"manager_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Manager *Manager `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
}

func (School) TableName() string {
	return "schools"
}

// Semester groups teams within a school period
type Semester struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null;uniqueIndex:uidx_semester_name_school" json:"name"`
	SchoolID  uint           `gorm:"not null;uniqueIndex:uidx_semester_name_school" json:"school_id"`
	StartDate datatypes.Date `gorm:"not null" json:"start_date"`
	EndDate   datatypes.Date `gorm:"not null" json:"end_date"`

	School *School `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
}

func (Semester) TableName() string {
	return "semesters"
}

// Coach is hired by a manager to train teams in a school
type Coach struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	UserID            uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	ManagerID         uint            `gorm:"index;not null" json:"manager_id"`
	SchoolID          uint            `gorm:"index;not null" json:"school_id"`
	Education         string          `gorm:"size:255" json:"education"`
	Specialty         string          `gorm:"size:100" json:"specialty"`
	Description       string          `gorm:"type:text" json:"description"`
	BankAccountNumber *string         `gorm:"size:26" json:"bank_account_number"`
	CooperationStart  *datatypes.Date `json:"cooperation_start_date"`
	IsActive          bool            `gorm:"default:true;index" json:"is_active"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Manager *Manager `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	School  *School  `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
}

func (Coach) TableName() string {
	return "coaches"
}

// Player is enrolled in a school. ManagerID is nullable so a player record
// survives the deletion of its manager.
type Player struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	SchoolID     uint           `gorm:"index;not null" json:"school_id"`
	ManagerID    *uint          `gorm:"index" json:"manager_id"`
	JerseyNumber *uint          `json:"jersey_number"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	School *School `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
}

func (Player) TableName() string {
	return "players"
}

// Team belongs to a school, optionally has a coach and carries the roster
type Team struct {
	ID                   uint                   `gorm:"primaryKey" json:"id"`
	Name                 string                 `gorm:"size:100;not null" json:"name"`
	SchoolID             uint                   `gorm:"index;not null" json:"school_id"`
	ManagerID            uint                   `gorm:"index;not null" json:"manager_id"`
	CoachID              *uint                  `gorm:"index" json:"coach_id"`
	SemesterID           *uint                  `json:"semester_id"`
	Specialization       string                 `gorm:"size:150" json:"specialization"`
	Location             string                 `gorm:"size:255" json:"location"`
	TrainingLocation     string                 `gorm:"size:255" json:"training_location"`
	Capacity             uint                   `gorm:"not null" json:"capacity"`
	StartDate            datatypes.Date         `gorm:"not null" json:"start_date"`
	EndDate              datatypes.Date         `gorm:"not null" json:"end_date"`
	StartTime            string                 `gorm:"size:10" json:"start_time"`
	ClassDuration        uint                   `json:"class_duration"`
	EventDays            datatypes.JSON         `json:"event_days"`
	EquipmentRequired    bool                   `gorm:"default:false" json:"equipment_required"`
	EquipmentDescription string                 `gorm:"type:text" json:"equipment_description"`
	PaymentType          domain.TeamPaymentType `gorm:"size:50" json:"payment_type"`
	PricePerMonth        int64                  `gorm:"not null;default:0" json:"price_per_month"`
	CreatedAt            time.Time              `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time              `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt            gorm.DeletedAt         `gorm:"index" json:"-"`

	School   *School   `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	Coach    *Coach    `gorm:"foreignKey:CoachID" json:"coach,omitempty"`
	Semester *Semester `gorm:"foreignKey:SemesterID" json:"semester,omitempty"`
	Players  []Player  `gorm:"many2many:team_players" json:"players,omitempty"`
}

func (Team) TableName() string {
	return "teams"
}

// SetEventDays stores the weekday tags as a JSON array.
func (t *Team) SetEventDays(days []string) error {
	raw, err := json.Marshal(days)
	if err != nil {
		return err
	}
	t.EventDays = datatypes.JSON(raw)
	return nil
}

// EventDayList decodes the stored weekday tags. An empty column decodes to nil.
func (t *Team) EventDayList() []string {
	if len(t.EventDays) == 0 {
		return nil
	}
	var days []string
	if err := json.Unmarshal(t.EventDays, &days); err != nil {
		return nil
	}
	return days
}

// ============================================================
// Scheduling
// ============================================================

// TrainingSession belongs to a team, with an optional coach override
type TrainingSession struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	TeamID      uint               `gorm:"index;not null" json:"team_id"`
	CoachID     *uint              `gorm:"index" json:"coach_id"`
	Title       string             `gorm:"size:255;not null" json:"title"`
	Date        datatypes.Date     `gorm:"not null;index" json:"date"`
	StartTime   string             `gorm:"size:10;not null" json:"start_time"`
	EndTime     string             `gorm:"size:10;not null" json:"end_time"`
	Location    string             `gorm:"size:255" json:"location"`
	Description string             `gorm:"type:text" json:"description"`
	SessionType domain.SessionType `gorm:"size:100;default:'technical'" json:"session_type"`
	IsCanceled  bool               `gorm:"default:false" json:"is_canceled"`
	CreatedAt   time.Time          `gorm:"autoCreateTime" json:"created_at"`

	Team  *Team  `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Coach *Coach `gorm:"foreignKey:CoachID" json:"coach,omitempty"`
}

func (TrainingSession) TableName() string {
	return "training_sessions"
}

// Attendance records one outcome per (player, training session) pair.
// The composite unique index is the invariant preventing duplicates.
type Attendance struct {
	ID                uint                    `gorm:"primaryKey" json:"id"`
	PlayerID          uint                    `gorm:"not null;uniqueIndex:uidx_attendance_player_session" json:"player_id"`
	TrainingSessionID uint                    `gorm:"not null;uniqueIndex:uidx_attendance_player_session" json:"training_session_id"`
	Status            domain.AttendanceStatus `gorm:"size:10;default:'present'" json:"status"`
	Score             *float64                `gorm:"type:decimal(5,2)" json:"score"`
	TrainerNote       string                  `gorm:"type:text" json:"trainer_note"`
	RecordedBy        uint                    `gorm:"not null" json:"recorded_by"`
	RecordedAt        time.Time               `gorm:"autoCreateTime" json:"recorded_at"`

	Player          *Player          `gorm:"foreignKey:PlayerID" json:"player,omitempty"`
	TrainingSession *TrainingSession `gorm:"foreignKey:TrainingSessionID" json:"training_session,omitempty"`
	Recorder        *User            `gorm:"foreignKey:RecordedBy" json:"recorder,omitempty"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity
		&User{},
		&RefreshToken{},
		// Organizational graph
		&Manager{},
		&School{},
		&Semester{},
		&Coach{},
		&Player{},
		&Team{},
		// Scheduling
		&TrainingSession{},
		&Attendance{},
		// Billing ledger
		&PlayerInvoice{},
		&PlayerFeePayment{},
		// Payroll
		&CoachContract{},
		&SalaryRecord{},
		&SalaryPayment{},
		// Medical
		&MedicalRecord{},
	)
}
