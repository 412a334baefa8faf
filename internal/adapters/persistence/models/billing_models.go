package models

import (
	"time"

	"fieldside/internal/core/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ============================================================
// Billing Ledger
// ============================================================

// PlayerInvoice is the ledger obligation. Status is derived from the payment
// set and the due date; it is never authoritative and must only be written by
// the recomputation path in the billing repository.
type PlayerInvoice struct {
	ID          uint                 `gorm:"primaryKey" json:"id"`
	PlayerID    uint                 `gorm:"not null;index:idx_invoices_player_status" json:"player_id"`
	TeamID      uint                 `gorm:"not null;index" json:"team_id"`
	Amount      int64                `gorm:"not null" json:"amount"`
	IssuedDate  datatypes.Date       `gorm:"not null;index" json:"issued_date"`
	DueDate     datatypes.Date       `gorm:"not null;index:idx_invoices_status_due" json:"due_date"`
	Status      domain.InvoiceStatus `gorm:"size:20;default:'pending';index:idx_invoices_player_status;index:idx_invoices_status_due" json:"status"`
	Description string               `gorm:"type:text" json:"description"`
	CreatedAt   time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt       `gorm:"index" json:"-"`

	Player   *Player            `gorm:"foreignKey:PlayerID" json:"player,omitempty"`
	Team     *Team              `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Payments []PlayerFeePayment `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

func (PlayerInvoice) TableName() string {
	return "player_invoices"
}

// InvoiceResponse DTO
type InvoiceResponse struct {
	ID          uint                 `json:"id"`
	PlayerID    uint                 `json:"player_id"`
	PlayerName  string               `json:"player_name,omitempty"`
	TeamID      uint                 `json:"team_id"`
	TeamName    string               `json:"team_name,omitempty"`
	Amount      int64                `json:"amount"`
	TotalPaid   int64                `json:"total_paid"`
	Outstanding int64                `json:"outstanding"`
	IssuedDate  datatypes.Date       `json:"issued_date"`
	DueDate     datatypes.Date       `json:"due_date"`
	Status      domain.InvoiceStatus `json:"status"`
	Description string               `json:"description"`
	CreatedAt   time.Time            `json:"created_at"`
}

// ToResponse builds the invoice DTO. totalPaid comes from the payment sum,
// never from the loaded Payments slice, which may be partial.
func (i *PlayerInvoice) ToResponse(totalPaid int64) *InvoiceResponse {
	resp := &InvoiceResponse{
		ID:          i.ID,
		PlayerID:    i.PlayerID,
		TeamID:      i.TeamID,
		Amount:      i.Amount,
		TotalPaid:   totalPaid,
		Outstanding: domain.Outstanding(i.Amount, totalPaid),
		IssuedDate:  i.IssuedDate,
		DueDate:     i.DueDate,
		Status:      i.Status,
		Description: i.Description,
		CreatedAt:   i.CreatedAt,
	}
	if i.Player != nil && i.Player.User != nil {
		resp.PlayerName = i.Player.User.FullName()
	}
	if i.Team != nil {
		resp.TeamName = i.Team.Name
	}
	return resp
}

// PlayerFeePayment is the ledger settlement. Rows are append-only: there is
// no edit or void, corrections happen through new payments.
type PlayerFeePayment struct {
	ID            uint                 `gorm:"primaryKey" json:"id"`
	InvoiceID     uint                 `gorm:"not null;index" json:"invoice_id"`
	Amount        int64                `gorm:"not null" json:"amount"`
	Method        domain.PaymentMethod `gorm:"size:10;not null" json:"method"`
	ReceiptNumber string               `gorm:"size:255" json:"receipt_number"`
	Note          string               `gorm:"type:text" json:"note"`
	CreatedBy     *uint                `json:"created_by"`
	PaidAt        time.Time            `gorm:"autoCreateTime" json:"paid_at"`

	Invoice *PlayerInvoice `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`
	Creator *User          `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

func (PlayerFeePayment) TableName() string {
	return "player_fee_payments"
}

// ============================================================
// Coach Payroll
// ============================================================

// CoachContract fixes the monthly price a manager pays a coach
type CoachContract struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	CoachID        uint            `gorm:"uniqueIndex;not null" json:"coach_id"`
	ManagerID      uint            `gorm:"index;not null" json:"manager_id"`
	Price          int64           `gorm:"not null" json:"price"`
	Description    string          `gorm:"type:text" json:"description"`
	StartAt        *datatypes.Date `json:"start_at"`
	ExpirationDate *datatypes.Date `json:"expiration_date"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Coach   *Coach   `gorm:"foreignKey:CoachID" json:"coach,omitempty"`
	Manager *Manager `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
}

func (CoachContract) TableName() string {
	return "coach_contracts"
}

// SalaryRecord is one month of salary owed under a contract
type SalaryRecord struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	ContractID  uint                `gorm:"not null;uniqueIndex:uidx_salary_contract_month" json:"contract_id"`
	Month       datatypes.Date      `gorm:"not null;uniqueIndex:uidx_salary_contract_month" json:"month"`
	Status      domain.SalaryStatus `gorm:"size:10;default:'unpaid'" json:"status"`
	Description string              `gorm:"type:text" json:"description"`
	CreatedAt   time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime" json:"updated_at"`

	Contract *CoachContract `gorm:"foreignKey:ContractID" json:"contract,omitempty"`
	Payment  *SalaryPayment `gorm:"foreignKey:SalaryRecordID" json:"payment,omitempty"`
}

func (SalaryRecord) TableName() string {
	return "salary_records"
}

// SalaryPayment settles exactly one salary record
type SalaryPayment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SalaryRecordID uint      `gorm:"uniqueIndex;not null" json:"salary_record_id"`
	Amount         int64     `gorm:"not null" json:"amount"`
	TransactionID  *string   `gorm:"size:100" json:"transaction_id"`
	Description    string    `gorm:"type:text" json:"description"`
	PaidAt         time.Time `gorm:"autoCreateTime" json:"paid_at"`
}

func (SalaryPayment) TableName() string {
	return "salary_payments"
}

// ============================================================
// Medical
// ============================================================

// MedicalRecord tracks an injury or diagnosis tied to a training session
type MedicalRecord struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	PlayerID          uint            `gorm:"index;not null" json:"player_id"`
	TrainingSessionID uint            `gorm:"index;not null" json:"training_session_id"`
	Title             string          `gorm:"size:200;not null" json:"title"`
	Description       string          `gorm:"type:text" json:"description"`
	DiagnosedDate     datatypes.Date  `gorm:"not null" json:"diagnosed_date"`
	RecoveryDate      *datatypes.Date `json:"recovery_date"`
	PsychologistNote  string          `gorm:"size:500" json:"psychologist_note"`
	DoctorName        string          `gorm:"size:100" json:"doctor_name"`
	IsActive          bool            `gorm:"default:true" json:"is_active"`
	CreatedBy         *uint           `json:"created_by"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`

	Player          *Player          `gorm:"foreignKey:PlayerID" json:"player,omitempty"`
	TrainingSession *TrainingSession `gorm:"foreignKey:TrainingSessionID" json:"training_session,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}
