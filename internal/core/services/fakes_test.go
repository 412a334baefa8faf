package services

import (
	"context"
	"sync"
	"time"

	"fieldside/internal/adapters/persistence/models"
	"fieldside/internal/adapters/persistence/repositories"
	"fieldside/internal/core/domain"

	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the contract of the GORM
// implementations: gorm.ErrRecordNotFound for misses, domain.ErrConflict
// where a unique index would fire.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByPhone(_ context.Context, phone string) (*models.User, error) {
	for _, user := range r.users {
		if user.PhoneNumber == phone {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	var all []*models.User
	for _, user := range r.users {
		all = append(all, user)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByPhone(_ context.Context, phone string) (bool, error) {
	for _, user := range r.users {
		if user.PhoneNumber == phone {
			return true, nil
		}
	}
	return false, nil
}

type fakeRefreshTokenRepo struct {
	tokens map[string]*models.RefreshToken
	nextID uint
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*models.RefreshToken), nextID: 1}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	token.ID = r.nextID
	r.nextID++
	r.tokens[token.TokenHash] = token
	return nil
}

func (r *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return token, nil
}

func (r *fakeRefreshTokenRepo) Revoke(_ context.Context, id uint) error {
	now := time.Now()
	for _, token := range r.tokens {
		if token.ID == id {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	if token, ok := r.tokens[tokenHash]; ok {
		now := time.Now()
		token.RevokedAt = &now
	}
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	now := time.Now()
	for _, token := range r.tokens {
		if token.UserID == userID {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) error { return nil }

type fakeDirectoryRepo struct {
	managers map[uint]*models.Manager
	coaches  map[uint]*models.Coach
	players  map[uint]*models.Player
	nextID   uint
}

func newFakeDirectoryRepo() *fakeDirectoryRepo {
	return &fakeDirectoryRepo{
		managers: make(map[uint]*models.Manager),
		coaches:  make(map[uint]*models.Coach),
		players:  make(map[uint]*models.Player),
		nextID:   1,
	}
}

func (r *fakeDirectoryRepo) id() uint {
	id := r.nextID
	r.nextID++
	return id
}

func (r *fakeDirectoryRepo) CreateManager(_ context.Context, m *models.Manager) error {
	m.ID = r.id()
	r.managers[m.ID] = m
	return nil
}

func (r *fakeDirectoryRepo) ManagerByID(_ context.Context, id uint) (*models.Manager, error) {
	m, ok := r.managers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *fakeDirectoryRepo) ManagerByUserID(_ context.Context, userID uint) (*models.Manager, error) {
	for _, m := range r.managers {
		if m.UserID == userID {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeDirectoryRepo) UpdateManager(_ context.Context, m *models.Manager) error {
	r.managers[m.ID] = m
	return nil
}

func (r *fakeDirectoryRepo) DeleteManager(_ context.Context, id uint) error {
	for _, c := range r.coaches {
		if c.ManagerID == id {
			return domain.ErrConflict
		}
	}
	delete(r.managers, id)
	return nil
}

func (r *fakeDirectoryRepo) CreateCoach(_ context.Context, c *models.Coach) error {
	c.ID = r.id()
	r.coaches[c.ID] = c
	return nil
}

func (r *fakeDirectoryRepo) CoachByID(_ context.Context, id uint) (*models.Coach, error) {
	c, ok := r.coaches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeDirectoryRepo) CoachByUserID(_ context.Context, userID uint) (*models.Coach, error) {
	for _, c := range r.coaches {
		if c.UserID == userID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeDirectoryRepo) UpdateCoach(_ context.Context, c *models.Coach) error {
	r.coaches[c.ID] = c
	return nil
}

func (r *fakeDirectoryRepo) DeleteCoach(_ context.Context, id uint) error {
	delete(r.coaches, id)
	return nil
}

func (r *fakeDirectoryRepo) ListCoaches(_ context.Context, managerID uint, offset, limit int) ([]*models.Coach, int64, error) {
	var out []*models.Coach
	for _, c := range r.coaches {
		if c.ManagerID == managerID {
			out = append(out, c)
		}
	}
	return paginate(out, offset, limit), int64(len(out)), nil
}

func (r *fakeDirectoryRepo) CreatePlayer(_ context.Context, p *models.Player) error {
	p.ID = r.id()
	r.players[p.ID] = p
	return nil
}

func (r *fakeDirectoryRepo) PlayerByID(_ context.Context, id uint) (*models.Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeDirectoryRepo) PlayerByUserID(_ context.Context, userID uint) (*models.Player, error) {
	for _, p := range r.players {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeDirectoryRepo) UpdatePlayer(_ context.Context, p *models.Player) error {
	r.players[p.ID] = p
	return nil
}

func (r *fakeDirectoryRepo) DeletePlayer(_ context.Context, id uint) error {
	delete(r.players, id)
	return nil
}

func (r *fakeDirectoryRepo) ListPlayers(_ context.Context, schoolIDs []uint, offset, limit int) ([]*models.Player, int64, error) {
	var out []*models.Player
	for _, p := range r.players {
		if containsID(schoolIDs, p.SchoolID) {
			out = append(out, p)
		}
	}
	return paginate(out, offset, limit), int64(len(out)), nil
}

func (r *fakeDirectoryRepo) PlayerIDsForSchool(_ context.Context, schoolID uint) ([]uint, error) {
	var out []uint
	for _, p := range r.players {
		if p.SchoolID == schoolID {
			out = append(out, p.ID)
		}
	}
	return out, nil
}

type fakeSchoolRepo struct {
	schools   map[uint]*models.School
	semesters map[uint]*models.Semester
	nextID    uint
}

func newFakeSchoolRepo() *fakeSchoolRepo {
	return &fakeSchoolRepo{
		schools:   make(map[uint]*models.School),
		semesters: make(map[uint]*models.Semester),
		nextID:    1,
	}
}

func (r *fakeSchoolRepo) Create(_ context.Context, s *models.School) error {
	s.ID = r.nextID
	r.nextID++
	r.schools[s.ID] = s
	return nil
}

func (r *fakeSchoolRepo) GetByID(_ context.Context, id uint) (*models.School, error) {
	s, ok := r.schools[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeSchoolRepo) GetByManagerID(_ context.Context, managerID uint) (*models.School, error) {
	for _, s := range r.schools {
		if s.ManagerID == managerID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSchoolRepo) Update(_ context.Context, s *models.School) error {
	r.schools[s.ID] = s
	return nil
}

func (r *fakeSchoolRepo) SetActive(_ context.Context, id uint, active bool) error {
	s, ok := r.schools[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.IsActive = active
	return nil
}

func (r *fakeSchoolRepo) List(_ context.Context, offset, limit int) ([]*models.School, int64, error) {
	var all []*models.School
	for _, s := range r.schools {
		all = append(all, s)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (r *fakeSchoolRepo) CreateSemester(_ context.Context, s *models.Semester) error {
	for _, existing := range r.semesters {
		if existing.SchoolID == s.SchoolID && existing.Name == s.Name {
			return domain.ErrConflict
		}
	}
	s.ID = r.nextID
	r.nextID++
	r.semesters[s.ID] = s
	return nil
}

func (r *fakeSchoolRepo) SemesterByID(_ context.Context, id uint) (*models.Semester, error) {
	s, ok := r.semesters[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeSchoolRepo) ListSemesters(_ context.Context, schoolID uint) ([]*models.Semester, error) {
	var out []*models.Semester
	for _, s := range r.semesters {
		if s.SchoolID == schoolID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSchoolRepo) DeleteSemester(_ context.Context, id uint) error {
	delete(r.semesters, id)
	return nil
}

type fakeTeamRepo struct {
	teams  map[uint]*models.Team
	roster map[uint]map[uint]bool // teamID -> playerID set
	nextID uint
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{
		teams:  make(map[uint]*models.Team),
		roster: make(map[uint]map[uint]bool),
		nextID: 1,
	}
}

func (r *fakeTeamRepo) Create(_ context.Context, t *models.Team) error {
	t.ID = r.nextID
	r.nextID++
	r.teams[t.ID] = t
	r.roster[t.ID] = make(map[uint]bool)
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id uint) (*models.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, t *models.Team) error {
	r.teams[t.ID] = t
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id uint) error {
	delete(r.teams, id)
	delete(r.roster, id)
	return nil
}

func (r *fakeTeamRepo) List(_ context.Context, filter repositories.TeamFilter, offset, limit int) ([]*models.Team, int64, error) {
	var out []*models.Team
	for _, t := range r.teams {
		if len(filter.SchoolIDs) > 0 && !containsID(filter.SchoolIDs, t.SchoolID) {
			continue
		}
		if filter.CoachID != nil && (t.CoachID == nil || *t.CoachID != *filter.CoachID) {
			continue
		}
		if filter.PlayerID != nil && !r.roster[t.ID][*filter.PlayerID] {
			continue
		}
		out = append(out, t)
	}
	return paginate(out, offset, limit), int64(len(out)), nil
}

func (r *fakeTeamRepo) AddPlayer(_ context.Context, teamID, playerID uint) error {
	if r.roster[teamID] == nil {
		r.roster[teamID] = make(map[uint]bool)
	}
	r.roster[teamID][playerID] = true
	return nil
}

func (r *fakeTeamRepo) RemovePlayer(_ context.Context, teamID, playerID uint) error {
	delete(r.roster[teamID], playerID)
	return nil
}

func (r *fakeTeamRepo) HasPlayer(_ context.Context, teamID, playerID uint) (bool, error) {
	return r.roster[teamID][playerID], nil
}

func (r *fakeTeamRepo) RosterCount(_ context.Context, teamID uint) (int64, error) {
	return int64(len(r.roster[teamID])), nil
}

func (r *fakeTeamRepo) TeamIDsForSchool(_ context.Context, schoolID uint) ([]uint, error) {
	var out []uint
	for _, t := range r.teams {
		if t.SchoolID == schoolID {
			out = append(out, t.ID)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) TeamIDsForCoach(_ context.Context, coachID uint) ([]uint, error) {
	var out []uint
	for _, t := range r.teams {
		if t.CoachID != nil && *t.CoachID == coachID {
			out = append(out, t.ID)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) TeamIDsForPlayer(_ context.Context, playerID uint) ([]uint, error) {
	var out []uint
	for teamID, players := range r.roster {
		if players[playerID] {
			out = append(out, teamID)
		}
	}
	return out, nil
}

type fakeSessionRepo struct {
	sessions map[uint]*models.TrainingSession
	nextID   uint
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uint]*models.TrainingSession), nextID: 1}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *models.TrainingSession) error {
	s.ID = r.nextID
	r.nextID++
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id uint) (*models.TrainingSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, s *models.TrainingSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id uint) error {
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) List(_ context.Context, filter repositories.SessionFilter, offset, limit int) ([]*models.TrainingSession, int64, error) {
	var out []*models.TrainingSession
	for _, s := range r.sessions {
		if len(filter.TeamIDs) > 0 && !containsID(filter.TeamIDs, s.TeamID) {
			continue
		}
		if filter.TeamID != nil && s.TeamID != *filter.TeamID {
			continue
		}
		if !filter.IncludeCanceled && s.IsCanceled {
			continue
		}
		out = append(out, s)
	}
	return paginate(out, offset, limit), int64(len(out)), nil
}

type fakeAttendanceRepo struct {
	records map[uint]*models.Attendance
	nextID  uint
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[uint]*models.Attendance), nextID: 1}
}

func (r *fakeAttendanceRepo) Create(_ context.Context, a *models.Attendance) error {
	for _, existing := range r.records {
		if existing.PlayerID == a.PlayerID && existing.TrainingSessionID == a.TrainingSessionID {
			return domain.ErrConflict
		}
	}
	a.ID = r.nextID
	r.nextID++
	r.records[a.ID] = a
	return nil
}

func (r *fakeAttendanceRepo) GetByID(_ context.Context, id uint) (*models.Attendance, error) {
	a, ok := r.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *fakeAttendanceRepo) Exists(_ context.Context, playerID, sessionID uint) (bool, error) {
	for _, a := range r.records {
		if a.PlayerID == playerID && a.TrainingSessionID == sessionID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, a *models.Attendance) error {
	r.records[a.ID] = a
	return nil
}

func (r *fakeAttendanceRepo) ListBySession(_ context.Context, sessionID uint) ([]*models.Attendance, error) {
	var out []*models.Attendance
	for _, a := range r.records {
		if a.TrainingSessionID == sessionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListByPlayer(_ context.Context, playerID uint, offset, limit int) ([]*models.Attendance, int64, error) {
	var out []*models.Attendance
	for _, a := range r.records {
		if a.PlayerID == playerID {
			out = append(out, a)
		}
	}
	return paginate(out, offset, limit), int64(len(out)), nil
}

type fakeMedicalRepo struct {
	records map[uint]*models.MedicalRecord
	nextID  uint
}

func newFakeMedicalRepo() *fakeMedicalRepo {
	return &fakeMedicalRepo{records: make(map[uint]*models.MedicalRecord), nextID: 1}
}

func (r *fakeMedicalRepo) Create(_ context.Context, m *models.MedicalRecord) error {
	m.ID = r.nextID
	r.nextID++
	r.records[m.ID] = m
	return nil
}

func (r *fakeMedicalRepo) GetByID(_ context.Context, id uint) (*models.MedicalRecord, error) {
	m, ok := r.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *fakeMedicalRepo) Update(_ context.Context, m *models.MedicalRecord) error {
	r.records[m.ID] = m
	return nil
}

func (r *fakeMedicalRepo) Delete(_ context.Context, id uint) error {
	delete(r.records, id)
	return nil
}

func (r *fakeMedicalRepo) ListByPlayer(_ context.Context, playerID uint, offset, limit int) ([]*models.MedicalRecord, int64, error) {
	var out []*models.MedicalRecord
	for _, m := range r.records {
		if m.PlayerID == playerID {
			out = append(out, m)
		}
	}
	return paginate(out, offset, limit), int64(len(out)), nil
}

// fakeBillingRepo guards its state with one mutex, standing in for the
// row lock the real RecordPayment takes on the invoice.
type fakeBillingRepo struct {
	mu       sync.Mutex
	invoices map[uint]*models.PlayerInvoice
	payments []*models.PlayerFeePayment
	nextID   uint
}

func newFakeBillingRepo() *fakeBillingRepo {
	return &fakeBillingRepo{invoices: make(map[uint]*models.PlayerInvoice), nextID: 1}
}

func (r *fakeBillingRepo) CreateInvoice(_ context.Context, inv *models.PlayerInvoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv.ID = r.nextID
	r.nextID++
	r.invoices[inv.ID] = inv
	return nil
}

func (r *fakeBillingRepo) GetInvoiceByID(_ context.Context, id uint) (*models.PlayerInvoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return inv, nil
}

func (r *fakeBillingRepo) ListInvoices(_ context.Context, filter repositories.InvoiceFilter, offset, limit int) ([]*models.PlayerInvoice, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PlayerInvoice
	for _, inv := range r.invoices {
		if len(filter.TeamIDs) > 0 && !containsID(filter.TeamIDs, inv.TeamID) {
			continue
		}
		if filter.PlayerID != nil && inv.PlayerID != *filter.PlayerID {
			continue
		}
		if filter.Status != nil && inv.Status != *filter.Status {
			continue
		}
		out = append(out, inv)
	}
	return paginate(out, offset, limit), int64(len(out)), nil
}

func (r *fakeBillingRepo) TotalPaid(_ context.Context, invoiceID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sumPayments(invoiceID), nil
}

func (r *fakeBillingRepo) sumPayments(invoiceID uint) int64 {
	var total int64
	for _, p := range r.payments {
		if p.InvoiceID == invoiceID {
			total += p.Amount
		}
	}
	return total
}

func (r *fakeBillingRepo) RecordPayment(_ context.Context, payment *models.PlayerFeePayment, today time.Time) (*models.PlayerInvoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[payment.InvoiceID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	payment.ID = r.nextID
	r.nextID++
	r.payments = append(r.payments, payment)

	if inv.Status != domain.InvoiceStatusCancelled {
		inv.Status = domain.DeriveInvoiceStatus(inv.Amount, r.sumPayments(inv.ID), time.Time(inv.DueDate), today)
	}
	return inv, nil
}

func (r *fakeBillingRepo) CancelInvoice(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if inv.Status == domain.InvoiceStatusCancelled {
		return domain.ErrConflict
	}
	inv.Status = domain.InvoiceStatusCancelled
	return nil
}

func (r *fakeBillingRepo) MarkOverdue(_ context.Context, today time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	var flipped int64
	for _, inv := range r.invoices {
		if inv.Status == domain.InvoiceStatusPending && time.Time(inv.DueDate).Before(day) {
			inv.Status = domain.InvoiceStatusOverdue
			flipped++
		}
	}
	return flipped, nil
}

func (r *fakeBillingRepo) ListPayments(_ context.Context, invoiceID uint) ([]*models.PlayerFeePayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PlayerFeePayment
	for _, p := range r.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakePayrollRepo struct {
	contracts map[uint]*models.CoachContract
	records   map[uint]*models.SalaryRecord
	nextID    uint
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		contracts: make(map[uint]*models.CoachContract),
		records:   make(map[uint]*models.SalaryRecord),
		nextID:    1,
	}
}

func (r *fakePayrollRepo) CreateContract(_ context.Context, c *models.CoachContract) error {
	for _, existing := range r.contracts {
		if existing.CoachID == c.CoachID {
			return domain.ErrConflict
		}
	}
	c.ID = r.nextID
	r.nextID++
	r.contracts[c.ID] = c
	return nil
}

func (r *fakePayrollRepo) ContractByID(_ context.Context, id uint) (*models.CoachContract, error) {
	c, ok := r.contracts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakePayrollRepo) ContractByCoachID(_ context.Context, coachID uint) (*models.CoachContract, error) {
	for _, c := range r.contracts {
		if c.CoachID == coachID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePayrollRepo) UpdateContract(_ context.Context, c *models.CoachContract) error {
	r.contracts[c.ID] = c
	return nil
}

func (r *fakePayrollRepo) DeleteContract(_ context.Context, id uint) error {
	delete(r.contracts, id)
	return nil
}

func (r *fakePayrollRepo) ListContracts(_ context.Context, managerID uint, offset, limit int) ([]*models.CoachContract, int64, error) {
	var out []*models.CoachContract
	for _, c := range r.contracts {
		if managerID == 0 || c.ManagerID == managerID {
			out = append(out, c)
		}
	}
	return paginate(out, offset, limit), int64(len(out)), nil
}

func (r *fakePayrollRepo) ListActiveContracts(_ context.Context, month time.Time) ([]*models.CoachContract, error) {
	var out []*models.CoachContract
	for _, c := range r.contracts {
		if c.StartAt != nil && time.Time(*c.StartAt).After(month) {
			continue
		}
		if c.ExpirationDate != nil && time.Time(*c.ExpirationDate).Before(month) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakePayrollRepo) CreateSalaryRecord(_ context.Context, rec *models.SalaryRecord) error {
	for _, existing := range r.records {
		if existing.ContractID == rec.ContractID && time.Time(existing.Month).Equal(time.Time(rec.Month)) {
			return domain.ErrConflict
		}
	}
	rec.ID = r.nextID
	r.nextID++
	r.records[rec.ID] = rec
	return nil
}

func (r *fakePayrollRepo) SalaryRecordByID(_ context.Context, id uint) (*models.SalaryRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if rec.Contract == nil {
		rec.Contract = r.contracts[rec.ContractID]
	}
	return rec, nil
}

func (r *fakePayrollRepo) ListSalaryRecords(_ context.Context, contractID uint) ([]*models.SalaryRecord, error) {
	var out []*models.SalaryRecord
	for _, rec := range r.records {
		if rec.ContractID == contractID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakePayrollRepo) PaySalary(_ context.Context, recordID uint, payment *models.SalaryPayment) (*models.SalaryRecord, error) {
	rec, ok := r.records[recordID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if rec.Status == domain.SalaryPaid {
		return nil, domain.ErrConflict
	}
	payment.ID = r.nextID
	r.nextID++
	payment.SalaryRecordID = recordID
	rec.Status = domain.SalaryPaid
	rec.Payment = payment
	return rec, nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
