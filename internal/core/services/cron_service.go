package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CronService runs the scheduled maintenance jobs: the daily overdue sweep
// and the monthly salary generation.
type CronService struct {
	cron           *cron.Cron
	billingService *BillingService
	payrollService *PayrollService
}

// NewCronService creates a new cron service
func NewCronService(billingService *BillingService, payrollService *PayrollService) *CronService {
	return &CronService{
		cron:           cron.New(),
		billingService: billingService,
		payrollService: payrollService,
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() error {
	// Daily at 00:05: flip pending invoices past due to overdue
	if _, err := s.cron.AddFunc("5 0 * * *", s.runOverdueSweep); err != nil {
		return err
	}

	// Monthly on the 1st at 00:10: generate salary records for live contracts
	if _, err := s.cron.AddFunc("10 0 1 * *", s.runSalaryGeneration); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Cron jobs started (overdue sweep, salary generation)")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("✅ Cron jobs stopped")
}

func (s *CronService) runOverdueSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := s.billingService.MarkOverdueSweep(ctx); err != nil {
		log.Printf("❌ Overdue sweep failed: %v", err)
	}
}

func (s *CronService) runSalaryGeneration() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := s.payrollService.GenerateMonthlySalaries(ctx, time.Now()); err != nil {
		log.Printf("❌ Salary generation failed: %v", err)
	}
}
