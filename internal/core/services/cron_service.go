package services

import (
	"context"
	"log"
	"time"

	"staynest-hostels/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled maintenance jobs: releasing beds whose
// vacate notice has run out, and purging expired refresh tokens.
type CronService struct {
	cron        *cron.Cron
	propertySvc *PropertyService
	refreshRepo repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(propertySvc *PropertyService, refreshRepo repositories.RefreshTokenRepository) *CronService {
	return &CronService{
		cron:        cron.New(),
		propertySvc: propertySvc,
		refreshRepo: refreshRepo,
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() {
	// 02:30 daily: release notice beds past their vacating date
	if _, err := s.cron.AddFunc("30 2 * * *", s.releaseVacatedBeds); err != nil {
		log.Printf("❌ Failed to schedule bed release job: %v", err)
	}

	// Hourly: purge expired refresh tokens
	if _, err := s.cron.AddFunc("@hourly", s.purgeExpiredTokens); err != nil {
		log.Printf("❌ Failed to schedule token purge job: %v", err)
	}

	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop stops the scheduler, waiting for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) releaseVacatedBeds() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	released, err := s.propertySvc.ReleaseDueNoticeBeds(ctx)
	if err != nil {
		log.Printf("❌ Bed release job error: %v", err)
		return
	}
	if released > 0 {
		log.Printf("✅ Released %d vacated beds", released)
	}
}

func (s *CronService) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.refreshRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Token purge job error: %v", err)
	}
}
