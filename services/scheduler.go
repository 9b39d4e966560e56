package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// sweepTimeout bounds one overdue sweep
const sweepTimeout = 5 * time.Minute

// OverdueSweeper marks past-due invoices overdue on a cron schedule
type OverdueSweeper struct {
	invoices *InvoiceService
	cron     *cron.Cron
}

// NewOverdueSweeper registers the sweep under schedule, a standard five-field cron expression
func NewOverdueSweeper(invoices *InvoiceService, schedule string) (*OverdueSweeper, error) {
	c := cron.New()
	s := &OverdueSweeper{invoices: invoices, cron: c}
	if _, err := c.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid overdue sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start runs one sweep immediately and then follows the schedule
func (s *OverdueSweeper) Start() {
	go s.run()
	s.cron.Start()
	log.Println("Overdue invoice scheduler started")
}

// Stop halts the schedule and waits for a running sweep to finish
func (s *OverdueSweeper) Stop() {
	<-s.cron.Stop().Done()
	log.Println("Overdue invoice scheduler stopped")
}

// Sweep marks overdue invoices once and reports how many changed
func (s *OverdueSweeper) Sweep(ctx context.Context) (int64, error) {
	return s.invoices.MarkOverdue(ctx)
}

func (s *OverdueSweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	n, err := s.Sweep(ctx)
	if err != nil {
		log.Printf("Overdue sweep failed: %v", err)
		return
	}
	log.Printf("Overdue sweep marked %d invoice(s) overdue", n)
}
