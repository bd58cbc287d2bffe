package services

import (
	"context"
	"time"

	"github.com/sjperalta/lumina-api/internal/jobs"
	"github.com/sjperalta/lumina-api/pkg/logger"
)

// Scheduled job names
const (
	JobBackupSnapshot = "backup_snapshot"
	JobOverdueScan    = "overdue_invoice_scan"
)

const overdueScanInterval = time.Hour

// JobService owns the background schedules
type JobService struct {
	worker     *jobs.Worker
	backupSvc  *BackupService
	invoiceSvc *InvoiceService
}

func NewJobService(worker *jobs.Worker, backupSvc *BackupService, invoiceSvc *InvoiceService) *JobService {
	return &JobService{
		worker:     worker,
		backupSvc:  backupSvc,
		invoiceSvc: invoiceSvc,
	}
}

// Start registers the periodic snapshot and the hourly overdue scan
func (s *JobService) Start(backupInterval time.Duration) {
	s.worker.ScheduleEvery(JobBackupSnapshot, backupInterval, s.SnapshotJob)
	s.worker.ScheduleEvery(JobOverdueScan, overdueScanInterval, s.OverdueJob)
}

// RunNow queues a named job outside its schedule
func (s *JobService) RunNow(name string) bool {
	switch name {
	case JobBackupSnapshot:
		s.worker.Enqueue(name, s.SnapshotJob)
	case JobOverdueScan:
		s.worker.Enqueue(name, s.OverdueJob)
	default:
		return false
	}
	return true
}

func (s *JobService) SnapshotJob(ctx context.Context) error {
	_, err := s.backupSvc.Archive(ctx)
	return err
}

// OverdueJob logs every invoice past its due date with a balance left
func (s *JobService) OverdueJob(ctx context.Context) error {
	overdue, err := s.invoiceSvc.Overdue(ctx, time.Now())
	if err != nil {
		return err
	}
	for _, inv := range overdue {
		logger.Log.WarnContext(ctx, "invoice overdue",
			"invoice_id", inv.ID, "invoice_no", inv.InvoiceNo, "client", inv.Client,
			"due_date", inv.DueDate, "balance", inv.BalanceAmount)
	}
	logger.Log.InfoContext(ctx, "overdue scan finished", "overdue", len(overdue))
	return nil
}

func (s *JobService) GetStatus() map[string]interface{} {
	stats := s.worker.GetStats()
	status := map[string]interface{}{
		"active_jobs":    stats.ActiveJobs,
		"completed_jobs": stats.CompletedJobs,
		"failed_jobs":    stats.FailedJobs,
		"queue_length":   stats.QueueLength,
		"max_concurrent": stats.MaxConcurrent,
		"last_job":       stats.LastJob,
		"last_error":     stats.LastError,
	}
	if !stats.LastRunAt.IsZero() {
		status["last_run_at"] = stats.LastRunAt
	}
	return status
}
