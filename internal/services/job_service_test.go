package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/lumina-api/internal/jobs"
)

func TestJobService_RunNow(t *testing.T) {
	svcs, _ := newTestServices(t)
	worker := jobs.NewWorker(1)
	defer worker.Shutdown()

	jobSvc := NewJobService(worker, svcs.Backup, svcs.Invoice)

	assert.True(t, jobSvc.RunNow(JobBackupSnapshot))
	assert.False(t, jobSvc.RunNow("unknown"))

	assert.Eventually(t, func() bool {
		entries, err := svcs.Backup.Archives()
		return err == nil && len(entries) == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return jobSvc.GetStatus()["completed_jobs"].(int64) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, JobBackupSnapshot, jobSvc.GetStatus()["last_job"])
}

func TestJobService_OverdueJob(t *testing.T) {
	svcs, _ := newTestServices(t)
	createInvoice(t, svcs, "100")

	jobSvc := NewJobService(jobs.NewWorker(1), svcs.Backup, svcs.Invoice)
	defer jobSvc.worker.Shutdown()

	require.NoError(t, jobSvc.OverdueJob(context.Background()))
}
