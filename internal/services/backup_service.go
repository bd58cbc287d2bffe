package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sjperalta/lumina-api/internal/models"
	"github.com/sjperalta/lumina-api/internal/repository"
	"github.com/sjperalta/lumina-api/internal/storage"
	"github.com/sjperalta/lumina-api/pkg/logger"
)

const (
	snapshotVersion = 1
	backupDir       = "backups"
	backupsKept     = 30
)

// Snapshot is a full copy of every collection. The session user is not included.
type Snapshot struct {
	Version    int                 `json:"version"`
	CreatedAt  string              `json:"createdAt"`
	Employees  []models.Employee   `json:"employees"`
	Expenses   []models.Expense    `json:"expenses"`
	Quotations []models.Quotation  `json:"quotations"`
	Invoices   []models.Invoice    `json:"invoices"`
	Payments   []models.Payment    `json:"payments"`
	Attendance []models.Attendance `json:"attendance"`
}

// RestoreResult counts the records written per collection
type RestoreResult struct {
	Restored map[string]int `json:"restored"`
}

// BackupService takes and restores snapshots
type BackupService struct {
	repos   *repository.Repositories
	archive *storage.LocalStorage
	now     func() time.Time
}

// NewBackupService creates a new backup service. archive may be nil when scheduled
// snapshots are not wanted.
func NewBackupService(repos *repository.Repositories, archive *storage.LocalStorage) *BackupService {
	return &BackupService{repos: repos, archive: archive, now: time.Now}
}

// Snapshot reads every collection
func (s *BackupService) Snapshot(ctx context.Context) (*Snapshot, error) {
	var err error
	snap := &Snapshot{Version: snapshotVersion, CreatedAt: models.Timestamp(s.now())}

	if snap.Employees, err = s.repos.Employee.All(ctx); err != nil {
		return nil, err
	}
	if snap.Expenses, err = s.repos.Expense.All(ctx); err != nil {
		return nil, err
	}
	if snap.Quotations, err = s.repos.Quotation.All(ctx); err != nil {
		return nil, err
	}
	if snap.Invoices, err = s.repos.Invoice.All(ctx); err != nil {
		return nil, err
	}
	if snap.Payments, err = s.repos.Payment.All(ctx); err != nil {
		return nil, err
	}
	if snap.Attendance, err = s.repos.Attendance.All(ctx); err != nil {
		return nil, err
	}
	return snap, nil
}

// Export returns the snapshot as indented JSON
func (s *BackupService) Export(ctx context.Context) ([]byte, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(snap, "", "  ")
}

// Restore replaces the collections present in data. A collection missing from the
// document is left untouched; an empty array clears it.
func (s *BackupService) Restore(ctx context.Context, r io.Reader) (*RestoreResult, error) {
	var snap Snapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: malformed snapshot: %v", ErrValidation, err)
	}
	if snap.Version > snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported snapshot version %d", ErrValidation, snap.Version)
	}

	result := &RestoreResult{Restored: make(map[string]int)}

	if snap.Employees != nil {
		if err := s.repos.Employee.ReplaceAll(ctx, snap.Employees); err != nil {
			return nil, err
		}
		result.Restored[models.CollectionEmployees] = len(snap.Employees)
	}
	if snap.Expenses != nil {
		if err := s.repos.Expense.ReplaceAll(ctx, snap.Expenses); err != nil {
			return nil, err
		}
		result.Restored[models.CollectionExpenses] = len(snap.Expenses)
	}
	if snap.Quotations != nil {
		if err := s.repos.Quotation.ReplaceAll(ctx, snap.Quotations); err != nil {
			return nil, err
		}
		result.Restored[models.CollectionQuotations] = len(snap.Quotations)
	}
	if snap.Invoices != nil {
		if err := s.repos.Invoice.ReplaceAll(ctx, snap.Invoices); err != nil {
			return nil, err
		}
		result.Restored[models.CollectionInvoices] = len(snap.Invoices)
	}
	if snap.Payments != nil {
		if err := s.repos.Payment.ReplaceAll(ctx, snap.Payments); err != nil {
			return nil, err
		}
		result.Restored[models.CollectionPayments] = len(snap.Payments)
	}
	if snap.Attendance != nil {
		if err := s.repos.Attendance.ReplaceAll(ctx, snap.Attendance); err != nil {
			return nil, err
		}
		result.Restored[models.CollectionAttendance] = len(snap.Attendance)
	}

	logger.Log.InfoContext(ctx, "snapshot restored", "collections", result.Restored)
	return result, nil
}

// RestoreBytes is Restore over an in-memory document
func (s *BackupService) RestoreBytes(ctx context.Context, data []byte) (*RestoreResult, error) {
	return s.Restore(ctx, bytes.NewReader(data))
}

// Archive writes a snapshot into the archive and prunes old ones
func (s *BackupService) Archive(ctx context.Context) (string, error) {
	if s.archive == nil {
		return "", fmt.Errorf("no archive configured")
	}
	data, err := s.Export(ctx)
	if err != nil {
		return "", err
	}

	path, err := s.archive.UploadFromBytes(data, "snapshot.json", backupDir)
	if err != nil {
		return "", err
	}
	removed, err := s.archive.Prune(backupDir, backupsKept)
	if err != nil {
		logger.Log.WarnContext(ctx, "failed to prune old snapshots", "error", err)
	}

	logger.Log.InfoContext(ctx, "snapshot archived", "path", path, "bytes", len(data), "pruned", removed)
	return path, nil
}

// Archives lists archived snapshots, newest first
func (s *BackupService) Archives() ([]storage.Entry, error) {
	if s.archive == nil {
		return []storage.Entry{}, nil
	}
	return s.archive.List(backupDir)
}
