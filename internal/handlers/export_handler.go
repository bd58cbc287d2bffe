package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/lumina-api/internal/services"
)

// maxRestoreBytes bounds an uploaded snapshot
const maxRestoreBytes = 32 << 20

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// @Summary Export a collection
// @Tags Exports
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param collection path string true "employees, expenses, quotations, invoices, payments or attendance"
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /exports/{collection} [get]
func (h *ExportHandler) Export(c *gin.Context) {
	file, err := h.exportService.Export(c.Request.Context(), c.Param("collection"), c.DefaultQuery("format", services.FormatCSV))
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, file.Filename, file.ContentType, file.Data)
}

type BackupHandler struct {
	backupService *services.BackupService
}

func NewBackupHandler(backupService *services.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// @Summary Download backup
// @Description Full JSON snapshot of every collection
// @Tags Backup
// @Produce json
// @Success 200 {object} services.Snapshot
// @Security BearerAuth
// @Router /backup [get]
func (h *BackupHandler) Download(c *gin.Context) {
	data, err := h.backupService.Export(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	filename := "lumina-backup-" + time.Now().Format("2006-01-02") + ".json"
	attachment(c, filename, "application/json", data)
}

// @Summary Restore backup
// @Description Replaces the collections present in the uploaded snapshot. Requires confirm=true.
// @Tags Backup
// @Accept json
// @Produce json
// @Param confirm query bool true "Confirm restore"
// @Param snapshot body services.Snapshot true "Snapshot"
// @Success 200 {object} services.RestoreResult
// @Failure 400 {object} map[string]string
// @Failure 428 {object} map[string]string
// @Security BearerAuth
// @Router /backup/restore [post]
func (h *BackupHandler) Restore(c *gin.Context) {
	if !confirmed(c) {
		return
	}
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxRestoreBytes)
	result, err := h.backupService.Restore(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary List archived snapshots
// @Tags Backup
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /backup/archives [get]
func (h *BackupHandler) Archives(c *gin.Context) {
	entries, err := h.backupService.Archives()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"archives": entries})
}

// @Summary Archive a snapshot now
// @Tags Backup
// @Produce json
// @Success 201 {object} map[string]string
// @Security BearerAuth
// @Router /backup/archives [post]
func (h *BackupHandler) Archive(c *gin.Context) {
	path, err := h.backupService.Archive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"path": path})
}
