package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/lumina-api/internal/services"
)

type AttendanceHandler struct {
	attendanceService *services.AttendanceService
	printService      *services.PrintService
}

func NewAttendanceHandler(attendanceService *services.AttendanceService, printService *services.PrintService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService, printService: printService}
}

// @Summary List Attendance
// @Tags Attendance
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search query string false "Matches employee name or month"
// @Param employee_id query string false "Filter by employee"
// @Param month query string false "Filter by month (YYYY-MM)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /attendance [get]
func (h *AttendanceHandler) Index(c *gin.Context) {
	query := listQuery(c, "employee_id", "month")
	records, total, err := h.attendanceService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attendance": records,
		"pagination": pagination(query, total),
	})
}

// @Summary Get Attendance
// @Tags Attendance
// @Produce json
// @Param id path string true "Attendance ID"
// @Success 200 {object} models.Attendance
// @Security BearerAuth
// @Router /attendance/{id} [get]
func (h *AttendanceHandler) Show(c *gin.Context) {
	record, err := h.attendanceService.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": record})
}

// @Summary Record Attendance
// @Description One record per employee and month
// @Tags Attendance
// @Accept json
// @Produce json
// @Param request body services.AttendanceInput true "Attendance"
// @Success 201 {object} models.Attendance
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /attendance [post]
func (h *AttendanceHandler) Create(c *gin.Context) {
	var input services.AttendanceInput
	if !bindInput(c, "attendance", &input) {
		return
	}

	record, err := h.attendanceService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"attendance": record})
}

// @Summary Update Attendance
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path string true "Attendance ID"
// @Param request body services.AttendanceInput true "Attendance"
// @Success 200 {object} models.Attendance
// @Security BearerAuth
// @Router /attendance/{id} [put]
func (h *AttendanceHandler) Update(c *gin.Context) {
	var input services.AttendanceInput
	if !bindInput(c, "attendance", &input) {
		return
	}

	record, err := h.attendanceService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": record})
}

// @Summary Delete Attendance
// @Tags Attendance
// @Produce json
// @Param id path string true "Attendance ID"
// @Param confirm query bool true "Confirm deletion"
// @Success 200 {object} map[string]string
// @Failure 428 {object} map[string]string
// @Security BearerAuth
// @Router /attendance/{id} [delete]
func (h *AttendanceHandler) Delete(c *gin.Context) {
	if !confirmed(c) {
		return
	}
	if err := h.attendanceService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attendance deleted"})
}

// @Summary Attendance report
// @Description JSON report with total days and wages, for one employee or everyone
// @Tags Attendance
// @Produce json
// @Param employee_id query string false "Employee ID"
// @Success 200 {object} services.AttendanceReport
// @Security BearerAuth
// @Router /attendance/report [get]
func (h *AttendanceHandler) Report(c *gin.Context) {
	report, err := h.attendanceService.Report(c.Request.Context(), c.Query("employee_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Print attendance report
// @Tags Attendance
// @Produce html
// @Param employee_id query string false "Employee ID"
// @Success 200 {string} string "HTML document"
// @Security BearerAuth
// @Router /attendance/print [get]
func (h *AttendanceHandler) Print(c *gin.Context) {
	page, err := h.printService.AttendanceHTML(c.Request.Context(), c.Query("employee_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	renderHTML(c, page)
}
