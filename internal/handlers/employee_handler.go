package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/lumina-api/internal/models"
	"github.com/sjperalta/lumina-api/internal/services"
)

type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// @Summary List Employees
// @Description Get a paginated list of employees
// @Tags Employees
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search query string false "Matches name, role or phone"
// @Param role query string false "Filter by role"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /employees [get]
func (h *EmployeeHandler) Index(c *gin.Context) {
	query := listQuery(c, "role")
	employees, total, err := h.employeeService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, e.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"employees":  responses,
		"pagination": pagination(query, total),
	})
}

// @Summary Get Employee
// @Tags Employees
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} models.EmployeeResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Show(c *gin.Context) {
	employee, err := h.employeeService.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": employee.ToResponse()})
}

// @Summary Create Employee
// @Tags Employees
// @Accept json
// @Produce json
// @Param request body services.EmployeeInput true "Employee"
// @Success 201 {object} models.EmployeeResponse
// @Failure 400 {object} map[string]interface{}
// @Security BearerAuth
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var input services.EmployeeInput
	if !bindInput(c, "employee", &input) {
		return
	}

	employee, err := h.employeeService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"employee": employee.ToResponse()})
}

// @Summary Update Employee
// @Description Replaces the editable fields. Existing attendance keeps its snapshot.
// @Tags Employees
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param request body services.EmployeeInput true "Employee"
// @Success 200 {object} models.EmployeeResponse
// @Security BearerAuth
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	var input services.EmployeeInput
	if !bindInput(c, "employee", &input) {
		return
	}

	employee, err := h.employeeService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": employee.ToResponse()})
}

// @Summary Delete Employee
// @Description Requires confirm=true. Attendance records are kept.
// @Tags Employees
// @Produce json
// @Param id path string true "Employee ID"
// @Param confirm query bool true "Confirm deletion"
// @Success 200 {object} map[string]string
// @Failure 428 {object} map[string]string
// @Security BearerAuth
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	if !confirmed(c) {
		return
	}
	if err := h.employeeService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}
