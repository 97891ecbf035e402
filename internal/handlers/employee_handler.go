package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gomart/internal/models"
	"gomart/internal/services"
)

type EmployeeHandler struct {
	employeeService services.EmployeeService
}

func NewEmployeeHandler(employeeService services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// @Summary      Create an employee
// @Description  Provisions a staff account; it starts ACTIVE with no verification step
// @Tags         Employees
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        employee  body      models.CreateEmployeeRequest  true  "Employee data"
// @Success      201       {object}  map[string]interface{}
// @Failure      409       {object}  map[string]interface{}
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req models.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	employee, err := h.employeeService.Create(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Employee created", gin.H{"employee": employee})
}

// @Summary      Search employees
// @Tags         Employees
// @Security     BearerAuth
// @Produce      json
// @Param        q       query     string  false  "Name, email or phone fragment"
// @Param        limit   query     int     false  "Page size"
// @Param        offset  query     int     false  "Page offset"
// @Success      200     {object}  map[string]interface{}
// @Router       /api/employees [get]
func (h *EmployeeHandler) Search(c *gin.Context) {
	limit, offset := pagination(c)
	employees, total, err := h.employeeService.Search(c.Query("q"), limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{
		"employees": employees,
		"total":     total,
	})
}

// @Summary      Get an employee
// @Tags         Employees
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Employee ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	employee, err := h.employeeService.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{"employee": employee})
}

// @Summary      Update an employee
// @Tags         Employees
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id        path      string                        true  "Employee ID"
// @Param        employee  body      models.UpdateEmployeeRequest  true  "Fields to update"
// @Success      200       {object}  map[string]interface{}
// @Failure      404       {object}  map[string]interface{}
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	var req models.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	employee, err := h.employeeService.Update(c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Employee updated", gin.H{"employee": employee})
}

// @Summary      Delete an employee
// @Tags         Employees
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Employee ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	if err := h.employeeService.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Employee deleted", nil)
}
