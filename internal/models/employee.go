package models

// Employee is a staff member paid a daily wage
type Employee struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	DailyWage float64 `json:"dailyWage"`
	Phone     string  `json:"phone"`
	CreatedAt string  `json:"createdAt"`
}

func (e Employee) RecordID() string { return e.ID }
func (e Employee) RecordCreatedAt() string { return e.CreatedAt }

// WorkingDaysPerMonth is the factor used for monthly wage estimates
const WorkingDaysPerMonth = 30

// MonthlyEstimate is the display-only monthly wage (dailyWage x 30)
func (e Employee) MonthlyEstimate() float64 {
	return e.DailyWage * WorkingDaysPerMonth
}

// EmployeeResponse is the JSON response format for employees
type EmployeeResponse struct {
	Employee
	MonthlyEstimate float64 `json:"monthlyEstimate"`
}

// ToResponse converts Employee to EmployeeResponse
func (e Employee) ToResponse() EmployeeResponse {
	return EmployeeResponse{Employee: e, MonthlyEstimate: e.MonthlyEstimate()}
}
