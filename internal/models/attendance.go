package models

// Attendance records how many days an employee worked in a month. EmployeeName and
// DailyWage are snapshots taken when the record was saved.
type Attendance struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	Month        string  `json:"month"`        // YYYY-MM
	MonthDisplay string  `json:"monthDisplay"` // March 2025
	DaysWorked   int     `json:"daysWorked"`
	DailyWage    float64 `json:"dailyWage"`
	MonthlyWage  float64 `json:"monthlyWage"`
	CreatedAt    string  `json:"createdAt"`
}

func (a Attendance) RecordID() string { return a.ID }
func (a Attendance) RecordCreatedAt() string { return a.CreatedAt }

// MaxDaysWorked bounds DaysWorked
const MaxDaysWorked = 31
