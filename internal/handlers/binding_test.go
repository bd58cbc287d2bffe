package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sjperalta/lumina-api/internal/services"
)

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    services.AttendanceInput
		expectError bool
	}{
		{
			name:     "Nested Structure",
			key:      "attendance",
			body:     `{"attendance": {"employeeId": "e1", "month": "2025-03", "daysWorked": 22}}`,
			expected: services.AttendanceInput{EmployeeID: "e1", Month: "2025-03", DaysWorked: 22},
		},
		{
			name:     "Flat Structure",
			key:      "attendance",
			body:     `{"employeeId": "e2", "month": "2025-04", "daysWorked": 20}`,
			expected: services.AttendanceInput{EmployeeID: "e2", Month: "2025-04", DaysWorked: 20},
		},
		{
			name:     "Other Keys Fall Back To Flat",
			key:      "attendance",
			body:     `{"note": "ignored", "employeeId": "e3", "month": "2025-05", "daysWorked": 1}`,
			expected: services.AttendanceInput{EmployeeID: "e3", Month: "2025-05", DaysWorked: 1},
		},
		{
			name:        "Invalid JSON",
			key:         "attendance",
			body:        `{"employeeId": "e4", "daysWorked": "many"}`,
			expectError: true,
		},
		{
			name:        "Nested but Invalid Content",
			key:         "attendance",
			body:        `{"attendance": {"daysWorked": "many"}}`,
			expectError: true,
		},
		{
			name:        "Nested Key Present but Invalid Type",
			key:         "attendance",
			body:        `{"attendance": "some string"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var result services.AttendanceInput
			err := BindNestedOrFlat(c, tt.key, &result)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}
