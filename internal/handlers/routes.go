package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sjperalta/lumina-api/internal/middleware"
)

// Register mounts every API route on v1. auth guards everything except health and login.
func (h *Handlers) Register(v1 *gin.RouterGroup, auth gin.HandlerFunc) {
	// Health check (public)
	v1.GET("/health", h.Health.Index)

	// Authentication (public)
	v1.POST("/auth/login", h.Auth.Login)

	protected := v1.Group("")
	protected.Use(auth)
	{
		protected.POST("/auth/logout", h.Auth.Logout)
		protected.GET("/auth/me", h.Auth.Me)

		protected.GET("/dashboard", h.Dashboard.Index)

		employees := protected.Group("/employees")
		{
			employees.GET("", h.Employee.Index)
			employees.POST("", h.Employee.Create)
			employees.GET("/:id", h.Employee.Show)
			employees.PUT("/:id", h.Employee.Update)
			employees.DELETE("/:id", h.Employee.Delete)
		}

		expenses := protected.Group("/expenses")
		{
			expenses.GET("", h.Expense.Index)
			expenses.POST("", h.Expense.Create)
			expenses.GET("/categories", h.Expense.Categories)
			expenses.GET("/:id", h.Expense.Show)
			expenses.PUT("/:id", h.Expense.Update)
			expenses.DELETE("/:id", h.Expense.Delete)
		}

		quotations := protected.Group("/quotations")
		{
			quotations.GET("", h.Quotation.Index)
			quotations.POST("", h.Quotation.Create)
			quotations.GET("/next-number", h.Quotation.NextNumber)
			quotations.GET("/:id", h.Quotation.Show)
			quotations.PUT("/:id", h.Quotation.Update)
			quotations.DELETE("/:id", h.Quotation.Delete)
			quotations.GET("/:id/print", h.Quotation.Print)
			quotations.GET("/:id/pdf", h.Quotation.PDF)
			quotations.POST("/:id/convert", h.Quotation.Convert)
		}

		invoices := protected.Group("/invoices")
		{
			invoices.GET("", h.Invoice.Index)
			invoices.POST("", h.Invoice.Create)
			invoices.GET("/next-number", h.Invoice.NextNumber)
			invoices.GET("/:id", h.Invoice.Show)
			invoices.PUT("/:id", h.Invoice.Update)
			invoices.DELETE("/:id", h.Invoice.Delete)
			invoices.GET("/:id/print", h.Invoice.Print)
			invoices.GET("/:id/pdf", h.Invoice.PDF)
			invoices.GET("/:id/payments", h.Invoice.Payments)
			invoices.POST("/:id/recalculate", h.Invoice.Recalculate)
		}

		payments := protected.Group("/payments")
		{
			payments.GET("", h.Payment.Index)
			payments.POST("", h.Payment.Create)
			payments.GET("/methods", h.Payment.Methods)
			payments.GET("/:id", h.Payment.Show)
			payments.PUT("/:id", h.Payment.Update)
			payments.DELETE("/:id", h.Payment.Delete)
			payments.GET("/:id/print", h.Payment.Print)
		}

		attendance := protected.Group("/attendance")
		{
			attendance.GET("", h.Attendance.Index)
			attendance.POST("", h.Attendance.Create)
			attendance.GET("/report", h.Attendance.Report)
			attendance.GET("/print", h.Attendance.Print)
			attendance.GET("/:id", h.Attendance.Show)
			attendance.PUT("/:id", h.Attendance.Update)
			attendance.DELETE("/:id", h.Attendance.Delete)
		}

		protected.GET("/exports/:collection", h.Export.Export)

		// Admin-only routes
		admin := protected.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/backup", h.Backup.Download)
			admin.POST("/backup/restore", h.Backup.Restore)
			admin.GET("/backup/archives", h.Backup.Archives)
			admin.POST("/backup/archives", h.Backup.Archive)

			admin.GET("/jobs/status", h.Job.Status)
			admin.POST("/jobs/:name/run", h.Job.Run)
		}

		protected.GET("/tools/amount-in-words", h.Tools.AmountInWords)
	}
}
