package routes

import (
	"github.com/Akshay-214/WorkNest/controllers"
	"github.com/Akshay-214/WorkNest/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	{
		// Public admin routes
		admin.POST("/login", controllers.AdminLogin)

		// Protected admin routes
		admin.Use(middleware.AdminAuthMiddleware())
		{
			// User management
			admin.GET("/users", controllers.ListUsers)
			admin.PATCH("/users/:id/block", controllers.BlockUser)
			admin.PATCH("/users/:id/unblock", controllers.UnblockUser)

			// Transactions
			admin.GET("/transactions", controllers.ListAllTransactions)
			admin.POST("/transactions/:id/reverse", controllers.ReverseWithdrawal)

			// Reports
			admin.GET("/reports/transactions/excel", controllers.DownloadTransactionReportExcel)
			admin.GET("/reports/transactions/pdf", controllers.DownloadTransactionReportPDF)
		}
	}
}
