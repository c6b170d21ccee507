package routes

import (
	"github.com/Akshay-214/WorkNest/controllers"
	"github.com/Akshay-214/WorkNest/middleware"
	"github.com/Akshay-214/WorkNest/models"
	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes all user-related routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	router.POST("/register", controllers.RegisterUser)
	router.POST("/verify-otp", controllers.VerifyOTP)
	router.POST("/login", controllers.LoginUser)

	// Job browsing is public
	router.GET("/jobs", controllers.ListJobs)
	router.GET("/jobs/:id", controllers.GetJobDetails)

	// Protected routes (require authentication)
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", controllers.LogoutUser)

		// Profile
		protected.GET("/profile", controllers.GetProfile)
		protected.PUT("/profile", controllers.UpdateProfile)
		protected.PUT("/profile/password", controllers.ChangePassword)

		// Wallet
		protected.GET("/wallet", controllers.GetWalletBalance)
		protected.GET("/wallet/transactions", controllers.GetWalletTransactions)
		protected.PUT("/wallet/payout-account", controllers.UpdatePayoutAccount)
		protected.POST("/wallet/deposit", controllers.InitiateDeposit)
		protected.POST("/wallet/withdraw", controllers.RequestWithdrawal)

		// Projects (both parties)
		protected.GET("/projects", controllers.ListMyProjects)
		protected.GET("/projects/:id", controllers.GetProjectDetails)
		protected.POST("/projects/:id/cancel", controllers.CancelProject)
		protected.GET("/projects/:id/invoice", controllers.DownloadProjectInvoice)
	}

	// Client-only routes
	client := router.Group("/client")
	client.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.RoleClient))
	{
		client.POST("/jobs", controllers.CreateJob)
		client.PUT("/jobs/:id", controllers.UpdateJob)
		client.POST("/jobs/:id/close", controllers.CloseJob)
		client.GET("/jobs/mine", controllers.ListMyJobs)
		client.GET("/jobs/:id/proposals", controllers.ListJobProposals)
		client.POST("/proposals/:id/accept", controllers.AcceptProposal)
		client.POST("/proposals/:id/reject", controllers.RejectProposal)
		client.POST("/projects/:id/complete", controllers.CompleteProject)
	}

	// Freelancer-only routes
	freelancer := router.Group("/freelancer")
	freelancer.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.RoleFreelancer))
	{
		freelancer.POST("/jobs/:id/proposals", controllers.SubmitProposal)
		freelancer.GET("/proposals", controllers.ListMyProposals)
		freelancer.POST("/proposals/:id/withdraw", controllers.WithdrawProposal)
	}
}
