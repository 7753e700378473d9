package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"alumniportal/pkg/rbac"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *AuthHandler,
	employerHandler *EmployerHandler,
	adminHandler *AdminHandler,
	applicationHandler *ApplicationHandler,
	notificationHandler *NotificationHandler,
	jwtSecret string,
) *Router {
	r := gin.Default()
	r.Use(TraceMiddleware(), MetricsMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/auth/alumni/register", authHandler.RegisterAlumni)
	r.POST("/auth/alumni/login", authHandler.LoginAlumni)
	r.POST("/auth/employer/register", authHandler.RegisterEmployer)
	r.POST("/auth/employer/login", authHandler.LoginEmployer)
	r.POST("/auth/admin/login", authHandler.LoginAdmin)
	r.POST("/auth/forgot-password", authHandler.RequestOTP)
	r.POST("/auth/verify-otp", authHandler.VerifyOTP)
	r.POST("/auth/reset-password", authHandler.ResetPassword)
	r.GET("/careers", applicationHandler.ListCareers)

	// Protected
	auth := r.Group("/")
	auth.Use(AuthMiddleware(jwtSecret))
	{
		// Alumni
		auth.POST("/careers/:id/apply",
			RequirePermission(rbac.PermissionSubmitApplication), applicationHandler.Submit)
		auth.GET("/applications/mine",
			RequirePermission(rbac.PermissionViewOwnSubmission), applicationHandler.MySubmissions)

		// Employer
		employer := auth.Group("/employer")
		{
			employer.GET("/me",
				RequirePermission(rbac.PermissionProposeChange), employerHandler.Me)
			employer.PUT("/me",
				RequirePermission(rbac.PermissionProposeChange), employerHandler.ProposeChange)
			employer.POST("/me/logo",
				RequirePermission(rbac.PermissionProposeChange), employerHandler.UploadLogo)
			employer.POST("/me/confirm",
				RequirePermission(rbac.PermissionConfirmProfile), employerHandler.Confirm)
			employer.GET("/applicants",
				RequirePermission(rbac.PermissionViewApplicants), employerHandler.Applicants)
			employer.GET("/careers",
				RequirePermission(rbac.PermissionManageCareers), applicationHandler.MyCareers)
			employer.POST("/careers",
				RequirePermission(rbac.PermissionManageCareers), applicationHandler.CreateCareer)
			employer.DELETE("/careers/:id",
				RequirePermission(rbac.PermissionManageCareers), applicationHandler.DeleteCareer)
			employer.GET("/careers/:id/applications",
				RequirePermission(rbac.PermissionViewApplicants), applicationHandler.CareerApplications)
		}

		// Admin
		admin := auth.Group("/admin")
		{
			admin.GET("/employers",
				RequirePermission(rbac.PermissionManageEmployers), adminHandler.ListEmployers)
			admin.GET("/employers/pending-count",
				RequirePermission(rbac.PermissionManageEmployers), adminHandler.PendingCount)
			admin.GET("/employers/:id",
				RequirePermission(rbac.PermissionManageEmployers), adminHandler.GetEmployer)
			admin.POST("/employers/:id/approve/:scope",
				RequirePermission(rbac.PermissionApproveChange), adminHandler.Approve)
			admin.POST("/employers/:id/reject/:scope",
				RequirePermission(rbac.PermissionApproveChange), adminHandler.Reject)
			admin.PUT("/employers/:id/status",
				RequirePermission(rbac.PermissionManageEmployers), adminHandler.UpdateStatus)
			admin.DELETE("/employers/:id",
				RequirePermission(rbac.PermissionManageEmployers), adminHandler.DeleteEmployer)

			admin.GET("/notifications",
				RequirePermission(rbac.PermissionViewInbox), notificationHandler.Inbox)
			admin.DELETE("/notifications/:id",
				RequirePermission(rbac.PermissionViewInbox), notificationHandler.Delete)
			admin.DELETE("/notifications",
				RequirePermission(rbac.PermissionViewInbox), notificationHandler.Clear)
		}
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
