package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/shenikar/resqalert/internal/auth"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Вход не требует сессии
	api.POST("/auth/login", h.login)

	// Канал приема сообщений из мобильного приложения
	api.POST("/ingest/reports", APIKeyAuthMiddleware(h.cfg, h.logger), h.ingestReport)

	secured := api.Group("", h.SessionMiddleware())
	{
		secured.POST("/auth/logout", h.logout)
		secured.PATCH("/auth/account", h.updateAccount)
	}

	reports := secured.Group("/reports")
	{
		reports.GET("", h.RequirePermission(auth.ObjReports, auth.ActRead), h.listReports)
		reports.GET("/:id", h.RequirePermission(auth.ObjReports, auth.ActRead), h.getReport)
		reports.PATCH("/:id/status", h.RequirePermission(auth.ObjReports, auth.ActWrite), h.updateReportStatus)
		reports.GET("/:id/history", h.RequirePermission(auth.ObjReports, auth.ActRead), h.reportHistory)
		reports.POST("/:id/block", h.RequirePermission(auth.ObjReports, auth.ActWrite), h.blockReporter)
		reports.GET("/:id/pdf", h.RequirePermission(auth.ObjReports, auth.ActRead), h.reportPDF)
	}
	secured.GET("/blocked-numbers", h.RequirePermission(auth.ObjBlocklist, auth.ActRead), h.listBlocked)

	requests := secured.Group("/requests")
	{
		requests.POST("", h.RequirePermission(auth.ObjRequests, auth.ActWrite), h.createRequest)
		requests.GET("", h.RequirePermission(auth.ObjRequests, auth.ActRead), h.listRequests)
		requests.GET("/:id", h.RequirePermission(auth.ObjRequests, auth.ActRead), h.getRequest)
		requests.PATCH("/:id/acknowledge", h.RequirePermission(auth.ObjRequests, auth.ActWrite), h.acknowledgeRequest)
		requests.POST("/:id/approve", h.RequirePermission(auth.ObjRequests, auth.ActWrite), h.approveRequest)
		requests.PATCH("/:id/decline", h.RequirePermission(auth.ObjRequests, auth.ActWrite), h.declineRequest)
		requests.GET("/:id/pdf", h.RequirePermission(auth.ObjRequests, auth.ActRead), h.requestPDF)
	}

	feedbacks := secured.Group("/feedbacks")
	{
		feedbacks.POST("", h.RequirePermission(auth.ObjFeedback, auth.ActWrite), h.createFeedback)
		feedbacks.GET("", h.RequirePermission(auth.ObjFeedback, auth.ActRead), h.listFeedback)
		feedbacks.PATCH("/:id/status", h.RequirePermission(auth.ObjFeedback, auth.ActManage), h.updateFeedbackStatus)
	}

	dashboard := secured.Group("/dashboard", h.RequirePermission(auth.ObjDashboard, auth.ActRead))
	{
		dashboard.GET("", h.getDashboard)
		dashboard.GET("/pdf", h.dashboardPDF)
		dashboard.GET("/stream", h.streamDashboard)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
