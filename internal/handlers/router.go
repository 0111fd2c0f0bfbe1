package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"jobpilot/internal/auth"
)

// NewRouter wires every endpoint. Application routes and the outreach
// triggers sit behind the bearer-token middleware; signup/login/token and
// the health check stay public.
func NewRouter(authService *auth.Service, authH *AuthHandler, appH *ApplicationHandler,
	outreachH *OutreachHandler, resumeH *ResumeHandler) *gin.Engine {

	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	r.GET("/health", HealthCheck)
	r.POST("/signup", authH.Signup)
	r.POST("/login", authH.Login)
	r.POST("/token", authH.Token)

	protected := r.Group("", authService.Middleware())
	{
		protected.POST("/applications/", appH.Create)
		protected.GET("/applications/", appH.List)
		protected.GET("/applications/:id", appH.Get)
		protected.GET("/applications/status/:status", appH.ListByStatus)
		protected.PUT("/applications/:id", appH.Update)
		protected.DELETE("/applications/:id", appH.Delete)

		protected.POST("/trigger-cold-emails", outreachH.TriggerColdEmails)
		protected.POST("/trigger-followups", outreachH.TriggerFollowups)
		protected.POST("/send-selected-emails", outreachH.SendSelectedEmails)
		protected.POST("/send-selected-followups", outreachH.SendSelectedFollowups)

		protected.POST("/upload-resume", resumeH.Upload)
	}

	return r
}
