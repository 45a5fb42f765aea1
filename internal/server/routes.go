package server

import (
	"net/http"

	"fundfusion/internal/campaigns"
	"fundfusion/internal/donations"
	"fundfusion/internal/middleware"
	"fundfusion/internal/session"
	"fundfusion/internal/uploads"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const banner = "FundFusion server is running"

// RegisterRoutes builds the router. The owner listing is always guarded;
// the other mutating and per-user routes are guarded only when
// GuardAllMutations is set.
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(s.deps.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	guard := middleware.TokenAuthMiddleware(s.deps.Sessions)

	// routes that switch to guarded mode with GUARD_ALL_MUTATIONS
	mutating := r.Group("")
	if s.cfg.GuardAllMutations {
		mutating.Use(guard)
	}

	r.GET("/", s.bannerHandler)
	r.GET("/health", s.healthHandler)

	sessionHandler := session.NewHandler(s.deps.Sessions)
	r.POST("/jwt", sessionHandler.Issue)
	r.POST("/logout", sessionHandler.Logout)

	campaignHandler := campaigns.NewHandler(s.deps.Campaigns)
	r.GET("/campaigns", campaignHandler.GetAllCampaigns)
	r.GET("/campaigns/sort", campaignHandler.GetCampaignsSorted)
	r.GET("/campaign/:id", campaignHandler.GetCampaign)
	r.GET("/myCampaign", guard, campaignHandler.GetMyCampaigns)
	mutating.POST("/addCampaign", campaignHandler.CreateCampaign)
	mutating.DELETE("/myCampaign/:id", campaignHandler.DeleteCampaign)
	mutating.PUT("/updateCampaign", campaignHandler.UpdateCampaign)

	donationHandler := donations.NewHandler(s.deps.Donations)
	mutating.POST("/campaign/:id", donationHandler.CreateDonation)
	mutating.GET("/myDonations", donationHandler.GetMyDonations)

	if s.deps.Storage != nil {
		uploadHandler := uploads.NewHandler(uploads.NewService(s.deps.Storage))
		r.POST("/uploads/photo-url", guard, uploadHandler.PhotoUploadURL)
	}

	return r
}

func (s *Server) bannerHandler(c *gin.Context) {
	c.String(http.StatusOK, banner)
}

// healthHandler answers 503 when the document store is down. Object storage
// is reported but does not affect the status code.
func (s *Server) healthHandler(c *gin.Context) {
	response := make(map[string]interface{})
	status := http.StatusOK

	if s.deps.DB != nil {
		db := s.deps.DB.Health(c.Request.Context())
		if db["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		response["database"] = db
	}

	if s.deps.Storage != nil {
		storageHealth := map[string]string{"status": "up"}
		if err := s.deps.Storage.Health(c.Request.Context()); err != nil {
			storageHealth["status"] = "down"
			storageHealth["error"] = err.Error()
		}
		response["storage"] = storageHealth
	}

	c.JSON(status, response)
}
