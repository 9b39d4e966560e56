package main

import (
	"net/http"
	"time"

	"github.com/crewdesk/crewdesk-api/config"
	"github.com/crewdesk/crewdesk-api/controllers"
	"github.com/crewdesk/crewdesk-api/middleware"
	"github.com/crewdesk/crewdesk-api/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are the external collaborators the router is built on
type Dependencies struct {
	Config   *config.Config
	DB       *gorm.DB
	Numberer *services.Numberer
	Searcher services.CustomerSearcher
	Reporter services.RevenueReporter
	Storage  services.PhotoStorage
	// UserInfo is nil when tokens are signed with JWT_SECRET
	UserInfo services.UserInfoProvider
}

// setupRouter wires services, controllers and middleware into the /api/v1 routes
func setupRouter(deps Dependencies) (*gin.Engine, error) {
	authz, err := services.NewAuthorizationService()
	if err != nil {
		return nil, err
	}

	db := deps.DB
	customerSvc := services.NewCustomerService(db, deps.Searcher)
	jobSvc := services.NewJobService(db, deps.Numberer)
	invoiceSvc := services.NewInvoiceService(db, deps.Numberer)
	userSvc := services.NewUserService(db)

	customers := controllers.NewCustomerController(customerSvc)
	jobs := controllers.NewJobController(jobSvc)
	quotes := controllers.NewQuoteController(services.NewQuoteService(db, deps.Numberer))
	invoices := controllers.NewInvoiceController(invoiceSvc)
	routes := controllers.NewRouteController(services.NewRouteService(db))
	photos := controllers.NewPhotoController(services.NewPhotoService(db, deps.Storage))
	reports := controllers.NewReportController(
		services.NewReportService(deps.Reporter, invoiceSvc),
		services.NewDashboardService(customerSvc, jobSvc, deps.Reporter),
	)
	users := controllers.NewUserController(userSvc, deps.UserInfo)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.RequestTimer())
	if len(deps.Config.CORSAllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.Config.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	can := func(resource, action string) gin.HandlerFunc {
		return middleware.RequirePermission(authz, resource, action)
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus(db))

		if local, ok := deps.Storage.(*services.LocalPhotoStorage); ok {
			v1.GET("/uploads/*key", controllers.NewUploadController(local.Dir).GetUploadedPhoto)
		}
	}

	authed := v1.Group("", middleware.EnsureValidToken(deps.Config))
	authed.POST("/users", users.CreateUser)

	app := authed.Group("", middleware.RequireProfile(userSvc))
	{
		app.GET("/users/me", users.GetMyProfile)
		app.PUT("/users/me", users.UpdateMyProfile)
		app.GET("/users", can(services.ResourceUsers, services.ActionManage), users.ListUsers)
		app.PUT("/users/:id/role", can(services.ResourceUsers, services.ActionManage), users.SetRole)

		app.GET("/dashboard", reports.Dashboard)

		app.GET("/customers", can(services.ResourceCustomers, services.ActionRead), customers.List)
		app.GET("/customers/:id", can(services.ResourceCustomers, services.ActionRead), customers.Get)
		app.POST("/customers", can(services.ResourceCustomers, services.ActionWrite), customers.Create)
		app.PUT("/customers/:id", can(services.ResourceCustomers, services.ActionWrite), customers.Update)

		app.GET("/jobs", can(services.ResourceJobs, services.ActionRead), jobs.List)
		app.GET("/jobs/:id", can(services.ResourceJobs, services.ActionRead), jobs.Get)
		app.POST("/jobs", can(services.ResourceJobs, services.ActionWrite), jobs.Create)
		app.PUT("/jobs/:id", can(services.ResourceJobs, services.ActionWrite), jobs.Update)

		app.GET("/quotes", can(services.ResourceQuotes, services.ActionRead), quotes.List)
		app.GET("/quotes/:id", can(services.ResourceQuotes, services.ActionRead), quotes.Get)
		app.POST("/quotes", can(services.ResourceQuotes, services.ActionWrite), quotes.Create)
		app.PUT("/quotes/:id", can(services.ResourceQuotes, services.ActionWrite), quotes.Update)

		app.GET("/invoices", can(services.ResourceInvoices, services.ActionRead), invoices.List)
		app.GET("/invoices/:id", can(services.ResourceInvoices, services.ActionRead), invoices.Get)
		app.POST("/invoices", can(services.ResourceInvoices, services.ActionWrite), invoices.Create)
		app.PUT("/invoices/:id", can(services.ResourceInvoices, services.ActionWrite), invoices.Update)
		app.POST("/invoices/:id/cancel", can(services.ResourceInvoices, services.ActionWrite), invoices.Cancel)
		app.GET("/invoices/:id/payments", can(services.ResourcePayments, services.ActionRead), invoices.ListPayments)
		app.POST("/invoices/:id/payments", can(services.ResourcePayments, services.ActionWrite), invoices.RecordPayment)
		app.GET("/payments", can(services.ResourcePayments, services.ActionRead), invoices.ListPayments)

		app.GET("/routes", can(services.ResourceRoutes, services.ActionRead), routes.List)
		app.GET("/routes/:id", can(services.ResourceRoutes, services.ActionRead), routes.Get)
		app.POST("/routes", can(services.ResourceRoutes, services.ActionWrite), routes.Create)
		app.PUT("/routes/:id", can(services.ResourceRoutes, services.ActionWrite), routes.Update)

		app.GET("/photos", can(services.ResourcePhotos, services.ActionRead), photos.List)
		app.GET("/photos/:id", can(services.ResourcePhotos, services.ActionRead), photos.Get)
		app.GET("/jobs/:id/photos", can(services.ResourcePhotos, services.ActionRead), photos.List)
		app.POST("/jobs/:id/photos", can(services.ResourcePhotos, services.ActionWrite), photos.Upload)

		app.GET("/reports/revenue", can(services.ResourceReports, services.ActionRead), reports.Revenue)
		app.GET("/reports/revenue/export", can(services.ResourceReports, services.ActionRead), reports.Export)
	}

	return router, nil
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "CrewDesk API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to get database instance",
				},
			})
			return
		}

		if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_CONNECTION_ERROR",
					"message": "Database connection failed",
				},
			})
			return
		}

		tables, err := db.WithContext(c.Request.Context()).Migrator().GetTables()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_QUERY_ERROR",
					"message": "Failed to query tables",
					"details": err.Error(),
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Database connected",
			"dialect": db.Dialector.Name(),
			"tables":  tables,
		})
	}
}
