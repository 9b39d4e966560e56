package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crewdesk/crewdesk-api/config"
	"github.com/crewdesk/crewdesk-api/models"
	"github.com/crewdesk/crewdesk-api/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log.Println("Starting CrewDesk API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db := config.GetDB()
	if err := models.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	numberer, err := services.NewNumberer(cfg.NodeID)
	if err != nil {
		log.Fatalf("Failed to initialize document numbering: %v", err)
	}

	storage, err := newPhotoStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize photo storage: %v", err)
	}

	var userInfo services.UserInfoProvider
	if cfg.UsesAuth0() {
		userInfo = services.NewAuth0Service(cfg)
	} else {
		log.Println("AUTH0_DOMAIN not set, validating HS256 tokens with JWT_SECRET")
	}

	rpc := services.NewPostgresRPC(db)
	router, err := setupRouter(Dependencies{
		Config:   cfg,
		DB:       db,
		Numberer: numberer,
		Searcher: rpc,
		Reporter: rpc,
		Storage:  storage,
		UserInfo: userInfo,
	})
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	sweeper, err := services.NewOverdueSweeper(services.NewInvoiceService(db, numberer), cfg.OverdueSweepCron)
	if err != nil {
		log.Fatalf("Failed to schedule overdue sweep: %v", err)
	}
	sweeper.Start()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Server is running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shut down: %v", err)
	}
	sweeper.Stop()
	log.Println("Server exited")
}

// newPhotoStorage picks S3 when AWS credentials are configured, otherwise the local upload dir
func newPhotoStorage(cfg *config.Config) (services.PhotoStorage, error) {
	if cfg.UsesS3() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		storage, err := services.NewS3PhotoStorage(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Printf("Storing photos in S3 bucket %s", cfg.AWSS3Bucket)
		return storage, nil
	}

	log.Printf("AWS credentials not set, storing photos in %s", cfg.UploadDir)
	return services.NewLocalPhotoStorage(cfg.UploadDir), nil
}
