package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/reosaurous172214/xnote-server/internal/api/http/router"
	httpServer "github.com/reosaurous172214/xnote-server/internal/api/http/server"
	"github.com/reosaurous172214/xnote-server/internal/config"
	"github.com/reosaurous172214/xnote-server/internal/events"
	"github.com/reosaurous172214/xnote-server/internal/logger"
	"github.com/reosaurous172214/xnote-server/internal/metrics"
	"github.com/reosaurous172214/xnote-server/internal/model"
	"github.com/reosaurous172214/xnote-server/internal/repository/postgres"
	"github.com/reosaurous172214/xnote-server/internal/server"
	"github.com/reosaurous172214/xnote-server/internal/service"
	storage "github.com/reosaurous172214/xnote-server/internal/storage/minio"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	metrics.Init()

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	noteRepo := postgres.NewNoteRepository(db)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	var publisher model.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	clock := model.SystemClock{}

	authService := service.NewAuth(userRepo, storageClient, logger)
	noteService := service.NewNote(noteRepo, publisher, clock, logger)

	purger, err := service.NewTrashPurger(noteRepo, clock, cfg.Trash.RetentionDays, cfg.Trash.PurgeAt, logger)
	if err != nil {
		logger.Fatal("failed to create trash purger", "error", err)
	}
	purger.LogEligible(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		purger.Run(ctx)
	}()

	apiServer := registerHTTPServer(authService, noteService, logger, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(apiServer)

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Metrics.Port),
		Handler: metrics.Handler(),
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting metrics server on", "address", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("failed to start metrics server", "error", err)
		}
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", apiServer.Address())
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during metrics server shutdown", "error", err)
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerHTTPServer(
	authService *service.Auth,
	noteService *service.Note,
	logger *logger.Logger,
	addr string,
) *httpServer.HTTPServer {
	r := router.New(authService, noteService, logger)
	mux := r.Register()

	return httpServer.NewHTTPServer(mux, addr)
}
