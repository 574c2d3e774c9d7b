package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fieldline/database"
	"fieldline/database/repository"
	"fieldline/handlers"
	"fieldline/routes"
	"fieldline/services/booking"
	"fieldline/services/dispatch"
	"fieldline/services/scheduling"
	"fieldline/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	utils.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	if utils.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitRedis()
	utils.StartHealthMonitor(utils.GetReservationClient(), database.MongoClient)

	engine := scheduling.NewEngine(scheduling.DefaultConfig(), logger)
	matcher, err := dispatch.NewMatcher(logger)
	if err != nil {
		logger.Fatal("invalid dispatch weight configuration", zap.Error(err))
	}

	appointmentRepo := repository.NewMongoAppointmentRepo()
	bookingSvc := &booking.Service{
		Engine: engine,
		Reservations: booking.NewReservationLock(
			utils.GetReservationClient(),
			time.Duration(utils.AppConfig.ReservationTTLSecs)*time.Second,
		),
		Calendar:     repository.NewMongoCalendarRepo(),
		Appointments: appointmentRepo,
		Logger:       logger,
	}

	hb := &handlers.HandlerBundle{
		Engine:       engine,
		Matcher:      matcher,
		Booking:      bookingSvc,
		Notifier:     &dispatch.LogNotifier{Logger: logger},
		Businesses:   repository.NewMongoBusinessRepo(),
		Technicians:  repository.NewMongoTechnicianRepo(),
		Appointments: appointmentRepo,
		Logger:       logger,
	}

	router := routes.SetupRouter(hb)

	srv := &http.Server{
		Addr:    ":" + utils.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", utils.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
