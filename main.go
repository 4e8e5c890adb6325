package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gobarber/config"
	"gobarber/cron"
	"gobarber/database"
	appointmentRepo "gobarber/database/repository/appointment"
	fileRepo "gobarber/database/repository/file"
	notificationRepo "gobarber/database/repository/notification"
	userRepoPkg "gobarber/database/repository/user"
	"gobarber/handlers"
	"gobarber/routes"
	"gobarber/services/booking"
	"gobarber/services/mailer"
	"gobarber/services/notification"
	"gobarber/services/storage"
	"gobarber/services/tasks"
	userSvc "gobarber/services/user"
	"gobarber/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.FirebaseInit()

	cloudinaryStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	notifRepo := notificationRepo.NewMongoNotificationRepo()
	filesRepo := fileRepo.NewMongoFileRepo()

	// services.
	notificationService := &notification.DefaultNotificationService{
		Repo:  notifRepo,
		Users: userRepo,
	}

	mailQueue := tasks.NewQueue()
	defer mailQueue.Close()

	appointmentService := &booking.DefaultAppointmentService{
		Users:        userRepo,
		Appointments: apptRepo,
		Files:        filesRepo,
		Notifier:     notificationService,
		Mailer:       mailQueue,
		Policy:       booking.NewPolicy(time.Duration(config.AppConfig.CancelCutoffHours) * time.Hour),
	}

	userService := &userSvc.DefaultUserService{
		Repo:  userRepo,
		Files: filesRepo,
	}

	hb := &handlers.HandlerBundle{
		UserService:         userService,
		AppointmentService:  appointmentService,
		NotificationService: notificationService,
		Storage:             cloudinaryStorage,
		UserRepo:            userRepo,
		FileRepo:            filesRepo,
	}

	routes.RegisterRoutes(router, hb)

	// Background mail worker (cancellation emails).
	cron.InitMailWorker(cron.WorkerDeps{
		Appointments: apptRepo,
		Users:        userRepo,
		Mail:         mailer.NewSMTPMailer(),
	})

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("main: listening on :%s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
}
