package connection

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gotolaunch/config"
	"gotolaunch/controller/checklist"
	"gotolaunch/controller/launch"
	"gotolaunch/controller/reminder"
	"gotolaunch/logger"
	"gotolaunch/middleware"
	"gotolaunch/notification"
	"gotolaunch/scheduler"
	"gotolaunch/services"
)

type Services struct {
	Users      *services.UserDirectory
	Launches   *services.LaunchService
	Checklists *services.ChecklistService
	Reminders  *services.ReminderService
	Dispatcher *services.Dispatcher
	Driver     *scheduler.Driver
}

// NewServices wires the services over db. The driver is created but not
// started.
func NewServices(db *gorm.DB, sender notification.Sender, reminderCfg config.Reminder) (*Services, error) {
	users := services.NewUserDirectory(db)
	checklists := services.NewChecklistService(db)
	reminders := services.NewReminderService(db)
	dispatcher := services.NewDispatcher(db, users, sender, reminderCfg.SendTimeout)

	driver, err := scheduler.New(dispatcher, scheduler.Options{Cadence: reminderCfg.Cadence})
	if err != nil {
		return nil, err
	}

	return &Services{
		Users:      users,
		Launches:   services.NewLaunchService(db, users, checklists, reminders),
		Checklists: checklists,
		Reminders:  reminders,
		Dispatcher: dispatcher,
		Driver:     driver,
	}, nil
}

// NewSender builds the reminder sink: email, plus push when Firebase is
// available.
func NewSender(cfg *config.Config, fb *Firebase) notification.Sender {
	email := notification.NewEmailSender(notification.EmailConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		AppURL:   cfg.AppURL,
	})
	if email.LogOnly() {
		logger.Warn("SMTP credentials not configured, reminder emails will only be logged")
	}
	if fb == nil {
		return email
	}
	push := notification.NewPushSender(notification.NewFirestoreTokenStore(fb.Firestore), fb.Messaging)
	return notification.Fanout(email, push)
}

// OpenSender connects Firebase when credentials are configured and returns
// the sink with a function releasing its clients.
func OpenSender(ctx context.Context, cfg *config.Config) (notification.Sender, func()) {
	if cfg.FirebaseCredentials == "" {
		return NewSender(cfg, nil), func() {}
	}
	fb, err := FBConnection(ctx, cfg.FirebaseCredentials)
	if err != nil {
		logger.Warn("push notifications disabled", "err", err)
		return NewSender(cfg, nil), func() {}
	}
	sender := NewSender(cfg, fb)
	return sender, func() {
		if f, ok := sender.(*notification.FanoutSender); ok {
			f.Wait()
		}
		if err := fb.Close(); err != nil {
			logger.Warn("failed to close firestore client", "err", err)
		}
	}
}

func NewRouter(svc *Services, jwtSecret string) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Api is running!"})
	})

	auth := middleware.AccessTokenMiddleware(jwtSecret)
	api := router.Group("/api")

	launch.LaunchController(api, auth, svc.Launches)
	checklist.ChecklistController(api, auth, svc.Checklists, svc.Launches)
	reminder.ReminderController(api, auth, middleware.AdminMiddleware(),
		svc.Reminders, svc.Launches, svc.Dispatcher, svc.Driver)
	return router
}

// StartServer serves the API and runs the reminder scheduler until ctx is
// cancelled.
func StartServer(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	db, err := DBConnection(cfg.Database)
	if err != nil {
		return err
	}
	defer CloseDB(db)
	if err := Migrate(db); err != nil {
		return err
	}

	sender, closeSender := OpenSender(ctx, cfg)
	defer closeSender()

	svc, err := NewServices(db, sender, cfg.Reminder)
	if err != nil {
		return err
	}
	svc.Driver.Start()
	defer svc.Driver.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(svc, cfg.JWTSecret),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
