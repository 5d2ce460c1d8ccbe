package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gotolaunch/config"
	"gotolaunch/connection"
	"gotolaunch/logger"
	"gotolaunch/middleware"
	"gotolaunch/model"
	"gotolaunch/services"
)

// Context is passed to every command's Run method.
type Context struct {
	Config *config.Config
}

type ServeCmd struct{}

func (cmd *ServeCmd) Run(ctx *Context) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return connection.StartServer(sigCtx, ctx.Config)
}

type DispatchCmd struct{}

// Run performs a single sweep, for hosts that schedule sweeps externally.
func (cmd *DispatchCmd) Run(ctx *Context) error {
	runCtx := context.Background()
	db, err := connection.DBConnection(ctx.Config.Database)
	if err != nil {
		return err
	}
	defer connection.CloseDB(db)
	sender, closeSender := connection.OpenSender(runCtx, ctx.Config)
	defer closeSender()

	users := services.NewUserDirectory(db)
	dispatcher := services.NewDispatcher(db, users, sender, ctx.Config.Reminder.SendTimeout)
	stats := dispatcher.DispatchPending(runCtx)
	fmt.Printf("sent=%d failed=%d\n", stats.Sent, stats.Failed)
	return nil
}

type MigrateCmd struct{}

func (cmd *MigrateCmd) Run(ctx *Context) error {
	db, err := connection.DBConnection(ctx.Config.Database)
	if err != nil {
		return err
	}
	defer connection.CloseDB(db)
	if err := connection.Migrate(db); err != nil {
		return err
	}
	logger.Info("schema migrated", "driver", ctx.Config.Database.Driver)
	return nil
}

type UserAddCmd struct {
	Email    string        `arg:"" help:"Email address."`
	Name     string        `help:"Display name."`
	Plan     string        `help:"Subscription plan." enum:"free,paid" default:"paid"`
	Timezone string        `help:"IANA timezone." default:"UTC"`
	Admin    bool          `help:"Grant the admin role in the printed token."`
	TTL      time.Duration `help:"Token lifetime." default:"24h"`
}

func (cmd *UserAddCmd) Run(ctx *Context) error {
	if ctx.Config.JWTSecret == "" {
		return fmt.Errorf("missing required environment variable JWT_SECRET_KEY")
	}
	db, err := connection.DBConnection(ctx.Config.Database)
	if err != nil {
		return err
	}
	defer connection.CloseDB(db)
	user, err := services.NewUserDirectory(db).Create(context.Background(), model.User{
		Email:    cmd.Email,
		Name:     cmd.Name,
		Plan:     cmd.Plan,
		Timezone: cmd.Timezone,
	})
	if err != nil {
		return err
	}

	role := middleware.RoleUser
	if cmd.Admin {
		role = middleware.RoleAdmin
	}
	token, err := middleware.NewAccessToken(ctx.Config.JWTSecret, user.UserID, role, cmd.TTL)
	if err != nil {
		return err
	}
	fmt.Printf("user_id=%s\ntoken=%s\n", user.UserID, token)
	return nil
}
