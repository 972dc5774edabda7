package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/ilford-attendance/internal/config"
	"github.com/jakechorley/ilford-attendance/pkg/core/model"
	"github.com/jakechorley/ilford-attendance/pkg/core/services"
	"github.com/jakechorley/ilford-attendance/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database *postgres.DB
	Logger   *zap.Logger
	Ctx      context.Context
	Env      string
	// As is the email of the user the CLI acts on behalf of
	As string
}

// Now returns the current instant in the configured timezone
func (app *AppContext) Now() time.Time {
	return time.Now().In(app.Cfg.Location())
}

// Caller resolves the --as user. Commands that act on behalf of someone
// fail here when the flag is missing or unknown.
func (app *AppContext) Caller() (*model.Caller, error) {
	if app.As == "" {
		return nil, errors.New("this command requires --as <email>")
	}

	caller, err := services.ResolveCaller(app.Ctx, app.Database, app.As)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, fmt.Errorf("%s: %s", services.MsgUserNotFound, app.As)
	}

	app.Logger.Debug("Resolved caller",
		zap.String("email", caller.Email),
		zap.String("role", string(caller.Role)))

	return caller, nil
}

// userError replaces a services error with its user-facing message.
// Internal failures keep their cause so it is printed.
func userError(err error) error {
	if err == nil {
		return nil
	}
	if services.KindOf(err) == services.KindInternal {
		return err
	}
	return errors.New(services.MessageOf(err))
}
