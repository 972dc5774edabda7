package api

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/ilford-attendance/internal/config"
	"github.com/jakechorley/ilford-attendance/pkg/core/calendar"
	"github.com/jakechorley/ilford-attendance/pkg/db"
)

// Store is the persistence the HTTP surface needs
type Store interface {
	db.Database
	Ping(ctx context.Context) error
}

// Handler holds the dependencies shared by every endpoint
type Handler struct {
	Store       Store
	Log         *zap.Logger
	Loc         *time.Location
	Holidays    calendar.Holidays
	FreeDayNote string
	SeedSource  string

	// Now returns the current instant; replaced in tests
	Now func() time.Time
}

// NewHandler constructs a Handler from the loaded configuration
func NewHandler(store Store, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		Store:       store,
		Log:         logger,
		Loc:         cfg.Location(),
		Holidays:    cfg.HolidayRules(),
		FreeDayNote: cfg.FreeDayNote,
		SeedSource:  cfg.SeedSource,
		Now:         time.Now,
	}
}

// now returns the current instant in the service timezone
func (h *Handler) now() time.Time {
	loc := h.Loc
	if loc == nil {
		loc = time.UTC
	}
	return h.Now().In(loc)
}
