package service

import (
	"context"

	"number_generator/internal/logger"
	"number_generator/internal/models"
	"number_generator/internal/repository"
	"number_generator/internal/widget"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	SignUpGuest() (int, string, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Generator draws new results and clears the current one.
type Generator interface {
	Generate(ctx context.Context, sessionID int) (widget.ResultSet, error)
	Clear(ctx context.Context, sessionID int) error
}

// Settings changes the generation parameters and the display theme.
type Settings interface {
	SetParams(ctx context.Context, sessionID int, p widget.Params) error
	UpdateParams(ctx context.Context, sessionID int, fn func(widget.Params) (widget.Params, error)) error
	SetTheme(ctx context.Context, sessionID int, t widget.Theme) error
	ToggleTheme(ctx context.Context, sessionID int) (widget.Theme, error)
}

// Monitoring exposes the read-only widget state, history included.
type Monitoring interface {
	GetState(ctx context.Context, sessionID int) (widget.State, error)
}

// EventLog exposes the append-only activity log with filtering.
type EventLog interface {
	List(ctx context.Context, sessionID int, f LogFilter) ([]models.Event, error)
}

// AutoGenerator owns the per-session repeating timers.
// Run binds them to the process lifetime; stop it via context cancellation.
type AutoGenerator interface {
	SetAutoGenerate(ctx context.Context, sessionID int, on bool) error
	Running(sessionID int) bool
	Run(ctx context.Context)
}

// Service aggregates all sub-services.
type Service struct {
	Generator
	Settings
	Monitoring
	EventLog
	AutoGenerator
	Authorization
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options, log *logger.Logger) *Service {
	opts = opts.withDefaults()
	if log == nil {
		log = logger.Nop()
	}

	widgets := NewWidgetService(repos.StateRepo, repos.HistoryRepo, repos.Generations, repos.EventRepo, opts.Rand, opts.MaxCount)
	return &Service{
		Generator:     widgets,
		Settings:      widgets,
		Monitoring:    widgets,
		EventLog:      NewActivityLogService(repos.EventRepo),
		AutoGenerator: NewAutoGenerateService(repos.StateRepo, widgets, opts.AutoPeriod, log.Named("autogen")),
		Authorization: NewAuthService(repos.Auth, opts.SigningKey, opts.TokenTTL),
	}
}
