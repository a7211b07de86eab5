package service

import (
	"context"
	"sync"
	"time"

	"number_generator/internal/logger"
	"number_generator/internal/repository"
	"number_generator/internal/widget"
)

// autoTarget is the part of WidgetService the timers drive.
type autoTarget interface {
	Generate(ctx context.Context, sessionID int) (widget.ResultSet, error)
	SaveAutoGenerate(ctx context.Context, sessionID int, on bool) error
}

type autoLoop struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// AutoGenerateService runs one fixed-period ticker per enabled session.
type AutoGenerateService struct {
	stateRepo repository.StateRepo
	target    autoTarget
	period    time.Duration
	log       *logger.Logger

	mu    sync.Mutex
	base  context.Context
	loops map[int]*autoLoop
}

func NewAutoGenerateService(stateRepo repository.StateRepo, target autoTarget, period time.Duration, log *logger.Logger) *AutoGenerateService {
	if period <= 0 {
		period = DefaultAutoPeriod
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AutoGenerateService{
		stateRepo: stateRepo,
		target:    target,
		period:    period,
		log:       log,
		loops:     make(map[int]*autoLoop),
	}
}

// SetAutoGenerate stores the flag and starts or stops the session's timer.
// After it returns with on == false, no further generation happens for the session.
func (s *AutoGenerateService) SetAutoGenerate(ctx context.Context, sessionID int, on bool) error {
	if err := s.target.SaveAutoGenerate(ctx, sessionID, on); err != nil {
		return err
	}
	if on {
		s.start(sessionID)
	} else {
		s.stop(sessionID)
	}
	return nil
}

// Running reports whether the session currently has a live timer.
func (s *AutoGenerateService) Running(sessionID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.loops[sessionID]
	return ok
}

// Run resumes timers for sessions stored with the flag on and blocks until
// ctx is canceled, then tears every timer down.
func (s *AutoGenerateService) Run(ctx context.Context) {
	s.mu.Lock()
	s.base = ctx
	s.mu.Unlock()

	ids, err := s.stateRepo.ListAutoGenerate(ctx)
	if err != nil {
		s.log.Errorw("autogen_resume_failed", "err", err)
	}
	for _, id := range ids {
		s.start(id)
	}
	s.log.Infow("autogen_started", "period", s.period, "resumed", len(ids))

	<-ctx.Done()
	s.stopAll()
	s.log.Infow("autogen_stopped")
}

func (s *AutoGenerateService) start(sessionID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.loops[sessionID]; ok {
		return
	}
	base := s.base
	if base == nil {
		base = context.Background()
	}
	if base.Err() != nil {
		return // shutting down
	}
	ctx, cancel := context.WithCancel(base)
	l := &autoLoop{cancel: cancel, done: make(chan struct{})}
	s.loops[sessionID] = l
	go s.loop(ctx, sessionID, l.done)
}

func (s *AutoGenerateService) stop(sessionID int) {
	s.mu.Lock()
	l, ok := s.loops[sessionID]
	delete(s.loops, sessionID)
	s.mu.Unlock()

	if ok {
		l.cancel()
		<-l.done
	}
}

func (s *AutoGenerateService) stopAll() {
	s.mu.Lock()
	loops := s.loops
	s.loops = make(map[int]*autoLoop)
	s.mu.Unlock()

	for _, l := range loops {
		l.cancel()
	}
	for _, l := range loops {
		<-l.done
	}
}

func (s *AutoGenerateService) loop(ctx context.Context, sessionID int, done chan<- struct{}) {
	defer close(done)

	t := time.NewTicker(s.period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			// a tick and a cancel can be ready together
			if ctx.Err() != nil {
				return
			}
			if _, err := s.target.Generate(ctx, sessionID); err != nil && ctx.Err() == nil {
				s.log.Errorw("autogen_generate_failed", "session_id", sessionID, "err", err)
			}
		}
	}
}
