package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"number_generator/internal/models"
	"number_generator/internal/service"
	"number_generator/internal/widget"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	guestID       int
	guestToken    string
	guestErr      error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) SignUpGuest() (int, string, error) {
	return m.guestID, m.guestToken, m.guestErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockGenerator struct {
	result        widget.ResultSet
	generateErr   error
	clearErr      error
	generateCalls int
	clearCalls    int
	lastSession   int
}

func (m *mockGenerator) Generate(ctx context.Context, sessionID int) (widget.ResultSet, error) {
	m.generateCalls++
	m.lastSession = sessionID
	return m.result, m.generateErr
}
func (m *mockGenerator) Clear(ctx context.Context, sessionID int) error {
	m.clearCalls++
	m.lastSession = sessionID
	return m.clearErr
}

type mockSettings struct {
	base        widget.Params
	paramsErr   error
	themeErr    error
	toggled     widget.Theme
	lastParams  widget.Params
	lastTheme   widget.Theme
	paramsCalls int
}

func (m *mockSettings) SetParams(ctx context.Context, sessionID int, p widget.Params) error {
	m.paramsCalls++
	m.lastParams = p
	return m.paramsErr
}
func (m *mockSettings) UpdateParams(ctx context.Context, sessionID int, fn func(widget.Params) (widget.Params, error)) error {
	m.paramsCalls++
	p, err := fn(m.base)
	if err != nil {
		return err
	}
	m.lastParams = p
	return m.paramsErr
}
func (m *mockSettings) SetTheme(ctx context.Context, sessionID int, t widget.Theme) error {
	m.lastTheme = t
	return m.themeErr
}
func (m *mockSettings) ToggleTheme(ctx context.Context, sessionID int) (widget.Theme, error) {
	return m.toggled, m.themeErr
}

type mockMonitoring struct {
	mu          sync.Mutex
	state       widget.State
	err         error
	lastSession int
}

func (m *mockMonitoring) GetState(ctx context.Context, sessionID int) (widget.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSession = sessionID
	return m.state, m.err
}

type mockEventLog struct {
	resp        []models.Event
	err         error
	lastSession int
	lastFrom    time.Time
	lastTo      time.Time
	lastType    string
}

func (m *mockEventLog) List(ctx context.Context, sessionID int, f service.LogFilter) ([]models.Event, error) {
	m.lastSession = sessionID
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

type mockAuto struct {
	err     error
	lastOn  bool
	calls   int
	running bool
}

func (m *mockAuto) SetAutoGenerate(ctx context.Context, sessionID int, on bool) error {
	m.calls++
	m.lastOn = on
	return m.err
}
func (m *mockAuto) Running(sessionID int) bool { return m.running }
func (m *mockAuto) Run(ctx context.Context)    {}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
