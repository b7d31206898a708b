package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"anti_bark/internal/models"
	"anti_bark/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
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

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockRemote struct {
	err   error
	keys  []string
	calls int
}

func (m *mockRemote) PressKey(ctx context.Context, key string) error {
	m.calls++
	m.keys = append(m.keys, key)
	return m.err
}

// mockMonitoring is read from the websocket writer goroutine, hence the mutex.
type mockMonitoring struct {
	mu    sync.Mutex
	state models.DeviceState
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.DeviceState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.err
}

func (m *mockMonitoring) GetBounds(ctx context.Context) (models.Bounds, error) {
	st, err := m.GetState(ctx)
	return st.Bounds, err
}

func (m *mockMonitoring) set(st models.DeviceState, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state, m.err = st, err
}

type mockEventLog struct {
	resp     []models.DeviceEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.DeviceEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

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

func withAuth(req *http.Request, token string) *http.Request {
	for k, vv := range authHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
