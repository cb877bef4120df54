package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bidding/internal/app/config"
	"bidding/internal/app/middleware"
	"bidding/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeMailer запоминает последний отправленный код вместо реальной отправки
type fakeMailer struct {
	to   string
	code string
	err  error
}

func (m *fakeMailer) SendResetOTP(to, code string) error {
	if m.err != nil {
		return m.err
	}
	m.to = to
	m.code = code
	return nil
}

type testEnv struct {
	handler *APIHandler
	router  *gin.Engine
	db      *gorm.DB
	mailer  *fakeMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000&_txlock=immediate", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo, err := repository.NewWithDB(db)
	require.NoError(t, err)

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Token:         "test",
			ExpiresIn:     240 * time.Hour,
			SigningMethod: jwt.SigningMethodHS256,
		},
	}

	mailer := &fakeMailer{}
	h := NewAPIHandler(repo, nil, nil, mailer, cfg)

	router := gin.New()
	h.RegisterAPIRoutes(router, middleware.NewAuthMiddleware(nil, cfg))

	return &testEnv{handler: h, router: router, db: db, mailer: mailer}
}

func (e *testEnv) doJSON(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// sessionCookie достаёт сессионную куку из ответа
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == config.SessionCookieName {
			return c
		}
	}
	t.Fatalf("session cookie %q not found in response", config.SessionCookieName)
	return nil
}
