package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/taskdesk-api/internal/application"
	"github.com/oksasatya/taskdesk-api/internal/infrastructure/memory"
	"github.com/oksasatya/taskdesk-api/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignin_LogsRejection(t *testing.T) {
	logger, hook := test.NewNullLogger()
	store := memory.NewStore()
	jwt := helpers.NewJWTManager("test-secret")
	svc := application.NewUserService(store.Users(), jwt, logger)
	h := NewUserHandler(svc, jwt, logger)

	_, err := svc.Signup(context.Background(), application.SignupInput{
		Name: "Ann", Email: "ann@x.com", Password: "secret1", Role: "client",
	})
	require.NoError(t, err)
	hook.Reset()

	r := gin.New()
	r.POST("/users/signin", h.Signin)

	w := postJSON(r, "/users/signin", gin.H{"email": "ann@x.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "signin rejected", entry.Message)
	assert.Equal(t, application.ErrWrongPassword.Error(), entry.Data["reason"])
	assert.NotContains(t, entry.Data, "password")

	w = postJSON(r, "/users/signin", gin.H{"email": "nobody@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, application.ErrUserNotExist.Error(), hook.LastEntry().Data["reason"])

	hook.Reset()
	w = postJSON(r, "/users/signin", gin.H{"email": "ann@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusOK, w.Code)
	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, "signin rejected", e.Message)
	}
}

func TestTaskGet_LogsClientNameFallback(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	store := memory.NewStore()
	h := NewTaskHandler(application.NewTaskService(store.Tasks(), logger), logger)

	r := gin.New()
	r.GET("/tasks/task/:id", h.Get)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/task/Ann", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, "Ann", entry.Data["client_name"])
}
