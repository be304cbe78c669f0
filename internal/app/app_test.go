package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kamepallinandini997/leave-management-poc/internal/config"
	"github.com/kamepallinandini997/leave-management-poc/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, mutate func(*config.Config)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.Init()

	cfg := config.Default()
	cfg.Store.DataDir = t.TempDir()
	cfg.RateLimit.RPS = 1000
	cfg.RateLimit.Burst = 1000
	if mutate != nil {
		mutate(&cfg)
	}

	router := gin.New()
	cleanup, err := BuildApp(router, &cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return router
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	r.ServeHTTP(w, req)

	var env map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestApp_ApproveFlow(t *testing.T) {
	r := newTestRouter(t, nil)

	w, _ := do(t, r, http.MethodPost, "/api/v1/employees",
		`{"emp_id":"E1","emp_name":"A","mail_id":"a@x.com","emp_role":"dev","emp_dept":"eng","date_of_joining":"2024-01-01"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, env := do(t, r, http.MethodPost, "/api/v1/employees/leaves",
		`{"leave_id":"L1","employee_id":"E1","leave_type":"sick","from_date":"2024-02-01","to_date":"2024-02-02"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Pending", env["data"].(map[string]any)["leave_status"])

	w, env = do(t, r, http.MethodPut, "/api/v1/leaves/L1?status=Approved", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Leave status updated to Approved", env["data"].(map[string]any)["message"])

	w, env = do(t, r, http.MethodGet, "/api/v1/leaves/L1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Approved", env["data"].(map[string]any)["leave_status"])

	w, env = do(t, r, http.MethodGet, "/api/v1/employees/E1/leaves", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, env["data"].(map[string]any)["total_leaves"])

	w, env = do(t, r, http.MethodGet, "/api/v1/employees/E1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"sick": float64(24), "casual": float64(12)},
		env["data"].(map[string]any)["leaves"])
}

func TestApp_Failures(t *testing.T) {
	r := newTestRouter(t, nil)

	w, env := do(t, r, http.MethodPost, "/api/v1/employees/leaves",
		`{"leave_id":"L1","employee_id":"E999","leave_type":"sick","from_date":"2024-02-01","to_date":"2024-02-02"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Employee not found.", env["error"].(map[string]any)["message"])

	w, env = do(t, r, http.MethodGet, "/api/v1/employees", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, env["data"].(map[string]any)["total_employees"])

	w, _ = do(t, r, http.MethodGet, "/api/v1/employees/E1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = do(t, r, http.MethodPut, "/api/v1/leaves/L404?status=Approved", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Leave not found.", env["error"].(map[string]any)["message"])
}

func TestApp_StrictStatusValidation(t *testing.T) {
	r := newTestRouter(t, func(c *config.Config) { c.Leave.StatusValidation = "strict" })

	w, env := do(t, r, http.MethodPut, "/api/v1/leaves/L1?status=Maybe", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeInvalidInput, env["error"].(map[string]any)["code"])
}
