package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kamepallinandini997/leave-management-poc/internal/leave"
	leaveerrors "github.com/kamepallinandini997/leave-management-poc/internal/leave/errors"
	leaveMock "github.com/kamepallinandini997/leave-management-poc/internal/leave/mock"
	"github.com/kamepallinandini997/leave-management-poc/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type apiError struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

type fakeLeaveService struct {
	ApplyFn         func(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveActionResponse, error)
	GetByEmployeeFn func(ctx context.Context, employeeID string) (leave.LeaveListResponse, error)
	GetByIDFn       func(ctx context.Context, leaveID string) (leave.LeaveResponse, error)
	UpdateStatusFn  func(ctx context.Context, leaveID, status string) (leave.LeaveActionResponse, error)
}

func (f *fakeLeaveService) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveActionResponse, error) {
	return f.ApplyFn(ctx, req)
}
func (f *fakeLeaveService) GetByEmployee(ctx context.Context, employeeID string) (leave.LeaveListResponse, error) {
	return f.GetByEmployeeFn(ctx, employeeID)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, leaveID string) (leave.LeaveResponse, error) {
	return f.GetByIDFn(ctx, leaveID)
}
func (f *fakeLeaveService) UpdateStatus(ctx context.Context, leaveID, status string) (leave.LeaveActionResponse, error) {
	return f.UpdateStatusFn(ctx, leaveID, status)
}

func init() {
	gin.SetMode(gin.TestMode)
	apperror.Init()
}

const applyBody = `{"leave_id":"L1","employee_id":"E1","leave_type":"sick","from_date":"2024-02-01","to_date":"2024-02-02"}`

func TestLeaveHandler_Apply(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			ApplyFn: func(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveActionResponse, error) {
				assert.Equal(t, "L1", req.LeaveID)
				assert.Equal(t, "E1", req.EmployeeID)
				return leave.LeaveActionResponse{
					Message:     leave.MsgLeaveApplied,
					LeaveID:     req.LeaveID,
					LeaveStatus: "Pending",
				}, nil
			},
		}

		h := leave.NewHandler(svc, zap.NewNop())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/employees/leaves", strings.NewReader(applyBody))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Apply(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.JSONEq(t,
			`{"message":"Leave applied, pending approval","leave_id":"L1","leave_status":"Pending"}`,
			string(env.Data))
	})

	t.Run("missing field", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{}, zap.NewNop())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_id":"L1","employee_id":"E1","from_date":"2024-02-01","to_date":"2024-02-02"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/employees/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Apply(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Equal(t, "Leave Type is required", env.Error.Message)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc := &fakeLeaveService{
			ApplyFn: func(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveActionResponse, error) {
				return leave.LeaveActionResponse{}, leaveerrors.ErrEmployeeNotFound.
					WithDetails(map[string]string{"employee_id": req.EmployeeID})
			},
		}

		h := leave.NewHandler(svc, zap.NewNop())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/employees/leaves", strings.NewReader(applyBody))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Apply(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "Employee not found.", env.Error.Message)
		assert.JSONEq(t, `{"employee_id":"E1"}`, string(env.Error.Details))
	})
}

func TestLeaveHandler_GetByEmployee(t *testing.T) {
	svc := &fakeLeaveService{
		GetByEmployeeFn: func(ctx context.Context, employeeID string) (leave.LeaveListResponse, error) {
			assert.Equal(t, "E1", employeeID)
			return leave.LeaveListResponse{TotalLeaves: 0, Leaves: []leave.LeaveResponse{}}, nil
		},
	}

	h := leave.NewHandler(svc, zap.NewNop())
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/employees/E1/leaves", nil)
	c.Params = gin.Params{{Key: "emp_id", Value: "E1"}}

	h.GetByEmployee(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.JSONEq(t, `{"total_leaves":0,"leaves":[]}`, string(env.Data))
}

func TestLeaveHandler_GetByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leaveMock.NewMockService(ctrl)
		svc.EXPECT().
			GetByID(gomock.Any(), "L9").
			Return(leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound.WithDetails(map[string]string{"leave_id": "L9"}))

		h := leave.NewHandler(svc, zap.NewNop())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/L9", nil)
		c.Params = gin.Params{{Key: "leave_id", Value: "L9"}}

		h.GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, apperror.CodeNotFound, env.Error.Code)
		assert.Equal(t, "Leave not found.", env.Error.Message)
	})
}

func TestLeaveHandler_UpdateStatus(t *testing.T) {
	t.Run("status comes from the query", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leaveMock.NewMockService(ctrl)
		svc.EXPECT().
			UpdateStatus(gomock.Any(), "L1", "Approved").
			Return(leave.LeaveActionResponse{
				Message:     "Leave status updated to Approved",
				LeaveID:     "L1",
				LeaveStatus: "Approved",
			}, nil)

		h := leave.NewHandler(svc, zap.NewNop())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/leaves/L1?status=Approved", nil)
		c.Params = gin.Params{{Key: "leave_id", Value: "L1"}}

		h.UpdateStatus(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Leave status updated to Approved")
	})

	t.Run("missing status", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{}, zap.NewNop())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/leaves/L1", nil)
		c.Params = gin.Params{{Key: "leave_id", Value: "L1"}}

		h.UpdateStatus(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "Status is required", env.Error.Message)
	})

	t.Run("empty status is passed through", func(t *testing.T) {
		called := false
		svc := &fakeLeaveService{
			UpdateStatusFn: func(ctx context.Context, leaveID, status string) (leave.LeaveActionResponse, error) {
				called = true
				assert.Equal(t, "L1", leaveID)
				assert.Equal(t, "", status)
				return leave.LeaveActionResponse{
					Message: "Leave status updated to ",
					LeaveID: leaveID,
				}, nil
			},
		}

		h := leave.NewHandler(svc, zap.NewNop())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/leaves/L1?status=", nil)
		c.Params = gin.Params{{Key: "leave_id", Value: "L1"}}

		h.UpdateStatus(c)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("owning employee missing", func(t *testing.T) {
		svc := &fakeLeaveService{
			UpdateStatusFn: func(ctx context.Context, leaveID, status string) (leave.LeaveActionResponse, error) {
				return leave.LeaveActionResponse{}, leaveerrors.ErrOwningEmployeeNotFound
			},
		}

		h := leave.NewHandler(svc, zap.NewNop())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/leaves/L1?status=Rejected", nil)
		c.Params = gin.Params{{Key: "leave_id", Value: "L1"}}

		h.UpdateStatus(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Employee not found for this leave.")
	})
}
