package employee_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/kamepallinandini997/leave-management-poc/internal/employee"
	employeeerrors "github.com/kamepallinandini997/leave-management-poc/internal/employee/errors"
	employeeMock "github.com/kamepallinandini997/leave-management-poc/internal/employee/mock"
	"github.com/kamepallinandini997/leave-management-poc/internal/events"
	"github.com/kamepallinandini997/leave-management-poc/internal/shared/apperror"
	"github.com/kamepallinandini997/leave-management-poc/internal/shared/contextutil"
	"github.com/kamepallinandini997/leave-management-poc/internal/shared/filestore"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type serviceDeps struct {
	service   employee.Service
	repo      *employeeMock.MockRepository
	publisher *employeeMock.MockEventPublisher
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	repo := employeeMock.NewMockRepository(ctrl)
	publisher := employeeMock.NewMockEventPublisher(ctrl)
	svc := employee.NewServiceWithPublisher(repo, publisher, zap.NewNop())

	return &serviceDeps{
		service:   svc,
		repo:      repo,
		publisher: publisher,
	}
}

func validCreateRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		EmpID:         "E1",
		EmpName:       "A",
		MailID:        "a@x.com",
		EmpRole:       "dev",
		EmpDept:       "eng",
		DateOfJoining: "2024-01-01",
	}
}

func TestEmployeeService_Create(t *testing.T) {
	t.Run("success - appends with default leave balances", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := contextutil.WithRequestID(context.Background(), "REQ-1")
		existing := []employee.Employee{{EmpID: "E0", EmpName: "Z"}}

		deps.repo.EXPECT().FindAll(ctx).Return(existing, nil)
		deps.repo.EXPECT().
			SaveAll(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, got []employee.Employee) error {
				assert.Len(t, got, 2)
				assert.Equal(t, "E0", got[0].EmpID)
				assert.Equal(t, "E1", got[1].EmpID)
				assert.Equal(t, map[string]int{"sick": 24, "casual": 12}, got[1].Leaves)
				return nil
			})
		deps.publisher.EXPECT().
			PublishEmployeeCreated(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, ev events.EmployeeCreatedEvent) error {
				assert.Equal(t, "E1", ev.EmployeeID)
				assert.Equal(t, "REQ-1", ev.RequestID)
				assert.Equal(t, "eng", ev.Department)
				return nil
			})

		resp, err := deps.service.Create(ctx, validCreateRequest())

		assert.NoError(t, err)
		assert.Equal(t, employee.MsgEmployeeCreated, resp.Message)
		assert.Equal(t, "E1", resp.EmpID)
	})

	t.Run("success - caller leave balances are kept", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := validCreateRequest()
		req.Leaves = map[string]int{"annual": 20}

		deps.repo.EXPECT().FindAll(gomock.Any()).Return([]employee.Employee{}, nil)
		deps.repo.EXPECT().
			SaveAll(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, got []employee.Employee) error {
				assert.Equal(t, map[string]int{"annual": 20}, got[0].Leaves)
				return nil
			})
		deps.publisher.EXPECT().PublishEmployeeCreated(gomock.Any(), gomock.Any()).Return(nil)

		_, err := deps.service.Create(context.Background(), req)

		assert.NoError(t, err)
	})

	t.Run("duplicate id - nothing is written", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().
			FindAll(gomock.Any()).
			Return([]employee.Employee{{EmpID: "E1", EmpName: "first"}}, nil)
		// no SaveAll / Publish expectations: gomock fails the test if they happen

		_, err := deps.service.Create(context.Background(), validCreateRequest())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, map[string]string{"emp_id": "E1"}, httpErr.Details)
	})

	t.Run("publish failure does not fail the create", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
		deps.repo.EXPECT().SaveAll(gomock.Any(), gomock.Any()).Return(nil)
		deps.publisher.EXPECT().
			PublishEmployeeCreated(gomock.Any(), gomock.Any()).
			Return(errors.New("broker down"))

		resp, err := deps.service.Create(context.Background(), validCreateRequest())

		assert.NoError(t, err)
		assert.Equal(t, "E1", resp.EmpID)
	})

	t.Run("save error is returned", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
		deps.repo.EXPECT().SaveAll(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		_, err := deps.service.Create(context.Background(), validCreateRequest())

		assert.EqualError(t, err, "disk full")
		assert.Equal(t, http.StatusInternalServerError, apperror.ToHTTP(err).Status)
	})

	t.Run("corrupt store under fail policy", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().
			FindAll(gomock.Any()).
			Return(nil, fmt.Errorf("%w: employees.json: bad json", filestore.ErrCorrupt))

		_, err := deps.service.Create(context.Background(), validCreateRequest())

		assert.ErrorIs(t, err, apperror.ErrStorageUnavailable)
		assert.ErrorIs(t, err, filestore.ErrCorrupt)
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	t.Run("returns records in stored order with count", func(t *testing.T) {
		deps := setupServiceTest(t)
		stored := []employee.Employee{{EmpID: "E2"}, {EmpID: "E1"}}
		deps.repo.EXPECT().FindAll(gomock.Any()).Return(stored, nil)

		resp, err := deps.service.GetAll(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 2, resp.TotalEmployees)
		assert.Equal(t, "E2", resp.Employees[0].EmpID)
		assert.Equal(t, "E1", resp.Employees[1].EmpID)
	})

	t.Run("empty store is not an error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAll(gomock.Any()).Return([]employee.Employee{}, nil)

		resp, err := deps.service.GetAll(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 0, resp.TotalEmployees)
		assert.NotNil(t, resp.Employees)
		assert.Empty(t, resp.Employees)
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().
			FindByID(gomock.Any(), "E1").
			Return(&employee.Employee{EmpID: "E1", EmpName: "A", Leaves: employee.DefaultLeaveBalances()}, nil)

		resp, err := deps.service.GetByID(context.Background(), "E1")

		assert.NoError(t, err)
		assert.Equal(t, "A", resp.EmpName)
		assert.Equal(t, 24, resp.Leaves["sick"])
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByID(gomock.Any(), "E404").Return(nil, filestore.ErrRecordNotFound)

		_, err := deps.service.GetByID(context.Background(), "E404")

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.Equal(t, map[string]string{"emp_id": "E404"}, apperror.ToHTTP(err).Details)
	})
}
