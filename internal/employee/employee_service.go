package employee

import (
	"context"
	"errors"
	"time"

	employeeerrors "github.com/kamepallinandini997/leave-management-poc/internal/employee/errors"
	"github.com/kamepallinandini997/leave-management-poc/internal/events"
	"github.com/kamepallinandini997/leave-management-poc/internal/shared/contextutil"

	"go.uber.org/zap"
)

const MsgEmployeeCreated = "Employee created successfully"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (CreateEmployeeResponse, error)
	GetAll(ctx context.Context) (EmployeeListResponse, error)
	GetByID(ctx context.Context, empID string) (EmployeeResponse, error)
}

type service struct {
	repo      Repository
	publisher EventPublisher
	logger    *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithPublisher(repo, nil, logger...)
}

func NewServiceWithPublisher(
	repo Repository,
	publisher EventPublisher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if publisher == nil {
		publisher = noopEventPublisher{}
	}
	return &service{
		repo:      repo,
		publisher: publisher,
		logger:    l,
	}
}

// Create appends a new employee after a linear scan for a duplicate emp_id
// and rewrites the whole collection.
func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (CreateEmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("emp_id", req.EmpID),
	)

	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("create employee load failed", zap.String("request_id", rid), zap.Error(err))
		return CreateEmployeeResponse{}, mapRepositoryError(err, req.EmpID)
	}

	for _, e := range employees {
		if e.EmpID == req.EmpID {
			s.logger.Warn("employee already exists",
				zap.String("request_id", rid),
				zap.String("emp_id", req.EmpID),
			)
			return CreateEmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists.
				WithDetails(map[string]string{"emp_id": req.EmpID})
		}
	}

	empl := newEmployee(req)
	employees = append(employees, empl)
	if err := s.repo.SaveAll(ctx, employees); err != nil {
		s.logger.Error("create employee persist failed",
			zap.String("request_id", rid),
			zap.String("emp_id", req.EmpID),
			zap.Error(err),
		)
		return CreateEmployeeResponse{}, mapRepositoryError(err, req.EmpID)
	}

	// The record is already durable; a lost event is only logged.
	event := events.EmployeeCreatedEvent{
		EventType:  events.EmployeeCreatedEventType,
		RequestID:  rid,
		EmployeeID: empl.EmpID,
		Department: empl.EmpDept,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishEmployeeCreated(ctx, event); err != nil {
		s.logger.Warn("publish employee_created failed",
			zap.String("emp_id", empl.EmpID),
			zap.Error(err),
		)
	}

	s.logger.Info("employee created",
		zap.String("request_id", rid),
		zap.String("emp_id", empl.EmpID),
	)

	return CreateEmployeeResponse{Message: MsgEmployeeCreated, EmpID: empl.EmpID}, nil
}

func (s *service) GetAll(ctx context.Context) (EmployeeListResponse, error) {
	s.logger.Debug("get all employees requested")

	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return EmployeeListResponse{}, mapRepositoryError(err, "")
	}

	if len(employees) == 0 {
		s.logger.Warn("no employees found")
	} else {
		s.logger.Info("employees retrieved", zap.Int("count", len(employees)))
	}

	return EmployeeListResponse{
		TotalEmployees: len(employees),
		Employees:      mapToListResponse(employees),
	}, nil
}

func (s *service) GetByID(ctx context.Context, empID string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("emp_id", empID))

	empl, err := s.repo.FindByID(ctx, empID)
	if err != nil {
		mapped := mapRepositoryError(err, empID)
		if errors.Is(mapped, employeeerrors.ErrEmployeeNotFound) {
			s.logger.Warn("employee not found", zap.String("emp_id", empID))
		} else {
			s.logger.Error("get employee by id failed", zap.String("emp_id", empID), zap.Error(err))
		}
		return EmployeeResponse{}, mapped
	}

	s.logger.Info("employee fetched", zap.String("emp_id", empID))
	return mapToResponse(*empl), nil
}

func newEmployee(req CreateEmployeeRequest) Employee {
	leaves := req.Leaves
	if leaves == nil {
		leaves = DefaultLeaveBalances()
	}
	return Employee{
		EmpID:         req.EmpID,
		EmpName:       req.EmpName,
		MailID:        req.MailID,
		EmpRole:       req.EmpRole,
		EmpDept:       req.EmpDept,
		DateOfJoining: req.DateOfJoining,
		Leaves:        leaves,
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		EmpID:         empl.EmpID,
		EmpName:       empl.EmpName,
		MailID:        empl.MailID,
		EmpRole:       empl.EmpRole,
		EmpDept:       empl.EmpDept,
		DateOfJoining: empl.DateOfJoining,
		Leaves:        empl.Leaves,
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}
