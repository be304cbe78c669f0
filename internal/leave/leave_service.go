package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/kamepallinandini997/leave-management-poc/internal/events"
	leaveerrors "github.com/kamepallinandini997/leave-management-poc/internal/leave/errors"
	"github.com/kamepallinandini997/leave-management-poc/internal/shared/contextutil"

	"go.uber.org/zap"
)

const MsgLeaveApplied = "Leave applied, pending approval"

// StatusValidation controls what UpdateStatus accepts.
type StatusValidation string

const (
	// StatusLenient stores any status string, logging unknown ones.
	StatusLenient StatusValidation = "lenient"
	// StatusStrict rejects statuses outside KnownStatuses.
	StatusStrict StatusValidation = "strict"
)

func ParseStatusValidation(v string) (StatusValidation, error) {
	switch StatusValidation(v) {
	case StatusLenient, StatusStrict:
		return StatusValidation(v), nil
	default:
		return "", fmt.Errorf("leave: unknown status validation %q", v)
	}
}

type Options struct {
	Publisher        EventPublisher
	StatusValidation StatusValidation
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveActionResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) (LeaveListResponse, error)
	GetByID(ctx context.Context, leaveID string) (LeaveResponse, error)
	UpdateStatus(ctx context.Context, leaveID, status string) (LeaveActionResponse, error)
}

type service struct {
	repo       Repository
	publisher  EventPublisher
	validation StatusValidation
	logger     *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOptions(repo, Options{}, logger...)
}

func NewServiceWithOptions(repo Repository, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if opts.Publisher == nil {
		opts.Publisher = noopEventPublisher{}
	}
	if opts.StatusValidation == "" {
		opts.StatusValidation = StatusLenient
	}
	return &service{
		repo:       repo,
		publisher:  opts.Publisher,
		validation: opts.StatusValidation,
		logger:     l,
	}
}

// Apply appends a Pending leave for an existing employee. The employee check
// and the leave write are separate, uncoordinated steps.
func (s *service) Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveActionResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("apply leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", req.LeaveID),
		zap.String("employee_id", req.EmployeeID),
	)

	exists, err := s.repo.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("apply leave employee check failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveActionResponse{}, mapRepositoryError(err, req.LeaveID)
	}
	if !exists {
		s.logger.Warn("apply leave employee not found",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
		)
		return LeaveActionResponse{}, leaveerrors.ErrEmployeeNotFound.
			WithDetails(map[string]string{"employee_id": req.EmployeeID})
	}

	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("apply leave load failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveActionResponse{}, mapRepositoryError(err, req.LeaveID)
	}

	l := Leave{
		LeaveID:     req.LeaveID,
		EmployeeID:  req.EmployeeID,
		LeaveType:   req.LeaveType,
		FromDate:    req.FromDate,
		ToDate:      req.ToDate,
		LeaveStatus: StatusPending,
	}
	leaves = append(leaves, l)
	if err := s.repo.SaveAll(ctx, leaves); err != nil {
		s.logger.Error("apply leave persist failed",
			zap.String("request_id", rid),
			zap.String("leave_id", l.LeaveID),
			zap.Error(err),
		)
		return LeaveActionResponse{}, mapRepositoryError(err, req.LeaveID)
	}

	if err := s.publisher.PublishLeaveApplied(ctx, events.LeaveAppliedEvent{
		EventType:  events.LeaveAppliedEventType,
		RequestID:  rid,
		LeaveID:    l.LeaveID,
		EmployeeID: l.EmployeeID,
		LeaveType:  l.LeaveType,
		FromDate:   l.FromDate,
		ToDate:     l.ToDate,
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		s.logger.Warn("publish leave_applied failed", zap.String("leave_id", l.LeaveID), zap.Error(err))
	}

	s.logger.Info("leave applied",
		zap.String("request_id", rid),
		zap.String("employee_id", l.EmployeeID),
		zap.String("leave_id", l.LeaveID),
	)

	return LeaveActionResponse{
		Message:     MsgLeaveApplied,
		LeaveID:     l.LeaveID,
		LeaveStatus: string(l.LeaveStatus),
	}, nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) (LeaveListResponse, error) {
	leaves, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("get employee leaves failed", zap.String("employee_id", employeeID), zap.Error(err))
		return LeaveListResponse{}, mapRepositoryError(err, "")
	}

	s.logger.Info("employee leaves fetched",
		zap.String("employee_id", employeeID),
		zap.Int("count", len(leaves)),
	)
	return LeaveListResponse{
		TotalLeaves: len(leaves),
		Leaves:      mapToListResponse(leaves),
	}, nil
}

func (s *service) GetByID(ctx context.Context, leaveID string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		s.logger.Warn("get leave by id failed", zap.String("leave_id", leaveID), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err, leaveID)
	}
	return mapToResponse(*l), nil
}

// UpdateStatus overwrites the status of the first leave with leaveID. The
// leave must exist and so must its employee; the previous status is not
// checked against the new one. In strict mode an unknown status is rejected
// before any lookup, so it takes precedence over a missing leave.
func (s *service) UpdateStatus(ctx context.Context, leaveID, status string) (LeaveActionResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	target := Status(status)
	s.logger.Debug("update leave status requested",
		zap.String("request_id", rid),
		zap.String("leave_id", leaveID),
		zap.String("target_status", status),
	)

	if !target.IsKnown() {
		if s.validation == StatusStrict {
			s.logger.Warn("update leave status rejected",
				zap.String("leave_id", leaveID),
				zap.String("target_status", status),
			)
			return LeaveActionResponse{}, leaveerrors.ErrInvalidLeaveStatus.WithDetails(map[string]any{
				"leave_status": status,
				"allowed":      KnownStatuses(),
			})
		}
		s.logger.Warn("leave status outside known set", zap.String("target_status", status))
	}

	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("update leave status load failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveActionResponse{}, mapRepositoryError(err, leaveID)
	}

	idx := -1
	for i := range leaves {
		if leaves[i].LeaveID == leaveID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.logger.Warn("update leave status leave not found", zap.String("leave_id", leaveID))
		return LeaveActionResponse{}, leaveerrors.ErrLeaveNotFound.
			WithDetails(map[string]string{"leave_id": leaveID})
	}

	employeeID := leaves[idx].EmployeeID
	exists, err := s.repo.EmployeeExists(ctx, employeeID)
	if err != nil {
		s.logger.Error("update leave status employee check failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveActionResponse{}, mapRepositoryError(err, leaveID)
	}
	if !exists {
		s.logger.Warn("update leave status owning employee not found",
			zap.String("leave_id", leaveID),
			zap.String("employee_id", employeeID),
		)
		return LeaveActionResponse{}, leaveerrors.ErrOwningEmployeeNotFound.WithDetails(map[string]string{
			"leave_id":    leaveID,
			"employee_id": employeeID,
		})
	}

	previous := leaves[idx].LeaveStatus
	leaves[idx].LeaveStatus = target
	if err := s.repo.SaveAll(ctx, leaves); err != nil {
		s.logger.Error("update leave status persist failed",
			zap.String("request_id", rid),
			zap.String("leave_id", leaveID),
			zap.Error(err),
		)
		return LeaveActionResponse{}, mapRepositoryError(err, leaveID)
	}

	if err := s.publisher.PublishLeaveStatusUpdated(ctx, events.LeaveStatusUpdatedEvent{
		EventType:      events.LeaveStatusUpdatedEventType,
		RequestID:      rid,
		LeaveID:        leaveID,
		EmployeeID:     employeeID,
		PreviousStatus: string(previous),
		Status:         status,
		OccurredAt:     time.Now().UTC(),
	}); err != nil {
		s.logger.Warn("publish leave_status_updated failed", zap.String("leave_id", leaveID), zap.Error(err))
	}

	s.logger.Info("leave status updated",
		zap.String("request_id", rid),
		zap.String("leave_id", leaveID),
		zap.String("from_status", string(previous)),
		zap.String("to_status", status),
	)

	return LeaveActionResponse{
		Message:     fmt.Sprintf("Leave status updated to %s", status),
		LeaveID:     leaveID,
		LeaveStatus: status,
	}, nil
}

func mapToResponse(l Leave) LeaveResponse {
	return LeaveResponse{
		LeaveID:     l.LeaveID,
		EmployeeID:  l.EmployeeID,
		LeaveType:   l.LeaveType,
		FromDate:    l.FromDate,
		ToDate:      l.ToDate,
		LeaveStatus: string(l.LeaveStatus),
	}
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
