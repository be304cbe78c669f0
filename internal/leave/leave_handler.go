package leave

import (
	"net/http"

	"github.com/kamepallinandini997/leave-management-poc/internal/shared/apperror"
	"github.com/kamepallinandini997/leave-management-poc/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeValidationError(c *gin.Context, err error) {
	appErr := apperror.MapValidationError(err)
	response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", appErr.Message, appErr.Details)
}

func (h *Handler) Apply(c *gin.Context) {
	var req ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http apply leave validation failed", zap.Error(err))
		h.writeValidationError(c, err)
		return
	}
	h.logger.Debug("http apply leave",
		zap.String("leave_id", req.LeaveID),
		zap.String("employee_id", req.EmployeeID),
	)

	resp, err := h.service.Apply(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) GetByEmployee(c *gin.Context) {
	empID := c.Param("emp_id")

	resp, err := h.service.GetByEmployee(c.Request.Context(), empID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) GetByID(c *gin.Context) {
	leaveID := c.Param("leave_id")
	h.logger.Debug("http get leave by id", zap.String("leave_id", leaveID))

	resp, err := h.service.GetByID(c.Request.Context(), leaveID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// UpdateStatus takes the new status from the "status" query parameter.
func (h *Handler) UpdateStatus(c *gin.Context) {
	leaveID := c.Param("leave_id")

	if _, ok := c.GetQuery("status"); !ok {
		h.logger.Warn("http update leave status missing status", zap.String("leave_id", leaveID))
		appErr := apperror.RequiredField("Status")
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", appErr.Message, appErr.Details)
		return
	}

	var req UpdateLeaveStatusRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Warn("http update leave status validation failed",
			zap.String("leave_id", leaveID),
			zap.Error(err),
		)
		h.writeValidationError(c, err)
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), leaveID, req.Status)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
