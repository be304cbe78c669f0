package leave

// ApplyLeaveRequest has no status field: a new leave is always Pending.
type ApplyLeaveRequest struct {
	LeaveID    string `json:"leave_id" binding:"required"`
	EmployeeID string `json:"employee_id" binding:"required"`
	LeaveType  string `json:"leave_type" binding:"required"`
	FromDate   string `json:"from_date" binding:"required"`
	ToDate     string `json:"to_date" binding:"required"`
}

// UpdateLeaveStatusRequest is bound from the query string. The parameter
// must be present but may be empty.
type UpdateLeaveStatusRequest struct {
	Status string `form:"status"`
}

type LeaveResponse struct {
	LeaveID     string `json:"leave_id"`
	EmployeeID  string `json:"employee_id"`
	LeaveType   string `json:"leave_type"`
	FromDate    string `json:"from_date"`
	ToDate      string `json:"to_date"`
	LeaveStatus string `json:"leave_status"`
}

type LeaveListResponse struct {
	TotalLeaves int             `json:"total_leaves"`
	Leaves      []LeaveResponse `json:"leaves"`
}

// LeaveActionResponse confirms an apply or a status update.
type LeaveActionResponse struct {
	Message     string `json:"message"`
	LeaveID     string `json:"leave_id"`
	LeaveStatus string `json:"leave_status"`
}
