package leave

// Status is a leave's lifecycle state. The named values are the known set;
// other strings are stored as given unless strict validation is enabled.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
)

func KnownStatuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusRejected, StatusCancelled}
}

func (s Status) IsKnown() bool {
	for _, known := range KnownStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// Leave is one record of the leaves collection. Field names are the on-disk
// JSON names and must not change.
type Leave struct {
	LeaveID     string `json:"leave_id"`
	EmployeeID  string `json:"employee_id"`
	LeaveType   string `json:"leave_type"`
	FromDate    string `json:"from_date"`
	ToDate      string `json:"to_date"`
	LeaveStatus Status `json:"leave_status"`
}
