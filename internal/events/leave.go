package events

import "time"

const (
	LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

	LeaveAppliedEventType       = "leave_applied"
	LeaveStatusUpdatedEventType = "leave_status_updated"
)

type LeaveAppliedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	FromDate   string    `json:"from_date"`
	ToDate     string    `json:"to_date"`
	OccurredAt time.Time `json:"occurred_at"`
}

type LeaveStatusUpdatedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	LeaveID        string    `json:"leave_id"`
	EmployeeID     string    `json:"employee_id"`
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}
