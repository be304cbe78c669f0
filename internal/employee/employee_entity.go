package employee

// Employee is one record of the employees collection. Field names are the
// on-disk JSON names and must not change.
type Employee struct {
	EmpID         string         `json:"emp_id"`
	EmpName       string         `json:"emp_name"`
	MailID        string         `json:"mail_id"`
	EmpRole       string         `json:"emp_role"`
	EmpDept       string         `json:"emp_dept"`
	DateOfJoining string         `json:"date_of_joining"`
	Leaves        map[string]int `json:"leaves"`
}

// DefaultLeaveBalances is the category -> remaining days map given to an
// employee created without one.
func DefaultLeaveBalances() map[string]int {
	return map[string]int{
		"sick":   24,
		"casual": 12,
	}
}
