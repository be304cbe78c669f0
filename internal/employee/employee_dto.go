package employee

type CreateEmployeeRequest struct {
	EmpID         string         `json:"emp_id" binding:"required"`
	EmpName       string         `json:"emp_name" binding:"required"`
	MailID        string         `json:"mail_id" binding:"required"`
	EmpRole       string         `json:"emp_role" binding:"required"`
	EmpDept       string         `json:"emp_dept" binding:"required"`
	DateOfJoining string         `json:"date_of_joining" binding:"required"`
	Leaves        map[string]int `json:"leaves"`
}

type CreateEmployeeResponse struct {
	Message string `json:"message"`
	EmpID   string `json:"emp_id"`
}

type EmployeeResponse struct {
	EmpID         string         `json:"emp_id"`
	EmpName       string         `json:"emp_name"`
	MailID        string         `json:"mail_id"`
	EmpRole       string         `json:"emp_role"`
	EmpDept       string         `json:"emp_dept"`
	DateOfJoining string         `json:"date_of_joining"`
	Leaves        map[string]int `json:"leaves"`
}

type EmployeeListResponse struct {
	TotalEmployees int                `json:"total_employees"`
	Employees      []EmployeeResponse `json:"employees"`
}
