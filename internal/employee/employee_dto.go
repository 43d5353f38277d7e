package employee

import "time"

const joiningDateLayout = "2006-01-02"

type CreateEmployeeRequest struct {
	FullName     string `json:"full_name" binding:"required,max=200"`
	Email        string `json:"email" binding:"required,email,max=255"`
	Phone        string `json:"phone" binding:"omitempty,max=30"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
	ManagerID    string `json:"manager_id" binding:"omitempty,uuid"`
	Designation  string `json:"designation" binding:"omitempty,max=100"`
	Region       string `json:"region" binding:"omitempty,max=64"`
	JoiningDate  string `json:"joining_date" binding:"required"`
	Password     string `json:"password" binding:"required,min=8,max=72"`
	Role         string `json:"role" binding:"omitempty,oneof=admin manager employee"`
}

// UpdateEmployeeRequest patches the fields that are present. An empty
// manager_id or department_id clears the reference.
type UpdateEmployeeRequest struct {
	FullName     *string `json:"full_name" binding:"omitempty,min=1,max=200"`
	Phone        *string `json:"phone" binding:"omitempty,max=30"`
	DepartmentID *string `json:"department_id" binding:"omitempty"`
	ManagerID    *string `json:"manager_id" binding:"omitempty"`
	Designation  *string `json:"designation" binding:"omitempty,max=100"`
	Region       *string `json:"region" binding:"omitempty,max=64"`
	IsActive     *bool   `json:"is_active"`
}

type EmployeeResponse struct {
	ID           string    `json:"id"`
	EmployeeCode string    `json:"employee_code"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	DepartmentID string    `json:"department_id,omitempty"`
	ManagerID    string    `json:"manager_id,omitempty"`
	Designation  string    `json:"designation,omitempty"`
	Region       string    `json:"region,omitempty"`
	JoiningDate  string    `json:"joining_date"`
	IsActive     bool      `json:"is_active"`
	UserID       string    `json:"user_id,omitempty"`
	Role         string    `json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// EmployeeOption is the slim row used by pickers (manager, approver).
type EmployeeOption struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID.String(),
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		Email:        e.Email,
		Phone:        e.Phone,
		DepartmentID: uuidToString(e.DepartmentID),
		ManagerID:    uuidToString(e.ManagerID),
		Designation:  e.Designation,
		Region:       e.Region,
		JoiningDate:  e.JoiningDate.Format(joiningDateLayout),
		IsActive:     e.IsActive,
		CreatedAt:    e.CreatedAt,
	}
}

func mapToListResponse(emps []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(emps))
	for i, e := range emps {
		res[i] = mapToResponse(e)
	}
	return res
}

func mapToOptions(emps []Employee) []EmployeeOption {
	res := make([]EmployeeOption, len(emps))
	for i, e := range emps {
		res[i] = EmployeeOption{ID: e.ID.String(), EmployeeCode: e.EmployeeCode, FullName: e.FullName}
	}
	return res
}
