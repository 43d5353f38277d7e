package rbac

import "go-hrms/internal/domain"

type EnforceRequest = domain.EnforceRequest

type EnforceResponse = domain.EnforceResponse

type PermissionResponse struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}
