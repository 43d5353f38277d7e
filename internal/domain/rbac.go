package domain

// EnforceRequest asks whether role may perform action on resource.
// It lives here so that middleware and rbac can share it without importing each other.
type EnforceRequest struct {
	Role     string `json:"role"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
