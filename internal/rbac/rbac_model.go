package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// ValidRoles lists the roles a user may hold.
var ValidRoles = []string{RoleAdmin, RoleManager, RoleEmployee}

func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && (r.act == p.act || p.act == "*")
`

// roleInheritance: admin can do everything a manager can, manager everything an employee can.
var roleInheritance = [][]string{
	{RoleManager, RoleEmployee},
	{RoleAdmin, RoleManager},
}

// DefaultPolicies is the built-in permission set. Row-level rules (owner,
// direct manager) are checked by the services on top of these.
var DefaultPolicies = []RolePermissionRow{
	{Role: RoleEmployee, Resource: "employee", Action: "read"},
	{Role: RoleEmployee, Resource: "department", Action: "read"},
	{Role: RoleEmployee, Resource: "leave", Action: "create"},
	{Role: RoleEmployee, Resource: "leave", Action: "read"},
	{Role: RoleEmployee, Resource: "leave", Action: "update"},
	{Role: RoleEmployee, Resource: "leave", Action: "cancel"},
	{Role: RoleEmployee, Resource: "leave_balance", Action: "read"},
	{Role: RoleEmployee, Resource: "holiday", Action: "read"},
	{Role: RoleEmployee, Resource: "calendar", Action: "read"},

	{Role: RoleManager, Resource: "leave", Action: "approve"},

	{Role: RoleAdmin, Resource: "employee", Action: "*"},
	{Role: RoleAdmin, Resource: "department", Action: "*"},
	{Role: RoleAdmin, Resource: "leave", Action: "*"},
	{Role: RoleAdmin, Resource: "leave_balance", Action: "*"},
	{Role: RoleAdmin, Resource: "holiday", Action: "*"},
	{Role: RoleAdmin, Resource: "audit", Action: "read"},
	{Role: RoleAdmin, Resource: "user", Action: "*"},
	{Role: RoleAdmin, Resource: "rbac", Action: "*"},
}

// NewEnforcer builds an enforcer from the embedded model with no policies loaded.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	return casbin.NewEnforcer(m)
}
