package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/shenikar/resqalert/internal/models"
)

// Ресурсы и действия, на которые проверяются права
const (
	ObjReports   = "reports"
	ObjBlocklist = "blocklist"
	ObjRequests  = "requests"
	ObjFeedback  = "feedback"
	ObjDashboard = "dashboard"

	ActRead   = "read"
	ActWrite  = "write"
	ActManage = "manage"
)

const agencyGroup = "agency"

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

var defaultPolicies = [][]string{
	{string(models.RoleSuperAdmin), "*", "*"},
	{agencyGroup, ObjReports, ActRead},
	{agencyGroup, ObjReports, ActWrite},
	{agencyGroup, ObjRequests, ActRead},
	{agencyGroup, ObjRequests, ActWrite},
	{agencyGroup, ObjDashboard, ActRead},
	{agencyGroup, ObjFeedback, ActWrite},
}

// RBAC проверяет права роли на ресурс
type RBAC struct {
	enforcer *casbin.Enforcer
}

func NewRBAC() (*RBAC, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("auth: could not load rbac model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("auth: could not create enforcer: %w", err)
	}

	for _, p := range defaultPolicies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("auth: could not add policy %v: %w", p, err)
		}
	}
	for _, role := range models.AgencyRoles {
		if _, err := e.AddGroupingPolicy(string(role), agencyGroup); err != nil {
			return nil, fmt.Errorf("auth: could not add role %s: %w", role, err)
		}
	}

	return &RBAC{enforcer: e}, nil
}

// Allowed сообщает, может ли роль выполнить действие над ресурсом
func (r *RBAC) Allowed(role models.Role, obj, act string) bool {
	ok, err := r.enforcer.Enforce(string(role), obj, act)
	return err == nil && ok
}
