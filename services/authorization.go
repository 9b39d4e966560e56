package services

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"
	"github.com/crewdesk/crewdesk-api/models"
)

// Actions checked by the authorization service
const (
	ActionRead   = "read"
	ActionWrite  = "write"
	ActionManage = "manage"
)

// Resources checked by the authorization service
const (
	ResourceCustomers = "customers"
	ResourceJobs      = "jobs"
	ResourceQuotes    = "quotes"
	ResourceInvoices  = "invoices"
	ResourcePayments  = "payments"
	ResourceRoutes    = "routes"
	ResourcePhotos    = "photos"
	ResourceReports   = "reports"
	ResourceUsers     = "users"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

// Staff run field operations; accountants own money and reporting.
const rbacPolicy = `
p, admin, *, *
p, staff, customers, read
p, staff, customers, write
p, staff, jobs, read
p, staff, jobs, write
p, staff, quotes, read
p, staff, quotes, write
p, staff, routes, read
p, staff, routes, write
p, staff, photos, read
p, staff, photos, write
p, staff, invoices, read
p, accountant, customers, read
p, accountant, jobs, read
p, accountant, quotes, read
p, accountant, quotes, write
p, accountant, invoices, read
p, accountant, invoices, write
p, accountant, payments, read
p, accountant, payments, write
p, accountant, reports, read
p, accountant, photos, read
p, accountant, routes, read
`

// AuthorizationService answers role permission questions
type AuthorizationService struct {
	enforcer *casbin.Enforcer
}

// NewAuthorizationService builds the role policy enforcer
func NewAuthorizationService() (*AuthorizationService, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load RBAC model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m, stringadapter.NewAdapter(rbacPolicy))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize RBAC enforcer: %w", err)
	}
	return &AuthorizationService{enforcer: enforcer}, nil
}

// Allowed reports whether role may perform action on resource
func (s *AuthorizationService) Allowed(role models.UserRole, resource, action string) (bool, error) {
	allowed, err := s.enforcer.Enforce(string(role), resource, action)
	if err != nil {
		return false, fmt.Errorf("RBAC permission check failed: %w", err)
	}
	return allowed, nil
}
