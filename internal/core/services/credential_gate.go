package services

import (
	"fmt"
	"strings"

	"hr-selfservice/internal/core/domain"
)

// CredentialGate checks (email, HR code) pairs against the employee roster.
// The roster is immutable after construction, so the gate is safe for concurrent use.
type CredentialGate struct {
	employees []domain.Employee
	byEmail   map[string]int
	leads     map[domain.Department]int
}

// NewCredentialGate indexes roster. Duplicate emails or HR codes are rejected.
func NewCredentialGate(roster []domain.Employee) (*CredentialGate, error) {
	g := &CredentialGate{
		employees: make([]domain.Employee, 0, len(roster)),
		byEmail:   make(map[string]int, len(roster)),
		leads:     make(map[domain.Department]int),
	}

	codes := make(map[string]struct{}, len(roster))
	for _, e := range roster {
		e.Email = normalizeEmail(e.Email)
		e.HRCode = strings.TrimSpace(e.HRCode)

		if _, ok := g.byEmail[e.Email]; ok {
			return nil, fmt.Errorf("%w: email %s", domain.ErrDuplicateRoster, e.Email)
		}
		if _, ok := codes[e.HRCode]; ok {
			return nil, fmt.Errorf("%w: HR code %s", domain.ErrDuplicateRoster, e.HRCode)
		}
		codes[e.HRCode] = struct{}{}

		g.employees = append(g.employees, e)
		idx := len(g.employees) - 1
		g.byEmail[e.Email] = idx
		if _, ok := g.leads[e.Department]; !ok && e.IsLead() {
			g.leads[e.Department] = idx
		}
	}
	return g, nil
}

// Validate returns the roster entry whose email (case-insensitive) and HR code both match.
// The HR code must match exactly.
func (g *CredentialGate) Validate(email, hrCode string) (*domain.Employee, error) {
	idx, ok := g.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	e := g.employees[idx]
	if e.HRCode != hrCode {
		return nil, domain.ErrEmployeeNotFound
	}
	return &e, nil
}

// Lookup finds an employee by email alone.
func (g *CredentialGate) Lookup(email string) (*domain.Employee, bool) {
	idx, ok := g.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, false
	}
	e := g.employees[idx]
	return &e, true
}

// DepartmentLead returns the team lead of department, if the roster names one.
func (g *CredentialGate) DepartmentLead(department domain.Department) (*domain.Employee, bool) {
	idx, ok := g.leads[department]
	if !ok {
		return nil, false
	}
	e := g.employees[idx]
	return &e, true
}

// LeadEmailFor returns the lead address to copy on mail about employee, or "" when
// the department has no lead or the employee is the lead.
func (g *CredentialGate) LeadEmailFor(email string, department domain.Department) string {
	lead, ok := g.DepartmentLead(department)
	if !ok || lead.Email == normalizeEmail(email) {
		return ""
	}
	return lead.Email
}

// Employees returns a copy of the roster in load order.
func (g *CredentialGate) Employees() []domain.Employee {
	out := make([]domain.Employee, len(g.employees))
	copy(out, g.employees)
	return out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
