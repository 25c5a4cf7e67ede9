package ckan

import (
	"fmt"
)

// TargetObject is one of the object kinds a command can operate on.
type TargetObject string

const (
	ObjectDataset      TargetObject = "dataset"
	ObjectGroup        TargetObject = "group"
	ObjectOrganization TargetObject = "organization"
	ObjectUser         TargetObject = "user"

	// ObjectPackage is the API-internal name for a dataset. Commands
	// accept "dataset" and normalize it before building action names.
	ObjectPackage TargetObject = "package"
)

// NormalizeTarget validates that object is in the allowed set and rewrites
// "dataset" to "package", the name the API uses internally for datasets.
func NormalizeTarget(object string, allowed []TargetObject) (TargetObject, error) {
	target := TargetObject(object)
	for _, candidate := range allowed {
		if target != candidate {
			continue
		}

		if target == ObjectDataset {
			return ObjectPackage, nil
		}

		return target, nil
	}

	return "", fmt.Errorf("%w: %q (expected one of %v)", ErrUnknownTargetObject, object, allowed)
}

// ActionName derives the action endpoint name for a verb applied to a
// normalized target object, e.g. ("package", "list") -> "package_list".
func ActionName(object TargetObject, verb string) string {
	return fmt.Sprintf("%s_%s", object, verb)
}

// Role is a user's membership role on a group or organization.
type Role string

const (
	RoleNone   Role = "none"
	RoleMember Role = "member"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

var allRoles = []Role{RoleNone, RoleMember, RoleEditor, RoleAdmin}

// ParseRole resolves a role by name. Unrecognized names always fail.
func ParseRole(name string) (Role, error) {
	for _, role := range allRoles {
		if Role(name) == role {
			return role, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownRole, name)
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// RoleNames returns the role names, leaving out any excluded roles.
func RoleNames(exclude ...Role) []string {
	names := make([]string, 0, len(allRoles))

	for _, role := range allRoles {
		excluded := false

		for _, skip := range exclude {
			if role == skip {
				excluded = true

				break
			}
		}

		if !excluded {
			names = append(names, string(role))
		}
	}

	return names
}

// Summary totals the outcome of a batch operation.
type Summary struct {
	Total  int `json:"total"  yaml:"total"`
	Passed int `json:"passed" yaml:"passed"`
	Failed int `json:"failed" yaml:"failed"`
}

// BatchResult carries per-item outcome lines ("+ name" on success,
// "x name" on failure) and the batch summary.
type BatchResult struct {
	Results []string `json:"result"  yaml:"result"`
	Summary Summary  `json:"summary" yaml:"summary"`
}

// Record appends one item outcome and updates the summary counts.
func (b *BatchResult) Record(name string, passed bool) {
	marker := "x"
	if passed {
		marker = "+"
		b.Summary.Passed++
	} else {
		b.Summary.Failed++
	}

	b.Results = append(b.Results, fmt.Sprintf("%s %s", marker, name))
	b.Summary.Total++
}

// Logger is the logging interface consumed by the HTTP layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}
