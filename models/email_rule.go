package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// EmailRule grants roles to every email address matching its pattern
type EmailRule struct {
	EmailPattern string   `json:"email_pattern"`
	Roles        []string `json:"roles"`
}

// Compile returns the pattern anchored so it must match the whole address
func (r EmailRule) Compile() (*regexp.Regexp, error) {
	re, err := regexp.Compile(`^(?:` + r.EmailPattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("invalid email pattern %q: %w", r.EmailPattern, err)
	}
	return re, nil
}

// Validate validates a single rule
func (r EmailRule) Validate() ValidationErrors {
	var errs ValidationErrors

	if r.EmailPattern == "" {
		errs = append(errs, ValidationError{Field: "email_pattern", Message: "Email pattern is required"})
	} else if _, err := r.Compile(); err != nil {
		errs = append(errs, ValidationError{Field: "email_pattern", Message: err.Error()})
	}

	for _, role := range r.Roles {
		if role == "" {
			errs = append(errs, ValidationError{Field: "roles", Message: "Role names must not be empty"})
			break
		}
	}

	return errs
}

// EmailRules is the ordered list of configured rules
type EmailRules []EmailRule

// ParseEmailRules decodes the JSON encoded rule list
func ParseEmailRules(raw string) (EmailRules, error) {
	if raw == "" {
		return nil, nil
	}

	var rules EmailRules
	if err := json.Unmarshal([]byte(raw), &rules); err != nil {
		return nil, fmt.Errorf("failed to parse email rules: %w", err)
	}
	return rules, nil
}

// Match returns the union of the roles of every rule matching email and
// whether any rule matched at all. Rules whose pattern does not compile are
// skipped; their errors are joined into the returned error, which never
// invalidates the match result.
func (rules EmailRules) Match(email string) (RoleSet, bool, error) {
	roles := NewRoleSet()
	matched := false
	var invalid []error

	for _, rule := range rules {
		re, err := rule.Compile()
		if err != nil {
			invalid = append(invalid, err)
			continue
		}
		if re.MatchString(email) {
			matched = true
			roles.Add(rule.Roles...)
		}
	}

	return roles, matched, errors.Join(invalid...)
}
