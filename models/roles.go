package models

import "sort"

// RoleSet is an unordered set of role names
type RoleSet map[string]struct{}

// NewRoleSet builds a set from the given names, ignoring empty ones
func NewRoleSet(roles ...string) RoleSet {
	s := make(RoleSet, len(roles))
	s.Add(roles...)
	return s
}

// Add inserts roles into the set
func (s RoleSet) Add(roles ...string) {
	for _, role := range roles {
		if role == "" {
			continue
		}
		s[role] = struct{}{}
	}
}

// Has reports whether role is in the set
func (s RoleSet) Has(role string) bool {
	_, ok := s[role]
	return ok
}

// Union returns a new set holding the roles of both sets
func (s RoleSet) Union(other RoleSet) RoleSet {
	out := make(RoleSet, len(s)+len(other))
	for role := range s {
		out[role] = struct{}{}
	}
	for role := range other {
		out[role] = struct{}{}
	}
	return out
}

// Equal reports whether both sets hold the same roles
func (s RoleSet) Equal(other RoleSet) bool {
	if len(s) != len(other) {
		return false
	}
	for role := range s {
		if !other.Has(role) {
			return false
		}
	}
	return true
}

// Sorted returns the roles in lexical order
func (s RoleSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for role := range s {
		out = append(out, role)
	}
	sort.Strings(out)
	return out
}

// Reconcile computes the changes that turn current into desired.
// Both returned slices are sorted.
func Reconcile(current, desired RoleSet) (toAdd, toRemove []string) {
	for role := range desired {
		if !current.Has(role) {
			toAdd = append(toAdd, role)
		}
	}
	for role := range current {
		if !desired.Has(role) {
			toRemove = append(toRemove, role)
		}
	}
	sort.Strings(toAdd)
	sort.Strings(toRemove)
	return toAdd, toRemove
}
