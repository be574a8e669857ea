package models

import "slices"

// Group represents a named set of participants that expenses are split across.
type Group struct {
	// ID is assigned by the store.
	ID int64

	// Name is unique across all groups (e.g., "Roommates", "Ski Trip").
	Name string

	// Members holds participant names, sorted and without duplicates.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether the named participant belongs to the group.
func (g *Group) HasMember(name string) bool {
	_, found := slices.BinarySearch(g.Members, name)
	return found
}

// WithMember returns a copy of the group including name as a member.
// The receiver is not modified.
func (g *Group) WithMember(name string) *Group {
	cp := *g
	cp.Members = make([]string, 0, len(g.Members)+1)
	cp.Members = append(cp.Members, g.Members...)
	if i, found := slices.BinarySearch(cp.Members, name); !found {
		cp.Members = slices.Insert(cp.Members, i, name)
	}
	return &cp
}
