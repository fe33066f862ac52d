// Package flags holds the enabled-flag context a templating run is
// evaluated against, plus bookkeeping for which flags conditions
// actually mentioned.
package flags

import "sort"

// Set is the immutable collection of flags enabled for one run.
// Flag names are opaque, case-sensitive strings; any token is a
// legal flag.
type Set struct {
	members map[string]struct{}
}

// NewSet creates a Set from the given flag names. Duplicates collapse.
func NewSet(names ...string) *Set {
	members := make(map[string]struct{}, len(names))
	for _, name := range names {
		members[name] = struct{}{}
	}
	return &Set{members: members}
}

// Has reports whether the flag is enabled.
func (s *Set) Has(name string) bool {
	_, ok := s.members[name]
	return ok
}

// Names returns the enabled flags in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.members))
	for name := range s.members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of enabled flags.
func (s *Set) Len() int {
	return len(s.members)
}

// Union returns a new Set containing the members of both sets.
func (s *Set) Union(other *Set) *Set {
	merged := make(map[string]struct{}, len(s.members)+len(other.members))
	for name := range s.members {
		merged[name] = struct{}{}
	}
	for name := range other.members {
		merged[name] = struct{}{}
	}
	return &Set{members: merged}
}

// Usage records every flag mentioned by a compiled condition during a
// run, so flags the user enabled but that no condition referenced can
// be reported afterwards.
type Usage struct {
	seen map[string]struct{}
}

// NewUsage creates an empty usage tracker.
func NewUsage() *Usage {
	return &Usage{seen: make(map[string]struct{})}
}

// Mark records the given flags as mentioned.
func (u *Usage) Mark(names ...string) {
	for _, name := range names {
		u.seen[name] = struct{}{}
	}
}

// Contains reports whether the flag was mentioned by any condition.
func (u *Usage) Contains(name string) bool {
	_, ok := u.seen[name]
	return ok
}

// Names returns the mentioned flags in sorted order.
func (u *Usage) Names() []string {
	names := make([]string, 0, len(u.seen))
	for name := range u.seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unused returns the flags in set that were never mentioned, sorted.
func (u *Usage) Unused(set *Set) []string {
	var unused []string
	for _, name := range set.Names() {
		if !u.Contains(name) {
			unused = append(unused, name)
		}
	}
	return unused
}
