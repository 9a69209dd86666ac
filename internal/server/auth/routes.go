package auth

import (
	"fmt"
	"strings"
)

// Class is a route's access policy.
type Class int

const (
	// Public routes are reachable by anyone.
	Public Class = iota
	// AuthOnly routes (sign-in, register) are for anonymous callers;
	// authenticated callers are sent to the protected home.
	AuthOnly
	// Protected routes require a valid session. Unmatched paths land here.
	Protected
)

func (c Class) String() string {
	switch c {
	case Public:
		return "public"
	case AuthOnly:
		return "authonly"
	default:
		return "protected"
	}
}

// Rule maps a path pattern to a Class. A pattern ending in "/*" matches
// the path prefix before the star; any other pattern matches exactly.
type Rule struct {
	Pattern string
	Class   Class
}

// Table is the route classification policy: an ordered rule set resolved
// deterministically. Exact rules always beat prefix rules; within each
// tier the first rule listed wins. It is immutable after construction and
// safe for concurrent use.
type Table struct {
	exact  map[string]Class
	prefix []Rule // Pattern holds the stripped prefix, order preserved
}

// NewTable validates rules and builds a Table. Duplicate exact patterns and
// patterns not starting with "/" are configuration errors.
func NewTable(rules []Rule) (*Table, error) {
	t := &Table{exact: make(map[string]Class, len(rules))}
	for _, r := range rules {
		if !strings.HasPrefix(r.Pattern, "/") {
			return nil, fmt.Errorf("route pattern %q must start with '/'", r.Pattern)
		}
		if prefix, ok := strings.CutSuffix(r.Pattern, "/*"); ok {
			t.prefix = append(t.prefix, Rule{Pattern: prefix + "/", Class: r.Class})
			continue
		}
		if _, dup := t.exact[r.Pattern]; dup {
			return nil, fmt.Errorf("duplicate route pattern %q", r.Pattern)
		}
		t.exact[r.Pattern] = r.Class
	}
	return t, nil
}

// DefaultRules returns the built-in site policy.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: "/", Class: Public},
		{Pattern: "/home", Class: Public},
		{Pattern: "/examples", Class: Public},
		{Pattern: "/examples/*", Class: Public},
		{Pattern: "/auth/signin", Class: AuthOnly},
		{Pattern: "/auth/register", Class: AuthOnly},
	}
}

// ParseRules parses a configuration string of comma-separated
// "class:pattern" entries, e.g. "public:/docs/*,authonly:/auth/reset".
func ParseRules(s string) ([]Rule, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var rules []Rule
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		class, pattern, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("route rule %q: want \"class:pattern\"", entry)
		}
		r := Rule{Pattern: pattern}
		switch strings.ToLower(class) {
		case "public":
			r.Class = Public
		case "authonly":
			r.Class = AuthOnly
		case "protected":
			r.Class = Protected
		default:
			return nil, fmt.Errorf("route rule %q: unknown class %q", entry, class)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// Classify resolves path to its Class. Unmatched paths are Protected:
// a route nobody thought about stays closed to anonymous callers.
func (t *Table) Classify(path string) Class {
	if c, ok := t.exact[path]; ok {
		return c
	}
	for _, r := range t.prefix {
		if strings.HasPrefix(path, r.Pattern) {
			return r.Class
		}
	}
	return Protected
}
