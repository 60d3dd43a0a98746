// Package schema provides a declarative validator for JSON-decoded values.
// A schema is a tree of typed nodes checked against raw decoded data
// (map[string]any, []any, string, bool) by a single depth-first pass.
// Every violation is collected with the exact path that produced it, so
// one run reports everything wrong with a document instead of stopping
// at the first problem.
//
// Object nodes are strict allow-lists: a key that is not declared as a
// property is a violation, not something to ignore. Array nodes can
// additionally enforce collection-level rules over an identity property
// (uniqueness and ascending numeric order).
package schema

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// Node is one node of a declarative schema tree.
type Node interface {
	validate(value any, path string, errs *Errors)
}

// Validate checks value against node and returns nil on success or an
// *Errors carrying every violation found. A nil node anywhere in the
// tree is a programming error and panics.
func Validate(value any, node Node, path string) error {
	errs := &Errors{}
	descend(node, value, path, errs)
	return errs.ToError()
}

// descend dispatches to a child node, failing fast on schema bugs.
func descend(node Node, value any, path string, errs *Errors) {
	if node == nil {
		panic(fmt.Sprintf("schema: nil node at %s", path))
	}
	node.validate(value, path, errs)
}

// Object validates a keyed structure against a closed set of properties.
// Required keys must be present, optional keys are validated only when
// present, and any key outside Properties is rejected.
type Object struct {
	Properties map[string]Node
	Required   []string
}

func (o *Object) validate(value any, path string, errs *Errors) {
	m, ok := value.(map[string]any)
	if !ok {
		errs.Add(path, "expected an object")
		return
	}

	for _, req := range o.Required {
		if _, present := m[req]; !present {
			errs.Add(joinPath(path, req), "required property is missing")
		}
	}

	// Sorted keys keep violation order stable across runs.
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		child, declared := o.Properties[k]
		if !declared {
			errs.Add(joinPath(path, k), "unknown property")
			continue
		}
		descend(child, m[k], joinPath(path, k), errs)
	}
}

// Array validates a sequence. Every element is checked against Item.
// When Identity names an element property, the collection must also
// hold no duplicate identity values and appear in non-decreasing
// numeric order of that property.
type Array struct {
	Item     Node
	Identity string
}

func (a *Array) validate(value any, path string, errs *Errors) {
	seq, ok := value.([]any)
	if !ok {
		errs.Add(path, "expected an array")
		return
	}

	for i, elem := range seq {
		descend(a.Item, elem, elementPath(path, i), errs)
	}

	if a.Identity != "" {
		a.checkIdentity(seq, path, errs)
	}
}

// checkIdentity runs the collection-level rules over the identity
// property. Elements whose identity is absent or malformed are skipped
// here; the per-element pass has already reported them.
func (a *Array) checkIdentity(seq []any, path string, errs *Errors) {
	seen := make(map[string]int, len(seq))
	var (
		prevNum  uint64
		prevStr  string
		prevIdx  int
		havePrev bool
	)

	for i, elem := range seq {
		m, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		id, ok := m[a.Identity].(string)
		if !ok {
			continue
		}

		if first, dup := seen[id]; dup {
			errs.Add(
				fmt.Sprintf("%s.%s", elementPath(path, i), a.Identity),
				fmt.Sprintf("duplicate %s %q (first seen at %s)", a.Identity, id, elementPath(path, first)),
			)
		} else {
			seen[id] = i
		}

		num, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			continue
		}
		if havePrev && num < prevNum {
			errs.Add(
				fmt.Sprintf("%s.%s", elementPath(path, i), a.Identity),
				fmt.Sprintf("%s %q follows %q (%s); collection must be in non-decreasing numeric order",
					a.Identity, id, prevStr, elementPath(path, prevIdx)),
			)
		}
		prevNum, prevStr, prevIdx, havePrev = num, id, i, true
	}
}

// String validates a string value against a minimum length and an
// optional pattern. Message, when set, replaces the generic pattern
// failure text.
type String struct {
	MinLength int
	Pattern   *regexp.Regexp
	Message   string
}

func (s *String) validate(value any, path string, errs *Errors) {
	str, ok := value.(string)
	if !ok {
		errs.Add(path, "expected a string")
		return
	}
	if len(str) < s.MinLength {
		errs.Add(path, fmt.Sprintf("must be at least %d character(s), got %d", s.MinLength, len(str)))
		return
	}
	if s.Pattern != nil && !s.Pattern.MatchString(str) {
		msg := s.Message
		if msg == "" {
			msg = fmt.Sprintf("must match %s", s.Pattern.String())
		}
		errs.Add(path, msg)
	}
}

// Bool validates that a value is a boolean.
type Bool struct{}

func (b *Bool) validate(value any, path string, errs *Errors) {
	if _, ok := value.(bool); !ok {
		errs.Add(path, "expected a boolean")
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func elementPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
