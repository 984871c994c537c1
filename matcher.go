package errdispatch

import (
	"errors"
	"maps"
	"reflect"
	"strings"
)

type (
	// Matcher is a classification rule over a failure value.
	//
	// Matchers are produced by the Category, CategoryOf, Substring, Shape
	// and Predicate constructors. Each constructor yields a distinct matcher
	// kind, so a failure-category check and an arbitrary predicate are never
	// confused with each other. Matchers are immutable once created.
	Matcher interface {
		// Matches reports whether the failure is classified by this matcher.
		Matches(failure error) bool
	}

	categoryMatcher struct {
		target error
	}

	categoryOfMatcher[T error] struct{}

	substringMatcher struct {
		text string
	}

	shapeMatcher struct {
		want map[string]any
	}

	predicateMatcher struct {
		fn func(failure error) bool
	}
)

var (
	_ Matcher = (*categoryMatcher)(nil)
	_ Matcher = (*categoryOfMatcher[error])(nil)
	_ Matcher = (*substringMatcher)(nil)
	_ Matcher = (*shapeMatcher)(nil)
	_ Matcher = (*predicateMatcher)(nil)
)

// Category creates a matcher that classifies a failure by identity against
// the target error, traversing the failure's wrap chain with errors.Is.
// The message and fields of the failure are irrelevant.
func Category(target error) Matcher {
	return &categoryMatcher{target: target}
}

// CategoryOf creates a matcher that classifies a failure by its Go type,
// traversing the failure's wrap chain with errors.As.
func CategoryOf[T error]() Matcher {
	return &categoryOfMatcher[T]{}
}

// Substring creates a matcher that classifies a failure whose message
// contains the given text as a literal, case-sensitive substring.
func Substring(text string) Matcher {
	return &substringMatcher{text: text}
}

// Shape creates a matcher that classifies structured failures.
//
// A failure matches when it is non-nil, structured (see FieldsFrom), and
// every key in want is present among its fields with a strictly equal
// value. Comparison is shallow: values are compared with ==, and values of
// incomparable types never match. A Shape with no keys matches any non-nil
// structured failure.
func Shape(want map[string]any) Matcher {
	return &shapeMatcher{want: maps.Clone(want)}
}

// Predicate creates a matcher that classifies a failure by invoking fn.
func Predicate(fn func(failure error) bool) Matcher {
	return &predicateMatcher{fn: fn}
}

func (m *categoryMatcher) Matches(failure error) bool {
	return errors.Is(failure, m.target)
}

func (m *categoryOfMatcher[T]) Matches(failure error) bool {
	var target T
	return errors.As(failure, &target)
}

func (m *substringMatcher) Matches(failure error) bool {
	if failure == nil {
		return false
	}
	return strings.Contains(failure.Error(), m.text)
}

func (m *shapeMatcher) Matches(failure error) bool {
	fields, ok := FieldsFrom(failure)
	if !ok {
		return false
	}
	for k, want := range m.want {
		got, ok := fields[k]
		if !ok || !strictEqual(got, want) {
			return false
		}
	}
	return true
}

func (m *predicateMatcher) Matches(failure error) bool {
	return m.fn(failure)
}

func strictEqual(a, b any) bool {
	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)
	if av.IsValid() != bv.IsValid() {
		return false
	}
	if !av.IsValid() {
		return true // both nil
	}
	if !av.Comparable() || !bv.Comparable() {
		return false
	}
	return a == b
}
