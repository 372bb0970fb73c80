package productform

import (
	"errors"
	"slices"
	"strings"

	"github.com/hainweb/merchant-console/internal/domain"
)

var ErrIndexOutOfRange = errors.New("entry index out of range")

// Collection is an ordered list of entries built from a staged input.
// Duplicates are allowed and insertion order is display order.
type Collection[S any, T any] struct {
	staged S
	items  []T
	build  func(S) (T, bool)
}

func NewCollection[S any, T any](build func(S) (T, bool)) *Collection[S, T] {
	return &Collection[S, T]{build: build}
}

func (c *Collection[S, T]) Stage(input S) {
	c.staged = input
}

func (c *Collection[S, T]) Staged() S {
	return c.staged
}

// Add appends the staged input and clears it. A staged input with a blank
// required part is left untouched and nothing is added.
func (c *Collection[S, T]) Add() bool {
	item, ok := c.build(c.staged)
	if !ok {
		return false
	}

	c.items = append(c.items, item)
	var zero S
	c.staged = zero
	return true
}

func (c *Collection[S, T]) Remove(index int) error {
	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}

	next := make([]T, 0, len(c.items)-1)
	next = append(next, c.items[:index]...)
	next = append(next, c.items[index+1:]...)
	c.items = next
	return nil
}

func (c *Collection[S, T]) Items() []T {
	return slices.Clone(c.items)
}

func (c *Collection[S, T]) Len() int {
	return len(c.items)
}

// Load replaces the entries, used when hydrating from a snapshot.
func (c *Collection[S, T]) Load(items []T) {
	c.items = slices.Clone(items)
}

type OptionInput struct {
	Name   string `json:"name"`
	Values string `json:"values"`
}

type (
	Specifications = Collection[domain.SpecificationEntry, domain.SpecificationEntry]
	Highlights     = Collection[string, string]
	CustomOptions  = Collection[OptionInput, domain.CustomOption]
)

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func NewSpecifications() *Specifications {
	return NewCollection(func(in domain.SpecificationEntry) (domain.SpecificationEntry, bool) {
		if blank(in.Key) || blank(in.Value) {
			return domain.SpecificationEntry{}, false
		}
		return in, true
	})
}

func NewHighlights() *Highlights {
	return NewCollection(func(in string) (string, bool) {
		if blank(in) {
			return "", false
		}
		return in, true
	})
}

func NewCustomOptions() *CustomOptions {
	return NewCollection(func(in OptionInput) (domain.CustomOption, bool) {
		if blank(in.Name) || blank(in.Values) {
			return domain.CustomOption{}, false
		}
		return domain.CustomOption{Name: in.Name, Values: ParseOptionValues(in.Values)}, true
	})
}

// ParseOptionValues splits a comma separated list and trims every token.
// Empty tokens are kept.
func ParseOptionValues(raw string) []string {
	values := strings.Split(raw, ",")
	for i, v := range values {
		values[i] = strings.TrimSpace(v)
	}
	return values
}
