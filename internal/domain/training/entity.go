// Package training contains the instructor training-resource registry: a
// simple append-only list of named links. By explicit policy the registry is
// open to every role, unlike the admin-gated course catalog.
package training

import (
	"errors"
	"strings"
)

// Resource is a named link to instructor material.
type Resource struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Registry is the resource list in insertion order. Persisted whole under the
// "trainings" key.
type Registry []Resource

// NewRegistry returns an empty registry.
func NewRegistry() Registry {
	return Registry{}
}

// Add appends a resource. Both fields must be non-blank after trimming.
func (r Registry) Add(title, link string) (Registry, error) {
	title = strings.TrimSpace(title)
	link = strings.TrimSpace(link)

	if title == "" {
		return r, ErrEmptyTitle
	}
	if link == "" {
		return r, ErrEmptyLink
	}

	return append(r, Resource{Title: title, Link: link}), nil
}

// List returns the resources in insertion order, as a copy.
func (r Registry) List() []Resource {
	if len(r) == 0 {
		return nil
	}
	out := make([]Resource, len(r))
	copy(out, r)
	return out
}

// Domain errors.
var (
	// ErrEmptyTitle - title blank after trimming.
	ErrEmptyTitle = errors.New("training title cannot be empty")

	// ErrEmptyLink - link blank after trimming.
	ErrEmptyLink = errors.New("training link cannot be empty")
)
