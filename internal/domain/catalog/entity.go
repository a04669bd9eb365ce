// Package catalog contains the course catalog of the learning hub.
// The catalog is append-only: courses are never removed, and ids come from a
// persisted monotonic counter so they stay unique even if removal is ever
// introduced.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Course is a single learning resource.
type Course struct {
	// ID is the unique course key, e.g. "course1".
	ID string `json:"id"`

	// Name is the display name of the course.
	Name string `json:"name"`

	// Link is the URI of the learning resource.
	Link string `json:"link"`
}

// Catalog is the aggregate persisted under the "courses" key.
type Catalog struct {
	// NextID is the monotonic counter for course id generation. It only
	// ever grows; it is independent of the current catalog length.
	NextID int `json:"next_id"`

	// Courses in creation order.
	Courses []Course `json:"courses"`
}

// NewCatalog returns an empty catalog with the counter at the first id.
func NewCatalog() *Catalog {
	return &Catalog{NextID: 1}
}

// Seed returns the catalog preloaded with the platform's default courses.
func Seed() *Catalog {
	c := NewCatalog()
	_, _ = c.Add("Computer Basics", "https://youtu.be/wbJcJCkBcMg")
	_, _ = c.Add("Mathematics for School Students", "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	return c
}

// Add appends a course with a generated id. Name and link must be non-blank
// after trimming.
func (c *Catalog) Add(name, link string) (*Course, error) {
	name = strings.TrimSpace(name)
	link = strings.TrimSpace(link)

	if name == "" {
		return nil, ErrEmptyName
	}
	if link == "" {
		return nil, ErrEmptyLink
	}

	course := Course{
		ID:   fmt.Sprintf("course%d", c.NextID),
		Name: name,
		Link: link,
	}
	c.NextID++
	c.Courses = append(c.Courses, course)

	return &course, nil
}

// Find returns the course with the given id, or nil.
func (c *Catalog) Find(courseID string) *Course {
	for i := range c.Courses {
		if c.Courses[i].ID == courseID {
			return &c.Courses[i]
		}
	}
	return nil
}

// Contains reports whether a course with the given id exists.
func (c *Catalog) Contains(courseID string) bool {
	return c.Find(courseID) != nil
}

// List returns the courses in creation order. The slice is a copy.
func (c *Catalog) List() []Course {
	out := make([]Course, len(c.Courses))
	copy(out, c.Courses)
	return out
}

// Len returns the number of courses.
func (c *Catalog) Len() int {
	return len(c.Courses)
}

// Domain errors.
var (
	// ErrEmptyName - course name blank after trimming.
	ErrEmptyName = errors.New("course name cannot be empty")

	// ErrEmptyLink - course link blank after trimming.
	ErrEmptyLink = errors.New("course link cannot be empty")
)
