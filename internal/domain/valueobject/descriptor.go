package valueobject

import (
	"errors"
	"fmt"
	"strings"
)

// Kind tags the entity a drag descriptor refers to
type Kind string

const (
	KindColumn Kind = "Column"
	KindTask   Kind = "Task"
)

var (
	// ErrUnknownKind is returned for descriptors that are neither Column nor Task
	ErrUnknownKind = errors.New("unknown entity kind")
	// ErrEmptyDescriptorID is returned for descriptors without an identifier
	ErrEmptyDescriptorID = errors.New("descriptor id cannot be empty")
)

// IsValid checks the kind is one of the recognised values
func (k Kind) IsValid() bool {
	return k == KindColumn || k == KindTask
}

// ParseKind converts user input into a Kind. Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "column", "col", "c":
		return KindColumn, nil
	case "task", "t":
		return KindTask, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Descriptor identifies the entity taking part in a drag gesture
type Descriptor struct {
	Kind Kind `json:"kind"`
	ID   ID   `json:"id"`
}

// TaskRef builds a descriptor for a task
func TaskRef(id ID) Descriptor {
	return Descriptor{Kind: KindTask, ID: id}
}

// ColumnRef builds a descriptor for a column
func ColumnRef(id ID) Descriptor {
	return Descriptor{Kind: KindColumn, ID: id}
}

// Validate checks the descriptor can be handed to the reorder engine
func (d Descriptor) Validate() error {
	if !d.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
	}
	if d.ID.IsZero() {
		return ErrEmptyDescriptorID
	}
	return nil
}

// IsTask reports whether the descriptor points at a task
func (d Descriptor) IsTask() bool {
	return d.Kind == KindTask
}

// IsColumn reports whether the descriptor points at a column
func (d Descriptor) IsColumn() bool {
	return d.Kind == KindColumn
}

// String renders the descriptor as kind:id
func (d Descriptor) String() string {
	return strings.ToLower(string(d.Kind)) + ":" + d.ID.String()
}

// ParseDescriptor parses the kind:id form produced by String
func ParseDescriptor(s string) (Descriptor, error) {
	kindPart, idPart, ok := strings.Cut(s, ":")
	if !ok {
		return Descriptor{}, fmt.Errorf("descriptor %q must have the form kind:id", s)
	}

	kind, err := ParseKind(kindPart)
	if err != nil {
		return Descriptor{}, err
	}

	d := Descriptor{Kind: kind, ID: ID(strings.TrimSpace(idPart))}
	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}
