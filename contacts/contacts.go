package contacts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultNamespace is the storage key the contact collection is persisted under.
const DefaultNamespace = "simple-crm-storage"

// ErrNoRecord is returned by a Store when nothing has been saved under a
// namespace yet.
var ErrNoRecord = errors.New("contacts: no stored record")

// ErrorCode classifies repository errors.
type ErrorCode string

const (
	// ErrorCodeNotFound indicates a referenced contact does not exist.
	ErrorCodeNotFound ErrorCode = "not_found"
	// ErrorCodeValidation indicates a required field is missing.
	ErrorCodeValidation ErrorCode = "validation"
	// ErrorCodeStore indicates the persisted state could not be read or decoded.
	ErrorCodeStore ErrorCode = "store"
	// ErrorCodeNotLoaded indicates the repository was used before Load.
	ErrorCodeNotLoaded ErrorCode = "not_loaded"
)

// Error is a typed package error for repository operations.
type Error struct {
	Code    ErrorCode
	Message string
}

// Error returns the formatted error message.
func (e *Error) Error() string {
	if e == nil {
		return "contacts: <nil>"
	}
	if e.Message == "" {
		return fmt.Sprintf("contacts: %s", e.Code)
	}
	return fmt.Sprintf("contacts: %s: %s", e.Code, e.Message)
}

// IsNotFound reports whether err carries ErrorCodeNotFound.
func IsNotFound(err error) bool {
	return codeOf(err) == ErrorCodeNotFound
}

// IsValidation reports whether err carries ErrorCodeValidation.
func IsValidation(err error) bool {
	return codeOf(err) == ErrorCodeValidation
}

func codeOf(err error) ErrorCode {
	var typed *Error
	if errors.As(err, &typed) && typed != nil {
		return typed.Code
	}
	return ""
}

// Contact is the persisted contact model.
type Contact struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Tags      []string
	CreatedAt time.Time
}

// Clone returns a deep copy of c.
func (c Contact) Clone() Contact {
	c.Tags = cloneTags(c.Tags)
	return c
}

// HasTag reports whether c carries tag exactly (case-sensitive, untrimmed).
func (c Contact) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Draft is the create model for Repository.Create.
type Draft struct {
	FirstName string
	LastName  string
	Email     string
	Tags      []string
}

// Validate checks required-field presence.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.FirstName) == "" {
		return &Error{Code: ErrorCodeValidation, Message: "first name is required"}
	}
	if strings.TrimSpace(d.Email) == "" {
		return &Error{Code: ErrorCodeValidation, Message: "email is required"}
	}
	return nil
}

// Changes is a typed patch for Repository.Update.
//
// Nil pointer fields mean "no change". Non-nil pointer fields replace the
// corresponding field. Tags may be cleared by providing an empty slice pointer.
type Changes struct {
	FirstName *string
	LastName  *string
	Email     *string
	Tags      *[]string
}

// Validate rejects changes that would blank a required field.
func (c Changes) Validate() error {
	if c.FirstName != nil && strings.TrimSpace(*c.FirstName) == "" {
		return &Error{Code: ErrorCodeValidation, Message: "first name is required"}
	}
	if c.Email != nil && strings.TrimSpace(*c.Email) == "" {
		return &Error{Code: ErrorCodeValidation, Message: "email is required"}
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing.
func (c Changes) IsEmpty() bool {
	return c.FirstName == nil && c.LastName == nil && c.Email == nil && c.Tags == nil
}

func (c Changes) apply(contact *Contact) {
	if c.FirstName != nil {
		contact.FirstName = *c.FirstName
	}
	if c.LastName != nil {
		contact.LastName = *c.LastName
	}
	if c.Email != nil {
		contact.Email = *c.Email
	}
	if c.Tags != nil {
		contact.Tags = cloneTags(*c.Tags)
	}
}

// Store is the persistence port of a Repository.
//
// Load returns ErrNoRecord when the namespace holds nothing. Save replaces the
// whole record for the namespace in one write.
type Store interface {
	Load(ctx context.Context, namespace string) ([]byte, error)
	Save(ctx context.Context, namespace string, data []byte) error
}

// State is the repository lifecycle state.
type State string

const (
	// StateUninitialized means the persisted collection has not been read yet.
	StateUninitialized State = "uninitialized"
	// StateLoaded means the in-memory collection is authoritative.
	StateLoaded State = "loaded"
)
