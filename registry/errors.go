package registry

import (
	"errors"
	"fmt"
)

// Sentinel errors for registrations that must abort.
// These allow both errors.Is() checks and errors.As() for detailed information.
var (
	// ErrMissingControl is returned when a widget spec has no control component.
	ErrMissingControl = errors.New("widget registered without control component")

	// ErrDuplicateMediaLibrary is returned when a media library name is reused.
	ErrDuplicateMediaLibrary = errors.New("media library already registered")

	// ErrInvalidMediaLibrary is returned when a media library has no name.
	ErrInvalidMediaLibrary = errors.New("invalid media library")

	// ErrInvalidEditorComponent is returned when an editor component cannot be built.
	ErrInvalidEditorComponent = errors.New("invalid editor component")

	// ErrInvalidExtension is returned for malformed extension declarations.
	ErrInvalidExtension = errors.New("invalid extension")

	// ErrIncompatibleExtension is returned when an extension does not support
	// the registry core version.
	ErrIncompatibleExtension = errors.New("incompatible extension")
)

// MissingControlError indicates which widget lacked a control component.
type MissingControlError struct {
	Widget string
}

func (e *MissingControlError) Error() string {
	return fmt.Sprintf("widget %q registered without control component", e.Widget)
}

// Is implements error matching for errors.Is() checks.
// This allows: errors.Is(err, registry.ErrMissingControl)
func (e *MissingControlError) Is(target error) bool {
	return target == ErrMissingControl
}

// DuplicateMediaLibraryError indicates which media library name was reused.
type DuplicateMediaLibraryError struct {
	Name string
}

func (e *DuplicateMediaLibraryError) Error() string {
	return fmt.Sprintf("a media library named %q has already been registered", e.Name)
}

// Is implements error matching for errors.Is() checks.
func (e *DuplicateMediaLibraryError) Is(target error) bool {
	return target == ErrDuplicateMediaLibrary
}

// IncompatibleExtensionError reports an extension whose version constraint
// rejects the core version.
type IncompatibleExtensionError struct {
	Extension string
	Requires  string
	Core      string
}

func (e *IncompatibleExtensionError) Error() string {
	return fmt.Sprintf("extension %q requires core %s, running %s", e.Extension, e.Requires, e.Core)
}

// Is implements error matching for errors.Is() checks.
func (e *IncompatibleExtensionError) Is(target error) bool {
	return target == ErrIncompatibleExtension
}
