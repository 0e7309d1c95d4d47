// Package recovery decides how the layout engine reacts when embedding a
// piece of content fails. The pagination driver installs one Strategy per
// rendering pass; shape renderers consult it instead of propagating errors
// on their own.
package recovery

// Strategy decides the action taken for a content failure.
type Strategy interface {
	OnFailure(err error, location Location) Action
}

// Location identifies where in the document a failure happened.
type Location struct {
	Shape string // display name of the shape
	Path  string // resolved source path, if any
	Phase string // "format" or "render"
}

type Action int

const (
	// ActionFail aborts the rendering pass with the original error.
	ActionFail Action = iota
	// ActionPlaceholder replaces the content with a diagnostic placeholder
	// and continues the pass.
	ActionPlaceholder
)
