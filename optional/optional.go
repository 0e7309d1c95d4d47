// Package optional provides tri-state values for document properties that
// distinguish "not specified" from "explicitly set, including to zero".
package optional

// Float64 is an optional floating-point value.
type Float64 struct {
	isSet bool
	val   float64
}

// NewFloat64 returns a Float64 holding v.
func NewFloat64(v float64) Float64 {
	var f Float64
	f.Set(v)
	return f
}

// Get returns the value and whether it is set.
func (f Float64) Get() (float64, bool) { return f.val, f.isSet }

// Or returns the value if set, otherwise def.
func (f Float64) Or(def float64) float64 {
	if f.isSet {
		return f.val
	}
	return def
}

// IsSet reports whether the value has been set.
func (f Float64) IsSet() bool { return f.isSet }

// Set sets the value.
func (f *Float64) Set(v float64) {
	f.isSet = true
	f.val = v
}

// Clear clears the value.
func (f *Float64) Clear() {
	f.isSet = false
	f.val = 0
}

// Bool is an optional boolean value.
type Bool struct {
	isSet bool
	val   bool
}

// NewBool returns a Bool holding v.
func NewBool(v bool) Bool {
	var b Bool
	b.Set(v)
	return b
}

// Get returns the value and whether it is set.
func (b Bool) Get() (bool, bool) { return b.val, b.isSet }

// Or returns the value if set, otherwise def.
func (b Bool) Or(def bool) bool {
	if b.isSet {
		return b.val
	}
	return def
}

// IsSet reports whether the value has been set.
func (b Bool) IsSet() bool { return b.isSet }

// Set sets the value.
func (b *Bool) Set(v bool) {
	b.isSet = true
	b.val = v
}

// Clear clears the value.
func (b *Bool) Clear() {
	b.isSet = false
	b.val = false
}
