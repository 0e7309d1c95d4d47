package shape

import (
	"strconv"
	"strings"

	"github.com/wudi/layoutkit/fixedpage"
)

// InlinePrefix marks an inline-encoded reference. The remainder of the
// string is base64-encoded content and is never checked against the
// filesystem.
const InlinePrefix = "base64:"

// Ref is a parsed content reference.
type Ref struct {
	Base   string // path, or base64 payload when Inline
	Page   int    // page index into a fixed-page package
	Inline bool
}

// ParseRef parses the reference grammar:
//
//	base64:<data>        inline bytes
//	<path>               plain path, page 0
//	<path>.fpx:<digits>  path plus explicit page index
//
// A malformed or missing page index defaults to 0. ParseRef is pure: it
// performs no I/O and never fails.
func ParseRef(ref string) Ref {
	if strings.HasPrefix(ref, InlinePrefix) {
		return Ref{Base: ref[len(InlinePrefix):], Inline: true}
	}
	// The marker is ASCII, so a byte-window fold comparison is exact and
	// keeps indices valid for ref itself. Lowering the whole reference
	// would shift byte offsets for non-ASCII paths.
	marker := fixedpage.Extension + ":"
	for i := len(ref) - len(marker); i >= 0; i-- {
		if !strings.EqualFold(ref[i:i+len(marker)], marker) {
			continue
		}
		base := ref[:i+len(fixedpage.Extension)]
		page := 0
		if n, err := strconv.Atoi(ref[i+len(marker):]); err == nil && n >= 0 {
			page = n
		}
		return Ref{Base: base, Page: page}
	}
	return Ref{Base: ref}
}
