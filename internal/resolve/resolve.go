// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNameNotFound is the sentinel error wrapped by NameNotFoundError.
var ErrNameNotFound = errors.New("name not found")

const (
	// SourceNone means the name was dropped from the output.
	SourceNone Source = iota
	// SourcePrimary means the text came from the primary mapping.
	SourcePrimary
	// SourceFallback means the text came from the fallback mapping.
	SourceFallback
	// SourcePassThrough means the name itself was written to the output.
	SourcePassThrough
)

type (
	// Lookuper is the read side of a mapping.
	Lookuper interface {
		Lookup(name string) (string, bool)
	}

	// Policy controls what happens to names missing from both mappings.
	//
	//	Pass  Warn  outcome
	//	true  true  name written to output, warning emitted
	//	true  false name written to output silently
	//	false true  warning emitted, name skipped, processing continues
	//	false false request aborted with *NameNotFoundError
	Policy struct {
		Warn bool
		Pass bool
	}

	// Request is an ordered list of names to expand.
	Request struct {
		// Names are processed independently and in order; duplicates are allowed.
		Names []string
		// Sep is appended after every value written to the output.
		Sep    string
		Policy Policy
	}

	// Source records where a name's output came from.
	Source int

	// Resolution is the outcome for one requested name.
	Resolution struct {
		Name   string
		Source Source
	}

	// Diagnostic is a non-fatal report about a requested name.
	Diagnostic struct {
		Name string
	}

	// Result is the buffered outcome of a Request.
	Result struct {
		// Output is the concatenated text, in request order.
		Output      string
		Resolutions []Resolution
		Diagnostics []Diagnostic
	}

	// NameNotFoundError aborts a request whose policy neither passes nor warns.
	NameNotFoundError struct {
		Name string
	}
)

// String returns a short label for the source.
func (s Source) String() string {
	switch s {
	case SourcePrimary:
		return "primary"
	case SourceFallback:
		return "fallback"
	case SourcePassThrough:
		return "pass-through"
	default:
		return "none"
	}
}

// Message returns the user-facing text of the diagnostic.
func (d Diagnostic) Message() string {
	return fmt.Sprintf("couldn't find %s", d.Name)
}

// Error implements the error interface.
func (e *NameNotFoundError) Error() string {
	return fmt.Sprintf("couldn't find %s", e.Name)
}

// Unwrap returns ErrNameNotFound for errors.Is() compatibility.
func (e *NameNotFoundError) Unwrap() error { return ErrNameNotFound }

// Resolve expands every name in req. primary takes precedence over fallback;
// either may be nil. On a fatal miss the Result is empty and the error is a
// *NameNotFoundError.
func Resolve(primary, fallback Lookuper, req Request) (Result, error) {
	var (
		out strings.Builder
		res Result
	)
	res.Resolutions = make([]Resolution, 0, len(req.Names))

	for _, name := range req.Names {
		text, source := lookup(primary, fallback, name)
		if source == SourceNone {
			if !req.Policy.Pass && !req.Policy.Warn {
				return Result{}, &NameNotFoundError{Name: name}
			}
			if req.Policy.Warn {
				res.Diagnostics = append(res.Diagnostics, Diagnostic{Name: name})
			}
			if req.Policy.Pass {
				text, source = name, SourcePassThrough
			}
		}

		res.Resolutions = append(res.Resolutions, Resolution{Name: name, Source: source})
		if source == SourceNone {
			continue
		}
		out.WriteString(text)
		out.WriteString(req.Sep)
	}

	res.Output = out.String()
	return res, nil
}

func lookup(primary, fallback Lookuper, name string) (string, Source) {
	if primary != nil {
		if text, ok := primary.Lookup(name); ok {
			return text, SourcePrimary
		}
	}
	if fallback != nil {
		if text, ok := fallback.Lookup(name); ok {
			return text, SourceFallback
		}
	}
	return "", SourceNone
}
