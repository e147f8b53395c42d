package router

import "strings"

// SegmentKind classifies a single path segment of a route pattern.
type SegmentKind uint8

const (
	// SegmentStatic matches a path component by exact equality.
	SegmentStatic SegmentKind = iota
	// SegmentParam matches exactly one non-empty path component and
	// binds it under the segment's name.
	SegmentParam
	// SegmentWildcard matches one or more remaining path components,
	// separators included, and binds the joined remainder. Only legal
	// as the final segment of a pattern.
	SegmentWildcard
)

// String returns the kind name for logs and error messages.
func (k SegmentKind) String() string {
	switch k {
	case SegmentStatic:
		return "static"
	case SegmentParam:
		return "param"
	case SegmentWildcard:
		return "wildcard"
	default:
		return "unknown"
	}
}

// Segment is one /-delimited component of a route pattern.
type Segment struct {
	Kind SegmentKind

	// Literal is the exact path component for static segments.
	Literal string

	// Name is the binding name for param and wildcard segments.
	Name string
}

// Pattern is the parsed, immutable form of a route pattern string.
type Pattern struct {
	Raw      string
	Segments []Segment
}

// ParsePattern parses a route pattern string into a Pattern.
//
// Patterns must start with "/". A component wrapped as {name} becomes a
// parameter segment, {*name} a catch-all wildcard; anything else is
// static. Empty components from leading, trailing or doubled slashes
// are discarded. Parameter names must be non-empty and unique within
// one pattern, and a wildcard may only appear as the last segment.
// "/" parses to a pattern with zero segments (the root route).
//
// ParsePattern is a pure function: it has no side effects and never
// retains the input beyond the returned Pattern.
func ParsePattern(pattern string) (Pattern, error) {
	if pattern == "" {
		return Pattern{}, &PatternError{Pattern: pattern, Cause: ErrEmptyPattern}
	}
	if pattern[0] != '/' {
		return Pattern{}, &PatternError{Pattern: pattern, Cause: ErrPatternNotRooted}
	}

	parts := strings.Split(strings.Trim(pattern, "/"), "/")
	segments := make([]Segment, 0, len(parts))

	var names map[string]struct{}
	sawWildcard := false

	for _, part := range parts {
		if part == "" {
			continue
		}

		if sawWildcard {
			return Pattern{}, &PatternError{Pattern: pattern, Cause: ErrWildcardNotLast}
		}

		seg, err := parseSegment(part)
		if err != nil {
			return Pattern{}, &PatternError{Pattern: pattern, Cause: err}
		}

		if seg.Kind != SegmentStatic {
			if names == nil {
				names = make(map[string]struct{})
			}
			if _, dup := names[seg.Name]; dup {
				return Pattern{}, &PatternError{Pattern: pattern, Cause: ErrDuplicateParamName}
			}
			names[seg.Name] = struct{}{}
		}

		if seg.Kind == SegmentWildcard {
			sawWildcard = true
		}

		segments = append(segments, seg)
	}

	return Pattern{Raw: pattern, Segments: segments}, nil
}

// parseSegment classifies a single non-empty path component.
func parseSegment(part string) (Segment, error) {
	if len(part) < 2 || part[0] != '{' || part[len(part)-1] != '}' {
		return Segment{Kind: SegmentStatic, Literal: part}, nil
	}

	name := part[1 : len(part)-1]
	kind := SegmentParam

	if strings.HasPrefix(name, "*") {
		name = name[1:]
		kind = SegmentWildcard
	}

	if name == "" {
		return Segment{}, ErrEmptyParamName
	}

	return Segment{Kind: kind, Name: name}, nil
}

// splitPath splits a request path (or pattern remainder) into
// components, ignoring empty components produced by leading and
// trailing slashes. Interior empty components are preserved; they can
// never match a static or parameter segment and only a wildcard can
// consume them.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
