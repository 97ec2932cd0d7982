package links

import (
	"path"
	"regexp"
	"strings"
)

// Href is the target of a link. It is one of ExternalHref, InternalHref or
// ReferenceHref; the set is closed.
type Href interface {
	// String renders the href for display.
	String() string

	isHref()
}

// ExternalHref points outside the workspace, e.g. an http or mailto URI.
type ExternalHref struct {
	URI string `json:"uri"`
}

// InternalHref points to a document in the workspace, optionally to a
// fragment inside it. Path is slash separated.
type InternalHref struct {
	Path     string `json:"path"`
	Fragment string `json:"fragment,omitempty"`
}

// ReferenceHref refers to a link definition by label.
type ReferenceHref struct {
	Ref string `json:"ref"`
}

func (ExternalHref) isHref()  {}
func (InternalHref) isHref()  {}
func (ReferenceHref) isHref() {}

func (h ExternalHref) String() string { return h.URI }

func (h InternalHref) String() string {
	if h.Fragment == "" {
		return h.Path
	}
	return h.Path + "#" + h.Fragment
}

func (h ReferenceHref) String() string { return "[" + h.Ref + "]" }

// HrefEqual compares two hrefs by value. Hrefs of different variants are
// never equal.
func HrefEqual(a, b Href) bool {
	switch a := a.(type) {
	case ExternalHref:
		b, ok := b.(ExternalHref)
		return ok && a.URI == b.URI
	case InternalHref:
		b, ok := b.(InternalHref)
		return ok && a.Path == b.Path && a.Fragment == b.Fragment
	case ReferenceHref:
		b, ok := b.(ReferenceHref)
		return ok && a.Ref == b.Ref
	default:
		return false
	}
}

// HrefKind returns a short name for the href variant.
func HrefKind(h Href) string {
	switch h.(type) {
	case ExternalHref:
		return "external"
	case InternalHref:
		return "internal"
	case ReferenceHref:
		return "reference"
	default:
		return "unknown"
	}
}

// schemePattern matches a URI scheme such as "https:" or "mailto:".
// Single letter schemes are Windows drive letters, not URIs.
var schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]+:`)

// ParseHref classifies a link destination written in the document at
// docPath. Relative paths are resolved against the document's directory.
func ParseHref(destination, docPath string) Href {
	destination = strings.TrimSpace(destination)
	destination = strings.TrimSuffix(strings.TrimPrefix(destination, "<"), ">")

	if schemePattern.MatchString(destination) || strings.HasPrefix(destination, "//") {
		return ExternalHref{URI: destination}
	}

	target, fragment, _ := strings.Cut(destination, "#")

	docPath = toSlash(docPath)
	switch {
	case target == "":
		target = docPath
	case strings.HasPrefix(target, "/"):
		target = path.Clean(target)
	default:
		target = path.Join(path.Dir(docPath), target)
	}

	return InternalHref{Path: target, Fragment: fragment}
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
