// Package links models the links of a Markdown document and extracts them
// from source text.
package links

import (
	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

// Kind distinguishes inline links from link definitions.
type Kind int

const (
	// KindLink is an inline or reference-style link such as [text](target).
	KindLink Kind = iota

	// KindDefinition is a link reference definition such as [label]: target.
	KindDefinition
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindLink:
		return "link"
	case KindDefinition:
		return "definition"
	default:
		return "unknown"
	}
}

// Source locates a link in the document.
type Source struct {
	// Range is the full textual span of the link.
	Range textdoc.Range

	// TargetRange is the span rewritten when the target changes. For inline
	// links it covers "(target "title")" including the parentheses, for
	// reference links the "[label]" part.
	TargetRange textdoc.Range

	// HrefText is the raw text of the target, without delimiters. For
	// definitions it is everything after the colon.
	HrefText string

	// HrefRange covers HrefText.
	HrefRange textdoc.Range
}

// Link is a single link or link definition in a document.
type Link struct {
	Kind Kind

	// Href is where the link points. Reference-style links carry a
	// ReferenceHref; definitions carry the href of their destination.
	Href Href

	// Ref is the label of a definition as written. Empty for links.
	Ref string

	// RefRange covers the label of a definition, brackets excluded.
	RefRange textdoc.Range

	// Image is set for image links.
	Image bool

	Source Source
}

// IsDefinition reports whether the link is a link definition.
func (l *Link) IsDefinition() bool {
	return l.Kind == KindDefinition
}

// DocumentLinks is everything the provider found in one document.
type DocumentLinks struct {
	// Links holds inline links and definitions in document order.
	Links []*Link

	// Definitions indexes the definitions by label.
	Definitions *LinkDefinitionSet
}

// NewDocumentLinks indexes the definitions found among all.
func NewDocumentLinks(all []*Link) *DocumentLinks {
	return &DocumentLinks{
		Links:       all,
		Definitions: NewLinkDefinitionSet(all),
	}
}

// LinkDefinitionSet looks up link definitions by label. Labels are
// compared as written, case included. A label may be defined more than
// once; lookups return the first definition in document order.
type LinkDefinitionSet struct {
	all     []*Link
	byLabel map[string]*Link
}

// NewLinkDefinitionSet collects the definitions among links.
func NewLinkDefinitionSet(links []*Link) *LinkDefinitionSet {
	set := &LinkDefinitionSet{byLabel: make(map[string]*Link)}
	for _, link := range links {
		if !link.IsDefinition() {
			continue
		}
		set.all = append(set.all, link)
		if _, exists := set.byLabel[link.Ref]; !exists {
			set.byLabel[link.Ref] = link
		}
	}
	return set
}

// Lookup returns the first definition with the given label.
func (s *LinkDefinitionSet) Lookup(label string) (*Link, bool) {
	def, ok := s.byLabel[label]
	return def, ok
}

// Has reports whether label is defined.
func (s *LinkDefinitionSet) Has(label string) bool {
	_, ok := s.byLabel[label]
	return ok
}

// All returns every definition in document order, duplicates included.
func (s *LinkDefinitionSet) All() []*Link {
	return s.all
}

// Len returns the number of definitions, duplicates included.
func (s *LinkDefinitionSet) Len() int {
	return len(s.all)
}
