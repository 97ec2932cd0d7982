package linkdefs

import (
	"strings"

	"github.com/yaklabco/mdrefs/pkg/edit"
)

// CodeActionKind is a hierarchical, dot separated action kind such as
// "refactor.extract".
type CodeActionKind string

// Action kinds used by this package.
const (
	KindEmpty                 CodeActionKind = ""
	KindRefactor              CodeActionKind = "refactor"
	KindRefactorExtract       CodeActionKind = "refactor.extract"
	KindExtractLinkDefinition CodeActionKind = "refactor.extract.linkDefinition"
)

// Contains reports whether other is k or a sub-kind of k. The empty kind
// contains every kind.
func (k CodeActionKind) Contains(other CodeActionKind) bool {
	if k == KindEmpty || k == other {
		return true
	}
	return strings.HasPrefix(string(other), string(k)+".")
}

// CodeActionContext narrows which actions a caller wants.
type CodeActionContext struct {
	// Only lists the requested kinds. Nil means any kind.
	Only []CodeActionKind
}

// Allows reports whether an action of the given kind was requested.
func (c CodeActionContext) Allows(kind CodeActionKind) bool {
	if c.Only == nil {
		return true
	}
	for _, only := range c.Only {
		if only.Contains(kind) {
			return true
		}
	}
	return false
}

// CodeAction is a change offered to the user. A disabled action carries
// the reason it cannot be applied and no edit.
type CodeAction struct {
	Title    string              `json:"title"`
	Kind     CodeActionKind      `json:"kind"`
	Disabled *Disabled           `json:"disabled,omitempty"`
	Edit     *edit.WorkspaceEdit `json:"edit,omitempty"`
	Command  *Command            `json:"command,omitempty"`
}

// Disabled explains why an action is unavailable.
type Disabled struct {
	Reason string `json:"reason"`
}

// Command is a follow-up the editor runs after applying the action's edit.
type Command struct {
	Title     string `json:"title"`
	Command   string `json:"command"`
	Arguments []any  `json:"arguments,omitempty"`
}
