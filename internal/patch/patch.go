// Package patch applies bounded structural edit operations to a quote and
// recomputes its derived totals. Paths resolve against a closed set of
// addressable fields rather than free-form tree walking, so malformed paths
// from untrusted input fail validation instead of mutating unknown state.
package patch

import (
	"fmt"
	"strings"
)

// OpType enumerates the supported edit operations.
type OpType string

const (
	OpReplace OpType = "replace"
	OpAdd     OpType = "add"
	OpRemove  OpType = "remove"
)

// Operation is one structural edit: a slash-delimited field locator into the
// quote tree plus an optional value. Operations apply in list order and each
// targets exactly one scalar or one array element.
type Operation struct {
	Op    OpType `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

func (o Operation) String() string {
	if o.Value == nil {
		return fmt.Sprintf("%s %s", o.Op, o.Path)
	}
	return fmt.Sprintf("%s %s = %v", o.Op, o.Path, o.Value)
}

// segments splits the path into its locator segments. A leading slash is
// required; empty segments are rejected.
func (o Operation) segments() ([]string, error) {
	if !strings.HasPrefix(o.Path, "/") {
		return nil, fmt.Errorf("path must start with '/'")
	}
	parts := strings.Split(strings.TrimPrefix(o.Path, "/"), "/")
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("path contains an empty segment")
		}
	}
	return parts, nil
}

// Error reports a rejected operation, identifying the offending entry by its
// position in the patch. Rejection guarantees the target quote is unchanged.
type Error struct {
	OpIndex int
	Op      Operation
	Reason  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("patch op %d (%s): %s", e.OpIndex, e.Op, e.Reason)
}

func opErr(idx int, op Operation, format string, args ...any) *Error {
	return &Error{OpIndex: idx, Op: op, Reason: fmt.Sprintf(format, args...)}
}
