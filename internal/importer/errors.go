package importer

import "fmt"

// MalformedDocumentError reports a structural problem in the input
// tree: a node with no code. A missing code breaks the foreign-key
// chain for every descendant, so the whole import aborts rather than
// attempting a partial tree.
type MalformedDocumentError struct {
	Level  Level
	Parent string // code of the enclosing node, empty at the root level
}

func (e *MalformedDocumentError) Error() string {
	if e.Parent == "" {
		return fmt.Sprintf("malformed document: %s node missing code", e.Level)
	}
	return fmt.Sprintf("malformed document: %s node missing code (under %s)", e.Level, e.Parent)
}

// ObserverError wraps a failure raised by a caller-supplied observer
// callback. The import stops at the first one.
type ObserverError struct {
	Level Level  // level being notified, empty for the completion hook
	Code  string // entity code being notified, empty for the completion hook
	Err   error
}

func (e *ObserverError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("observer failed on completion: %v", e.Err)
	}
	return fmt.Sprintf("observer failed on %s %s: %v", e.Level, e.Code, e.Err)
}

func (e *ObserverError) Unwrap() error { return e.Err }
