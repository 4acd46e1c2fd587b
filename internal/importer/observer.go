package importer

// Level identifies one of the six hierarchy levels.
type Level string

const (
	LevelSegment        Level = "segment"
	LevelFamily         Level = "family"
	LevelClass          Level = "class"
	LevelBrick          Level = "brick"
	LevelAttributeType  Level = "attribute_type"
	LevelAttributeValue Level = "attribute_value"
)

// Levels lists the hierarchy levels parent-first.
var Levels = []Level{LevelSegment, LevelFamily, LevelClass, LevelBrick, LevelAttributeType, LevelAttributeValue}

// Observer receives progress callbacks from the walker. Entity fires
// after each row's upsert, parent before any of its children; Done fires
// exactly once with the final counters, before the transaction commits.
// A non-nil error from either callback aborts the import: the walker
// does not continue past a failed observer, since its state (say, a
// partially written log) cannot be trusted to resume.
type Observer interface {
	Entity(level Level, code, text string, created bool) error
	Done(s Summary) error
}

// NopObserver is the inert default; the walker behaves identically
// whether a caller passes it or a custom implementation.
type NopObserver struct{}

func (NopObserver) Entity(Level, string, string, bool) error { return nil }

func (NopObserver) Done(Summary) error { return nil }

var _ Observer = NopObserver{}
