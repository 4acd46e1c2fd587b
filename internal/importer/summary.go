package importer

// Count is the created/updated tally for one level.
type Count struct {
	Created int
	Updated int
}

// Processed returns the total rows seen at this level.
func (c Count) Processed() int { return c.Created + c.Updated }

// Summary aggregates counters per entity type over one import run.
// The walker fills it as upsert results arrive and returns it by value,
// so callers hold an immutable snapshot.
type Summary struct {
	Segments        Count
	Families        Count
	Classes         Count
	Bricks          Count
	AttributeTypes  Count
	AttributeValues Count
}

// Level returns the counter for a hierarchy level.
func (s Summary) Level(l Level) Count {
	switch l {
	case LevelSegment:
		return s.Segments
	case LevelFamily:
		return s.Families
	case LevelClass:
		return s.Classes
	case LevelBrick:
		return s.Bricks
	case LevelAttributeType:
		return s.AttributeTypes
	case LevelAttributeValue:
		return s.AttributeValues
	}
	return Count{}
}

// TotalCreated sums created counts across all levels.
func (s Summary) TotalCreated() int {
	n := 0
	for _, l := range Levels {
		n += s.Level(l).Created
	}
	return n
}

// TotalUpdated sums updated counts across all levels.
func (s Summary) TotalUpdated() int {
	n := 0
	for _, l := range Levels {
		n += s.Level(l).Updated
	}
	return n
}

func (s *Summary) add(l Level, created bool) {
	var c *Count
	switch l {
	case LevelSegment:
		c = &s.Segments
	case LevelFamily:
		c = &s.Families
	case LevelClass:
		c = &s.Classes
	case LevelBrick:
		c = &s.Bricks
	case LevelAttributeType:
		c = &s.AttributeTypes
	case LevelAttributeValue:
		c = &s.AttributeValues
	default:
		return
	}
	if created {
		c.Created++
	} else {
		c.Updated++
	}
}
