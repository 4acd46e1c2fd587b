package store

// Table describes one level of the classification schema: its primary key,
// description column, and the foreign key linking it to its parent level.
type Table struct {
	Name    string
	Key     string
	Desc    string
	FK      string // empty for the root level
	FKTable string
}

// Columns returns the non-key columns in insert order.
func (t Table) Columns() []string {
	cols := []string{t.Desc}
	if t.FK != "" {
		cols = append(cols, t.FK)
	}
	return cols
}

// The six GPC tables. Column names follow the GS1 feed conventions
// (att_type_text/att_value_text for the attribute levels).
var (
	Segments        = Table{Name: "segments", Key: "segment_code", Desc: "description"}
	Families        = Table{Name: "families", Key: "family_code", Desc: "description", FK: "segment_code", FKTable: "segments"}
	Classes         = Table{Name: "classes", Key: "class_code", Desc: "description", FK: "family_code", FKTable: "families"}
	Bricks          = Table{Name: "bricks", Key: "brick_code", Desc: "description", FK: "class_code", FKTable: "classes"}
	AttributeTypes  = Table{Name: "attribute_types", Key: "att_type_code", Desc: "att_type_text", FK: "brick_code", FKTable: "bricks"}
	AttributeValues = Table{Name: "attribute_values", Key: "att_value_code", Desc: "att_value_text", FK: "att_type_code", FKTable: "attribute_types"}
)

// Tables lists all six tables in dependency order: every table appears
// after the table its foreign key references.
var Tables = []Table{Segments, Families, Classes, Bricks, AttributeTypes, AttributeValues}
