package api

import "encoding/xml"

// Schema is the root of a parsed GPC classification document.
// The GS1 feed nests six levels: segment > family > class > brick >
// attribute type > attribute value. XML attribute names follow the
// published feed (code/text on every element).
type Schema struct {
	XMLName xml.Name `xml:"schema" json:"-"`
	// Segments are the top-level nodes of the hierarchy.
	Segments []Segment `xml:"segment" json:"segments,omitempty"`
}

// Segment is a top-level classification node.
type Segment struct {
	Code     string   `xml:"code,attr" json:"code"`
	Text     string   `xml:"text,attr" json:"text"`
	Families []Family `xml:"family" json:"families,omitempty"`
}

// Family groups classes within a segment.
type Family struct {
	Code    string  `xml:"code,attr" json:"code"`
	Text    string  `xml:"text,attr" json:"text"`
	Classes []Class `xml:"class" json:"classes,omitempty"`
}

// Class groups bricks within a family.
type Class struct {
	Code   string  `xml:"code,attr" json:"code"`
	Text   string  `xml:"text,attr" json:"text"`
	Bricks []Brick `xml:"brick" json:"bricks,omitempty"`
}

// Brick is the base classification unit products are assigned to.
type Brick struct {
	Code           string          `xml:"code,attr" json:"code"`
	Text           string          `xml:"text,attr" json:"text"`
	AttributeTypes []AttributeType `xml:"attType" json:"attribute_types,omitempty"`
}

// AttributeType describes one facet of a brick (e.g. "If Decaffeinated").
type AttributeType struct {
	Code   string           `xml:"code,attr" json:"code"`
	Text   string           `xml:"text,attr" json:"text"`
	Values []AttributeValue `xml:"attValue" json:"values,omitempty"`
}

// AttributeValue is one allowed value of an attribute type.
type AttributeValue struct {
	Code string `xml:"code,attr" json:"code"`
	Text string `xml:"text,attr" json:"text"`
}

// Filter returns a copy of the schema pruned to a single segment code.
// An empty code returns s unchanged. A code with no match yields an
// empty schema rather than an error; callers decide how to report that.
func (s *Schema) Filter(segmentCode string) *Schema {
	if segmentCode == "" {
		return s
	}
	out := &Schema{XMLName: s.XMLName}
	for _, seg := range s.Segments {
		if seg.Code == segmentCode {
			out.Segments = append(out.Segments, seg)
		}
	}
	return out
}

// Empty reports whether the schema contains no segments.
func (s *Schema) Empty() bool {
	return s == nil || len(s.Segments) == 0
}
