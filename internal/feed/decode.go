// Package feed decodes GS1 GPC feed documents (XML or JSON) into the
// classification tree the importer consumes. It validates structure
// only as far as parsing requires; there is no XSD validation, and a
// malformed document is reported, not repaired.
package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/mcgarrah/gpcdb/api"
)

// DecodeXML parses the XML feed. The root element must be <schema>;
// anything else, or non-well-formed markup, is an error.
func DecodeXML(r io.Reader) (*api.Schema, error) {
	var s api.Schema
	if err := xml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("parse gpc xml: %w", err)
	}
	return &s, nil
}

// LoadXML reads and parses an XML feed file.
func LoadXML(path string) (*api.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open xml feed: %w", err)
	}
	defer func() { _ = f.Close() }()
	return DecodeXML(f)
}
