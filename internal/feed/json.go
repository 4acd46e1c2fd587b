package feed

import (
	"fmt"
	"os"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	log "github.com/sirupsen/logrus"

	"github.com/mcgarrah/gpcdb/api"
)

// JSONPath selectors for the flat lists the JSON flavor of the feed
// carries. Unlike the XML feed, the JSON feed is not nested: each list
// entry names its parent by code, and it stops at the brick level.
var (
	segmentsPath = jp.MustParseString("$.segments[*]")
	familiesPath = jp.MustParseString("$.families[*]")
	classesPath  = jp.MustParseString("$.classes[*]")
	bricksPath   = jp.MustParseString("$.bricks[*]")
)

// DecodeJSON parses the JSON feed and links its flat lists back into a
// tree. Entries with no code, and entries whose parent code does not
// appear in the document, are dropped with a warning — the same
// lookup-or-skip behavior the feed's own tooling applies. Everything
// that remains satisfies the parent-before-child ordering the importer
// relies on.
func DecodeJSON(data []byte) (*api.Schema, error) {
	doc, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse gpc json: %w", err)
	}

	type row struct {
		code, text, parent string
	}
	collect := func(x jp.Expr, codeKey, textKey, parentKey string) []row {
		var rows []row
		for _, r := range x.Get(doc) {
			m, ok := r.(map[string]any)
			if !ok {
				continue
			}
			rows = append(rows, row{
				code:   str(m, codeKey),
				text:   str(m, textKey),
				parent: str(m, parentKey),
			})
		}
		return rows
	}

	segRows := collect(segmentsPath, "segmentCode", "segmentDescription", "")
	famRows := collect(familiesPath, "familyCode", "familyDescription", "segmentCode")
	clsRows := collect(classesPath, "classCode", "classDescription", "familyCode")
	brkRows := collect(bricksPath, "brickCode", "brickDescription", "classCode")

	// Assemble bottom-up so each level's children are complete before the
	// level above copies them in. Parent sets cascade: a family under an
	// unknown segment is dropped, and so is everything beneath it.
	segCodes := map[string]bool{}
	for _, s := range segRows {
		if s.code != "" {
			segCodes[s.code] = true
		}
	}
	famCodes := map[string]bool{}
	for _, f := range famRows {
		if f.code != "" && segCodes[f.parent] {
			famCodes[f.code] = true
		}
	}
	clsCodes := map[string]bool{}
	for _, c := range clsRows {
		if c.code != "" && famCodes[c.parent] {
			clsCodes[c.code] = true
		}
	}

	bricksByClass := map[string][]api.Brick{}
	for _, b := range brkRows {
		if b.code == "" {
			continue
		}
		if !clsCodes[b.parent] {
			log.WithField("brick", b.code).Warn("dropping brick with unknown class")
			continue
		}
		bricksByClass[b.parent] = append(bricksByClass[b.parent], api.Brick{Code: b.code, Text: b.text})
	}

	classesByFamily := map[string][]api.Class{}
	for _, c := range clsRows {
		if c.code == "" {
			continue
		}
		if !famCodes[c.parent] {
			log.WithField("class", c.code).Warn("dropping class with unknown family")
			continue
		}
		classesByFamily[c.parent] = append(classesByFamily[c.parent], api.Class{
			Code: c.code, Text: c.text, Bricks: bricksByClass[c.code],
		})
	}

	familiesBySegment := map[string][]api.Family{}
	for _, f := range famRows {
		if f.code == "" {
			continue
		}
		if !segCodes[f.parent] {
			log.WithField("family", f.code).Warn("dropping family with unknown segment")
			continue
		}
		familiesBySegment[f.parent] = append(familiesBySegment[f.parent], api.Family{
			Code: f.code, Text: f.text, Classes: classesByFamily[f.code],
		})
	}

	out := &api.Schema{}
	for _, s := range segRows {
		if s.code == "" {
			continue
		}
		out.Segments = append(out.Segments, api.Segment{
			Code: s.code, Text: s.text, Families: familiesBySegment[s.code],
		})
	}
	return out, nil
}

// LoadJSON reads and parses a JSON feed file.
func LoadJSON(path string) (*api.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open json feed: %w", err)
	}
	return DecodeJSON(data)
}

func str(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
