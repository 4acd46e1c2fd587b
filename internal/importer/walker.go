// Package importer walks a parsed GPC classification tree and writes it
// into the relational store. Traversal is pre-order, parent-first, so
// every row exists before the rows that reference it; the input is
// already a tree, which makes that ordering a structural invariant
// rather than something to compute.
package importer

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/mcgarrah/gpcdb/api"
	"github.com/mcgarrah/gpcdb/internal/store"
)

// ImportTree imports the whole document into the store inside a single
// transaction: either every row lands or, on the first error (malformed
// node, storage failure, observer failure), the database is left in its
// pre-import state. Re-running the same document is safe; rows are
// upserted, never duplicated, and never deleted — a code absent from a
// newer feed keeps its old row.
func ImportTree(ctx context.Context, root *api.Schema, st *store.Store, obs Observer) (Summary, error) {
	if obs == nil {
		obs = NopObserver{}
	}
	var sum Summary

	if err := st.EnsureSchema(ctx); err != nil {
		return sum, err
	}

	tx, err := st.Begin(ctx)
	if err != nil {
		return sum, err
	}
	defer func() { _ = tx.Rollback() }() // no-op once committed

	w := &walker{ctx: ctx, tx: tx, obs: obs, sum: &sum}
	if root != nil {
		for _, seg := range root.Segments {
			if err := w.segment(seg); err != nil {
				return sum, err
			}
		}
	}

	if err := obs.Done(sum); err != nil {
		return sum, &ObserverError{Err: err}
	}
	if err := tx.Commit(); err != nil {
		return sum, err
	}

	logReport(sum)
	return sum, nil
}

type walker struct {
	ctx context.Context
	tx  *store.Tx
	obs Observer
	sum *Summary
}

func (w *walker) segment(seg api.Segment) error {
	if err := w.upsert(LevelSegment, store.Segments, seg.Code, seg.Text, ""); err != nil {
		return err
	}
	for _, fam := range seg.Families {
		if err := w.family(fam, seg.Code); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) family(fam api.Family, segmentCode string) error {
	if err := w.upsert(LevelFamily, store.Families, fam.Code, fam.Text, segmentCode); err != nil {
		return err
	}
	for _, cls := range fam.Classes {
		if err := w.class(cls, fam.Code); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) class(cls api.Class, familyCode string) error {
	if err := w.upsert(LevelClass, store.Classes, cls.Code, cls.Text, familyCode); err != nil {
		return err
	}
	for _, brick := range cls.Bricks {
		if err := w.brick(brick, cls.Code); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) brick(brick api.Brick, classCode string) error {
	if err := w.upsert(LevelBrick, store.Bricks, brick.Code, brick.Text, classCode); err != nil {
		return err
	}
	for _, at := range brick.AttributeTypes {
		if err := w.attributeType(at, brick.Code); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) attributeType(at api.AttributeType, brickCode string) error {
	if err := w.upsert(LevelAttributeType, store.AttributeTypes, at.Code, at.Text, brickCode); err != nil {
		return err
	}
	for _, av := range at.Values {
		if err := w.upsert(LevelAttributeValue, store.AttributeValues, av.Code, av.Text, at.Code); err != nil {
			return err
		}
	}
	return nil
}

// upsert writes one node and notifies the observer. parent is the
// enclosing node's code, empty at the segment level. An empty code is
// fatal: without it the FK chain below this node cannot be built.
// An empty text is fine and stored as-is.
func (w *walker) upsert(level Level, t store.Table, code, text, parent string) error {
	if code == "" {
		return &MalformedDocumentError{Level: level, Parent: parent}
	}

	values := map[string]string{t.Desc: text}
	if t.FK != "" {
		values[t.FK] = parent
	}
	created, err := w.tx.Upsert(w.ctx, t, code, values)
	if err != nil {
		return err
	}
	w.sum.add(level, created)

	log.WithFields(log.Fields{
		"level":   string(level),
		"code":    code,
		"created": created,
	}).Debug("processed node")

	if err := w.obs.Entity(level, code, text, created); err != nil {
		return &ObserverError{Level: level, Code: code, Err: err}
	}
	return nil
}

func logReport(sum Summary) {
	for _, l := range Levels {
		c := sum.Level(l)
		log.WithFields(log.Fields{
			"level":     string(l),
			"processed": c.Processed(),
			"created":   c.Created,
			"updated":   c.Updated,
		}).Info("import summary")
	}
}
