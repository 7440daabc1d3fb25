// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/store"
)

// Drivers hand back different Go types for the same column (int64 for
// SQLite booleans, []byte or string for text, time.Time or a formatted
// string for timestamps). Decoding goes through cast so every store
// implementation lands on the same model values. Missing columns decode to
// the zero value.

func pollRow(p models.Poll) store.Row {
	return store.Row{
		"id":                   p.ID,
		"title":                p.Title,
		"description":          nullString(p.Description),
		"creator_id":           p.CreatorID,
		"allow_multiple_votes": p.AllowMultipleVotes,
		"is_public":            p.IsPublic,
		"expires_at":           nullTime(p.ExpiresAt),
		"created_at":           p.CreatedAt,
		"updated_at":           p.UpdatedAt,
	}
}

func optionRow(o models.PollOption) store.Row {
	return store.Row{
		"id":         o.ID,
		"poll_id":    o.PollID,
		"text":       o.Text,
		"position":   o.Position,
		"vote_count": o.VoteCount,
		"created_at": o.CreatedAt,
		"updated_at": o.UpdatedAt,
	}
}

func pollFromRow(r store.Row) (models.Poll, error) {
	var (
		p   models.Poll
		err error
	)
	d := decoder{row: r}
	p.ID = d.str("id")
	p.Title = d.str("title")
	p.Description = d.optStr("description")
	p.CreatorID = d.str("creator_id")
	p.AllowMultipleVotes = d.boolean("allow_multiple_votes")
	p.IsPublic = d.boolean("is_public")
	p.ExpiresAt = d.optTime("expires_at")
	p.CreatedAt = d.time("created_at")
	p.UpdatedAt = d.time("updated_at")
	if d.err != nil {
		err = errors.Wrap(d.err, "decode poll")
	}
	return p, err
}

func optionFromRow(r store.Row) (models.PollOption, error) {
	var (
		o   models.PollOption
		err error
	)
	d := decoder{row: r}
	o.ID = d.str("id")
	o.PollID = d.str("poll_id")
	o.Text = d.str("text")
	o.Position = d.integer("position")
	o.VoteCount = d.integer("vote_count")
	o.CreatedAt = d.time("created_at")
	o.UpdatedAt = d.time("updated_at")
	if d.err != nil {
		err = errors.Wrap(d.err, "decode poll option")
	}
	return o, err
}

func optionsFromRows(rows []store.Row) ([]models.PollOption, error) {
	options := make([]models.PollOption, 0, len(rows))
	for _, r := range rows {
		o, err := optionFromRow(r)
		if err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, nil
}

// decoder keeps the first conversion error
type decoder struct {
	row store.Row
	err error
}

func (d *decoder) fail(column string, err error) {
	if d.err == nil {
		d.err = errors.Wrapf(err, "column %s", column)
	}
}

func (d *decoder) str(column string) string {
	v, ok := d.row[column]
	if !ok || v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		d.fail(column, err)
	}
	return s
}

func (d *decoder) optStr(column string) *string {
	if v, ok := d.row[column]; !ok || v == nil {
		return nil
	}
	s := d.str(column)
	return &s
}

func (d *decoder) boolean(column string) bool {
	v, ok := d.row[column]
	if !ok || v == nil {
		return false
	}
	switch x := v.(type) {
	case int64:
		return x != 0
	case []byte:
		v = string(x)
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		d.fail(column, err)
	}
	return b
}

func (d *decoder) integer(column string) int {
	v, ok := d.row[column]
	if !ok || v == nil {
		return 0
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		d.fail(column, err)
	}
	return n
}

func (d *decoder) time(column string) time.Time {
	v, ok := d.row[column]
	if !ok || v == nil {
		return time.Time{}
	}
	t, err := toTime(v)
	if err != nil {
		d.fail(column, err)
	}
	return t
}

func (d *decoder) optTime(column string) *time.Time {
	if v, ok := d.row[column]; !ok || v == nil {
		return nil
	}
	t := d.time(column)
	return &t
}

// toTime accepts time values and the formats drivers render them in,
// including time.Time.String() output.
func toTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case []byte:
		v = string(x)
	case *time.Time:
		if x == nil {
			return time.Time{}, nil
		}
		v = *x
	}
	if s, ok := v.(string); ok {
		if i := strings.Index(s, " m="); i >= 0 {
			s = s[:i]
		}
		v = s
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
