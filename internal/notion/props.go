package notion

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jomei/notionapi"
)

// Notion rejects rich text segments longer than this many characters
const maxSegment = 2000

const dateLayout = "2006-01-02"

// Readers. Each one returns the zero value (or nil) when the property is
// missing, has another type, or is empty, so partially filled pages still map.

func readTitle(props notionapi.Properties, name, fallback string) string {
	if p, ok := props[name].(*notionapi.TitleProperty); ok {
		if s := joinRichText(p.Title); s != "" {
			return s
		}
	}
	return fallback
}

func readText(props notionapi.Properties, name string) string {
	if p, ok := props[name].(*notionapi.RichTextProperty); ok {
		return joinRichText(p.RichText)
	}
	return ""
}

// readNumber returns the first non-zero number among names. Notion sends an
// unfilled number as null, which decodes to 0, so zero reads as unset.
func readNumber(props notionapi.Properties, names ...string) *float64 {
	for _, name := range names {
		if p, ok := props[name].(*notionapi.NumberProperty); ok && p.Number != 0 {
			n := p.Number
			return &n
		}
	}
	return nil
}

// readRef reads a numeric property holding a local row ID; zero or negative
// means no reference
func readRef(props notionapi.Properties, name string) *uint {
	n := readNumber(props, name)
	if n == nil || *n < 1 {
		return nil
	}
	id := uint(*n)
	return &id
}

func readDate(props notionapi.Properties, name string) string {
	p, ok := props[name].(*notionapi.DateProperty)
	if !ok || p.Date == nil || p.Date.Start == nil {
		return ""
	}
	return formatDate(time.Time(*p.Date.Start))
}

// readTextOrDate reads a property stored as rich text, falling back to a
// date value for pages written by older clients
func readTextOrDate(props notionapi.Properties, name string) string {
	if s := readText(props, name); s != "" {
		return s
	}
	return readDate(props, name)
}

func readRelation(props notionapi.Properties, name string) []string {
	ids := []string{}
	if p, ok := props[name].(*notionapi.RelationProperty); ok {
		for _, r := range p.Relation {
			ids = append(ids, r.ID.String())
		}
	}
	return ids
}

func joinRichText(segments []notionapi.RichText) string {
	var b strings.Builder
	for _, rt := range segments {
		if rt.Text != nil {
			b.WriteString(rt.Text.Content)
		} else {
			b.WriteString(rt.PlainText)
		}
	}
	return b.String()
}

func formatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(dateLayout)
	}
	return t.Format(time.RFC3339)
}

// Writers

func richText(s string) []notionapi.RichText {
	segments := []notionapi.RichText{}
	runes := []rune(s)
	for len(runes) > 0 {
		n := min(len(runes), maxSegment)
		segments = append(segments, notionapi.RichText{
			Text: &notionapi.Text{Content: string(runes[:n])},
		})
		runes = runes[n:]
	}
	return segments
}

func titleProp(s string) *notionapi.TitleProperty {
	return &notionapi.TitleProperty{Title: richText(s)}
}

func textProp(s string) *notionapi.RichTextProperty {
	return &notionapi.RichTextProperty{RichText: richText(s)}
}

func numberProp(n float64) *notionapi.NumberProperty {
	return &notionapi.NumberProperty{Number: n}
}

func refProp(id *uint) *notionapi.NumberProperty {
	if id == nil {
		return numberProp(0)
	}
	return numberProp(float64(*id))
}

// dateOnly is a date property without a time of day. notionapi.Date always
// encodes as RFC 3339, which Notion stores as a datetime.
type dateOnly string

func (d dateOnly) GetID() string { return "" }

func (d dateOnly) GetType() notionapi.PropertyType { return notionapi.PropertyTypeDate }

func (d dateOnly) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]map[string]string{"date": {"start": string(d)}})
}

// dateProp accepts YYYY-MM-DD or RFC 3339; an empty string clears the date
func dateProp(s string) (notionapi.Property, error) {
	if s == "" {
		return &notionapi.DateProperty{}, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return dateOnly(t.Format(dateLayout)), nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	start := notionapi.Date(t)
	return &notionapi.DateProperty{Date: &notionapi.DateObject{Start: &start}}, nil
}

func relationProp(ids []string) *notionapi.RelationProperty {
	relations := make([]notionapi.Relation, 0, len(ids))
	for _, id := range ids {
		relations = append(relations, notionapi.Relation{ID: notionapi.PageID(id)})
	}
	return &notionapi.RelationProperty{Relation: relations}
}

// ParseDate parses the two date forms Notion accepts
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is neither YYYY-MM-DD nor RFC 3339", ErrInvalidDate, s)
	}
	return t, nil
}
