// Package query builds document-listing queries from raw request parameters.
// Incoming keys of the form field[op]=value become typed filters validated
// against a per-resource Schema, so no client-controlled text ever reaches
// the SQL layer.
package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Op string

const (
	OpEq  Op = "eq"
	OpGte Op = "gte"
	OpGt  Op = "gt"
	OpLte Op = "lte"
	OpLt  Op = "lt"
)

// Kind declares how a field's raw string values are typed before binding.
// Text is the zero value: the string is bound as-is, so numeric-looking
// input against a text column stays an ordinary equality filter.
type Kind int

const (
	Text Kind = iota
	Number
	Boolean
	Timestamp
)

const (
	DefaultPage  = 1
	DefaultLimit = 10

	defaultSortColumn = "created_at"
)

// Field binds an exposed parameter name to its backing column and value kind.
type Field struct {
	Column string
	Kind   Kind
}

// Schema maps exposed parameter names to fields. Anything not listed is
// dropped during parsing.
type Schema map[string]Field

type Filter struct {
	Column string
	Op     Op
	Value  any
}

type SortField struct {
	Column string
	Desc   bool
}

type Options struct {
	Filters []Filter
	Sorts   []SortField
	Fields  []string
	Page    int
	Limit   int
}

var reservedParams = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

var rangeOps = map[string]Op{
	"gte": OpGte,
	"gt":  OpGt,
	"lte": OpLte,
	"lt":  OpLt,
}

func Parse(values url.Values, schema Schema) Options {
	opts := Options{
		Page:  parsePositiveInt(values.Get("page"), DefaultPage),
		Limit: parsePositiveInt(values.Get("limit"), DefaultLimit),
	}

	for key, vals := range values {
		if reservedParams[key] || len(vals) == 0 {
			continue
		}
		name, op, ok := splitKey(key)
		if !ok {
			continue
		}
		field, ok := schema[name]
		if !ok {
			continue
		}
		opts.Filters = append(opts.Filters, Filter{
			Column: field.Column,
			Op:     op,
			Value:  typedValue(vals[0], field.Kind),
		})
	}

	opts.Sorts = parseSorts(values.Get("sort"), schema)
	opts.Fields = parseFields(values.Get("fields"), schema)

	return opts
}

// splitKey decomposes "price[gte]" into ("price", OpGte). Plain keys are
// equality filters; bracketed operators outside the allow-list invalidate
// the whole key.
func splitKey(key string) (string, Op, bool) {
	open := strings.Index(key, "[")
	if open < 0 {
		return key, OpEq, true
	}
	if !strings.HasSuffix(key, "]") {
		return "", OpEq, false
	}
	op, ok := rangeOps[key[open+1:len(key)-1]]
	if !ok {
		return "", OpEq, false
	}
	return key[:open], op, true
}

func parseSorts(raw string, schema Schema) []SortField {
	var sorts []SortField
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimPrefix(part, "-")
		field, ok := schema[name]
		if !ok {
			continue
		}
		sorts = append(sorts, SortField{Column: field.Column, Desc: desc})
	}
	if len(sorts) == 0 {
		sorts = []SortField{{Column: defaultSortColumn, Desc: true}}
	}
	return sorts
}

func parseFields(raw string, schema Schema) []string {
	if raw == "" {
		return nil
	}
	columns := []string{"id"}
	valid := false
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "id" {
			valid = true
			continue
		}
		field, ok := schema[name]
		if !ok || field.Column == "id" {
			continue
		}
		valid = true
		columns = append(columns, field.Column)
	}
	if !valid {
		return nil
	}
	return columns
}

func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

var timestampLayouts = []string{time.RFC3339, "2006-01-02"}

// typedValue converts the raw string per the field's declared kind so the
// store compares numbers, booleans and timestamps natively. Values that do
// not parse fall back to the raw string.
func typedValue(raw string, kind Kind) any {
	switch kind {
	case Number:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case Boolean:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	case Timestamp:
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, raw); err == nil {
				return ts
			}
		}
	}
	return raw
}

func (o Options) Skip() int {
	return (o.Page - 1) * o.Limit
}

// Apply lowers the parsed options onto a gorm query.
func (o Options) Apply(db *gorm.DB) *gorm.DB {
	for _, f := range o.Filters {
		switch f.Op {
		case OpGte:
			db = db.Where(f.Column+" >= ?", f.Value)
		case OpGt:
			db = db.Where(f.Column+" > ?", f.Value)
		case OpLte:
			db = db.Where(f.Column+" <= ?", f.Value)
		case OpLt:
			db = db.Where(f.Column+" < ?", f.Value)
		default:
			db = db.Where(f.Column+" = ?", f.Value)
		}
	}

	for _, s := range o.Sorts {
		if s.Desc {
			db = db.Order(s.Column + " DESC")
		} else {
			db = db.Order(s.Column + " ASC")
		}
	}

	if len(o.Fields) > 0 {
		db = db.Select(o.Fields)
	}

	return db.Offset(o.Skip()).Limit(o.Limit)
}
