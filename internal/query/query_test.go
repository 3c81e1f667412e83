package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	"title":     {Column: "title"},
	"category":  {Column: "category"},
	"featured":  {Column: "featured", Kind: Boolean},
	"price":     {Column: "price_amount", Kind: Number},
	"city":      {Column: "location_city"},
	"date":      {Column: "date", Kind: Timestamp},
	"createdAt": {Column: "created_at", Kind: Timestamp},
}

func TestParseExcludesReservedParams(t *testing.T) {
	values := url.Values{
		"page":     {"2"},
		"limit":    {"5"},
		"sort":     {"title"},
		"fields":   {"title"},
		"category": {"Music"},
	}

	opts := Parse(values, testSchema)

	require.Len(t, opts.Filters, 1)
	assert.Equal(t, Filter{Column: "category", Op: OpEq, Value: "Music"}, opts.Filters[0])
}

func TestParseRangeOperators(t *testing.T) {
	values := url.Values{
		"price[gte]": {"100"},
		"date[lt]":   {"2026-01-01"},
	}

	opts := Parse(values, testSchema)

	assert.ElementsMatch(t, []Filter{
		{Column: "price_amount", Op: OpGte, Value: int64(100)},
		{Column: "date", Op: OpLt, Value: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}, opts.Filters)
}

func TestParseRejectsUnknownOperators(t *testing.T) {
	values := url.Values{
		"price[regex]": {".*"},
		"price[ne]":    {"100"},
		"price[gte":    {"100"},
	}

	opts := Parse(values, testSchema)

	assert.Empty(t, opts.Filters)
}

func TestParseIgnoresUnknownFields(t *testing.T) {
	values := url.Values{
		"password":      {"x"},
		"organizer":     {"someone"},
		"featured[gte]": {"1"},
		"featured":      {"true"},
	}

	opts := Parse(values, testSchema)

	assert.ElementsMatch(t, []Filter{
		{Column: "featured", Op: OpGte, Value: true},
		{Column: "featured", Op: OpEq, Value: true},
	}, opts.Filters)
}

func TestParseTypedValues(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		raw      string
		expected any
	}{
		{name: "integer", key: "price", raw: "100", expected: int64(100)},
		{name: "float", key: "price", raw: "250.5", expected: 250.5},
		{name: "bool", key: "featured", raw: "true", expected: true},
		{name: "date only", key: "date", raw: "2026-01-01", expected: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", key: "date", raw: "2026-01-01T18:30:00Z", expected: time.Date(2026, 1, 1, 18, 30, 0, 0, time.UTC)},
		{name: "text", key: "city", raw: "Colombo", expected: "Colombo"},
		{name: "numeric text stays text", key: "title", raw: "2024", expected: "2024"},
		{name: "boolean text stays text", key: "city", raw: "true", expected: "true"},
		{name: "unparseable number falls back", key: "price", raw: "cheap", expected: "cheap"},
		{name: "unparseable date falls back", key: "date", raw: "someday", expected: "someday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Parse(url.Values{tt.key: {tt.raw}}, testSchema)
			require.Len(t, opts.Filters, 1)
			assert.Equal(t, tt.expected, opts.Filters[0].Value)
		})
	}
}

func TestParseSort(t *testing.T) {
	opts := Parse(url.Values{"sort": {"-date,title"}}, testSchema)
	assert.Equal(t, []SortField{
		{Column: "date", Desc: true},
		{Column: "title", Desc: false},
	}, opts.Sorts)
}

func TestParseSortDefaultsToCreatedAtDescending(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{name: "absent", values: url.Values{}},
		{name: "unknown fields only", values: url.Values{"sort": {"-__proto__,nope"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Parse(tt.values, testSchema)
			assert.Equal(t, []SortField{{Column: "created_at", Desc: true}}, opts.Sorts)
		})
	}
}

func TestParseFields(t *testing.T) {
	opts := Parse(url.Values{"fields": {"title,category,bogus"}}, testSchema)
	assert.Equal(t, []string{"id", "title", "category"}, opts.Fields)
}

func TestParseFieldsIDOnly(t *testing.T) {
	assert.Equal(t, []string{"id"}, Parse(url.Values{"fields": {"id"}}, testSchema).Fields)
	assert.Equal(t, []string{"id"}, Parse(url.Values{"fields": {"id,bogus"}}, testSchema).Fields)
}

func TestParseFieldsEmptyWhenNoneValid(t *testing.T) {
	assert.Nil(t, Parse(url.Values{"fields": {"bogus"}}, testSchema).Fields)
	assert.Nil(t, Parse(url.Values{}, testSchema).Fields)
}

func TestParsePaginationDefaults(t *testing.T) {
	tests := []struct {
		name          string
		page          string
		limit         string
		expectedPage  int
		expectedLimit int
	}{
		{name: "absent", expectedPage: 1, expectedLimit: 10},
		{name: "valid", page: "3", limit: "20", expectedPage: 3, expectedLimit: 20},
		{name: "non-numeric", page: "abc", limit: "xyz", expectedPage: 1, expectedLimit: 10},
		{name: "zero and negative", page: "0", limit: "-5", expectedPage: 1, expectedLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			if tt.page != "" {
				values.Set("page", tt.page)
			}
			if tt.limit != "" {
				values.Set("limit", tt.limit)
			}

			opts := Parse(values, testSchema)
			assert.Equal(t, tt.expectedPage, opts.Page)
			assert.Equal(t, tt.expectedLimit, opts.Limit)
		})
	}
}

func TestSkipMath(t *testing.T) {
	for page := 1; page <= 5; page++ {
		for _, limit := range []int{1, 10, 25} {
			opts := Options{Page: page, Limit: limit}
			assert.Equal(t, (page-1)*limit, opts.Skip())
		}
	}
}
