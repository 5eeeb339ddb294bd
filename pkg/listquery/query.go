// Package listquery maps structured list queries to and from URL query
// strings. Decoding is permissive: anything missing or out of range silently
// falls back to the default so a hand-edited URL never produces an error.
// Encoding omits default-valued fields, so two equivalent queries always
// produce the same canonical string.
package listquery

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// All disables a status or channel filter.
	All = "all"

	SortTimeDesc   = "time_desc"
	SortAmountDesc = "amount_desc"
	SortAmountAsc  = "amount_asc"

	DefaultPage     = 1
	DefaultPageSize = 10
)

// PageSizes is the closed set of accepted page sizes.
var PageSizes = []int{10, 20, 50}

// Sorts is the closed set of accepted sort keys.
var Sorts = []string{SortTimeDesc, SortAmountDesc, SortAmountAsc}

// Query is the effective list query after defaults are filled in.
type Query struct {
	Term     string
	Status   string
	Channel  string
	Page     int
	PageSize int
	Sort     string
}

// Codec validates status and channel values against a closed enumeration.
// Channels may be nil for entities without a channel dimension.
type Codec struct {
	Statuses []string
	Channels []string
}

// Decode builds a Query from raw URL parameters, falling back to defaults
// for every missing or invalid field.
func (c Codec) Decode(params url.Values) Query {
	q := Query{
		Term:     strings.TrimSpace(params.Get("q")),
		Status:   All,
		Channel:  All,
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		Sort:     SortTimeDesc,
	}

	if s := params.Get("status"); contains(c.Statuses, s) {
		q.Status = s
	}
	if ch := params.Get("channel"); contains(c.Channels, ch) {
		q.Channel = ch
	}
	if page, err := strconv.Atoi(params.Get("page")); err == nil && page >= 1 {
		q.Page = page
	}
	if size, err := strconv.Atoi(params.Get("pageSize")); err == nil && containsInt(PageSizes, size) {
		q.PageSize = size
	}
	if sort := params.Get("sort"); contains(Sorts, sort) {
		q.Sort = sort
	}
	return q
}

// Encode writes only the fields that differ from their defaults.
func (c Codec) Encode(q Query) url.Values {
	params := url.Values{}
	if term := strings.TrimSpace(q.Term); term != "" {
		params.Set("q", term)
	}
	if q.Status != "" && q.Status != All {
		params.Set("status", q.Status)
	}
	if q.Channel != "" && q.Channel != All {
		params.Set("channel", q.Channel)
	}
	if q.Page > DefaultPage {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize != 0 && q.PageSize != DefaultPageSize {
		params.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.Sort != "" && q.Sort != SortTimeDesc {
		params.Set("sort", q.Sort)
	}
	return params
}

// String returns the canonical query-string form. url.Values.Encode sorts
// keys, so equivalent queries always serialize identically; the result is
// safe to use as a cache key.
func (c Codec) String(q Query) string {
	return c.Encode(q).Encode()
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(set []int, v int) bool {
	for _, n := range set {
		if n == v {
			return true
		}
	}
	return false
}
