package listquery_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayoungbuilds/storeops-admin/pkg/listquery"
)

var codec = listquery.Codec{
	Statuses: []string{"paid", "preparing", "shipped", "cancelled", "refunded"},
	Channels: []string{"Online", "POS"},
}

func TestDecodeDefaults(t *testing.T) {
	q := codec.Decode(url.Values{})
	assert.Equal(t, listquery.Query{
		Term:     "",
		Status:   listquery.All,
		Channel:  listquery.All,
		Page:     1,
		PageSize: 10,
		Sort:     listquery.SortTimeDesc,
	}, q)
}

func TestDecodeInvalidValuesFallBackSilently(t *testing.T) {
	q := codec.Decode(url.Values{
		"status":   []string{"exploded"},
		"channel":  []string{"Fax"},
		"page":     []string{"-3"},
		"pageSize": []string{"37"},
		"sort":     []string{"alphabetical"},
	})
	assert.Equal(t, listquery.All, q.Status)
	assert.Equal(t, listquery.All, q.Channel)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.PageSize)
	assert.Equal(t, listquery.SortTimeDesc, q.Sort)
}

func TestDecodeValidValues(t *testing.T) {
	q := codec.Decode(url.Values{
		"q":        []string{"  kim "},
		"status":   []string{"preparing"},
		"channel":  []string{"POS"},
		"page":     []string{"4"},
		"pageSize": []string{"50"},
		"sort":     []string{"amount_asc"},
	})
	assert.Equal(t, listquery.Query{
		Term:     "kim",
		Status:   "preparing",
		Channel:  "POS",
		Page:     4,
		PageSize: 50,
		Sort:     listquery.SortAmountAsc,
	}, q)
}

func TestEncodeOmitsDefaults(t *testing.T) {
	q := codec.Decode(url.Values{})
	assert.Equal(t, "", codec.String(q), "an all-defaults query encodes to the empty string")

	q.Status = "shipped"
	q.Page = 3
	params := codec.Encode(q)
	assert.Equal(t, "shipped", params.Get("status"))
	assert.Equal(t, "3", params.Get("page"))
	assert.NotContains(t, params, "pageSize")
	assert.NotContains(t, params, "sort")
}

func TestRoundTrip(t *testing.T) {
	for _, q := range []listquery.Query{
		{Term: "", Status: "all", Channel: "all", Page: 1, PageSize: 10, Sort: "time_desc"},
		{Term: "kim", Status: "paid", Channel: "POS", Page: 7, PageSize: 50, Sort: "amount_desc"},
		{Term: "ORD-0001", Status: "all", Channel: "Online", Page: 2, PageSize: 20, Sort: "amount_asc"},
	} {
		decoded := codec.Decode(codec.Encode(q))
		assert.Equal(t, q, decoded)
	}
}

func TestCanonicalStringEquality(t *testing.T) {
	// Raw params with noise and defaults spelled out decode to the same
	// effective query and must share one canonical string.
	a := codec.Decode(url.Values{"status": []string{"paid"}, "page": []string{"1"}, "pageSize": []string{"10"}})
	b := codec.Decode(url.Values{"status": []string{"paid"}, "sort": []string{"bogus"}})
	require.Equal(t, a, b)
	assert.Equal(t, codec.String(a), codec.String(b))
}

func TestPatchResetsPage(t *testing.T) {
	base := listquery.Query{Term: "kim", Status: "all", Channel: "all", Page: 5, PageSize: 10, Sort: "time_desc"}

	status := "paid"
	next := listquery.Patch{Status: &status}.Apply(base)
	assert.Equal(t, "paid", next.Status)
	assert.Equal(t, 1, next.Page, "filter change resets the page")
	assert.Equal(t, "kim", next.Term, "untouched fields survive")

	page := 9
	next = listquery.Patch{Page: &page}.Apply(base)
	assert.Equal(t, 9, next.Page)
	assert.Equal(t, "kim", next.Term)
	assert.Equal(t, base.Status, next.Status, "page-only change resets nothing else")

	size := 50
	next = listquery.Patch{Page: &page, PageSize: &size}.Apply(base)
	assert.Equal(t, 1, next.Page, "page size change wins over an explicit page")
}
