package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func ids(records []gjson.Result) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.Get("id").Int())
	}
	return out
}

func TestList_EnvelopeShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want []int64
	}{
		{"bare array", `[{"id":1},{"id":2}]`, []int64{1, 2}},
		{"content wrapper", `{"content":[{"id":3}],"totalElements":1}`, []int64{3}},
		{"data wrapper", `{"data":[{"id":4},{"id":5}]}`, []int64{4, 5}},
		{"any key", `{"count":2,"products":[{"id":6},{"id":7}]}`, []int64{6, 7}},
		{"content wins over data", `{"data":[{"id":1}],"content":[{"id":2}]}`, []int64{2}},
		{"data wins over other keys", `{"items":[{"id":1}],"data":[{"id":2}]}`, []int64{2}},
		{"first array in document order", `{"b":[{"id":8}],"a":[{"id":9}]}`, []int64{8}},
		{"content not an array", `{"content":{"id":1},"rows":[{"id":10}]}`, []int64{10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(List([]byte(tc.body))))
		})
	}
}

func TestList_UnrecognisedShapesAreEmpty(t *testing.T) {
	for _, body := range []string{
		``,
		`null`,
		`42`,
		`"products"`,
		`{}`,
		`{"message":"ok","count":0}`,
		`{not json`,
	} {
		assert.Empty(t, List([]byte(body)), "body %q", body)
	}
}

func TestList_EmptyArrayIsEmpty(t *testing.T) {
	assert.Empty(t, List([]byte(`{"content":[]}`)))
	assert.Empty(t, List([]byte(`[]`)))
}

func TestList_ReturnsElementsUnchanged(t *testing.T) {
	body := `{"data":[{"id":1,"name":"Bolt","extra":{"x":[1,2]}}]}`
	records := List([]byte(body))
	require.Len(t, records, 1)
	assert.JSONEq(t, `{"id":1,"name":"Bolt","extra":{"x":[1,2]}}`, records[0].Raw)
}

func TestDecode_SkipsNonObjectRecords(t *testing.T) {
	body := `[{"id":1,"name":"A"}, 7, "x", null, {"id":2,"name":"B"}]`
	got := Warehouses([]byte(body))
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "B", got[1].Name)
}
