package fields

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListEquivalentEncodings(t *testing.T) {
	want := []string{"a", "b"}

	// The same logical list in every supported encoding
	assert.Equal(t, want, ParseList([]any{"a", "b"}))
	assert.Equal(t, want, ParseList([]string{"a", "b"}))
	assert.Equal(t, want, ParseList(`["a","b"]`))
	assert.Equal(t, want, ParseList("a,b"))
	assert.Equal(t, want, ParseList("a\nb"))
	assert.Equal(t, want, ParseList(" a , b "))
}

func TestParseListString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"whitespace only", "   ", []string{}},
		{"json array", `["flour", " sugar ", ""]`, []string{"flour", "sugar"}},
		{"json array of numbers", `[1, 2.5]`, []string{"1", "2.5"}},
		{"empty json array", `[]`, []string{}},
		{"comma separated", "flour, sugar,,eggs", []string{"flour", "sugar", "eggs"}},
		{"newline separated", "flour\nsugar\n\neggs", []string{"flour", "sugar", "eggs"}},
		{"mixed delimiters", "flour,sugar\neggs", []string{"flour", "sugar", "eggs"}},
		{"broken json falls through", `["flour", "sugar"`, []string{`["flour"`, `"sugar"`}},
		{"json non-array falls through", `"flour"`, []string{`"flour"`}},
		{"single item", "flour", []string{"flour"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseListString(tt.in))
		})
	}
}

func TestParseListOtherTypes(t *testing.T) {
	assert.Equal(t, []string{}, ParseList(nil))
	assert.Equal(t, []string{}, ParseList(42))
	assert.Equal(t, []string{}, ParseList(map[string]any{"a": 1}))
}

func TestStringListRoundTrip(t *testing.T) {
	l := StringList{"a", "b"}
	v, err := l.Value()
	require.NoError(t, err)

	var got StringList
	require.NoError(t, got.Scan(v))
	assert.Equal(t, l, got)

	// Scanning bytes works too
	var fromBytes StringList
	require.NoError(t, fromBytes.Scan([]byte(`["x"]`)))
	assert.Equal(t, StringList{"x"}, fromBytes)
}

func TestStringListNilMarshalsAsEmptyArray(t *testing.T) {
	var l StringList
	b, err := json.Marshal(l)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	v, err := l.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestFlexListUnmarshal(t *testing.T) {
	var payload struct {
		Ingredients *FlexList `json:"ingredients"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"ingredients": ["a", " b "]}`), &payload))
	assert.Equal(t, []string{"a", "b"}, payload.Ingredients.Values)

	payload.Ingredients = nil
	require.NoError(t, json.Unmarshal([]byte(`{"ingredients": "a,b"}`), &payload))
	assert.Equal(t, []string{"a", "b"}, payload.Ingredients.Values)

	payload.Ingredients = nil
	require.NoError(t, json.Unmarshal([]byte(`{"ingredients": 7}`), &payload))
	assert.Equal(t, []string{}, payload.Ingredients.Values)

	// Absent field leaves the pointer nil
	payload.Ingredients = nil
	require.NoError(t, json.Unmarshal([]byte(`{}`), &payload))
	assert.Nil(t, payload.Ingredients)
}

func TestFlexIntUnmarshal(t *testing.T) {
	var payload struct {
		PrepTime *FlexInt `json:"prepTime"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"prepTime": 30}`), &payload))
	assert.True(t, payload.PrepTime.Valid)
	assert.Equal(t, 30, payload.PrepTime.Value)

	payload.PrepTime = nil
	require.NoError(t, json.Unmarshal([]byte(`{"prepTime": "45"}`), &payload))
	assert.True(t, payload.PrepTime.Valid)
	assert.Equal(t, 45, payload.PrepTime.Value)

	payload.PrepTime = nil
	require.NoError(t, json.Unmarshal([]byte(`{"prepTime": ""}`), &payload))
	assert.True(t, payload.PrepTime.Valid)
	assert.Equal(t, 0, payload.PrepTime.Value)

	payload.PrepTime = nil
	require.NoError(t, json.Unmarshal([]byte(`{"prepTime": "soon"}`), &payload))
	assert.False(t, payload.PrepTime.Valid)
}
