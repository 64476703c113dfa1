package importdefs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"tab", "a\tb", "a b"},
		{"newline", "a\nb", "a·b"},
		{"carriage return", "a\r\nb", "a··b"},
		{"vertical tab and form feed", "a\vb\fc", "a·b·c"},
		{"nul and del", "a\x00b\x7fc", "a·b·c"},
		{"unicode kept", "naïve café", "naïve café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanupText(tt.in))
		})
	}
}

func TestCleanupID(t *testing.T) {
	assert.Equal(t, "abc", CleanupID("a b\tc"))
	assert.Equal(t, "a·b", CleanupID("a\nb"))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "true", FormatValue(true))
	assert.Equal(t, "false", FormatValue(false))
	assert.Equal(t, "42", FormatValue(42))
	assert.Equal(t, "7", FormatValue(int64(7)))
	assert.Equal(t, "0.5", FormatValue(0.5))
	assert.Equal(t, "a;b·c", FormatValue([]string{"a", "b\nc"}))
	assert.Equal(t, "x y", FormatValue("x\ty"))
	assert.Equal(t, "1s", FormatValue(time.Second))
	assert.Equal(t, "3", FormatValue(uint8(3)))
}

func TestFormatRow(t *testing.T) {
	got := FormatRow([]any{"n1", 3, true})
	assert.Equal(t, []string{"n1", "3", "true"}, got)
}

func TestSimpleRelationship(t *testing.T) {
	r := NewSimpleRelationship("Node", "a", "KNOWS", "Node", "b")

	assert.Equal(t, RelID{"Node", "a", "KNOWS", "Node", "b"}, r.RelID())
	assert.Equal(t, []any{"a", "b", "KNOWS"}, r.CSVRow())
	assert.Equal(t, "KNOWS_Node_to_Node", r.RelID().FileKey())

	merged, err := r.Merge(NewSimpleRelationship("Node", "a", "KNOWS", "Node", "b"))
	require.NoError(t, err)
	assert.Equal(t, r, merged)

	_, err = r.Merge(NewSimpleRelationship("Node", "a", "KNOWS", "Node", "c"))
	assert.Error(t, err)
}

func TestSimpleHeaderRow(t *testing.T) {
	assert.Equal(t,
		[]string{":START_ID(Paper)", ":END_ID(Keyword)", ":TYPE"},
		SimpleHeaderRow("HAS", "Paper", "Keyword"))
}

func TestRelIDCompare(t *testing.T) {
	a := RelID{"A", "1", "R", "B", "2"}
	b := RelID{"A", "1", "R", "B", "3"}
	c := RelID{"A", "2", "R", "B", "1"}

	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, -1, b.Compare(c))
}
