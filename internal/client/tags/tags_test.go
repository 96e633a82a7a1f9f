package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_AddRemove(t *testing.T) {
	s := NewSet()
	require.True(t, s.Add("a"))
	require.True(t, s.Add("b"))
	require.True(t, s.Remove("a"))

	assert.Equal(t, []string{"b"}, s.Snapshot())
	assert.Equal(t, `["b"]`, s.JSON())
}

func TestSet_AddIgnoresEmptyAndDuplicates(t *testing.T) {
	s := NewSet("x")
	assert.False(t, s.Add(""))
	assert.False(t, s.Add("x"))
	assert.True(t, s.Add("y"))
	assert.Equal(t, []string{"x", "y"}, s.Snapshot())
	assert.Equal(t, 2, s.Len())
}

func TestSet_RemoveIsIdempotent(t *testing.T) {
	s := NewSet("a")
	assert.True(t, s.Remove("a"))
	assert.False(t, s.Remove("a"))
	assert.False(t, s.Remove("never"))
	assert.Equal(t, 0, s.Len())
}

func TestSet_SnapshotIsACopy(t *testing.T) {
	s := NewSet("a", "b")
	snap := s.Snapshot()
	snap[0] = "mutated"
	s.Add("c")

	assert.Equal(t, []string{"mutated", "b"}, snap)
	assert.Equal(t, []string{"a", "b", "c"}, s.Snapshot())
}

func TestSet_EmptyJSON(t *testing.T) {
	s := NewSet()
	assert.Equal(t, "[]", s.JSON())
	s.Add("a")
	s.Clear()
	assert.Equal(t, "[]", s.JSON())
	assert.Zero(t, s.Len())
}

func TestEditor_CommitRules(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "enter commits", input: "cats\n", want: []string{"cats"}},
		{name: "comma commits", input: "a,b,", want: []string{"a", "b"}},
		{name: "carriage return commits", input: "a\r", want: []string{"a"}},
		{name: "trimmed", input: "  pets  ,", want: []string{"pets"}},
		{name: "blank ignored", input: "   ,\n,", want: []string{}},
		{name: "duplicate ignored", input: "a,a,", want: []string{"a"}},
		{name: "uncommitted input is not a tag", input: "a,wip", want: []string{"a"}},
		{name: "inner space kept", input: "summer trip\n", want: []string{"summer trip"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := NewSet()
			NewEditor(set).Type(tt.input)
			assert.Equal(t, tt.want, set.Snapshot())
		})
	}
}

func TestEditor_PendingInputCommitsLater(t *testing.T) {
	set := NewSet()
	e := NewEditor(set)

	e.Type("trip")
	assert.Zero(t, set.Len())

	e.Key('\n')
	assert.Equal(t, []string{"trip"}, set.Snapshot())
}
