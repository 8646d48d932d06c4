package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyOf(t *testing.T) {
	t.Run("NullAndEmptyRenderAlike", func(t *testing.T) {
		a := New(Pair("id", nil))
		b := New(Pair("id", ""))
		assert.Equal(t, KeyOf(a, []string{"id"}), KeyOf(b, []string{"id"}))
	})

	t.Run("NumberAndTextRenderAlike", func(t *testing.T) {
		a := New(Pair("id", 10))
		b := New(Pair("id", "10"))
		assert.Equal(t, KeyOf(a, []string{"id"}), KeyOf(b, []string{"id"}))
	})

	t.Run("PartsDoNotRunTogether", func(t *testing.T) {
		a := New(Pair("x", "1"), Pair("y", "23"))
		b := New(Pair("x", "12"), Pair("y", "3"))
		fields := []string{"x", "y"}
		assert.NotEqual(t, KeyOf(a, fields), KeyOf(b, fields))
	})

	t.Run("Parts", func(t *testing.T) {
		r := New(Pair("x", "a:b"), Pair("y", nil), Pair("z", 7))
		key := KeyOf(r, []string{"x", "y", "z"})
		assert.Equal(t, []string{"a:b", "", "7"}, key.Parts())
		assert.Equal(t, "a:b||7", key.String())
	})
}

func TestLabel(t *testing.T) {
	fields := []string{"region", "id"}

	assert.Equal(t, "eu,7", Label(New(Pair("region", "eu"), Pair("id", 7)), fields))
	assert.Equal(t, "7", Label(New(Pair("region", ""), Pair("id", 7)), fields))
	assert.Equal(t, "", Label(New(Pair("region", nil), Pair("id", "")), fields))
}

func TestBuildIndex_LastWriteWins(t *testing.T) {
	records := []Record{
		New(Pair("id", 1), Pair("name", "first")),
		New(Pair("id", 2), Pair("name", "other")),
		New(Pair("id", 1), Pair("name", "second")),
	}

	idx := BuildIndex(records, []string{"id"})

	assert.Equal(t, 2, idx.Len(), "colliding keys count once")
	assert.Equal(t, 3, idx.Read())

	got, ok := idx.Get(KeyOf(records[0], []string{"id"}))
	require.True(t, ok)
	assert.Equal(t, "second", got.Get("name").Str())

	kept := idx.Records()
	require.Len(t, kept, 2)
	assert.Equal(t, "second", kept[0].Get("name").Str(), "key keeps its first-seen position")
	assert.Equal(t, "other", kept[1].Get("name").Str())
}

func TestSetOperations(t *testing.T) {
	fields := []string{"id"}
	src := BuildIndex([]Record{
		New(Pair("id", 1), Pair("v", "a")),
		New(Pair("id", 2), Pair("v", "b")),
		New(Pair("id", 3), Pair("v", "c")),
	}, fields)
	dst := BuildIndex([]Record{
		New(Pair("id", 3), Pair("v", "changed")),
		New(Pair("id", 4), Pair("v", "d")),
		New(Pair("id", 2), Pair("v", "b")),
	}, fields)

	sourceOnly := OnlyIn(src, dst)
	require.Len(t, sourceOnly, 1)
	assert.Equal(t, "1", sourceOnly[0].Get("id").Text())

	targetOnly := OnlyIn(dst, src)
	require.Len(t, targetOnly, 1)
	assert.Equal(t, "4", targetOnly[0].Get("id").Text())

	both := IntersectionKeys(src, dst)
	require.Len(t, both, 2)
	assert.Equal(t, []string{"2"}, both[0].Parts())
	assert.Equal(t, []string{"3"}, both[1].Parts())

	for _, key := range both {
		assert.True(t, dst.Has(key))
	}
	for _, r := range sourceOnly {
		assert.False(t, dst.Has(KeyOf(r, fields)))
	}

	assert.Equal(t, src.Len(), len(both)+len(sourceOnly))
	assert.Equal(t, dst.Len(), len(both)+len(targetOnly))
}

func TestSetOperations_Empty(t *testing.T) {
	fields := []string{"id"}
	src := BuildIndex([]Record{New(Pair("id", 1))}, fields)
	dst := BuildIndex(nil, fields)

	assert.Len(t, OnlyIn(src, dst), 1)
	assert.Empty(t, OnlyIn(dst, src))
	assert.Empty(t, IntersectionKeys(src, dst))
}
