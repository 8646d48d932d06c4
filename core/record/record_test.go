package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_SetAndGet(t *testing.T) {
	var r Record
	r.Set("b", Int(1))
	r.Set("a", String("x"))
	r.Set("b", Int(2))

	assert.Equal(t, []string{"b", "a"}, r.Fields(), "re-set keeps first position")
	assert.True(t, Equal(Int(2), r.Get("b")))
	assert.True(t, r.Get("absent").IsNull())
	assert.False(t, r.Has("absent"))
	assert.Equal(t, 2, r.Len())
}

func TestRecord_Project(t *testing.T) {
	r := New(Pair("id", 1), Pair("name", "Alice"), Pair("extra", true))

	p := r.Project([]string{"name", "id", "missing"})
	assert.Equal(t, []string{"name", "id", "missing"}, p.Fields())
	assert.True(t, p.Has("missing"), "projected fields are always present")
	assert.True(t, p.Get("missing").IsNull())
	assert.False(t, p.Has("extra"))
}
