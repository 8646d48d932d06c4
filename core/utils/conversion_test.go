package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type named struct{}

func (named) String() string { return "named" }

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"Nil", nil, ""},
		{"String", "abc", "abc"},
		{"Bytes", []byte("xyz"), "xyz"},
		{"Stringer", named{}, "named"},
		{"Int", 42, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToString(tt.in))
		})
	}
}

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   float64
		wantOK bool
	}{
		{"Float", 1.5, 1.5, true},
		{"Int64", int64(7), 7, true},
		{"Uint8", uint8(3), 3, true},
		{"DecimalBytes", []byte("12.50"), 12.5, true},
		{"PaddedString", " 3 ", 3, true},
		{"NotNumeric", "abc", 0, false},
		{"Bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat64(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToTime(t *testing.T) {
	want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	got, ok := ToTime("2024-03-09")
	assert.True(t, ok)
	assert.True(t, want.Equal(got))

	got, ok = ToTime([]byte("2024-03-09 13:45:00"))
	assert.True(t, ok)
	assert.Equal(t, 13, got.Hour())

	_, ok = ToTime("not a date")
	assert.False(t, ok)

	_, ok = ToTime(42)
	assert.False(t, ok)
}
