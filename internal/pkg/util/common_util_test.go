package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIDs(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []uint64
		ok   bool
	}{
		{"single", "3", []uint64{3}, true},
		{"dedupe keeps order", "5, 2,5,7", []uint64{5, 2, 7}, true},
		{"trailing comma", "1,2,", []uint64{1, 2}, true},
		{"empty", "  ", nil, false},
		{"only commas", ",,", nil, false},
		{"not a number", "1,abc", nil, false},
		{"zero", "0", nil, false},
		{"negative", "-1", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ids, ok := ParseIDs(tc.raw)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, ids)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, uint64(42), id)

	_, ok = ParseID("0")
	assert.False(t, ok)
	_, ok = ParseID("x1")
	assert.False(t, ok)
}

func TestRuneLen(t *testing.T) {
	assert.Equal(t, 4, RuneLen("知乎问答"))
	assert.Equal(t, 3, RuneLen("abc"))
}

func TestNewPager(t *testing.T) {
	p := NewPager("3", 10)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.Limit())
	assert.Equal(t, 20, p.Offset())

	p = NewPager("", 10)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.Offset())

	p = NewPager("-2", 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)

	p = NewPager("9223372036854775807", 20)
	assert.Equal(t, math.MaxInt32/20, p.Page)
	assert.Greater(t, p.Offset(), 0)

	p = NewPager("99999999999999999999999", 20)
	assert.Equal(t, math.MaxInt32/20, p.Page)
	assert.Greater(t, p.Offset(), 0)

	p = NewPager("-99999999999999999999999", 20)
	assert.Equal(t, 1, p.Page)

	assert.Equal(t, 0, NewPager("1", 10).Pages(0))
	assert.Equal(t, 1, NewPager("1", 10).Pages(10))
	assert.Equal(t, 2, NewPager("1", 10).Pages(11))
}

func TestToSimplifiedTrims(t *testing.T) {
	assert.Equal(t, "", ToSimplified("   "))
	assert.Equal(t, "golang", ToSimplified("  golang "))
}
