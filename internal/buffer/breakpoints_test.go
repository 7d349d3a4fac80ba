package buffer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableOf(pairs ...[2]int) *Breakpoints {
	bp := &Breakpoints{}
	for _, p := range pairs {
		bp.Add(p[0], p[1])
	}
	return bp
}

func TestExtraWidthUpTo(t *testing.T) {
	sparse := tableOf([2]int{1, 1}, [2]int{5, 4})
	dense := tableOf([2]int{1, 1}, [2]int{3, 2}, [2]int{6, 4}, [2]int{8, 5})

	tests := []struct {
		name  string
		table *Breakpoints
		index int
		bound Boundary
		want  int
	}{
		{"between entries inclusive", sparse, 3, Inclusive, 1},
		{"between entries exclusive", sparse, 3, Exclusive, 1},
		{"on entry inclusive", dense, 6, Inclusive, 4},
		{"on entry exclusive", dense, 6, Exclusive, 2},
		{"after entry exclusive", dense, 7, Exclusive, 4},
		{"first entry exclusive", dense, 1, Exclusive, 0},
		{"first entry inclusive", dense, 1, Inclusive, 1},
		{"before all", dense, 0, Inclusive, 0},
		{"past all", dense, 100, Inclusive, 5},
		{"empty table", &Breakpoints{}, 4, Inclusive, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.table.ExtraWidthUpTo(tt.index, tt.bound))
		})
	}
}

// Inclusive and Exclusive differ exactly when an entry sits at the index.
func TestExtraWidthUpTo_BoundaryAgreement(t *testing.T) {
	bp := tableOf([2]int{1, 1}, [2]int{3, 2}, [2]int{6, 4}, [2]int{8, 5})
	onEntry := map[int]bool{1: true, 3: true, 6: true, 8: true}

	for i := 0; i <= 10; i++ {
		incl := bp.ExtraWidthUpTo(i, Inclusive)
		excl := bp.ExtraWidthUpTo(i, Exclusive)
		if onEntry[i] {
			assert.NotEqual(t, incl, excl, "index %d", i)
		} else {
			assert.Equal(t, incl, excl, "index %d", i)
		}
	}
}

func TestAdd(t *testing.T) {
	bp := tableOf([2]int{5, 4}, [2]int{1, 1})
	assert.Equal(t, []Breakpoint{{1, 1}, {5, 4}}, bp.Entries(), "out-of-order adds stay sorted")

	bp.Add(5, 7)
	assert.Equal(t, []Breakpoint{{1, 1}, {5, 7}}, bp.Entries(), "adding an existing index overwrites")

	bp.Add(3, 2)
	assert.Equal(t, []Breakpoint{{1, 1}, {3, 2}, {5, 7}}, bp.Entries())
	assert.Equal(t, 3, bp.Len())
	assert.Equal(t, 7, bp.Total())
}

func TestNewBreakpoints(t *testing.T) {
	bp := NewBreakpoints([]rune("a好b好"), 4)
	assert.Equal(t, []Breakpoint{{1, 1}, {3, 2}}, bp.Entries())
	assert.Equal(t, 2, bp.Total())

	assert.Zero(t, NewBreakpoints([]rune("plain ascii"), 4).Len())

	// Tabs and zero-width marks are recorded too.
	bp = NewBreakpoints([]rune("\te\u0301"), 4)
	assert.Equal(t, []Breakpoint{{0, 3}, {2, 2}}, bp.Entries())
}

func TestEntries_ReturnsCopy(t *testing.T) {
	bp := NewBreakpoints([]rune("好"), 4)
	entries := bp.Entries()
	entries[0].Extra = 99
	assert.Equal(t, 1, bp.Total())
}

func TestIncrementalMatchesRebuild(t *testing.T) {
	alphabet := []rune{'a', 'b', ' ', '好', '😀', '\t', '\u0301', 'ｱ'}
	rng := rand.New(rand.NewSource(7))
	l := NewLine("", 4)

	for step := 0; step < 2000; step++ {
		if l.Len() == 0 || rng.Intn(3) > 0 {
			n := 1 + rng.Intn(4)
			runes := make([]rune, n)
			for i := range runes {
				runes[i] = alphabet[rng.Intn(len(alphabet))]
			}
			at := rng.Intn(l.Len() + 1)
			require.NoError(t, l.Insert(at, string(runes)))
		} else {
			start := rng.Intn(l.Len())
			end := start + rng.Intn(l.Len()-start) + 1
			require.NoError(t, l.Remove(ExclusiveSpan(start, end)))
		}

		require.True(t, l.consistent(), "step %d: table diverged for %q", step, l.String())
		require.Equal(t, sumCells(l), l.DisplayWidth(), "step %d", step)
	}
}

func TestIncrementalMatchesRebuild_SplitAndAppend(t *testing.T) {
	l := NewLine("好a\tb😀c", 4)
	tail, err := l.SplitOff(3)
	require.NoError(t, err)
	assert.True(t, l.consistent())
	assert.True(t, tail.consistent())

	l.Append(tail)
	assert.True(t, l.consistent())
	assert.Equal(t, "好a\tb😀c", l.String())
}

func sumCells(l *Line) int {
	n := 0
	for _, r := range l.text {
		n += cellWidth(r, l.tabWidth)
	}
	return n
}
