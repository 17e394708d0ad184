package dice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/creature-battle/internal/game/dice"
)

func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{Expression: "2d3+1", Dice: []int{2, 3}, Modifier: 1}
	assert.Equal(t, 6, r.Total())
}

func TestRollResult_String(t *testing.T) {
	r := dice.RollResult{Expression: "1d4+1", Dice: []int{3}, Modifier: 1}
	assert.Equal(t, "1d4+1=4 (3)", r.String())
	assert.Equal(t, "2=2", dice.RollResult{Expression: "2", Modifier: 2}.String())
}

func TestRollResult_String_PanicsOnEmptyExpression(t *testing.T) {
	r := dice.RollResult{Dice: []int{4}}
	assert.Panics(t, func() { _ = r.String() })
}

func TestParse_Forms(t *testing.T) {
	cases := []struct {
		in       string
		min, max int
		constant bool
	}{
		{"3", 3, 3, true},
		{"2-5", 2, 5, false},
		{"d4", 1, 4, false},
		{"1d4+1", 2, 5, false},
		{"2d3-1", 1, 5, false},
		{"-2", -2, -2, true},
	}
	for _, tc := range cases {
		e, err := dice.Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.min, e.Min, tc.in)
		assert.Equal(t, tc.max, e.Max, tc.in)
		assert.Equal(t, tc.constant, e.Constant(), tc.in)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"", "x", "5-2", "0d6", "1d1", "1d6+x", "a-3"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, "expected error for %q", in)
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("bogus") })
}

func TestRoll_WithinBounds_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(0, 10).Draw(rt, "lo")
		hi := rapid.IntRange(lo, lo+10).Draw(rt, "hi")
		seed := rapid.Uint64().Draw(rt, "seed")
		e, err := dice.Parse(formatRange(lo, hi))
		require.NoError(rt, err)
		got := dice.Roll(e, dice.NewStream(seed)).Total()
		assert.GreaterOrEqual(rt, got, lo)
		assert.LessOrEqual(rt, got, hi)
	})
}

func formatRange(lo, hi int) string {
	return strconv.Itoa(lo) + "-" + strconv.Itoa(hi)
}

func TestRoll_ConstantConsumesNoDraws(t *testing.T) {
	s := dice.NewStream(7)
	r := dice.Roll(dice.MustParse("4"), s)
	assert.Equal(t, 4, r.Total())
	assert.Equal(t, uint64(0), s.Cursor())
}

func TestStream_Deterministic_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		n := rapid.IntRange(1, 50).Draw(rt, "draws")
		a, b := dice.NewStream(seed), dice.NewStream(seed)
		for i := 0; i < n; i++ {
			require.Equal(rt, a.Intn(100), b.Intn(100))
		}
		assert.Equal(rt, uint64(n), a.Cursor())
		assert.Equal(rt, a.Snapshot(), b.Snapshot())
	})
}

func TestStream_IntRange(t *testing.T) {
	s := dice.NewStream(42)
	for i := 0; i < 500; i++ {
		v := s.IntRange(85, 100)
		require.GreaterOrEqual(t, v, 85)
		require.LessOrEqual(t, v, 100)
	}
	assert.Panics(t, func() { s.IntRange(3, 2) })
	assert.Panics(t, func() { s.Intn(0) })
}

func TestStream_SnapshotChangesOnDraw(t *testing.T) {
	s := dice.NewStream(1)
	before := s.Snapshot()
	s.Intn(10)
	assert.NotEqual(t, before, s.Snapshot())
}

func TestCosmetic_Intn_InRange(t *testing.T) {
	src := dice.Cosmetic
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
	assert.Panics(t, func() { src.Intn(0) })
}

func TestNewSeed_NonZero(t *testing.T) {
	seen := map[uint64]bool{}
	for i := 0; i < 16; i++ {
		s := dice.NewSeed()
		assert.NotZero(t, s)
		seen[s] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestRoller_LogsDraws(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := dice.NewLoggedRoller(dice.NewStream(3), zap.New(core))
	r.Intn(4)
	_, err := r.RollExpr("1d4+1")
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("rng draw").Len())
	assert.Equal(t, 1, logs.FilterMessage("dice roll").Len())
}
