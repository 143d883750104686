package precise

import (
	"math/big"
	"math/rand"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestNewRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 7, 1_000_000, 18_446_744_073_709_551_615} {
		n, err := New(sdkmath.NewIntFromUint64(v))
		require.NoError(t, err)
		out, err := n.ToImprecise()
		require.NoError(t, err)
		require.Equal(t, sdkmath.NewIntFromUint64(v), out)
	}
}

func TestNewRejectsNegative(t *testing.T) {
	_, err := New(sdkmath.NewInt(-1))
	require.ErrorIs(t, err, ErrUnderflow)
}

func TestNewRejectsOverflow(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 250)
	_, err := NewFromBigInt(huge)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestZeroValueUsable(t *testing.T) {
	var zero Number
	require.True(t, zero.IsZero())
	sum, err := zero.Add(NewFromUint64(3))
	require.NoError(t, err)
	require.True(t, sum.Equal(NewFromUint64(3)))
}

func TestSubUnderflow(t *testing.T) {
	_, err := NewFromUint64(1).Sub(NewFromUint64(2))
	require.ErrorIs(t, err, ErrUnderflow)
}

func TestDivByZero(t *testing.T) {
	_, err := NewFromUint64(1).Div(NewFromUint64(0))
	require.ErrorIs(t, err, ErrDivideByZero)
}

func TestMulDiv(t *testing.T) {
	half, err := NewFromUint64(1).Div(NewFromUint64(2))
	require.NoError(t, err)
	product, err := half.Mul(NewFromUint64(10))
	require.NoError(t, err)
	require.True(t, product.Equal(NewFromUint64(5)))
}

func TestDivTruncatesDown(t *testing.T) {
	// 1/3 * 3 loses the repeating tail; the result must come in under 1,
	// never over.
	third, err := NewFromUint64(1).Div(NewFromUint64(3))
	require.NoError(t, err)
	back, err := third.Mul(NewFromUint64(3))
	require.NoError(t, err)
	require.True(t, back.LTE(NewFromUint64(1)))
	require.True(t, back.AlmostEqual(NewFromUint64(1), mustDiv(t, 1, 1_000_000)))
}

func mustDiv(t *testing.T, num, den uint64) Number {
	t.Helper()
	q, err := NewFromUint64(num).Div(NewFromUint64(den))
	require.NoError(t, err)
	return q
}

func TestSqrtExact(t *testing.T) {
	cases := map[uint64]uint64{0: 0, 1: 1, 4: 2, 9: 3, 256: 16, 1_000_000: 1000}
	for in, want := range cases {
		root, err := NewFromUint64(in).Sqrt()
		require.NoError(t, err)
		require.True(t, root.Equal(NewFromUint64(want)), "sqrt(%d): got %s", in, root)
	}
}

func TestSqrtFractional(t *testing.T) {
	// sqrt(2) to twelve places.
	root, err := NewFromUint64(2).Sqrt()
	require.NoError(t, err)
	require.Equal(t, "1.414213562373", root.String())
}

func TestSqrtNeverOverestimates(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		n := NewFromUint64(r.Uint64())
		root, err := n.Sqrt()
		require.NoError(t, err)
		square, err := root.Mul(root)
		require.NoError(t, err)
		require.True(t, square.LTE(n), "sqrt(%s)^2 = %s exceeds input", n, square)
	}
}

func FuzzSqrtBounds(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(1))
	f.Add(uint64(2))
	f.Add(uint64(1<<63 + 1))
	f.Fuzz(func(t *testing.T, v uint64) {
		n := NewFromUint64(v)
		root, err := n.Sqrt()
		require.NoError(t, err)
		square, err := root.Mul(root)
		require.NoError(t, err)
		require.True(t, square.LTE(n))
	})
}

func TestFloorCeiling(t *testing.T) {
	q := mustDiv(t, 7, 2) // 3.5
	require.True(t, q.Floor().Equal(NewFromUint64(3)))
	c, err := q.Ceiling()
	require.NoError(t, err)
	require.True(t, c.Equal(NewFromUint64(4)))

	// Whole values are their own floor and ceiling.
	whole := NewFromUint64(11)
	require.True(t, whole.Floor().Equal(whole))
	c, err = whole.Ceiling()
	require.NoError(t, err)
	require.True(t, c.Equal(whole))
}

func TestCeilingGTEFloor(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		q := mustDiv(t, r.Uint64()%1_000_000+1, r.Uint64()%1000+1)
		c, err := q.Ceiling()
		require.NoError(t, err)
		require.True(t, c.GTE(q.Floor()))
	}
}

func TestToImpreciseRounds(t *testing.T) {
	// 5/2 rounds half up to 3, 9/4 rounds down to 2.
	v, err := mustDiv(t, 5, 2).ToImprecise()
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(3), v)
	v, err = mustDiv(t, 9, 4).ToImprecise()
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(2), v)
}

func TestComparisons(t *testing.T) {
	two, three := NewFromUint64(2), NewFromUint64(3)
	require.True(t, two.LT(three))
	require.True(t, two.LTE(two))
	require.True(t, three.GT(two))
	require.True(t, three.GTE(three))
	require.False(t, two.Equal(three))
}

func TestConvergeStopsOnFixpoint(t *testing.T) {
	calls := 0
	out, err := Converge(big.NewInt(100), 32, func(current *big.Int) (*big.Int, error) {
		calls++
		next := new(big.Int).Quo(current, big.NewInt(2))
		if next.Cmp(big.NewInt(1)) < 0 {
			next.SetInt64(1)
		}
		return next, nil
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), out.Int64())
	require.Less(t, calls, 32)
}

func TestConvergeReturnsLastEstimateAtCap(t *testing.T) {
	// A step that never settles: the cap result is the final estimate.
	flip := big.NewInt(10)
	flop := big.NewInt(11)
	out, err := Converge(flip, 5, func(current *big.Int) (*big.Int, error) {
		if current.Cmp(flip) == 0 {
			return new(big.Int).Set(flop), nil
		}
		return new(big.Int).Set(flip), nil
	})
	require.NoError(t, err)
	require.Contains(t, []int64{10, 11}, out.Int64())
}
