package shot

import (
	"math"
	"testing"

	"github.com/lox/golfforbots/internal/course"
	"github.com/lox/golfforbots/internal/geom"
	"github.com/lox/golfforbots/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func TestNewDistribution(t *testing.T) {
	t.Parallel()

	t.Run("zero aim is rejected", func(t *testing.T) {
		_, err := NewDistribution(Params{Distance: 100}, geom.Pt(0, 0), geom.Pt(0, 0))
		require.ErrorIs(t, err, ErrZeroAim)
	})

	t.Run("aim point is kept", func(t *testing.T) {
		d, err := NewDistribution(Params{Distance: 100}, geom.Pt(10, 10), geom.Pt(10, 500))
		require.NoError(t, err)
		assert.Equal(t, geom.Pt(10, 500), d.AimAt)
		assert.InDelta(t, 110, d.Mean.Y, 1e-9, "carry ignores how far away the aim point is")
	})

	t.Run("mean is along the aim", func(t *testing.T) {
		d, err := NewDistribution(Params{Distance: 100, HorizontalStd: 3, VerticalStd: 2}, geom.Pt(10, 10), geom.Pt(10, 15))
		require.NoError(t, err)
		assert.InDelta(t, 10, d.Mean.X, 1e-9)
		assert.InDelta(t, 110, d.Mean.Y, 1e-9)
	})

	t.Run("covariance follows the aim", func(t *testing.T) {
		p := Params{Distance: 100, HorizontalStd: 20, VerticalStd: 10}

		east, err := NewDistribution(p, geom.Pt(0, 0), geom.Pt(1, 0))
		require.NoError(t, err)
		c := east.Covariance()
		assert.InDelta(t, 100, c.At(0, 0), 1e-9, "along-aim variance")
		assert.InDelta(t, 400, c.At(1, 1), 1e-9, "lateral variance")
		assert.InDelta(t, 0, c.At(0, 1), 1e-9)

		diag, err := NewDistribution(p, geom.Pt(0, 0), geom.Pt(1, 1))
		require.NoError(t, err)
		c = diag.Covariance()
		assert.InDelta(t, 250, c.At(0, 0), 1e-9)
		assert.InDelta(t, 250, c.At(1, 1), 1e-9)
		assert.InDelta(t, -150, c.At(0, 1), 1e-9)
	})
}

func TestSampleWithoutSpread(t *testing.T) {
	t.Parallel()

	d, err := NewDistribution(Params{Distance: 250}, geom.Pt(100, 400), geom.Pt(350, 400))
	require.NoError(t, err)
	rng := randutil.New(1)
	for range 10 {
		p := d.Sample(rng)
		assert.Equal(t, 350.0, p.X)
		assert.Equal(t, 400.0, p.Y)
	}
}

func TestSampleStatistics(t *testing.T) {
	t.Parallel()

	p := Params{Distance: 250, HorizontalStd: 20, VerticalStd: 12.5}
	d, err := NewDistribution(p, geom.Pt(100, 400), geom.Pt(103, 404))
	require.NoError(t, err)

	const n = 10000
	along := make([]float64, n)
	across := make([]float64, n)
	rng := randutil.New(99)
	for i := range n {
		off := d.Sample(rng).Sub(d.Mean)
		along[i] = off.Dot(d.Aim)
		across[i] = off.Dot(d.Lateral)
	}

	mAlong, sAlong := stat.MeanStdDev(along, nil)
	mAcross, sAcross := stat.MeanStdDev(across, nil)
	assert.InDelta(t, 0, mAlong, 0.5)
	assert.InDelta(t, 0, mAcross, 0.8)
	assert.InDelta(t, 12.5, sAlong, 0.5)
	assert.InDelta(t, 20, sAcross, 0.8)
	assert.InDelta(t, 0, stat.Correlation(along, across, nil), 0.05)
}

func TestSampleCovariance(t *testing.T) {
	t.Parallel()

	p := Params{Distance: 250, HorizontalStd: 20, VerticalStd: 12.5}
	ball := geom.Pt(100, 400)
	d, err := NewDistribution(p, ball, ball.Add(geom.Pt(1, 0)))
	require.NoError(t, err)

	const n = 10000
	x := mat.NewDense(n, 2, nil)
	rng := randutil.New(7)
	for i := range n {
		s := d.Sample(rng)
		x.Set(i, 0, s.X)
		x.Set(i, 1, s.Y)
	}

	assert.InDelta(t, d.Mean.X, stat.Mean(mat.Col(nil, 0, x), nil), 0.5)
	assert.InDelta(t, d.Mean.Y, stat.Mean(mat.Col(nil, 1, x), nil), 0.8)

	var got mat.SymDense
	stat.CovarianceMatrix(&got, x, nil)
	want := d.Covariance()
	assert.InDelta(t, 156.25, want.At(0, 0), 1e-9)
	assert.InDelta(t, 400, want.At(1, 1), 1e-9)
	assert.InDelta(t, want.At(0, 0), got.At(0, 0), 10, "along-aim variance")
	assert.InDelta(t, want.At(1, 1), got.At(1, 1), 20, "lateral variance")
	assert.InDelta(t, want.At(0, 1), got.At(0, 1), 10, "covariance")
}

func TestAxes(t *testing.T) {
	t.Parallel()

	d, err := NewDistribution(Params{Distance: 100, HorizontalStd: 20, VerticalStd: 10}, geom.Pt(0, 0), geom.Pt(3, 4))
	require.NoError(t, err)

	axes := d.Axes()
	lengths := []float64{axes[0].Length(), axes[1].Length()}
	assert.ElementsMatch(t, []float64{10, 20}, []float64{math.Round(lengths[0]*1e6) / 1e6, math.Round(lengths[1]*1e6) / 1e6})
	assert.InDelta(t, 0, axes[0].Dot(axes[1]), 1e-9)

	var outer mat.Dense
	f := mat.NewDense(2, 2, []float64{axes[0].X, axes[1].X, axes[0].Y, axes[1].Y})
	outer.Mul(f, f.T())
	assert.True(t, mat.EqualApprox(&outer, d.Covariance(), 1e-9))
}

func TestModel(t *testing.T) {
	t.Parallel()

	m := NewModel(DefaultProfile())
	assert.Equal(t, 0, m.Club())
	assert.Equal(t, "Driver", m.ClubName())
	assert.Equal(t, course.Teebox, m.Lie())

	require.ErrorIs(t, m.SetClub(14), ErrUnknownClub)
	require.ErrorIs(t, m.SetClub(-1), ErrUnknownClub)
	require.NoError(t, m.SetClub(13))
	assert.Equal(t, "Lob Wedge", m.ClubName())

	assert.Error(t, m.SetLie(course.Green))
	assert.Equal(t, course.Teebox, m.Lie())
	require.NoError(t, m.SetLie(course.Bunker))

	params, err := m.Params()
	require.NoError(t, err)
	assert.InDelta(t, 42, params.Distance, 1e-9)

	_, err = m.Sample(geom.Pt(0, 0), geom.Pt(0, 0), randutil.New(1))
	assert.ErrorIs(t, err, ErrZeroAim)

	got, err := m.Sample(geom.Pt(500, 400), geom.Pt(600, 400), randutil.New(1))
	require.NoError(t, err)
	assert.Less(t, math.Abs(got.X-542), 6*params.VerticalStd)

	assert.Panics(t, func() { NewModel(nil) })
}
