package shot

import (
	"errors"
	"fmt"
	"math"
	rand "math/rand/v2"

	"github.com/lox/golfforbots/internal/course"
	"github.com/lox/golfforbots/internal/geom"
	"gonum.org/v1/gonum/mat"
)

// ErrZeroAim is returned when the aim point coincides with the ball.
var ErrZeroAim = errors.New("aim point coincides with the ball")

// Distribution is the bivariate normal landing distribution of one stroke.
// HorizontalStd spreads across the aim line, VerticalStd along it.
type Distribution struct {
	Mean    geom.Point
	AimAt   geom.Point
	Aim     geom.Point
	Lateral geom.Point
	Params  Params

	cov *mat.SymDense
	// factor satisfies factor·factorᵀ = cov; its columns are the principal
	// axes scaled by their standard deviations.
	factor *mat.Dense
}

// NewDistribution builds the landing distribution for a ball struck from
// ball towards the aim point aimAt with the given parameters.
func NewDistribution(p Params, ball, aimAt geom.Point) (Distribution, error) {
	u, ok := aimAt.Sub(ball).Normalize()
	if !ok {
		return Distribution{}, fmt.Errorf("%w: %v", ErrZeroAim, ball)
	}
	n := u.Perp()

	// R diag(h², v²) Rᵀ with R = [n u] is h² n nᵀ + v² u uᵀ.
	cov := mat.NewSymDense(2, nil)
	cov.SymRankOne(cov, p.HorizontalStd*p.HorizontalStd, mat.NewVecDense(2, []float64{n.X, n.Y}))
	cov.SymRankOne(cov, p.VerticalStd*p.VerticalStd, mat.NewVecDense(2, []float64{u.X, u.Y}))

	factor, err := sqrtFactor(cov)
	if err != nil {
		return Distribution{}, err
	}

	return Distribution{
		Mean:    ball.Add(u.Mul(p.Distance)),
		AimAt:   aimAt,
		Aim:     u,
		Lateral: n,
		Params:  p,
		cov:     cov,
		factor:  factor,
	}, nil
}

// sqrtFactor returns Q·sqrt(Λ) from the eigendecomposition of a positive
// semi-definite cov. Unlike a Cholesky factor it exists when a spread is zero.
func sqrtFactor(cov *mat.SymDense) (*mat.Dense, error) {
	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return nil, fmt.Errorf("covariance %v is not factorizable", mat.Formatted(cov, mat.Squeeze()))
	}
	var q mat.Dense
	eig.VectorsTo(&q)
	vals := eig.Values(nil)
	for j, v := range vals {
		s := math.Sqrt(max(v, 0))
		for i := range 2 {
			q.Set(i, j, q.At(i, j)*s)
		}
	}
	return &q, nil
}

// Covariance returns a copy of the 2x2 covariance matrix in world axes.
func (d Distribution) Covariance() *mat.SymDense {
	out := mat.NewSymDense(2, nil)
	if d.cov != nil {
		out.CopySym(d.cov)
	}
	return out
}

// Axes returns the principal axes of the distribution, each scaled by its
// standard deviation. Renderers draw the spread ellipse from them.
func (d Distribution) Axes() [2]geom.Point {
	if d.factor == nil {
		return [2]geom.Point{}
	}
	return [2]geom.Point{
		geom.Pt(d.factor.At(0, 0), d.factor.At(1, 0)),
		geom.Pt(d.factor.At(0, 1), d.factor.At(1, 1)),
	}
}

// Sample draws a landing point as mean + F·z with F·Fᵀ the covariance and z
// standard normal.
func (d Distribution) Sample(rng *rand.Rand) geom.Point {
	if d.factor == nil {
		return d.Mean
	}
	z := mat.NewVecDense(2, []float64{rng.NormFloat64(), rng.NormFloat64()})
	var off mat.VecDense
	off.MulVec(d.factor, z)
	return d.Mean.Add(geom.Pt(off.AtVec(0), off.AtVec(1)))
}

// Dispersion is the wire form of a Distribution: mean and world-axis
// covariance, for drawing aim feedback.
type Dispersion struct {
	Mean       geom.Point    `json:"mean"`
	Covariance [2][2]float64 `json:"covariance"`
}

// Summary returns the mean and covariance of d.
func (d Distribution) Summary() Dispersion {
	out := Dispersion{Mean: d.Mean}
	if d.cov != nil {
		for i := range 2 {
			for j := range 2 {
				out.Covariance[i][j] = d.cov.At(i, j)
			}
		}
	}
	return out
}

// Model tracks the current club and lie against a profile.
type Model struct {
	profile *Profile
	club    int
	lie     course.Terrain
}

// NewModel returns a model holding the first club, played from the tee.
func NewModel(p *Profile) *Model {
	if p == nil {
		panic("profile is required")
	}
	return &Model{profile: p, lie: course.Teebox}
}

func (m *Model) Profile() *Profile   { return m.profile }
func (m *Model) Club() int           { return m.club }
func (m *Model) ClubName() string    { return m.profile.Clubs[m.club].Name }
func (m *Model) Lie() course.Terrain { return m.lie }

// SetClub selects club i.
func (m *Model) SetClub(i int) error {
	if i < 0 || i >= m.profile.Len() {
		return fmt.Errorf("%w: index %d of %d", ErrUnknownClub, i, m.profile.Len())
	}
	m.club = i
	return nil
}

// SetLie sets the lie the next stroke is played from.
func (m *Model) SetLie(lie course.Terrain) error {
	if _, err := m.profile.Params(m.club, lie); err != nil {
		return err
	}
	m.lie = lie
	return nil
}

// Params returns the parameters for the current club and lie.
func (m *Model) Params() (Params, error) {
	return m.profile.Params(m.club, m.lie)
}

// Distribution returns the landing distribution for the current club and lie
// of a stroke from ball towards the aim point aimAt.
func (m *Model) Distribution(ball, aimAt geom.Point) (Distribution, error) {
	p, err := m.Params()
	if err != nil {
		return Distribution{}, err
	}
	return NewDistribution(p, ball, aimAt)
}

// Sample draws a landing point for the current club and lie.
func (m *Model) Sample(ball, aimAt geom.Point, rng *rand.Rand) (geom.Point, error) {
	d, err := m.Distribution(ball, aimAt)
	if err != nil {
		return geom.Point{}, err
	}
	return d.Sample(rng), nil
}
