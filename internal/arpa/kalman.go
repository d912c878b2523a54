package arpa

import "gonum.org/v1/gonum/mat"

// kalman is a constant-velocity linear Kalman filter over state
// [x, y, vx, vy] in a Cartesian frame anchored at own-ship (spec.md §4.8:
// "a linear Kalman filter in a locally-linearized Cartesian frame anchored
// at own-ship position. State: (x, y, vx, vy)"). Grounded in the teacher's
// tracking.go predict/associate/update steps; expressed with gonum
// matrices rather than hand-unrolled 4x4 arrays.
type kalman struct {
	x *mat.VecDense // 4x1: x, y, vx, vy
	p *mat.Dense    // 4x4 covariance

	processNoisePos float64
	processNoiseVel float64
	measurementNoise float64
}

func newKalman(x0, y0, processNoisePos, processNoiseVel, measurementNoise float64) *kalman {
	x := mat.NewVecDense(4, []float64{x0, y0, 0, 0})
	p := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		p.Set(i, i, 10.0)
	}
	return &kalman{
		x: x, p: p,
		processNoisePos:  processNoisePos,
		processNoiseVel:  processNoiseVel,
		measurementNoise: measurementNoise,
	}
}

func (k *kalman) position() (x, y float64) {
	return k.x.AtVec(0), k.x.AtVec(1)
}

func (k *kalman) velocity() (vx, vy float64) {
	return k.x.AtVec(2), k.x.AtVec(3)
}

// predict advances the state estimate by dt seconds under a constant
// velocity model.
func (k *kalman) predict(dt float64) {
	f := mat.NewDense(4, 4, []float64{
		1, 0, dt, 0,
		0, 1, 0, dt,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})

	var xNew mat.VecDense
	xNew.MulVec(f, k.x)
	k.x = &xNew

	var fp, fpft mat.Dense
	fp.Mul(f, k.p)
	fpft.Mul(&fp, f.T())

	fpft.Set(0, 0, fpft.At(0, 0)+k.processNoisePos)
	fpft.Set(1, 1, fpft.At(1, 1)+k.processNoisePos)
	fpft.Set(2, 2, fpft.At(2, 2)+k.processNoiseVel)
	fpft.Set(3, 3, fpft.At(3, 3)+k.processNoiseVel)
	k.p = &fpft
}

// gateDistanceSquared returns the Mahalanobis distance squared from the
// current predicted position to a candidate measurement, used by
// correlation gating.
func (k *kalman) gateDistanceSquared(zx, zy float64) (float64, bool) {
	px, py := k.position()
	dx, dy := zx-px, zy-py

	s00 := k.p.At(0, 0) + k.measurementNoise
	s01 := k.p.At(0, 1)
	s10 := k.p.At(1, 0)
	s11 := k.p.At(1, 1) + k.measurementNoise

	det := s00*s11 - s01*s10
	if det < 1e-6 {
		return 0, false
	}
	invS00 := s11 / det
	invS01 := -s01 / det
	invS10 := -s10 / det
	invS11 := s00 / det

	d2 := dx*dx*invS00 + dx*dy*(invS01+invS10) + dy*dy*invS11
	return d2, true
}

// update applies the measurement-update step for a matched candidate at
// Cartesian position (zx, zy).
func (k *kalman) update(zx, zy float64) {
	px, py := k.position()
	yx, yy := zx-px, zy-py

	s00 := k.p.At(0, 0) + k.measurementNoise
	s01 := k.p.At(0, 1)
	s10 := k.p.At(1, 0)
	s11 := k.p.At(1, 1) + k.measurementNoise

	det := s00*s11 - s01*s10
	if det < 1e-6 {
		return
	}
	invS00 := s11 / det
	invS01 := -s01 / det
	invS10 := -s10 / det
	invS11 := s00 / det

	gain := mat.NewDense(4, 2, nil)
	for i := 0; i < 4; i++ {
		pi0 := k.p.At(i, 0)
		pi1 := k.p.At(i, 1)
		gain.Set(i, 0, pi0*invS00+pi1*invS10)
		gain.Set(i, 1, pi0*invS01+pi1*invS11)
	}

	innovation := mat.NewVecDense(2, []float64{yx, yy})
	var correction mat.VecDense
	correction.MulVec(gain, innovation)

	var xNew mat.VecDense
	xNew.AddVec(k.x, &correction)
	k.x = &xNew

	h := mat.NewDense(2, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
	})
	var kh mat.Dense
	kh.Mul(gain, h)

	identity := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		identity.Set(i, i, 1)
	}
	var iMinusKH, newP mat.Dense
	iMinusKH.Sub(identity, &kh)
	newP.Mul(&iMinusKH, k.p)
	k.p = &newP
}
