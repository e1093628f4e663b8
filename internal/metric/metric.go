// Package metric implements the perceptual distances used for clustering and
// ordering: CIEDE2000 in CIELAB and Euclidean distance in Oklab.
package metric

import (
	"math"

	"github.com/AnyUserName/phoenyx/internal/colorspace"
)

const pow25to7 = 6103515625.0 // 25^7

// DeltaE2000 returns the CIEDE2000 color difference (kL = kC = kH = 1).
// The result is >= 0 and symmetric. Non-finite input yields 0 so the
// function stays total on the per-pixel path.
func DeltaE2000(lab1, lab2 colorspace.Lab) float64 {
	c1 := math.Hypot(lab1.A, lab1.B)
	c2 := math.Hypot(lab2.A, lab2.B)
	cMean := (c1 + c2) / 2
	cMean7 := math.Pow(cMean, 7)
	g := 0.5 * (1 - math.Sqrt(cMean7/(cMean7+pow25to7)))

	a1p := (1 + g) * lab1.A
	a2p := (1 + g) * lab2.A
	c1p := math.Hypot(a1p, lab1.B)
	c2p := math.Hypot(a2p, lab2.B)

	h1p := hueAngle(lab1.B, a1p)
	h2p := hueAngle(lab2.B, a2p)

	dLp := lab2.L - lab1.L
	dCp := c2p - c1p

	cProd := c1p * c2p
	var dhp float64
	if cProd != 0 {
		dhp = h2p - h1p
		switch {
		case dhp > 180:
			dhp -= 360
		case dhp < -180:
			dhp += 360
		}
	}
	dHp := 2 * math.Sqrt(cProd) * math.Sin(radians(dhp/2))

	lMean := (lab1.L + lab2.L) / 2
	cpMean := (c1p + c2p) / 2

	hMean := h1p + h2p
	if cProd != 0 {
		if math.Abs(h1p-h2p) <= 180 {
			hMean /= 2
		} else if h1p+h2p < 360 {
			hMean = (hMean + 360) / 2
		} else {
			hMean = (hMean - 360) / 2
		}
	}

	t := 1 - 0.17*math.Cos(radians(hMean-30)) +
		0.24*math.Cos(radians(2*hMean)) +
		0.32*math.Cos(radians(3*hMean+6)) -
		0.20*math.Cos(radians(4*hMean-63))

	dTheta := 30 * math.Exp(-sq((hMean-275)/25))
	cpMean7 := math.Pow(cpMean, 7)
	rc := 2 * math.Sqrt(cpMean7/(cpMean7+pow25to7))
	lm50 := sq(lMean - 50)
	sl := 1 + 0.015*lm50/math.Sqrt(20+lm50)
	sc := 1 + 0.045*cpMean
	sh := 1 + 0.015*cpMean*t
	rt := -math.Sin(radians(2*dTheta)) * rc

	tl := dLp / sl
	tc := dCp / sc
	th := dHp / sh
	d := math.Sqrt(tl*tl + tc*tc + th*th + rt*tc*th)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	return d
}

// DeltaE2000RGB converts both colors to CIELAB and returns DeltaE2000.
func DeltaE2000RGB(a, b colorspace.RGB) float64 {
	return DeltaE2000(colorspace.RGBToLab(a), colorspace.RGBToLab(b))
}

// EuclideanOklab is the straight-line distance in Oklab, a cheaper
// alternative where CIEDE2000 is unnecessary.
func EuclideanOklab(a, b colorspace.Oklab) float64 {
	return math.Sqrt(SquaredOklab(a, b))
}

// SquaredOklab is EuclideanOklab without the square root, used for
// nearest-centroid assignment.
func SquaredOklab(a, b colorspace.Oklab) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return dl*dl + da*da + db*db
}

func hueAngle(b, ap float64) float64 {
	if b == 0 && ap == 0 {
		return 0
	}
	h := math.Atan2(b, ap) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return h
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func sq(v float64) float64 { return v * v }
