package svgpath

import (
	"math"
)

// arcEpsilon is the radius (or chord) length under which
// an arc is drawn as a straight line
const arcEpsilon = 1e-6

// maxArcStep is the maximum angle spanned by one cubic
// when approximating an elliptical arc.
const maxArcStep = math.Pi / 2

// appendArc appends to `out` the cubic approximation of the arc `a`,
// starting at `pen`, which must be absolute.
func appendArc(out Path, pen Point, a ArcTo) Path {
	end := a.P
	rx, ry := math.Abs(a.Rx), math.Abs(a.Ry)
	if rx < arcEpsilon || ry < arcEpsilon || pen.Dist(end) < arcEpsilon {
		return append(out, line(pen, end))
	}

	rot := a.Rotation * math.Pi / 180
	cx, cy := findEllipseCenter(&rx, &ry, rot, pen.X, pen.Y, end.X, end.Y, a.Sweep, a.LargeArc)

	sinTheta, cosTheta := math.Sin(rot), math.Cos(rot)
	etaStart := ellipseAngle(pen, rx, ry, sinTheta, cosTheta, cx, cy)
	etaEnd := ellipseAngle(end, rx, ry, sinTheta, cosTheta, cx, cy)
	deltaEta := etaEnd - etaStart
	if a.Sweep && deltaEta < 0 {
		deltaEta += 2 * math.Pi
	} else if !a.Sweep && deltaEta > 0 {
		deltaEta -= 2 * math.Pi
	}

	// round up to determine number of cubic splines
	segs := int(math.Ceil(math.Abs(deltaEta)/maxArcStep - 1e-9))
	if segs < 1 {
		segs = 1
	}
	dEta := deltaEta / float64(segs) // signed span of each segment
	kappa := 4. / 3 * (1 - math.Cos(dEta/2)) / math.Sin(dEta/2)

	lx, ly := pen.X, pen.Y
	ldx, ldy := ellipsePrime(rx, ry, sinTheta, cosTheta, etaStart, cx, cy)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		var px, py float64
		if i == segs {
			px, py = end.X, end.Y // exact end point, no roundoff error
		} else {
			px, py = ellipsePointAt(rx, ry, sinTheta, cosTheta, eta, cx, cy)
		}
		dx, dy := ellipsePrime(rx, ry, sinTheta, cosTheta, eta, cx, cy)
		out = append(out, CubicTo{
			C1: Point{lx + kappa*ldx, ly + kappa*ldy},
			C2: Point{px - kappa*dx, py - kappa*dy},
			P:  Point{px, py},
		})
		lx, ly, ldx, ldy = px, py, dx, dy
	}
	return out
}

// ellipseAngle returns the parametric angle of the point `p` on the ellipse
func ellipseAngle(p Point, a, b, sinTheta, cosTheta, cx, cy float64) float64 {
	dx, dy := p.X-cx, p.Y-cy
	// rotate back to the ellipse frame
	x, y := dx*cosTheta+dy*sinTheta, -dx*sinTheta+dy*cosTheta
	return math.Atan2(y/b, x/a)
}

// ellipsePrime gives tangent vectors for parameterized ellipse; a, b, radii, eta parameter, center cx, cy
func ellipsePrime(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

// ellipsePointAt gives points for parameterized ellipse; a, b, radii, eta parameter, center cx, cy
func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// findEllipseCenter locates the center of the ellipse if it exists. If it does not exist,
// the radius values are increased minimally for a solution to be possible
// while preserving the ra to rb ratio. ra and rb arguments are pointers that can be
// checked after the call to see if the values changed. This method uses coordinate transformations
// to reduce the problem to finding the center of a circle that includes the origin
// and an arbitrary point. The center of the circle is then transformed
// back to the original coordinates and returned.
func findEllipseCenter(ra, rb *float64, rotX, startX, startY, endX, endY float64, sweep, largeArc bool) (cx, cy float64) {
	cos, sin := math.Cos(rotX), math.Sin(rotX)

	// Move origin to start point
	nx, ny := endX-startX, endY-startY

	// Rotate ellipse x-axis to coordinate x-axis
	nx, ny = nx*cos+ny*sin, -nx*sin+ny*cos
	// Scale X dimension so that ra = rb
	nx *= *rb / *ra // Now the ellipse is a circle radius rb; therefore foci and center coincide

	midX, midY := nx/2, ny/2
	midlenSq := midX*midX + midY*midY

	var hr float64
	if *rb**rb < midlenSq {
		// Requested ellipse does not exist; scale ra, rb to fit. Length of
		// span is greater than max width of ellipse, must scale *ra, *rb
		nrb := math.Sqrt(midlenSq)
		if *ra == *rb {
			*ra = nrb // prevents roundoff
		} else {
			*ra = *ra * nrb / *rb
		}
		*rb = nrb
	} else {
		hr = math.Sqrt(*rb**rb-midlenSq) / math.Sqrt(midlenSq)
	}
	// Notice that if hr is zero, both answers are the same.
	if sweep == largeArc {
		cx = midX + midY*hr
		cy = midY - midX*hr
	} else {
		cx = midX - midY*hr
		cy = midY + midX*hr
	}

	// reverse scale
	cx *= *ra / *rb
	// Reverse rotate and translate back to original coordinates
	return cx*cos - cy*sin + startX, cx*sin + cy*cos + startY
}
