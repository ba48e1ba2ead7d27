package calc

import (
	"math"

	"github.com/aretw0/gaitcgm/pkg/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

// MarkerRadius is the radius of a retro-reflective marker in millimetres.
const MarkerRadius = 7.0

func mid(a, b r3.Vec) r3.Vec {
	return r3.Scale(0.5, r3.Add(a, b))
}

// reject removes from v its component along dir.
func reject(v, dir r3.Vec) r3.Vec {
	u := r3.Unit(dir)
	return r3.Sub(v, r3.Scale(r3.Dot(v, u), u))
}

// frameYX builds a right-handed frame with y along yDir and x the part of
// xHint orthogonal to y.
func frameYX(origin, yDir, xHint r3.Vec) domain.Transform {
	y := r3.Unit(yDir)
	x := r3.Unit(reject(xHint, y))
	z := r3.Cross(x, y)
	return domain.NewTransform(x, y, z, origin)
}

// frameXY builds a right-handed frame with x along xDir and y the part of
// yHint orthogonal to x.
func frameXY(origin, xDir, yHint r3.Vec) domain.Transform {
	x := r3.Unit(xDir)
	y := r3.Unit(reject(yHint, x))
	z := r3.Cross(x, y)
	return domain.NewTransform(x, y, z, origin)
}

// frameZX builds a right-handed frame with z along zDir and x the part of
// xHint orthogonal to z.
func frameZX(origin, zDir, xHint r3.Vec) domain.Transform {
	z := r3.Unit(zDir)
	x := r3.Unit(reject(xHint, z))
	y := r3.Cross(z, x)
	return domain.NewTransform(x, y, z, origin)
}

// segmentFrame places z along origin to proximal and takes x perpendicular to
// both z and the lateral hint.
func segmentFrame(origin, proximal, lateral r3.Vec) domain.Transform {
	z := r3.Unit(r3.Sub(proximal, origin))
	x := r3.Unit(r3.Cross(lateral, z))
	y := r3.Cross(z, x)
	return domain.NewTransform(x, y, z, origin)
}

// jointCenter shifts a skin marker by delta against the lateral direction,
// measured perpendicular to the segment running from marker to proximal.
func jointCenter(marker, lateral, proximal r3.Vec, delta float64) r3.Vec {
	s := r3.Unit(reject(lateral, r3.Sub(proximal, marker)))
	return r3.Sub(marker, r3.Scale(delta, s))
}

// local maps a point given in t's coordinates to the global frame.
func local(t domain.Transform, p r3.Vec) r3.Vec {
	g := t.Origin()
	g = r3.Add(g, r3.Scale(p.X, t.Basis(0)))
	g = r3.Add(g, r3.Scale(p.Y, t.Basis(1)))
	return r3.Add(g, r3.Scale(p.Z, t.Basis(2)))
}

// cardan decomposes the orientation of child relative to parent into
// x-y-z rotation angles in degrees.
func cardan(parent, child domain.Transform) r3.Vec {
	var m [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = r3.Dot(child.Basis(i), parent.Basis(j))
		}
	}
	x := math.Atan2(m[1][2], m[2][2])
	y := math.Asin(math.Max(-1, math.Min(1, -m[0][2])))
	z := math.Atan2(m[0][1], m[0][0])
	return r3.Vec{X: deg(x), Y: deg(y), Z: deg(z)}
}

func deg(rad float64) float64 { return rad * 180 / math.Pi }

// Identity is the laboratory frame used as parent for global angles.
var Identity = domain.Identity()
