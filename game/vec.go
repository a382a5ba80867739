package game

import (
	"math"
	"math/rand"
)

// Vec2 represents a 2D position or velocity in world units
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v multiplied by s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product of v and o
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the 2D cross product (z component) of v and o
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Len returns the magnitude of v
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// LenSq returns the squared magnitude of v (avoids the sqrt when only
// comparing distances)
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Dist returns the distance between v and o
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Angle returns the direction of v in radians
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Normalized returns v scaled to unit length. A zero vector is returned
// unchanged; callers that cannot tolerate that should use NormalizedOr.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l < 1e-9 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// NormalizedOr returns v scaled to unit length, or fallback when v is too
// short to carry a direction. Guards the zero-length case so NaN never
// propagates into steering math.
func (v Vec2) NormalizedOr(fallback Vec2) Vec2 {
	l := v.Len()
	if l < 1e-9 {
		return fallback
	}
	return Vec2{v.X / l, v.Y / l}
}

// Perp returns v rotated 90 degrees counter-clockwise
func (v Vec2) Perp() Vec2 {
	return Vec2{-v.Y, v.X}
}

// FromAngle returns the unit vector pointing in direction angle (radians)
func FromAngle(angle float64) Vec2 {
	return Vec2{math.Cos(angle), math.Sin(angle)}
}

// RandomUnit returns a uniformly random unit vector drawn from rng
func RandomUnit(rng *rand.Rand) Vec2 {
	return FromAngle(rng.Float64() * 2 * math.Pi)
}

// NormalizeAngle normalizes an angle to the range [0, 2π)
func NormalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// NormalizeAngleSigned normalizes an angle to the range [-π, π]
func NormalizeAngleSigned(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	angle = math.Mod(angle, 2*math.Pi)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	} else if angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// AngleDifference calculates the smallest absolute difference between two angles
func AngleDifference(a1, a2 float64) float64 {
	return math.Abs(NormalizeAngleSigned(a1 - a2))
}

// Clamp limits x to the range [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 limits x to the range [0, 1]
func Clamp01(x float64) float64 {
	return Clamp(x, 0, 1)
}

// Deg converts radians to degrees
func Deg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Rad converts degrees to radians
func Rad(deg float64) float64 {
	return deg * math.Pi / 180
}
