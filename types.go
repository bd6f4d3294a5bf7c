package main

import "math"

//Vector2 holds a position or direction on the play field
type Vector2 struct {
	X, Y float64
}

//Add returns v + o
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

//Sub returns v - o
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

//Scale returns v multiplied by s
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

//Magnitude returns the length of the vector
func (v Vector2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

//Normalize returns the unit vector of v, or v itself if it has no length
func (v Vector2) Normalize() Vector2 {
	mag := v.Magnitude()
	if mag > 0 {
		return Vector2{v.X / mag, v.Y / mag}
	}
	return v
}

//Truncate drops the fractional part of both axes, the way positions travel on the wire
func (v Vector2) Truncate() Vector2 {
	return Vector2{math.Trunc(v.X), math.Trunc(v.Y)}
}

//lerp returns a value between a and b weighted by t, lerp(1, 3, 0.5) = 2
func lerp(a, b, t float64) float64 {
	return (1.0-t)*a + b*t
}

//invLerp returns the weight of v between a and b
func invLerp(a, b, v float64) float64 {
	return (v - a) / (b - a)
}

//remap maps value from the range iMin..iMax onto oMin..oMax
func remap(iMin, iMax, oMin, oMax, value float64) float64 {
	return lerp(oMin, oMax, invLerp(iMin, iMax, value))
}

//wrapDegrees folds any angle into 0-359
func wrapDegrees(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

//heading returns the unit direction a rotation faces, 0 degrees pointing down the screen
func heading(rotation int) Vector2 {
	rad := float64(-rotation+90) * math.Pi / 180
	return Vector2{math.Cos(rad), math.Sin(rad)}
}
