package geom

import "math"

type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func NewVector(x, y, z float64) Vector {
	return Vector{x, y, z}
}

var (
	Zero = Vector{}
	Up   = Vector{0, 1, 0}
	Down = Vector{0, -1, 0}

	// The four horizontal world axes probed for obstacles.
	PosX = Vector{1, 0, 0}
	NegX = Vector{-1, 0, 0}
	PosZ = Vector{0, 0, 1}
	NegZ = Vector{0, 0, -1}
)

func (v Vector) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vector) Scale(k float64) Vector {
	return Vector{v.X * k, v.Y * k, v.Z * k}
}

func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector in the direction of v. The zero vector
// normalizes to itself.
func (v Vector) Normalize() Vector {
	length := v.Length()
	if length == 0 {
		return Vector{}
	}
	return v.Scale(1 / length)
}

// Planar drops the vertical component.
func (v Vector) Planar() Vector {
	return Vector{v.X, 0, v.Z}
}

func Distance(from, to Vector) float64 {
	return from.Sub(to).Length()
}

// PlanarDistance is the distance between two points on the ground plane,
// ignoring height.
func PlanarDistance(from, to Vector) float64 {
	return from.Sub(to).Planar().Length()
}

type Ray struct {
	Origin    Vector
	Direction Vector
}

func NewRay(origin, direction Vector) Ray {
	return Ray{origin, direction.Normalize()}
}

func (r Ray) At(t float64) Vector {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Forward returns the horizontal unit vector a camera with the given yaw
// looks along. A yaw of zero looks down -Z and positive yaw turns left.
func Forward(yaw float64) Vector {
	return Vector{-math.Sin(yaw), 0, -math.Cos(yaw)}
}

// Right returns the horizontal strafe vector for the given yaw.
func Right(yaw float64) Vector {
	return Vector{math.Cos(yaw), 0, -math.Sin(yaw)}
}

// Look returns the full camera direction including pitch. Positive pitch
// looks up.
func Look(yaw, pitch float64) Vector {
	cos := math.Cos(pitch)
	return Vector{
		-math.Sin(yaw) * cos,
		math.Sin(pitch),
		-math.Cos(yaw) * cos,
	}
}
