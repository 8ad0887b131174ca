package geometry

import "github.com/spaghettifunk/drawbug/engine/math"

// PositionData is one expanded vertex. StyleIndex points into the style list
// produced by the same expansion.
type PositionData struct {
	Position   math.Vec3
	StyleIndex uint32
}

// Segments is the tessellation count shared by every round primitive.
const Segments = 16
