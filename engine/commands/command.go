package commands

import (
	"fmt"

	"github.com/spaghettifunk/drawbug/engine/math"
)

// Command is the tag written in front of every record of a Stream.
// Values start at 1 so that zeroed bytes never decode as a valid record.
type Command uint32

const (
	CommandStyle Command = iota + 1
	CommandDrawMode
	CommandMatrix
	CommandLine
	CommandLines
	CommandRectangle
	CommandCircle
	CommandHollowCircle
	CommandCapsule
	CommandBox
	CommandSphere
	CommandCylinder
	CommandCapsule3D
)

// Size of a tag in bytes.
const TagSize = 4

// Payload sizes in bytes. Every field is little endian; vectors are packed
// float32 components, quaternions are x, y, z, w and booleans take a uint32.
const (
	StyleSize        = 16 + 4
	DrawModeSize     = 4
	MatrixSize       = 16 * 4
	LineSize         = 2 * 12
	LinesHeaderSize  = 4
	LinesPointSize   = 12
	RectangleSize    = 12 + 8 + 16
	CircleSize       = 12 + 16 + 4
	HollowCircleSize = 12 + 16 + 4 + 4
	CapsuleSize      = 12 + 8 + 16 + 4
	BoxSize          = 12 + 12 + 16
	SphereSize       = 12 + 4
	CylinderSize     = 12 + 4 + 4 + 16
	Capsule3DSize    = CylinderSize
)

var commandNames = map[Command]string{
	CommandStyle:        "Style",
	CommandDrawMode:     "DrawMode",
	CommandMatrix:       "Matrix",
	CommandLine:         "Line",
	CommandLines:        "Lines",
	CommandRectangle:    "Rectangle",
	CommandCircle:       "Circle",
	CommandHollowCircle: "HollowCircle",
	CommandCapsule:      "Capsule",
	CommandBox:          "Box",
	CommandSphere:       "Sphere",
	CommandCylinder:     "Cylinder",
	CommandCapsule3D:    "Capsule3D",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", uint32(c))
}

// PayloadSize returns the fixed payload size of c. For CommandLines it is the
// size of the count header only.
func (c Command) PayloadSize() (int, bool) {
	switch c {
	case CommandStyle:
		return StyleSize, true
	case CommandDrawMode:
		return DrawModeSize, true
	case CommandMatrix:
		return MatrixSize, true
	case CommandLine:
		return LineSize, true
	case CommandLines:
		return LinesHeaderSize, true
	case CommandRectangle:
		return RectangleSize, true
	case CommandCircle:
		return CircleSize, true
	case CommandHollowCircle:
		return HollowCircleSize, true
	case CommandCapsule:
		return CapsuleSize, true
	case CommandBox:
		return BoxSize, true
	case CommandSphere:
		return SphereSize, true
	case CommandCylinder:
		return CylinderSize, true
	case CommandCapsule3D:
		return Capsule3DSize, true
	}
	return 0, false
}

// DrawMode selects which generators run for a shape record.
type DrawMode uint32

const (
	DrawModeWire DrawMode = iota
	DrawModeSolid
	DrawModeBoth
)

func (m DrawMode) Valid() bool {
	return m <= DrawModeBoth
}

func (m DrawMode) HasWire() bool {
	return m == DrawModeWire || m == DrawModeBoth
}

func (m DrawMode) HasSolid() bool {
	return m == DrawModeSolid || m == DrawModeBoth
}

func (m DrawMode) String() string {
	switch m {
	case DrawModeWire:
		return "wire"
	case DrawModeSolid:
		return "solid"
	case DrawModeBoth:
		return "both"
	}
	return fmt.Sprintf("DrawMode(%d)", uint32(m))
}

// StyleData is the colour and forward-rendering flag referenced by the
// style index of every emitted vertex.
type StyleData struct {
	Color   math.Color
	Forward bool
}

// DefaultStyle is the style a cleared stream starts with.
func DefaultStyle() StyleData {
	return StyleData{Color: math.ColorWhite}
}

type Line struct {
	A, B math.Vec3
}

type Rectangle struct {
	Position math.Vec3
	Size     math.Vec2
	Rotation math.Quaternion
}

type Circle struct {
	Position math.Vec3
	Rotation math.Quaternion
	Radius   float32
}

type HollowCircle struct {
	Position    math.Vec3
	Rotation    math.Quaternion
	InnerRadius float32
	OuterRadius float32
}

type Capsule struct {
	Position   math.Vec3
	Size       math.Vec2
	Rotation   math.Quaternion
	IsVertical bool
}

type Box struct {
	Position math.Vec3
	Size     math.Vec3
	Rotation math.Quaternion
}

type Sphere struct {
	Position math.Vec3
	Radius   float32
}

// Cylinder is the payload of both CommandCylinder and CommandCapsule3D.
type Cylinder struct {
	Position math.Vec3
	Radius   float32
	Height   float32
	Rotation math.Quaternion
}
