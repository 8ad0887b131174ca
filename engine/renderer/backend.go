package renderer

import (
	"github.com/spaghettifunk/drawbug/engine/commands"
	"github.com/spaghettifunk/drawbug/engine/geometry"
)

// Backend uploads expanded debug geometry to a graphics API and draws it.
// Buffers passed to the upload calls are only valid for the duration of
// the call.
type Backend interface {
	BeginFrame(deltaTime float64) error
	UploadWire(points []geometry.PositionData, styles []commands.StyleData) error
	UploadSolid(vertices []geometry.PositionData, indices []uint32, styles []commands.StyleData) error
	Draw(visuals Visuals) error
	EndFrame(deltaTime float64) error
}
