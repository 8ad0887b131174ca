package renderer

import (
	"fmt"

	"github.com/spaghettifunk/drawbug/engine/core"
)

// Renderer feeds render packets to a Backend.
type Renderer struct {
	backend Backend
	frames  uint64
}

func New(backend Backend) *Renderer {
	return &Renderer{backend: backend}
}

// DrawFrame uploads the packet and draws it. Solid geometry is only
// uploaded when there is at least one whole triangle.
func (r *Renderer) DrawFrame(packet *RenderPacket) error {
	if err := r.backend.BeginFrame(packet.DeltaTime); err != nil {
		core.LogError("renderer begin frame failed: %s", err)
		return err
	}
	if len(packet.Wire) > 0 {
		if err := r.backend.UploadWire(packet.Wire, packet.Styles); err != nil {
			return fmt.Errorf("upload %d wire points: %w", len(packet.Wire), err)
		}
	}
	if len(packet.SolidIndices) >= 3 {
		if err := r.backend.UploadSolid(packet.SolidVertices, packet.SolidIndices, packet.Styles); err != nil {
			return fmt.Errorf("upload %d solid indices: %w", len(packet.SolidIndices), err)
		}
	}
	if err := r.backend.Draw(packet.Visuals); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	if err := r.backend.EndFrame(packet.DeltaTime); err != nil {
		core.LogError("renderer end frame failed: %s", err)
		return err
	}
	r.frames++
	return nil
}

// Frames returns the number of frames drawn successfully.
func (r *Renderer) Frames() uint64 {
	return r.frames
}
