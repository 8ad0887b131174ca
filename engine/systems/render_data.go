package systems

import (
	"fmt"

	"github.com/spaghettifunk/drawbug/engine/commands"
	"github.com/spaghettifunk/drawbug/engine/containers"
	"github.com/spaghettifunk/drawbug/engine/geometry"
)

// RenderDataConfig sizes the output of one expansion.
type RenderDataConfig struct {
	WireVertices  int
	SolidVertices int
	SolidIndices  int
	StyleEntries  int
}

// RenderData is everything an expansion produces. It belongs to the
// expansion worker while a job is pending and to the consumer afterwards.
type RenderData struct {
	Wire    *geometry.WireBuffer
	Solid   *geometry.SolidBuffer
	styles  *containers.Buffer[commands.StyleData]
	scratch *geometry.Scratch
}

func NewRenderData(config RenderDataConfig) (*RenderData, error) {
	wire, err := geometry.NewWireBuffer(config.WireVertices)
	if err != nil {
		return nil, err
	}
	solid, err := geometry.NewSolidBuffer(config.SolidVertices, config.SolidIndices)
	if err != nil {
		wire.Dispose()
		return nil, err
	}
	styles, err := containers.NewBuffer[commands.StyleData](config.StyleEntries)
	if err != nil {
		wire.Dispose()
		solid.Dispose()
		return nil, fmt.Errorf("style list: %w", err)
	}
	return &RenderData{
		Wire:    wire,
		Solid:   solid,
		styles:  styles,
		scratch: geometry.NewScratch(),
	}, nil
}

// Styles returns the styles referenced by the expanded vertices.
func (rd *RenderData) Styles() []commands.StyleData {
	return rd.styles.Data()
}

func (rd *RenderData) addStyle(style commands.StyleData) {
	rd.styles.Submit(style)
}

// Clear empties every output and resets the buffer transforms.
func (rd *RenderData) Clear() {
	rd.Wire.Clear()
	rd.Solid.Clear()
	rd.styles.Clear()
}

func (rd *RenderData) IsCreated() bool {
	return rd.Wire.IsCreated() && rd.Solid.IsCreated() && rd.styles.IsCreated()
}

func (rd *RenderData) Dispose() {
	rd.Wire.Dispose()
	rd.Solid.Dispose()
	if rd.styles.IsCreated() {
		rd.styles.Dispose()
	}
}
