package renderer

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/drawbug/engine/commands"
	"github.com/spaghettifunk/drawbug/engine/geometry"
	"github.com/spaghettifunk/drawbug/engine/math"
	"github.com/spaghettifunk/drawbug/engine/systems"
)

func expandedData(t *testing.T, record func(s *commands.Stream)) *systems.RenderData {
	t.Helper()
	s, err := commands.NewStream(64, 0)
	if err != nil {
		t.Fatal(err)
	}
	record(s)
	rd, err := systems.NewRenderData(systems.RenderDataConfig{WireVertices: 16, SolidVertices: 16, SolidIndices: 16, StyleEntries: 4})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(rd.Dispose)
	if err := systems.NewExpander(rd).Expand(s.Bytes()); err != nil {
		t.Fatal(err)
	}
	return rd
}

func TestPacketExtents(t *testing.T) {
	rd := expandedData(t, func(s *commands.Stream) {
		_ = s.Line(math.NewVec3(-1, 0, 0), math.NewVec3(0, 2, 0))
		_ = s.DrawMode(commands.DrawModeSolid)
		_ = s.Box(math.NewVec3(0, 0, 3), math.NewVec3One(), math.NewQuatIdentity())
	})
	p := NewRenderPacket(rd, 0.016, Visuals{OccludedWireOpacity: 0.05})

	if len(p.Wire) != 2 || len(p.SolidVertices) != 8 || len(p.SolidIndices) != 36 || len(p.Styles) != 1 {
		t.Fatalf("packet = %d wire, %d vertices, %d indices, %d styles", len(p.Wire), len(p.SolidVertices), len(p.SolidIndices), len(p.Styles))
	}
	want := math.Extents3D{Min: math.NewVec3(-1, -0.5, 0), Max: math.NewVec3(0.5, 2, 3.5)}
	if !p.Extents.Min.Compare(want.Min, 0.0001) || !p.Extents.Max.Compare(want.Max, 0.0001) {
		t.Fatalf("extents = %+v, want %+v", p.Extents, want)
	}
}

func TestDrawFrameUploads(t *testing.T) {
	rd := expandedData(t, func(s *commands.Stream) {
		_ = s.DrawMode(commands.DrawModeBoth)
		_ = s.Circle(math.NewVec3Zero(), 1, math.NewQuatIdentity())
	})
	backend := NewStatsBackend()
	r := New(backend)
	visuals := Visuals{OccludedWireOpacity: 0.05}
	if err := r.DrawFrame(NewRenderPacket(rd, 0.016, visuals)); err != nil {
		t.Fatal(err)
	}
	want := FrameStats{WirePoints: 32, SolidVertices: 16, SolidIndices: 42, Styles: 1, Visuals: visuals}
	if got := backend.Last(); got != want {
		t.Fatalf("stats = %+v, want %+v", got, want)
	}
	if r.Frames() != 1 {
		t.Fatalf("Frames = %d", r.Frames())
	}
}

func TestDrawFrameSkipsPartialTriangle(t *testing.T) {
	backend := NewStatsBackend()
	packet := &RenderPacket{
		SolidVertices: make([]geometry.PositionData, 2),
		SolidIndices:  []uint32{0, 1},
	}
	if !packet.IsEmpty() {
		t.Fatal("packet with two indices is not empty")
	}
	if err := New(backend).DrawFrame(packet); err != nil {
		t.Fatal(err)
	}
	if backend.Last().SolidIndices != 0 {
		t.Fatal("uploaded an incomplete triangle")
	}
}

type failingBackend struct {
	StatsBackend
	err error
}

func (b *failingBackend) UploadWire([]geometry.PositionData, []commands.StyleData) error {
	return b.err
}

func TestDrawFrameUploadError(t *testing.T) {
	boom := errors.New("device lost")
	packet := &RenderPacket{Wire: make([]geometry.PositionData, 2)}
	err := New(&failingBackend{err: boom}).DrawFrame(packet)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}
