package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/drawbug/engine/core"
	"github.com/spaghettifunk/drawbug/engine/math"
)

// DefaultFileName is the settings file looked up next to the executable.
const DefaultFileName = "drawbug.toml"

// Capacity sizes the streams and output buffers when a context is created.
// Changing it at runtime has no effect until the next Initialize.
type Capacity struct {
	FrameStreamBytes    int `toml:"frame_stream_bytes"`
	FixedStreamBytes    int `toml:"fixed_stream_bytes"`
	DurationStreamBytes int `toml:"duration_stream_bytes"`
	DurationPoolSlots   int `toml:"duration_pool_slots"`
	MaxStreamBytes      int `toml:"max_stream_bytes"`
	WireVertices        int `toml:"wire_vertices"`
	SolidVertices       int `toml:"solid_vertices"`
	SolidIndices        int `toml:"solid_indices"`
	StyleEntries        int `toml:"style_entries"`
}

// Visual settings can be applied to a running context.
type Visual struct {
	OccludedWireOpacity  float32    `toml:"occluded_wire_opacity"`
	OccludedSolidOpacity float32    `toml:"occluded_solid_opacity"`
	DrawPhysicsEnabled   bool       `toml:"draw_physics_enabled"`
	HitColor             math.Color `toml:"hit_color"`
	NoHitColor           math.Color `toml:"no_hit_color"`
	PointColor           math.Color `toml:"point_color"`
	PointSize            float32    `toml:"point_size"`
}

type Settings struct {
	LogLevel string   `toml:"log_level"`
	Capacity Capacity `toml:"capacity"`
	Visual   Visual   `toml:"visual"`
}

func Default() *Settings {
	return &Settings{
		LogLevel: "info",
		Capacity: Capacity{
			FrameStreamBytes:    2048,
			FixedStreamBytes:    1024,
			DurationStreamBytes: 512,
			DurationPoolSlots:   200,
			MaxStreamBytes:      256 << 20,
			WireVertices:        2048,
			SolidVertices:       2048,
			SolidIndices:        6144,
			StyleEntries:        1024,
		},
		Visual: Visual{
			OccludedWireOpacity:  0.05,
			OccludedSolidOpacity: 0,
			DrawPhysicsEnabled:   true,
			HitColor:             math.ColorGreen,
			NoHitColor:           math.ColorRed,
			PointColor:           math.ColorRed,
			PointSize:            0.1,
		},
	}
}

// Load reads settings from path on top of the defaults. A missing file is
// not an error and yields the defaults.
func Load(path string) (*Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		core.LogDebug("no settings file at %s, using defaults", path)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if err := s.decode(data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s *Settings) decode(data []byte) error {
	return toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(s)
}

// Save writes the settings to path as TOML.
func Save(path string, s *Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Validate checks that every value is usable.
func (s *Settings) Validate() error {
	if _, err := core.ParseLogLevel(s.LogLevel); err != nil {
		return err
	}
	c := s.Capacity
	for _, v := range []struct {
		name  string
		value int
	}{
		{"frame_stream_bytes", c.FrameStreamBytes},
		{"fixed_stream_bytes", c.FixedStreamBytes},
		{"duration_stream_bytes", c.DurationStreamBytes},
		{"wire_vertices", c.WireVertices},
		{"solid_vertices", c.SolidVertices},
		{"solid_indices", c.SolidIndices},
		{"style_entries", c.StyleEntries},
	} {
		if v.value < 0 {
			return fmt.Errorf("capacity.%s = %d: %w", v.name, v.value, core.ErrInvalidCapacity)
		}
	}
	if c.DurationPoolSlots <= 0 {
		return fmt.Errorf("capacity.duration_pool_slots = %d: %w", c.DurationPoolSlots, core.ErrInvalidCapacity)
	}
	largest := math.MaxComponent(c.FrameStreamBytes, c.FixedStreamBytes, c.DurationStreamBytes)
	if c.MaxStreamBytes <= 0 || largest > c.MaxStreamBytes {
		return fmt.Errorf("capacity.max_stream_bytes = %d below initial size %d: %w", c.MaxStreamBytes, largest, core.ErrInvalidCapacity)
	}
	v := s.Visual
	if v.OccludedWireOpacity < 0 || v.OccludedWireOpacity > 1 || v.OccludedSolidOpacity < 0 || v.OccludedSolidOpacity > 1 {
		return fmt.Errorf("visual opacities must be within [0, 1]")
	}
	if v.PointSize < 0 {
		return fmt.Errorf("visual.point_size = %v must not be negative", v.PointSize)
	}
	return nil
}
