package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/drawbug/engine/core"
	"github.com/spaghettifunk/drawbug/engine/math"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if *s != *Default() {
		t.Fatalf("settings = %+v, want defaults", s)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	want := Default()
	want.LogLevel = "debug"
	want.Capacity.DurationPoolSlots = 8
	want.Visual.HitColor = math.ColorBlue
	want.Visual.PointSize = 0.25

	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *want {
		t.Fatalf("loaded %+v, want %+v", got, want)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	data := "log_level = \"warn\"\n\n[visual]\noccluded_wire_opacity = 0.5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.LogLevel != "warn" || s.Visual.OccludedWireOpacity != 0.5 {
		t.Fatalf("file values not applied: %+v", s)
	}
	if s.Capacity != Default().Capacity || s.Visual.PointSize != 0.1 {
		t.Fatalf("defaults lost: %+v", s)
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte("colour = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("unknown field accepted")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Settings)
		want   error
	}{
		{"negative stream", func(s *Settings) { s.Capacity.FrameStreamBytes = -1 }, core.ErrInvalidCapacity},
		{"no pool slots", func(s *Settings) { s.Capacity.DurationPoolSlots = 0 }, core.ErrInvalidCapacity},
		{"ceiling below initial size", func(s *Settings) { s.Capacity.MaxStreamBytes = 100 }, core.ErrInvalidCapacity},
		{"bad log level", func(s *Settings) { s.LogLevel = "loud" }, nil},
		{"opacity above one", func(s *Settings) { s.Visual.OccludedSolidOpacity = 2 }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			err := s.Validate()
			if err == nil {
				t.Fatal("Validate accepted invalid settings")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := Save(path, Default()); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	changed := Default()
	changed.Visual.OccludedWireOpacity = 0.75
	if err := Save(path, changed); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case s := <-w.Updates():
			if s.Visual.OccludedWireOpacity == 0.75 {
				return
			}
		case err := <-w.Errors():
			// A write can be observed before it is complete; the next event
			// carries the full file.
			t.Logf("transient reload error: %v", err)
		case <-deadline:
			t.Fatal("no reload within 5s")
		}
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); !errors.Is(err, ErrWatcherClosed) {
		t.Fatalf("err = %v, want ErrWatcherClosed", err)
	}
}
