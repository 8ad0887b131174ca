package commands

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spaghettifunk/drawbug/engine/core"
	"github.com/spaghettifunk/drawbug/engine/math"
)

func newTestStream(t *testing.T) *Stream {
	t.Helper()
	s, err := NewStream(64, 0)
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	return s
}

// readTags decodes every record of s and returns the tags in order.
func readTags(t *testing.T, s *Stream) []Command {
	t.Helper()
	r := NewReader(s.Bytes())
	var tags []Command
	for r.More() {
		tag, err := r.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		tags = append(tags, tag)
	}
	if err := r.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	return tags
}

func equalTags(a, b []Command) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLineRecordLayout(t *testing.T) {
	s := newTestStream(t)
	if err := s.Line(math.NewVec3(1, 2, 3), math.NewVec3(4, 5, 6)); err != nil {
		t.Fatal(err)
	}
	if want := TagSize + StyleSize + TagSize + LineSize; s.Len() != want {
		t.Fatalf("Len = %d, want %d", s.Len(), want)
	}
	if got := readTags(t, s); !equalTags(got, []Command{CommandStyle, CommandLine}) {
		t.Fatalf("tags = %v", got)
	}
}

func TestStyleIsWrittenLazily(t *testing.T) {
	s := newTestStream(t)
	s.StyleColor(math.ColorRed)
	s.StyleColor(math.ColorBlue)
	s.StyleForward(true)
	_ = s.Line(math.NewVec3Zero(), math.NewVec3One())
	_ = s.Line(math.NewVec3One(), math.NewVec3Zero())

	if got := readTags(t, s); !equalTags(got, []Command{CommandStyle, CommandLine, CommandLine}) {
		t.Fatalf("tags = %v", got)
	}

	r := NewReader(s.Bytes())
	if _, err := r.Next(); err != nil {
		t.Fatal(err)
	}
	style := r.Style()
	if style.Color != math.ColorBlue || !style.Forward {
		t.Fatalf("style = %+v, want blue forward", style)
	}
}

func TestStyleChangeBetweenLines(t *testing.T) {
	s := newTestStream(t)
	s.StyleColor(math.ColorRed)
	_ = s.Line(math.NewVec3Zero(), math.NewVec3One())
	s.StyleColor(math.ColorBlue)
	_ = s.Line(math.NewVec3One(), math.NewVec3Zero())

	want := []Command{CommandStyle, CommandLine, CommandStyle, CommandLine}
	if got := readTags(t, s); !equalTags(got, want) {
		t.Fatalf("tags = %v, want %v", got, want)
	}
}

func TestDrawModeAndMatrixFlushStyle(t *testing.T) {
	s := newTestStream(t)
	if err := s.DrawMode(DrawModeSolid); err != nil {
		t.Fatal(err)
	}
	if err := s.Matrix(math.NewMat4Translation(math.NewVec3(1, 0, 0))); err != nil {
		t.Fatal(err)
	}
	_ = s.Sphere(math.NewVec3Zero(), 1)

	want := []Command{CommandStyle, CommandDrawMode, CommandMatrix, CommandSphere}
	if got := readTags(t, s); !equalTags(got, want) {
		t.Fatalf("tags = %v, want %v", got, want)
	}
	if s.CurrentDrawMode() != DrawModeSolid {
		t.Fatalf("CurrentDrawMode = %v", s.CurrentDrawMode())
	}
	if s.CurrentMatrix().Translation() != math.NewVec3(1, 0, 0) {
		t.Fatalf("CurrentMatrix translation = %v", s.CurrentMatrix().Translation())
	}
}

func TestInvalidDrawMode(t *testing.T) {
	s := newTestStream(t)
	if err := s.DrawMode(DrawMode(7)); !errors.Is(err, core.ErrInvalidDrawMode) {
		t.Fatalf("err = %v, want ErrInvalidDrawMode", err)
	}
	if s.Len() != 0 {
		t.Fatalf("Len = %d after rejected draw mode", s.Len())
	}
}

func TestOddLinesRejected(t *testing.T) {
	s := newTestStream(t)
	_ = s.Line(math.NewVec3Zero(), math.NewVec3One())
	before := append([]byte(nil), s.Bytes()...)

	err := s.Lines([]math.Vec3{{X: 1}, {Y: 1}, {Z: 1}})
	if !errors.Is(err, core.ErrOddLineCount) {
		t.Fatalf("err = %v, want ErrOddLineCount", err)
	}
	if !bytes.Equal(before, s.Bytes()) {
		t.Fatal("stream modified by a rejected Lines call")
	}
}

func TestLinesRecord(t *testing.T) {
	s := newTestStream(t)
	points := []math.Vec3{{X: 1}, {Y: 2}, {Z: 3}, {X: 4, Y: 4}}
	if err := s.Lines(points); err != nil {
		t.Fatal(err)
	}
	r := NewReader(s.Bytes())
	_, _ = r.Next()
	tag, err := r.Next()
	if err != nil || tag != CommandLines {
		t.Fatalf("Next = %v, %v", tag, err)
	}
	if r.LinePoints() != len(points) {
		t.Fatalf("LinePoints = %d", r.LinePoints())
	}
	for i, p := range points {
		if r.LinePoint(i) != p {
			t.Fatalf("point %d = %v, want %v", i, r.LinePoint(i), p)
		}
	}
	if err := r.Finish(); err != nil {
		t.Fatal(err)
	}
}

func TestEmptyLinesWritesNothing(t *testing.T) {
	s := newTestStream(t)
	if err := s.Lines(nil); err != nil {
		t.Fatal(err)
	}
	if s.HasData() {
		t.Fatal("empty Lines wrote a record")
	}
}

func TestStreamCeiling(t *testing.T) {
	s, err := NewStream(16, 64)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Line(math.NewVec3Zero(), math.NewVec3One()); err != nil {
		t.Fatalf("first line: %v", err)
	}
	before := s.Len()
	if err := s.Line(math.NewVec3Zero(), math.NewVec3One()); !errors.Is(err, core.ErrStreamTooLarge) {
		t.Fatalf("err = %v, want ErrStreamTooLarge", err)
	}
	if s.Len() != before {
		t.Fatalf("Len = %d after rejected record, want %d", s.Len(), before)
	}
}

func TestStreamGrowsFromSmallCapacity(t *testing.T) {
	s, _ := NewStream(1, 0)
	for i := 0; i < 100; i++ {
		if err := s.Box(math.NewVec3(float32(i), 0, 0), math.NewVec3One(), math.NewQuatIdentity()); err != nil {
			t.Fatal(err)
		}
	}
	tags := readTags(t, s)
	if len(tags) != 101 {
		t.Fatalf("decoded %d records, want 101", len(tags))
	}
}

func TestClearRestoresDefaults(t *testing.T) {
	s := newTestStream(t)
	s.StyleColor(math.ColorRed)
	s.StyleForward(true)
	_ = s.DrawMode(DrawModeBoth)
	_ = s.Matrix(math.NewMat4Scale(math.NewVec3(2, 2, 2)))
	capBefore := s.Cap()

	s.Clear()

	if s.Len() != 0 || s.Cap() != capBefore {
		t.Fatalf("Len/Cap = %d/%d after Clear", s.Len(), s.Cap())
	}
	if s.Style() != DefaultStyle() || !s.PendingStyle() {
		t.Fatalf("style = %+v pending=%v", s.Style(), s.PendingStyle())
	}
	if s.CurrentDrawMode() != DrawModeWire || !s.CurrentMatrix().IsIdentity() {
		t.Fatal("draw mode or matrix not reset")
	}
}

func TestMergeFromIsByteCopy(t *testing.T) {
	a := newTestStream(t)
	b := newTestStream(t)
	_ = a.Line(math.NewVec3Zero(), math.NewVec3One())
	b.StyleColor(math.ColorGreen)
	_ = b.DrawMode(DrawModeSolid)
	_ = b.Circle(math.NewVec3Zero(), 2, math.NewQuatIdentity())

	want := append(append([]byte(nil), a.Bytes()...), b.Bytes()...)
	if err := a.MergeFrom(b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), want) {
		t.Fatal("merged bytes differ from the concatenation")
	}
	if a.CurrentDrawMode() != DrawModeSolid || !a.PendingStyle() {
		t.Fatal("merged stream does not track the source state")
	}
	if !b.HasData() {
		t.Fatal("source stream was modified by the merge")
	}
}

func TestWriteStateResetSkipsStyle(t *testing.T) {
	s := newTestStream(t)
	if err := s.WriteStateReset(); err != nil {
		t.Fatal(err)
	}
	want := []Command{CommandDrawMode, CommandMatrix}
	if got := readTags(t, s); !equalTags(got, want) {
		t.Fatalf("tags = %v, want %v", got, want)
	}
	if !s.PendingStyle() {
		t.Fatal("state reset flushed the style")
	}
}

func TestPointRecordsAxisLines(t *testing.T) {
	s := newTestStream(t)
	_ = s.Point(math.NewVec3(1, 1, 1), 0.5)
	_ = s.Point2D(math.NewVec2(0, 0), 1)
	want := []Command{CommandStyle, CommandLine, CommandLine, CommandLine, CommandLine, CommandLine}
	if got := readTags(t, s); !equalTags(got, want) {
		t.Fatalf("tags = %v", got)
	}

	r := NewReader(s.Bytes())
	_, _ = r.Next()
	_, _ = r.Next()
	line := r.Line()
	if line.A != math.NewVec3(0.5, 1, 1) || line.B != math.NewVec3(1.5, 1, 1) {
		t.Fatalf("x axis line = %+v", line)
	}
}

func TestRectangleFromPoints(t *testing.T) {
	s := newTestStream(t)
	_ = s.RectangleFromPoints(math.NewVec3(3, 4, 0), math.NewVec3(1, 0, 0), math.NewQuatIdentity())
	r := NewReader(s.Bytes())
	_, _ = r.Next()
	_, _ = r.Next()
	rect := r.Rectangle()
	if rect.Position != math.NewVec3(2, 2, 0) || rect.Size != math.NewVec2(2, 4) {
		t.Fatalf("rectangle = %+v", rect)
	}
}

func TestShapeRoundTrip(t *testing.T) {
	s := newTestStream(t)
	rot := math.NewQuatRotateY(0.3)
	pos := math.NewVec3(1, -2, 3)

	_ = s.Rectangle(pos, math.NewVec2(2, 3), rot)
	_ = s.Circle(pos, 1.5, rot)
	_ = s.HollowCircle(pos, 1, 2, rot)
	_ = s.Capsule(pos, math.NewVec2(1, 4), rot, true)
	_ = s.Box(pos, math.NewVec3(1, 2, 3), rot)
	_ = s.Sphere(pos, 4)
	_ = s.Cylinder(pos, 1, 5, rot)
	_ = s.Capsule3D(pos, 0.5, 3, rot)

	r := NewReader(s.Bytes())
	expect := func(want Command) {
		t.Helper()
		got, err := r.Next()
		if err != nil || got != want {
			t.Fatalf("Next = %v, %v; want %v", got, err, want)
		}
	}
	expect(CommandStyle)
	expect(CommandRectangle)
	if got := r.Rectangle(); got != (Rectangle{pos, math.NewVec2(2, 3), rot}) {
		t.Fatalf("rectangle = %+v", got)
	}
	expect(CommandCircle)
	if got := r.Circle(); got != (Circle{pos, rot, 1.5}) {
		t.Fatalf("circle = %+v", got)
	}
	expect(CommandHollowCircle)
	if got := r.HollowCircle(); got != (HollowCircle{pos, rot, 1, 2}) {
		t.Fatalf("hollow circle = %+v", got)
	}
	expect(CommandCapsule)
	if got := r.Capsule(); got != (Capsule{pos, math.NewVec2(1, 4), rot, true}) {
		t.Fatalf("capsule = %+v", got)
	}
	expect(CommandBox)
	if got := r.Box(); got != (Box{pos, math.NewVec3(1, 2, 3), rot}) {
		t.Fatalf("box = %+v", got)
	}
	expect(CommandSphere)
	if got := r.Sphere(); got != (Sphere{pos, 4}) {
		t.Fatalf("sphere = %+v", got)
	}
	expect(CommandCylinder)
	if got := r.Cylinder(); got != (Cylinder{pos, 1, 5, rot}) {
		t.Fatalf("cylinder = %+v", got)
	}
	expect(CommandCapsule3D)
	if got := r.Cylinder(); got != (Cylinder{pos, 0.5, 3, rot}) {
		t.Fatalf("capsule3d = %+v", got)
	}
	if r.More() {
		t.Fatal("bytes left after the last record")
	}
}

func TestReaderDetectsDamage(t *testing.T) {
	s := newTestStream(t)
	_ = s.Line(math.NewVec3Zero(), math.NewVec3One())
	valid := append([]byte(nil), s.Bytes()...)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"truncated payload", valid[:len(valid)-1], core.ErrStreamTruncated},
		{"truncated tag", append(append([]byte(nil), valid...), 0, 0), core.ErrStreamTruncated},
		{"zero padding", append(append([]byte(nil), valid...), 0, 0, 0, 0), core.ErrUnknownCommand},
		{"unknown tag", append(append([]byte(nil), valid...), 0xff, 0, 0, 0), core.ErrUnknownCommand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.data)
			var err error
			for r.More() && err == nil {
				_, err = r.Next()
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReaderRejectsOddLinesCount(t *testing.T) {
	data := []byte{
		byte(CommandLines), 0, 0, 0,
		1, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
	_, err := NewReader(data).Next()
	if !errors.Is(err, core.ErrCorruptRecord) {
		t.Fatalf("err = %v, want ErrCorruptRecord", err)
	}
}

func TestDisposedStreamPanics(t *testing.T) {
	s := newTestStream(t)
	s.Dispose()
	if s.IsCreated() {
		t.Fatal("IsCreated after Dispose")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("use after Dispose did not panic")
		}
	}()
	_ = s.Line(math.NewVec3Zero(), math.NewVec3One())
}
