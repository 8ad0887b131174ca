package math

var (
	ColorWhite   = Color{1, 1, 1, 1}
	ColorBlack   = Color{0, 0, 0, 1}
	ColorRed     = Color{1, 0, 0, 1}
	ColorGreen   = Color{0, 1, 0, 1}
	ColorBlue    = Color{0, 0, 1, 1}
	ColorYellow  = Color{1, 0.92156863, 0.015686275, 1}
	ColorCyan    = Color{0, 1, 1, 1}
	ColorMagenta = Color{1, 0, 1, 1}
	ColorGray    = Color{0.5, 0.5, 0.5, 1}
	ColorClear   = Color{0, 0, 0, 0}
)

func NewColor(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

func (c Color) WithRed(r float32) Color {
	c.R = r
	return c
}

func (c Color) WithGreen(g float32) Color {
	c.G = g
	return c
}

func (c Color) WithBlue(b float32) Color {
	c.B = b
	return c
}

func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// WithAlphaMultiplied scales the alpha channel, keeping it within 0-1.
func (c Color) WithAlphaMultiplied(factor float32) Color {
	c.A = Clamp(c.A*factor, 0, 1)
	return c
}

// Clamped returns the colour with every channel clamped to 0-1.
func (c Color) Clamped() Color {
	return Color{
		R: Clamp(c.R, 0, 1),
		G: Clamp(c.G, 0, 1),
		B: Clamp(c.B, 0, 1),
		A: Clamp(c.A, 0, 1),
	}
}

func (c Color) ToVec4() Vec4 {
	return Vec4{c.R, c.G, c.B, c.A}
}
