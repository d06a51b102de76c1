package model

// Rect is a rectangle in global screen coordinates (points, origin top-left).
type Rect struct {
	X      float64 `yaml:"x"      json:"x"`
	Y      float64 `yaml:"y"      json:"y"`
	Width  float64 `yaml:"width"  json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (x, y float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Window represents an application window.
type Window struct {
	ID        uint32 `yaml:"id"                  json:"id"`
	PID       int    `yaml:"pid"                 json:"pid"`
	Title     string `yaml:"title"               json:"title"`
	Bounds    Rect   `yaml:"bounds"              json:"bounds"`
	Space     Space  `yaml:"space"               json:"space"`
	Focusable bool   `yaml:"focusable,omitempty" json:"focusable,omitempty"`
}
