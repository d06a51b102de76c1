package model

// App is a running GUI application and the windows it currently owns.
type App struct {
	PID     int      `yaml:"pid"                json:"pid"`
	Name    string   `yaml:"name"               json:"name"`
	HasIcon bool     `yaml:"has_icon,omitempty" json:"has_icon,omitempty"`
	Windows []Window `yaml:"windows"            json:"windows"`
}

// Clone returns a copy of the app that shares no memory with a.
func (a App) Clone() App {
	c := a
	c.Windows = append([]Window(nil), a.Windows...)
	return c
}
