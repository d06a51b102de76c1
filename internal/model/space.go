package model

// SpaceType is the window server's classification of a space.
type SpaceType int

const (
	// SpaceUser is an ordinary desktop created by the user.
	SpaceUser SpaceType = 0
	// SpaceFullscreen is a space holding a single full-screen application.
	SpaceFullscreen SpaceType = 4
)

func (t SpaceType) String() string {
	switch t {
	case SpaceUser:
		return "user"
	case SpaceFullscreen:
		return "fullscreen"
	default:
		return "other"
	}
}

// Space is a virtual desktop on a particular display.
//
// DisplayIndex is the 1-based position of the display in enumeration order.
// Index is the ordinal among user spaces across all displays, starting at 1;
// zero means the space has no ordinal (non-user spaces).
type Space struct {
	ID           uint64    `yaml:"id"              json:"id"`
	Type         SpaceType `yaml:"type"            json:"type"`
	DisplayIndex int       `yaml:"display_index"   json:"display_index"`
	DisplayID    string    `yaml:"display_id"      json:"display_id"`
	Index        int       `yaml:"index,omitempty" json:"index,omitempty"`
}

// IsUser reports whether the space is an ordinary user desktop.
func (s Space) IsUser() bool {
	return s.Type == SpaceUser
}
