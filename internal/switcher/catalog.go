package switcher

import (
	"github.com/mj1618/switcheroo/internal/model"
	"github.com/mj1618/switcheroo/internal/platform"
)

// onScreenAllLevels asks WindowsOnSpace for on-screen windows at every level.
const onScreenAllLevels uint32 = 0x2

// Catalog records the space topology and which space each visible window
// is assigned to.
type Catalog struct {
	// Spaces lists every enumerated space in display order.
	Spaces []model.Space
	// Windows maps window id to its space.
	Windows map[uint32]model.Space
}

// Lookup returns the space a window is assigned to.
func (c *Catalog) Lookup(windowID uint32) (model.Space, bool) {
	s, ok := c.Windows[windowID]
	return s, ok
}

// BuildCatalog enumerates every display and space and records which space each
// visible window belongs to. Any failed query aborts the build.
func BuildCatalog(ws platform.WindowServer) (*Catalog, error) {
	displays, err := ws.ManagedDisplaySpaces()
	if err != nil {
		return nil, wrap(ErrQueryFailure, err, "managed display spaces")
	}

	catalog := &Catalog{Windows: make(map[uint32]model.Space)}
	ordinal := 0
	for di, display := range displays {
		for _, ms := range display.Spaces {
			space := model.Space{
				ID:           ms.ID,
				Type:         ms.Type,
				DisplayIndex: di + 1,
				DisplayID:    display.Identifier,
			}
			if ms.Type == model.SpaceUser {
				ordinal++
				space.Index = ordinal
			}
			catalog.Spaces = append(catalog.Spaces, space)

			ids, err := ws.WindowsOnSpace(ms.ID, onScreenAllLevels)
			if err != nil {
				return nil, wrap(ErrQueryFailure, err, "windows on space %d", ms.ID)
			}
			// A window listed on two spaces keeps the last one.
			for _, id := range ids {
				catalog.Windows[id] = space
			}
		}
	}
	return catalog, nil
}
