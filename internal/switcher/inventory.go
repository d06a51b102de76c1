package switcher

import (
	"sort"

	"github.com/mj1618/switcheroo/internal/model"
)

// Inventory is a read-only view of one refresh generation. Accessors return
// copies, so callers cannot mutate the published state.
type Inventory struct {
	apps    map[int]*model.App
	windows map[uint32]*model.Window
}

func newInventory(apps map[int]*model.App) Inventory {
	inv := Inventory{
		apps:    apps,
		windows: make(map[uint32]*model.Window),
	}
	for _, app := range apps {
		for i := range app.Windows {
			inv.windows[app.Windows[i].ID] = &app.Windows[i]
		}
	}
	return inv
}

// Len returns the number of applications.
func (inv Inventory) Len() int {
	return len(inv.apps)
}

// App returns the application with the given pid.
func (inv Inventory) App(pid int) (model.App, bool) {
	app, ok := inv.apps[pid]
	if !ok {
		return model.App{}, false
	}
	return app.Clone(), true
}

// Window returns the window with the given id.
func (inv Inventory) Window(id uint32) (model.Window, bool) {
	w, ok := inv.windows[id]
	if !ok {
		return model.Window{}, false
	}
	return *w, true
}

// Apps returns every application ordered by pid.
func (inv Inventory) Apps() []model.App {
	out := make([]model.App, 0, len(inv.apps))
	for _, app := range inv.apps {
		out = append(out, app.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out
}

// WindowCount returns the number of windows across all applications.
func (inv Inventory) WindowCount() int {
	return len(inv.windows)
}
