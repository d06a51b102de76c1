package switcher

import (
	"github.com/mj1618/switcheroo/internal/model"
	"github.com/mj1618/switcheroo/internal/platform"
)

// normalLayer is the window layer of ordinary application windows. Menus,
// panels and the dock live on other layers.
const normalLayer = 0

// Enumerate cross-references the running applications with the on-screen
// window list and the space catalog. The result maps pid to App; windows that
// are not at the normal layer, belong to an untracked process, or are not on
// any enumerated space are dropped.
func Enumerate(ws platform.WindowServer, wsp platform.Workspace, catalog *Catalog) (map[int]*model.App, error) {
	running, err := wsp.RunningApps()
	if err != nil {
		return nil, wrap(ErrQueryFailure, err, "running applications")
	}

	apps := make(map[int]*model.App)
	for _, ra := range running {
		if ra.Policy != platform.PolicyRegular || ra.Terminated {
			continue
		}
		apps[ra.PID] = &model.App{PID: ra.PID, Name: ra.Name}
	}

	infos, err := ws.OnScreenWindows()
	if err != nil {
		return nil, wrap(ErrQueryFailure, err, "on-screen window list")
	}

	for _, info := range infos {
		if info.Layer != normalLayer {
			continue
		}
		app, ok := apps[info.PID]
		if !ok {
			continue
		}
		space, ok := catalog.Lookup(info.ID)
		if !ok {
			continue
		}
		if info.Bounds == nil {
			return nil, wrap(ErrBoundsUnavailable, nil, "window %d", info.ID)
		}
		app.Windows = append(app.Windows, model.Window{
			ID:     info.ID,
			PID:    info.PID,
			Title:  info.Title,
			Bounds: *info.Bounds,
			Space:  space,
		})
	}
	return apps, nil
}
