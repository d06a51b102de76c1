package switcher

import (
	"github.com/mj1618/switcheroo/internal/logger"
	"github.com/mj1618/switcheroo/internal/model"
	"github.com/mj1618/switcheroo/internal/platform"
)

// State is the lifecycle state of a Manager.
type State int

const (
	StateEmpty State = iota
	StatePopulated
	StateRefreshing
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	case StateRefreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}

// Options configures a Manager.
type Options struct {
	Resolve  ResolveOptions
	IconSize int
	Logger   *logger.Logger
}

// Manager owns the published inventory and the handle and icon caches.
// It is not safe for concurrent use; callers serialize access.
type Manager struct {
	ws  platform.WindowServer
	wsp platform.Workspace
	ax  platform.Accessibility

	opts    Options
	log     *logger.Logger
	focuser *Focuser

	state     State
	inventory Inventory
	catalog   *Catalog
	handles   map[uint32]platform.Element
	icons     map[int]*model.Icon
}

// NewManager creates an empty manager over the provider's backends.
func NewManager(p *platform.Provider, opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.IconSize <= 0 {
		opts.IconSize = DefaultIconSize
	}
	opts.Resolve = opts.Resolve.withDefaults()
	return &Manager{
		ws:        p.WindowServer,
		wsp:       p.Workspace,
		ax:        p.Accessibility,
		opts:      opts,
		log:       opts.Logger,
		focuser:   NewFocuser(p.WindowServer, p.Workspace, opts.Logger),
		inventory: newInventory(map[int]*model.App{}),
		catalog:   &Catalog{Windows: map[uint32]model.Space{}},
		handles:   make(map[uint32]platform.Element),
		icons:     make(map[int]*model.Icon),
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	return m.state
}

// Refresh rebuilds the inventory from live window-server state. On failure the
// previously published inventory is kept and the error is returned.
func (m *Manager) Refresh() (err error) {
	if m.state == StateRefreshing {
		return ErrRefreshInProgress
	}
	prev := m.state
	m.state = StateRefreshing
	defer func() {
		if err != nil {
			m.state = prev
		}
	}()

	catalog, err := BuildCatalog(m.ws)
	if err != nil {
		return err
	}
	apps, err := Enumerate(m.ws, m.wsp, catalog)
	if err != nil {
		return err
	}

	liveWindows := make(map[uint32]int)
	for pid, app := range apps {
		for _, w := range app.Windows {
			liveWindows[w.ID] = pid
		}
	}

	m.evict(apps, liveWindows)
	m.fetchIcons(apps)
	m.resolveHandles(liveWindows)

	for pid, app := range apps {
		_, app.HasIcon = m.icons[pid]
		for i := range app.Windows {
			_, app.Windows[i].Focusable = m.handles[app.Windows[i].ID]
		}
	}

	m.inventory = newInventory(apps)
	m.catalog = catalog
	m.state = StatePopulated
	m.log.Debug("inventory refreshed",
		"apps", len(apps),
		"windows", len(liveWindows),
		"handles", len(m.handles),
		"icons", len(m.icons))
	return nil
}

// evict drops cached handles and icons whose window or process is gone.
func (m *Manager) evict(apps map[int]*model.App, liveWindows map[uint32]int) {
	for wid, el := range m.handles {
		if _, ok := liveWindows[wid]; !ok {
			el.Release()
			delete(m.handles, wid)
		}
	}
	for pid := range m.icons {
		if _, ok := apps[pid]; !ok {
			delete(m.icons, pid)
		}
	}
}

func (m *Manager) fetchIcons(apps map[int]*model.App) {
	for pid := range apps {
		if _, ok := m.icons[pid]; ok {
			continue
		}
		bm, err := m.wsp.AppIcon(pid, m.opts.IconSize)
		if err != nil {
			m.log.Warn("icon rasterization failed", err, "pid", pid)
			continue
		}
		if bm == nil {
			continue
		}
		icon, err := NormalizeIcon(bm)
		if err != nil {
			m.log.Warn("icon skipped", err, "pid", pid, "bpp", bm.BitsPerPixel)
			continue
		}
		m.icons[pid] = icon
	}
}

// resolveHandles probes each process once for its windows lacking a handle.
func (m *Manager) resolveHandles(liveWindows map[uint32]int) {
	pending := make(map[int]map[uint32]struct{})
	for wid, pid := range liveWindows {
		if _, ok := m.handles[wid]; ok {
			continue
		}
		if pending[pid] == nil {
			pending[pid] = make(map[uint32]struct{})
		}
		pending[pid][wid] = struct{}{}
	}

	for pid, wids := range pending {
		found := Resolve(m.ax, pid, wids, m.opts.Resolve)
		for wid, el := range found {
			m.handles[wid] = el
		}
		if missing := len(wids) - len(found); missing > 0 {
			m.log.Debug("windows left unresolved", "pid", pid, "count", missing)
		}
	}
}

// Inventory returns the most recently published inventory.
func (m *Manager) Inventory() Inventory {
	return m.inventory
}

// Apps returns the published apps sorted by pid.
func (m *Manager) Apps() []model.App {
	return m.inventory.Apps()
}

// Spaces returns the space topology observed by the last successful refresh.
func (m *Manager) Spaces() []model.Space {
	return append([]model.Space(nil), m.catalog.Spaces...)
}

// ActiveSpace returns the id of the space currently shown on the active display.
func (m *Manager) ActiveSpace() uint64 {
	return m.ws.ActiveSpace()
}

// Icon returns a copy of the cached icon for pid.
func (m *Manager) Icon(pid int) (*model.Icon, bool) {
	icon, ok := m.icons[pid]
	if !ok {
		return nil, false
	}
	return icon.Clone(), true
}

// Target looks up a window and its cached handle for focusing.
func (m *Manager) Target(windowID uint32) (Target, error) {
	w, ok := m.inventory.Window(windowID)
	if !ok {
		return Target{}, wrap(ErrUnknownWindow, nil, "window %d", windowID)
	}
	el, ok := m.handles[windowID]
	if !ok {
		return Target{}, wrap(ErrUnresolved, nil, "window %d", windowID)
	}
	return Target{Window: w, PID: w.PID, Handle: el}, nil
}

// Focus brings the window with the given id to the foreground.
func (m *Manager) Focus(windowID uint32) error {
	t, err := m.Target(windowID)
	if err != nil {
		return err
	}
	return m.focuser.Focus(t)
}

// Close releases every cached handle and empties the manager.
func (m *Manager) Close() {
	for wid, el := range m.handles {
		el.Release()
		delete(m.handles, wid)
	}
	m.icons = make(map[int]*model.Icon)
	m.inventory = newInventory(map[int]*model.App{})
	m.state = StateEmpty
}
