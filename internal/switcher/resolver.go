package switcher

import "github.com/mj1618/switcheroo/internal/platform"

// DefaultProbeLimit is the number of remote-token indices probed per process.
// It is an empirical bound: processes with very many windows may own
// elements beyond it, which then stay unresolved.
const DefaultProbeLimit = 100

// DefaultSubroles are the subroles of elements accepted as real windows.
var DefaultSubroles = []string{"AXStandardWindow", "AXDialog"}

// ResolveOptions tunes the handle probe.
type ResolveOptions struct {
	Limit    int
	Subroles []string
}

func (o ResolveOptions) withDefaults() ResolveOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultProbeLimit
	}
	if len(o.Subroles) == 0 {
		o.Subroles = DefaultSubroles
	}
	return o
}

// Resolve probes the accessibility elements of pid by remote-token index and
// returns a handle for each requested window id it finds. Ids not found within
// the probe limit are omitted. The caller owns the returned elements.
func Resolve(ax platform.Accessibility, pid int, targets map[uint32]struct{}, opts ResolveOptions) map[uint32]platform.Element {
	opts = opts.withDefaults()

	accepted := make(map[string]bool, len(opts.Subroles))
	for _, s := range opts.Subroles {
		accepted[s] = true
	}
	remaining := make(map[uint32]struct{}, len(targets))
	for id := range targets {
		remaining[id] = struct{}{}
	}

	found := make(map[uint32]platform.Element)
	token := newProbeToken(pid)
	for i := 0; i < opts.Limit && len(remaining) > 0; i++ {
		el, ok := ax.ElementForToken(token.at(uint64(i)))
		if !ok {
			continue
		}
		wid, err := el.WindowID()
		if err != nil || wid == 0 {
			el.Release()
			continue
		}
		if _, want := remaining[wid]; !want || !isWindowElement(el, accepted) {
			el.Release()
			continue
		}
		delete(remaining, wid)
		found[wid] = el
	}
	return found
}

func isWindowElement(el platform.Element, accepted map[string]bool) bool {
	subrole, err := el.Subrole()
	if err != nil {
		return false
	}
	return accepted[subrole]
}
