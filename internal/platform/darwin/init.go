//go:build darwin && cgo

package darwin

import "github.com/mj1618/switcheroo/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			WindowServer:  NewWindowServer(),
			Workspace:     NewWorkspace(),
			Accessibility: NewAccessibility(),
		}, nil
	}
}
