//go:build darwin && !cgo

package darwin

import (
	"github.com/pkg/errors"

	"github.com/mj1618/switcheroo/internal/platform"
)

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return nil, errors.New("switcheroo requires CGo to access the window server and accessibility APIs\n" +
			"Please rebuild with CGo enabled: CGO_ENABLED=1 go build")
	}
}
