package cmd

import (
	"errors"
	"fmt"

	"github.com/mj1618/switcheroo/internal/platform"
	"github.com/mj1618/switcheroo/internal/rank"
	"github.com/mj1618/switcheroo/internal/switcher"
)

var errAccessibility = errors.New(
	"accessibility permission required\n\n" +
		"Grant permission at: System Settings > Privacy & Security > Accessibility\n" +
		"Add your terminal app (e.g. Terminal.app, iTerm2, or the IDE running this command).\n" +
		"Then restart the terminal and try again.")

// newManager builds a switcher manager over the platform provider.
// Swapped in tests.
var newManager = func() (*switcher.Manager, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	if !provider.Accessibility.Trusted() {
		return nil, errAccessibility
	}
	if err := provider.Accessibility.SetMessagingTimeout(cfg.MessagingTimeout); err != nil {
		log.Warn("failed to set accessibility messaging timeout", err, "seconds", cfg.MessagingTimeout)
	}
	return switcher.NewManager(provider, switcher.Options{
		Resolve:  cfg.ResolveOptions(),
		IconSize: cfg.IconSize,
		Logger:   log,
	}), nil
}

// refreshedManager returns a manager that has completed one refresh.
// The caller must Close it.
func refreshedManager() (*switcher.Manager, error) {
	mgr, err := newManager()
	if err != nil {
		return nil, err
	}
	if err := mgr.Refresh(); err != nil {
		mgr.Close()
		return nil, fmt.Errorf("failed to enumerate windows: %w", err)
	}
	return mgr, nil
}

// rankWindows returns the manager's windows filtered by app and ranked by query.
func rankWindows(mgr *switcher.Manager, query, app string) []rank.Result {
	return rank.Rank(query, rank.FilterApp(rank.Candidates(mgr.Apps()), app))
}
