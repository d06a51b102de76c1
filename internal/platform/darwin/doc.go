//go:build darwin

// Package darwin provides the macOS window-server, workspace and
// accessibility backends using CoreGraphics, SkyLight, AppKit and the
// Accessibility API. All functionality requires CGo (Objective-C frameworks).
// When CGo is disabled, the registered provider reports how to rebuild.
package darwin
