//go:build darwin

package main

// Registers the macOS backend with internal/platform.
import _ "github.com/mj1618/switcheroo/internal/platform/darwin"
