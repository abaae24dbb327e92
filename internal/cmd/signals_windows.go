//go:build windows
// +build windows

package cmd

import "os"

func notifySignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
