//go:build !linux

package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/ardnew/m24c64/pkg"
)

func openHardware(path string) (hardwareBus, error) {
	return nil, fmt.Errorf("%w: %s: i2c-dev is not available on %s", pkg.ErrPort, path, runtime.GOOS)
}

func writeAdapters(w io.Writer) error {
	return fmt.Errorf("%w: i2c-dev is not available on %s", pkg.ErrPort, runtime.GOOS)
}
