//go:build linux

package main

import (
	"fmt"
	"io"

	"github.com/ardnew/m24c64/hal/linux"
	"github.com/ardnew/m24c64/pkg"
)

func openHardware(path string) (hardwareBus, error) {
	bus, err := linux.Open(path)
	if err != nil {
		return nil, err
	}
	return bus, nil
}

func writeAdapters(w io.Writer) error {
	adapters, err := linux.Adapters()
	if err != nil {
		return fmt.Errorf("%w: list adapters: %w", pkg.ErrPort, err)
	}
	for _, a := range adapters {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", a.Path(), a.Name); err != nil {
			return err
		}
	}
	return nil
}
