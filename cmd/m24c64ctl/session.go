package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ardnew/m24c64/hal"
	"github.com/ardnew/m24c64/hal/sim"
	"github.com/ardnew/m24c64/m24c64"
	"github.com/ardnew/m24c64/pkg"
)

// ErrNoIDPage indicates an identification page command on a base-family part.
var ErrNoIDPage = errors.New("identification page requires family " + FamilyExtended)

// session is an open device for the duration of one command or shell.
type session struct {
	cfg Config
	mem m24c64.Memory
	id  m24c64.Identification // nil for the base family

	closer func() error
}

// openSession opens the configured bus and wraps it in the driver for the
// configured family.
func openSession(cfg Config) (*session, error) {
	var (
		bus    hal.I2C
		closer func() error
	)

	if path, ok := cfg.SimPath(); ok {
		chip, err := sim.LoadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			pkg.LogInfo(pkg.ComponentCLI, "creating simulated chip", "path", path)
			chip = sim.New(cfg.Address, cfg.HasIDPage())
		case err != nil:
			return nil, err
		default:
			warnSimMismatch(cfg, chip)
		}
		bus = chip
		closer = func() error { return chip.SaveFile(path) }
	} else {
		hw, err := openHardware(cfg.Bus)
		if err != nil {
			return nil, err
		}
		bus = hw
		closer = hw.Close
	}

	s := &session{cfg: cfg, closer: closer}
	dev := m24c64.New(bus, m24c64.Config{Address: cfg.Address})
	if cfg.HasIDPage() {
		d := dev.WithIDPage()
		s.mem, s.id = d, d
	} else {
		s.mem = dev
	}

	pkg.LogDebug(pkg.ComponentCLI, "session opened",
		"bus", cfg.Bus, "address", cfg.Address, "family", cfg.Family)
	return s, nil
}

// warnSimMismatch logs when a stored chip does not answer to the configured
// chip enable or lacks the configured family's identification page. The
// stored chip is used as is, so its commands fail on the bus.
func warnSimMismatch(cfg Config, chip *sim.Chip) {
	if chip.ChipEnable() == cfg.Address&0x07 && chip.HasIDPage() == cfg.HasIDPage() {
		return
	}
	family := FamilyBase
	if chip.HasIDPage() {
		family = FamilyExtended
	}
	pkg.LogWarn(pkg.ComponentCLI, "simulated chip does not match configuration",
		"bus", cfg.Bus,
		"chip_address", chip.ChipEnable(), "address", cfg.Address,
		"chip_family", family, "family", cfg.Family)
}

// identification returns the identification page interface or ErrNoIDPage.
func (s *session) identification() (m24c64.Identification, error) {
	if s.id == nil {
		return nil, ErrNoIDPage
	}
	return s.id, nil
}

// Close releases the bus, saving simulated chip state.
func (s *session) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer()
	s.closer = nil
	if err != nil {
		return fmt.Errorf("close %s: %w", s.cfg.Bus, err)
	}
	return nil
}

// hardwareBus is a transport backed by an operating system device.
type hardwareBus interface {
	hal.I2C
	Close() error
}
