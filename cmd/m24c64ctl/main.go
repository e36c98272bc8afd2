// Command m24c64ctl reads and writes M24C64 and M24C64-D I2C EEPROMs.
//
// Usage:
//
//	m24c64ctl [flags] <command> [args]
//
// The device is selected by a YAML configuration file (--config) and/or
// flags:
//
//	bus: /dev/i2c-1        # or sim:PATH for a simulated chip stored at PATH
//	address: 0             # chip-enable bits E2..E0
//	family: m24c64-d       # m24c64 or m24c64-d
//	log_level: warn        # debug, info, warn, error
//	log_format: text       # text or json
//
// Commands:
//
//	read OFFSET LENGTH         Read from the main array
//	write OFFSET HEXBYTES      Write within one page of the main array
//	dump                       Dump the main array
//	fill BYTE                  Fill the main array
//	id read [OFFSET LENGTH]    Read the identification page
//	id write OFFSET HEXBYTES   Write the identification page
//	id lock --yes              Permanently lock the identification page
//	shell                      Interactive prompt
//	adapters                   List i2c-dev adapters
//
// Exit status is 2 for requests rejected as out of bounds, 3 for bus and
// device failures and 1 for anything else.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/ardnew/m24c64/pkg"
)

// Version is set with -ldflags "-X main.Version=..." by release builds.
var Version string

func version() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(unknown version)"
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "m24c64ctl:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes rejected requests from device and bus failures.
func exitCode(err error) int {
	switch {
	case errors.Is(err, pkg.ErrAddress):
		return 2
	case errors.Is(err, pkg.ErrTransport), errors.Is(err, pkg.ErrPort), errors.Is(err, pkg.ErrConnection):
		return 3
	default:
		return 1
	}
}
