// Package pkg provides shared utilities for the m24c64 EEPROM driver.
//
// This package contains common functionality used by the driver, the bus
// transports and the command-line tool:
//
//   - Structured logging via Go's standard [log/slog] package
//   - The driver's error kinds, as sentinels and typed errors
//   - Component identifiers for log filtering
//
// # Logging
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogDebug(pkg.ComponentDriver, "write", "offset", 0x40, "len", 4)
//
// # Errors
//
// Driver operations return errors matching one of four kinds:
//
//	switch {
//	case errors.Is(err, pkg.ErrAddress):
//	    // Request rejected before any bus I/O
//	case errors.Is(err, pkg.ErrTransport):
//	    // Bus failure; errors.Unwrap yields the transport's own error
//	}
//
// [ErrConnection] and [ErrPort] are returned by bus transports, never by the
// driver's own bounds checks.
package pkg
