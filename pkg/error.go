package pkg

import (
	"errors"
	"fmt"
)

// Driver error kinds, matched with [errors.Is]. A transport error may also
// match [ErrConnection] or [ErrPort] when the transport reports one.
var (
	// ErrTransport indicates the underlying I2C bus reported a failure.
	ErrTransport = errors.New("i2c transport error")

	// ErrAddress indicates an offset and length outside a region's bounds.
	ErrAddress = errors.New("address out of bounds")

	// ErrConnection indicates the device did not respond (device not found).
	ErrConnection = errors.New("device not found")

	// ErrPort indicates an invalid or unavailable bus port.
	ErrPort = errors.New("invalid port")
)

// Region identifies a logical memory region of the EEPROM.
type Region uint8

// Memory regions.
const (
	RegionMemory         Region = iota // Main 8 KiB array
	RegionIdentification               // 32-byte identification page
)

// String returns a string representation of the region.
func (r Region) String() string {
	switch r {
	case RegionMemory:
		return "memory"
	case RegionIdentification:
		return "identification"
	default:
		return "unknown"
	}
}

// TransportError wraps an error reported by the bus transport.
// The transport's error is carried unchanged and returned by Unwrap.
type TransportError struct {
	Op   string // "write" or "write-read"
	Addr uint8  // 7-bit device-select address
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s 0x%02X: %v", e.Op, e.Addr, e.Err)
}

// Unwrap returns the transport's error.
func (e *TransportError) Unwrap() error { return e.Err }

// Is reports whether target is [ErrTransport].
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// AddressError describes a request rejected before any bus I/O.
type AddressError struct {
	Region Region
	Offset int
	Length int
	Limit  int // Bound that Offset+Length (or its in-page position) exceeded
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%s: %s offset %d length %d exceeds %d",
		ErrAddress, e.Region, e.Offset, e.Length, e.Limit)
}

// Is reports whether target is [ErrAddress].
func (e *AddressError) Is(target error) bool { return target == ErrAddress }
