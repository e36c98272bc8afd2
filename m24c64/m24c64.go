package m24c64

import (
	"log/slog"

	"github.com/ardnew/m24c64/hal"
	"github.com/ardnew/m24c64/pkg"
)

const component = pkg.ComponentDriver

// Memory is the set of main-array operations available on every device
// family.
type Memory interface {
	WritePage(page uint8, data *[PageSize]byte) error
	Write(offset uint16, data []byte) error
	ReadPage(page uint8, buf *[PageSize]byte) error
	Read(offset uint16, buf []byte) error
}

// Identification is the set of identification page operations available
// only on the M24C64-D.
type Identification interface {
	WriteID(offset uint16, data []byte) error
	WriteIDPage(data *[IDPageSize]byte) error
	LockIDPage() error
	ReadID(offset uint16, buf []byte) error
	ReadIDPage(buf *[IDPageSize]byte) error
}

var (
	_ Memory         = (*Device)(nil)
	_ Memory         = (*DeviceD)(nil)
	_ Identification = (*DeviceD)(nil)
)

// Device is an M24C64 without an identification page.
//
// A Device owns its bus for its whole lifetime. It is not safe for
// concurrent use.
type Device struct {
	bus    hal.I2C
	config Config

	// Command buffer: 2 offset bytes followed by at most one page of data.
	cmd [2 + PageSize]byte
}

// New returns a driver for an M24C64 on bus. It performs no bus I/O.
//
//	eeprom := m24c64.New(bus, m24c64.Config{Address: 0b101})
func New(bus hal.I2C, config Config) *Device {
	return &Device{bus: bus, config: config}
}

// WithIDPage converts d into a driver for the M24C64-D, which adds a 32-byte
// identification page that can be permanently locked read-only.
//
// The returned device takes over d's bus and configuration; d must not be
// used afterwards. No probe is made: the caller declares the part number.
//
//	eeprom := m24c64.New(bus, m24c64.Config{}).WithIDPage()
func (d *Device) WithIDPage() *DeviceD {
	return &DeviceD{Device: *d}
}

// Config returns a copy of the device configuration.
func (d *Device) Config() Config {
	return d.config
}

// WritePage writes exactly one page of the main array.
func (d *Device) WritePage(page uint8, data *[PageSize]byte) error {
	return d.writeRaw(destMemory, uint16(page)*PageSize, data[:])
}

// Write writes data to the main array starting at offset.
//
// The write must not cross a page boundary: the chip would wrap around to
// the start of the page. Such writes fail with [pkg.ErrAddress] and nothing
// is sent. Offsets past the end of the array are not rejected.
func (d *Device) Write(offset uint16, data []byte) error {
	if err := checkPage(offset, len(data)); err != nil {
		pkg.LogDebug(component, "write rejected", "offset", offset, "len", len(data))
		return err
	}
	return d.writeRaw(destMemory, offset, data)
}

// ReadPage reads exactly one page of the main array.
func (d *Device) ReadPage(page uint8, buf *[PageSize]byte) error {
	return d.readRaw(destMemory, uint16(page)*PageSize, buf[:])
}

// Read fills buf from the main array starting at offset. Reads may span
// pages but not the end of the array; such reads fail with [pkg.ErrAddress].
func (d *Device) Read(offset uint16, buf []byte) error {
	if err := checkSpan(pkg.RegionMemory, offset, len(buf), MemorySize); err != nil {
		pkg.LogDebug(component, "read rejected", "offset", offset, "len", len(buf))
		return err
	}
	return d.readRaw(destMemory, offset, buf)
}

// writeRaw sends offset and data in one write transaction. It does not
// check for page wraps; len(data) must not exceed PageSize.
func (d *Device) writeRaw(to dest, offset uint16, data []byte) error {
	addr := selectAddress(d.config, to)
	putOffset(d.cmd[:2], offset)
	n := 2 + copy(d.cmd[2:], data)

	if pkg.Enabled(slog.LevelDebug) {
		pkg.LogDebug(component, "write",
			"region", to.region(), "addr", addr, "offset", offset, "len", len(data))
	}
	if err := d.bus.Write(addr, d.cmd[:n]); err != nil {
		pkg.LogWarn(component, "bus write failed", "addr", addr, "error", err)
		return &pkg.TransportError{Op: "write", Addr: addr, Err: err}
	}
	return nil
}

// readRaw sends offset and reads len(buf) bytes in one combined
// transaction.
func (d *Device) readRaw(from dest, offset uint16, buf []byte) error {
	addr := selectAddress(d.config, from)
	putOffset(d.cmd[:2], offset)

	if pkg.Enabled(slog.LevelDebug) {
		pkg.LogDebug(component, "read",
			"region", from.region(), "addr", addr, "offset", offset, "len", len(buf))
	}
	if err := d.bus.WriteRead(addr, d.cmd[:2], buf); err != nil {
		pkg.LogWarn(component, "bus write-read failed", "addr", addr, "error", err)
		return &pkg.TransportError{Op: "write-read", Addr: addr, Err: err}
	}
	return nil
}
