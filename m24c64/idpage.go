package m24c64

import (
	"github.com/ardnew/m24c64/pkg"
)

// DeviceD is an M24C64-D: an M24C64 with an additional identification page.
// All [Device] methods are available on DeviceD.
type DeviceD struct {
	Device
}

// WriteID writes data to the identification page starting at offset.
// Writes past the end of the page fail with [pkg.ErrAddress].
//
// Address bit 10 is always cleared, so WriteID can never lock the page.
// Use [DeviceD.LockIDPage] for that.
func (d *DeviceD) WriteID(offset uint16, data []byte) error {
	if err := checkSpan(pkg.RegionIdentification, offset, len(data), IDPageSize); err != nil {
		pkg.LogDebug(component, "id write rejected", "offset", offset, "len", len(data))
		return err
	}
	return d.writeRaw(destIdentification, offset&^lockBit, data)
}

// WriteIDPage writes the whole identification page.
func (d *DeviceD) WriteIDPage(data *[IDPageSize]byte) error {
	return d.writeRaw(destIdentification, 0, data[:])
}

// LockIDPage permanently locks the identification page in read-only mode.
//
// This cannot be undone. The lock state is neither tracked nor verified;
// locking an already locked page only repeats the command.
func (d *DeviceD) LockIDPage() error {
	pkg.LogInfo(component, "locking identification page",
		"addr", selectAddress(d.config, destIdentification))
	return d.writeRaw(destIdentification, lockOffset, []byte{lockData})
}

// ReadID fills buf from the identification page starting at offset.
// Reads past the end of the page fail with [pkg.ErrAddress].
func (d *DeviceD) ReadID(offset uint16, buf []byte) error {
	if err := checkSpan(pkg.RegionIdentification, offset, len(buf), IDPageSize); err != nil {
		pkg.LogDebug(component, "id read rejected", "offset", offset, "len", len(buf))
		return err
	}
	return d.readRaw(destIdentification, offset, buf)
}

// ReadIDPage reads the whole identification page.
func (d *DeviceD) ReadIDPage(buf *[IDPageSize]byte) error {
	return d.readRaw(destIdentification, 0, buf[:])
}
