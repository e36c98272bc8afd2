// Package linux implements the I2C bus transport for Linux using the i2c-dev
// character devices (/dev/i2c-N).
//
// The i2c-dev module must be loaded and the caller needs read/write access
// to the device node:
//
//	bus, err := linux.OpenBus(1)
//	if err != nil {
//	    return err
//	}
//	defer bus.Close()
//	eeprom := m24c64.New(bus, m24c64.Config{})
//
// Transfers use the I2C_RDWR ioctl rather than read(2)/write(2) with
// I2C_SLAVE, so the device address travels with every transaction and a
// write followed by a read is issued with a repeated start. Adapters that
// only implement SMBus are rejected by [Open].
//
// An address the adapter reports as unacknowledged yields an error matching
// pkg.ErrConnection; any other failure is the kernel's errno.
package linux
