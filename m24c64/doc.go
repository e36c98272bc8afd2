// Package m24c64 implements a driver for the STMicroelectronics M24C64 and
// M24C64-D 64-Kbit I2C EEPROMs.
//
// The main array is 8192 bytes, organized as 256 pages of 32 bytes. The
// M24C64-D adds a 32-byte identification page, addressed through a separate
// device-select code, that can be permanently locked read-only.
//
// # Device Families
//
// The family is fixed by the part soldered to the board, so it is encoded in
// the handle type rather than checked at run time:
//
//	base := m24c64.New(bus, m24c64.Config{})              // *Device
//	withID := m24c64.New(bus, m24c64.Config{}).WithIDPage() // *DeviceD
//
// Identification page methods exist only on [DeviceD]; calling them on a
// [Device] does not compile.
//
// # Addressing
//
// Every transaction starts with a two-byte, big-endian offset. The 7-bit
// device-select address is 0b1010EEE for the main array and 0b1011EEE for
// the identification page, where EEE is [Config.Address].
//
// # Bounds
//
// Writes are limited by the chip's 32-byte page buffer: [Device.Write] rejects
// any write that would cross a page boundary. Reads are limited only by the
// array size: [Device.Read] may span pages. Rejected requests return an
// error matching [pkg.ErrAddress] and never reach the bus. Requests are never
// split, retried or wrapped.
//
// # Errors
//
// Bus failures are returned as [*pkg.TransportError], which unwraps to the
// transport's own error.
package m24c64
