// Package hal defines the bus transport interface consumed by the m24c64
// driver.
//
// The driver implements all address translation and command framing, leaving
// the transport to move bytes on an I2C bus. A transport needs two blocking
// primitives:
//
//   - Write: one START, address, payload, STOP
//   - WriteRead: one START, address, payload, repeated START, read, STOP
//
// Timeouts, clock configuration and bus arbitration are the transport's
// concern. Implementations in this module:
//
//   - [github.com/ardnew/m24c64/hal/linux]: Linux i2c-dev character devices
//   - [github.com/ardnew/m24c64/hal/sim]: an in-memory model of the chip
//
// A [Recorder] wraps any transport and keeps a log of the transactions it
// forwarded, which is how tests assert on framing.
package hal
