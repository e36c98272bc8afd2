// Package sim implements an in-memory M24C64 / M24C64-D for testing and for
// running the command-line tool without hardware.
//
// A [Chip] answers on the I2C addresses its chip-enable bits select and keeps
// the memory array, the identification page and its lock state in memory.
// Cells start erased (0xFF).
//
// # Hardware Behavior
//
// The model follows the datasheet where the driver's checks depend on it:
//
//   - A write latches into a single 32-byte page; the column address wraps
//     within the page, so writes crossing a boundary overwrite its start
//   - A sequential read wraps from the last byte of the array to the first
//   - A write with address bit 10 set and data bit 1 set on the
//     identification address locks the identification page
//   - A locked identification page refuses data ([ErrLocked])
//   - An address no modeled region answers to is not acknowledged
//     ([ErrNoDevice], which matches pkg.ErrConnection)
//
// # Persistence
//
// [Chip.Save] and [Load] serialize the chip state as CBOR, which lets the
// command-line tool keep a simulated part between invocations:
//
//	chip, err := sim.LoadFile("eeprom.cbor")
//	if errors.Is(err, os.ErrNotExist) {
//	    chip = sim.New(0, true)
//	}
//	// ... use chip as a hal.I2C ...
//	err = chip.SaveFile("eeprom.cbor")
package sim
