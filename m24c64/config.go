package m24c64

// Memory geometry.
const (
	PageSize   = 32                   // Bytes per page (internal write buffer size)
	PageCount  = 256                  // Pages in the main array
	MemorySize = PageCount * PageSize // Bytes in the main array

	// IDPageSize is the size of the M24C64-D identification page.
	IDPageSize = PageSize
)

// Identification page lock command.
const (
	lockOffset = 0x400 // Offset with address bit 10 set
	lockData   = 0x02  // Data byte with bit 2 set

	lockBit = 1 << 10
)

// Config holds the device configuration.
//
// The zero value addresses a part with all chip-enable pins tied low.
type Config struct {
	// Address holds the chip-enable bits E2, E1, E0 as wired on the board.
	// E.g. E2 = 1, E1 = 0, E0 = 1 is 0b101. Only the low three bits are used;
	// the remaining address bits are filled in per memory region.
	Address uint8
}
