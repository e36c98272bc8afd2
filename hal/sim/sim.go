package sim

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ardnew/m24c64/hal"
	"github.com/ardnew/m24c64/pkg"
)

// Chip geometry.
const (
	MemorySize = 8192
	PageSize   = 32
	IDPageSize = 32
)

// Device-select codes (upper four bits of the 7-bit address).
const (
	selectMemory = 0x50
	selectID     = 0x58
	selectMask   = 0x78
)

// Identification page control.
const (
	lockBit  = 1 << 10
	lockData = 0x02
)

// Erased is the value of an unwritten EEPROM cell.
const Erased = 0xFF

// Bus-level failures reported by the simulated chip.
var (
	// ErrNoDevice indicates no device acknowledged the address byte.
	ErrNoDevice = fmt.Errorf("%w: address not acknowledged", pkg.ErrConnection)

	// ErrDataNACK indicates the device refused a data byte.
	ErrDataNACK = errors.New("data not acknowledged")

	// ErrShortWrite indicates a write that carried only part of an offset.
	ErrShortWrite = fmt.Errorf("%w: incomplete offset", ErrDataNACK)

	// ErrLocked indicates a write to a locked identification page.
	ErrLocked = fmt.Errorf("%w: identification page locked", ErrDataNACK)
)

// Chip is an in-memory model of an M24C64 or M24C64-D.
//
// It implements [hal.I2C] and reproduces the behavior the driver guards
// against: writes wrap within a 32-byte page, reads wrap at the end of the
// array, and a locked identification page refuses writes. It is safe for
// concurrent use.
type Chip struct {
	mu sync.Mutex

	chipEnable uint8
	hasIDPage  bool

	mem    [MemorySize]byte
	id     [IDPageSize]byte
	locked bool

	// Address pointer for current-address reads.
	pointer uint16
	pointID bool

	failNext error
}

var _ hal.I2C = (*Chip)(nil)

// New returns an erased chip answering to chip-enable bits chipEnable.
// If withIDPage is true the chip models an M24C64-D.
func New(chipEnable uint8, withIDPage bool) *Chip {
	c := &Chip{chipEnable: chipEnable & 0x07, hasIDPage: withIDPage}
	c.erase()
	return c
}

func (c *Chip) erase() {
	for i := range c.mem {
		c.mem[i] = Erased
	}
	for i := range c.id {
		c.id[i] = Erased
	}
}

// ChipEnable returns the chip-enable bits the chip answers to.
func (c *Chip) ChipEnable() uint8 {
	return c.chipEnable
}

// HasIDPage reports whether the chip models an M24C64-D.
func (c *Chip) HasIDPage() bool {
	return c.hasIDPage
}

// Locked reports whether the identification page has been locked.
func (c *Chip) Locked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked
}

// Memory returns a copy of the main array.
func (c *Chip) Memory() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.mem[:]...)
}

// IDPage returns a copy of the identification page.
func (c *Chip) IDPage() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.id[:]...)
}

// FailNext makes the next transaction fail with err without touching the
// chip state.
func (c *Chip) FailNext(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failNext = err
}

// decode maps a device-select address to a region.
func (c *Chip) decode(addr uint8) (id bool, err error) {
	if addr&0x07 != c.chipEnable {
		return false, ErrNoDevice
	}
	switch addr & selectMask {
	case selectMemory:
		return false, nil
	case selectID:
		if c.hasIDPage {
			return true, nil
		}
	}
	return false, ErrNoDevice
}

func (c *Chip) takeFault() error {
	err := c.failNext
	c.failNext = nil
	return err
}

// Write handles a write transaction: a two-byte offset followed by data.
// A write with no bytes is an acknowledge poll.
func (c *Chip) Write(addr uint8, w []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.takeFault(); err != nil {
		return err
	}
	id, err := c.decode(addr)
	if err != nil {
		pkg.LogDebug(pkg.ComponentSim, "nack", "addr", addr)
		return err
	}
	switch len(w) {
	case 0:
		return nil
	case 1:
		return ErrShortWrite
	}

	offset := uint16(w[0])<<8 | uint16(w[1])
	data := w[2:]
	if id {
		return c.writeID(offset, data)
	}
	c.writeMemory(offset, data)
	return nil
}

// writeMemory latches data into the page containing offset. The column
// address wraps within the page, so only the last PageSize bytes survive.
func (c *Chip) writeMemory(offset uint16, data []byte) {
	offset %= MemorySize
	page := offset &^ (PageSize - 1)
	col := offset & (PageSize - 1)
	for _, b := range data {
		c.mem[page+col] = b
		col = (col + 1) & (PageSize - 1)
	}
	c.pointer, c.pointID = page+col, false
}

func (c *Chip) writeID(offset uint16, data []byte) error {
	if offset&lockBit != 0 {
		if len(data) != 1 || data[0]&lockData == 0 {
			return ErrDataNACK
		}
		if !c.locked {
			pkg.LogInfo(pkg.ComponentSim, "identification page locked")
		}
		c.locked = true
		return nil
	}
	if c.locked && len(data) > 0 {
		return ErrLocked
	}
	col := offset & (IDPageSize - 1)
	for _, b := range data {
		c.id[col] = b
		col = (col + 1) & (IDPageSize - 1)
	}
	c.pointer, c.pointID = col, true
	return nil
}

// WriteRead handles a random-address read. An empty w performs a
// current-address read from wherever the previous access stopped.
func (c *Chip) WriteRead(addr uint8, w, r []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.takeFault(); err != nil {
		return err
	}
	id, err := c.decode(addr)
	if err != nil {
		pkg.LogDebug(pkg.ComponentSim, "nack", "addr", addr)
		return err
	}
	switch len(w) {
	case 0:
		if id != c.pointID {
			c.pointer = 0
		}
	case 1:
		return ErrShortWrite
	default:
		c.pointer = uint16(w[0])<<8 | uint16(w[1])
	}
	c.pointID = id

	if id {
		col := c.pointer & (IDPageSize - 1)
		for i := range r {
			r[i] = c.id[col]
			col = (col + 1) & (IDPageSize - 1)
		}
		c.pointer = col
		return nil
	}
	p := c.pointer % MemorySize
	for i := range r {
		r[i] = c.mem[p]
		p = (p + 1) % MemorySize
	}
	c.pointer = p
	return nil
}
