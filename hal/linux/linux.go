//go:build linux

package linux

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/ardnew/m24c64/hal"
	"github.com/ardnew/m24c64/pkg"
)

// DevPath is the device node pattern for numbered I2C adapters.
const DevPath = "/dev/i2c-%d"

// ErrTooLong indicates a buffer larger than one I2C message can carry.
var ErrTooLong = errors.New("i2c message too long")

// Bus implements [hal.I2C] on a Linux i2c-dev character device.
//
// Every call is a single I2C_RDWR ioctl, so the write and read phases of
// WriteRead are joined by a repeated start. Bus is safe for concurrent use;
// transactions are serialized.
type Bus struct {
	path string

	mu sync.Mutex
	fd int
}

var _ hal.I2C = (*Bus)(nil)

// Open opens the i2c-dev node at path, e.g. "/dev/i2c-1".
// Failures match [pkg.ErrPort].
func Open(path string) (*Bus, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", pkg.ErrPort, path, err)
	}

	funcs, err := functionality(fd)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %s: query functionality: %w", pkg.ErrPort, path, err)
	}
	if funcs&funcI2C == 0 {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %s: adapter does not support plain I2C transfers", pkg.ErrPort, path)
	}

	pkg.LogDebug(pkg.ComponentBus, "opened i2c adapter", "path", path, "funcs", funcs)
	return &Bus{path: path, fd: fd}, nil
}

// OpenBus opens numbered adapter n.
func OpenBus(n int) (*Bus, error) {
	return Open(fmt.Sprintf(DevPath, n))
}

// Path returns the device node the bus was opened from.
func (b *Bus) Path() string {
	return b.path
}

// Write writes w to the device at addr.
func (b *Bus) Write(addr uint8, w []byte) error {
	if len(w) > maxMessageLen {
		return ErrTooLong
	}
	msgs := []i2cMsg{
		{addr: uint16(addr), len: uint16(len(w)), buf: bufPtr(w)},
	}
	return b.do(addr, msgs, w)
}

// WriteRead writes w to the device at addr and reads len(r) bytes into r
// after a repeated start.
func (b *Bus) WriteRead(addr uint8, w, r []byte) error {
	if len(w) > maxMessageLen || len(r) > maxMessageLen {
		return ErrTooLong
	}
	msgs := []i2cMsg{
		{addr: uint16(addr), len: uint16(len(w)), buf: bufPtr(w)},
		{addr: uint16(addr), flags: flagRead, len: uint16(len(r)), buf: bufPtr(r)},
	}
	return b.do(addr, msgs, w, r)
}

func (b *Bus) do(addr uint8, msgs []i2cMsg, bufs ...[]byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.fd < 0 {
		return fmt.Errorf("%w: %s closed", pkg.ErrPort, b.path)
	}
	if err := transfer(b.fd, msgs, bufs...); err != nil {
		// The adapter reports an unacknowledged address as ENXIO or EREMOTEIO.
		if errors.Is(err, unix.ENXIO) || errors.Is(err, unix.EREMOTEIO) {
			return fmt.Errorf("%w: 0x%02X: %w", pkg.ErrConnection, addr, err)
		}
		return err
	}
	return nil
}

// Close releases the device node.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.fd < 0 {
		return nil
	}
	err := unix.Close(b.fd)
	b.fd = -1
	return err
}
