//go:build linux

package linux

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// =============================================================================
// i2c-dev Structures
// =============================================================================

// i2c-dev ioctl request and message flags (linux/i2c-dev.h, linux/i2c.h).
const (
	ioctlI2CRdwr = 0x0707 // I2C_RDWR: combined transfer
	ioctlI2CFunc = 0x0705 // I2C_FUNCS: adapter functionality

	flagRead = 0x0001 // I2C_M_RD

	// funcI2C is set when the adapter supports plain I2C transfers
	// (as opposed to SMBus only).
	funcI2C = 0x00000001

	// maxMessageLen is the largest transfer a single message can carry.
	maxMessageLen = 0xFFFF
)

// i2cMsg matches the kernel's struct i2c_msg layout.
type i2cMsg struct {
	addr  uint16  // 7-bit slave address
	flags uint16  // I2C_M_* flags
	len   uint16  // Buffer length
	buf   uintptr // Pointer to data buffer
}

// rdwrData matches the kernel's struct i2c_rdwr_ioctl_data layout.
type rdwrData struct {
	msgs  uintptr // Pointer to i2cMsg array
	nmsgs uint32  // Number of messages
}

// =============================================================================
// Raw Syscall Wrappers
// =============================================================================

// ioctlRaw performs a raw ioctl syscall.
func ioctlRaw(fd int, req uintptr, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, arg)
	if errno != 0 {
		return errno
	}
	return nil
}

// bufPtr returns the address of b's first byte, or 0 for an empty slice.
func bufPtr(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}

// transfer issues msgs as a single I2C_RDWR ioctl. The kernel generates a
// repeated start between messages and a stop only after the last one.
func transfer(fd int, msgs []i2cMsg, bufs ...[]byte) error {
	data := rdwrData{
		msgs:  uintptr(unsafe.Pointer(&msgs[0])),
		nmsgs: uint32(len(msgs)),
	}
	err := ioctlRaw(fd, ioctlI2CRdwr, uintptr(unsafe.Pointer(&data)))
	runtime.KeepAlive(msgs)
	runtime.KeepAlive(bufs)
	return err
}

// functionality returns the adapter's I2C_FUNCS bitmask.
func functionality(fd int) (uint, error) {
	var funcs uint // unsigned long
	if err := ioctlRaw(fd, ioctlI2CFunc, uintptr(unsafe.Pointer(&funcs))); err != nil {
		return 0, err
	}
	return funcs, nil
}
