package m24c64

import (
	"github.com/ardnew/m24c64/pkg"
)

// dest is the device-type identifier placed in the upper four bits of the
// 7-bit device-select address. It selects which memory region responds.
type dest uint8

const (
	destMemory         dest = 0b1010 << 3 // 0x50
	destIdentification dest = 0b1011 << 3 // 0x58
)

// region returns the logical region selected by d.
func (d dest) region() pkg.Region {
	if d == destIdentification {
		return pkg.RegionIdentification
	}
	return pkg.RegionMemory
}

// selectAddress returns the 7-bit bus address of region d on the device
// configured by cfg.
func selectAddress(cfg Config, d dest) uint8 {
	return uint8(d) | cfg.Address&0x07
}

// putOffset writes offset to b[0:2], big-endian.
func putOffset(b []byte, offset uint16) {
	b[0] = byte(offset >> 8)
	b[1] = byte(offset)
}

// checkPage rejects a write that would cross a page boundary.
// It does not check the upper bound of the array.
func checkPage(offset uint16, n int) error {
	if int(offset%PageSize)+n > PageSize {
		return &pkg.AddressError{
			Region: pkg.RegionMemory,
			Offset: int(offset),
			Length: n,
			Limit:  PageSize,
		}
	}
	return nil
}

// checkSpan rejects an access extending past limit.
func checkSpan(region pkg.Region, offset uint16, n, limit int) error {
	if int(offset)+n > limit {
		return &pkg.AddressError{
			Region: region,
			Offset: int(offset),
			Length: n,
			Limit:  limit,
		}
	}
	return nil
}
