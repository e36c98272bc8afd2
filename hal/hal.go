package hal

import (
	"encoding/hex"
	"fmt"
	"sync"
)

// I2C is the bus transport consumed by the driver.
//
// Addresses are 7-bit device-select addresses, right aligned. Both methods
// block until the transaction completes. Errors are transport-defined and
// are passed through the driver unchanged.
type I2C interface {
	// Write writes w to the device at addr in a single transaction.
	Write(addr uint8, w []byte) error

	// WriteRead writes w to the device at addr, then reads len(r) bytes
	// into r after a repeated start. No other bus master can interleave
	// between the two phases.
	WriteRead(addr uint8, w, r []byte) error
}

// Tx is a record of one bus transaction.
type Tx struct {
	Addr     uint8  // 7-bit device-select address
	Write    []byte // Bytes written (copied)
	Read     int    // Bytes requested in the read phase
	Combined bool   // Issued through WriteRead
}

// IsWriteRead reports whether the transaction had a read phase.
func (t Tx) IsWriteRead() bool {
	return t.Combined
}

// String returns a compact representation such as "0x50 W[0040aabb]" or
// "0x58 W[0000] R4".
func (t Tx) String() string {
	s := fmt.Sprintf("0x%02X W[%s]", t.Addr, hex.EncodeToString(t.Write))
	if t.IsWriteRead() {
		s += fmt.Sprintf(" R%d", t.Read)
	}
	return s
}

// Recorder is an [I2C] that records every transaction before forwarding it
// to an inner bus. A nil inner bus acknowledges every transaction and leaves
// read buffers untouched.
type Recorder struct {
	bus I2C

	mu  sync.Mutex
	txs []Tx
}

// NewRecorder wraps bus.
func NewRecorder(bus I2C) *Recorder {
	return &Recorder{bus: bus}
}

// Write records and forwards a write transaction.
func (r *Recorder) Write(addr uint8, w []byte) error {
	r.record(Tx{Addr: addr, Write: append([]byte(nil), w...)})
	if r.bus == nil {
		return nil
	}
	return r.bus.Write(addr, w)
}

// WriteRead records and forwards a combined write-then-read transaction.
func (r *Recorder) WriteRead(addr uint8, w, rd []byte) error {
	r.record(Tx{Addr: addr, Write: append([]byte(nil), w...), Read: len(rd), Combined: true})
	if r.bus == nil {
		return nil
	}
	return r.bus.WriteRead(addr, w, rd)
}

func (r *Recorder) record(tx Tx) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs = append(r.txs, tx)
}

// Transactions returns a copy of the recorded transactions.
func (r *Recorder) Transactions() []Tx {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Tx(nil), r.txs...)
}

// Reset clears the recorded transactions.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs = nil
}
