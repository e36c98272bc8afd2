package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// SnapshotVersion is the current version of the snapshot format.
const SnapshotVersion = 1

// snapshot is the persisted chip state. Integer keys keep it compact.
type snapshot struct {
	Version    int    `cbor:"1,keyasint"`
	ChipEnable uint8  `cbor:"2,keyasint"`
	HasIDPage  bool   `cbor:"3,keyasint"`
	Memory     []byte `cbor:"4,keyasint"`
	IDPage     []byte `cbor:"5,keyasint"`
	Locked     bool   `cbor:"6,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create snapshot CBOR encoder mode: %v", err))
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create snapshot CBOR decoder mode: %v", err))
	}
}

// ErrSnapshot indicates a malformed or incompatible snapshot.
var ErrSnapshot = errors.New("invalid chip snapshot")

// Save writes the chip state to w.
func (c *Chip) Save(w io.Writer) error {
	c.mu.Lock()
	s := snapshot{
		Version:    SnapshotVersion,
		ChipEnable: c.chipEnable,
		HasIDPage:  c.hasIDPage,
		Memory:     append([]byte(nil), c.mem[:]...),
		IDPage:     append([]byte(nil), c.id[:]...),
		Locked:     c.locked,
	}
	c.mu.Unlock()

	return encMode.NewEncoder(w).Encode(s)
}

// Load reads a chip previously written by [Chip.Save].
func Load(r io.Reader) (*Chip, error) {
	var s snapshot
	if err := decMode.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshot, err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrSnapshot, s.Version, SnapshotVersion)
	}
	if len(s.Memory) != MemorySize || len(s.IDPage) != IDPageSize {
		return nil, fmt.Errorf("%w: memory %d bytes, id page %d bytes",
			ErrSnapshot, len(s.Memory), len(s.IDPage))
	}

	c := &Chip{
		chipEnable: s.ChipEnable & 0x07,
		hasIDPage:  s.HasIDPage,
		locked:     s.Locked,
	}
	copy(c.mem[:], s.Memory)
	copy(c.id[:], s.IDPage)
	return c, nil
}

// LoadFile reads a chip snapshot from path. A missing file yields an error
// matching [os.ErrNotExist].
func LoadFile(path string) (*Chip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// SaveFile writes the chip state to path, replacing it atomically.
func (c *Chip) SaveFile(path string) error {
	var buf bytes.Buffer
	if err := c.Save(&buf); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
