package main

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/m24c64/hal/sim"
	"github.com/ardnew/m24c64/pkg"
)

// run executes the command line args and returns its standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	original := pkg.DefaultLogger
	originalLevel := pkg.GetLogLevel()
	t.Cleanup(func() {
		pkg.SetLogger(original)
		pkg.SetLogLevel(originalLevel)
	})

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// simBus returns a --bus value for a fresh simulated chip.
func simBus(t *testing.T) (flag, path string) {
	t.Helper()
	path = filepath.Join(t.TempDir(), "eeprom.cbor")
	return "--bus=sim:" + path, path
}

// =============================================================================
// Main Array Commands
// =============================================================================

func TestWriteRead(t *testing.T) {
	bus, path := simBus(t)

	_, err := run(t, bus, "write", "0x40", "de:ad:be:ef")
	require.NoError(t, err)

	out, err := run(t, bus, "read", "0x40", "4")
	require.NoError(t, err)
	assert.Equal(t, "0040  de ad be ef\n", out)

	chip, err := sim.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, chip.Memory()[0x40:0x44])
}

func TestWrite_CrossingPage(t *testing.T) {
	bus, _ := simBus(t)

	_, err := run(t, bus, "write", "30", "010203")
	assert.ErrorIs(t, err, pkg.ErrAddress)
	assert.Equal(t, 2, exitCode(err))
}

func TestRead_SpansPages(t *testing.T) {
	bus, _ := simBus(t)

	out, err := run(t, bus, "read", "0", "40")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[2], "0020  ff ff"))

	_, err = run(t, bus, "read", "8190", "4")
	assert.ErrorIs(t, err, pkg.ErrAddress)
}

func TestFillDump(t *testing.T) {
	bus, _ := simBus(t)

	_, err := run(t, bus, "fill", "0xA5")
	require.NoError(t, err)

	out, err := run(t, bus, "dump")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8192/16)
	assert.Equal(t, "0000  "+strings.TrimSpace(strings.Repeat("a5 ", 16)), lines[0])
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "1ff0  a5"))
}

func TestArgumentErrors(t *testing.T) {
	bus, _ := simBus(t)

	tests := [][]string{
		{bus, "read", "zero", "1"},
		{bus, "read", "0"},
		{bus, "write", "0", "xyz"},
		{bus, "fill", "256"},
		{bus, "--family", "m24c32", "dump"},
		{bus, "--address", "8", "dump"},
	}
	for _, args := range tests {
		_, err := run(t, args...)
		assert.Error(t, err, "args %v", args)
	}
}

func TestWrongChipEnable(t *testing.T) {
	bus, _ := simBus(t)

	_, err := run(t, bus, "--address", "3", "write", "0", "00")
	require.NoError(t, err)

	// The stored chip answers to E=3 only.
	_, err = run(t, bus, "--address", "4", "read", "0", "1")
	assert.ErrorIs(t, err, pkg.ErrTransport)
	assert.ErrorIs(t, err, pkg.ErrConnection)
	assert.Equal(t, 3, exitCode(err))
}

func TestOpenSession_SimMismatchWarns(t *testing.T) {
	_, path := simBus(t)
	require.NoError(t, sim.New(3, true).SaveFile(path))

	original := pkg.DefaultLogger
	t.Cleanup(func() { pkg.SetLogger(original) })

	tests := []struct {
		name string
		cfg  Config
		warn bool
	}{
		{"match", Config{Address: 3, Family: FamilyExtended}, false},
		{"address", Config{Address: 4, Family: FamilyExtended}, true},
		{"family", Config{Address: 3, Family: FamilyBase}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			pkg.SetLogger(pkg.NewLogger(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

			tt.cfg.Bus = "sim:" + path
			s, err := openSession(tt.cfg)
			require.NoError(t, err)
			require.NoError(t, s.Close())

			if !tt.warn {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), "simulated chip does not match configuration")
			assert.Contains(t, buf.String(), "chip_address=3")
			assert.Contains(t, buf.String(), "chip_family=m24c64-d")
		})
	}
}

// =============================================================================
// Identification Page Commands
// =============================================================================

func TestID_BaseFamily(t *testing.T) {
	bus, _ := simBus(t)

	_, err := run(t, bus, "id", "read")
	assert.ErrorIs(t, err, ErrNoIDPage)
}

func TestID_WriteReadLock(t *testing.T) {
	bus, path := simBus(t)
	family := "--family=" + FamilyExtended

	_, err := run(t, bus, family, "id", "write", "0", "0x534e")
	require.NoError(t, err)

	out, err := run(t, bus, family, "id", "read", "0", "2")
	require.NoError(t, err)
	assert.Equal(t, "0000  53 4e\n", out)

	out, err = run(t, bus, family, "id", "read")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)

	_, err = run(t, bus, family, "id", "read", "30", "3")
	assert.ErrorIs(t, err, pkg.ErrAddress)

	_, err = run(t, bus, family, "id", "lock")
	assert.Error(t, err)
	chip, err := sim.LoadFile(path)
	require.NoError(t, err)
	assert.False(t, chip.Locked())

	out, err = run(t, bus, family, "id", "lock", "--yes")
	require.NoError(t, err)
	assert.Equal(t, "identification page locked\n", out)

	_, err = run(t, bus, family, "id", "write", "0", "00")
	assert.ErrorIs(t, err, pkg.ErrTransport)
	assert.ErrorIs(t, err, sim.ErrLocked)

	chip, err = sim.LoadFile(path)
	require.NoError(t, err)
	assert.True(t, chip.Locked())
	assert.Equal(t, []byte("SN"), chip.IDPage()[:2])
}

func TestID_WriteFullPage(t *testing.T) {
	bus, path := simBus(t)
	page := strings.Repeat("7e", 32)

	_, err := run(t, bus, "--family", FamilyExtended, "id", "write", "0", page)
	require.NoError(t, err)

	chip, err := sim.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0x7E}, 32), chip.IDPage())
}

// =============================================================================
// Configuration
// =============================================================================

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	image := filepath.Join(dir, "eeprom.cbor")
	cfgPath := writeFile(t, "m24c64.yaml", fmt.Sprintf("bus: sim:%s\naddress: 6\nfamily: m24c64-d\n", image))

	_, err := run(t, "--config", cfgPath, "id", "write", "1", "42")
	require.NoError(t, err)

	chip, err := sim.LoadFile(image)
	require.NoError(t, err)
	assert.Equal(t, uint8(6), chip.ChipEnable())
	assert.True(t, chip.HasIDPage())
	assert.Equal(t, byte(0x42), chip.IDPage()[1])

	// Flags override the file.
	_, err = run(t, "--config", cfgPath, "--family", FamilyBase, "id", "read")
	assert.ErrorIs(t, err, ErrNoIDPage)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, exitCode(errors.New("other")))
	assert.Equal(t, 2, exitCode(&pkg.AddressError{}))
	assert.Equal(t, 3, exitCode(&pkg.TransportError{Err: errors.New("nack")}))
	assert.Equal(t, 3, exitCode(fmt.Errorf("open: %w", pkg.ErrPort)))
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"deadbeef", []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		{"0xDEAD", []byte{0xDE, 0xAD}},
		{"de:ad-be_ef", []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		{"", []byte{}},
	}
	for _, tt := range tests {
		got, err := parseHex(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := parseHex("abc")
	assert.Error(t, err)
}
