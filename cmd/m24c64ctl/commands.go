package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ardnew/m24c64/m24c64"
)

// =============================================================================
// Main Array Commands
// =============================================================================

func (a *app) readCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read OFFSET LENGTH",
		Short: "Read bytes from the main array (may span pages)",
		Args:  cobra.ExactArgs(2),
		RunE: a.withSession(func(s *session, cmd *cobra.Command, args []string) error {
			offset, err := parseOffset(args[0])
			if err != nil {
				return err
			}
			n, err := parseLength(args[1])
			if err != nil {
				return err
			}
			buf := make([]byte, n)
			if err := s.mem.Read(offset, buf); err != nil {
				return err
			}
			return writeDump(cmd.OutOrStdout(), int(offset), buf)
		}),
	}
}

func (a *app) writeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write OFFSET HEXBYTES",
		Short: "Write bytes to the main array (within one page)",
		Example: `  m24c64ctl write 0x40 deadbeef
  m24c64ctl write 64 de:ad:be:ef`,
		Args: cobra.ExactArgs(2),
		RunE: a.withSession(func(s *session, cmd *cobra.Command, args []string) error {
			offset, err := parseOffset(args[0])
			if err != nil {
				return err
			}
			data, err := parseHex(args[1])
			if err != nil {
				return err
			}
			return s.mem.Write(offset, data)
		}),
	}
}

func (a *app) dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Dump the whole main array page by page",
		Args:  cobra.NoArgs,
		RunE: a.withSession(func(s *session, cmd *cobra.Command, args []string) error {
			var page [m24c64.PageSize]byte
			for p := 0; p < m24c64.PageCount; p++ {
				if err := s.mem.ReadPage(uint8(p), &page); err != nil {
					return fmt.Errorf("page %d: %w", p, err)
				}
				if err := writeDump(cmd.OutOrStdout(), p*m24c64.PageSize, page[:]); err != nil {
					return err
				}
			}
			return nil
		}),
	}
}

func (a *app) fillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fill BYTE",
		Short: "Write BYTE to every cell of the main array",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSession(func(s *session, cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseUint(args[0], 0, 8)
			if err != nil {
				return fmt.Errorf("byte %q: %w", args[0], err)
			}
			var page [m24c64.PageSize]byte
			for i := range page {
				page[i] = byte(v)
			}
			for p := 0; p < m24c64.PageCount; p++ {
				if err := s.mem.WritePage(uint8(p), &page); err != nil {
					return fmt.Errorf("page %d: %w", p, err)
				}
			}
			return nil
		}),
	}
}

// =============================================================================
// Identification Page Commands
// =============================================================================

func (a *app) idCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "id",
		Short: "Access the M24C64-D identification page",
	}
	cmd.AddCommand(a.idReadCmd(), a.idWriteCmd(), a.idLockCmd())
	return cmd
}

func (a *app) idReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read [OFFSET LENGTH]",
		Short: "Read the identification page, or part of it",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("accepts 0 or 2 arg(s), received %d", len(args))
			}
			return nil
		},
		RunE: a.withSession(func(s *session, cmd *cobra.Command, args []string) error {
			id, err := s.identification()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				var page [m24c64.IDPageSize]byte
				if err := id.ReadIDPage(&page); err != nil {
					return err
				}
				return writeDump(cmd.OutOrStdout(), 0, page[:])
			}
			offset, err := parseOffset(args[0])
			if err != nil {
				return err
			}
			n, err := parseLength(args[1])
			if err != nil {
				return err
			}
			buf := make([]byte, n)
			if err := id.ReadID(offset, buf); err != nil {
				return err
			}
			return writeDump(cmd.OutOrStdout(), int(offset), buf)
		}),
	}
}

func (a *app) idWriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write OFFSET HEXBYTES",
		Short: "Write bytes to the identification page",
		Args:  cobra.ExactArgs(2),
		RunE: a.withSession(func(s *session, cmd *cobra.Command, args []string) error {
			id, err := s.identification()
			if err != nil {
				return err
			}
			offset, err := parseOffset(args[0])
			if err != nil {
				return err
			}
			data, err := parseHex(args[1])
			if err != nil {
				return err
			}
			if len(data) == m24c64.IDPageSize && offset == 0 {
				var page [m24c64.IDPageSize]byte
				copy(page[:], data)
				return id.WriteIDPage(&page)
			}
			return id.WriteID(offset, data)
		}),
	}
}

func (a *app) idLockCmd() *cobra.Command {
	var confirmed bool
	cmd := &cobra.Command{
		Use:   "lock --yes",
		Short: "Permanently lock the identification page read-only",
		Long: `Permanently lock the identification page read-only.

This cannot be undone. The command refuses to run without --yes.`,
		Args: cobra.NoArgs,
		RunE: a.withSession(func(s *session, cmd *cobra.Command, args []string) error {
			id, err := s.identification()
			if err != nil {
				return err
			}
			if !confirmed {
				return fmt.Errorf("refusing to lock the identification page without --yes")
			}
			if err := id.LockIDPage(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "identification page locked")
			return nil
		}),
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the irreversible lock")
	return cmd
}

// =============================================================================
// Bus Commands
// =============================================================================

func (a *app) adaptersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adapters",
		Short: "List the I2C adapters available through i2c-dev",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeAdapters(cmd.OutOrStdout())
		},
	}
}

// =============================================================================
// Argument Parsing and Output
// =============================================================================

func parseOffset(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("offset %q: %w", s, err)
	}
	return uint16(v), nil
}

func parseLength(s string) (int, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("length %q: %w", s, err)
	}
	return int(v), nil
}

// parseHex decodes a hex string, ignoring an optional 0x prefix and ':' or
// '-' separators.
func parseHex(s string) ([]byte, error) {
	clean := strings.TrimPrefix(strings.ToLower(s), "0x")
	clean = strings.NewReplacer(":", "", "-", "", "_", "").Replace(clean)
	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("data %q: %w", s, err)
	}
	return data, nil
}

// writeDump prints data 16 bytes per line, each line prefixed with its
// offset.
func writeDump(w io.Writer, base int, data []byte) error {
	for i := 0; i < len(data); i += 16 {
		end := min(i+16, len(data))
		if _, err := fmt.Fprintf(w, "%04x  % x\n", base+i, data[i:end]); err != nil {
			return err
		}
	}
	return nil
}
