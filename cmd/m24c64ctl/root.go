package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ardnew/m24c64/pkg"
)

// app carries state shared by the commands of one tree.
type app struct {
	configPath string
	verbose    bool
	jsonLog    bool

	cfg Config

	// shared is the session opened by the shell; commands run inside the
	// shell use it instead of opening their own.
	shared *session
}

func newRootCmd() *cobra.Command {
	return buildRoot(&app{})
}

func buildRoot(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "m24c64ctl",
		Short: "Read and write M24C64 / M24C64-D I2C EEPROMs",
		Long: `Read and write M24C64 and M24C64-D I2C EEPROMs through a Linux i2c-dev
adapter, or through a simulated chip stored in a file (--bus sim:PATH).`,
		Version:           version(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.configure,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	pf.String("bus", "", "i2c-dev node or sim:PATH (default /dev/i2c-1)")
	pf.Uint8("address", 0, "chip-enable bits E2..E0 (0-7)")
	pf.String("family", "", "device family: "+FamilyBase+" or "+FamilyExtended)
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&a.jsonLog, "json", false, "use JSON log format")

	root.AddCommand(
		a.readCmd(),
		a.writeCmd(),
		a.dumpCmd(),
		a.fillCmd(),
		a.idCmd(),
		a.shellCmd(),
		a.adaptersCmd(),
	)
	return root
}

// configure loads the configuration file, applies flag overrides and sets
// up logging.
func (a *app) configure(cmd *cobra.Command, args []string) error {
	if a.shared != nil {
		return nil
	}

	cfg := DefaultConfig()
	if a.configPath != "" {
		var err error
		if cfg, err = LoadConfig(a.configPath); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("bus") {
		cfg.Bus, _ = flags.GetString("bus")
	}
	if flags.Changed("address") {
		cfg.Address, _ = flags.GetUint8("address")
	}
	if flags.Changed("family") {
		cfg.Family, _ = flags.GetString("family")
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	if a.jsonLog {
		cfg.LogFormat = "json"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := pkg.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	format, err := pkg.ParseLogFormat(cfg.LogFormat)
	if err != nil {
		return err
	}
	pkg.SetLogLevel(level)
	pkg.SetLogFormat(cmd.ErrOrStderr(), format)

	a.cfg = cfg
	return nil
}

// withSession adapts fn to a cobra RunE, opening the device around it.
func (a *app) withSession(fn func(s *session, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if a.shared != nil {
			return fn(a.shared, cmd, args)
		}
		s, err := openSession(a.cfg)
		if err != nil {
			return err
		}
		defer func() { err = errors.Join(err, s.Close()) }()
		return fn(s, cmd, args)
	}
}
