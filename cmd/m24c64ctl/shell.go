package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

func (a *app) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively against one open device",
		Args:  cobra.NoArgs,
		RunE: a.withSession(func(s *session, cmd *cobra.Command, args []string) error {
			if a.shared != nil {
				return errors.New("already in a shell")
			}
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "m24c64> ",
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
				AutoComplete:    shellCompleter(),
			})
			if err != nil {
				return fmt.Errorf("failed to create readline: %w", err)
			}
			defer rl.Close()

			return runShell(a.cfg, s, rl.Stdout(), rl.Stderr(), rl.Readline)
		}),
	}
}

// runShell executes lines from next until it returns an error or the user
// exits. Each line runs as a command of a fresh tree sharing session s.
func runShell(cfg Config, s *session, out, errOut io.Writer, next func() (string, error)) error {
	fmt.Fprintf(out, "%s: address %d, family %s; type help or exit\n", cfg.Bus, cfg.Address, cfg.Family)
	for {
		line, err := next()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "exit", "quit", "q":
			return nil
		}

		root := buildRoot(&app{cfg: cfg, shared: s})
		root.SetArgs(args)
		root.SetOut(out)
		root.SetErr(errOut)
		if err := root.Execute(); err != nil {
			fmt.Fprintln(errOut, "error:", err)
		}
	}
}

func shellCompleter() readline.AutoCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("read"),
		readline.PcItem("write"),
		readline.PcItem("dump"),
		readline.PcItem("fill"),
		readline.PcItem("id",
			readline.PcItem("read"),
			readline.PcItem("write"),
			readline.PcItem("lock"),
		),
		readline.PcItem("adapters"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}
