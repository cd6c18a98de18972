package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/jwwisniewski/claude-plugins/internal/config"
	"github.com/jwwisniewski/claude-plugins/internal/hook"
	"github.com/jwwisniewski/claude-plugins/internal/log"
	"github.com/jwwisniewski/claude-plugins/internal/version"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.Flags().BoolP("debug", "d", false, "Debug logging")
	rootCmd.Flags().StringP("state-dir", "D", "", "Custom state directory for session markers")
}

var rootCmd = &cobra.Command{
	Use:   "context-reminder",
	Short: "Claude Code hook that warns when context usage runs high",
	Long: `context-reminder is a PostToolUse hook for Claude Code. After each tool
call it reads token usage from the session transcript, estimates how much of
the context budget is consumed, and emits a one-line advisory once usage
crosses the configured threshold, repeating at every further 1% increase.

It reads the hook envelope from stdin and writes the advisory, if any, to
stdout. It always exits successfully so the host's tool flow is never
blocked.`,
	Example: `
	# Wire into Claude Code hooks (settings.json)
	{"hooks": {"PostToolUse": [{"hooks": [{"type": "command", "command": "context-reminder"}]}]}}

	# Exercise by hand
	echo '{"transcript_path": "~/.claude/projects/p/s.jsonl"}' | context-reminder

	# Warn from 80% of a 150k ceiling
	CONTEXT_REMINDER_THRESHOLD=0.80 CONTEXT_REMINDER_MAX_TOKENS=150000 context-reminder
  `,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			cfg.Debug = true
		}
		if stateDir, _ := cmd.Flags().GetString("state-dir"); stateDir != "" {
			cfg.StateDir = stateDir
		}

		log.Setup(cfg.LogFile(), cfg.Debug)
		defer log.RecoverPanic("context-reminder")

		// Internal failures degrade to silence inside Run; nothing is
		// escalated to the exit status.
		hook.New(cfg).Run(cmd.InOrStdin(), cmd.OutOrStdout())
		return nil
	},
}

func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
