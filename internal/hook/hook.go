// Package hook implements the context-usage-reminder decision cycle: read
// the hook envelope, measure context usage against the ceiling, and decide
// whether this invocation emits an advisory.
package hook

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jwwisniewski/claude-plugins/internal/config"
	"github.com/jwwisniewski/claude-plugins/internal/state"
	"github.com/jwwisniewski/claude-plugins/internal/transcript"
)

// Envelope is the JSON object Claude Code writes to the hook's stdin.
// Only the transcript path is consulted; the rest is accepted and ignored.
type Envelope struct {
	TranscriptPath string `json:"transcript_path"`
	SessionID      string `json:"session_id,omitempty"`
	HookEventName  string `json:"hook_event_name,omitempty"`
}

// Advisory is the hook's only output: a continue signal plus a one-line
// message the host surfaces to the user.
type Advisory struct {
	Continue      bool   `json:"continue"`
	SystemMessage string `json:"systemMessage"`
}

// Monitor evaluates one hook invocation. It holds no state beyond its
// configuration and the marker store.
type Monitor struct {
	cfg   config.Config
	store *state.Store
}

func New(cfg config.Config) *Monitor {
	return &Monitor{
		cfg:   cfg,
		store: state.NewStore(cfg.StateDir),
	}
}

// Percent is the whole-percentage ratio of total to ceiling, truncated.
// Values above 100 are possible and reported as-is.
func Percent(total, ceiling int) int {
	if ceiling <= 0 {
		return 0
	}
	return total * 100 / ceiling
}

// ShouldWarn reports whether an advisory fires at percent: at or above
// threshold, and strictly above the last marked level. An absent marker
// reads as 0, so the first crossing always warns; afterwards only a further
// 1-point increase does.
func (m *Monitor) ShouldWarn(key string, percent, threshold int) bool {
	if percent < threshold {
		return false
	}
	return percent > m.store.LastWarnedPercent(key)
}

// MarkWarned records percent as the session's last advisory level.
func (m *Monitor) MarkWarned(key string, percent int) error {
	return m.store.MarkWarned(key, percent)
}

// ResetIfBelow clears the session marker once usage drops under threshold,
// re-arming the warning cycle after a compaction. Runs before the warn
// check on every invocation.
func (m *Monitor) ResetIfBelow(key string, percent, threshold int) error {
	if percent >= threshold {
		return nil
	}
	return m.store.Clear(key)
}

// Run executes one decision cycle. Every failure path degrades to silence:
// the host's tool call must never be blocked by this hook, so errors are
// logged and swallowed.
func (m *Monitor) Run(in io.Reader, out io.Writer) {
	var env Envelope
	if err := json.NewDecoder(in).Decode(&env); err != nil {
		slog.Debug("unreadable hook input", "error", err)
		return
	}
	if env.TranscriptPath == "" {
		return
	}
	if _, err := os.Stat(env.TranscriptPath); err != nil {
		slog.Debug("transcript not found", "path", env.TranscriptPath)
		return
	}

	key := state.SessionKey(env.TranscriptPath)
	snap := transcript.Extract(env.TranscriptPath)
	percent := Percent(snap.TotalContext, m.cfg.MaxContextTokens)
	threshold := m.cfg.ThresholdPercent()

	if err := m.ResetIfBelow(key, percent, threshold); err != nil {
		slog.Error("failed to reset session marker", "session", key, "error", err)
	}

	if !m.ShouldWarn(key, percent, threshold) {
		slog.Debug("no advisory",
			"session", key,
			"percent", percent,
			"threshold", threshold,
			"total_context", snap.TotalContext,
		)
		return
	}

	if err := m.MarkWarned(key, percent); err != nil {
		slog.Error("failed to persist session marker", "session", key, "error", err)
	}

	adv := Advisory{
		Continue:      true,
		SystemMessage: fmt.Sprintf("⚠️ Context %d%% full - consider %s", percent, m.cfg.Hint),
	}
	if err := json.NewEncoder(out).Encode(adv); err != nil {
		slog.Error("failed to write advisory", "error", err)
	}
	slog.Debug("advisory emitted", "session", key, "percent", percent)
}
