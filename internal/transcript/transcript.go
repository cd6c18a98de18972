// Package transcript extracts token-usage counters from a Claude Code
// session transcript (newline-delimited JSON, one record per line).
package transcript

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"os"
)

// Usage mirrors the usage object the assistant writes into transcript
// records. Absent fields decode as zero.
type Usage struct {
	InputTokens              int `json:"input_tokens"`
	CacheReadInputTokens     int `json:"cache_read_input_tokens"`
	CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
	OutputTokens             int `json:"output_tokens"`
}

// Snapshot is the most recent usage observed in a transcript, plus the
// derived context total. Output tokens are not part of the context estimate:
// they were produced by the model, not sent to it.
type Snapshot struct {
	Usage
	TotalContext int
}

// rawRecord maps the two shapes a usage object can take in the JSONL:
// top-level, or nested one level under "message".
type rawRecord struct {
	Usage   *Usage `json:"usage"`
	Message *struct {
		Usage *Usage `json:"usage"`
	} `json:"message"`
}

// Extract scans the transcript at path and returns the snapshot of the last
// usage-bearing record. A missing or unreadable file yields a zero snapshot
// and a diagnostic; it is never an error for the caller.
func Extract(path string) Snapshot {
	f, err := os.Open(path)
	if err != nil {
		slog.Error("failed to open transcript", "path", path, "error", err)
		return Snapshot{}
	}
	defer f.Close()
	return extract(f)
}

func extract(r io.Reader) Snapshot {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024) // 10MB max line

	var last *Usage
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec rawRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			// Malformed lines are tolerated; later records still count.
			continue
		}

		switch {
		case rec.Usage != nil:
			last = rec.Usage
		case rec.Message != nil && rec.Message.Usage != nil:
			last = rec.Message.Usage
		}
	}

	if err := scanner.Err(); err != nil {
		slog.Error("failed to read transcript", "error", err)
		return Snapshot{}
	}
	if last == nil {
		return Snapshot{}
	}

	return Snapshot{
		Usage:        *last,
		TotalContext: last.InputTokens + last.CacheReadInputTokens + last.CacheCreationInputTokens,
	}
}
