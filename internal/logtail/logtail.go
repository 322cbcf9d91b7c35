package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one line written by zerolog's ConsoleWriter with NoColor set:
//
//	2026-10-16T09:12:44Z INF submitting image bytes=5120 request_id=...
type Entry struct {
	Time    time.Time
	Level   string // TRC, DBG, INF, WRN, ERR, FTL, PNC or "" when unparsed
	Message string
	Fields  string // trailing key=value pairs
	Raw     string
}

var levels = map[string]bool{
	"TRC": true, "DBG": true, "INF": true, "WRN": true,
	"ERR": true, "FTL": true, "PNC": true, "???": true,
}

// ParseLine splits a console log line into its parts. Lines that do not start
// with a timestamp and level come back with only Raw and Message set.
func ParseLine(line string) Entry {
	entry := Entry{Raw: line, Message: line}

	stamp, rest, ok := strings.Cut(line, " ")
	if !ok {
		return entry
	}
	ts, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return entry
	}
	level, rest, _ := strings.Cut(rest, " ")
	if !levels[level] {
		return entry
	}

	entry.Time = ts
	entry.Level = level
	entry.Message, entry.Fields = splitFields(rest)
	return entry
}

// splitFields separates the message from the key=value pairs zerolog appends
// after it. The message ends at the first token that contains '='.
func splitFields(s string) (string, string) {
	tokens := strings.Fields(s)
	for i, tok := range tokens {
		if strings.Contains(tok, "=") {
			return strings.Join(tokens[:i], " "), strings.Join(tokens[i:], " ")
		}
	}
	return strings.TrimSpace(s), ""
}

// ParseLines applies ParseLine to each line.
func ParseLines(lines []string) []Entry {
	out := make([]Entry, len(lines))
	for i, line := range lines {
		out[i] = ParseLine(line)
	}
	return out
}
