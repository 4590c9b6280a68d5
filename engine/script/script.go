// Package script saves a session as its seed plus command log and replays
// it. Because every random draw comes from the seeded RNG, replaying the
// same commands from the same seed rebuilds the same session.
package script

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nathoo/siegecore/engine"
)

// Ext is the file extension of saved sessions.
const Ext = ".siege"

const seedPrefix = "# seed "

// Encode renders a command log as a script whose first line records the seed.
func Encode(seed int64, commands []string) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s%d\n", seedPrefix, seed)
	for _, cmd := range commands {
		b.WriteString(cmd)
		b.WriteByte('\n')
	}
	return b.Bytes()
}

// Decode parses a script. Blank and comment lines are skipped; the seed
// header is required.
func Decode(data []byte) (int64, []string, error) {
	var (
		seed     int64
		haveSeed bool
		commands []string
	)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !haveSeed && strings.HasPrefix(line, seedPrefix) {
			v, err := strconv.ParseInt(strings.TrimPrefix(line, seedPrefix), 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("parsing seed header: %w", err)
			}
			seed, haveSeed = v, true
			continue
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		commands = append(commands, line)
	}
	if err := scanner.Err(); err != nil {
		return 0, nil, fmt.Errorf("reading script: %w", err)
	}
	if !haveSeed {
		return 0, nil, fmt.Errorf("missing %q header", strings.TrimSpace(seedPrefix))
	}
	return seed, commands, nil
}

// Replay resets eng to seed and runs commands in order. It returns how many
// were rejected.
func Replay(eng *engine.Engine, seed int64, commands []string) int {
	eng.Reset(seed)
	rejected := 0
	for _, cmd := range commands {
		if r := eng.Step(cmd); r.Err != nil {
			rejected++
		}
	}
	return rejected
}

// Save writes eng's command log to dir/name.siege and returns the path.
func Save(eng *engine.Engine, dir, name string) (string, error) {
	seed, commands := eng.CommandLog()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating save directory: %w", err)
	}
	path := filepath.Join(dir, name+Ext)
	if err := os.WriteFile(path, Encode(seed, commands), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Load replays dir/name.siege into eng. It returns how many replayed
// commands were rejected.
func Load(eng *engine.Engine, dir, name string) (int, error) {
	path := filepath.Join(dir, name+Ext)
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	seed, commands, err := Decode(data)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return Replay(eng, seed, commands), nil
}
