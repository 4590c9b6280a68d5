// Package journal writes the chronological game log. Announcements reach
// both the client log and the supervisor log; notes reach only the
// supervisor log.
package journal

import "github.com/nathoo/siegecore/types"

// Sink receives log lines from the rules subsystems.
type Sink interface {
	Announce(msg string)
	Note(msg string)
}

// Journal appends to a session's logs, stamping each line with the
// session's current round and phase.
type Journal struct {
	State *types.State
}

// New returns a Journal bound to s.
func New(s *types.State) *Journal {
	return &Journal{State: s}
}

// Announce records a line visible to the remote viewer.
func (j *Journal) Announce(msg string) {
	e := j.entry(msg)
	j.State.Log = append(j.State.Log, e)
	j.State.SupervisorLog = append(j.State.SupervisorLog, e)
}

// Note records a line visible only to the game master.
func (j *Journal) Note(msg string) {
	j.State.SupervisorLog = append(j.State.SupervisorLog, j.entry(msg))
}

func (j *Journal) entry(msg string) types.LogEntry {
	return types.LogEntry{Round: j.State.Turn, Phase: j.State.Phase, Message: msg}
}

type discard struct{}

func (discard) Announce(string) {}
func (discard) Note(string)     {}

// Discard drops every line. The preview path resolves against it.
var Discard Sink = discard{}

// Recorder keeps lines in memory. Used by tests and by the trace output.
type Recorder struct {
	Announced []string
	Noted     []string
}

// Announce records msg as announced.
func (r *Recorder) Announce(msg string) { r.Announced = append(r.Announced, msg) }

// Note records msg as noted.
func (r *Recorder) Note(msg string) { r.Noted = append(r.Noted, msg) }
