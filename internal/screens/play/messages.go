package play

// timerTickMsg is sent every second while a timed run is active. Gen is
// the session generation the tick was scheduled for.
type timerTickMsg struct {
	Gen int
}

// exportDoneMsg is sent when a payload write completes.
type exportDoneMsg struct {
	Target   string // "history" or "file"
	Location string
	Err      error
}
