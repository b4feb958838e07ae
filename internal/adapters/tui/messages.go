package tui

import "time"

// MsgPlan announces the artifacts about to be vendored.
type MsgPlan struct {
	Artifacts []string
}

// MsgSpanStart reports a stage or download that began.
type MsgSpanStart struct {
	SpanID    string
	ParentID  string
	Name      string
	StartTime time.Time
}

// MsgSpanEnd reports a finished stage or download.
type MsgSpanEnd struct {
	SpanID  string
	EndTime time.Time
	Err     error
	Attrs   map[string]string
}

type tickMsg time.Time
