// Package progress reports discovery-run events to a pluggable handler.
// The engine stays silent by default; verbose runs attach a handler
// that renders events to stderr.
package progress

import (
	"os"
	"time"
)

// EventType represents the type of progress event
type EventType int

const (
	EventDiscoveryStart EventType = iota
	EventDiscoveryComplete
	EventEnterDirectory
	EventLeaveDirectory
	EventManifestParsed
	EventManifestFailed
	EventDescriptorMatched
	EventConflictResolved
	EventInfo
)

// Event represents something that happened during a discovery run
type Event struct {
	Type       EventType
	Path       string
	Name       string
	Info       string
	Confidence int
	FileCount  int
	DirCount   int
	Duration   time.Duration
}

// Handler processes events and produces output
type Handler interface {
	Handle(event Event)
}

// Progress is the centralized event dispatcher
type Progress struct {
	enabled bool
	handler Handler
}

// New creates a new progress reporter
func New(enabled bool, handler Handler) *Progress {
	if handler == nil {
		handler = NewSimpleHandler(os.Stderr)
	}
	return &Progress{enabled: enabled, handler: handler}
}

// NewNull creates a disabled progress reporter
func NewNull() *Progress {
	return New(false, NewNullHandler())
}

func (p *Progress) report(event Event) {
	if p == nil || !p.enabled {
		return
	}
	p.handler.Handle(event)
}

// DiscoveryStart reports the beginning of a discovery run
func (p *Progress) DiscoveryStart(path string, excludes []string) {
	info := ""
	if len(excludes) > 0 {
		info = joinExcludes(excludes)
	}
	p.report(Event{Type: EventDiscoveryStart, Path: path, Info: info})
}

// DiscoveryComplete reports the end of a discovery run
func (p *Progress) DiscoveryComplete(fileCount, dirCount int, duration time.Duration) {
	p.report(Event{Type: EventDiscoveryComplete, FileCount: fileCount, DirCount: dirCount, Duration: duration})
}

// EnterDirectory reports descent into a directory
func (p *Progress) EnterDirectory(path string) {
	p.report(Event{Type: EventEnterDirectory, Path: path})
}

// LeaveDirectory reports return from a directory
func (p *Progress) LeaveDirectory(path string) {
	p.report(Event{Type: EventLeaveDirectory, Path: path})
}

// ManifestParsed reports a successfully parsed manifest
func (p *Progress) ManifestParsed(parser, fileName string) {
	p.report(Event{Type: EventManifestParsed, Name: parser, Path: fileName})
}

// ManifestFailed reports a manifest that could not be parsed
func (p *Progress) ManifestFailed(parser, fileName, reason string) {
	p.report(Event{Type: EventManifestFailed, Name: parser, Path: fileName, Info: reason})
}

// DescriptorMatched reports a catalog descriptor that cleared the
// confidence threshold
func (p *Progress) DescriptorMatched(name string, confidence int) {
	p.report(Event{Type: EventDescriptorMatched, Name: name, Confidence: confidence})
}

// ConflictResolved reports one resolved configuration conflict
func (p *Progress) ConflictResolved(kind, resolution string) {
	p.report(Event{Type: EventConflictResolved, Name: kind, Info: resolution})
}

// Info reports a free-form informational message
func (p *Progress) Info(message string) {
	p.report(Event{Type: EventInfo, Info: message})
}

func joinExcludes(excludes []string) string {
	out := ""
	for i, pattern := range excludes {
		if i > 0 {
			out += ", "
		}
		out += pattern
	}
	return out
}
