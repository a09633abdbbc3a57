package progress

import (
	"fmt"
	"io"
)

// SimpleHandler outputs events as simple lines (no tree)
type SimpleHandler struct {
	writer io.Writer
}

func NewSimpleHandler(writer io.Writer) *SimpleHandler {
	return &SimpleHandler{writer: writer}
}

func (h *SimpleHandler) Handle(event Event) {
	switch event.Type {
	case EventDiscoveryStart:
		fmt.Fprintf(h.writer, "[SCAN] Starting: %s\n", event.Path)
		if event.Info != "" {
			fmt.Fprintf(h.writer, "[SCAN] Excluding: %s\n", event.Info)
		}

	case EventDiscoveryComplete:
		fmt.Fprintf(h.writer, "[SCAN] Completed: %d files, %d directories in %.1fs\n",
			event.FileCount, event.DirCount, event.Duration.Seconds())

	case EventEnterDirectory:
		fmt.Fprintf(h.writer, "[DIR]  Entering: %s\n", event.Path)

	case EventManifestParsed:
		fmt.Fprintf(h.writer, "[DEP]  Parsed %s manifest: %s\n", event.Name, event.Path)

	case EventManifestFailed:
		fmt.Fprintf(h.writer, "[DEP]  Failed %s manifest: %s (%s)\n", event.Name, event.Path, event.Info)

	case EventDescriptorMatched:
		fmt.Fprintf(h.writer, "[SVC]  Matched: %s (confidence %d)\n", event.Name, event.Confidence)

	case EventConflictResolved:
		fmt.Fprintf(h.writer, "[FIX]  %s conflict: %s\n", event.Name, event.Info)

	case EventInfo:
		fmt.Fprintf(h.writer, "[INFO] %s\n", event.Info)
	}
}

// NullHandler discards all events
type NullHandler struct{}

func NewNullHandler() *NullHandler {
	return &NullHandler{}
}

func (h *NullHandler) Handle(event Event) {}
