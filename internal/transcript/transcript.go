package transcript

import (
	"html"
	"strings"
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/chatkc/gokc/pkg/protocol"
)

type EntryKind int

const (
	KindChat EntryKind = iota
	KindJoin
	KindPart
	KindSystem
)

// Entry is one line of the chat log, already transformed for display: HTML
// entities decoded, author color parsed, timestamp localized.
type Entry struct {
	Kind    EntryKind
	ID      uint64 // server message id, used for deletions; 0 otherwise
	Author  string
	Color   colorful.Color
	Colored bool
	Text    string
	Time    time.Time
}

// Transcript holds the ordered chat log and the identity the server assigned
// us. It is safe for concurrent use; the UI reads while the event loop
// applies frames.
type Transcript struct {
	mu       sync.RWMutex
	entries  []Entry
	username string
}

func New() *Transcript {
	return &Transcript{}
}

// Apply folds one inbound frame into the log and reports whether anything
// visible changed. Frames the transcript does not care about are ignored.
func (t *Transcript) Apply(frame protocol.Frame) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch f := frame.(type) {
	case protocol.Chat:
		entry := Entry{
			Kind:   KindChat,
			ID:     f.ID,
			Author: f.Author,
			Text:   html.UnescapeString(f.Message),
			Time:   time.UnixMilli(f.Time).Local(),
		}
		entry.Color, entry.Colored = AuthorColor(f.AuthorColor)
		t.entries = append(t.entries, entry)
		return true

	case protocol.Delete:
		return t.deleteLocked(f.Messages)

	case protocol.Join:
		t.entries = append(t.entries, Entry{Kind: KindJoin, Author: f.Name})
		return true

	case protocol.Part:
		t.entries = append(t.entries, Entry{Kind: KindPart, Author: f.Name})
		return true

	case protocol.ServerMsg:
		// The server packs multi-line notices into one frame.
		for _, line := range strings.Split(f.Message, "<br>") {
			t.entries = append(t.entries, Entry{Kind: KindSystem, Text: html.UnescapeString(line)})
		}
		return true

	case protocol.GetUserConf:
		t.username = f.Name
		return true

	default:
		return false
	}
}

func (t *Transcript) deleteLocked(ids []uint64) bool {
	victims := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		victims[id] = struct{}{}
	}

	kept := t.entries[:0]
	changed := false
	for _, e := range t.entries {
		if e.Kind == KindChat {
			if _, hit := victims[e.ID]; hit {
				changed = true
				continue
			}
		}
		kept = append(kept, e)
	}
	t.entries = kept
	return changed
}

// Entries returns a snapshot of the log in display order.
func (t *Transcript) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Username returns the display name the server assigned, or "" before the
// first user configuration frame arrives.
func (t *Transcript) Username() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.username
}

// AuthorColor parses the wire's raw 6-hex-digit color. Anything else (other
// lengths, bad digits) reports no color rather than an error; authors without
// a color are rendered in the default foreground.
func AuthorColor(hex string) (colorful.Color, bool) {
	if len(hex) != 6 {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}
