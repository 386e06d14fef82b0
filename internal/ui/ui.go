package ui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/chatkc/gokc/internal/transcript"
	"github.com/chatkc/gokc/pkg/protocol"
	"github.com/chatkc/gokc/pkg/socket"
)

// Terminal chat frontend: a scrollable message log over an input line. It
// consumes connection events and submits user-entered text through whatever
// handle is currently live. It never touches the socket itself.
type App struct {
	app      *tview.Application
	chatView *tview.TextView
	input    *tview.InputField

	transcript *transcript.Transcript
	server     string
	tsLayout   string
	logger     *zap.Logger

	mu   sync.Mutex
	conn *socket.Conn
}

func New(server, timestampLayout string, logger *zap.Logger) *App {
	a := &App{
		app:        tview.NewApplication(),
		transcript: transcript.New(),
		server:     server,
		tsLayout:   timestampLayout,
		logger:     logger.With(zap.String("component", "ui")),
	}

	a.chatView = tview.NewTextView()
	a.chatView.SetDynamicColors(true)
	a.chatView.SetScrollable(true)
	a.chatView.SetBorder(true)
	a.chatView.SetTitle(a.title(false))

	a.input = tview.NewInputField()
	a.input.SetLabel("> ")
	a.input.SetFieldWidth(0)
	a.input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			a.submit()
		}
	})

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.chatView, 0, 1, false).
		AddItem(a.input, 1, 0, true)

	a.app.SetRoot(flex, true)
	return a
}

// Run blocks until the user quits the application.
func (a *App) Run() error {
	return a.app.Run()
}

func (a *App) Stop() {
	a.app.Stop()
}

// HandleEvent is called from the event loop goroutine for every connection
// event; redraws are marshaled onto the UI goroutine.
func (a *App) HandleEvent(ev socket.Event) {
	switch e := ev.(type) {
	case socket.Connected:
		a.mu.Lock()
		a.conn = e.Conn
		a.mu.Unlock()
		a.redraw()
	case socket.Disconnected:
		a.mu.Lock()
		a.conn = nil
		a.mu.Unlock()
		a.redraw()
	case socket.Received:
		if a.transcript.Apply(e.Frame) {
			a.redraw()
		}
	}
}

func (a *App) submit() {
	text := a.input.GetText()
	if text == "" {
		return
	}

	a.mu.Lock()
	conn := a.conn
	a.mu.Unlock()
	if conn == nil {
		// Offline: keep the draft in the input line.
		return
	}

	if err := conn.Send(protocol.NewMessage(text, 0)); err != nil {
		a.logger.Warn("Failed to submit message", zap.Error(err))
		return
	}
	a.input.SetText("")
}

func (a *App) redraw() {
	a.app.QueueUpdateDraw(a.render)
}

func (a *App) render() {
	a.mu.Lock()
	connected := a.conn != nil
	a.mu.Unlock()

	a.chatView.Clear()
	for _, e := range a.transcript.Entries() {
		fmt.Fprint(a.chatView, a.formatEntry(e))
	}
	a.chatView.ScrollToEnd()
	a.chatView.SetTitle(a.title(connected))
}

func (a *App) title(connected bool) string {
	state := "○ offline"
	if connected {
		state = "● online"
	}
	if name := a.transcript.Username(); name != "" {
		return fmt.Sprintf(" %s@%s ─ %s ", name, a.server, state)
	}
	return fmt.Sprintf(" %s ─ %s ", a.server, state)
}

func (a *App) formatEntry(e transcript.Entry) string {
	switch e.Kind {
	case transcript.KindJoin:
		return fmt.Sprintf("[#b2f5b2]+%s[-]\n", tview.Escape(e.Author))
	case transcript.KindPart:
		return fmt.Sprintf("[#f5b2b2]-%s[-]\n", tview.Escape(e.Author))
	case transcript.KindSystem:
		return fmt.Sprintf("[#7f7f7f]%s[-]\n", tview.Escape(e.Text))
	default:
		author := tview.Escape(e.Author)
		if e.Colored {
			author = fmt.Sprintf("[%s]%s[-]", e.Color.Hex(), author)
		}
		return fmt.Sprintf("[#7f7f7f]%s[-] %s: %s\n",
			e.Time.Format(a.tsLayout), author, tview.Escape(e.Text))
	}
}
