// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-draft-sync/internal/syncbuffer"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// pasteSettle is the delay between a paste and its flush.
const pasteSettle = 100 * time.Millisecond

const (
	opBlur   = "blur"
	opPaste  = "paste"
	opSubmit = "submit"
)

const statusSaving = "saving..."

type editorModel struct {
	ctx    context.Context
	buffer Buffer
	opts   Options

	readClipboard func() (string, error)

	inputs []textinput.Model
	focus  int

	pasteSeq int

	status string
	errMsg string
	about  bool
	help   help.Model
}

func newEditorModel(ctx context.Context, buffer Buffer, opts Options, readClipboard func() (string, error)) editorModel {
	inputs := make([]textinput.Model, len(opts.Fields))
	for i, field := range opts.Fields {
		in := textinput.New()
		in.Placeholder = field
		in.Width = 50
		in.Prompt = ""
		// paste is handled by the editor so that it can schedule the settle flush
		in.KeyMap.Paste.SetEnabled(false)
		inputs[i] = in
	}
	inputs[0].Focus()

	return editorModel{
		ctx:           ctx,
		buffer:        buffer,
		opts:          opts,
		readClipboard: readClipboard,
		inputs:        inputs,
		help:          help.New(),
		status:        "editing",
	}
}

func (m editorModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent())
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case eventMsg:
		m.applyEvent(msg.event)
		return m, m.waitForEvent()

	case flushDoneMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
		}
		if msg.op == opSubmit && m.status == statusSaving {
			m.status = m.submitStatus(msg.err)
		}
		return m, nil

	case pasteSettledMsg:
		if msg.seq != m.pasteSeq {
			return m, nil
		}
		return m, m.flush(opPaste)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m.updateFocused(msg)
}

func (m editorModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.about {
		if key.Matches(msg, keys.quit, keys.buildInfo) {
			m.about = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit

	case key.Matches(msg, keys.buildInfo):
		m.about = true
		return m, nil

	case key.Matches(msg, keys.next):
		return m, tea.Batch(m.blur(), m.moveFocus(1))

	case key.Matches(msg, keys.prev):
		return m, tea.Batch(m.blur(), m.moveFocus(-1))

	case key.Matches(msg, keys.submit):
		if m.focus == len(m.inputs)-1 {
			return m, m.submit()
		}
		return m, tea.Batch(m.blur(), m.moveFocus(1))

	case key.Matches(msg, keys.save):
		return m, m.submit()

	case key.Matches(msg, keys.paste):
		return m.paste()

	case key.Matches(msg, keys.clear):
		m.buffer.Clear()
		for i := range m.inputs {
			m.inputs[i].Reset()
		}
		m.pasteSeq++
		m.status = "draft cleared"
		m.errMsg = ""
		return m, nil
	}

	if msg.Paste {
		// bracketed paste from the terminal
		model, cmd := m.updateFocused(msg)
		em := model.(editorModel)
		em.pasteSeq++
		return em, tea.Batch(cmd, em.settleTick())
	}

	return m.updateFocused(msg)
}

// updateFocused lets the focused input handle msg and forwards a changed
// value to the buffer.
func (m editorModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.inputs[m.focus].Value()

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	if after := m.inputs[m.focus].Value(); after != before {
		m.buffer.Update(m.opts.Fields[m.focus], after)
	}

	return m, cmd
}

// blur hands the focused value to the buffer and flushes it.
func (m *editorModel) blur() tea.Cmd {
	m.buffer.Update(m.opts.Fields[m.focus], m.inputs[m.focus].Value())
	return m.flush(opBlur)
}

func (m *editorModel) moveFocus(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m *editorModel) submit() tea.Cmd {
	m.buffer.Update(m.opts.Fields[m.focus], m.inputs[m.focus].Value())
	m.status = statusSaving

	buffer, ctx := m.buffer, m.ctx
	return func() tea.Msg {
		return flushDoneMsg{op: opSubmit, err: buffer.ForceSave(ctx)}
	}
}

// submitStatus settles the status line when no save event has replaced
// statusSaving yet.
func (m editorModel) submitStatus(err error) string {
	switch {
	case err != nil:
		return "not saved"
	case m.blank():
		return "nothing to save"
	default:
		return "submitted"
	}
}

func (m editorModel) blank() bool {
	for _, in := range m.inputs {
		if strings.TrimSpace(in.Value()) != "" {
			return false
		}
	}
	return true
}

func (m editorModel) paste() (tea.Model, tea.Cmd) {
	text, err := m.readClipboard()
	if err != nil {
		m.errMsg = fmt.Sprintf("paste failed: %v", err)
		return m, nil
	}
	text = strings.ReplaceAll(text, "\n", " ")
	if text == "" {
		return m, nil
	}

	in := &m.inputs[m.focus]
	value := []rune(in.Value())
	pos := min(in.Position(), len(value))

	inserted := string(value[:pos]) + text + string(value[pos:])
	in.SetValue(inserted)
	in.SetCursor(pos + len([]rune(text)))

	m.buffer.Update(m.opts.Fields[m.focus], inserted)

	m.pasteSeq++
	return m, m.settleTick()
}

func (m editorModel) settleTick() tea.Cmd {
	seq := m.pasteSeq
	return tea.Tick(pasteSettle, func(time.Time) tea.Msg {
		return pasteSettledMsg{seq: seq}
	})
}

func (m editorModel) flush(op string) tea.Cmd {
	buffer, ctx := m.buffer, m.ctx
	return func() tea.Msg {
		return flushDoneMsg{op: op, err: buffer.FlushIfChanged(ctx)}
	}
}

func (m editorModel) waitForEvent() tea.Cmd {
	events := m.opts.Events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg{event: event}
	}
}

func (m *editorModel) applyEvent(e syncbuffer.Event) {
	at := e.At.Format(time.TimeOnly)

	switch e.Kind {
	case syncbuffer.EventSaved:
		kind := "draft"
		if !e.Partial {
			kind = "complete draft"
		}
		m.status = fmt.Sprintf("%s saved at %s (%d fields, version %s)", kind, at, e.Fields, fitText(e.Version, 24))
		m.errMsg = ""
	case syncbuffer.EventFailed:
		m.errMsg = fmt.Sprintf("save failed at %s: %s", at, humanizeError(e.Err))
	case syncbuffer.EventHeld:
		if m.opts.Replays {
			m.status = fmt.Sprintf("draft kept locally at %s, it will be replayed later", at)
		} else {
			m.status = fmt.Sprintf("draft kept locally at %s, see spool list", at)
		}
	case syncbuffer.EventConfigMissing:
		m.errMsg = humanizeError(e.Err)
	}
}

func (m editorModel) View() string {
	if m.about {
		return renderBuildInfoWindow(m.opts.BuildInfo, m.opts.Path)
	}

	var b strings.Builder
	for i, field := range m.opts.Fields {
		label := labelStyle.Render(fitText(field, 11))
		if i == m.focus {
			label = focusedStyle.Render(labelStyle.Render("> " + fitText(field, 9)))
		}
		b.WriteString(label)
		b.WriteString(" [")
		b.WriteString(m.inputs[i].View())
		b.WriteString("]\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	return renderPage("DRAFT "+m.opts.Path, b.String(), helpStyle.Render(m.help.View(keys)))
}
