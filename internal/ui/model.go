// Package ui is the interactive terminal view. It renders controller
// snapshots and turns key presses into controller actions; it holds no
// task or session state of its own.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"realtodo/internal/app"
)

type field int

const (
	fieldEmail field = iota
	fieldPassword
)

type mode int

const (
	modeList mode = iota
	modeAdd
)

// actionDoneMsg is delivered when a controller action returns.
type actionDoneMsg struct {
	err error
}

// Model is the bubbletea model.
type Model struct {
	ctx  context.Context
	ctrl *app.Controller

	email    textinput.Model
	password textinput.Model
	title    textinput.Model
	focus    field
	mode     mode
	cursor   int
	busy     int

	snap app.Snapshot
}

// New creates a Model bound to ctrl. Actions run with ctx.
func New(ctx context.Context, ctrl *app.Controller) Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.Width = 40

	title := textinput.New()
	title.Placeholder = "New task"
	title.CharLimit = 256
	title.Width = 40

	m := Model{
		ctx:      ctx,
		ctrl:     ctrl,
		email:    email,
		password: password,
		title:    title,
		busy:     1,
	}
	m.sync()
	return m
}

// Init restores the stored session. New counts it as in flight.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.action(m.ctrl.Start))
}

// action runs fn off the update loop and reports back with actionDoneMsg.
// The caller increments busy.
func (m Model) action(fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionDoneMsg{err: fn(ctx)}
	}
}

// sync copies the controller state into the view.
func (m *Model) sync() {
	m.snap = m.ctrl.Snapshot()
	if m.email.Value() != m.snap.Email {
		m.email.SetValue(m.snap.Email)
	}
	if m.password.Value() != m.snap.Password {
		m.password.SetValue(m.snap.Password)
	}
	if m.title.Value() != m.snap.NewTitle {
		m.title.SetValue(m.snap.NewTitle)
	}
	m.cursor = clampCursor(m.cursor, len(m.snap.Tasks))
	if !m.snap.Authenticated {
		m.mode = modeList
		m.title.Blur()
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case actionDoneMsg:
		if m.busy > 0 {
			m.busy--
		}
		m.sync()
		return m, nil
	case tea.WindowSizeMsg:
		w := msg.Width - 10
		if w < 10 {
			w = 10
		}
		m.email.Width, m.password.Width, m.title.Width = w, w, w
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.snap.Authenticated {
			return m.updateAuth(msg)
		}
		if m.mode == modeAdd {
			return m.updateAdd(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		if m.focus == fieldEmail {
			m.focus = fieldPassword
			m.email.Blur()
			cmd := m.password.Focus()
			return m, cmd
		}
		m.focus = fieldEmail
		m.password.Blur()
		cmd := m.email.Focus()
		return m, cmd
	case "ctrl+r":
		if m.snap.Mode == app.ModeLogin {
			m.ctrl.SetMode(app.ModeRegister)
		} else {
			m.ctrl.SetMode(app.ModeLogin)
		}
		m.sync()
		return m, nil
	case "enter":
		m.busy++
		return m, m.action(m.ctrl.SubmitAuth)
	}

	var cmd tea.Cmd
	if m.focus == fieldEmail {
		m.email, cmd = m.email.Update(msg)
		m.ctrl.SetEmail(m.email.Value())
	} else {
		m.password, cmd = m.password.Update(msg)
		m.ctrl.SetPassword(m.password.Value())
	}
	m.snap = m.ctrl.Snapshot()
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.snap.Tasks
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(tasks))
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(tasks))
	case "a":
		m.mode = modeAdd
		cmd := m.title.Focus()
		return m, cmd
	case " ", "x":
		if len(tasks) == 0 {
			return m, nil
		}
		id := tasks[m.cursor].ID
		m.busy++
		return m, m.action(func(ctx context.Context) error {
			return m.ctrl.Toggle(ctx, id)
		})
	case "d":
		if len(tasks) == 0 {
			return m, nil
		}
		id := tasks[m.cursor].ID
		m.busy++
		return m, m.action(func(ctx context.Context) error {
			return m.ctrl.Delete(ctx, id)
		})
	case "r":
		m.busy++
		return m, m.action(m.ctrl.Reload)
	case "L":
		m.ctrl.Logout()
		m.focus = fieldEmail
		m.password.Blur()
		m.sync()
		cmd := m.email.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.title.Blur()
		return m, nil
	case "enter":
		if !m.ctrl.CanAddTask() {
			return m, nil
		}
		m.mode = modeList
		m.title.Blur()
		m.busy++
		return m, m.action(m.ctrl.AddTask)
	}

	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	m.ctrl.SetNewTitle(m.title.Value())
	m.snap = m.ctrl.Snapshot()
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString("realtodo\n\n")

	if m.snap.Authenticated {
		m.viewList(&b)
	} else {
		m.viewAuth(&b)
	}

	b.WriteString("\n")
	if m.busy > 0 {
		b.WriteString("working…")
	} else {
		b.WriteString(m.snap.Status)
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewAuth(b *strings.Builder) {
	login, register := " Login ", " Register "
	if m.snap.Mode == app.ModeLogin {
		login = "[Login]"
	} else {
		register = "[Register]"
	}
	fmt.Fprintf(b, "%s %s\n\n", login, register)
	b.WriteString(m.email.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")
	fmt.Fprintf(b, "enter: %s • tab: switch field • ctrl+r: login/register • esc: quit\n", m.snap.Mode)
}

func (m Model) viewList(b *strings.Builder) {
	if len(m.snap.Tasks) == 0 {
		b.WriteString("No tasks yet. Press 'a' to add one.\n")
	}
	for i, t := range m.snap.Tasks {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}
		box := "[ ]"
		if t.Done {
			box = "[x]"
		}
		fmt.Fprintf(b, "%s %s %s\n", cursor, box, t.Title)
	}
	b.WriteString("\n")
	if m.mode == modeAdd {
		b.WriteString(m.title.View())
		b.WriteString("\n")
		b.WriteString("enter: add • esc: cancel\n")
		return
	}
	b.WriteString("a: add • space: toggle • d: delete • r: reload • L: logout • q: quit\n")
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
