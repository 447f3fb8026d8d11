package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docpilot/internal/docedit/decision"
)

// Messages for Bubble Tea
type (
	toolResultMsg struct {
		result string
		isErr  bool
	}
	approvalMsg struct {
		req *decision.Request
	}
)

// tuiPresenter forwards approval requests into the Bubble Tea event loop.
// Present returns immediately; the model resolves the request from its key
// handler while the tool goroutine stays blocked inside the channel.
type tuiPresenter struct {
	program *tea.Program
}

func (p *tuiPresenter) Present(req *decision.Request) error {
	if p.program == nil {
		return fmt.Errorf("tui: program not running")
	}
	p.program.Send(approvalMsg{req: req})
	return nil
}

type tuiModel struct {
	app        *App
	viewport   viewport.Model
	textarea   textarea.Model
	messages   []string
	processing bool
	pendingReq *decision.Request
	width      int
	height     int
	ready      bool
}

func newTUIModel(app *App) tuiModel {
	ta := textarea.New()
	ta.Placeholder = "run <tool> {json args}  ·  /help for commands"
	ta.Focus()
	ta.CharLimit = 4000
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	vp := viewport.New(80, 20)

	welcome := []string{
		styleBold.Render("docpilot"),
		styleGray.Render(fmt.Sprintf("workspace: %s", app.Settings.Workspace)),
		"",
	}

	return tuiModel{
		app:      app,
		textarea: ta,
		viewport: vp,
		messages: welcome,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// While a decision is pending the modal owns the keyboard.
	if m.pendingReq != nil {
		if key, ok := msg.(tea.KeyMsg); ok {
			return m.updateModal(key)
		}
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)
	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.app.Channel.Abandon()
			return m, tea.Quit

		case tea.KeyEnter:
			if !m.processing && m.textarea.Value() != "" {
				input := strings.TrimSpace(m.textarea.Value())
				m.textarea.Reset()
				m.messages = append(m.messages, "", styleBoldGreen.Render("❯ ")+input)
				return m.dispatch(input)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2
		footerHeight := 4
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight
		m.textarea.SetWidth(msg.Width - 4)
		m.ready = true
		m.updateViewport()

	case toolResultMsg:
		m.processing = false
		// The worker has returned; any modal still open is stale.
		m.pendingReq = nil
		if msg.isErr {
			m.messages = append(m.messages, styleError.Render(msg.result), "")
		} else {
			m.messages = append(m.messages, msg.result, "")
		}
		m.updateViewport()

	case approvalMsg:
		m.pendingReq = msg.req
	}

	return m, tea.Batch(tiCmd, vpCmd)
}

// updateModal handles keys while an approval modal is open. y approves,
// n or esc rejects; everything else is ignored so a stray keystroke never
// decides a change. A request already sealed by timeout or teardown just
// closes the modal without claiming a decision.
func (m tuiModel) updateModal(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pendingReq.Resolved() {
		m.messages = append(m.messages, styleGray.Render("approval window closed: ")+m.pendingReq.Path)
		m.pendingReq = nil
		m.updateViewport()
		return m, nil
	}
	switch strings.ToLower(key.String()) {
	case "y":
		m.app.Channel.Resolve(m.pendingReq, true)
		m.messages = append(m.messages, styleGreen.Render("✓ approved: ")+m.pendingReq.Path)
		m.pendingReq = nil
		m.updateViewport()
	case "n", "esc":
		m.app.Channel.Resolve(m.pendingReq, false)
		m.messages = append(m.messages, styleWarning.Render("✗ rejected: ")+m.pendingReq.Path)
		m.pendingReq = nil
		m.updateViewport()
	case "ctrl+c":
		m.app.Channel.Abandon()
		return m, tea.Quit
	}
	return m, nil
}

func (m tuiModel) dispatch(input string) (tea.Model, tea.Cmd) {
	cmd := parseUserCommand(input)
	switch cmd.kind {
	case commandQuit:
		m.app.Channel.Abandon()
		return m, tea.Quit
	case commandClear:
		m.messages = m.messages[:0]
		m.updateViewport()
	case commandHelp:
		m.messages = append(m.messages, helpText, "")
		m.updateViewport()
	case commandTools:
		for _, def := range m.app.Registry.List() {
			m.messages = append(m.messages, fmt.Sprintf("  %-22s %s", styleGreen.Render(def.Name), def.Description))
		}
		m.messages = append(m.messages, "")
		m.updateViewport()
	case commandReset:
		m.app.Registry.Reset()
		m.messages = append(m.messages, styleGray.Render("approval ledger cleared"), "")
		m.updateViewport()
	case commandRun:
		m.processing = true
		m.updateViewport()
		return m, m.runTool(cmd.tool, cmd.args)
	case commandInvalid:
		m.messages = append(m.messages, styleWarning.Render(cmd.err.Error()), "")
		m.updateViewport()
	}
	return m, nil
}

// runTool executes the tool off the event loop. The call blocks while the
// decision channel waits for the modal, so it must never run inside Update.
func (m tuiModel) runTool(name string, args map[string]any) tea.Cmd {
	return func() tea.Msg {
		result := m.app.Registry.Execute(context.Background(), name, args)
		return toolResultMsg{result: result, isErr: strings.HasPrefix(result, "Error: ")}
	}
}

func (m tuiModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.pendingReq != nil {
		return m.modalView()
	}

	vpView := m.viewport.View()
	inputView := m.textarea.View()

	var status string
	if m.processing {
		status = styleGray.Render("⚡ Working... | Ctrl+C to quit")
	} else {
		status = styleGray.Render("Ready | Ctrl+C to quit")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		vpView,
		strings.Repeat("─", m.width),
		inputView,
		status,
	)
}

func (m tuiModel) modalView() string {
	req := m.pendingReq
	lines := []string{
		styleBold.Render("Proposed Edit: ") + req.KindLabel,
		styleBold.Render("File: ") + req.Path,
	}
	if req.Description != "" {
		lines = append(lines, styleBold.Render("Description: ")+req.Description)
	}
	if req.Summary != "" {
		lines = append(lines, styleBold.Render("Changes: ")+req.Summary)
	}
	lines = append(lines, "")
	for _, line := range strings.Split(req.Diff, "\n") {
		lines = append(lines, styleDiffLine(line))
	}
	lines = append(lines, "", styleBold.Render("Apply changes?")+styleGray.Render("  [y] approve  [n/esc] reject"))

	modal := styleModalBorder.Width(min(m.width-4, 100)).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func styleDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+ "):
		return styleDiffAdded.Render(line)
	case strings.HasPrefix(line, "- "):
		return styleDiffRemoved.Render(line)
	case strings.HasPrefix(line, "@ "):
		return styleDiffHeader.Render(line)
	default:
		return styleDiffContext.Render(line)
	}
}

func (m *tuiModel) updateViewport() {
	m.viewport.SetContent(strings.Join(m.messages, "\n"))
	m.viewport.GotoBottom()
}

// runTUI starts the full-screen surface and registers it as the channel's
// presenter for the lifetime of the program.
func runTUI(app *App) error {
	presenter := &tuiPresenter{}
	p := tea.NewProgram(newTUIModel(app), tea.WithAltScreen())
	presenter.program = p

	app.Channel.SetPresenter(presenter)
	defer app.Channel.SetPresenter(nil)

	_, err := p.Run()
	return err
}
