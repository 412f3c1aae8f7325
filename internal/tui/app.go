package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/gjson"

	"github.com/tuannvm/godenodo/internal/auth"
)

// Resolver produces the login form for a credentials file.
type Resolver interface {
	Resolve(ctx context.Context, path string) (auth.Form, error)
}

// Searcher logs in once and then runs searches on the same session.
type Searcher interface {
	Login(ctx context.Context, form auth.Form) error
	Search(ctx context.Context, term string) (string, error)
}

type stage int

const (
	stageResolving stage = iota
	stageLoggingIn
	stageSearching
	stageResult
	stageEditing
	stageFailed
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	termStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Messages produced by the pipeline commands.
type (
	formMsg   struct{ form auth.Form }
	loginMsg  struct{}
	resultMsg struct{ body string }
	errMsg    struct{ err error }
)

// App represents the interactive search screen
type App struct {
	ctx       context.Context
	resolver  Resolver
	searcher  Searcher
	credsPath string
	term      string

	stage    stage
	loggedIn bool
	body     string
	err      error

	spinner  spinner.Model
	input    textinput.Model
	viewport viewport.Model
	ready    bool
}

// NewApp creates the interactive screen for one credentials file and an
// initial search term.
func NewApp(ctx context.Context, resolver Resolver, searcher Searcher, credsPath, term string) *App {
	a := &App{
		ctx:       ctx,
		resolver:  resolver,
		searcher:  searcher,
		credsPath: credsPath,
		term:      term,
		stage:     stageResolving,
	}

	a.spinner = spinner.New()
	a.spinner.Spinner = spinner.Dot
	a.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	a.input = textinput.New()
	a.input.Placeholder = "search term"
	a.input.Prompt = "Search: "
	a.input.CharLimit = 256
	a.input.Width = 50

	a.viewport = viewport.New(80, 20)
	return a
}

// Run starts the program and returns the last error shown on screen.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}
	if m, ok := final.(*App); ok && m.stage == stageFailed {
		return m.err
	}
	return nil
}

// Init starts the spinner and the login page fetch.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.resolveCmd())
}

func (a *App) resolveCmd() tea.Cmd {
	return func() tea.Msg {
		form, err := a.resolver.Resolve(a.ctx, a.credsPath)
		if err != nil {
			return errMsg{err}
		}
		return formMsg{form}
	}
}

func (a *App) loginCmd(form auth.Form) tea.Cmd {
	return func() tea.Msg {
		if err := a.searcher.Login(a.ctx, form); err != nil {
			return errMsg{err}
		}
		return loginMsg{}
	}
}

func (a *App) searchCmd(term string) tea.Cmd {
	return func() tea.Msg {
		body, err := a.searcher.Search(a.ctx, term)
		if err != nil {
			return errMsg{err}
		}
		return resultMsg{body}
	}
}

// Update handles updates
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.viewport.Width = msg.Width
		a.viewport.Height = max(msg.Height-6, 3)
		a.ready = true
		return a, nil

	case formMsg:
		a.stage = stageLoggingIn
		return a, a.loginCmd(msg.form)

	case loginMsg:
		a.loggedIn = true
		a.stage = stageSearching
		return a, a.searchCmd(a.term)

	case resultMsg:
		a.stage = stageResult
		a.err = nil
		a.body = msg.body
		a.viewport.SetContent(render(msg.body))
		a.viewport.GotoTop()
		return a, nil

	case errMsg:
		a.stage = stageFailed
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.stage == stageEditing {
		switch {
		case key.Matches(msg, keys.Interrupt):
			return a, tea.Quit
		case key.Matches(msg, keys.Back):
			a.input.Blur()
			a.stage = stageResult
			if a.err != nil {
				a.stage = stageFailed
			}
			return a, nil
		case key.Matches(msg, keys.Enter):
			term := strings.TrimSpace(a.input.Value())
			if term == "" {
				return a, nil
			}
			a.term = term
			a.input.Blur()
			a.stage = stageSearching
			return a, tea.Batch(a.spinner.Tick, a.searchCmd(term))
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Search):
		if !a.loggedIn || (a.stage != stageResult && a.stage != stageFailed) {
			return a, nil
		}
		a.stage = stageEditing
		a.input.SetValue(a.term)
		a.input.CursorEnd()
		return a, a.input.Focus()
	}

	if a.stage == stageResult {
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}
	return a, nil
}

// render pretty-prints JSON bodies and leaves anything else as is.
func render(body string) string {
	if gjson.Valid(body) {
		return gjson.Get(body, "@pretty").String()
	}
	return body
}

// View renders the TUI
func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Denodo case comments"))
	b.WriteString("  ")
	b.WriteString(termStyle.Render(a.term))
	b.WriteString("\n\n")

	switch a.stage {
	case stageResolving:
		fmt.Fprintf(&b, "%s Fetching login page...\n", a.spinner.View())
	case stageLoggingIn:
		fmt.Fprintf(&b, "%s Logging in...\n", a.spinner.View())
	case stageSearching:
		fmt.Fprintf(&b, "%s Searching...\n", a.spinner.View())
	case stageResult:
		b.WriteString(a.viewport.View())
		b.WriteString("\n")
	case stageEditing:
		b.WriteString(a.input.View())
		b.WriteString("\n")
	case stageFailed:
		b.WriteString(errorStyle.Render("Error: " + a.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(a.helpText()))
	b.WriteString("\n")
	return b.String()
}

func (a *App) helpText() string {
	switch a.stage {
	case stageEditing:
		return "enter: search • esc: back • ctrl+c: quit"
	case stageResult:
		return "↑/↓: scroll • /: new search • q: quit"
	case stageFailed:
		if a.loggedIn {
			return "/: new search • q: quit"
		}
	}
	return "q: quit"
}

// keys defines the key bindings for the application
var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Interrupt: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "search"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "new search"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

type keyMap struct {
	Quit      key.Binding
	Interrupt key.Binding
	Enter     key.Binding
	Search    key.Binding
	Back      key.Binding
}
