package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/hayeah/treectx"
	"github.com/hayeah/treectx/internal/config"
	"github.com/hayeah/treectx/internal/project"
	"github.com/hayeah/treectx/internal/selection"
	"github.com/hayeah/treectx/internal/treefs"
)

// PickCmd contains the arguments for the 'pick' subcommand
type PickCmd struct {
	Project string `arg:"-p,--project" help:"Load a saved project on startup"`
	Root    string `arg:"positional" help:"Tree root (defaults to the working directory)"`
}

// PickApp groups all services needed by the interactive picker.
type PickApp struct {
	Args       PickCmd
	Config     *config.Config
	FS         treefs.FS
	Engine     *selection.Engine
	Aggregator *treectx.Aggregator
	Projects   *project.Store
	Logger     *zap.Logger
}

// Reroot rebuilds the services over a new root, so gitignore rules are
// reread from the right place.
func (a *PickApp) Reroot(root string) (*PickApp, error) {
	return BuildPickApp(root, a.Config, a.Args)
}

// PickRunner encapsulates the state and behavior for the pick subcommand
type PickRunner struct {
	Args     PickCmd
	Config   *config.Config
	RootPath string
}

// NewPickRunner creates and initializes a new PickRunner.
func NewPickRunner(cmdArgs PickCmd, cfg *config.Config) (*PickRunner, error) {
	root := cmdArgs.Root
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &PickRunner{Args: cmdArgs, Config: cfg, RootPath: abs}, nil
}

// Run starts the interactive picker.
func (r *PickRunner) Run() error {
	app, err := BuildPickApp(r.RootPath, r.Config, r.Args)
	if err != nil {
		return err
	}

	if r.Args.Project != "" {
		proj, err := app.Projects.Get(r.Args.Project)
		if err != nil {
			return err
		}
		app, err = app.Reroot(proj.RootPath)
		if err != nil {
			return err
		}
		app.Engine.LoadSelection(proj.RootPath, proj.SelectedPaths)
	}

	m := newPickModel(app)
	m.projectName = r.Args.Project

	// The TUI renders on stderr so generated output could be piped if the
	// process is wrapped.
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	_, err = p.Run()
	return err
}

// promptMode says what the text input currently edits.
type promptMode int

const (
	promptFilter   promptMode = iota // fuzzy filter over the tree
	promptSaveName                   // project name for ctrl+s
	promptRootPath                   // new root for ctrl+p
)

// pickModel is the Bubble Tea model for the picker.
type pickModel struct {
	app *PickApp

	input      textinput.Model
	mode       promptMode
	filterTerm string

	// Tree state
	expanded map[string]bool
	items    []treeItem
	cursor   int

	viewport viewport.Model
	ready    bool

	// Footer counts come from an aggregate dry-run after every mutation.
	fileCount  int
	tokenCount int
	status     string

	projectName string
	projects    []project.Project
	projectIdx  int

	binaryCache map[string]bool
}

func newPickModel(app *PickApp) *pickModel {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Focus()

	m := &pickModel{
		app:         app,
		input:       ti,
		expanded:    make(map[string]bool),
		viewport:    viewport.New(0, 0), // sized on the first tea.WindowSizeMsg
		binaryCache: make(map[string]bool),
	}
	m.loadProjectList()
	m.refreshItems()
	m.recount()
	return m
}

func (m *pickModel) loadProjectList() {
	projects, err := m.app.Projects.Load()
	if err != nil {
		m.app.Logger.Warn("could not load projects", zap.Error(err))
		projects = nil
	}
	m.projects = projects
	m.projectIdx = 0
}

// refreshItems recomputes the visible rows. With a filter active the whole
// tree is searched and matches are shown with their ancestors; otherwise
// only expanded directories are descended into.
func (m *pickModel) refreshItems() {
	root := m.app.Engine.Root()
	if m.filterTerm != "" {
		m.items = fuzzyFilter(walkTree(m.app.FS, root), root, m.filterTerm)
	} else {
		m.items = flattenTree(m.app.FS, root, m.expanded)
	}
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// recount runs the aggregator for its counts only; the text is discarded.
func (m *pickModel) recount() {
	res := m.app.Aggregator.Aggregate()
	m.fileCount = res.FileCount
	m.tokenCount = res.TokenCount
}

// moveCursorTo places the cursor on path, or on its nearest surviving
// ancestor after a re-flatten.
func (m *pickModel) moveCursorTo(path string) {
	for target := path; ; target = filepath.Dir(target) {
		for i, it := range m.items {
			if it.Path == target {
				m.cursor = i
				return
			}
		}
		if target == m.app.Engine.Root() || target == filepath.Dir(target) {
			return
		}
	}
}

// Init is the first function called by Bubble Tea.
func (m *pickModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

// Update handles key presses and window sizing.
func (m *pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight

		if !m.ready {
			m.updateViewportContent()
			m.ready = true
		}

	case tea.KeyMsg:
		// Name and root prompts are modal: every key except these three
		// goes to the text input.
		if m.mode != promptFilter {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc":
				m.leavePrompt()
				return m, nil
			case "enter":
				return m.handleEnter()
			}
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {

		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.filterTerm != "" {
				m.filterTerm = ""
				m.input.SetValue("")
				m.refreshItems()
				m.cursor = 0
				m.viewport.GotoTop()
				m.updateViewportContent()
				return m, nil
			}
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if m.cursor > 0 {
				m.cursor--
				m.updateViewportContent()
				m.ensureCursorVisible()
			}
			return m, nil

		case "down":
			if m.cursor < len(m.items)-1 {
				m.cursor++
				m.updateViewportContent()
				m.ensureCursorVisible()
			}
			return m, nil

		case "pgup":
			m.viewport.HalfViewUp()
			return m, nil

		case "pgdown":
			m.viewport.HalfViewDown()
			return m, nil

		case "home":
			if len(m.items) > 0 {
				m.cursor = 0
				m.viewport.GotoTop()
				m.updateViewportContent()
			}
			return m, nil

		case "end":
			if len(m.items) > 0 {
				m.cursor = len(m.items) - 1
				m.viewport.GotoBottom()
				m.updateViewportContent()
			}
			return m, nil

		case "right":
			if it, ok := m.itemUnderCursor(); ok && it.IsDir && !m.expanded[it.Path] {
				m.expanded[it.Path] = true
				m.refreshItems()
				m.moveCursorTo(it.Path)
				m.updateViewportContent()
				m.ensureCursorVisible()
			}
			return m, nil

		case "left":
			if it, ok := m.itemUnderCursor(); ok && it.IsDir && m.expanded[it.Path] {
				delete(m.expanded, it.Path)
				m.refreshItems()
				m.moveCursorTo(it.Path)
				m.updateViewportContent()
				m.ensureCursorVisible()
			}
			return m, nil

		case " ":
			m.toggleUnderCursor()
			return m, nil

		case "ctrl+a":
			m.setAll(true)
			return m, nil

		case "ctrl+q":
			m.setAll(false)
			return m, nil

		case "ctrl+r":
			m.app.Engine.Recalculate()
			m.refreshItems()
			m.recount()
			m.updateViewportContent()
			return m, nil

		case "ctrl+s":
			m.enterPrompt(promptSaveName, m.projectName, "Project name...")
			return m, nil

		case "ctrl+l":
			m.cycleProject()
			return m, nil

		case "ctrl+p":
			m.enterPrompt(promptRootPath, m.app.Engine.Root(), "Root path...")
			return m, nil
		}
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if m.mode == promptFilter {
		if term := m.input.Value(); term != m.filterTerm {
			m.filterTerm = term
			m.refreshItems()
			m.cursor = 0
			m.viewport.GotoTop()
			m.updateViewportContent()
		}
	}

	// Keys are routed above; letting them reach the viewport would trigger
	// its own keymap (j/k/d/u scroll) while the user is typing a filter.
	// Mouse wheel and other messages still scroll it.
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *pickModel) itemUnderCursor() (treeItem, bool) {
	if len(m.items) == 0 || m.cursor >= len(m.items) {
		return treeItem{}, false
	}
	return m.items[m.cursor], true
}

// toggleUnderCursor flips the entry under the cursor. A directory that is
// anything less than fully selected becomes fully selected, matching what
// its checkbox shows.
func (m *pickModel) toggleUnderCursor() {
	it, ok := m.itemUnderCursor()
	if !ok {
		return
	}
	if it.IsDir {
		state := m.app.Engine.Resolve(it.Path)
		m.app.Engine.SetRecursive(it.Path, state != selection.FullySelected)
	} else {
		m.app.Engine.ToggleFile(it.Path)
	}
	m.recount()
	m.updateViewportContent()
}

// setAll selects or clears the whole root, or just the matched entries when
// a filter is active.
func (m *pickModel) setAll(selected bool) {
	if m.filterTerm == "" {
		m.app.Engine.SetRecursive(m.app.Engine.Root(), selected)
	} else {
		for _, it := range m.items {
			m.app.Engine.SetRecursive(it.Path, selected)
		}
	}
	m.recount()
	m.updateViewportContent()
}

func (m *pickModel) handleEnter() (tea.Model, tea.Cmd) {
	switch m.mode {
	case promptSaveName:
		name := strings.TrimSpace(m.input.Value())
		m.leavePrompt()
		if name == "" {
			return m, nil
		}
		m.saveProject(name)
		return m, nil

	case promptRootPath:
		root := strings.TrimSpace(m.input.Value())
		m.leavePrompt()
		if root == "" {
			return m, nil
		}
		m.reroot(root, nil, "")
		return m, nil

	default:
		m.generate()
		return m, nil
	}
}

// generate aggregates the selection, copies it to the clipboard, and leaves
// the picker open.
func (m *pickModel) generate() {
	res := m.app.Aggregator.Aggregate()
	if err := clipboard.WriteAll(res.Text); err != nil {
		m.status = fmt.Sprintf("Clipboard error: %v", err)
	} else {
		m.status = fmt.Sprintf("Copied %d files, %d tokens", res.FileCount, res.TokenCount)
	}
	m.fileCount = res.FileCount
	m.tokenCount = res.TokenCount
	m.updateViewportContent()
}

func (m *pickModel) saveProject(name string) {
	engine := m.app.Engine
	proj := project.Project{
		Name:          name,
		RootPath:      engine.Root(),
		SelectedPaths: engine.SelectedPathsOrdered(),
	}
	if err := m.app.Projects.Upsert(proj); err != nil {
		m.status = fmt.Sprintf("Save failed: %v", err)
	} else {
		m.projectName = name
		m.status = fmt.Sprintf("Saved project %s", name)
		m.loadProjectList()
	}
	m.updateViewportContent()
}

// cycleProject loads the next saved project, replacing root and selection.
func (m *pickModel) cycleProject() {
	if len(m.projects) == 0 {
		m.status = "No saved projects"
		m.updateViewportContent()
		return
	}
	proj := m.projects[m.projectIdx%len(m.projects)]
	m.projectIdx++
	m.reroot(proj.RootPath, proj.SelectedPaths, proj.Name)
}

// reroot swaps the whole service graph to a new root. Selection and cache
// state do not survive a root change; paths, when given, seed the new
// selection from a saved project.
func (m *pickModel) reroot(root string, paths []string, projectName string) {
	app, err := m.app.Reroot(root)
	if err != nil {
		m.status = fmt.Sprintf("Cannot open %s: %v", root, err)
		m.updateViewportContent()
		return
	}
	if paths != nil {
		app.Engine.LoadSelection(app.Engine.Root(), paths)
	}

	m.app = app
	m.projectName = projectName
	m.expanded = make(map[string]bool)
	m.filterTerm = ""
	m.input.SetValue("")
	m.cursor = 0
	m.binaryCache = make(map[string]bool)
	if projectName != "" {
		m.status = fmt.Sprintf("Loaded project %s", projectName)
	} else {
		m.status = ""
	}
	m.refreshItems()
	m.recount()
	m.viewport.GotoTop()
	m.updateViewportContent()
}

func (m *pickModel) enterPrompt(mode promptMode, value, placeholder string) {
	m.mode = mode
	m.input.SetValue(value)
	m.input.Placeholder = placeholder
	m.input.CursorEnd()
}

func (m *pickModel) leavePrompt() {
	m.mode = promptFilter
	m.input.SetValue(m.filterTerm)
	m.input.Placeholder = "Type to filter..."
	m.input.CursorEnd()
}

// View renders the root line, the prompt, the tree viewport, and the
// status footer.
func (m *pickModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.headerView() + "\n" + m.viewport.View() + "\n" + m.footerView()
}

func (m *pickModel) headerView() string {
	return fmt.Sprintf("%s\n%s", m.app.Engine.Root(), m.input.View())
}

func (m *pickModel) footerView() string {
	statusLine := fmt.Sprintf("Files: %d | Tokens: %d", m.fileCount, m.tokenCount)
	if m.status != "" {
		statusLine += " | " + m.status
	}
	usageHint := "(space toggle, enter copy, ctrl+a/ctrl+q all/none, ctrl+s save, ctrl+l projects, ctrl+p root, ctrl+r rescan, esc quit)"
	return fmt.Sprintf("%s\n%s", statusLine, usageHint)
}

// updateViewportContent rebuilds the tree lines from the engine state.
func (m *pickModel) updateViewportContent() {
	var sb strings.Builder
	engine := m.app.Engine

	for i, it := range m.items {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		var check string
		if it.IsDir {
			check = engine.Resolve(it.Path).String()
		} else if engine.FileSelected(it.Path) {
			check = selection.FullySelected.String()
		} else {
			check = selection.NotSelected.String()
		}

		dirIndicator := ""
		if it.IsDir {
			dirIndicator = "/"
		}

		binaryTag := ""
		if !it.IsDir && m.isBinary(it.Path) {
			binaryTag = " (binary)"
		}

		indent := strings.Repeat("  ", it.Depth)
		line := fmt.Sprintf("%s %s %s%s%s%s", cursor, check, indent, it.Name, dirIndicator, binaryTag)

		if i == m.cursor {
			line = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Render(line)
		}

		sb.WriteString(line + "\n")
	}

	m.viewport.SetContent(sb.String())
}

// isBinary samples the first KiB of a file, caching the answer. The tag is
// display-only and never affects aggregation.
func (m *pickModel) isBinary(path string) bool {
	if v, ok := m.binaryCache[path]; ok {
		return v
	}
	var binary bool
	if f, err := os.Open(path); err == nil {
		sample := make([]byte, 1024)
		n, _ := f.Read(sample)
		f.Close()
		binary = treectx.IsBinaryContent(sample[:n])
	}
	m.binaryCache[path] = binary
	return binary
}

// ensureCursorVisible scrolls the viewport so the cursor line is on screen.
func (m *pickModel) ensureCursorVisible() {
	cursorLine := m.cursor

	top := m.viewport.YOffset
	bottom := m.viewport.YOffset + m.viewport.Height - 1

	if cursorLine < top {
		m.viewport.SetYOffset(cursorLine)
	} else if cursorLine > bottom {
		m.viewport.SetYOffset(cursorLine - m.viewport.Height + 1)
	}
}
