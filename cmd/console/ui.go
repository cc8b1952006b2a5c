package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/rpg-engine/internal/handlers"
	"github.com/jwebster45206/rpg-engine/pkg/storage"
	"github.com/jwebster45206/rpg-engine/pkg/world"
)

const (
	PlaceHolderText = "Type a command (help for a list)..."
	NamePlaceholder = "Enter your character's name..."
)

const helpText = `Commands:
  explore            look around; meet an enemy or find an item
  encounter          seek out an enemy
  battle | fight     fight the engaged enemy
  flee | run         escape the engaged enemy
  find               search for an item
  heal               rest to full health (not during battle)
  use <item>         use one item from your inventory
  quest              take a new quest
  complete           complete your oldest open quest
  inventory | inv    list your items
  stats              show your stats
  map                show the map
  save               save your progress
  Ctrl+Y             copy the log
  Ctrl+C             quit`

// commandAliases maps typed commands to API actions.
var commandAliases = map[string]string{
	"explore":   "explore",
	"encounter": "encounter",
	"battle":    "battle",
	"fight":     "battle",
	"flee":      "flee",
	"run":       "flee",
	"find":      "find",
	"heal":      "heal",
	"use":       "use",
	"quest":     "assign-quest",
	"complete":  "complete-quest",
	"inventory": "inventory",
	"inv":       "inventory",
	"stats":     "stats",
	"map":       "map",
	"save":      "save",
}

// parseCommand turns typed input into an API action and its item argument.
func parseCommand(input string) (action, item string, ok bool) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return "", "", false
	}
	action, ok = commandAliases[strings.ToLower(fields[0])]
	if !ok {
		return "", "", false
	}
	if action == "use" {
		item = strings.Join(fields[1:], " ")
		if item == "" {
			return "", "", false
		}
	}
	return action, item, true
}

// logBuffer accumulates styled game log lines for the log viewport.
type logBuffer struct {
	lines []string
	plain []string
}

var _ world.Renderer = (*logBuffer)(nil)

func (b *logBuffer) Render(lines ...string) {
	for _, l := range lines {
		b.plain = append(b.plain, l)
		b.lines = append(b.lines, styleLine(l))
	}
}

func (b *logBuffer) system(style lipgloss.Style, text string) {
	b.plain = append(b.plain, text)
	b.lines = append(b.lines, style.Render(text))
}

// Text returns the unstyled log for copying.
func (b *logBuffer) Text() string {
	return strings.Join(b.plain, "\n")
}

func (b *logBuffer) wrapped(width int) string {
	if width <= 0 {
		return strings.Join(b.lines, "\n")
	}
	var sb strings.Builder
	for _, l := range b.lines {
		sb.WriteString(wordwrap.String(l, width))
		sb.WriteString("\n")
	}
	return sb.String()
}

func styleLine(l string) string {
	switch {
	case strings.Contains(l, "has been defeated by"):
		return errorStyle.Render(l)
	case strings.Contains(l, "appears!"), strings.Contains(l, "attack"):
		return combatStyle.Render(l)
	case strings.Contains(l, "leveled up"), strings.Contains(l, "defeated "), strings.HasPrefix(l, "Quest completed"):
		return rewardStyle.Render(l)
	case strings.Contains(l, "finds a"), strings.Contains(l, "picks up"), strings.Contains(l, " uses "):
		return itemStyle.Render(l)
	default:
		return l
	}
}

type screen int

const (
	screenMenu screen = iota
	screenName
	screenGame
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	api         *APIClient
	game        *handlers.GameResponse
	log         *logBuffer
	mapRows     []string
	logViewport viewport.Model
	textarea    textarea.Model
	screen      screen
	ready       bool
	width       int
	height      int
	err         error
	loading     bool

	saves        []storage.Save
	loadingSaves bool
	selected     int

	showQuitModal bool
}

type savesLoadedMsg struct {
	saves []storage.Save
	err   error
}

type gameStartedMsg struct {
	game *handlers.GameResponse
	err  error
}

type actionMsg struct {
	resp *handlers.ActionResponse
	err  error
}

var (
	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2)

	sidePanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	combatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	rewardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(api *APIClient) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	vp := viewport.New(50, 20)
	vp.MouseWheelEnabled = true

	return ConsoleUI{
		api:          api,
		log:          &logBuffer{},
		logViewport:  vp,
		textarea:     ta,
		screen:       screenMenu,
		loadingSaves: true,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return m.loadSaves()
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case savesLoadedMsg:
		m.loadingSaves = false
		m.saves = msg.saves
		m.err = msg.err
		return m, nil

	case gameStartedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.game = msg.game
		m.screen = screenGame
		m.log.Render(msg.game.History...)
		m.log.system(promptStyle, "Type help for a list of commands.")
		m.textarea.Reset()
		m.textarea.Placeholder = PlaceHolderText
		m.textarea.Focus()
		m.ready = true
		m.resize()
		m.refreshLog()
		return m, textarea.Blink

	case actionMsg:
		m.loading = false
		if msg.err != nil {
			m.log.system(errorStyle, msg.err.Error())
		} else {
			m.applyAction(msg.resp)
		}
		m.refreshLog()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			if m.screen == screenMenu && m.loadingSaves {
				return m, tea.Quit
			}
			m.showQuitModal = true
			return m, nil
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenName:
			return m.updateName(msg)
		default:
			return m.updateGame(msg)
		}
	}

	var tiCmd, vpCmd tea.Cmd
	m.textarea, tiCmd = m.textarea.Update(msg)
	m.logViewport, vpCmd = m.logViewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

// menuOptions is "New Game" followed by one entry per save.
func (m ConsoleUI) menuOptions() []string {
	opts := []string{"New Game"}
	for _, s := range m.saves {
		opts = append(opts, fmt.Sprintf("Load %s (Level %d)", s.Name, s.Level))
	}
	return opts
}

func (m ConsoleUI) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading || m.loadingSaves {
		return m, nil
	}
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > 0 {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < len(m.menuOptions())-1 {
			m.selected++
		}
	case tea.KeyEnter:
		if m.selected == 0 {
			m.screen = screenName
			m.err = nil
			m.textarea.Reset()
			m.textarea.Placeholder = NamePlaceholder
			m.textarea.Focus()
			return m, textarea.Blink
		}
		m.loading = true
		return m, m.loadGame(m.saves[m.selected-1].Name)
	}
	return m, nil
}

func (m ConsoleUI) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	if msg.Type == tea.KeyEnter {
		name := strings.TrimSpace(m.textarea.Value())
		if name == "" {
			return m, nil
		}
		m.loading = true
		return m, m.createGame(name)
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m ConsoleUI) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlY:
		if err := clipboard.WriteAll(m.log.Text()); err != nil {
			m.log.system(errorStyle, "Could not copy log: "+err.Error())
		} else {
			m.log.system(promptStyle, "Log copied to clipboard.")
		}
		m.refreshLog()
		return m, nil
	case tea.KeyEnter:
		if m.loading {
			return m, nil
		}
		input := strings.TrimSpace(m.textarea.Value())
		m.textarea.Reset()
		if input == "" {
			return m, nil
		}
		m.log.system(promptStyle, "> "+input)

		switch strings.ToLower(input) {
		case "help":
			for l := range strings.SplitSeq(helpText, "\n") {
				m.log.system(promptStyle, l)
			}
			m.refreshLog()
			return m, nil
		case "quit", "exit":
			m.showQuitModal = true
			return m, nil
		}

		action, item, ok := parseCommand(input)
		if !ok {
			m.log.system(errorStyle, fmt.Sprintf("Unknown command %q. Type help for a list.", input))
			m.refreshLog()
			return m, nil
		}
		m.loading = true
		m.refreshLog()
		return m, m.act(action, item)
	}

	var tiCmd, vpCmd tea.Cmd
	m.textarea, tiCmd = m.textarea.Update(msg)
	m.logViewport, vpCmd = m.logViewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

func (m *ConsoleUI) applyAction(resp *handlers.ActionResponse) {
	wasOver := m.game != nil && m.game.GameOver
	game := resp.Game
	m.game = &game
	if rows := mapRows(resp.Result); rows != nil {
		m.mapRows = rows
	}
	m.log.Render(resp.Log...)
	if game.GameOver && !wasOver {
		m.log.system(errorStyle, "Game Over. You have been defeated.")
	}
}

// mapRows extracts rendered rows from a map action result.
func mapRows(result any) []string {
	obj, ok := result.(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := obj["rows"].([]any)
	if !ok {
		return nil
	}
	rows := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			rows = append(rows, s)
		}
	}
	return rows
}

func (m *ConsoleUI) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	logWidth := int(float64(m.width)*0.7) - 4
	m.logViewport.Width = logWidth - 2
	m.logViewport.Height = m.height - 5
	m.textarea.SetWidth(logWidth - 4)
	m.refreshLog()
}

func (m *ConsoleUI) refreshLog() {
	m.logViewport.SetContent(m.log.wrapped(m.logViewport.Width - 2))
	m.logViewport.GotoBottom()
}

func (m ConsoleUI) loadSaves() tea.Cmd {
	return func() tea.Msg {
		saves, err := m.api.ListSaves()
		return savesLoadedMsg{saves, err}
	}
}

func (m ConsoleUI) createGame(name string) tea.Cmd {
	return func() tea.Msg {
		game, err := m.api.CreateGame(name)
		return gameStartedMsg{game, err}
	}
}

func (m ConsoleUI) loadGame(name string) tea.Cmd {
	return func() tea.Msg {
		game, err := m.api.LoadGame(name)
		return gameStartedMsg{game, err}
	}
}

func (m ConsoleUI) act(action, item string) tea.Cmd {
	id := m.game.ID
	return func() tea.Msg {
		resp, err := m.api.Act(id, action, item)
		return actionMsg{resp, err}
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.screen == screenMenu {
					return m, nil
				}
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Unsaved progress will be lost.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderMenu() string {
	var content strings.Builder

	switch {
	case m.loadingSaves:
		content.WriteString(modalTitleStyle.Render("Loading Saves..."))
	case m.loading:
		content.WriteString(modalTitleStyle.Render("Starting Game..."))
	case m.screen == screenName:
		content.WriteString(modalTitleStyle.Render("New Game"))
		content.WriteString("\n\n")
		content.WriteString(m.textarea.View())
		content.WriteString("\n\n")
		content.WriteString(promptStyle.Render("Enter to start, Esc to quit"))
	default:
		content.WriteString(modalTitleStyle.Render("RPG ENGINE"))
		content.WriteString("\n\n")
		for i, opt := range m.menuOptions() {
			if i == m.selected {
				content.WriteString(modalSelectedItemStyle.Render("▶ " + opt))
			} else {
				content.WriteString(modalItemStyle.Render("  " + opt))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	if m.err != nil {
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(m.err.Error()))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderSidePanel() string {
	var content strings.Builder
	p := m.game.Player

	content.WriteString(titleStyle.Render(strings.ToUpper(p.Name)) + "\n\n")
	for _, s := range p.Stats() {
		content.WriteString(fmt.Sprintf("%-17s %s\n", s.Attribute+":", s.Value))
	}

	content.WriteString("\n" + titleStyle.Render("INVENTORY") + "\n")
	for _, l := range p.ShowInventory() {
		content.WriteString(l + "\n")
	}

	if p.Quests.Pending() > 0 {
		content.WriteString("\n" + titleStyle.Render("QUESTS") + "\n")
		for _, q := range p.Quests {
			if !q.Completed {
				content.WriteString("• " + q.Description + "\n")
			}
		}
	}

	if m.game.CurrentEnemy != nil {
		e := m.game.CurrentEnemy
		content.WriteString("\n" + titleStyle.Render("ENEMY") + "\n")
		content.WriteString(combatStyle.Render(fmt.Sprintf("%s  HP %d  ATK %d", e.Name, e.Health, e.AttackPower)) + "\n")
	}

	if len(m.mapRows) > 0 {
		content.WriteString("\n" + titleStyle.Render("MAP") + "\n")
		for _, r := range m.mapRows {
			content.WriteString(r + "\n")
		}
	}

	content.WriteString(fmt.Sprintf("\nEnemies left: %d\nItems left:   %d\n", m.game.EnemiesLeft, m.game.ItemsLeft))
	return content.String()
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if m.width == 0 || m.height == 0 {
		return "\n  Initializing..."
	}
	if m.screen != screenGame || !m.ready {
		return m.renderMenu()
	}

	logWidth := int(float64(m.width)*0.7) - 4
	sideWidth := m.width - logWidth - 6

	status := ""
	if m.loading {
		status = promptStyle.Render("...")
	}

	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.logViewport.View(),
			separatorStyle.Render(strings.Repeat("─", max(logWidth-4, 1))),
			m.textarea.View(),
			status,
		),
	)
	sidePanel := sidePanelStyle.Width(sideWidth).Height(m.height - 2).Render(m.renderSidePanel())

	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, sidePanel)
}
