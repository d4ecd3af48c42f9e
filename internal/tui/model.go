package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/OGaCu/madventure/internal/engine"
	"github.com/OGaCu/madventure/internal/storage"
	"github.com/OGaCu/madventure/internal/ui"
)

// questService is the slice of engine.Service the board drives.
type questService interface {
	Snapshot() engine.Snapshot
	Generate(f engine.Filter) (storage.Quest, bool)
	AddQuest(ctx context.Context, q storage.Quest) (*engine.AddResult, error)
	CompleteQuest(ctx context.Context, id string, in engine.CompleteInput) (*engine.CompleteResult, error)
	DeleteQuest(ctx context.Context, id string) (*engine.DeleteResult, error)
}

type tab int

const (
	tabCurrent tab = iota
	tabCompleted
)

type boardModel struct {
	ctx context.Context
	svc questService

	width  int
	height int

	snap     engine.Snapshot
	tab      tab
	selected int

	filter  engine.Filter
	preview *storage.Quest

	lastLog string
	loading bool
}

type loadedMsg struct {
	snap engine.Snapshot
}

type generatedMsg struct {
	quest    storage.Quest
	fallback bool
}

type addedMsg struct {
	res *engine.AddResult
	err error
}

type completedMsg struct {
	res *engine.CompleteResult
	err error
}

type deletedMsg struct {
	res *engine.DeleteResult
	err error
}

func newBoardModel(ctx context.Context, svc questService) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		filter:  engine.DefaultFilter(),
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{snap: m.svc.Snapshot()}
	}
}

func (m boardModel) generateCmd() tea.Cmd {
	return func() tea.Msg {
		q, fallback := m.svc.Generate(m.filter)
		return generatedMsg{quest: q, fallback: fallback}
	}
}

func (m boardModel) addCmd(q storage.Quest) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.AddQuest(m.ctx, q)
		return addedMsg{res: res, err: err}
	}
}

func (m boardModel) completeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteQuest(m.ctx, id, engine.CompleteInput{})
		return completedMsg{res: res, err: err}
	}
}

func (m boardModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.DeleteQuest(m.ctx, id)
		return deletedMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.snap = msg.snap
		m.clampSelection()
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case generatedMsg:
		q := msg.quest
		m.preview = &q
		m.lastLog = "New quest drawn: a to accept, x to discard, g to reroll."
		if msg.fallback {
			m.lastLog = "Nothing matched the filter; drew from the whole catalog."
		}
		return m, nil
	case addedMsg:
		if msg.err != nil {
			m.lastLog = "Accept failed: " + msg.err.Error()
			return m, nil
		}
		m.preview = nil
		m.snap = msg.res.Snapshot
		m.tab = tabCurrent
		m.clampSelection()
		m.lastLog = fmt.Sprintf("Accepted %q.", msg.res.Quest.Title)
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		m.snap = msg.res.Snapshot
		m.clampSelection()
		if !msg.res.Completed {
			m.lastLog = "Nothing to complete."
			return m, nil
		}
		m.lastLog = completionLog(msg.res)
		return m, nil
	case deletedMsg:
		if msg.err != nil {
			m.lastLog = "Delete failed: " + msg.err.Error()
			return m, nil
		}
		m.snap = msg.res.Snapshot
		m.clampSelection()
		if msg.res.Deleted {
			m.lastLog = "Quest deleted."
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.loading = true
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	case "tab":
		if m.tab == tabCurrent {
			m.tab = tabCompleted
		} else {
			m.tab = tabCurrent
		}
		m.selected = 0
		return m, nil
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(m.visible())-1 {
			m.selected++
		}
		return m, nil
	case "+":
		m.filter.TimeAvailable += 5
		m.lastLog = fmt.Sprintf("Time available: %d min.", m.filter.TimeAvailable)
		return m, nil
	case "-":
		if m.filter.TimeAvailable >= 5 {
			m.filter.TimeAvailable -= 5
		}
		m.lastLog = fmt.Sprintf("Time available: %d min.", m.filter.TimeAvailable)
		return m, nil
	case "l":
		m.filter.Location = nextLocation(m.filter.Location)
		m.lastLog = fmt.Sprintf("Location: %s.", m.filter.Location)
		return m, nil
	case "C":
		m.filter.Categories = nextCategories(m.filter.Categories)
		m.lastLog = fmt.Sprintf("Category: %s.", categoryLabel(m.filter.Categories))
		return m, nil
	case "g":
		return m, m.generateCmd()
	case "a":
		if m.preview == nil {
			m.lastLog = "Press g to draw a quest first."
			return m, nil
		}
		return m, m.addCmd(*m.preview)
	case "x":
		m.preview = nil
		m.lastLog = "Discarded."
		return m, nil
	case "c", " ":
		q := m.selectedQuest()
		if q == nil {
			return m, nil
		}
		if engine.Status(q.Status) == engine.StatusCompleted {
			m.lastLog = "Already done."
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Completing %s…", q.Title)
		return m, m.completeCmd(q.ID)
	case "d":
		q := m.selectedQuest()
		if q == nil {
			return m, nil
		}
		return m, m.deleteCmd(q.ID)
	}
	return m, nil
}

func completionLog(res *engine.CompleteResult) string {
	parts := []string{fmt.Sprintf("Completed %q: +%d XP", res.Quest.Title, res.XPAwarded)}
	if res.LevelUp {
		parts = append(parts, fmt.Sprintf("level up %d → %d", res.LevelBefore, res.LevelAfter))
	}
	for _, a := range res.NewAchievements {
		parts = append(parts, fmt.Sprintf("%s %s unlocked", a.Icon, a.Title))
	}
	return strings.Join(parts, " | ")
}

func nextLocation(l engine.Location) engine.Location {
	switch l {
	case engine.LocationAny:
		return engine.LocationIndoor
	case engine.LocationIndoor:
		return engine.LocationOutdoor
	default:
		return engine.LocationAny
	}
}

// nextCategories steps the category filter through all, then each
// category alone, then back to all.
func nextCategories(cur []engine.Category) []engine.Category {
	if len(cur) == 0 {
		return []engine.Category{engine.Categories[0]}
	}
	for i, c := range engine.Categories {
		if c == cur[0] && i+1 < len(engine.Categories) {
			return []engine.Category{engine.Categories[i+1]}
		}
	}
	return nil
}

func categoryLabel(cats []engine.Category) string {
	if len(cats) == 0 {
		return "all"
	}
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, string(c))
	}
	return strings.Join(names, ",")
}

func (m boardModel) visible() []storage.Quest {
	want := engine.StatusCurrent
	if m.tab == tabCompleted {
		want = engine.StatusCompleted
	}
	var out []storage.Quest
	for _, q := range m.snap.Quests {
		if engine.Status(q.Status) == want {
			out = append(out, q)
		}
	}
	return out
}

func (m boardModel) selectedQuest() *storage.Quest {
	list := m.visible()
	if m.selected < 0 || m.selected >= len(list) {
		return nil
	}
	return &list[m.selected]
}

func (m *boardModel) clampSelection() {
	n := len(m.visible())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) View() string {
	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := len(linesLeft)
	if len(linesRight) > rows {
		rows = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.loading {
		return "Side Quests | loading…"
	}
	p := m.snap.Profile
	into, cost := engine.Progress(p.XP)
	return fmt.Sprintf("Side Quests | %s | Level %d | XP %d %s %d to go",
		p.Name, p.Level, p.XP, ui.ProgressBar(into, cost, 24), p.XPToNextLevel)
}

func (m boardModel) renderSidebar() string {
	p := m.snap.Profile
	lines := []string{"Stats"}
	lines = append(lines, fmt.Sprintf("- completed: %d", p.TotalQuestsCompleted))
	lines = append(lines, fmt.Sprintf("- streak: %d (best %d)", p.CurrentStreak, p.LongestStreak))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Achievements %d/%d", engine.CountUnlocked(p.Achievements), len(p.Achievements)))
	for _, a := range p.Achievements {
		mark := "·"
		if a.Unlocked() {
			mark = a.Icon
		}
		lines = append(lines, fmt.Sprintf("%s %s", mark, a.Title))
	}
	lines = append(lines, "")
	lines = append(lines, "Filter")
	lines = append(lines, fmt.Sprintf("- time: %d min (+/-)", m.filter.TimeAvailable))
	lines = append(lines, fmt.Sprintf("- location: %s (l)", m.filter.Location))
	lines = append(lines, fmt.Sprintf("- category: %s (C)", categoryLabel(m.filter.Categories)))
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- tab: current/completed")
	lines = append(lines, "- g: draw  a: accept  x: drop")
	lines = append(lines, "- C: cycle category")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- d: delete  r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	if m.preview != nil {
		q := m.preview
		card := strings.Join([]string{
			"New Quest",
			fmt.Sprintf("%s %s (+%d XP)", ui.CategoryIcon(q.Category), q.Title, q.XPReward),
			q.Description,
			fmt.Sprintf("%d min · %s · %s", q.Duration, q.Location, q.Difficulty),
		}, "\n")
		out = append(out, ui.Panel.Render(card))
		out = append(out, "")
	}

	title := "Current Quests"
	if m.tab == tabCompleted {
		title = "Completed Quests"
	}
	list := m.visible()
	out = append(out, fmt.Sprintf("%s (%d)", title, len(list)))
	if len(list) == 0 {
		out = append(out, "(empty)")
		return strings.Join(out, "\n")
	}
	for i, q := range list {
		row := fmt.Sprintf("%s %s (%d min, +%d XP)", ui.CategoryIcon(q.Category), q.Title, q.Duration, q.XPReward)
		if i == m.selected {
			out = append(out, ui.SelectedRow.Render("> "+row))
			continue
		}
		out = append(out, "  "+row)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
