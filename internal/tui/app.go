// Package tui is the terminal front end: a category-tabbed article list
// with a preview pane and a full-screen deep-dive viewer. All provider
// work runs in tea commands; the store is the single source of truth and
// every screen is a projection of it.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/browser"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/config"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/enrich"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/scheduler"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/store"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/view"
)

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type mode int

const (
	modeList mode = iota
	modeDeepDive
)

type App struct {
	cfg       *config.Config
	st        *store.Store
	sched     *scheduler.Scheduler
	deepDives *enrich.DeepDives
	images    *enrich.Images

	articles []model.Article
	cursor   int
	category model.Category
	window   model.Window
	focus    focusPane
	mode     mode

	width  int
	height int

	spinner     spinner.Model
	refreshing  bool
	currentDate string

	// Deep-dive viewer state. loading doubles as the per-record guard
	// against overlapping generation requests.
	deepDiveTitle   string
	deepDiveText    string
	deepDiveLoading bool
	deepDiveScroll  int

	// Image generations in flight, by record id.
	generating map[string]bool

	previewScroll int
	err           error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg       *config.Config
	Store     *store.Store
	Scheduler *scheduler.Scheduler
	DeepDives *enrich.DeepDives
	Images    *enrich.Images
}

func NewApp(opts RunOpts) *App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		cfg:         opts.Cfg,
		st:          opts.Store,
		sched:       opts.Scheduler,
		deepDives:   opts.DeepDives,
		images:      opts.Images,
		category:    opts.Scheduler.Category(),
		window:      model.WindowRecent,
		spinner:     sp,
		currentDate: time.Now().Format("Jan 2"),
		generating:  make(map[string]bool),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadCmd(), a.armAutoRefresh())
}

// loadCmd projects the current (category, window) slice of history.
func (a *App) loadCmd() tea.Cmd {
	st := a.st
	cat := a.category
	win := a.window
	return func() tea.Msg {
		return historyLoadedMsg{articles: view.Project(st.All(), cat, win, time.Now())}
	}
}

// doRefresh runs one guarded fetch-and-merge cycle for the category.
func (a *App) doRefresh(category model.Category) tea.Cmd {
	sched := a.sched
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()
		err := sched.Run(ctx, category)
		if err == scheduler.ErrRefreshInFlight {
			err = nil
		}
		return refreshDoneMsg{err: err}
	}
}

// armAutoRefresh schedules the next periodic refresh tick.
func (a *App) armAutoRefresh() tea.Cmd {
	return tea.Tick(a.cfg.RefreshDuration(), func(time.Time) tea.Msg {
		return autoRefreshMsg{}
	})
}

func (a *App) fetchDeepDive(article model.Article) tea.Cmd {
	dd := a.deepDives
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		return deepDiveMsg{id: article.ID, text: dd.GetOrCreate(ctx, article.ID)}
	}
}

func (a *App) fetchImage(article model.Article) tea.Cmd {
	images := a.images
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()
		_, ok := images.GetOrCreate(ctx, article.ID)
		return imageDoneMsg{id: article.ID, ok: ok}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

// saveImageCmd writes a cached illustration next to the working dir.
func saveImageCmd(article model.Article) tea.Cmd {
	return func() tea.Msg {
		if article.Image == nil {
			return nil
		}
		ext := "png"
		if i := strings.LastIndex(article.Image.MimeType, "/"); i >= 0 {
			ext = article.Image.MimeType[i+1:]
		}
		name := fmt.Sprintf("mundonews-%s.%s", article.ID[:8], ext)
		if err := os.WriteFile(name, article.Image.Data, 0o644); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case historyLoadedMsg:
		a.articles = msg.articles
		if a.cursor >= len(a.articles) {
			a.cursor = max(0, len(a.articles)-1)
		}
		return a, nil

	case refreshDoneMsg:
		a.refreshing = false
		if msg.err != nil {
			a.err = msg.err
		}
		return a, a.loadCmd()

	case autoRefreshMsg:
		cmds := []tea.Cmd{a.armAutoRefresh()}
		if !a.refreshing {
			a.refreshing = true
			cmds = append(cmds, a.doRefresh(a.category), a.spinner.Tick)
		}
		return a, tea.Batch(cmds...)

	case deepDiveMsg:
		a.deepDiveLoading = false
		a.deepDiveText = msg.text
		// Reload so the cached marker shows up in the list.
		return a, a.loadCmd()

	case imageDoneMsg:
		delete(a.generating, msg.id)
		if !msg.ok {
			a.err = fmt.Errorf("no se pudo generar la ilustración")
			return a, nil
		}
		return a, a.loadCmd()

	case errMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.refreshing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	}

	if a.mode == modeDeepDive {
		return a.handleDeepDiveKey(msg)
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.articles)-1 {
			a.cursor++
			a.previewScroll = 0
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "1", "2", "3", "4", "5", "6":
		idx := int(msg.String()[0] - '1')
		return a, a.switchCategory(model.Categories()[idx])
	case "w":
		if a.window == model.WindowRecent {
			a.window = model.WindowArchived
		} else {
			a.window = model.WindowRecent
		}
		a.cursor = 0
		return a, a.loadCmd()
	case "enter":
		if sel := a.selected(); sel != nil {
			a.mode = modeDeepDive
			a.deepDiveTitle = sel.Title
			a.deepDiveScroll = 0
			if sel.DeepDive != "" {
				a.deepDiveText = sel.DeepDive
				a.deepDiveLoading = false
				return a, nil
			}
			a.deepDiveText = ""
			a.deepDiveLoading = true
			return a, a.fetchDeepDive(*sel)
		}
		return a, nil
	case "g":
		if sel := a.selected(); sel != nil && sel.Image == nil && !a.generating[sel.ID] {
			a.generating[sel.ID] = true
			return a, a.fetchImage(*sel)
		}
		return a, nil
	case "s":
		if sel := a.selected(); sel != nil && sel.Image != nil {
			return a, saveImageCmd(*sel)
		}
		return a, nil
	case "o":
		if sel := a.selected(); sel != nil && sel.URL != "" {
			return a, openBrowserCmd(sel.URL)
		}
		return a, nil
	case "r":
		if !a.refreshing {
			a.refreshing = true
			return a, tea.Batch(a.doRefresh(a.category), a.spinner.Tick)
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleDeepDiveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		a.mode = modeList
		return a, nil
	case "j", "down":
		a.deepDiveScroll++
		return a, nil
	case "k", "up":
		if a.deepDiveScroll > 0 {
			a.deepDiveScroll--
		}
		return a, nil
	}
	return a, nil
}

// switchCategory makes the new section active and, per the refresh
// contract, triggers a fetch cycle for it.
func (a *App) switchCategory(c model.Category) tea.Cmd {
	a.cursor = 0
	a.previewScroll = 0
	if !a.sched.SetCategory(c) {
		return nil
	}
	a.category = c
	cmds := []tea.Cmd{a.loadCmd()}
	if !a.refreshing {
		a.refreshing = true
		cmds = append(cmds, a.doRefresh(c), a.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (a *App) selected() *model.Article {
	if len(a.articles) == 0 || a.cursor >= len(a.articles) {
		return nil
	}
	return &a.articles[a.cursor]
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  mundonews")
	}

	if a.mode == modeDeepDive {
		return renderDeepDive(a.deepDiveTitle, a.deepDiveText, a.width, a.height-1, a.deepDiveScroll, a.deepDiveLoading) +
			statusBarStyle.Width(a.width).Render(" esc volver  j/k desplazar ")
	}

	// Layout calculations
	headerHeight := 1
	tabsHeight := 1
	windowHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - tabsHeight - windowHeight - statusHeight - 4 // borders

	listWidth := int(float64(a.width) * 0.4)
	previewWidth := a.width - listWidth - 1 // gap

	if contentHeight < 3 {
		contentHeight = 3
	}

	// Header
	headerLeft := headerStyle.Render("MUNDO AI NEWS")
	headerRight := headerDateStyle.Render(a.currentDate)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	tabs := renderTabs(a.category, a.width)
	windowBar := renderWindowToggle(a.window, a.width)

	// List pane
	innerListW := listWidth - 4 // border + padding
	listContent := renderList(a.articles, a.cursor, contentHeight, innerListW, a.window)

	var listPane string
	if a.focus == focusList {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	// Preview pane
	selected := a.selected()
	innerPreviewW := previewWidth - 4
	previewContent := renderPreview(selected, innerPreviewW, contentHeight, a.previewScroll)

	var previewPane string
	if a.focus == focusPreview {
		previewPane = previewPaneActiveStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	} else {
		previewPane = previewPaneStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)

	status := renderStatusBar(len(a.articles), a.window.String(), a.width, a.refreshing)
	if a.refreshing {
		status = a.spinner.View() + " " + status
	}
	if a.err != nil {
		status = lipgloss.NewStyle().Foreground(colorAccent).Render(a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, windowBar, content, status)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
