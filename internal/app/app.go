package app

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/crux/internal/applog"
	"github.com/rebeliceyang/crux/internal/clipboard"
	"github.com/rebeliceyang/crux/internal/config"
	"github.com/rebeliceyang/crux/internal/db/connection"
	"github.com/rebeliceyang/crux/internal/history"
	"github.com/rebeliceyang/crux/internal/models"
	"github.com/rebeliceyang/crux/internal/ui/components"
	"github.com/rebeliceyang/crux/internal/ui/theme"
)

// RecentConnections remembers connection strings that connected successfully
type RecentConnections interface {
	Add(connStr string) error
	GetRecent(limit int) []models.ConnectionHistoryEntry
	Delete(id string) error
	ConnectionString(entry models.ConnectionHistoryEntry) string
}

// QueryHistory persists executed queries
type QueryHistory interface {
	Record(ctx context.Context, entry history.HistoryEntry) (bool, error)
	RecentQueries(ctx context.Context, limit int) ([]string, error)
}

// Options configures a new App. Recent, History and Clipboard may be nil.
type Options struct {
	Config      *config.Config
	Logger      *slog.Logger
	Connections *connection.Manager
	Recent      RecentConnections
	History     QueryHistory
	Clipboard   clipboard.Writer

	// ConnectionString is connected to on start-up when set
	ConnectionString string
	// DefaultInput prefills the connection string input
	DefaultInput string
}

// App is the main application model
type App struct {
	state  models.AppState
	config *config.Config
	theme  theme.Theme
	logger *slog.Logger

	width  int
	height int
	layout Layout

	connections *connection.Manager
	recent      RecentConnections
	history     QueryHistory
	clipboard   clipboard.Writer

	connectionDialog *components.ConnectionDialog
	treeView         *components.TreeView
	editor           *components.SQLEditor
	buttons          *components.ButtonBar
	tableView        *components.TableView
	preview          *components.PreviewPane
	spinner          spinner.Model

	focus    models.Focus
	showHelp bool

	// busy is set while a connect or a query is outstanding; only quit keys
	// are handled meanwhile.
	busy bool

	connName    string
	status      string
	startupConn string
}

// New creates a new App instance
func New(opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.GetDefaults()
	}
	logger := opts.Logger
	if logger == nil {
		logger = applog.Discard()
	}
	manager := opts.Connections
	if manager == nil {
		manager = connection.NewManager(connection.DefaultOptions(), logger)
	}

	th := theme.GetTheme(cfg.UI.Theme)

	tableView := components.NewTableView(th)
	tableView.MaxCellDisplayLength = cfg.Data.MaxCellDisplayLength
	tableView.Grid.MinColumnWidth = cfg.Data.MinColumnWidth
	tableView.Grid.MaxColumnWidth = cfg.Data.MaxColumnWidth
	tableView.Grid.ColumnPadding = cfg.Data.ColumnPadding

	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(th.Info)

	a := &App{
		state:            models.ConnectionScreen,
		config:           cfg,
		theme:            th,
		logger:           logger,
		connections:      manager,
		recent:           opts.Recent,
		history:          opts.History,
		clipboard:        opts.Clipboard,
		connectionDialog: components.NewConnectionDialog(th),
		treeView:         components.NewTreeView(nil, th),
		editor:           components.NewSQLEditor(th),
		buttons:          components.NewButtonBar(th),
		tableView:        tableView,
		preview:          components.NewPreviewPane(th),
		spinner:          s,
		startupConn:      opts.ConnectionString,
	}

	if opts.DefaultInput != "" {
		a.connectionDialog.SetInput(opts.DefaultInput)
	}
	a.reloadRecent()
	a.syncFocus()

	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.startupConn == "" {
		return nil
	}
	a.connectionDialog.SetInput(a.startupConn)
	return a.connect(a.startupConn)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.relayout()
		return a, nil

	case tea.KeyMsg:
		if a.state == models.ConnectionScreen {
			return a.handleConnectionKey(msg)
		}
		return a.handleBrowserKey(msg)

	case tea.MouseMsg:
		if a.state != models.BrowserScreen || a.busy || a.showHelp {
			return a, nil
		}
		return a, a.handleMouse(msg)

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case connectedMsg:
		a.handleConnected(msg)
		return a, nil

	case queryFinishedMsg:
		a.handleQueryFinished(msg)
		return a, nil

	case components.TableSelectedMsg:
		return a, a.openTable(msg.Table)
	}

	if a.state == models.ConnectionScreen {
		return a, a.connectionDialog.Update(msg)
	}
	return a, nil
}

// relayout recomputes the layout and hands each component its size
func (a *App) relayout() {
	a.layout = computeLayout(a.width, a.height, a.config.UI.SidebarWidthRatio, a.buttons)

	a.treeView.Width = max(a.layout.SidebarRows.Width, 0)
	a.treeView.Height = max(a.layout.SidebarRows.Height, 0)
	a.treeView.Tree.UpdateScroll(a.treeView.Height)

	a.editor.Width = max(a.layout.EditorText.Width, 0)
	a.editor.Height = max(a.layout.EditorText.Height, 0)

	a.tableView.Resize(max(a.layout.Grid.Width, 0), max(a.layout.Grid.Height, 0))
	a.preview.Width = max(a.layout.Grid.Width, 0)
	a.preview.Height = max(a.layout.Grid.Height, 0)

	a.connectionDialog.Width = min(max(a.width-4, 20), 90)
	a.connectionDialog.Height = min(max(a.height-2, 10), 24)
}

// reloadRecent refreshes the connection screen list
func (a *App) reloadRecent() {
	if a.recent == nil {
		return
	}
	a.connectionDialog.SetRecent(a.recent.GetRecent(a.config.General.RecentLimit))
}

// setResult hands a result to the grid; the preview follows the selection
func (a *App) setResult(result models.QueryResult) {
	a.tableView.SetResult(result)
	a.tableView.Resize(max(a.layout.Grid.Width, 0), max(a.layout.Grid.Height, 0))
	a.syncPreview()
}

func (a *App) syncPreview() {
	result := a.tableView.Result
	row := a.tableView.Grid.SelectedRow
	if row < 0 || row >= len(result.Rows) {
		a.preview.SetRow(result.Columns, nil, row)
		return
	}
	a.preview.SetRow(result.Columns, result.Rows[row], row)
}

// gridScrollable reports whether the scrollbar rectangles are live
func (a *App) gridScrollable() bool {
	return !a.preview.Visible && !a.tableView.Result.IsEmpty()
}
