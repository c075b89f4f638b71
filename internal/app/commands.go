package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rebeliceyang/crux/internal/clipboard"
	"github.com/rebeliceyang/crux/internal/db/metadata"
	"github.com/rebeliceyang/crux/internal/db/query"
	"github.com/rebeliceyang/crux/internal/export"
	"github.com/rebeliceyang/crux/internal/history"
	"github.com/rebeliceyang/crux/internal/models"
)

// connectedMsg reports the outcome of a connect attempt
type connectedMsg struct {
	connStr string
	config  models.ConnectionConfig
	tables  []models.TableRef
	queries []string
	err     error
}

// queryFinishedMsg carries the result of a finished query
type queryFinishedMsg struct {
	query  string
	result models.QueryResult
	err    error
}

// connect starts connecting to connStr in the background
func (a *App) connect(connStr string) tea.Cmd {
	if a.busy {
		return nil
	}
	a.busy = true
	a.connectionDialog.Connecting = true
	a.connectionDialog.Error = ""
	return tea.Batch(a.spinner.Tick, a.connectCmd(connStr))
}

// connectCmd opens the connection, loads the catalog and the recall list
func (a *App) connectCmd(connStr string) tea.Cmd {
	manager := a.connections
	recent := a.recent
	store := a.history
	logger := a.logger
	limit := a.config.History.MaxEntries

	return func() tea.Msg {
		ctx := context.Background()

		if _, err := manager.Connect(ctx, connStr); err != nil {
			return connectedMsg{connStr: connStr, err: err}
		}

		conn, release, err := manager.Acquire()
		if err != nil {
			return connectedMsg{connStr: connStr, err: err}
		}
		defer release()

		tables, err := metadata.ListTables(ctx, conn)
		if err != nil {
			return connectedMsg{connStr: connStr, err: err}
		}
		logger.Info("connected", "connection", conn.Config.DisplayName, "tables", len(tables))

		if recent != nil {
			if err := recent.Add(connStr); err != nil {
				logger.Warn("failed to save connection history", "error", err)
			}
		}

		var queries []string
		if store != nil {
			queries, err = store.RecentQueries(ctx, limit)
			if err != nil {
				logger.Warn("failed to load query history", "error", err)
			}
		}

		return connectedMsg{
			connStr: connStr,
			config:  conn.Config,
			tables:  tables,
			queries: queries,
		}
	}
}

func (a *App) handleConnected(msg connectedMsg) {
	a.busy = false
	a.connectionDialog.Connecting = false

	if msg.err != nil {
		a.state = models.ConnectionScreen
		a.connectionDialog.Error = msg.err.Error()
		if a.connectionDialog.InputValue() == "" {
			a.connectionDialog.SetInput(msg.connStr)
		}
		a.reloadRecent()
		return
	}

	a.state = models.BrowserScreen
	a.connName = msg.config.DisplayName
	a.treeView.SetTree(models.BuildSchemaTree(msg.tables))
	a.treeView.Tree.UpdateScroll(a.treeView.Height)
	a.editor.SetHistory(msg.queries)
	a.preview.Visible = false
	a.setResult(models.EmptyResult())
	a.status = tableCount(len(msg.tables))
	a.showHelp = false
	a.focusTo(models.FocusSidebar, models.ButtonNone)
}

func tableCount(n int) string {
	if n == 1 {
		return "1 table"
	}
	return fmt.Sprintf("%d tables", n)
}

// runQuery executes stmt on the active connection. A blank statement, or one
// issued while another is outstanding, does nothing.
func (a *App) runQuery(stmt string) tea.Cmd {
	if a.busy || models.IsBlank(stmt) {
		return nil
	}

	conn, release, err := a.connections.Acquire()
	if err != nil {
		a.setResult(models.ErrorResult(err))
		a.status = a.tableView.Summary()
		return nil
	}

	a.busy = true
	a.buttons.Running = true

	store := a.history
	logger := a.logger

	run := func() tea.Msg {
		defer release()

		ctx := context.Background()
		started := time.Now()
		result, err := query.Run(ctx, conn, stmt)

		entry := history.HistoryEntry{
			ConnectionName: conn.Config.DisplayName,
			Dialect:        conn.Dialect().String(),
			Query:          stmt,
			ExecutedAt:     started,
			Duration:       time.Since(started),
			RowsAffected:   result.RowsAffected,
			Success:        err == nil,
		}
		if err != nil {
			entry.ErrorMessage = err.Error()
			logger.Info("query failed", "connection", entry.ConnectionName, "error", err)
		} else {
			logger.Debug("query executed", "connection", entry.ConnectionName,
				"rows", result.RowsAffected, "duration", result.Duration)
		}

		if store != nil {
			if _, herr := store.Record(ctx, entry); herr != nil {
				logger.Warn("failed to record query history", "error", herr)
			}
		}

		return queryFinishedMsg{query: stmt, result: result, err: err}
	}

	return tea.Batch(a.spinner.Tick, run)
}

func (a *App) handleQueryFinished(msg queryFinishedMsg) {
	a.busy = false
	a.buttons.Running = false

	a.setResult(msg.result)
	a.editor.PushHistory(msg.query)

	switch {
	case msg.err != nil:
		a.status = "Error"
	case msg.result.IsEmpty():
		a.status = fmt.Sprintf("No rows in %s", formatDuration(msg.result.Duration))
	default:
		a.status = fmt.Sprintf("%s in %s", a.tableView.Summary(), formatDuration(msg.result.Duration))
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

// openTable loads a table chosen in the sidebar into the editor and runs it
func (a *App) openTable(table models.TableRef) tea.Cmd {
	if a.busy || a.state != models.BrowserScreen {
		return nil
	}

	dialect := models.DialectPostgres
	if conn, err := a.connections.Active(); err == nil {
		dialect = conn.Dialect()
	}

	stmt := defaultTableQuery(dialect, table, a.config.General.DefaultLimit)
	a.editor.SetContent(stmt)
	a.focusTo(models.FocusResultGrid, models.ButtonNone)
	return a.runQuery(stmt)
}

// defaultTableQuery builds SELECT * FROM schema.table LIMIT n
func defaultTableQuery(dialect models.Dialect, table models.TableRef, limit int) string {
	return fmt.Sprintf("SELECT * FROM %s.%s LIMIT %d",
		quoteIdent(dialect, table.Schema), quoteIdent(dialect, table.Name), limit)
}

// quoteIdent leaves plain identifiers bare and quotes everything else the
// way the dialect expects.
func quoteIdent(dialect models.Dialect, name string) string {
	if isPlainIdent(name, dialect == models.DialectPostgres) {
		return name
	}
	if dialect == models.DialectMySQL {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// isPlainIdent reports whether name matches [A-Za-z_][A-Za-z0-9_]*. PostgreSQL
// folds unquoted names to lower case, so there upper case needs quoting too.
func isPlainIdent(name string, lowerOnly bool) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
			if lowerOnly {
				return false
			}
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// activateButton performs a query bar action
func (a *App) activateButton(b models.QueryButton) tea.Cmd {
	switch b {
	case models.ButtonRun:
		return a.runQuery(a.editor.GetContent())
	case models.ButtonClear:
		a.editor.Clear()
	case models.ButtonCopy:
		a.copyText(a.editor.GetContent())
	}
	return nil
}

// copyText places text on the clipboard; empty text is skipped
func (a *App) copyText(text string) {
	if text == "" {
		return
	}
	clipboard.Copy(a.clipboard, text, a.logger)
}

// copySelectedRow copies the selected grid row as one CSV record
func (a *App) copySelectedRow() {
	result := a.tableView.Result
	if result.IsEmpty() {
		return
	}
	text, err := export.RowCSV(result, a.tableView.Grid.SelectedRow)
	if err != nil {
		a.logger.Debug("row copy failed", "error", err)
		return
	}
	a.copyText(text)
}

// copyResult copies the whole result, header included, as CSV
func (a *App) copyResult() {
	result := a.tableView.Result
	if result.IsEmpty() {
		return
	}
	text, err := export.CSV(result)
	if err != nil {
		a.logger.Debug("result copy failed", "error", err)
		return
	}
	a.copyText(text)
}
