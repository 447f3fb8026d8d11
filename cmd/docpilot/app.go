package main

import (
	"docpilot/internal/config"
	"docpilot/internal/docedit"
	"docpilot/internal/docedit/decision"
	"docpilot/internal/docedit/sheet"
	"docpilot/internal/docedit/word"
	"docpilot/internal/logging"
	"docpilot/internal/tools"
)

// App wires the session together: one ledger, one decision channel, one
// editor per document format, and the tool registry the driver calls into.
type App struct {
	Settings *config.Settings
	Logger   logging.Logger
	Ledger   *docedit.Ledger
	Channel  *decision.Channel
	Word     *docedit.Editor
	Sheet    *docedit.Editor
	Registry *tools.Registry
}

func NewApp(settings *config.Settings, logger logging.Logger) *App {
	logger = logging.OrNop(logger)
	ledger := docedit.NewLedger()
	channel := decision.NewChannel(decision.Options{
		Timeout: settings.DecisionTimeout,
		Logger:  logger,
	})

	opts := docedit.EditorOptions{AutoApprove: settings.AutoApprove, Logger: logger}
	wordEditor := word.NewEditor(settings.Workspace, ledger, channel, opts)
	sheetEditor := sheet.NewEditor(settings.Workspace, ledger, channel, opts)

	return &App{
		Settings: settings,
		Logger:   logger,
		Ledger:   ledger,
		Channel:  channel,
		Word:     wordEditor,
		Sheet:    sheetEditor,
		Registry: tools.NewRegistry(wordEditor, sheetEditor, ledger, logger),
	}
}

// Close abandons any outstanding decision so no worker stays blocked on a
// stale request during teardown.
func (a *App) Close() {
	a.Channel.Abandon()
}
