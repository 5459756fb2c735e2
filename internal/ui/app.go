package ui

import (
	"time"

	"github.com/rivo/tview"

	"github.com/cnharrison/har-formatter/internal/filter"
	"github.com/cnharrison/har-formatter/internal/har"
	"github.com/cnharrison/har-formatter/internal/render"
)

const (
	statusMessageDurationSec = 5

	// Page names
	inputPage  = "input"
	outputPage = "output"

	// Layout constants
	searchInputWidthRatio = 2
	searchBoxHeight       = 3
	detailWidthRatio      = 2
	maxURLDisplayLength   = 80
	urlTruncateOffset     = 3

	// HTTP status code thresholds
	statusCodeSuccess     = 200
	statusCodeRedirect    = 300
	statusCodeClientError = 400

	inputPlaceholder = "Paste your HAR content here..."
)

// tabNames are the detail tabs, cycled with Tab/Shift-Tab
var tabNames = []string{"Request", "Response", "Content", "Raw"}

// Options configures the viewer
type Options struct {
	// Filename is shown in the status bar
	Filename string
	// Input pre-fills the paste area and is formatted on start
	Input string
	// Render controls how bodies are laid out
	Render render.Options
}

// Application is the interactive HAR viewer
type Application struct {
	formatter   *har.Formatter
	opts        Options
	app         *tview.Application
	filterState *filter.State

	// Formatted data
	summaries       []har.EntrySummary
	filteredEntries []int

	// UI state
	currentTab int

	// Confirmation/status messages
	confirmationMessage string
	confirmationEnd     time.Time

	// Input page components
	inputArea    *tview.TextArea
	formatButton *tview.Button
	errorView    *tview.TextView
	helpBar      *tview.TextView

	// Output page components
	requests     *tview.List
	searchInput  *tview.InputField
	summaryView  *tview.TextView
	tabBar       *tview.TextView
	tabs         *tview.Pages
	requestView  *tview.TextView
	responseView *tview.TextView
	contentView  *tview.TextView
	rawView      *tview.TextView
	bottomBar    *tview.TextView

	pages *tview.Pages
}

// NewApplication creates a viewer that formats with f
func NewApplication(f *har.Formatter, opts Options) *Application {
	return &Application{
		formatter:       f,
		opts:            opts,
		app:             tview.NewApplication(),
		filterState:     filter.NewState(),
		filteredEntries: make([]int, 0),
	}
}

// Run starts the TUI application
func (app *Application) Run() error {
	app.init()
	return app.app.SetRoot(app.pages, true).Run()
}

// init builds the UI and formats any pre-filled input
func (app *Application) init() {
	app.setupUI()
	app.setupEventHandling()

	if app.opts.Input != "" {
		app.inputArea.SetText(app.opts.Input, false)
		app.formatInput()
	}
	app.updateTabBar()
	app.updateBottomBar()
}

// showStatusMessage shows a temporary status message
func (app *Application) showStatusMessage(msg string) {
	app.confirmationMessage = msg
	app.confirmationEnd = time.Now().Add(statusMessageDurationSec * time.Second)
	app.updateBottomBar()
}
