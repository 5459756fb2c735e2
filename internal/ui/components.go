package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// setupUI creates and configures all UI components
func (app *Application) setupUI() {
	// Configure tview for transparent background
	tview.Styles.PrimitiveBackgroundColor = tcell.ColorDefault
	tview.Styles.ContrastBackgroundColor = tcell.ColorDefault

	app.createComponents()
	app.styleComponents()
	app.createLayout()
}

// createComponents initializes all UI components
func (app *Application) createComponents() {
	// Input page
	app.inputArea = tview.NewTextArea().SetPlaceholder(inputPlaceholder)
	app.formatButton = tview.NewButton("Format HAR").SetSelectedFunc(func() {
		app.formatInput()
	})
	app.errorView = tview.NewTextView().SetDynamicColors(true)
	app.helpBar = tview.NewTextView().
		SetDynamicColors(true).
		SetText("[dim]Ctrl-F format  Tab switch focus  Ctrl-C quit[white]")

	// Search input
	app.searchInput = tview.NewInputField()
	app.searchInput.SetLabel("")
	app.searchInput.SetFieldWidth(0)

	// Requests list
	app.requests = tview.NewList().ShowSecondaryText(false)

	// Detail views
	app.summaryView = tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	app.requestView = tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	app.responseView = tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	app.contentView = tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	app.rawView = tview.NewTextView().SetDynamicColors(true).SetWrap(true)

	app.tabs = tview.NewPages()
	views := app.tabViews()
	for i, name := range tabNames {
		app.tabs.AddPage(name, views[i], true, i == 0)
	}

	app.tabBar = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)
	app.bottomBar = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignLeft)
}

// styleComponents applies styling to all components
func (app *Application) styleComponents() {
	app.inputArea.SetBorder(true).SetTitle(" HAR File Formatter ").SetTitleAlign(tview.AlignCenter).SetBorderColor(tcell.ColorTeal)

	app.searchInput.SetBorder(true)
	app.searchInput.SetTitle(" Search ")
	app.searchInput.SetTitleAlign(tview.AlignCenter)
	app.searchInput.SetBorderColor(tcell.ColorGreen)

	app.requests.SetBorder(true).SetTitle(" Entries ").SetTitleAlign(tview.AlignCenter).SetBorderColor(tcell.ColorTeal)
	app.requests.SetSelectedBackgroundColor(tcell.ColorDarkBlue)
	app.requests.SetSelectedTextColor(tcell.ColorYellow)
	app.requests.SetMainTextColor(tcell.ColorWhite)

	app.summaryView.SetBorder(true).SetTitle(" Entry ").SetBorderColor(tcell.ColorDarkCyan)
	app.requestView.SetBorder(true).SetTitle(" Request ").SetBorderColor(tcell.ColorDarkCyan)
	app.responseView.SetBorder(true).SetTitle(" Response ").SetBorderColor(tcell.ColorDarkGreen)
	app.contentView.SetBorder(true).SetTitle(" Response Content ").SetBorderColor(tcell.ColorDarkBlue)
	app.rawView.SetBorder(true).SetTitle(" Raw ").SetBorderColor(tcell.ColorYellow)
}

func (app *Application) tabViews() []*tview.TextView {
	return []*tview.TextView{app.requestView, app.responseView, app.contentView, app.rawView}
}
