package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/cnharrison/har-formatter/internal/har"
)

// setupEventHandling configures all event handlers
func (app *Application) setupEventHandling() {
	// Editing the input clears a stale error
	app.inputArea.SetChangedFunc(func() {
		app.errorView.Clear()
	})

	app.searchInput.SetChangedFunc(func(text string) {
		app.filterState.SetTextFilter(text)
		app.updateRequestsList()
		app.updateBottomBar()
	})

	app.searchInput.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape || key == tcell.KeyEnter {
			app.app.SetFocus(app.requests)
		}
	})

	app.searchInput.SetFocusFunc(func() {
		app.searchInput.SetTitle(" Searching... ")
		app.searchInput.SetBorderColor(tcell.ColorYellow)
	})

	app.searchInput.SetBlurFunc(func() {
		app.searchInput.SetTitle(" Search ")
		app.searchInput.SetBorderColor(tcell.ColorGreen)
	})

	app.requests.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		app.updateTabContent(index)
	})

	app.app.SetInputCapture(app.handleInput)
}

// formatInput formats the paste area. On success the output page is shown;
// on failure the fixed error message appears under the input.
func (app *Application) formatInput() bool {
	summaries, err := app.formatter.Format(app.inputArea.GetText())
	if err != nil {
		logrus.WithError(err).Warn("could not format HAR")
		app.errorView.SetText("[red]" + har.InvalidFormatMessage + "[white]")
		return false
	}

	logrus.WithField("entries", len(summaries)).Info("formatted HAR")
	app.errorView.Clear()
	app.summaries = summaries
	app.filterState.Reset()
	app.searchInput.SetText("")
	app.currentTab = 0
	app.tabs.SwitchToPage(tabNames[0])
	app.updateTabBar()
	app.updateRequestsList()
	app.requests.SetCurrentItem(0)
	app.updateTabContent(0)
	app.updateBottomBar()

	app.pages.SwitchToPage(outputPage)
	app.app.SetFocus(app.requests)
	return true
}

// showInputPage returns to the paste area, keeping its text
func (app *Application) showInputPage() {
	app.pages.SwitchToPage(inputPage)
	app.app.SetFocus(app.inputArea)
}
