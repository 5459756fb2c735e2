package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/tview"

	"github.com/cnharrison/har-formatter/internal/har"
)

// updateRequestsList rebuilds the entry list from the current filter
func (app *Application) updateRequestsList() {
	app.requests.Clear()
	app.filteredEntries = app.filterState.Apply(app.summaries)

	for _, idx := range app.filteredEntries {
		app.requests.AddItem(entryLabel(app.summaries[idx]), "", 0, nil)
	}

	if len(app.filteredEntries) == 0 {
		app.clearDetails("[dim]No entries match the current filter[white]")
		return
	}

	currentItem := app.requests.GetCurrentItem()
	if currentItem >= len(app.filteredEntries) {
		app.requests.SetCurrentItem(0)
		currentItem = 0
	}
	app.updateTabContent(currentItem)
}

// updateTabContent fills the detail views for the selected list row
func (app *Application) updateTabContent(selectedIndex int) {
	s, ok := app.selected(selectedIndex)
	if !ok {
		return
	}

	app.summaryView.SetText(overviewText(s))
	app.requestView.SetText(requestText(s))
	app.responseView.SetText(responseText(s))
	app.contentView.SetText(contentText(s, app.opts.Render))
	app.rawView.SetText(rawText(s))

	for _, view := range app.tabViews() {
		view.ScrollToBeginning()
	}
}

func (app *Application) clearDetails(message string) {
	app.summaryView.SetText(message)
	for _, view := range app.tabViews() {
		view.Clear()
	}
}

// selected maps a list row to its summary
func (app *Application) selected(row int) (har.EntrySummary, bool) {
	if row < 0 || row >= len(app.filteredEntries) {
		return har.EntrySummary{}, false
	}
	idx := app.filteredEntries[row]
	if idx >= len(app.summaries) {
		return har.EntrySummary{}, false
	}
	return app.summaries[idx], true
}

// updateTabBar highlights the active detail tab
func (app *Application) updateTabBar() {
	var tabText strings.Builder
	for i, name := range tabNames {
		if i == app.currentTab {
			tabText.WriteString(fmt.Sprintf("[black:yellow] %s [white:-]", name))
		} else {
			tabText.WriteString(fmt.Sprintf("[dim] %s [white]", name))
		}
		if i < len(tabNames)-1 {
			tabText.WriteString(" ")
		}
	}
	app.tabBar.SetText(tabText.String())
}

// updateBottomBar shows counts, filters and any pending status message
func (app *Application) updateBottomBar() {
	if app.confirmationMessage != "" && time.Now().Before(app.confirmationEnd) {
		app.bottomBar.SetText(fmt.Sprintf("[yellow]%s[white]", tview.Escape(app.confirmationMessage)))
		return
	}
	app.confirmationMessage = ""

	var parts []string
	if app.opts.Filename != "" {
		parts = append(parts, fmt.Sprintf("[cyan]%s[white]", tview.Escape(app.opts.Filename)))
	}
	parts = append(parts, fmt.Sprintf("%d/%d entries", len(app.filteredEntries), len(app.summaries)))
	if app.filterState.ShowErrorsOnly {
		parts = append(parts, "[red]errors only[white]")
	}
	parts = append(parts, "[dim]/ search  e errors  Tab tabs  y copy  c curl  m report  Esc input  q quit[white]")
	app.bottomBar.SetText(strings.Join(parts, "  "))
}
