package ui

import (
	"github.com/rivo/tview"
)

// createLayout builds both pages
func (app *Application) createLayout() {
	buttonRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(app.formatButton, 14, 0, false).
		AddItem(nil, 2, 0, false).
		AddItem(app.errorView, 0, 1, false)

	inputLayout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(app.inputArea, 0, 1, true).
		AddItem(buttonRow, 1, 0, false).
		AddItem(app.helpBar, 1, 0, false)

	// Create centered search container
	searchContainer := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(nil, 0, 1, false).
		AddItem(app.searchInput, 0, searchInputWidthRatio, false).
		AddItem(nil, 0, 1, false)

	listPanel := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(searchContainer, searchBoxHeight, 0, false).
		AddItem(app.requests, 0, 1, true)

	detailPanel := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(app.summaryView, 6, 0, false).
		AddItem(app.tabBar, 1, 0, false).
		AddItem(app.tabs, 0, 1, false)

	body := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(listPanel, 0, 1, true).
		AddItem(detailPanel, 0, detailWidthRatio, false)

	outputLayout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(app.bottomBar, 1, 0, false)

	app.pages = tview.NewPages().
		AddPage(inputPage, inputLayout, true, true).
		AddPage(outputPage, outputLayout, true, false)
}
