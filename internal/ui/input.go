package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/cnharrison/har-formatter/internal/export"
	"github.com/cnharrison/har-formatter/internal/har"
	"github.com/cnharrison/har-formatter/pkg/clipboard"
)

// handleInput handles all keyboard input for the application
func (app *Application) handleInput(event *tcell.EventKey) *tcell.EventKey {
	if name, _ := app.pages.GetFrontPage(); name == inputPage {
		return app.handleInputPage(event)
	}

	// Let the search box receive every key it needs for typing
	if app.app.GetFocus() == app.searchInput {
		return event
	}

	switch event.Key() {
	case tcell.KeyEscape:
		app.showInputPage()
		return nil
	case tcell.KeyTab:
		app.switchTab(1)
		return nil
	case tcell.KeyBacktab:
		app.switchTab(-1)
		return nil
	case tcell.KeyCtrlD:
		view := app.tabViews()[app.currentTab]
		row, _ := view.GetScrollOffset()
		view.ScrollTo(row+10, 0)
		return nil
	case tcell.KeyCtrlU:
		view := app.tabViews()[app.currentTab]
		row, _ := view.GetScrollOffset()
		view.ScrollTo(max(row-10, 0), 0)
		return nil
	}

	switch event.Rune() {
	case 'q':
		app.app.Stop()
		return nil
	case '/':
		app.app.SetFocus(app.searchInput)
		return nil
	case 'e':
		app.filterState.ToggleErrorsOnly()
		app.updateRequestsList()
		app.updateBottomBar()
		return nil
	case 'y':
		app.copySelected("Response content", func(s har.EntrySummary) string {
			return s.Response.Content.Text()
		})
		return nil
	case 'c':
		app.copySelected("curl command", export.GenerateCurlCommand)
		return nil
	case 'm':
		app.copySelected("Markdown report", export.GenerateMarkdownSummary)
		return nil
	case 'j':
		return tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
	case 'k':
		return tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
	}
	return event
}

func (app *Application) handleInputPage(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyCtrlF:
		app.formatInput()
		return nil
	case tcell.KeyTab, tcell.KeyBacktab:
		if app.app.GetFocus() == app.inputArea {
			app.app.SetFocus(app.formatButton)
		} else {
			app.app.SetFocus(app.inputArea)
		}
		return nil
	case tcell.KeyEscape:
		if len(app.summaries) > 0 {
			app.pages.SwitchToPage(outputPage)
			app.app.SetFocus(app.requests)
			return nil
		}
	}
	return event
}

// switchTab moves the active detail tab by delta, wrapping around
func (app *Application) switchTab(delta int) {
	app.currentTab = (app.currentTab + delta + len(tabNames)) % len(tabNames)
	app.tabs.SwitchToPage(tabNames[app.currentTab])
	app.updateTabBar()
}

// copySelected puts text derived from the selected entry on the clipboard
func (app *Application) copySelected(what string, text func(har.EntrySummary) string) {
	s, ok := app.selected(app.requests.GetCurrentItem())
	if !ok {
		return
	}
	if err := clipboard.CopyToClipboard(text(s)); err != nil {
		logrus.WithError(err).Warn("clipboard copy failed")
		app.showStatusMessage(fmt.Sprintf("Copy failed: %v", err))
		return
	}
	app.showStatusMessage(what + " copied to clipboard")
}
