package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"swiftcheck/internal/compare"
	"swiftcheck/internal/domain"
	"swiftcheck/internal/storage"
)

// FailureViewer displays failed cases in an interactive TUI
type FailureViewer struct {
	storage storage.Storage
}

// NewFailureViewer creates a new FailureViewer. Resolved flags are
// persisted through st.
func NewFailureViewer(st storage.Storage) *FailureViewer {
	return &FailureViewer{storage: st}
}

// View displays failed cases in an interactive TUI
func (fv *FailureViewer) View(results *domain.RunOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No case failures found!")
		return nil
	}

	resolved := make(map[int]bool)
	for i, failure := range results.Details {
		if failure.Resolved {
			resolved[i] = true
		}
	}

	saveResolvedStatus := func() error {
		for i := range results.Details {
			results.Details[i].Resolved = resolved[i]
		}
		return fv.storage.SaveOutput(results)
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	getListItemText := func(index int) string {
		label := tview.Escape(results.Details[index].Label)
		if resolved[index] {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, label)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", index+1, label)
	}

	for i := range results.Details {
		list.AddItem(getListItemText(i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		unresolved := 0
		for i := range results.Details {
			if !resolved[i] {
				unresolved++
			}
		}
		headerView.SetText(fmt.Sprintf(" Case Failures (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] mark resolved, → details, ← back, Ctrl+C exit ",
			len(results.Details), unresolved))
	}

	var saveErr error
	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(results.Details) {
			return
		}
		failure := results.Details[index]
		statsView.SetText(formatFailureStats(failure, results.Meta))
		text := formatFailureDetails(failure)
		if saveErr != nil {
			text += fmt.Sprintf("\n[red]Could not save resolved status: %s[white]\n", tview.Escape(saveErr.Error()))
		}
		detailsView.SetText(text).ScrollToBeginning()
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(results.Details) {
					resolved[index] = !resolved[index]
					list.SetItemText(index, getListItemText(index), "")
					saveErr = saveResolvedStatus()
					updateHeader()
					updateDetails()
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// formatFailureDetails renders a failure using tview color tags. Case text is
// escaped so brackets in translations are shown literally.
func formatFailureDetails(failure domain.CaseFailure) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ %s[white] [gray](%s)[white]\n\n", tview.Escape(failure.Label), kindText(failure.Kind))

	fmt.Fprintf(&b, "[yellow]Input:[white]\n%s\n\n", tview.Escape(failure.Input))
	fmt.Fprintf(&b, "[yellow]Expected:[white]\n%s\n", tview.Escape(failure.Expected))
	fmt.Fprintf(&b, "[gray]%s[white]\n\n", tview.Escape(fmt.Sprintf("%q", failure.Expected)))

	if failure.Kind == domain.KindDriverError {
		fmt.Fprintf(&b, "[yellow]Error:[white]\n%s\n", tview.Escape(failure.Error))
		return b.String()
	}

	if !failure.Found {
		b.WriteString("[yellow]Actual:[white]\n[red]<no translation found on page>[white]\n")
		return b.String()
	}

	fmt.Fprintf(&b, "[yellow]Actual:[white]\n%s\n", tview.Escape(failure.Candidate))
	fmt.Fprintf(&b, "[gray]%s[white]\n\n", tview.Escape(fmt.Sprintf("%q", failure.Candidate)))

	if hint := compare.Hint(failure.Expected, failure.Candidate); hint != "" {
		fmt.Fprintf(&b, "[magenta]Hint:[white] %s\n\n", tview.Escape(hint))
	}
	if diff := compare.Diff(failure.Expected, failure.Candidate); diff != "" {
		fmt.Fprintf(&b, "[yellow]Diff (-expected +actual):[white]\n%s\n", tview.Escape(indent(strings.TrimRight(diff, "\n"), "  ")))
	}
	return b.String()
}

// formatFailureStats formats the header line above the details pane
func formatFailureStats(failure domain.CaseFailure, meta domain.RunMeta) string {
	status := "[red]open[white]"
	if failure.Resolved {
		status = "[green]resolved[white]"
	}
	return fmt.Sprintf("[cyan]case:[white] [yellow]%s[white] | [cyan]status:[white] %s\n[cyan]endpoint:[white] %s | [cyan]settle:[white] %s\n",
		tview.Escape(failure.Label), status, tview.Escape(meta.Endpoint), meta.SettleStrategy)
}
