// Package tui is an interactive browser for simulation results: a summary
// pane over a scrollable payout ledger, with tab switching between the plans
// of a plan file.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jaeho-lee/pensim/internal/calculation"
	"github.com/jaeho-lee/pensim/internal/config"
	"github.com/jaeho-lee/pensim/internal/domain"
	"github.com/jaeho-lee/pensim/internal/output"
)

// Model is the application state.
type Model struct {
	planPath string

	results []*domain.SimulationResult
	current int

	table  table.Model
	width  int
	height int

	err     error
	loading bool
}

// NewModel creates a model that will load and run planPath on Init.
func NewModel(planPath string) Model {
	return Model{
		planPath: planPath,
		loading:  true,
	}
}

// ResultsLoadedMsg carries the engine output for every plan in the file.
type ResultsLoadedMsg struct {
	Results []*domain.SimulationResult
}

// ErrorMsg carries a fatal load or simulation error.
type ErrorMsg struct {
	Err error
}

// Init kicks off plan loading (required by tea.Model).
func (m Model) Init() tea.Cmd {
	return runPlansCmd(m.planPath)
}

// runPlansCmd loads the plan file and runs the engine on every plan.
func runPlansCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		pf, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		engine := calculation.NewEngine()
		results := make([]*domain.SimulationResult, 0, len(pf.Plans))
		for i := range pf.Plans {
			result, err := engine.Run(&pf.Plans[i])
			if err != nil {
				return ErrorMsg{Err: err}
			}
			results = append(results, result)
		}
		return ResultsLoadedMsg{Results: results}
	}
}

// Update handles messages (required by tea.Model).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if len(m.results) > 0 {
			m.rebuildTable()
		}
		return m, nil

	case ResultsLoadedMsg:
		m.loading = false
		m.results = msg.Results
		m.current = 0
		m.rebuildTable()
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			if len(m.results) > 1 {
				m.current = (m.current + 1) % len(m.results)
				m.rebuildTable()
			}
			return m, nil
		case "shift+tab", "left", "h":
			if len(m.results) > 1 {
				m.current = (m.current - 1 + len(m.results)) % len(m.results)
				m.rebuildTable()
			}
			return m, nil
		}
	}

	if len(m.results) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// rebuildTable refills the ledger table for the current result.
func (m *Model) rebuildTable() {
	columns := []table.Column{
		{Title: "Year", Width: 4},
		{Title: "Age", Width: 4},
		{Title: "Gross", Width: 14},
		{Title: "After Tax", Width: 14},
		{Title: "Pension Tax", Width: 12},
		{Title: "Penalty", Width: 12},
		{Title: "Mode", Width: 14},
		{Title: "End Balance", Width: 15},
	}

	result := m.results[m.current]
	rows := make([]table.Row, 0, len(result.PayoutLedger))
	for _, r := range result.PayoutLedger {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", r.YearIndex),
			fmt.Sprintf("%d", r.Age),
			output.FormatCurrency(r.GrossWithdrawal),
			output.FormatCurrency(r.AfterTax),
			output.FormatCurrency(r.PensionTax),
			output.FormatCurrency(r.PenaltyTax),
			string(r.Mode),
			output.FormatCurrency(r.EndingBalance),
		})
	}

	height := m.height - 10
	if height < 5 {
		height = 5
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(ColorPrimary)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)
	m.table = t
}

// View renders the screen (required by tea.Model).
func (m Model) View() string {
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n\nPress q to quit.\n"
	}
	if m.loading {
		return TitleStyle.Render("pensim") + "\n\nRunning simulations...\n"
	}
	if len(m.results) == 0 {
		return "No results.\n"
	}

	result := m.results[m.current]
	title := TitleStyle.Render(fmt.Sprintf("pensim — %s (%d/%d)",
		result.Input.Name, m.current+1, len(m.results)))

	summary := SummaryBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		metric("Ending balance", output.FormatCurrency(result.EndingAccumulationBalance)),
		metric("First-year after tax", output.FormatCurrency(result.FirstYearAfterTax)),
		metric("Total after tax", output.FormatCurrency(result.TotalAfterTax)),
		metric("Lump-sum after tax", output.FormatCurrency(result.LumpSum.AfterTaxAmount)),
	))

	status := StatusBarStyle.Render("↑/↓ scroll · tab next plan · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, title, summary, m.table.View(), status)
}

func metric(label, value string) string {
	return MetricLabelStyle.Render(label+": ") + MetricValueStyle.Render(value)
}
