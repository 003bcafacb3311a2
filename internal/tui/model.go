package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/trackdown/internal/models"
	"github.com/julianstephens/trackdown/internal/query"
	"github.com/julianstephens/trackdown/internal/storage"
)

// timeframes cycled by the 't' key.
var timeframes = []query.Timeframe{
	query.AllTime(),
	query.LastDays(7),
	query.LastDays(30),
	query.LastDays(90),
}

type Model struct {
	store     storage.Provider
	keys      KeyMap
	help      help.Model
	table     table.Model
	questions []models.Question
	entries   []models.Entry
	tfIndex   int
	policy    query.ViewPolicy
	width     int
	height    int
	quitting  bool
	loadErr   error
}

func NewModel(store storage.Provider) Model {
	m := Model{
		store:  store,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		policy: query.ActiveWithHistory,
	}

	questions, _, qerr := store.LoadQuestions()
	entries, _, eerr := store.LoadEntries()
	if qerr != nil {
		m.loadErr = qerr
	} else if eerr != nil {
		m.loadErr = eerr
	}
	m.questions = questions
	m.entries = entries

	m.table = table.New(table.WithFocused(true))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true)
	m.table.SetStyles(styles)
	m.rebuild()

	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) timeframe() query.Timeframe {
	return timeframes[m.tfIndex]
}

// rebuild recomputes the table from the current timeframe and view policy.
func (m *Model) rebuild() {
	filtered := query.FilterEntries(m.entries, m.timeframe(), time.Now())
	shown := query.QuestionsForView(m.questions, filtered, m.policy)

	columns := make([]table.Column, 0, len(shown)+2)
	columns = append(columns, table.Column{Title: "Date", Width: 10})
	for _, q := range shown {
		columns = append(columns, table.Column{Title: q.Label(), Width: columnWidth(q.Label())})
	}
	columns = append(columns, table.Column{Title: "Comment", Width: 24})

	rows := make([]table.Row, 0, len(filtered))
	for _, e := range filtered {
		row := make(table.Row, 0, len(shown)+2)
		row = append(row, e.Date)
		for _, q := range shown {
			row = append(row, e.Responses[q.ID].Display())
		}
		row = append(row, e.Comment)
		rows = append(rows, row)
	}

	m.table.SetColumns(columns)
	m.table.SetRows(rows)
	m.resize()
}

func (m *Model) resize() {
	if m.height > 0 {
		h := m.height - 6
		if h < 3 {
			h = 3
		}
		m.table.SetHeight(h)
	}
	if m.width > 0 {
		m.table.SetWidth(m.width - 4)
		m.help.Width = m.width
	}
}

func columnWidth(label string) int {
	w := len(label)
	if w < 6 {
		w = 6
	}
	if w > 20 {
		w = 20
	}
	return w
}
