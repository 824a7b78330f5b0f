// ABOUTME: Calibration table picker for the calculator TUI
// ABOUTME: Offers recent files, the built-in table, a path prompt, and sample tables

package filepicker

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
	"github.com/MaxParisotto/amr-ln2-generator/backend/services"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/samples"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/styles"
)

type state int

const (
	stateList state = iota
	stateInput
	stateSamples
)

type itemKind int

const (
	itemRecent itemKind = iota
	itemBuiltin
	itemEnterPath
	itemSamples
)

type item struct {
	kind  itemKind
	label string
	path  string
}

// TableSelectedMsg is sent when a calibration table parsed and validated.
// Path is services.BuiltinCalibrationSource for the compiled-in table.
type TableSelectedMsg struct {
	Path  string
	Table models.PerformanceTable
}

// CancelledMsg is sent when the user backs out of the picker
type CancelledMsg struct{}

// FilePicker selects the calibration table the calculator sizes against
type FilePicker struct {
	items     []item
	samples   []samples.SampleFile
	cursor    int
	state     state
	textInput textinput.Model
	err       string
	width     int
	height    int
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(styles.Primary)
	selectedStyle = lipgloss.NewStyle().Foreground(styles.Accent).Bold(true)
	normalStyle   = lipgloss.NewStyle().Foreground(styles.Text)
	errorStyle    = lipgloss.NewStyle().Foreground(styles.Danger)
	helpStyle     = lipgloss.NewStyle().Foreground(styles.Muted)
)

// New creates a picker over the given recent files and sample tables
func New(recentFiles []string, sampleFiles []samples.SampleFile) *FilePicker {
	ti := textinput.New()
	ti.Placeholder = "/path/to/calibration.yaml"
	ti.CharLimit = 256
	ti.Width = 60

	items := make([]item, 0, len(recentFiles)+3)
	for _, path := range recentFiles {
		items = append(items, item{kind: itemRecent, label: path, path: path})
	}
	items = append(items,
		item{kind: itemBuiltin, label: "Built-in table (" + models.DefaultPerformanceTable().Model + ")"},
		item{kind: itemEnterPath, label: "Enter path..."},
	)
	if len(sampleFiles) > 0 {
		items = append(items, item{kind: itemSamples, label: "Sample tables..."})
	}

	return &FilePicker{
		items:     items,
		samples:   sampleFiles,
		state:     stateList,
		textInput: ti,
	}
}

// Init implements tea.Model
func (fp *FilePicker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (fp *FilePicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		fp.width = msg.Width
		fp.height = msg.Height
		return fp, nil

	case tea.KeyMsg:
		fp.err = ""

		switch fp.state {
		case stateList:
			return fp.updateList(msg)
		case stateInput:
			return fp.updateInput(msg)
		case stateSamples:
			return fp.updateSamples(msg)
		}
	}

	return fp, nil
}

// moveCursor steps within [0, n)
func (fp *FilePicker) moveCursor(key string, n int) {
	switch key {
	case "up", "k":
		fp.cursor = max(0, fp.cursor-1)
	case "down", "j":
		fp.cursor = min(n-1, fp.cursor+1)
	}
}

func (fp *FilePicker) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "down", "j":
		fp.moveCursor(msg.String(), len(fp.items))
	case "enter":
		return fp.selectItem(fp.items[fp.cursor])
	case "esc", "b":
		return fp, func() tea.Msg { return CancelledMsg{} }
	}
	return fp, nil
}

func (fp *FilePicker) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		fp.state = stateList
		fp.textInput.SetValue("")
		fp.textInput.Blur()
		return fp, nil
	case "enter":
		path := strings.TrimSpace(fp.textInput.Value())
		if path == "" {
			fp.err = "Please enter a file path"
			return fp, nil
		}
		return fp.loadTable(path)
	}

	var cmd tea.Cmd
	fp.textInput, cmd = fp.textInput.Update(msg)
	return fp, cmd
}

func (fp *FilePicker) updateSamples(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	back := len(fp.samples) // index of [back]

	switch msg.String() {
	case "up", "k", "down", "j":
		fp.moveCursor(msg.String(), back+1)
	case "enter":
		if fp.cursor == back {
			fp.toList()
			return fp, nil
		}
		return fp.loadTable(fp.samples[fp.cursor].Path)
	case "esc", "b":
		fp.toList()
	}
	return fp, nil
}

func (fp *FilePicker) toList() {
	fp.state = stateList
	fp.cursor = 0
}

func (fp *FilePicker) selectItem(it item) (tea.Model, tea.Cmd) {
	switch it.kind {
	case itemRecent:
		return fp.loadTable(it.path)
	case itemBuiltin:
		return fp, func() tea.Msg {
			return TableSelectedMsg{Path: services.BuiltinCalibrationSource, Table: models.DefaultPerformanceTable()}
		}
	case itemEnterPath:
		fp.state = stateInput
		fp.textInput.Focus()
		return fp, textinput.Blink
	case itemSamples:
		fp.state = stateSamples
		fp.cursor = 0
	}
	return fp, nil
}

// loadTable reads and validates a calibration file. Failures stay in the
// picker as an inline error.
func (fp *FilePicker) loadTable(path string) (tea.Model, tea.Cmd) {
	expanded := expandPath(path)

	data, err := os.ReadFile(expanded)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			fp.err = "File not found: " + path
		case os.IsPermission(err):
			fp.err = "Cannot read file: permission denied"
		default:
			fp.err = "Error reading file: " + err.Error()
		}
		return fp, nil
	}

	table, err := services.ParseCalibration(data)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCalibrationData) {
			fp.err = "Invalid calibration table: " + err.Error()
		} else {
			fp.err = err.Error()
		}
		return fp, nil
	}

	return fp, func() tea.Msg {
		return TableSelectedMsg{Path: expanded, Table: table}
	}
}

// expandPath expands a leading ~ to the home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return home + path[1:]
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	}
	return path
}

// SetError sets an error message to display
func (fp *FilePicker) SetError(msg string) {
	fp.err = msg
}

// View implements tea.Model
func (fp *FilePicker) View() string {
	var b strings.Builder

	switch fp.state {
	case stateInput:
		b.WriteString(titleStyle.Render("Enter calibration file path"))
		b.WriteString("\n\n")
		b.WriteString(fp.textInput.View())
		b.WriteString("\n")
	case stateSamples:
		b.WriteString(titleStyle.Render("Select sample table"))
		b.WriteString("\n\n")
		for i, s := range fp.samples {
			b.WriteString(fp.renderRow(s.Name, i == fp.cursor))
		}
		b.WriteString(fp.renderRow("[back]", fp.cursor == len(fp.samples)))
	default:
		b.WriteString(titleStyle.Render("Select calibration table"))
		b.WriteString("\n\n")
		for i, it := range fp.items {
			if i == 0 && it.kind == itemRecent {
				b.WriteString(helpStyle.Render("Recent tables:") + "\n")
			}
			if it.kind == itemBuiltin && i > 0 {
				b.WriteString(helpStyle.Render(strings.Repeat("─", fp.dividerWidth())) + "\n")
			}
			b.WriteString(fp.renderRow(fp.fitPath(it), i == fp.cursor))
		}
	}

	if fp.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + fp.err))
	}

	return b.String()
}

func (fp *FilePicker) renderRow(label string, selected bool) string {
	if selected {
		return "> " + selectedStyle.Render(label) + "\n"
	}
	return "  " + normalStyle.Render(label) + "\n"
}

// fitPath shortens long recent paths from the left to fit the width
func (fp *FilePicker) fitPath(it item) string {
	label := it.label
	limit := fp.width - 10
	if it.kind != itemRecent || fp.width <= 20 || len(label) <= limit {
		return label
	}
	return "..." + label[len(label)-(limit-3):]
}

func (fp *FilePicker) dividerWidth() int {
	if fp.width <= 4 {
		return 40
	}
	return min(40, fp.width-4)
}
