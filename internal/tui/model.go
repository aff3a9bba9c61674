// Package tui renders the plate grids and routes pointer and keyboard
// gestures into the application session.
package tui

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"

	"github.com/chengju279/viability-calculator/internal/app"
	"github.com/chengju279/viability-calculator/internal/domain"
	"github.com/chengju279/viability-calculator/internal/report"
)

// Clipboard represents clipboard data used by this package.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// systemClipboard bridges to the OS clipboard.
type systemClipboard struct{}

// ReadAll returns the OS clipboard text.
func (systemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

// WriteAll replaces the OS clipboard text.
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Grid geometry in terminal cells. Each well is a fixed-width block so
// mouse hit testing stays a pair of integer divisions.
const (
	cellWidth     = 7
	cellStride    = cellWidth + 1
	rowLabelWidth = 4

	inputHeaderRow  = 2
	inputTopRow     = 3
	resultHeaderRow = inputTopRow + domain.GridRows + 1
	resultTopRow    = resultHeaderRow + 1
)

// snapshotFileName stores a package-level helper value.
const snapshotFileName = "plate.tsv"

// helpMarkdown stores the full-help overlay content.
const helpMarkdown = `# plate

Enter raw plate-reader values in the top grid, tag wells, and read
normalized viability off the bottom grid.

## Tagging

* **b / n / t** toggle blank, negative-control, and test tagging mode
* drag or click on the top grid to paint or un-paint wells
* **c** clears every tag, keeping the entered values

## Editing

* click a well, or move with the arrow keys, then **enter** to edit
* **backspace** deletes the values under the current selection
* **y** copies the selection as tab-separated text, **p** pastes at the
  active well

## Merge groups

* **m** starts a merge session on the bottom grid
* drag to create a numbered group; hold **shift** to grow the last group
* leaving merge mode discards all groups

## Files

* **s** saves the plate, **o** re-opens it, **e** exports a report and chart
`

// Model represents model data used by this package.
type Model struct {
	session *app.Session

	ready  bool
	width  int
	height int
	err    error

	status string

	help help.Model
	keys keyMap

	valueInput textinput.Model
	editing    bool

	mouseDown bool
	dragGrid  app.Grid
	hoverCell *gridCell

	showHelpOverlay bool
	mdRenderer      helpRenderer

	showHelpBar   bool
	showStatsLine bool

	clip        Clipboard
	dataDir     string
	reportsDir  string
	chartWidth  int
	chartHeight int
	now         func() time.Time
}

// gridCell pairs a grid with one of its coordinates.
type gridCell struct {
	grid  app.Grid
	coord domain.Coord
}

// clipboardWrittenMsg carries message data through update handling.
type clipboardWrittenMsg struct {
	err error
}

// clipboardReadMsg carries message data through update handling.
type clipboardReadMsg struct {
	text string
	err  error
}

// snapshotSavedMsg carries message data through update handling.
type snapshotSavedMsg struct {
	path string
	err  error
}

// snapshotLoadedMsg carries message data through update handling.
type snapshotLoadedMsg struct {
	store domain.Store
	err   error
}

// reportExportedMsg carries message data through update handling.
type reportExportedMsg struct {
	tablePath string
	chartPath string
	err       error
}

// NewModel constructs a new value for this package.
func NewModel(opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	valueInput := textinput.New()
	valueInput.Prompt = ""
	valueInput.Placeholder = "value"
	valueInput.CharLimit = 32
	m := Model{
		session:       app.NewSession(),
		status:        "ready",
		help:          h,
		keys:          newKeyMap(),
		valueInput:    valueInput,
		showHelpBar:   true,
		showStatsLine: true,
		clip:          systemClipboard{},
		dataDir:       ".",
		reportsDir:    ".",
		chartWidth:    1024,
		chartHeight:   512,
		now:           time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Session exposes the underlying application session.
func (m Model) Session() *app.Session {
	return m.session
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clipboardWrittenMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "copied"
		return m, nil

	case clipboardReadMsg:
		if msg.err != nil {
			m.status = "paste failed: " + msg.err.Error()
			return m, nil
		}
		if m.session.Paste(msg.text) {
			m.status = "pasted"
		} else {
			m.status = "nothing to paste into"
		}
		return m, nil

	case snapshotSavedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "saved " + msg.path
		return m, nil

	case snapshotLoadedMsg:
		if msg.err != nil {
			m.status = "open failed: " + msg.err.Error()
			return m, nil
		}
		m.session.ReplaceStore(msg.store)
		m.editing = false
		m.status = "plate loaded"
		return m, nil

	case reportExportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "exported " + filepath.Base(msg.tablePath) + " + " + filepath.Base(msg.chartPath)
		return m, nil

	case tea.KeyPressMsg:
		if m.editing {
			return m.handleEditKey(msg)
		}
		return m.handleNormalKey(msg)

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)

	case tea.MouseMotionMsg:
		return m.handleMouseMotion(msg)

	case tea.MouseReleaseMsg:
		return m.handleMouseRelease(msg)

	default:
		return m, nil
	}
}

// handleEditKey handles keys while the value editor owns input.
func (m Model) handleEditKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.editCell):
		m.session.EditActiveCell(m.valueInput.Value())
		m.editing = false
		return m, nil
	case key.Matches(msg, m.keys.cancel):
		m.editing = false
		return m, nil
	}
	var cmd tea.Cmd
	m.valueInput, cmd = m.valueInput.Update(msg)
	return m, cmd
}

// handleNormalKey handles keys outside text editing.
func (m Model) handleNormalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.showHelpOverlay {
		switch {
		case key.Matches(msg, m.keys.toggleHelp), key.Matches(msg, m.keys.cancel):
			m.showHelpOverlay = false
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.toggleHelp):
		m.showHelpOverlay = true
		return m, nil

	case key.Matches(msg, m.keys.cancel):
		if m.session.Mode() != app.ModeNone {
			m.session.SetMode(app.ModeNone)
			m.status = "ready"
		} else {
			m.session.EndEdit()
		}
		return m, nil

	case key.Matches(msg, m.keys.blankMode):
		m.setMode(app.ModeBlank)
		return m, nil

	case key.Matches(msg, m.keys.negativeMode):
		m.setMode(app.ModeNegative)
		return m, nil

	case key.Matches(msg, m.keys.testMode):
		m.setMode(app.ModeTest)
		return m, nil

	case key.Matches(msg, m.keys.mergeMode):
		m.setMode(app.ModeMerge)
		return m, nil

	case key.Matches(msg, m.keys.clearColors):
		m.session.ClearColors()
		m.status = "tags cleared"
		return m, nil

	case key.Matches(msg, m.keys.deleteValues):
		m.session.DeleteSelection()
		return m, nil

	case key.Matches(msg, m.keys.copyCells):
		text, ok := m.session.CopyText()
		if !ok {
			m.status = "nothing selected"
			return m, nil
		}
		return m, m.writeClipboard(text)

	case key.Matches(msg, m.keys.pasteCells):
		return m, m.readClipboard()

	case key.Matches(msg, m.keys.saveSnapshot):
		return m, m.saveSnapshot()

	case key.Matches(msg, m.keys.loadSnapshot):
		return m, m.loadSnapshot()

	case key.Matches(msg, m.keys.exportReport):
		return m, m.exportReport()

	case key.Matches(msg, m.keys.editCell):
		c, ok := m.session.ActiveCell()
		if !ok {
			return m, nil
		}
		m.editing = true
		m.valueInput.SetValue(m.session.Store().Get(c).Value)
		m.valueInput.CursorEnd()
		return m, m.valueInput.Focus()

	case key.Matches(msg, m.keys.moveLeft):
		m.session.MoveActive(0, -1)
		return m, nil
	case key.Matches(msg, m.keys.moveRight):
		m.session.MoveActive(0, 1)
		return m, nil
	case key.Matches(msg, m.keys.moveUp):
		m.session.MoveActive(-1, 0)
		return m, nil
	case key.Matches(msg, m.keys.moveDown):
		m.session.MoveActive(1, 0)
		return m, nil
	}
	return m, nil
}

// setMode switches the tagging/merge mode and refreshes the status line.
func (m *Model) setMode(mode app.Mode) {
	m.editing = false
	m.session.SetMode(mode)
	if current := m.session.Mode(); current == app.ModeNone {
		m.status = "ready"
	} else {
		m.status = current.String() + " mode"
	}
}

// handleMouseClick handles mouse click.
func (m Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if m.showHelpOverlay {
		return m, nil
	}
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return m, nil
	}
	if m.editing {
		m.session.EditActiveCell(m.valueInput.Value())
		m.editing = false
	}
	cell, ok := m.hitTest(mouse.X, mouse.Y)
	if !ok {
		return m, nil
	}
	shift := mouse.Mod&tea.ModShift != 0
	m.session.PointerDown(cell.grid, cell.coord, shift)
	m.mouseDown = true
	m.dragGrid = cell.grid
	m.hoverCell = &cell
	return m, nil
}

// handleMouseMotion handles mouse motion.
func (m Model) handleMouseMotion(msg tea.MouseMotionMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	cell, ok := m.hitTest(mouse.X, mouse.Y)
	if ok {
		m.hoverCell = &cell
	} else {
		m.hoverCell = nil
	}
	if !m.mouseDown {
		return m, nil
	}
	shift := mouse.Mod&tea.ModShift != 0
	if !ok || cell.grid != m.dragGrid {
		m.session.PointerLeave(m.dragGrid, shift)
		m.mouseDown = false
		return m, nil
	}
	m.session.PointerMove(cell.grid, cell.coord)
	return m, nil
}

// handleMouseRelease handles mouse release.
func (m Model) handleMouseRelease(msg tea.MouseReleaseMsg) (tea.Model, tea.Cmd) {
	if !m.mouseDown {
		return m, nil
	}
	mouse := msg.Mouse()
	shift := mouse.Mod&tea.ModShift != 0
	m.session.PointerUp(m.dragGrid, shift)
	m.mouseDown = false
	if m.dragGrid == app.GridResult && m.session.Mode() == app.ModeMerge {
		m.status = fmt.Sprintf("%d merge groups", len(m.session.MergeLabels()))
	}
	return m, nil
}

// hitTest maps a terminal coordinate onto a grid well.
func (m Model) hitTest(x, y int) (gridCell, bool) {
	if x < rowLabelWidth {
		return gridCell{}, false
	}
	col := (x - rowLabelWidth) / cellStride
	if col < 0 || col >= domain.GridCols {
		return gridCell{}, false
	}
	if (x-rowLabelWidth)%cellStride >= cellWidth {
		return gridCell{}, false
	}

	switch {
	case y >= inputTopRow && y < inputTopRow+domain.GridRows:
		return gridCell{grid: app.GridInput, coord: domain.Coord{Row: y - inputTopRow, Col: col}}, true
	case y >= resultTopRow && y < resultTopRow+domain.GridRows:
		return gridCell{grid: app.GridResult, coord: domain.Coord{Row: y - resultTopRow, Col: col}}, true
	default:
		return gridCell{}, false
	}
}

// writeClipboard returns a command that pushes text to the clipboard.
func (m Model) writeClipboard(text string) tea.Cmd {
	clip := m.clip
	return func() tea.Msg {
		return clipboardWrittenMsg{err: clip.WriteAll(text)}
	}
}

// readClipboard returns a command that pulls clipboard text for pasting.
func (m Model) readClipboard() tea.Cmd {
	clip := m.clip
	return func() tea.Msg {
		text, err := clip.ReadAll()
		return clipboardReadMsg{text: text, err: err}
	}
}

// saveSnapshot returns a command writing the plate to the data dir.
func (m Model) saveSnapshot() tea.Cmd {
	data := app.EncodeSnapshot(m.session.Store())
	dir := m.dataDir
	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return snapshotSavedMsg{err: err}
		}
		path := filepath.Join(dir, snapshotFileName)
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			return snapshotSavedMsg{err: err}
		}
		return snapshotSavedMsg{path: path}
	}
}

// loadSnapshot returns a command reading the plate back from the data dir.
func (m Model) loadSnapshot() tea.Cmd {
	dir := m.dataDir
	return func() tea.Msg {
		raw, err := os.ReadFile(filepath.Join(dir, snapshotFileName))
		if err != nil {
			return snapshotLoadedMsg{err: err}
		}
		store, err := app.DecodeSnapshot(string(raw))
		if err != nil {
			return snapshotLoadedMsg{err: err}
		}
		return snapshotLoadedMsg{store: store}
	}
}

// exportReport returns a command writing the report table and chart.
func (m Model) exportReport() tea.Cmd {
	run := app.BuildReport(m.session.Store(), m.session.MergeLabels(), m.now())
	dir := m.reportsDir
	width, height := m.chartWidth, m.chartHeight
	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return reportExportedMsg{err: err}
		}
		tablePath := filepath.Join(dir, "report-"+run.RunID+".txt")
		if err := os.WriteFile(tablePath, []byte(report.RenderTable(run)), 0o644); err != nil {
			return reportExportedMsg{err: err}
		}
		chartPath := filepath.Join(dir, "report-"+run.RunID+".png")
		f, err := os.Create(chartPath)
		if err != nil {
			return reportExportedMsg{err: err}
		}
		defer f.Close()
		if err := report.RenderChart(run, report.ChartOptions{Width: width, Height: height}, f); err != nil {
			// A plate without test wells still exports the table.
			_ = os.Remove(chartPath)
			return reportExportedMsg{tablePath: tablePath, chartPath: tablePath}
		}
		return reportExportedMsg{tablePath: tablePath, chartPath: chartPath}
	}
}

// View handles view.
func (m Model) View() tea.View {
	v := tea.NewView(m.renderContent())
	v.MouseMode = tea.MouseModeCellMotion
	v.AltScreen = true
	return v
}

// renderContent assembles the full frame as plain styled text.
func (m Model) renderContent() string {
	if !m.ready {
		return "loading..."
	}

	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusStyle := lipgloss.NewStyle().Foreground(dim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("plate") + "  " + statusStyle.Render(m.modeBadge()))
	b.WriteString("\n\n")
	b.WriteString(m.renderGrid(app.GridInput))
	b.WriteString("\n\n")
	b.WriteString(m.renderGrid(app.GridResult))
	b.WriteString("\n")

	if m.showStatsLine {
		b.WriteString(m.renderStatsLine(muted))
		b.WriteString("\n")
	}
	b.WriteString(m.renderEditLine(muted))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))

	fullContent := b.String()
	if m.showHelpBar {
		helpBubble := m.help
		helpBubble.ShowAll = false
		helpBubble.SetWidth(max(0, m.width-2))
		helpLine := lipgloss.NewStyle().
			Foreground(muted).
			BorderTop(true).
			BorderForeground(dim).
			Padding(0, 1).
			Width(max(0, m.width)).
			Render(helpBubble.View(m.keys))
		contentHeight := lipgloss.Height(fullContent)
		if m.height > 0 {
			helpHeight := lipgloss.Height(helpLine)
			contentHeight = max(0, m.height-helpHeight)
			fullContent = fitLines(fullContent, contentHeight)
		}
		fullContent = fullContent + "\n" + helpLine
	}

	if m.showHelpOverlay {
		overlayWidth := max(40, min(m.width-4, 76))
		overlay := m.mdRenderer.render(helpMarkdown, overlayWidth)
		fullContent = overlay + "\n\n" + statusStyle.Render("press ? or esc to close")
	}

	return fullContent
}

// modeBadge describes the current interaction mode for the title line.
func (m Model) modeBadge() string {
	if mode := m.session.Mode(); mode != app.ModeNone {
		return "[" + mode.String() + "]"
	}
	return ""
}

// renderGrid renders one grid with its row and column labels.
func (m Model) renderGrid(grid app.Grid) string {
	var b strings.Builder

	b.WriteString(strings.Repeat(" ", rowLabelWidth))
	for col := 0; col < domain.GridCols; col++ {
		b.WriteString(padCell(fmt.Sprintf("%d", col+1)))
		if col < domain.GridCols-1 {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")

	for row := 0; row < domain.GridRows; row++ {
		label := domain.ColumnLabel(row)
		b.WriteString(label + strings.Repeat(" ", max(1, rowLabelWidth-len(label))))
		for col := 0; col < domain.GridCols; col++ {
			c := domain.Coord{Row: row, Col: col}
			b.WriteString(m.renderCell(grid, c))
			if col < domain.GridCols-1 {
				b.WriteString(" ")
			}
		}
		if row < domain.GridRows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderCell renders one well with its state-dependent style.
func (m Model) renderCell(grid app.Grid, c domain.Coord) string {
	content := m.cellContent(grid, c)
	style := m.cellStyle(grid, c)
	return style.Render(padCell(content))
}

// cellContent resolves the text inside one well.
func (m Model) cellContent(grid app.Grid, c domain.Coord) string {
	if grid == app.GridInput {
		return m.session.Store().Get(c).Value
	}
	if label, ok := m.session.MergeLabelAt(c); ok && label.FirstCell == c.Key() {
		return fmt.Sprintf("#%d", label.Number)
	}
	if value, ok := m.session.NormalizedValue(c); ok {
		return value
	}
	return ""
}

// cellStyle maps the session's visual state onto a lipgloss style.
func (m Model) cellStyle(grid app.Grid, c domain.Coord) lipgloss.Style {
	style := lipgloss.NewStyle()

	if grid == app.GridResult {
		if label, ok := m.session.MergeLabelAt(c); ok {
			style = style.Background(mergePalette[(label.Number-1)%len(mergePalette)]).Foreground(lipgloss.Color("231"))
			if !label.Rigid {
				style = style.Underline(true)
			}
			if m.session.Selection(grid).Contains(c) {
				style = style.Bold(true)
			}
			return style
		}
	}

	switch m.session.VisualState(grid, c) {
	case app.StateActiveEdit:
		return style.Background(lipgloss.Color("24")).Foreground(lipgloss.Color("231")).Bold(true)
	case app.StateHover:
		return style.Background(lipgloss.Color("238")).Foreground(lipgloss.Color("252"))
	case app.StateSelectedBlank:
		return style.Background(lipgloss.Color("178")).Foreground(lipgloss.Color("16"))
	case app.StateSelectedNegative:
		return style.Background(lipgloss.Color("203")).Foreground(lipgloss.Color("16"))
	case app.StateSelectedTest:
		return style.Background(lipgloss.Color("84")).Foreground(lipgloss.Color("16"))
	case app.StateColoredBlank:
		return style.Background(lipgloss.Color("136")).Foreground(lipgloss.Color("231"))
	case app.StateColoredNegative:
		return style.Background(lipgloss.Color("160")).Foreground(lipgloss.Color("231"))
	case app.StateColoredTest:
		return style.Background(lipgloss.Color("28")).Foreground(lipgloss.Color("231"))
	default:
		if m.hoverCell != nil && m.hoverCell.grid == grid && m.hoverCell.coord == c {
			return style.Background(lipgloss.Color("236"))
		}
		return style.Foreground(lipgloss.Color("250"))
	}
}

// mergePalette stores the background colors cycled across merge groups.
var mergePalette = []color.Color{
	lipgloss.Color("57"),
	lipgloss.Color("94"),
	lipgloss.Color("30"),
	lipgloss.Color("127"),
	lipgloss.Color("64"),
	lipgloss.Color("166"),
}

// renderStatsLine renders the category averages beneath the grids.
func (m Model) renderStatsLine(muted color.Color) string {
	avg := m.session.Averages()
	line := fmt.Sprintf("blank %.2f   negative %.2f   test %.2f", avg.Blank, avg.Negative, avg.Test)
	return lipgloss.NewStyle().Foreground(muted).Render(line)
}

// renderEditLine renders the active-cell editor or a hint.
func (m Model) renderEditLine(muted color.Color) string {
	style := lipgloss.NewStyle().Foreground(muted)
	c, ok := m.session.ActiveCell()
	if !ok {
		return style.Render("")
	}
	if m.editing {
		return style.Render("edit "+c.Ref()+": ") + m.valueInput.View()
	}
	return style.Render(c.Ref() + " = " + m.session.Store().Get(c).Value)
}

// padCell pads or truncates content to the fixed well width.
func padCell(content string) string {
	runes := []rune(content)
	if len(runes) > cellWidth {
		runes = runes[:cellWidth]
		return string(runes)
	}
	pad := cellWidth - len(runes)
	left := pad / 2
	return strings.Repeat(" ", left) + string(runes) + strings.Repeat(" ", pad-left)
}

// fitLines pads or trims content to an exact line count.
func fitLines(content string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
