package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/danielbloch/gantry/internal/cli/formatter"
	"github.com/danielbloch/gantry/internal/contract"
	"github.com/danielbloch/gantry/internal/domain"
	"github.com/danielbloch/gantry/internal/service"
	"github.com/danielbloch/gantry/internal/timeline"
)

// gutterWidth is the left column holding the task tree, in terminal cells.
const gutterWidth = 26

// cellConfig is the terminal-scale grid: four cells per day, one line
// per row.
func cellConfig() timeline.Config {
	return timeline.Config{DayWidth: 4, RowHeight: 1, BarHeight: 1}
}

// timelineLoadedMsg signals that the project's tasks have been loaded.
type timelineLoadedMsg struct {
	tasks []domain.Task
	err   error
}

// commitResultMsg carries the outcome of a schedule commit dispatch.
type commitResultMsg struct {
	mutation contract.ScheduleMutation
	err      error
}

// timelineView renders the interactive timeline for one project and
// translates terminal mouse events into drag controller calls.
type timelineView struct {
	state     *SharedState
	projectID string
	cfg       timeline.Config

	ctrl  *timeline.Controller
	tasks []domain.Task
	frame timeline.Frame

	loading bool
	err     error
}

func newTimelineView(state *SharedState, projectID string) *timelineView {
	cfg := cellConfig()
	oracle := service.NewScheduleOracle(state.App.Permissions)
	ctrl, err := timeline.NewController(cfg, oracle)
	return &timelineView{
		state:     state,
		projectID: projectID,
		cfg:       cfg,
		ctrl:      ctrl,
		loading:   true,
		err:       err,
	}
}

func (v *timelineView) ID() ViewID { return ViewTimeline }
func (v *timelineView) Title() string {
	if v.state.ActiveProjectName != "" {
		return v.state.ActiveProjectName
	}
	return "Timeline"
}

func (v *timelineView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("mouse"), key.WithHelp("drag", "move/resize bar")),
		key.NewBinding(key.WithKeys("mouse"), key.WithHelp("gutter drag", "reorder")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *timelineView) Init() tea.Cmd {
	return v.loadTasks()
}

func (v *timelineView) loadTasks() tea.Cmd {
	app := v.state.App
	projectID := v.projectID
	return func() tea.Msg {
		tasks, err := app.Tasks.ListByProject(context.Background(), projectID)
		return timelineLoadedMsg{tasks: tasks, err: err}
	}
}

// rebuild recomputes the frame from the current task list and controller
// transients.
func (v *timelineView) rebuild() {
	v.frame = timeline.BuildFrame(v.tasks, time.Now(), v.cfg, v.ctrl)
}

func (v *timelineView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timelineLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.tasks = msg.tasks
		v.rebuild()
		return v, nil

	case refreshViewMsg:
		return v, v.loadTasks()

	case commitResultMsg:
		status := v.commitStatus(msg)
		return v, tea.Batch(setStatus(status), v.loadTasks())

	case tea.MouseMsg:
		return v.handleMouse(msg)

	case tea.BlurMsg:
		// Terminal lost focus mid-drag: abort, never leave a stuck drag.
		if v.ctrl.Active() {
			v.ctrl.Cancel()
			v.rebuild()
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "a":
			return v, v.openAddTaskWizard()
		case "r":
			v.loading = true
			return v, v.loadTasks()
		}
	}
	return v, nil
}

// ── mouse handling ──────────────────────────────────────────────────────────

func (v *timelineView) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if v.err != nil || v.loading {
		return v, nil
	}

	// Grid coordinates: content starts below the header and the ruler
	// line, and right of the gutter.
	gx := msg.X - gutterWidth
	gy := msg.Y - headerLines - rulerLines

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || v.ctrl.Active() {
			return v, nil
		}
		return v, v.beginDrag(msg.X, gx, gy)

	case tea.MouseActionMotion:
		if v.ctrl.Active() {
			v.ctrl.PointerMove(gx, gy)
			v.rebuild()
		}
		return v, nil

	case tea.MouseActionRelease:
		if !v.ctrl.Active() {
			return v, nil
		}
		mutation := v.ctrl.Release(gx, gy)
		v.rebuild()
		if mutation == nil {
			return v, nil
		}
		return v, v.dispatchCommit(*mutation)
	}
	return v, nil
}

// beginDrag hit-tests the press position and starts the matching
// interaction. Presses in the gutter start a reorder; presses on a bar
// edge start a resize; presses on the bar body start a move.
func (v *timelineView) beginDrag(absX, gx, gy int) tea.Cmd {
	row := v.frame.RowAt(gy, v.cfg)
	if row < 0 {
		return nil
	}
	task := v.frame.Rows[row]
	bar := v.frame.Bars[row]

	req := timeline.BeginRequest{
		Principal: v.state.Principal,
		ProjectID: v.projectID,
		TaskID:    task.ID,
		X:         gx,
		Y:         gy,
		Bar:       bar,
		RowIndex:  row,
		TaskCount: len(v.frame.Rows),
		Bounds:    v.frame.Bounds,
	}

	if absX < gutterWidth {
		req.Kind = domain.InteractionReorder
	} else {
		if gx < bar.X || gx >= bar.Right() {
			return nil
		}
		req.Kind = hitKind(gx, bar, v.cfg)
	}

	if !v.ctrl.Begin(req) {
		return setStatus(formatter.StyleYellow.Render("Schedule is read-only for your role."))
	}
	v.rebuild()
	return nil
}

// hitKind resolves which interaction a press inside the bar starts. The
// outermost day on each side acts as a resize handle; a one-day bar has
// no handles and always moves.
func hitKind(gx int, bar timeline.BarGeometry, cfg timeline.Config) domain.InteractionKind {
	if bar.Width <= cfg.DayWidth {
		return domain.InteractionMove
	}
	if gx < bar.X+cfg.DayWidth {
		return domain.InteractionResizeStart
	}
	if gx >= bar.Right()-cfg.DayWidth {
		return domain.InteractionResizeEnd
	}
	return domain.InteractionMove
}

func (v *timelineView) dispatchCommit(m contract.ScheduleMutation) tea.Cmd {
	app := v.state.App
	principal := v.state.Principal
	return func() tea.Msg {
		err := app.Schedule.Commit(context.Background(), principal, m)
		return commitResultMsg{mutation: m, err: err}
	}
}

func (v *timelineView) commitStatus(msg commitResultMsg) string {
	if msg.err != nil {
		return formatter.StyleRed.Render("Reschedule failed: " + msg.err.Error())
	}
	return formatter.StyleGreen.Render(fmt.Sprintf("Rescheduled: %s → %s",
		msg.mutation.NewStart.Format("Jan 02"),
		msg.mutation.NewEnd.Format("Jan 02"),
	))
}

// ── add-task wizard ─────────────────────────────────────────────────────────

func (v *timelineView) openAddTaskWizard() tea.Cmd {
	fields := &addTaskFields{column: "todo"}

	parentOptions := make([]huh.Option[string], 0, len(v.frame.Rows))
	for _, r := range v.frame.Rows {
		parentOptions = append(parentOptions, huh.NewOption(r.Title, r.ID))
	}

	form := newAddTaskForm(fields, parentOptions)

	state := v.state
	projectID := v.projectID
	done := func() tea.Cmd {
		return func() tea.Msg {
			task, err := taskFromFields(projectID, fields)
			if err == nil {
				err = state.App.Tasks.Create(context.Background(), task)
			}
			if err != nil {
				return statusMsg{text: formatter.StyleRed.Render("Add failed: " + err.Error())}
			}
			return statusMsg{text: formatter.StyleGreen.Render("Added " + task.Title)}
		}
	}

	return pushView(newWizardView(v.state, "Add Task", form, done))
}

// taskFromFields converts validated wizard answers into a task.
func taskFromFields(projectID string, f *addTaskFields) (*domain.Task, error) {
	start, err := time.Parse("2006-01-02", f.start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", f.start, err)
	}
	end, err := time.Parse("2006-01-02", f.end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", f.end, err)
	}
	task := &domain.Task{
		ProjectID: projectID,
		Title:     f.title,
		ColumnID:  domain.TaskColumn(f.column),
		StartDate: domain.DateOnly(start),
		EndDate:   domain.DateOnly(end),
	}
	if f.parent != "" {
		parent := f.parent
		task.ParentID = &parent
	}
	return task, nil
}

// ── rendering ───────────────────────────────────────────────────────────────

// rulerLines is the height of the date ruler above the grid.
const rulerLines = 1

func (v *timelineView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading timeline...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if len(v.frame.Rows) == 0 {
		return "\n  " + formatter.Dim("No tasks yet. Press 'a' to add one.")
	}

	gridWidth := v.gridWidth()

	var b strings.Builder
	b.WriteString(v.renderRuler(gridWidth))
	b.WriteByte('\n')

	for i := range v.frame.Rows {
		b.WriteString(v.renderRow(i, gridWidth))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// gridWidth is the drawable grid width, bounded by the terminal.
func (v *timelineView) gridWidth() int {
	w := v.frame.Bounds.Width()
	if v.state.Width > 0 && v.state.Width-gutterWidth < w {
		w = v.state.Width - gutterWidth
	}
	if w < 0 {
		w = 0
	}
	return w
}

// renderRuler draws week-start date labels across the grid.
func (v *timelineView) renderRuler(gridWidth int) string {
	weekCells := 7 * v.cfg.DayWidth
	var ruler strings.Builder
	for x := 0; x < gridWidth; x += weekCells {
		label := v.frame.Bounds.PositionToDate(x).Format("Jan 02")
		cell := weekCells
		if gridWidth-x < cell {
			cell = gridWidth - x
		}
		ruler.WriteString(formatter.PadRight(label, cell))
	}
	return strings.Repeat(" ", gutterWidth) + formatter.Dim(ruler.String())
}

// renderRow draws one task line: gutter tree entry plus the bar grid.
func (v *timelineView) renderRow(i int, gridWidth int) string {
	row := v.frame.Rows[i]
	bar := v.frame.Bars[i]

	gutter := v.renderGutter(i, row)

	// The ghost replaces the live bar on its own row while a drag is in
	// flight.
	fill, style := "█", formatter.BarStyle(row.Color)
	if g := v.frame.Ghost; g != nil && g.TaskID == row.ID {
		bar = g.Bar
		fill = "░"
	}

	grid := renderGridLine(bar, fill, style, v.frame.TodayX, gridWidth)
	return gutter + grid
}

// renderGutter draws the tree entry for row i, marking the reorder
// target when one is live.
func (v *timelineView) renderGutter(i int, row domain.HierarchicalTask) string {
	prefix := "  "
	if ind := v.frame.Indicator; ind != nil && ind.Index == i {
		prefix = formatter.StyleHeader.Render("▸ ")
	}

	indent := strings.Repeat("  ", row.Depth)
	glyph := formatter.ColumnIndicator(row.ColumnID)
	title := formatter.PadRight(indent+row.Title, gutterWidth-5)

	return prefix + glyph + " " + title + formatter.Dim("│")
}

// renderGridLine composes one grid row: the bar (or ghost) over a blank
// track, with the today marker visible wherever the bar is not.
func renderGridLine(bar timeline.BarGeometry, fill string, style lipgloss.Style, todayX, gridWidth int) string {
	x0 := clamp(bar.X, 0, gridWidth)
	x1 := clamp(bar.Right(), 0, gridWidth)

	var b strings.Builder
	b.WriteString(trackSegment(0, x0, todayX))
	if x1 > x0 {
		b.WriteString(style.Render(strings.Repeat(fill, x1-x0)))
	}
	b.WriteString(trackSegment(x1, gridWidth, todayX))
	return b.String()
}

// trackSegment renders empty track cells in [from, to), drawing the
// today marker if it falls inside.
func trackSegment(from, to, todayX int) string {
	if to <= from {
		return ""
	}
	if todayX < from || todayX >= to {
		return strings.Repeat(" ", to-from)
	}
	return strings.Repeat(" ", todayX-from) +
		formatter.Dim("┊") +
		strings.Repeat(" ", to-todayX-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
