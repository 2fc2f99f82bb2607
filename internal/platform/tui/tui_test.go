package tui

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/davemarvit/SGFPlayer-sub000/internal/config"
	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
	"github.com/davemarvit/SGFPlayer-sub000/internal/placement"
	"github.com/davemarvit/SGFPlayer-sub000/internal/replay"
	"github.com/davemarvit/SGFPlayer-sub000/internal/storage"
	"github.com/davemarvit/SGFPlayer-sub000/internal/track"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewerKeyMap(t *testing.T) {
	keys := DefaultViewerKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionForward},
		{"l", runes("l"), core.ActionForward},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionBack},
		{"h", runes("h"), core.ActionBack},
		{"pgdown", tea.KeyMsg{Type: tea.KeyPgDown}, core.ActionFastForward},
		{"L", runes("L"), core.ActionFastForward},
		{"pgup", tea.KeyMsg{Type: tea.KeyPgUp}, core.ActionFastBack},
		{"home", tea.KeyMsg{Type: tea.KeyHome}, core.ActionFirst},
		{"end", tea.KeyMsg{Type: tea.KeyEnd}, core.ActionLast},
		{"G", runes("G"), core.ActionLast},
		{"v", runes("v"), core.ActionNextVariant},
		{"ctrl+s", tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionScreenshot},
		{"?", runes("?"), core.ActionToggleHelp},
		{"q", runes("q"), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runes("x"), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.MapKey(tt.msg); got != tt.want {
				t.Errorf("MapKey(%s) = %v, expected %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestSettlerSnapsWhenDisabled(t *testing.T) {
	s := NewSettler(30, 0)
	if s.Enabled() {
		t.Fatal("zero duration should disable easing")
	}
	targets := []r2.Vec{{X: 1, Y: 2}, {X: -3, Y: 0.5}}
	s.SetTargets(core.White, targets, r2.Vec{Y: -10})

	got := s.Positions(core.White)
	for i := range targets {
		if got[i] != targets[i] {
			t.Errorf("position %d = %v, expected %v", i, got[i], targets[i])
		}
	}
	if s.Step() {
		t.Error("a disabled settler never moves")
	}
	if !s.Settled() {
		t.Error("a disabled settler is always settled")
	}
}

func TestSettlerConverges(t *testing.T) {
	s := NewSettler(30, 300*time.Millisecond)
	spawn := rimSpawn(5)
	s.SetTargets(core.Black, []r2.Vec{{X: 1, Y: 1}}, spawn)

	if got := s.Positions(core.Black)[0]; got != spawn {
		t.Fatalf("new token should start at the rim, got %v", got)
	}
	if s.Settled() {
		t.Fatal("token has not moved yet")
	}

	steps := 0
	for s.Step() {
		steps++
		if steps > 300 {
			t.Fatal("settler did not come to rest")
		}
	}
	if !s.Settled() {
		t.Error("settler should be settled once Step reports no motion")
	}
	if got := s.Positions(core.Black)[0]; got != (r2.Vec{X: 1, Y: 1}) {
		t.Errorf("resting position = %v", got)
	}
}

func TestSettlerKeepsSurvivors(t *testing.T) {
	s := NewSettler(30, time.Second)
	first := []r2.Vec{{X: 1}, {X: 2}}
	s.SetTargets(core.Black, first, r2.Vec{Y: -4})
	s.Snap()

	s.SetTargets(core.Black, []r2.Vec{{X: 1.5}, {X: 2.5}, {X: 3}}, r2.Vec{Y: -4})
	got := s.Positions(core.Black)
	if len(got) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(got))
	}
	if got[0] != first[0] || got[1] != first[1] {
		t.Errorf("surviving tokens should keep their displayed position, got %v", got[:2])
	}
	if got[2] != (r2.Vec{Y: -4}) {
		t.Errorf("new token should spawn at the rim, got %v", got[2])
	}

	s.SetTargets(core.Black, []r2.Vec{{X: 9}}, r2.Vec{})
	if n := len(s.Positions(core.Black)); n != 1 {
		t.Errorf("shrinking should drop tokens, got %d", n)
	}
}

func TestLayoutBowls(t *testing.T) {
	sizes := [][2]int{{80, 23}, {120, 40}, {200, 30}, {40, 60}}
	for _, sz := range sizes {
		w, h := sz[0], sz[1]
		g, ok := layoutBowls(w, h)
		if !ok {
			t.Fatalf("%dx%d should fit", w, h)
		}
		for _, k := range core.Kinds {
			c := g.centers[k]
			left := (c.X - g.radius) * cellAspect
			right := (c.X + g.radius) * cellAspect
			if left < 0 || right >= float64(w) {
				t.Errorf("%dx%d: %s bowl spans columns %.1f..%.1f", w, h, k, left, right)
			}
			if c.Y-g.radius < headerRows || c.Y+g.radius >= float64(h-footerRows) {
				t.Errorf("%dx%d: %s bowl spans rows %.1f..%.1f", w, h, k, c.Y-g.radius, c.Y+g.radius)
			}
		}
		if g.centers[core.Black].X >= g.centers[core.White].X {
			t.Errorf("%dx%d: black bowl should be on the left", w, h)
		}
	}

	if _, ok := layoutBowls(10, 5); ok {
		t.Error("10x5 should not fit")
	}
}

func newTestViewer(t *testing.T, opts ViewerOptions) Model {
	t.Helper()
	tr := track.Demo(3)
	orch, err := replay.New(tr.Fingerprint, config.DefaultSelection())
	if err != nil {
		t.Fatalf("replay.New: %v", err)
	}
	if opts.Runtime.ScreenW == 0 {
		opts.Runtime = core.DefaultConfig()
	}
	return NewModel(replay.NewPlayer(orch, tr), opts)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func TestModelSeeksOnTick(t *testing.T) {
	m := newTestViewer(t, ViewerOptions{})
	orch := m.Player().Orchestrator()

	if r := orch.Container(core.Black).Radius; r != 9 {
		t.Errorf("80x24 terminal should give radius 9 bowls, got %v", r)
	}

	for range 3 {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	if orch.Stats().Seeks != 0 {
		t.Fatal("keys must not seek before the tick")
	}

	m, cmd := update(t, m, TickMsg{ID: m.id, Time: time.Now()})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if got := m.Player().Frame().Move; got != 3 {
		t.Errorf("frame move = %d, expected 3", got)
	}
	if s := orch.Stats().Seeks; s != 1 {
		t.Errorf("three key presses should coalesce into one seek, got %d", s)
	}

	_, cmd = update(t, m, TickMsg{ID: m.id + 1000})
	if cmd != nil {
		t.Error("ticks of another viewer must be ignored")
	}
}

func TestModelNextVariant(t *testing.T) {
	m := newTestViewer(t, ViewerOptions{})
	m, _ = update(t, m, TickMsg{ID: m.id})
	before := m.Player().Orchestrator().Selection().Variant

	m, _ = update(t, m, runes("v"))
	after := m.Player().Orchestrator().Selection().Variant
	if after != before.Next() {
		t.Errorf("variant = %v, expected %v", after, before.Next())
	}
	if m.Player().Orchestrator().Stats().Invalidations != 1 {
		t.Error("switching algorithm should invalidate the cache")
	}
	if !strings.Contains(m.View(), after.Title()) {
		t.Error("view should name the new algorithm")
	}
}

func TestModelResizeRescalesWithoutRecompute(t *testing.T) {
	m := newTestViewer(t, ViewerOptions{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	m, _ = update(t, m, TickMsg{ID: m.id})

	orch := m.Player().Orchestrator()
	computes := orch.Stats().Computes
	counts := [len(core.Kinds)]int{}
	for _, k := range core.Kinds {
		counts[k] = len(m.Player().Frame().Bowl(k).Tokens)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})
	if got := orch.Stats().Computes; got != computes {
		t.Errorf("resize recomputed layouts: %d -> %d", computes, got)
	}
	if r := orch.Container(core.White).Radius; r <= 9 {
		t.Errorf("bigger terminal should give bigger bowls, got radius %v", r)
	}
	for _, k := range core.Kinds {
		if got := len(m.Player().Frame().Bowl(k).Tokens); got != counts[k] {
			t.Errorf("%s token count changed on resize: %d -> %d", k, counts[k], got)
		}
		if !m.settler.Settled() {
			t.Error("resize should snap tokens into place")
		}
	}
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := newTestViewer(t, ViewerOptions{Title: "screenshot test", ScreenshotDir: dir})
	m, _ = update(t, m, TickMsg{ID: m.id})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one screenshot, got %d", len(entries))
	}
	data, err := os.ReadFile(dir + "/" + entries[0].Name())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "screenshot test") {
		t.Error("screenshot should contain the title")
	}
	if !strings.HasPrefix(m.status, "saved ") {
		t.Errorf("status = %q", m.status)
	}
}

func TestModelQuitAndMenu(t *testing.T) {
	m := newTestViewer(t, ViewerOptions{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("esc should do nothing without a menu")
	}

	m, cmd := update(t, m, runes("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting viewer renders nothing")
	}
}

func TestSessionMenuFlow(t *testing.T) {
	tracks := []*track.Track{
		track.FromCounts("first", []int{0, 1, 2}, []int{0, 0, 1}),
		track.FromCounts("second", []int{0, 0, 3}, []int{0, 2, 2}),
	}
	cfg := SessionConfig{
		Tracks:    tracks,
		Selection: config.DefaultSelection(),
		Viewer:    ViewerOptions{Runtime: core.DefaultConfig()},
	}

	s := NewSessionModel(cfg)
	if s.viewer != nil {
		t.Fatal("two tracks should start at the menu")
	}

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		session, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		s = session
	}

	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.viewer == nil {
		t.Fatal("enter should open the viewer")
	}
	if got := s.viewer.Player().Orchestrator().Fingerprint(); got != tracks[1].Fingerprint {
		t.Errorf("opened the wrong track: %s", got)
	}

	step(runes("v"))
	want := s.viewer.Player().Orchestrator().Selection()
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.viewer != nil {
		t.Fatal("esc should return to the menu")
	}
	if !s.sel.Equal(want) {
		t.Error("the chosen algorithm should carry over to the next track")
	}
	if s.menu.Cursor() != 1 {
		t.Errorf("menu cursor = %d, expected it to stay on the last track", s.menu.Cursor())
	}
}

func TestSessionSingleTrackOpensViewer(t *testing.T) {
	s := NewSessionModel(SessionConfig{
		Tracks:    []*track.Track{track.Demo(1)},
		Selection: config.DefaultSelection(),
		Viewer:    ViewerOptions{Runtime: core.DefaultConfig()},
	})
	if s.Err() != nil {
		t.Fatal(s.Err())
	}
	if s.viewer == nil {
		t.Fatal("single track should open the viewer directly")
	}
	if s.Init() == nil {
		t.Error("Init should start the viewer tick loop")
	}

	bad := config.DefaultSelection()
	bad.Variant = placement.Variant(99)
	s = NewSessionModel(SessionConfig{Tracks: []*track.Track{track.Demo(1)}, Selection: bad})
	if s.Err() == nil {
		t.Error("unknown variant should fail the session")
	}
}

type fakeRuns struct {
	runs []storage.Run
	sums []storage.VariantSummary
}

func (f fakeRuns) RecentRuns(int) ([]storage.Run, error) { return f.runs, nil }
func (f fakeRuns) Summaries(string) ([]storage.VariantSummary, error) { return f.sums, nil }

func TestRunsBoardFiltersByVariant(t *testing.T) {
	src := fakeRuns{
		runs: []storage.Run{
			{Variant: "spiral", Move: 1},
			{Variant: "group-drop", Move: 2},
			{Variant: "spiral", Move: 3},
		},
		sums: []storage.VariantSummary{{Variant: "spiral", Runs: 2, ConvergedRatio: 1}},
	}

	m := NewRunsModel(src, 100, 30)
	if m.variant() != placement.Spiral {
		t.Fatalf("board should start on %v", placement.Variants[0])
	}
	if len(m.Visible()) != 2 {
		t.Errorf("expected 2 spiral runs, got %d", len(m.Visible()))
	}
	if !strings.Contains(m.View(), "2 runs") {
		t.Error("summary line missing")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RunsModel)
	if m.variant() != placement.GroupDrop || len(m.Visible()) != 1 {
		t.Errorf("tab should show group-drop runs, got %v with %d", m.variant(), len(m.Visible()))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(RunsModel)
	if m.variant() != placement.Variants[len(placement.Variants)-1] {
		t.Errorf("shift+tab should wrap around, got %v", m.variant())
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "bowl", core.ColorBowl)
	s.Set(5, 1, '●', core.StoneColor(core.White))

	out := RenderScreen(s)
	if !strings.Contains(out, "bowl") || !strings.Contains(out, "●") {
		t.Errorf("rendered screen lost content: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Error("expected two rows")
	}
}
