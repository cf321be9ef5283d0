package commander

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/kk-code-lab/twindir/internal/pane"
	"github.com/kk-code-lab/twindir/internal/ui/input"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
}

func openCommander(t *testing.T, left, right string) *Commander {
	t.Helper()
	c, err := Open(context.Background(), Options{Left: left, Right: right})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func key(k tcell.Key, mods tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, mods)
}

// press routes a key and runs the tick that follows every event.
func press(c *Commander, ev *tcell.EventKey) input.Command {
	cmd := c.HandleKey(ev, 10)
	c.Tick()
	return cmd
}

func names(s pane.Snapshot) []string {
	out := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		out = append(out, it.Name)
	}
	return out
}

func selectedNames(s pane.Snapshot) []string {
	out := make([]string, 0, len(s.SelectedIndices))
	for _, i := range s.SelectedIndices {
		out = append(out, s.Items[i].Name)
	}
	return out
}

func TestFocusTransitions(t *testing.T) {
	c := openCommander(t, t.TempDir(), t.TempDir())
	require.Equal(t, FocusLeft, c.Focus())

	press(c, key(tcell.KeyRight, tcell.ModNone))
	require.Equal(t, FocusRight, c.Focus())
	press(c, key(tcell.KeyRight, tcell.ModNone))
	require.Equal(t, FocusRight, c.Focus())
	press(c, key(tcell.KeyLeft, tcell.ModNone))
	require.Equal(t, FocusLeft, c.Focus())
	press(c, key(tcell.KeyTab, tcell.ModNone))
	require.Equal(t, FocusRight, c.Focus())
	press(c, key(tcell.KeyTab, tcell.ModNone))
	require.Equal(t, FocusLeft, c.Focus())

	left, right := c.Snapshots()
	require.True(t, left.Focused)
	require.False(t, right.Focused)
}

func TestKeysGoToFocusedPaneOnly(t *testing.T) {
	left, right := t.TempDir(), t.TempDir()
	touch(t, left, "a", "b")
	touch(t, right, "x", "y")

	c := openCommander(t, left, right)
	press(c, key(tcell.KeyDown, tcell.ModNone))
	l, r := c.Snapshots()
	require.Equal(t, 1, l.CursorIndex)
	require.Equal(t, 0, r.CursorIndex)

	press(c, key(tcell.KeyTab, tcell.ModNone))
	press(c, key(tcell.KeyDown, tcell.ModNone))
	l, r = c.Snapshots()
	require.Equal(t, 1, l.CursorIndex)
	require.Equal(t, 1, r.CursorIndex)
}

func TestSingleFileMoveBetweenPanes(t *testing.T) {
	left, right := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(left, "a.txt"), []byte("hello"), 0o644))

	c := openCommander(t, left, right)
	require.Equal(t, input.CommandMoveSelected, press(c, key(tcell.KeyF6, tcell.ModNone)))

	_, err := os.Stat(filepath.Join(left, "a.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
	data, err := os.ReadFile(filepath.Join(right, "a.txt"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))

	l, r := c.Snapshots()
	require.Empty(t, l.Items)
	require.Equal(t, -1, l.CursorIndex)
	require.Empty(t, l.SelectedIndices)
	require.Equal(t, []string{"a.txt"}, names(r))
	require.Equal(t, "moved 1 item", c.Status())
}

func TestRangeSelectThenMove(t *testing.T) {
	left, right := t.TempDir(), t.TempDir()
	touch(t, left, "1", "2", "3", "4", "5")

	c := openCommander(t, left, right)
	for i := 0; i < 3; i++ {
		press(c, key(tcell.KeyDown, tcell.ModShift))
	}
	l, _ := c.Snapshots()
	require.Equal(t, []string{"1", "2", "3", "4"}, selectedNames(l))

	press(c, key(tcell.KeyF6, tcell.ModNone))

	l, r := c.Snapshots()
	require.Equal(t, []string{"5"}, names(l))
	require.Equal(t, 0, l.CursorIndex)
	require.Equal(t, []string{"1", "2", "3", "4"}, names(r))
	require.Equal(t, "moved 4 items", c.Status())
}

func TestAdditiveReversal(t *testing.T) {
	left := t.TempDir()
	touch(t, left, "a", "b", "c", "d", "e", "f")

	c := openCommander(t, left, t.TempDir())
	press(c, key(tcell.KeyDown, tcell.ModNone))
	press(c, key(tcell.KeyDown, tcell.ModNone))
	l, _ := c.Snapshots()
	require.Equal(t, []string{"c"}, selectedNames(l))

	both := tcell.ModShift | tcell.ModCtrl
	press(c, key(tcell.KeyDown, both))
	press(c, key(tcell.KeyDown, both))
	l, _ = c.Snapshots()
	require.Equal(t, []string{"c", "d", "e"}, selectedNames(l))

	// Reversing re-anchors at the cursor (e); the earlier block stays.
	press(c, key(tcell.KeyUp, both))
	press(c, key(tcell.KeyUp, both))
	l, _ = c.Snapshots()
	require.Equal(t, []string{"c", "d", "e"}, selectedNames(l))
	require.Equal(t, "c", l.Items[l.CursorIndex].Name)

	press(c, key(tcell.KeyUp, both))
	press(c, key(tcell.KeyUp, both))
	l, _ = c.Snapshots()
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, selectedNames(l))
	require.Equal(t, "a", l.Items[l.CursorIndex].Name)
}

func TestMoveFromRightPaneTargetsLeft(t *testing.T) {
	left, right := t.TempDir(), t.TempDir()
	touch(t, right, "r1")

	c := openCommander(t, left, right)
	c.SetFocus(FocusRight)
	c.RequestMove()
	c.Tick()

	require.FileExists(t, filepath.Join(left, "r1"))
	l, r := c.Snapshots()
	require.Equal(t, []string{"r1"}, names(l))
	require.Empty(t, r.Items)
}

func TestRequestMoveCollapsesBeforeTick(t *testing.T) {
	left, right := t.TempDir(), t.TempDir()
	touch(t, left, "a", "b")

	c := openCommander(t, left, right)
	c.RequestMove()
	c.RequestMove()
	c.Tick()

	// A second move would have taken "b" as well.
	l, r := c.Snapshots()
	require.Equal(t, []string{"b"}, names(l))
	require.Equal(t, []string{"a"}, names(r))
}

func TestMoveIntoSameDirectoryIsReported(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a")

	c := openCommander(t, dir, dir)
	press(c, key(tcell.KeyF6, tcell.ModNone))

	require.FileExists(t, filepath.Join(dir, "a"))
	require.Equal(t, "both panes show the same directory", c.Status())
}

func TestEnterAndBackspaceNavigate(t *testing.T) {
	left := t.TempDir()
	sub := filepath.Join(left, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	touch(t, sub, "x")

	c := openCommander(t, left, t.TempDir())
	press(c, key(tcell.KeyEnter, tcell.ModNone))
	require.Equal(t, sub, c.Pane(FocusLeft).CurrentPath())
	l, _ := c.Snapshots()
	require.Equal(t, []string{"x"}, names(l))

	press(c, tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	require.Equal(t, left, c.Pane(FocusLeft).CurrentPath())
}

func TestQuitAndSuspendAreReturned(t *testing.T) {
	c := openCommander(t, t.TempDir(), t.TempDir())
	require.Equal(t, input.CommandQuit, press(c, tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	require.Equal(t, input.CommandSuspend, press(c, tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl)))
}

func TestOpenFailsWhenAPaneCannotStart(t *testing.T) {
	_, err := Open(context.Background(), Options{
		Left:  t.TempDir(),
		Right: filepath.Join(t.TempDir(), "missing"),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "right pane")
}

func TestDescribeMove(t *testing.T) {
	boom := os.ErrPermission
	tests := []struct {
		report pane.MoveReport
		want   string
	}{
		{pane.MoveReport{Skipped: true}, "both panes show the same directory"},
		{pane.MoveReport{}, "nothing selected"},
		{pane.MoveReport{Moved: 1}, "moved 1 item"},
		{pane.MoveReport{Moved: 3}, "moved 3 items"},
		{pane.MoveReport{Moved: 2, Failed: []pane.MoveFailure{{Name: "x", Err: boom}}}, "moved 2, 1 failed: permission denied"},
		{pane.MoveReport{Moved: 0, Failed: make([]pane.MoveFailure, 2)}, "moved 0, 2 failed"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, describeMove(tt.report))
	}
}
