package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/reverie-spectrum/config"
	"github.com/lixenwraith/reverie-spectrum/feed"
	"github.com/lixenwraith/reverie-spectrum/input"
	"github.com/lixenwraith/reverie-spectrum/spectrum"
)

const testDocument = `{
  "dreamers": [
    {"did": "did:plc:ada", "name": "Ada", "spectrum": {"entropy": 60, "liberty": 40, "receptive": 30}},
    {"did": "did:plc:bo", "name": "Bo", "spectrum": {"oblivion": 50, "authority": 45, "skeptic": 35}}
  ],
  "zones": [
    {"type": "sphere", "name": "wilds", "color": {"r": 200, "g": 40, "b": 40},
     "center": {"x": 60, "y": 40, "z": 30}, "radius": 20}
  ]
}`

func writeDocument(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spectrum.json")
	require.NoError(t, os.WriteFile(path, []byte(testDocument), 0o644))
	return path
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	return log
}

func TestClassifyCommand(t *testing.T) {
	path := writeDocument(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"classify", "--file", path, "--no-color"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4, out.String())
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "did:plc:ada")
	assert.Contains(t, lines[1], "wilds")
	assert.Contains(t, lines[2], "did:plc:bo")
	assert.NotContains(t, lines[2], "wilds")
	assert.Equal(t, "2 dreamers, 1 zones", lines[3])
	assert.NotContains(t, out.String(), "\x1b[", "no escapes with --no-color")
}

func TestWriteClassificationSwatch(t *testing.T) {
	eng := spectrum.New()
	eng.Ingest(map[string]spectrum.PointInput{
		"a": {Label: "A", Axes: spectrum.Axes{Entropy: 80}},
	}, nil)

	var out bytes.Buffer
	require.NoError(t, writeClassification(&out, eng, true))
	assert.Contains(t, out.String(), "\x1b[38;2;")
	assert.Contains(t, out.String(), "80.0")

	out.Reset()
	require.NoError(t, writeClassification(&out, eng, false))
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestClassifyOutputNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	w, color := classifyOutput(&buf)
	assert.False(t, color)
	assert.Same(t, &buf, w)
}

func TestApplyViewFlagsRejectsBadView(t *testing.T) {
	cfg := config.Default()
	cfg.Source.File = "x.json"
	require.NoError(t, viewCmd.Flags().Set("view", "sideways"))
	t.Cleanup(func() {
		viewName = ""
		viewCmd.Flags().Lookup("view").Changed = false
	})

	err := applyViewFlags(viewCmd, &cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func newTestViewer(t *testing.T) (*viewer, tcell.SimulationScreen) {
	t.Helper()
	return newTestViewerFor(t, writeDocument(t))
}

func newTestViewerFor(t *testing.T, path string) (*viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 25)
	t.Cleanup(screen.Fini)

	cfg := config.Default()
	cfg.Source.File = path
	src, err := newSource(cfg, quietLogger())
	require.NoError(t, err)

	v, err := newViewer(cfg, screen, src, input.DefaultKeyTable(), quietLogger())
	require.NoError(t, err)
	require.NotNil(t, v.watcher, "file sources are watched")
	return v, screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestViewerHandleActions(t *testing.T) {
	v, _ := newTestViewer(t)

	require.True(t, v.handle(key('l')))
	assert.False(t, v.renderer.Labels())

	require.True(t, v.handle(key('1')))
	assert.Equal(t, spectrum.ViewFront.String(), v.view)

	require.True(t, v.handle(key('a')))
	assert.True(t, v.eng.Camera().AutoRotate, "toggled back on after the front view disabled it")

	require.True(t, v.handle(key('p')))
	assert.True(t, v.scheduler.Paused())
	assert.True(t, v.hud().Paused)
	require.True(t, v.handle(key('p')))
	assert.False(t, v.scheduler.Paused())

	assert.False(t, v.handle(key('q')), "quit stops the loop")
}

func TestViewerIngestAndSelect(t *testing.T) {
	v, _ := newTestViewer(t)
	assert.Equal(t, "loading", v.hud().Status)

	snap, err := (&feed.FileSource{Path: writeDocument(t)}).Fetch(t.Context())
	require.NoError(t, err)
	v.ingest(snap)
	assert.Equal(t, 2, v.hud().Points)
	assert.Empty(t, v.hud().Status)
	assert.True(t, v.hud().Muted, "audio is off unless enabled")

	v.eng.Select("did:plc:bo")
	require.True(t, v.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.Empty(t, v.eng.Selected())
}

func TestViewerResize(t *testing.T) {
	v, screen := newTestViewer(t)

	screen.SetSize(120, 41)
	require.True(t, v.handle(tcell.NewEventResize(120, 41)))

	cam := v.eng.Camera()
	vp := cam.Viewport()
	assert.Equal(t, 120.0, vp.Width)
	assert.Equal(t, 40.0, vp.Height, "bottom row is the HUD")
}

func TestViewerRunQuits(t *testing.T) {
	v, screen := newTestViewer(t)

	done := make(chan error, 1)
	go func() { done <- v.run(t.Context()) }()
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("viewer did not quit")
	}
}

func TestViewerRunReleasesWatcherWhenWatchFails(t *testing.T) {
	path := writeDocument(t)
	v, screen := newTestViewerFor(t, path)
	// The watched directory disappears before the loop starts
	require.NoError(t, os.RemoveAll(filepath.Dir(path)))

	done := make(chan error, 1)
	go func() { done <- v.run(t.Context()) }()
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("viewer did not quit")
	}

	err := v.watcher.Start()
	assert.ErrorIs(t, err, fsnotify.ErrClosed, "notifier closed on exit")
}
