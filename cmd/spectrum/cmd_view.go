package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/reverie-spectrum/audio"
	"github.com/lixenwraith/reverie-spectrum/config"
	"github.com/lixenwraith/reverie-spectrum/core"
	"github.com/lixenwraith/reverie-spectrum/engine"
	"github.com/lixenwraith/reverie-spectrum/feed"
	"github.com/lixenwraith/reverie-spectrum/input"
	"github.com/lixenwraith/reverie-spectrum/parameter"
	"github.com/lixenwraith/reverie-spectrum/render"
	"github.com/lixenwraith/reverie-spectrum/spectrum"
)

var (
	viewName string
	noLabels bool
	sound    bool
	fps      int
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Start the interactive 3D viewer",
	Long: `Opens the full-screen viewer. Drag to rotate, wheel or +/- to zoom,
0-6 to snap to a canonical view, click a dot to select it.`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, viewCmd} {
		f := c.Flags()
		f.StringVar(&viewName, "view", "", "initial view (default, top, bottom, front, back, left, right)")
		f.BoolVar(&noLabels, "no-labels", false, "hide labels until hovered or selected")
		f.BoolVar(&sound, "sound", false, "enable audio cues")
		f.IntVar(&fps, "fps", 0, "frame rate, 1..120")
	}
}

// applyViewFlags folds the view flags into cfg
func applyViewFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("view") {
		cfg.View.Initial = viewName
	}
	if flags.Changed("no-labels") {
		cfg.View.Labels = !noLabels
	}
	if flags.Changed("sound") {
		cfg.View.Sound = sound
	}
	if flags.Changed("fps") {
		cfg.View.FPS = fps
	}
	return cfg.Validate()
}

func runView(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyViewFlags(cmd, &cfg); err != nil {
		return err
	}
	keys, err := input.ParseKeyOverrides(cfg.Keys)
	if err != nil {
		return fmt.Errorf("%w: keys: %v", config.ErrInvalid, err)
	}

	log := logrus.New()
	if f := setupLogging(log, cfg.Log.Dir, cfg.Log.Debug); f != nil {
		defer f.Close()
	}

	src, err := newSource(cfg, log)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	core.SetCrashTerminal(screen)
	defer screen.Fini()
	defer func() { core.HandleCrash(recover()) }()
	screen.EnableMouse()
	screen.HideCursor()

	v, err := newViewer(cfg, screen, src, input.MergeKeyTable(input.DefaultKeyTable(), keys), log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return v.run(ctx)
}

// viewer is the interactive host loop
// Everything touching the engine runs on the goroutine calling run
type viewer struct {
	screen     tcell.Screen
	renderer   *render.TerminalRenderer
	eng        *spectrum.Engine
	translator *input.Translator
	scheduler  *engine.FrameScheduler
	poller     *feed.Poller
	watcher    *feed.Watcher
	cues       *audio.CuePlayer
	log        logrus.FieldLogger

	sound  bool
	view   string
	status string
}

func newViewer(cfg config.Config, screen tcell.Screen, src feed.Source, keys *input.KeyTable, log *logrus.Logger) (*viewer, error) {
	renderer := render.NewTerminalRenderer(screen)
	renderer.SetLabels(cfg.View.Labels)

	eng := spectrum.New(
		spectrum.WithLogger(log.WithField("component", "engine")),
		spectrum.WithViewport(renderer.Viewport()),
		spectrum.WithHitTolerance(parameter.TerminalHitTolerance),
	)
	if err := eng.SnapToView(cfg.InitialView()); err != nil {
		return nil, err
	}

	v := &viewer{
		screen:     screen,
		renderer:   renderer,
		eng:        eng,
		translator: input.NewTranslator(eng, keys, log.WithField("component", "input")),
		scheduler:  engine.NewFrameScheduler(cfg.FrameInterval()),
		poller:     feed.NewPoller(src, cfg.Source.Refresh.Duration, log),
		cues:       audio.NewCuePlayer(log.WithField("component", "audio")),
		log:        log,
		sound:      cfg.View.Sound,
		view:       cfg.InitialView().String(),
		status:     "loading",
	}

	if fs, ok := src.(*feed.FileSource); ok {
		w, err := feed.NewWatcher(fs, feed.DefaultDebounce, log)
		if err != nil {
			return nil, err
		}
		v.watcher = w
	}
	return v, nil
}

// run drives the viewer until quit or ctx is done
func (v *viewer) run(ctx context.Context) error {
	if v.sound {
		if err := v.cues.Initialize(); err != nil {
			v.log.WithError(err).Warn("audio unavailable, continuing silent")
		}
	}
	defer v.cues.Cleanup()

	v.poller.Start()
	defer v.poller.Stop()

	var watched <-chan feed.Snapshot
	if v.watcher != nil {
		// Stop releases the notifier even when Start failed
		defer v.watcher.Stop()
		if err := v.watcher.Start(); err != nil {
			v.log.WithError(err).Warn("file watch unavailable")
		} else {
			watched = v.watcher.Updates()
		}
	}

	v.scheduler.Start()
	defer v.scheduler.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	})

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !v.handle(ev) {
				return nil
			}
		case s := <-v.poller.Updates():
			v.ingest(s)
		case s := <-watched:
			v.ingest(s)
		case t := <-v.scheduler.Ticks():
			v.eng.Tick(t.Dt)
			v.renderer.SetHUD(v.hud())
			v.eng.Draw(v.renderer)
		}
	}
}

// handle applies one terminal event, false means quit
func (v *viewer) handle(ev tcell.Event) bool {
	res := v.translator.Handle(ev)
	if view, ok := res.Action.View(); ok {
		v.view = view.String()
	} else if v.translator.Dragging() {
		v.view = "free"
	}
	if res.Resize {
		v.screen.Sync()
		v.renderer.UpdateDimensions()
		v.eng.SetViewport(v.renderer.Viewport())
	}
	if res.Clicked {
		switch res.Hit.Kind {
		case spectrum.HitDot:
			v.cues.Play(audio.CuePing)
			v.status = res.Hit.Point.Label + " · " + res.Hit.Point.Class.Name
		case spectrum.HitLabel:
			v.cues.Play(audio.CueChime)
			v.status = "profile: " + res.Hit.Point.ID
		default:
			v.status = ""
		}
	}

	switch res.Action {
	case input.ActionQuit:
		return false
	case input.ActionRefresh:
		v.poller.Refresh()
		v.status = "refreshing"
	case input.ActionPause:
		if v.scheduler.Paused() {
			v.scheduler.Resume()
		} else {
			v.scheduler.Pause()
			// One last frame so the HUD shows the pause
			v.renderer.SetHUD(v.hud())
			v.eng.Draw(v.renderer)
		}
	case input.ActionToggleLabels:
		v.renderer.SetLabels(!v.renderer.Labels())
	case input.ActionToggleSound:
		v.toggleSound()
	case input.ActionToggleAutoRotate:
		v.eng.SetAutoRotate(!v.eng.Camera().AutoRotate)
	case input.ActionClearSelection:
		v.eng.Select("")
		v.status = ""
	}
	return true
}

func (v *viewer) toggleSound() {
	if v.cues.Enabled() {
		v.cues.SetMuted(true)
		return
	}
	if err := v.cues.Initialize(); err != nil {
		v.log.WithError(err).Warn("audio unavailable")
		v.status = "audio unavailable"
		return
	}
	v.cues.SetMuted(false)
}

func (v *viewer) ingest(s feed.Snapshot) {
	v.eng.Ingest(s.Points, s.Zones)
	v.cues.Play(audio.CueRefresh)
	if v.status == "loading" || v.status == "refreshing" {
		v.status = ""
	}
}

func (v *viewer) hud() render.HUD {
	return render.HUD{
		View:     v.view,
		Points:   v.eng.Len(),
		Selected: v.eng.Selected(),
		Status:   v.status,
		Paused:   v.scheduler.Paused(),
		Muted:    !v.cues.Enabled(),
	}
}
