package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/regionview/audio"
	"github.com/lixenwraith/regionview/config"
	"github.com/lixenwraith/regionview/core"
	"github.com/lixenwraith/regionview/engine"
	"github.com/lixenwraith/regionview/logger"
	"github.com/lixenwraith/regionview/parameter"
	"github.com/lixenwraith/regionview/render"
	"github.com/lixenwraith/regionview/status"
	"github.com/lixenwraith/regionview/store"
	"github.com/lixenwraith/regionview/terminal"
	"github.com/lixenwraith/regionview/world"
	"github.com/lixenwraith/regionview/worldgen"
)

var (
	configFlag   = flag.String("config", "", "Config file (toml, yaml or json), watched for modifier changes")
	colorFlag    = flag.String("color", "", "Color mode: auto, truecolor, 256 (overrides config)")
	debugFlag    = flag.Bool("debug", false, "Enable file logging")
	snapshotFlag = flag.String("snapshot", "", "SQLite world snapshot, loaded on start and saved on exit")
	seedFlag     = flag.Int64("seed", 0, "World generation seed (0 = random)")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the client crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "regionview: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logDir, err := cfg.LogDir()
	if err != nil {
		return fmt.Errorf("log dir: %w", err)
	}
	log, closeLog, err := logger.Setup(logger.Options{
		Debug:   cfg.Log.Debug,
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Dir:     logDir,
		File:    parameter.LogFileName,
		MaxSize: parameter.MaxLogSize,
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer closeLog()

	modifiers, err := render.ParseModifierSet(cfg.Modifiers)
	if err != nil {
		return fmt.Errorf("config modifiers: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// World: snapshot first, generator as fallback
	snapshot, err := cfg.SnapshotPath()
	if err != nil {
		return fmt.Errorf("snapshot path: %w", err)
	}
	var st *store.Store
	if snapshot != "" {
		st, err = store.Open(ctx, snapshot)
		if err != nil {
			return err
		}
		defer st.Close()
	}
	w, err := loadWorld(ctx, st, cfg, log)
	if err != nil {
		return err
	}

	term, err := terminal.New(terminal.ParseColorMode(cfg.Color))
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}
	if err := term.Init(); err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	// Normal exit terminal cleanup
	defer term.Fini()
	core.SetCrashTerminal(term)

	var sound engine.Sound
	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.WithError(err).Warn("audio unavailable, continuing without sound")
		} else {
			sm.SetVolume(cfg.Audio.Volume)
			defer sm.Cleanup()
			sound = sm
		}
	}

	reg := status.NewRegistry()
	session := engine.NewSession(engine.Options{
		World:    w,
		Terminal: term,
		Status:   reg,
		Sound:    sound,
		Logger:   log,
		Camera: render.Camera{
			TilesWidth:  cfg.Camera.TilesWidth,
			TilesHeight: cfg.Camera.TilesHeight,
		},
		Modifiers:     modifiers,
		FrameInterval: cfg.FrameInterval.Std(),
		TickInterval:  cfg.TickInterval.Std(),
	})

	var reloads chan []string
	if *configFlag != "" {
		reloads = make(chan []string, 1)
		core.Go(func() { watchConfig(ctx, *configFlag, reloads, log) })
	}

	eventChan := make(chan terminal.Event, parameter.EventChannelSize)
	core.Go(func() {
		defer close(eventChan)

		for {
			ev := term.PollEvent()
			eventChan <- ev
			// Session stops on either; nothing more will arrive
			if ev.Type == terminal.EventClosed || ev.Type == terminal.EventError {
				return
			}
		}
	})

	log.WithFields(logrus.Fields{
		"world":   w.ID(),
		"tick":    w.CurrentTick().String(),
		"regions": w.Len(),
		"color":   term.ColorMode().String(),
	}).Info("session started")

	if err := session.Run(ctx, eventChan, reloads); err != nil {
		return err
	}
	log.WithField("metrics", reg.Snapshot()).Info("session ended")

	if st != nil {
		if err := st.SaveWorld(context.Background(), w); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		log.WithField("path", snapshot).Info("snapshot saved")
	}
	return nil
}

// loadConfig reads the config file if given and applies flag overrides
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			return cfg, err
		}
	}

	if *colorFlag != "" {
		cfg.Color = *colorFlag
	}
	if *debugFlag {
		cfg.Log.Debug = true
		cfg.Log.Level = "debug"
	}
	if *snapshotFlag != "" {
		cfg.World.Snapshot = *snapshotFlag
	}
	if *seedFlag != 0 {
		cfg.World.Seed = *seedFlag
	}
	return cfg, cfg.Validate()
}

// loadWorld restores the snapshot when one exists, otherwise generates a fresh world
func loadWorld(ctx context.Context, st *store.Store, cfg config.Config, log logrus.FieldLogger) (*world.World, error) {
	if st != nil {
		w, err := st.LoadWorld(ctx)
		switch {
		case err == nil:
			log.WithField("regions", w.Len()).Info("world restored from snapshot")
			return w, nil
		case !errors.Is(err, store.ErrNoWorld):
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
	}

	res := worldgen.Generate(worldgen.Config{
		Width:  cfg.World.Width,
		Height: cfg.World.Height,
		Rooms:  cfg.World.Rooms,
		Tries:  cfg.World.Tries,
		Seed:   cfg.World.Seed,
	})
	w := world.New(parameter.DefaultWorldID)
	worldgen.Populate(w, res)
	log.WithFields(logrus.Fields{
		"rooms":   len(res.Rooms),
		"regions": len(res.Regions),
	}).Info("world generated")
	return w, nil
}

// watchConfig forwards modifier lists from config reloads until ctx is done
// Only the newest list matters, so a pending unread list is replaced
func watchConfig(ctx context.Context, path string, out chan []string, log logrus.FieldLogger) {
	err := config.Watch(ctx, path, func(cfg config.Config, err error) {
		if err != nil {
			log.WithError(err).Warn("config reload failed")
			return
		}
		select {
		case <-out:
		default:
		}
		select {
		case out <- cfg.Modifiers:
		case <-ctx.Done():
		}
	})
	if err != nil {
		log.WithError(err).Warn("config watcher stopped")
	}
}
