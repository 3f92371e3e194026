package main

import (
	"flag"
	"os"
	"sync"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/ascent"
	"github.com/oomph-ac/ascent/actor"
	"github.com/oomph-ac/ascent/check"
	"github.com/oomph-ac/ascent/geometry"
	"github.com/oomph-ac/ascent/settings"
	"github.com/oomph-ac/ascent/violation"
	"github.com/oomph-ac/ascent/worker"
	"github.com/sirupsen/logrus"
)

// The following program replays a recorded movement trace against a described world and logs every
// decision the detector makes on it.
func main() {
	settingsPath := flag.String("settings", "settings.toml", "path to the settings file, created with defaults if missing")
	worldPath := flag.String("world", "world.yaml", "path to the world file")
	tracePath := flag.String("trace", "trace.yaml", "path to the trace file")
	stats := flag.String("stats", "", "address to serve runtime statistics on, e.g. localhost:8080")
	debug := flag.Bool("debug", false, "log debug information")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	if *stats != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(*stats))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	if _, err := os.Stat(*settingsPath); os.IsNotExist(err) {
		if err := settings.SaveDefault(*settingsPath); err != nil {
			log.Fatalf("unable to create default settings: %v", err)
		}
		log.Infof("created default settings at %s", *settingsPath)
	}
	s, err := settings.Load(*settingsPath)
	if err != nil {
		log.Fatalf("unable to load settings: %v", err)
	}

	grid, err := LoadWorld(*worldPath)
	if err != nil {
		log.Fatalf("unable to load world: %v", err)
	}
	trace, err := LoadTrace(*tracePath)
	if err != nil {
		log.Fatalf("unable to load trace: %v", err)
	}

	var removals sync.WaitGroup
	remove := worker.Scheduler(func(target actor.Identity, d check.Descriptor) {
		defer removals.Done()
		log.Warnf("%s was removed from the server for usage of third-party modifications (%s).", target, d.Name)
	})
	scheduler := violation.SchedulerFunc(func(target actor.Identity, d check.Descriptor) {
		removals.Add(1)
		remove.ScheduleRemoval(target, d)
	})

	d, err := ascent.New(log, &s, geometry.New(grid), scheduler)
	if err != nil {
		log.Fatalf("unable to create detector: %v", err)
	}
	sum, err := Replay(log, d, trace)
	if err != nil {
		log.Fatalf("replay failed: %v", err)
	}
	removals.Wait()
	log.Infof("replayed %d ticks: %d flags, %d cancelled", sum.Ticks, sum.Flags, sum.Cancelled)
}
