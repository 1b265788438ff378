package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/spaceship/spaceship"
)

func main() {
	cfg := spaceship.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	duration := flag.Duration("duration", 10*time.Second, "The total wall-clock duration of the run.")
	fireEvery := flag.Duration("fire-every", 150*time.Millisecond, "Simulated time between presses of the fire key.")
	sweepEvery := flag.Duration("sweep-every", 2*time.Second, "Simulated time between changes of steering direction.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if *fireEvery <= 0 || *sweepEvery <= 0 {
		log.Fatal("-fire-every and -sweep-every must be positive")
	}

	log.Println("Starting spaceship soak run...")

	script := &pilot{fireEvery: *fireEvery, sweepEvery: *sweepEvery}
	world := spaceship.NewWorld(cfg, script)
	dt := 1 / float64(cfg.TPS)

	report := &Report{
		Duration:       *duration,
		TPS:            cfg.TPS,
		FireEvery:      *fireEvery,
		SweepEvery:     *sweepEvery,
		CullBullets:    cfg.CullBullets,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s at %d ticks per simulated second...\n", *duration, cfg.TPS)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			script.advance(dt)

			updateStart := time.Now()
			world.Step(dt)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

			report.PeakBullets = max(report.PeakBullets, world.BulletCount())
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.SimulatedTime = time.Duration(float64(report.TotalUpdates) * dt * float64(time.Second))
	report.UpdateTime.Finalize()
	report.FinalBullets = world.BulletCount()
	report.FirePresses = script.presses
	if t := world.PlayerTransform(); t != nil {
		report.PlayerX, report.PlayerY = t.Translation.X(), t.Translation.Y()
	}
	report.Systems = world.Scheduler.GetStats().Systems
	report.Storage = world.Storage.CollectStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// pilot is the scripted player: it taps fire every fireEvery and swings
// between left and right every sweepEvery, climbing on odd sweeps.
type pilot struct {
	fireEvery  time.Duration
	sweepEvery time.Duration

	now     time.Duration
	keys    []ebiten.Key
	firing  bool
	presses int
}

func (p *pilot) advance(dt float64) {
	p.now += time.Duration(dt * float64(time.Second))

	p.keys = p.keys[:0]
	sweep := p.now / p.sweepEvery
	if sweep%2 == 0 {
		p.keys = append(p.keys, ebiten.KeyD)
	} else {
		p.keys = append(p.keys, ebiten.KeyA, ebiten.KeyW)
	}

	// Fire is held for the first half of each period so every period has
	// exactly one fresh press.
	firing := p.now%p.fireEvery < p.fireEvery/2
	if firing {
		p.keys = append(p.keys, ebiten.KeySpace)
		if !p.firing {
			p.presses++
		}
	}
	p.firing = firing
}

func (p *pilot) AppendPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return append(keys, p.keys...)
}
