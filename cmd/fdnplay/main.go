// Command fdnplay plays the FDN reverb live through the default audio
// device.
//
// The dry input is a looped WAV file, a click train or noise bursts. A control
// loop rescans the flag-set panel every 4 ms, optionally sweeping the
// mod knob, and publishes it to the audio callback without locks.
//
// Usage:
//
//	fdnplay [flags]
//
// Examples:
//
//	fdnplay -mode shimmer -decay 0.8
//	fdnplay -mode massive -decay 1 -sweep 0.05 -seconds 30
//	fdnplay -in loop.wav -mode studio -dry 0.5
//	fdnplay -burst 0.05 -click 1.5 -mode shimmer
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	ossignal "os/signal"
	"strings"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-fdn/dsp/core"
	"github.com/cwbudde/algo-fdn/dsp/signal"
	"github.com/cwbudde/algo-fdn/internal/host"
	"github.com/cwbudde/algo-fdn/internal/wavio"
)

const controlInterval = 4 * time.Millisecond

type options struct {
	in         string
	mode       host.EngineMode
	sampleRate int
	seconds    float64
	click      float64
	burst      float64
	sweepHz    float64
	gain       float64
	keys       bool
	controls   host.Controls
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := play(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("fdnplay", flag.ContinueOnError)

	in := fs.String("in", "", "WAV or MP3 file to loop as input (default: click train)")
	mode := fs.String("mode", "studio", "engine mode: studio, shimmer or massive")
	sampleRate := fs.Int("sr", 48000, "output sample rate")
	seconds := fs.Float64("seconds", 0, "stop after this many seconds (0: until interrupted)")
	click := fs.Float64("click", 2, "click or burst period in seconds")
	burst := fs.Float64("burst", 0, "noise burst length in seconds (0: clicks)")
	sweep := fs.Float64("sweep", 0, "sweep the mod knob at this rate in Hz (0: fixed)")
	gain := fs.Float64("gain", 0.5, "output gain")
	keys := fs.Bool("keys", true, "adjust knobs from the keyboard when stdin is a terminal")
	timeKnob := fs.Float64("time", 0.3, "time knob in [0,1]")
	modKnob := fs.Float64("mod", 0, "mod knob in [0,1]")
	decayKnob := fs.Float64("decay", 0.6, "decay knob in [0,1]")
	dry := fs.Float64("dry", 0, "dry mix in [0,1]")
	lineGain := fs.Float64("line", 0.5, "gain of every line in [0,1]")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fdnplay [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Plays the FDN reverb live through the default audio device.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	m, err := host.ParseEngineMode(strings.ToLower(*mode))
	if err != nil {
		return options{}, err
	}
	if *sampleRate <= 0 {
		return options{}, fmt.Errorf("-sr must be > 0: %d", *sampleRate)
	}
	if *click <= 0 {
		return options{}, fmt.Errorf("-click must be > 0: %g", *click)
	}
	if *burst < 0 || *burst > *click {
		return options{}, fmt.Errorf("-burst must be in [0, %g]: %g", *click, *burst)
	}

	o := options{
		in:         *in,
		mode:       m,
		sampleRate: *sampleRate,
		seconds:    *seconds,
		click:      *click,
		burst:      *burst,
		sweepHz:    *sweep,
		gain:       *gain,
		keys:       *keys,
		controls:   host.Controls{TimeKnob: *timeKnob, ModKnob: *modKnob, DecayKnob: *decayKnob},
	}
	o.controls.Sliders[0] = *dry
	for k := 1; k < host.NumSliders; k++ {
		o.controls.Sliders[k] = *lineGain
	}

	return o, nil
}

func play(ctx context.Context, o options) error {
	src, sampleRate, err := openSource(o)
	if err != nil {
		return err
	}

	cfg := host.DefaultConfig()
	cfg.SampleRate = float64(sampleRate)

	engine, err := host.NewEngine(o.mode, cfg)
	if err != nil {
		return err
	}
	runner, err := host.NewRunner(engine, o.mode, cfg.BlockSize)
	if err != nil {
		return err
	}
	runner.Update(&o.controls)

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("audio device: %w", err)
	}
	<-ready

	st := newStream(runner, src, o.gain)
	player := otoCtx.NewPlayer(st)
	defer player.Close()
	player.Play()

	fmt.Fprintf(os.Stderr, "playing %s at %d Hz, Ctrl-C to stop\n", o.mode, sampleRate)

	if o.seconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(o.seconds*float64(time.Second)))
		defer cancel()
	}

	var kb *keyboard
	if o.keys {
		if kb, err = startKeyboard(); err != nil {
			return err
		}
		defer kb.Stop()
		if kb != nil {
			fmt.Fprintf(os.Stderr, "%s\r\n", keyHelp)
		}
	}

	controlLoop(ctx, runner, o, kb.Keys())

	fmt.Fprintf(os.Stderr, "\nstopped after %d frames\n", st.Frames())
	return nil
}

// controlLoop rescans the panel every controlInterval until ctx is done or
// a quit key arrives on keys.
func controlLoop(ctx context.Context, runner *host.Runner, o options, keys <-chan byte) {
	ticker := time.NewTicker(controlInterval)
	defer ticker.Stop()

	start := time.Now()
	c := o.controls
	for {
		select {
		case <-ctx.Done():
			return
		case key, ok := <-keys:
			if !ok || applyKey(&c, key) {
				return
			}
			fmt.Fprint(os.Stderr, status(&c))
		case now := <-ticker.C:
			if o.sweepHz > 0 {
				c.ModKnob = sweepValue(now.Sub(start), o.sweepHz)
			}
			runner.Update(&c)
		}
	}
}

// sweepValue is a raised sine in [0, 1] at hz.
func sweepValue(elapsed time.Duration, hz float64) float64 {
	return 0.5 - 0.5*math.Cos(2*math.Pi*hz*elapsed.Seconds())
}

func openSource(o options) (signal.Source, int, error) {
	if o.in != "" {
		s, err := wavio.Read(o.in)
		if err != nil {
			return nil, 0, err
		}
		src, err := signal.NewLoop(s.Left, s.Right)
		return src, s.SampleRate, err
	}

	procOpts := []core.ProcessorOption{core.WithSampleRate(float64(o.sampleRate))}
	if o.burst > 0 {
		src, err := signal.NewNoiseBurst(o.click, o.burst, procOpts, signal.WithAmplitude(0.5))
		return src, o.sampleRate, err
	}
	src, err := signal.NewImpulseTrain(o.click, procOpts)
	return src, o.sampleRate, err
}
