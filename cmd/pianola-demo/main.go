package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pianola/pianola"
	"github.com/pianola/pianola/instrument"
	"github.com/pianola/pianola/oto"
	"github.com/pianola/pianola/synth"
	"github.com/pianola/pianola/version"
	"gitlab.com/gomidi/midi/v2"
)

// step plays the notes together, holding them for the given number of beats.
type step struct {
	notes []uint8
	beats float64
}

var phrase = []step{
	{[]uint8{48}, 1},
	{[]uint8{52}, 1},
	{[]uint8{55}, 1},
	{[]uint8{60}, 1},
	{[]uint8{55}, 1},
	{[]uint8{52}, 1},
	{[]uint8{48, 52, 55}, 4},
}

func main() {
	bpm := flag.Float64("bpm", 120, "tempo of the phrase in beats per minute")
	velocity := flag.Uint("velocity", 100, "MIDI velocity of the notes, 1-127")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.Long("pianola-demo"))
		os.Exit(0)
	}
	if *bpm <= 0 || *velocity < 1 || *velocity > 127 {
		flag.Usage()
		os.Exit(2)
	}
	audioContext, err := oto.NewContext(oto.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not acquire oto AudioContext: %v\n", err)
		os.Exit(1)
	}
	broker := instrument.NewBroker()
	model := instrument.NewModel(broker, audioContext, pianola.DefaultBindings())
	player := instrument.NewPlayer(broker, synth.New(pianola.DefaultPatch, audioContext.SampleRate()))
	output := audioContext.Play(player.Process)

	beat := time.Duration(float64(time.Minute) / *bpm)
	d := model.Dispatcher()
	for _, s := range phrase {
		for _, n := range s.notes {
			d.MIDI(midi.NoteOn(0, n, uint8(*velocity)))
		}
		wait(model, time.Duration(s.beats*float64(beat)))
		for _, n := range s.notes {
			d.MIDI(midi.NoteOff(0, n))
		}
	}
	wait(model, pianola.DefaultPatch.Envelope.Release+100*time.Millisecond)
	model.Close()
	wait(model, 50*time.Millisecond)
	if err := output.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, a := range model.Alerts().Iterate {
		fmt.Fprintln(os.Stderr, a.Message)
	}
}

// wait folds the messages of the player into the model for the duration.
func wait(model *instrument.Model, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		select {
		case msg := <-model.Broker().ToModel:
			model.ProcessMsg(msg)
		case <-timer.C:
			return
		}
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "pianola-demo plays a short phrase on the piano through the MIDI input path.\nUsage: %s [flags]\n", os.Args[0])
	flag.PrintDefaults()
}
