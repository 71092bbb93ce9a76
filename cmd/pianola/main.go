package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"gioui.org/app"
	"github.com/pianola/pianola"
	"github.com/pianola/pianola/instrument"
	"github.com/pianola/pianola/instrument/gioui"
	"github.com/pianola/pianola/oto"
	"github.com/pianola/pianola/synth"
	"github.com/pianola/pianola/version"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile = flag.String("memprofile", "", "write memory profile to `file`")
var suspended = flag.Bool("suspended", false, "start with the audio suspended until the first key press or click")
var versionFlag = flag.Bool("v", false, "print version")

func main() {
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.Long("pianola"))
		os.Exit(0)
	}
	var f *os.File
	if *cpuprofile != "" {
		var err error
		f, err = os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
	}
	preferences, prefWarning := gioui.MakePreferences()
	bindings, bindWarning := gioui.MakeBindings()
	audioContext, err := oto.NewContext(oto.Options{
		SampleRate:     preferences.Audio.SampleRate,
		BufferSize:     preferences.Audio.BufferSize,
		StartSuspended: *suspended || preferences.Audio.StartSuspended,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	broker := instrument.NewBroker()
	model := instrument.NewModel(broker, audioContext, bindings)
	player := instrument.NewPlayer(broker, synth.New(pianola.DefaultPatch, audioContext.SampleRate()))
	pianoUi := gioui.NewPianoApp(model, preferences)
	pianoUi.Warn(prefWarning)
	pianoUi.Warn(bindWarning)
	audioCloser := audioContext.Play(player.Process)

	go func() {
		pianoUi.Main()
		if err := audioCloser.Close(); err != nil {
			log.Print(err)
		}
		if *cpuprofile != "" {
			pprof.StopCPUProfile()
			f.Close()
		}
		if *memprofile != "" {
			writeMemProfile(*memprofile)
		}
		os.Exit(0)
	}()
	app.Main()
}

func writeMemProfile(path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatal("could not create memory profile: ", err)
	}
	defer f.Close()
	runtime.GC() // get up-to-date statistics
	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Fatal("could not write memory profile: ", err)
	}
}
