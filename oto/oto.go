package oto

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/pianola/pianola"
)

type (
	// OtoContext is the audio output of the desktop. oto allows only one
	// context per process and it is never closed; create it once in main.
	OtoContext struct {
		ctx        *oto.Context
		sampleRate int
		suspended  atomic.Bool
		mu         sync.Mutex // serializes Suspend and Resume
	}

	Options struct {
		SampleRate int
		// BufferSize is the latency oto aims for; zero means the default of
		// the platform.
		BufferSize time.Duration
		// StartSuspended creates the context suspended, so that no sound is
		// produced before the first user gesture resumes it.
		StartSuspended bool
	}

	OtoOutput struct {
		player *oto.Player
		reader *SourceReader
		once   sync.Once
		done   chan struct{}
	}
)

const DefaultSampleRate = 44100

// NewContext creates the oto context and waits until it is ready.
func NewContext(opts Options) (*OtoContext, error) {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   opts.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   opts.BufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	c := &OtoContext{ctx: ctx, sampleRate: opts.SampleRate}
	if opts.StartSuspended {
		if err := c.Suspend(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *OtoContext) SampleRate() int { return c.sampleRate }

// Play starts pulling audio from the source. The source is called from the
// audio goroutine of oto, with as many frames as oto wants at a time.
func (c *OtoContext) Play(source pianola.AudioSource) pianola.CloserWaiter {
	r := NewSourceReader(source)
	p := c.ctx.NewPlayer(r)
	p.Play()
	return &OtoOutput{player: p, reader: r, done: make(chan struct{})}
}

func (c *OtoContext) Suspend() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.suspended.Load() {
		return nil
	}
	if err := c.ctx.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	c.suspended.Store(true)
	return nil
}

func (c *OtoContext) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.suspended.Load() {
		return nil
	}
	if err := c.ctx.Resume(); err != nil {
		return fmt.Errorf("cannot resume oto context: %w", err)
	}
	if err := c.ctx.Err(); err != nil {
		return fmt.Errorf("oto context failed: %w", err)
	}
	c.suspended.Store(false)
	return nil
}

func (c *OtoContext) Suspended() bool {
	return c.suspended.Load()
}

// Close stops the playback. The source is not called after Close returns.
func (o *OtoOutput) Close() error {
	var err error
	o.once.Do(func() {
		if err = o.player.Close(); err != nil {
			err = fmt.Errorf("cannot close oto player: %w", err)
		}
		if rerr := o.reader.Err(); rerr != nil {
			log.Printf("audio source failed: %v", rerr)
		}
		close(o.done)
	})
	return err
}

// Wait blocks until the output is closed.
func (o *OtoOutput) Wait() {
	<-o.done
}
