// Package audio opens the single microphone stream the keyword listener reads.
package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// DeviceKind classifies an input device by name.
type DeviceKind string

const (
	KindMicrophone DeviceKind = "microphone"
	KindLoopback   DeviceKind = "loopback"
	KindUnknown    DeviceKind = ""
)

var (
	loopbackKeywords   = []string{"blackhole", "vb-cable", "loopback", "monitor", "soundflower"}
	microphoneKeywords = []string{"microphone", "input", "mic", "built-in"}
	preferredKeywords  = []string{"macbook", "built-in"}
)

// ErrNoInputDevice is returned when no usable microphone is present.
var ErrNoInputDevice = errors.New("audio: no usable input device")

// Options selects and configures the capture stream.
type Options struct {
	SampleRate      int
	FramesPerBuffer int      // samples per Read, one chunk
	Excluded        []string // case-insensitive name fragments to skip
}

// Device describes an input device for listings.
type Device struct {
	Name              string
	Kind              DeviceKind
	InputChannels     int
	DefaultSampleRate float64
}

// Microphone is an open, started mono input stream.
type Microphone struct {
	stream    *portaudio.Stream
	buf       []float32
	device    string
	closeOnce sync.Once
	closeErr  error
}

// Open initializes PortAudio, picks the best microphone and starts a mono
// float32 stream at opts.SampleRate. The caller must Close it.
func Open(opts Options) (*Microphone, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audio: initialize: %w", err)
	}

	dev, err := selectDevice(opts.Excluded)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, err
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: 1,
			Latency:  dev.DefaultLowInputLatency,
		},
		SampleRate:      float64(opts.SampleRate),
		FramesPerBuffer: opts.FramesPerBuffer,
	}

	buf := make([]float32, opts.FramesPerBuffer)
	stream, err := portaudio.OpenStream(params, buf)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("audio: open %q: %w", dev.Name, err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("audio: start %q: %w", dev.Name, err)
	}

	slog.Info("started audio capture", "device", dev.Name, "sample_rate", opts.SampleRate, "frames", opts.FramesPerBuffer)
	return &Microphone{stream: stream, buf: buf, device: dev.Name}, nil
}

// Read blocks until one chunk is captured and returns a copy of it.
func (m *Microphone) Read() ([]float32, error) {
	if err := m.stream.Read(); err != nil {
		// overflow only means samples were dropped; the chunk is still valid
		if !errors.Is(err, portaudio.InputOverflowed) {
			return nil, fmt.Errorf("audio: read %q: %w", m.device, err)
		}
		slog.Debug("audio input overflowed", "device", m.device)
	}
	return append([]float32(nil), m.buf...), nil
}

// Device returns the name of the open device.
func (m *Microphone) Device() string { return m.device }

// Close stops the stream and releases PortAudio. It is safe to call twice.
func (m *Microphone) Close() error {
	m.closeOnce.Do(func() {
		_ = m.stream.Stop()
		m.closeErr = errors.Join(m.stream.Close(), portaudio.Terminate())
	})
	return m.closeErr
}

// ListDevices returns every input-capable device.
func ListDevices() ([]Device, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audio: initialize: %w", err)
	}
	defer portaudio.Terminate()

	infos, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("audio: list devices: %w", err)
	}
	var out []Device
	for _, d := range infos {
		if d.MaxInputChannels < 1 {
			continue
		}
		out = append(out, Device{
			Name:              d.Name,
			Kind:              classifyDevice(d.Name),
			InputChannels:     d.MaxInputChannels,
			DefaultSampleRate: d.DefaultSampleRate,
		})
	}
	return out, nil
}

func selectDevice(excluded []string) (*portaudio.DeviceInfo, error) {
	infos, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("audio: list devices: %w", err)
	}
	// the default device is only a fallback; lookup errors leave it nil
	def, _ := portaudio.DefaultInputDevice()
	return pickDevice(infos, def, excluded)
}

// pickDevice prefers a named microphone (built-in first), then the system
// default input, then any other non-loopback input.
func pickDevice(infos []*portaudio.DeviceInfo, def *portaudio.DeviceInfo, excluded []string) (*portaudio.DeviceInfo, error) {
	usable := func(d *portaudio.DeviceInfo) bool {
		return d != nil && d.MaxInputChannels >= 1 && !isExcluded(d.Name, excluded) && classifyDevice(d.Name) != KindLoopback
	}

	var mic, other *portaudio.DeviceInfo
	for _, d := range infos {
		if !usable(d) {
			continue
		}
		if classifyDevice(d.Name) == KindMicrophone {
			if mic == nil || preferDevice(d.Name, mic.Name) {
				mic = d
			}
		} else if other == nil {
			other = d
		}
	}

	switch {
	case mic != nil:
		return mic, nil
	case usable(def):
		return def, nil
	case other != nil:
		return other, nil
	}
	return nil, ErrNoInputDevice
}

func classifyDevice(name string) DeviceKind {
	for _, kw := range loopbackKeywords {
		if containsIgnoreCase(name, kw) {
			return KindLoopback
		}
	}
	for _, kw := range microphoneKeywords {
		if containsIgnoreCase(name, kw) {
			return KindMicrophone
		}
	}
	return KindUnknown
}

func isExcluded(name string, excluded []string) bool {
	for _, ex := range excluded {
		if containsIgnoreCase(name, ex) {
			return true
		}
	}
	return false
}

// preferDevice reports whether name beats current: built-in mics win over
// external ones.
func preferDevice(name, current string) bool {
	for _, p := range preferredKeywords {
		if containsIgnoreCase(name, p) && !containsIgnoreCase(current, p) {
			return true
		}
	}
	return false
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
