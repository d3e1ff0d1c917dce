package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// ErrUnsupportedFormat is returned for files beep cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Player decodes sound files and plays them on the default speaker.
type Player struct {
	mu     sync.Mutex
	logger *slog.Logger

	volume      float64 // 0.0 to 1.0
	initialized bool
	sampleRate  beep.SampleRate

	// Decoded sounds keyed by expanded path
	cache map[string]*beep.Buffer
}

// NewPlayer creates a new audio player.
func NewPlayer(logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}

	return &Player{
		logger:     logger,
		volume:     1.0,
		sampleRate: beep.SampleRate(44100),
		cache:      make(map[string]*beep.Buffer),
	}
}

// SetVolume sets the playback volume, clamped to 0.0-1.0.
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = min(max(volume, 0), 1)
}

// Volume returns the current volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Preload decodes a sound file into the cache.
func (p *Player) Preload(path string) error {
	_, err := p.buffer(expandPath(path))
	return err
}

// Play plays a sound file without waiting for it to finish.
func (p *Player) Play(path string) error {
	if path == "" {
		return nil
	}

	buffer, err := p.buffer(expandPath(path))
	if err != nil {
		return err
	}

	p.mu.Lock()
	volume := p.volume
	sampleRate := p.sampleRate
	p.mu.Unlock()

	var streamer beep.Streamer = buffer.Streamer(0, buffer.Len())
	if rate := buffer.Format().SampleRate; rate != sampleRate {
		streamer = beep.Resample(4, rate, sampleRate, streamer)
	}
	if volume < 1 {
		streamer = &effects.Volume{
			Streamer: streamer,
			Base:     2,
			Volume:   gain(volume),
			Silent:   volume == 0,
		}
	}

	speaker.Play(streamer)
	return nil
}

// buffer returns the cached sound at path, decoding it on first use.
func (p *Player) buffer(path string) (*beep.Buffer, error) {
	p.mu.Lock()
	cached, ok := p.cache[path]
	p.mu.Unlock()
	if ok {
		return cached, nil
	}

	streamer, format, err := decode(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = streamer.Close() }()

	if err := p.ensureInitialized(format.SampleRate); err != nil {
		return nil, err
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)

	p.mu.Lock()
	p.cache[path] = buffer
	p.mu.Unlock()

	p.logger.Debug("loaded sound", "path", path, "sample_rate", format.SampleRate)
	return buffer, nil
}

// ensureInitialized initializes the speaker at the first sound's rate.
func (p *Player) ensureInitialized(sampleRate beep.SampleRate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	// 100ms keeps latency low without underruns
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	p.sampleRate = sampleRate
	p.initialized = true
	return nil
}

// Close stops playback and drops cached sounds.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
	p.cache = make(map[string]*beep.Buffer)
	p.logger.Debug("audio player closed")
}

// decode opens and decodes a sound file by extension. The caller closes
// the returned streamer, which also closes the file.
func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	var decoder func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		decoder = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) }
	case ".ogg":
		decoder = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return vorbis.Decode(f) }
	case ".mp3":
		decoder = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) }
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("failed to open sound file: %w", err)
	}

	streamer, format, err := decoder(f)
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to decode sound: %w", err)
	}
	return streamer, format, nil
}

// gain converts a linear volume to a base-2 exponent for effects.Volume.
func gain(volume float64) float64 {
	if volume <= 0 {
		return -10 // Silent is set separately
	}
	return math.Log2(volume)
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
