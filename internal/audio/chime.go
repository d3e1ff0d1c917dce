package audio

import (
	"log/slog"
	"os"

	"github.com/jmylchreest/inappbanner/internal/config"
)

// Chime plays the configured sound when a banner is presented.
type Chime struct {
	logger *slog.Logger
	player *Player
	path   string
}

// NewChime creates a chime from the audio config. A disabled config or a
// missing sound file yields a chime that stays silent.
func NewChime(cfg config.AudioConfig, logger *slog.Logger) *Chime {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Chime{logger: logger}
	if !cfg.Enabled || cfg.Sound == "" {
		return c
	}

	path := expandPath(cfg.Sound)
	if _, err := os.Stat(path); err != nil {
		logger.Warn("sound file not found, chime disabled", "path", path)
		return c
	}

	c.path = path
	c.player = NewPlayer(logger)
	c.player.SetVolume(float64(cfg.Volume) / 100.0)
	return c
}

// Enabled reports whether the chime will make a sound.
func (c *Chime) Enabled() bool {
	return c.player != nil
}

// Start decodes the sound ahead of the first banner.
func (c *Chime) Start() error {
	if !c.Enabled() {
		return nil
	}
	return c.player.Preload(c.path)
}

// Play plays the chime. It returns immediately.
func (c *Chime) Play() error {
	if !c.Enabled() {
		return nil
	}
	return c.player.Play(c.path)
}

// Stop releases the speaker.
func (c *Chime) Stop() {
	if c.player != nil {
		c.player.Close()
	}
}
