package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/inappbanner/internal/config"
)

func TestChime_Disabled(t *testing.T) {
	c := NewChime(config.AudioConfig{Enabled: false, Volume: 80, Sound: "/tmp/ding.wav"}, nil)

	assert.False(t, c.Enabled())
	assert.NoError(t, c.Start())
	assert.NoError(t, c.Play())
	c.Stop()
}

func TestChime_NoSound(t *testing.T) {
	c := NewChime(config.AudioConfig{Enabled: true, Volume: 80}, nil)
	assert.False(t, c.Enabled())
}

func TestChime_MissingFile(t *testing.T) {
	c := NewChime(config.AudioConfig{
		Enabled: true,
		Volume:  80,
		Sound:   filepath.Join(t.TempDir(), "missing.wav"),
	}, nil)

	assert.False(t, c.Enabled())
	assert.NoError(t, c.Play())
}

func TestChime_VolumeFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ding.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0644))

	c := NewChime(config.AudioConfig{Enabled: true, Volume: 25, Sound: path}, nil)
	require.True(t, c.Enabled())
	assert.InDelta(t, 0.25, c.player.Volume(), 1e-9)
}

func TestPlayer_SetVolumeClamps(t *testing.T) {
	p := NewPlayer(nil)

	p.SetVolume(1.5)
	assert.Equal(t, 1.0, p.Volume())
	p.SetVolume(-0.2)
	assert.Equal(t, 0.0, p.Volume())
	p.SetVolume(0.4)
	assert.Equal(t, 0.4, p.Volume())
}

func TestPlayer_EmptyPathIsNoop(t *testing.T) {
	assert.NoError(t, NewPlayer(nil).Play(""))
}

func TestDecode_UnsupportedFormat(t *testing.T) {
	_, _, err := decode("/tmp/sound.flac")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestDecode_MissingFile(t *testing.T) {
	_, _, err := decode(filepath.Join(t.TempDir(), "missing.ogg"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDecode_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wave file"), 0644))

	_, _, err := decode(path)
	assert.ErrorContains(t, err, "failed to decode sound")
}

func TestGain(t *testing.T) {
	assert.Equal(t, 0.0, gain(1))
	assert.InDelta(t, -1.0, gain(0.5), 1e-9)
	assert.InDelta(t, -2.0, gain(0.25), 1e-9)
	assert.Equal(t, -10.0, gain(0))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "sounds/ding.wav"), expandPath("~/sounds/ding.wav"))
	assert.Equal(t, "/abs/ding.wav", expandPath("/abs/ding.wav"))
	assert.Equal(t, "", expandPath(""))
}
