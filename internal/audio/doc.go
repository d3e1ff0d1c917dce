// Package audio plays a short chime when a banner is presented. Sounds
// are decoded with beep (WAV, OGG and MP3) and cached in memory.
package audio
