package emu

import "math"

const (
	sampleRate    = 48000
	psgBufferSize = 1024
	psgGain       = 3796.0
	lpfCutoffHz   = 7200.0
)

// lpfAlpha is the smoothing factor for the first-order RC low-pass filter.
// Derived from: alpha = dt / (RC + dt) where RC = 1/(2*pi*fc).
var lpfAlpha = 1.0 / (float64(sampleRate)/(2*math.Pi*lpfCutoffHz) + 1)

// mixAudio drains the PSG output buffer into the emulator's stereo
// audio buffer. The PSG is mono; each sample lands on both channels.
func (e *Emulator) mixAudio() {
	psgBuf, psgCount := e.psg.GetBuffer()

	for i := 0; i < psgCount; i++ {
		s := int16(clampInt32(int32(psgBuf[i]), -32768, 32767))
		e.audioBuffer = append(e.audioBuffer, s, s)
	}

	e.applyLowPass()
}

// applyLowPass applies a first-order RC low-pass filter to the audio
// buffer. This stands in for the output RC network on the VDU-1 board
// (fc ~= 7.2 kHz, 20 dB/decade rolloff). Applied per stereo channel
// with state persisting across frames.
func (e *Emulator) applyLowPass() {
	for i := 0; i < len(e.audioBuffer); i += 2 {
		inL := float64(e.audioBuffer[i])
		inR := float64(e.audioBuffer[i+1])
		e.filterPrevL = lpfAlpha*inL + (1-lpfAlpha)*e.filterPrevL
		e.filterPrevR = lpfAlpha*inR + (1-lpfAlpha)*e.filterPrevR
		e.audioBuffer[i] = int16(math.Round(e.filterPrevL))
		e.audioBuffer[i+1] = int16(math.Round(e.filterPrevR))
	}
}

// GetAudioSamples returns accumulated audio samples as 16-bit stereo PCM.
func (e *Emulator) GetAudioSamples() []int16 {
	return e.audioBuffer
}

// clampInt32 clamps v to [min, max].
func clampInt32(v, min, max int32) int32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
