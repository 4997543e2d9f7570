//go:build darwin

package cue

import (
	"sync"
	"sync/atomic"

	"github.com/gen2brain/malgo"

	"autotyper/log"
)

var (
	malgoCtx  *malgo.AllocatedContext
	device    *malgo.Device
	cues      map[Kind][]byte
	soundOnce sync.Once

	// Playback state - accessed atomically from callback
	playSamples atomic.Pointer[[]byte]
	playPos     atomic.Uint32
	playMu      sync.Mutex
)

func initDevice() error {
	config := malgo.DefaultDeviceConfig(malgo.Playback)
	config.Playback.Format = malgo.FormatS16
	config.Playback.Channels = 1
	config.SampleRate = sampleRate

	callbacks := malgo.DeviceCallbacks{
		Data: dataCallback,
	}

	var err error
	device, err = malgo.InitDevice(malgoCtx.Context, config, callbacks)
	return err
}

func initSound() {
	var err error
	malgoCtx, err = malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		log.Errorf("malgo init error: %v", err)
		return
	}

	cues = map[Kind][]byte{
		Start:  pcm16(samplesFor(Start, 0.03)),
		Finish: pcm16(samplesFor(Finish, 0.05)),
		Cancel: pcm16(samplesFor(Cancel, 0)),
		Error:  pcm16(samplesFor(Error, 0)),
	}

	if err := initDevice(); err != nil {
		log.Errorf("malgo device error: %v", err)
		malgoCtx.Uninit()
		malgoCtx = nil
	}
}

func dataCallback(pOutput, _ []byte, frameCount uint32) {
	samples := playSamples.Load()
	if samples == nil || len(*samples) == 0 {
		clear(pOutput)
		return
	}

	pos := playPos.Load()
	total := uint32(len(*samples))
	bytesToWrite := frameCount * 2
	remaining := total - pos

	if remaining == 0 {
		playSamples.Store(nil)
		clear(pOutput)
		return
	}

	bytesToWrite = min(bytesToWrite, remaining)
	copy(pOutput[:bytesToWrite], (*samples)[pos:pos+bytesToWrite])
	playPos.Store(pos + bytesToWrite)

	// Zero-fill remainder
	clear(pOutput[bytesToWrite : frameCount*2])
}

func playBytes(samples []byte) {
	if malgoCtx == nil || len(samples) == 0 {
		return
	}

	playMu.Lock()
	defer playMu.Unlock()

	if device == nil {
		return
	}

	// Stop device first to ensure clean state (no-op if not running)
	device.Stop()

	playPos.Store(0)
	playSamples.Store(&samples)

	if err := device.Start(); err != nil {
		// Try recreating device (handles macOS sleep/wake)
		device.Uninit()
		if err := initDevice(); err != nil {
			playSamples.Store(nil)
			return
		}
		if err := device.Start(); err != nil {
			playSamples.Store(nil)
			return
		}
	}
}

func Init() {
	soundOnce.Do(initSound)
}

func play(k Kind) {
	soundOnce.Do(initSound)
	playBytes(cues[k])
}
