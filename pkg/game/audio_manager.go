package game

import (
	"bytes"
	"encoding/binary"
	"log"
	"math"

	"github.com/decker502/deepdive/pkg/event"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate 音频上下文采样率
const SampleRate = 48000

// 提示音ID
const (
	SoundOxygenLow  = "SOUND_OXYGEN_LOW"
	SoundDepleted   = "SOUND_OXYGEN_DEPLETED"
	SoundRefill     = "SOUND_REFILL"
	SoundSurface    = "SOUND_SURFACE"
	MusicUnderwater = "MUSIC_UNDERWATER"
)

// toneSpec 合成提示音参数
type toneSpec struct {
	freqs    []float64 // 依次播放的音高（Hz）
	duration float64   // 每个音的时长（秒）
}

var soundSpecs = map[string]toneSpec{
	SoundOxygenLow: {freqs: []float64{880, 660, 880, 660}, duration: 0.12},
	SoundDepleted:  {freqs: []float64{440, 330, 220}, duration: 0.25},
	SoundRefill:    {freqs: []float64{523, 659, 784}, duration: 0.08},
	SoundSurface:   {freqs: []float64{392, 523}, duration: 0.15},
}

// AudioManager 音频管理器
// 职责：
//   - 订阅氧气通知播放对应提示音
//   - 水下循环播放环境低频音
//   - 从 SettingsManager 读取音量与开关
//
// 提示音在创建时合成，不依赖外部音频文件。
// audioContext 为 nil 时只记录播放请求（无头运行与测试）。
type AudioManager struct {
	audioContext    *audio.Context
	settingsManager *SettingsManager
	soundPlayers    map[string]*audio.Player
	ambient         *audio.Player
	playCounts      map[string]int

	bus           *event.Bus
	subscriptions []event.SubscriptionID
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: 音频上下文，可为 nil
//   - sm: 设置管理器，可为 nil（使用默认音量）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		audioContext:    ctx,
		settingsManager: sm,
		soundPlayers:    make(map[string]*audio.Player),
		playCounts:      make(map[string]int),
	}
	if ctx != nil {
		am.preload()
	}
	return am
}

// preload 合成全部提示音与环境音
func (am *AudioManager) preload() {
	for id, spec := range soundSpecs {
		var pcm []byte
		for _, f := range spec.freqs {
			pcm = append(pcm, GenerateTone(f, spec.duration, 0.5)...)
		}
		am.soundPlayers[id] = am.audioContext.NewPlayerFromBytes(pcm)
	}

	hum := GenerateTone(55, 2, 0.15)
	loop := audio.NewInfiniteLoop(bytes.NewReader(hum), int64(len(hum)))
	player, err := am.audioContext.NewPlayer(loop)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to create ambient player: %v", err)
		return
	}
	am.ambient = player
	log.Printf("[AudioManager] Preloaded %d sounds", len(am.soundPlayers))
}

// Attach 订阅事件总线
func (am *AudioManager) Attach(bus *event.Bus) {
	am.Detach()
	if bus == nil {
		return
	}
	am.bus = bus
	am.subscriptions = []event.SubscriptionID{
		bus.Subscribe(event.OxygenLow, func(event.Event) { am.PlaySound(SoundOxygenLow) }),
		bus.Subscribe(event.OxygenDepleted, func(event.Event) { am.PlaySound(SoundDepleted) }),
		bus.Subscribe(event.ReturnCompleted, func(event.Event) { am.PlaySound(SoundSurface) }),
		bus.Subscribe(event.RefillFeedback, func(e event.Event) {
			if e.Active {
				am.PlaySound(SoundRefill)
			}
		}),
		bus.Subscribe(event.SubmersionChanged, func(e event.Event) {
			if e.Active {
				am.PlayAmbient()
			} else {
				am.StopAmbient()
			}
		}),
	}
}

// Detach 取消订阅
func (am *AudioManager) Detach() {
	if am.bus == nil {
		return
	}
	for _, id := range am.subscriptions {
		am.bus.Unsubscribe(id)
	}
	am.subscriptions = nil
	am.bus = nil
}

// DetachFrom 仅取消对指定总线的订阅；已改为订阅其他总线时不做处理
func (am *AudioManager) DetachFrom(bus *event.Bus) {
	if bus == nil || am.bus != bus {
		return
	}
	am.Detach()
}

// PlaySound 播放提示音
//
// 返回：
//   - bool: 是否实际播放（禁用、无音频上下文或未知ID时为 false）
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}
	if _, known := soundSpecs[soundID]; !known {
		log.Printf("[AudioManager] Warning: Sound not found: %s", soundID)
		return false
	}
	am.playCounts[soundID]++

	player := am.soundPlayers[soundID]
	if player == nil {
		return false
	}

	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// PlayCount 返回提示音被请求播放的次数
func (am *AudioManager) PlayCount(soundID string) int {
	return am.playCounts[soundID]
}

// PlayAmbient 开始水下环境音
func (am *AudioManager) PlayAmbient() {
	if am.ambient == nil || am.ambient.IsPlaying() {
		return
	}
	am.ambient.SetVolume(am.getMusicVolume())
	am.ambient.Play()
}

// StopAmbient 停止水下环境音
func (am *AudioManager) StopAmbient() {
	if am.ambient != nil {
		am.ambient.Pause()
	}
}

// getMusicVolume 获取环境音音量设置
func (am *AudioManager) getMusicVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().MusicVolume
	}
	return 0.7
}

// getSoundVolume 获取提示音音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8
}

// GenerateTone 合成一段正弦波 PCM（16 位有符号小端，双声道）
// 首尾各 5ms 线性淡入淡出，避免爆音
func GenerateTone(freq, duration, volume float64) []byte {
	samples := int(duration * SampleRate)
	if samples <= 0 {
		return nil
	}
	fade := int(0.005 * SampleRate)
	buf := make([]byte, samples*4)

	for i := 0; i < samples; i++ {
		env := 1.0
		if i < fade {
			env = float64(i) / float64(fade)
		} else if samples-i < fade {
			env = float64(samples-i) / float64(fade)
		}
		v := math.Sin(2*math.Pi*freq*float64(i)/SampleRate) * volume * env
		s := int16(v * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(s))
	}
	return buf
}
