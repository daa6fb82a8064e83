package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// 花园音效ID
const (
	SoundInteract = "interact" // E 键查看花朵：清脆的“叮”
	SoundWater    = "water"    // 空格浇水：下滑的“咕噜”
)

// SampleRate 音频上下文采样率
const SampleRate = 48000

// Tone 一段合成音效的参数
type Tone struct {
	StartFreq float64 // 起始频率（Hz）
	EndFreq   float64 // 结束频率（Hz），与起始频率之间线性滑动
	Duration  float64 // 时长（秒）
	Volume    float64 // 峰值振幅 0.0 ~ 1.0
	Decay     float64 // 指数衰减速度，越大结束得越快
}

// DefaultTones 花园使用的音效
var DefaultTones = map[string]Tone{
	SoundInteract: {StartFreq: 880, EndFreq: 1320, Duration: 0.12, Volume: 0.35, Decay: 18},
	SoundWater:    {StartFreq: 620, EndFreq: 260, Duration: 0.22, Volume: 0.3, Decay: 10},
}

// AudioManager 音频管理器
// 职责：
//   - 管理花园中所有音效的播放
//   - 实现音量与静音控制（从 SettingsManager 读取设置）
//
// 音效在启动时由 SynthesizeTone 合成为 PCM，不依赖音频文件。
type AudioManager struct {
	audioContext    *audio.Context
	settingsManager *SettingsManager         // 设置管理器（用于读取音量设置，可为 nil）
	pcm             map[string][]byte        // 音效ID -> 合成好的 PCM
	soundPlayers    map[string]*audio.Player // 音效播放器缓存（音效ID -> 播放器）
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: 全局音频上下文，可为 nil（静音模式，例如测试或无声卡环境）
//   - sm: SettingsManager 实例（可为 nil）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		audioContext:    ctx,
		settingsManager: sm,
		pcm:             make(map[string][]byte),
		soundPlayers:    make(map[string]*audio.Player),
	}
	for id, tone := range DefaultTones {
		am.pcm[id] = SynthesizeTone(tone, SampleRate)
	}
	return am
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否成功播放（音效关闭、没有音频上下文或音效不存在时返回 false）
func (am *AudioManager) PlaySound(soundID string) bool {
	if !am.SoundEnabled() {
		return false
	}

	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(am.GetSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()

	return true
}

// SoundEnabled 音效是否开启
func (am *AudioManager) SoundEnabled() bool {
	if am.settingsManager == nil {
		return true
	}
	return am.settingsManager.GetSettings().SoundEnabled
}

// ToggleMute 切换音效开关并持久化，返回切换后是否开启
func (am *AudioManager) ToggleMute() bool {
	if am.settingsManager == nil {
		return true
	}
	enabled := !am.settingsManager.GetSettings().SoundEnabled
	am.settingsManager.SetSoundEnabled(enabled)
	if err := am.settingsManager.Save(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to save mute state: %v", err)
	}
	log.Printf("[AudioManager] Sound enabled: %v", enabled)
	return enabled
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager == nil {
		return DefaultSettings().SoundVolume
	}
	return am.settingsManager.GetSettings().SoundVolume
}

// getSoundPlayer 获取或创建音效播放器
func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	if player, exists := am.soundPlayers[soundID]; exists {
		return player
	}
	if am.audioContext == nil {
		return nil
	}

	data, ok := am.pcm[soundID]
	if !ok {
		log.Printf("[AudioManager] Warning: Sound not found: %s", soundID)
		return nil
	}

	player := am.audioContext.NewPlayerFromBytes(data)
	am.soundPlayers[soundID] = player
	return player
}

// SynthesizeTone 合成一段 16 位小端双声道 PCM
//
// 频率从 StartFreq 线性滑到 EndFreq，振幅按 exp(-Decay·t) 衰减，
// 开头 5ms 线性淡入以避免爆音。
func SynthesizeTone(tone Tone, sampleRate int) []byte {
	samples := int(tone.Duration * float64(sampleRate))
	if samples <= 0 {
		return nil
	}

	const attack = 0.005
	buf := make([]byte, samples*4)
	phase := 0.0

	for i := 0; i < samples; i++ {
		t := float64(i) / float64(sampleRate)
		progress := float64(i) / float64(samples)
		freq := tone.StartFreq + (tone.EndFreq-tone.StartFreq)*progress

		envelope := tone.Volume * math.Exp(-tone.Decay*t)
		if t < attack {
			envelope *= t / attack
		}

		v := int16(math.Sin(phase) * envelope * math.MaxInt16)
		phase += 2 * math.Pi * freq / float64(sampleRate)

		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
