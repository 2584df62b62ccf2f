package mood

import (
	"strings"
	"time"

	"github.com/neurox-app/mindcare/backend/internal/analysis/support"
	"github.com/neurox-app/mindcare/backend/pkg/clock"
)

// MoodSample is one mood reading, displayed as-is by the dashboard.
type MoodSample struct {
	DominantEmotion string             `json:"dominant_emotion"`
	Confidence      float64            `json:"confidence"`
	Timestamp       time.Time          `json:"timestamp"`
	Emotions        map[string]float64 `json:"emotions"`
}

// DetectedEmotions are the labels the simulator can report as dominant.
var DetectedEmotions = []string{"happy", "neutral", "calm", "focused", "thoughtful"}

// Float64Source draws a float in [0, 1). *math/rand.Rand satisfies it.
type Float64Source interface {
	Float64() float64
}

// Simulator stands in for camera-based emotion recognition. Readings are random.
type Simulator struct {
	index support.RandSource
	value Float64Source
	clock clock.Clock
}

// NewSimulator builds a Simulator. Nil clock means wall time.
func NewSimulator(index support.RandSource, value Float64Source, clk clock.Clock) *Simulator {
	if clk == nil {
		clk = clock.Real()
	}
	return &Simulator{index: index, value: value, clock: clk}
}

// Sample produces one reading: confidence in [0.7, 1.0), sad below 0.3.
func (s *Simulator) Sample() MoodSample {
	dominant := DetectedEmotions[s.index.Intn(len(DetectedEmotions))]
	return MoodSample{
		DominantEmotion: dominant,
		Confidence:      0.7 + s.value.Float64()*0.3,
		Timestamp:       s.clock.Now().UTC(),
		Emotions: map[string]float64{
			"happy":   s.value.Float64(),
			"sad":     s.value.Float64() * 0.3,
			"neutral": s.value.Float64(),
			"calm":    s.value.Float64(),
			"focused": s.value.Float64(),
		},
	}
}

// Beat is a binaural beat recommendation: the right ear plays CarrierHz+BeatHz.
type Beat struct {
	BeatHz    float64 `json:"beatHz"`
	CarrierHz float64 `json:"carrierHz"`
}

var beats = map[string]Beat{
	"happy":    {BeatHz: 10, CarrierHz: 440},
	"sad":      {BeatHz: 6, CarrierHz: 220},
	"angry":    {BeatHz: 8, CarrierHz: 440},
	"surprise": {BeatHz: 7, CarrierHz: 440},
	"fear":     {BeatHz: 4, CarrierHz: 220},
	"disgust":  {BeatHz: 6, CarrierHz: 330},
	"neutral":  {BeatHz: 10, CarrierHz: 440},
}

// BeatFor returns the beat for an emotion, using the neutral beat for unknown ones.
func BeatFor(emotion string) Beat {
	if beat, ok := beats[strings.ToLower(strings.TrimSpace(emotion))]; ok {
		return beat
	}
	return beats["neutral"]
}
