package types

// HarmonicSignature contains results returned by the harmonic analyzer.
type HarmonicSignature struct {
	FundamentalFreq float64   // Hz, 440 when no lag correlates
	Harmonics       []float64 // fundamental x 1..8
	HarmonicRatios  []float64 // harmonics / fundamental
	ConsonanceScore float64   // nominally 0-100, not clamped: negative for a plain harmonic series
	DissonanceMap   []float64 // 100 slices, mean abs sample-to-sample difference
}

// QuantumBeatGrid contains onset micro-timing results.
type QuantumBeatGrid struct {
	MicroTimings        []float64   // ms offsets from a 120 BPM grid, at most 32
	GroovePattern       []float64   // 0-1, one per micro-timing
	SwingFactor         float64     // 0-100
	SyncopationIndex    float64     // 0-100
	PolyrhythmLayers    [][]float64 // micro-timings at strides 4, 3, 5
	QuantumEntanglement float64     // 0-100
}

type Emotion string

const (
	EmotionEuphoric    Emotion = "euphoric"
	EmotionTense       Emotion = "tense"
	EmotionPeaceful    Emotion = "peaceful"
	EmotionMelancholic Emotion = "melancholic"
	EmotionEnergetic   Emotion = "energetic"
	EmotionNeutral     Emotion = "neutral"
)

// EmotionalPoint is one slice of the emotional arc.
type EmotionalPoint struct {
	Time      float64 // seconds
	Emotion   Emotion
	Intensity float64 // 0-1
}

// EmotionalDNA contains results returned by the emotion analyzer.
type EmotionalDNA struct {
	Valence        float64 // -1..1
	Arousal        float64 // -1..1
	Dominance      float64 // -1..1
	Tension        float64 // sum of rising intensity deltas x 100
	Release        float64 // sum of falling intensity deltas x 100
	EmotionalArc   []EmotionalPoint
	ColorSignature string // hex color of the dominant emotion
}

// FrequencyColor is one of the seven fixed synaesthetic bands.
type FrequencyColor struct {
	Band      string
	Freq      float64 // band centre, Hz
	Color     string
	Intensity float64 // 0-1
}

type SpatialPosition struct {
	X float64
	Y float64
	Z float64
}

// SynaestheticMap contains results returned by the synaesthesia mapper.
type SynaestheticMap struct {
	FrequencyColors []FrequencyColor
	TextureProfile  string
	SpatialPosition SpatialPosition
	SynesthesiaType string
}

// RecursivePattern is a window that resembles a later window at 2x, 4x or 8x offset.
type RecursivePattern struct {
	StartTime       float64
	Duration        float64
	RepetitionScale int
	Similarity      float64 // 60-100
}

// TemporalFractal contains self-similarity results.
type TemporalFractal struct {
	FractalDimension    float64 // 0-2
	SelfSimilarityScore float64 // 0-100
	RecursivePatterns   []RecursivePattern
	InfiniteZoomPoints  []float64
}

type BuildupZone struct {
	Start     float64
	End       float64
	Intensity float64
}

// CrowdEnergySimulation contains results returned by the crowd simulator.
type CrowdEnergySimulation struct {
	EnergyCurve        []float64 // 200 points, 0-100
	PeakMoments        []float64 // seconds
	BuildupZones       []BuildupZone
	DropImpact         []float64 // seconds
	CrowdResponseDelay float64   // seconds, 0.2-0.5, presentation only
	MoshPitProbability float64   // 0-100
}

type TextureType string

const (
	TextureGritty      TextureType = "gritty"
	TextureCrystalline TextureType = "crystalline"
	TextureOrganic     TextureType = "organic"
	TextureMetallic    TextureType = "metallic"
	TextureEthereal    TextureType = "ethereal"
	TextureSmooth      TextureType = "smooth"
)

// SonicTexture contains results returned by the texture analyzer. All fields are 0-100.
type SonicTexture struct {
	Roughness   float64
	Brightness  float64
	Warmth      float64
	Density     float64
	Movement    float64
	TextureType TextureType
	LayerDepth  float64
}

type SuperpositionState struct {
	ID           string
	Probability  float64
	AudioVariant string
}

type UncertaintyZone struct {
	Start   float64
	End     float64
	Entropy float64
}

// ProbabilityWave is synthetic: it depends on the duration only.
type ProbabilityWave struct {
	WaveFunction        []float64
	SuperpositionStates []SuperpositionState
	CollapsePoints      []float64
	UncertaintyZones    []UncertaintyZone
}

type RiftPoint struct {
	Time             float64
	Intensity        float64 // 0-100
	RiftType         string
	AlternateReality string
}

// DimensionalRift contains energy discontinuity results.
type DimensionalRift struct {
	RiftPoints        []RiftPoint // first 10 found
	ParallelTimelines int
	DimensionalBleed  float64 // mean intensity of RiftPoints
	RealityStability  float64 // 0-100
}

type Brainwave string

const (
	BrainwaveDelta Brainwave = "delta"
	BrainwaveTheta Brainwave = "theta"
	BrainwaveAlpha Brainwave = "alpha"
	BrainwaveBeta  Brainwave = "beta"
	BrainwaveGamma Brainwave = "gamma"
)

// ConsciousnessSync contains rhythm entrainment results.
type ConsciousnessSync struct {
	BrainwaveTarget     Brainwave
	BinauralOffset      float64 // Hz
	IsochronicPulse     float64 // detected rhythm, Hz
	EntrainmentStrength float64 // 0-100
	FlowStateScore      float64 // 0-100
	MeditationDepth     float64 // 80 or 40
}

type Impact string

const (
	ImpactSubtle         Impact = "subtle"
	ImpactModerate       Impact = "moderate"
	ImpactDramatic       Impact = "dramatic"
	ImpactRealityBending Impact = "reality-bending"
)

// RemixSuggestion is one recommended transformation.
type RemixSuggestion struct {
	ID          string
	Name        string
	Description string
	Confidence  float64 // 0-1
	Impact      Impact
	Parameters  map[string]float64
	Reasoning   string
}
