// Package config handles edgeml configuration
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/robodu/edgeml/internal/errors"
)

// Class naming modes for the transfer-learning classifier.
const (
	ClassNamingOrdinal      = "ordinal"
	ClassNamingRegistration = "registration"
)

// DefaultKeywordLabels is the label order of the bundled keyword model.
var DefaultKeywordLabels = []string{"robodu", "perkenalan", "kanan", "kiri", "maju", "mundur"}

type Config struct {
	HTTPAddr    string `yaml:"http_addr"`
	RuntimeAddr string `yaml:"runtime_addr"`
	LogLevel    string `yaml:"log_level"`
	// RuntimeMaxMessageBytes caps one runtime message in either direction.
	RuntimeMaxMessageBytes int `yaml:"runtime_max_message_bytes"`

	// Keyword spotting
	SampleRate           int           `yaml:"sample_rate"`
	ChunkDuration        time.Duration `yaml:"chunk_duration"`
	InferInterval        time.Duration `yaml:"infer_interval"`
	WindowDuration       time.Duration `yaml:"window_duration"`
	ConfThreshold        float64       `yaml:"conf_threshold"`
	NoiseThreshold       float64       `yaml:"noise_threshold"`
	NormalizeFloor       float64       `yaml:"normalize_floor"`
	DebounceInterval     time.Duration `yaml:"debounce_interval"`
	KeywordLabels        []string      `yaml:"keyword_labels"`
	ExcludedAudioDevices []string      `yaml:"excluded_audio_devices"`
	DetectionHistory     int           `yaml:"detection_history"`

	// Feature extraction
	NumCoefficients int `yaml:"num_coefficients"`
	NumFrames       int `yaml:"num_frames"`
	FrameSize       int `yaml:"frame_size"`
	MelBins         int `yaml:"mel_bins"`

	// Transfer learning
	ImageHeight          int    `yaml:"image_height"`
	ImageWidth           int    `yaml:"image_width"`
	ImageChannels        int    `yaml:"image_channels"`
	BottleneckDim        int    `yaml:"bottleneck_dim"`
	ClassCount           int    `yaml:"class_count"`
	ClassNaming          string `yaml:"class_naming"`
	MaxBatchSize         int    `yaml:"max_batch_size"`
	DefaultEpochs        int    `yaml:"default_epochs"`
	ContinueOnBatchError bool   `yaml:"continue_on_batch_error"`
	MaxHashDistance      int    `yaml:"max_hash_distance"`
}

// Default returns the configuration used when neither a file nor the
// environment override a value.
func Default() *Config {
	return &Config{
		HTTPAddr:    ":8000",
		RuntimeAddr: "localhost:50051",
		LogLevel:    "debug",

		RuntimeMaxMessageBytes: 64 << 20,

		SampleRate:           16000,
		ChunkDuration:        10 * time.Millisecond,
		InferInterval:        200 * time.Millisecond,
		WindowDuration:       500 * time.Millisecond,
		ConfThreshold:        0.6,
		NoiseThreshold:       0.01,
		NormalizeFloor:       0.01,
		DebounceInterval:     time.Second,
		KeywordLabels:        append([]string(nil), DefaultKeywordLabels...),
		ExcludedAudioDevices: []string{"iphone", "teams"},
		DetectionHistory:     50,

		NumCoefficients: 13,
		NumFrames:       100,
		FrameSize:       512,
		MelBins:         26,

		ImageHeight:   224,
		ImageWidth:    224,
		ImageChannels: 3,
		BottleneckDim: 62720,
		ClassCount:    5,
		ClassNaming:   ClassNamingOrdinal,
		MaxBatchSize:  20,
		DefaultEpochs: 10,

		MaxHashDistance: 4,
	}
}

// Load returns defaults overridden by the environment.
func Load() *Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// LoadFile reads a YAML file over the defaults, then applies the
// environment on top of it.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ConfigInvalid, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ConfigInvalid, "parse config %s", path)
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.HTTPAddr = getEnv("HTTP_ADDR", c.HTTPAddr)
	c.RuntimeAddr = getEnv("RUNTIME_ADDR", c.RuntimeAddr)
	c.RuntimeMaxMessageBytes = getEnvInt("RUNTIME_MAX_MESSAGE_BYTES", c.RuntimeMaxMessageBytes)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.SampleRate = getEnvInt("SAMPLE_RATE", c.SampleRate)
	c.ChunkDuration = getEnvDuration("CHUNK_DURATION", c.ChunkDuration)
	c.InferInterval = getEnvDuration("INFER_INTERVAL", c.InferInterval)
	c.WindowDuration = getEnvDuration("WINDOW_DURATION", c.WindowDuration)
	c.ConfThreshold = getEnvFloat("CONF_THRESHOLD", c.ConfThreshold)
	c.NoiseThreshold = getEnvFloat("NOISE_THRESHOLD", c.NoiseThreshold)
	c.NormalizeFloor = getEnvFloat("NORMALIZE_FLOOR", c.NormalizeFloor)
	c.DebounceInterval = getEnvDuration("DEBOUNCE_INTERVAL", c.DebounceInterval)
	c.KeywordLabels = getEnvList("KEYWORD_LABELS", c.KeywordLabels)
	c.ExcludedAudioDevices = getEnvList("EXCLUDED_AUDIO_DEVICES", c.ExcludedAudioDevices)
	c.DetectionHistory = getEnvInt("DETECTION_HISTORY", c.DetectionHistory)

	c.NumCoefficients = getEnvInt("NUM_COEFFICIENTS", c.NumCoefficients)
	c.NumFrames = getEnvInt("NUM_FRAMES", c.NumFrames)
	c.FrameSize = getEnvInt("FRAME_SIZE", c.FrameSize)
	c.MelBins = getEnvInt("MEL_BINS", c.MelBins)

	c.ImageHeight = getEnvInt("IMAGE_HEIGHT", c.ImageHeight)
	c.ImageWidth = getEnvInt("IMAGE_WIDTH", c.ImageWidth)
	c.ImageChannels = getEnvInt("IMAGE_CHANNELS", c.ImageChannels)
	c.BottleneckDim = getEnvInt("BOTTLENECK_DIM", c.BottleneckDim)
	c.ClassCount = getEnvInt("CLASS_COUNT", c.ClassCount)
	c.ClassNaming = getEnv("CLASS_NAMING", c.ClassNaming)
	c.MaxBatchSize = getEnvInt("MAX_BATCH_SIZE", c.MaxBatchSize)
	c.DefaultEpochs = getEnvInt("DEFAULT_EPOCHS", c.DefaultEpochs)
	c.ContinueOnBatchError = getEnvBool("CONTINUE_ON_BATCH_ERROR", c.ContinueOnBatchError)
	c.MaxHashDistance = getEnvInt("MAX_HASH_DISTANCE", c.MaxHashDistance)
}

// WindowSamples is the number of samples in one inference window.
func (c *Config) WindowSamples() int {
	return int(float64(c.SampleRate) * c.WindowDuration.Seconds())
}

// ChunkSamples is the number of samples requested per device read.
func (c *Config) ChunkSamples() int {
	return max(1, int(float64(c.SampleRate)*c.ChunkDuration.Seconds()))
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.SampleRate > 0, "sample_rate must be positive"},
		{c.WindowSamples() >= c.FrameSize, "window must hold at least one frame"},
		{c.InferInterval > 0, "infer_interval must be positive"},
		{c.ConfThreshold >= 0 && c.ConfThreshold < 1, "conf_threshold must be in [0, 1)"},
		{c.NoiseThreshold >= 0, "noise_threshold must not be negative"},
		{c.NormalizeFloor >= 0, "normalize_floor must not be negative"},
		{c.DebounceInterval >= 0, "debounce_interval must not be negative"},
		{c.DetectionHistory >= 0, "detection_history must not be negative"},
		{len(c.KeywordLabels) > 0, "keyword_labels must not be empty"},
		{c.NumCoefficients > 0 && c.NumFrames > 0, "feature dimensions must be positive"},
		{c.FrameSize >= 2, "frame_size must be at least 2"},
		{c.MelBins > 0, "mel_bins must be positive"},
		{c.ImageHeight > 0 && c.ImageWidth > 0 && c.ImageChannels > 0, "image dimensions must be positive"},
		{c.BottleneckDim > 0, "bottleneck_dim must be positive"},
		{c.ClassCount >= 2, "class_count must be at least 2"},
		{c.ClassNaming == ClassNamingOrdinal || c.ClassNaming == ClassNamingRegistration, "class_naming must be ordinal or registration"},
		{c.MaxBatchSize > 0, "max_batch_size must be positive"},
		{c.DefaultEpochs > 0, "default_epochs must be positive"},
		{c.RuntimeMaxMessageBytes >= c.batchBytes(), "runtime_max_message_bytes must hold a full training batch"},
	}
	for _, ch := range checks {
		if !ch.ok {
			return apperrors.New(apperrors.ConfigInvalid, ch.msg)
		}
	}
	return nil
}

// batchBytes is the tensor payload of a full training batch.
func (c *Config) batchBytes() int {
	return 4 * c.MaxBatchSize * (c.BottleneckDim + c.ClassCount)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true" || v == "1"
	}
	return def
}

// getEnvDuration accepts Go durations ("200ms") or plain seconds ("0.2").
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(f * float64(time.Second))
	}
	return def
}

func getEnvList(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if t := strings.TrimSpace(p); t != "" {
				result = append(result, t)
			}
		}
		return result
	}
	return def
}

// String renders the settings worth logging at startup.
func (c *Config) String() string {
	return fmt.Sprintf("http=%s runtime=%s window=%s interval=%s labels=%d classes=%d",
		c.HTTPAddr, c.RuntimeAddr, c.WindowDuration, c.InferInterval, len(c.KeywordLabels), c.ClassCount)
}
