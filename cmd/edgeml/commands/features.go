package commands

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/robodu/edgeml/internal/features"
	"github.com/robodu/edgeml/internal/keyword"
	"github.com/robodu/edgeml/internal/orchestrator"
)

// PCM sample encodings accepted by the features command.
const (
	formatS16LE = "s16le"
	formatF32LE = "f32le"
)

var (
	flagFormat string
	flagRate   int
	flagMatrix bool
)

var featuresCmd = &cobra.Command{
	Use:   "features [file]",
	Short: "Print the keyword model input for a raw PCM clip",
	Long: `Print the coefficient matrix the keyword model would see for a clip of
raw mono PCM. The last window of the clip is normalized and transformed
exactly as the listener does it. Reads stdin when no file or "-" is given.

Example:
  edgeml features --format s16le clip.raw
  arecord -f S16_LE -r 16000 -c 1 -t raw | edgeml features --matrix`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFeatures,
}

func init() {
	featuresCmd.Flags().StringVar(&flagFormat, "format", formatS16LE, "Sample encoding (s16le, f32le)")
	featuresCmd.Flags().IntVar(&flagRate, "rate", 0, "Sample rate of the clip (default sample_rate)")
	featuresCmd.Flags().BoolVar(&flagMatrix, "matrix", false, "Include the full matrix in the output")
}

// featureReport is the JSON written by the features command.
type featureReport struct {
	Samples int             `json:"samples"`
	Window  int             `json:"window"`
	RMS     float64         `json:"rms"`
	Peak    float32         `json:"peak"`
	Gated   bool            `json:"gated"`
	Rows    int             `json:"rows"`
	Cols    int             `json:"cols"`
	Min     float32         `json:"min"`
	Max     float32         `json:"max"`
	Matrix  features.Matrix `json:"matrix,omitempty"`
}

func runFeatures(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagRate != 0 && flagRate != cfg.SampleRate {
		return fmt.Errorf("clip rate %d Hz does not match sample_rate %d Hz", flagRate, cfg.SampleRate)
	}

	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	pcm, err := decodePCM(in, flagFormat)
	if err != nil {
		return err
	}

	window := cfg.WindowSamples()
	if len(pcm) > window {
		pcm = pcm[len(pcm)-window:]
	}
	rms, open := keyword.Gate{Threshold: cfg.NoiseThreshold}.Open(pcm)

	m := features.New(orchestrator.FeaturesConfig(cfg)).Extract(keyword.Normalize(pcm, cfg.NormalizeFloor))
	rep := featureReport{
		Samples: len(pcm),
		Window:  window,
		RMS:     rms,
		Peak:    keyword.Peak(pcm),
		Gated:   !open,
		Rows:    m.Rows(),
		Cols:    m.Cols(),
	}
	rep.Min, rep.Max = bounds(m.Flatten())
	if flagMatrix {
		rep.Matrix = m
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// decodePCM reads little-endian mono samples and scales them to [-1, 1].
// A trailing partial sample is dropped.
func decodePCM(r io.Reader, format string) ([]float32, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pcm: %w", err)
	}
	switch format {
	case formatS16LE:
		out := make([]float32, len(data)/2)
		for i := range out {
			out[i] = float32(int16(binary.LittleEndian.Uint16(data[i*2:]))) / 32768
		}
		return out, nil
	case formatF32LE:
		out := make([]float32, len(data)/4)
		for i := range out {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown pcm format %q (want %s or %s)", format, formatS16LE, formatF32LE)
}

func bounds(v []float32) (lo, hi float32) {
	if len(v) == 0 {
		return 0, 0
	}
	lo, hi = v[0], v[0]
	for _, x := range v[1:] {
		lo = min(lo, x)
		hi = max(hi, x)
	}
	return lo, hi
}
