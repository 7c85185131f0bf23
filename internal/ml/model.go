package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/mat"
)

// ErrNoSamples indicates a training or evaluation call with nothing to work on.
var ErrNoSamples = errors.New("no samples")

// Model is a small feed-forward network: one tanh hidden layer and a
// sigmoid output predicting the attacker's win probability.
type Model struct {
	inputSize  int
	hiddenSize int

	w1 *mat.Dense    // hidden x input
	b1 *mat.VecDense // hidden
	w2 *mat.VecDense // hidden
	b2 float64
}

// Meta records how an artifact was produced.
type Meta struct {
	RunID        string    `json:"run_id"`
	Seed         int64     `json:"seed"`
	Epochs       int       `json:"epochs"`
	LearningRate float64   `json:"learning_rate"`
	SampleCount  int       `json:"sample_count"`
	Accuracy     float64   `json:"accuracy"`
	Loss         float64   `json:"loss"`
	TrainedAt    time.Time `json:"trained_at"`
}

// artifact is the JSON layout of a saved model.
type artifact struct {
	InputSize  int       `json:"input_size"`
	HiddenSize int       `json:"hidden_size"`
	W1         []float64 `json:"w1"` // row-major hidden x input
	B1         []float64 `json:"b1"`
	W2         []float64 `json:"w2"`
	B2         float64   `json:"b2"`
	Meta       Meta      `json:"meta"`
}

// NewModel builds a network with small random weights from the given RNG.
func NewModel(inputSize, hiddenSize int, rng *rand.Rand) *Model {
	scale := 1 / math.Sqrt(float64(inputSize))
	w1 := make([]float64, hiddenSize*inputSize)
	for i := range w1 {
		w1[i] = (rng.Float64()*2 - 1) * scale
	}
	b1 := make([]float64, hiddenSize)
	w2 := make([]float64, hiddenSize)
	for i := range w2 {
		w2[i] = (rng.Float64()*2 - 1) / math.Sqrt(float64(hiddenSize))
	}
	return &Model{
		inputSize:  inputSize,
		hiddenSize: hiddenSize,
		w1:         mat.NewDense(hiddenSize, inputSize, w1),
		b1:         mat.NewVecDense(hiddenSize, b1),
		w2:         mat.NewVecDense(hiddenSize, w2),
	}
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// forward returns the hidden activations and the output probability.
func (m *Model) forward(features []float64) (*mat.VecDense, float64) {
	x := mat.NewVecDense(m.inputSize, features)
	a1 := mat.NewVecDense(m.hiddenSize, nil)
	a1.MulVec(m.w1, x)
	a1.AddVec(a1, m.b1)
	for i := 0; i < m.hiddenSize; i++ {
		a1.SetVec(i, math.Tanh(a1.AtVec(i)))
	}
	return a1, sigmoid(mat.Dot(m.w2, a1) + m.b2)
}

// Predict returns the attacker's win probability for a feature vector.
func (m *Model) Predict(features []float64) float64 {
	_, p := m.forward(features)
	return p
}

// Train runs per-sample SGD on cross-entropy loss, reshuffling every epoch
// with the given RNG.
func (m *Model) Train(samples []Sample, epochs int, lr float64, rng *rand.Rand) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	for _, s := range samples {
		if len(s.Features) != m.inputSize {
			return fmt.Errorf("sample %s: %d features, model expects %d", s.BattleID, len(s.Features), m.inputSize)
		}
	}

	order := make([]int, len(samples))
	for i := range order {
		order[i] = i
	}

	for epoch := 0; epoch < epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		for _, idx := range order {
			m.step(samples[idx], lr)
		}
	}
	return nil
}

// step applies one backpropagation update.
func (m *Model) step(s Sample, lr float64) {
	a1, p := m.forward(s.Features)
	delta2 := p - s.Label

	// hidden deltas use the pre-update output weights
	delta1 := make([]float64, m.hiddenSize)
	for j := 0; j < m.hiddenSize; j++ {
		a := a1.AtVec(j)
		delta1[j] = delta2 * m.w2.AtVec(j) * (1 - a*a)
	}

	for j := 0; j < m.hiddenSize; j++ {
		m.w2.SetVec(j, m.w2.AtVec(j)-lr*delta2*a1.AtVec(j))
	}
	m.b2 -= lr * delta2

	for j := 0; j < m.hiddenSize; j++ {
		for k := 0; k < m.inputSize; k++ {
			m.w1.Set(j, k, m.w1.At(j, k)-lr*delta1[j]*s.Features[k])
		}
		m.b1.SetVec(j, m.b1.AtVec(j)-lr*delta1[j])
	}
}

// Evaluate returns classification accuracy and mean cross-entropy loss.
func Evaluate(m *Model, samples []Sample) (accuracy, loss float64, err error) {
	if len(samples) == 0 {
		return 0, 0, ErrNoSamples
	}
	correct := 0
	const eps = 1e-9
	for _, s := range samples {
		p := m.Predict(s.Features)
		if (p >= 0.5) == (s.Label >= 0.5) {
			correct++
		}
		loss += -(s.Label*math.Log(p+eps) + (1-s.Label)*math.Log(1-p+eps))
	}
	return float64(correct) / float64(len(samples)), loss / float64(len(samples)), nil
}

// Save writes the model as an indented JSON artifact, creating the target
// directory if needed.
func (m *Model) Save(path string, meta Meta) error {
	raw1 := m.w1.RawMatrix()
	w1 := make([]float64, len(raw1.Data))
	copy(w1, raw1.Data)
	b1 := make([]float64, m.hiddenSize)
	w2 := make([]float64, m.hiddenSize)
	for i := 0; i < m.hiddenSize; i++ {
		b1[i] = m.b1.AtVec(i)
		w2[i] = m.w2.AtVec(i)
	}

	art := artifact{
		InputSize:  m.inputSize,
		HiddenSize: m.hiddenSize,
		W1:         w1,
		B1:         b1,
		W2:         w2,
		B2:         m.b2,
		Meta:       meta,
	}
	b, err := json.MarshalIndent(art, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create models dir: %w", err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write model %s: %w", path, err)
	}
	return nil
}

// Load reads a saved artifact back into a usable model.
func Load(path string) (*Model, Meta, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("read model %s: %w", path, err)
	}
	var art artifact
	if err := json.Unmarshal(b, &art); err != nil {
		return nil, Meta{}, fmt.Errorf("parse model %s: %w", path, err)
	}
	if art.InputSize <= 0 || art.HiddenSize <= 0 {
		return nil, Meta{}, fmt.Errorf("model %s: invalid layer sizes", path)
	}
	if len(art.W1) != art.HiddenSize*art.InputSize || len(art.B1) != art.HiddenSize || len(art.W2) != art.HiddenSize {
		return nil, Meta{}, fmt.Errorf("model %s: weight shapes do not match layer sizes", path)
	}

	m := &Model{
		inputSize:  art.InputSize,
		hiddenSize: art.HiddenSize,
		w1:         mat.NewDense(art.HiddenSize, art.InputSize, art.W1),
		b1:         mat.NewVecDense(art.HiddenSize, art.B1),
		w2:         mat.NewVecDense(art.HiddenSize, art.W2),
		b2:         art.B2,
	}
	return m, art.Meta, nil
}
