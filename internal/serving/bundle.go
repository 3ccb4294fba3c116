// Package serving hosts the inference-time scoring shim: it loads a
// persisted model and encoder bundle once at startup and applies the
// same per-field transformations the training pipeline used to new
// records arriving over HTTP.
package serving

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const (
	modelFile    = "model.json"
	encodersFile = "encoders.json"
)

// Encoder maps a categorical label to its integer code, mirroring the
// label encoding applied at training time.
type Encoder map[string]int

// Transform encodes one label. Unseen labels are an error, matching
// training-side encoder semantics.
func (e Encoder) Transform(label string) (int, error) {
	code, ok := e[label]
	if !ok {
		return 0, eris.Errorf("serving: unseen label %q", label)
	}
	return code, nil
}

// Model is a linear model over named feature columns.
type Model struct {
	Intercept float64            `json:"intercept"`
	Weights   map[string]float64 `json:"weights"`
}

// Predict applies the model to one flat record. A feature missing from
// the record contributes 0, consistent with the pipeline's
// null-comparison policy. A non-numeric value for a weighted feature
// is an error.
func (m *Model) Predict(record map[string]any) (float64, error) {
	score := m.Intercept
	for col, w := range m.Weights {
		v, ok := record[col]
		if !ok || v == nil {
			continue
		}
		f, err := toFloat(v)
		if err != nil {
			return 0, eris.Wrapf(err, "serving: feature %q", col)
		}
		score += w * f
	}
	return score, nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, eris.Errorf("non-numeric value %v", v)
	}
}

// Bundle is the read-only model + encoder set loaded once per process.
type Bundle struct {
	Model    Model              `json:"model"`
	Encoders map[string]Encoder `json:"encoders"`
}

// LoadBundle reads model.json and encoders.json from dir. The bundle
// is never mutated after loading.
func LoadBundle(dir string) (*Bundle, error) {
	var b Bundle

	if err := readJSON(filepath.Join(dir, modelFile), &b.Model); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, encodersFile), &b.Encoders); err != nil {
		return nil, err
	}

	zap.L().Info("serving: loaded model bundle",
		zap.String("dir", dir),
		zap.Int("features", len(b.Model.Weights)),
		zap.Int("encoders", len(b.Encoders)),
	)
	return &b, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "serving: read %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return eris.Wrapf(err, "serving: parse %s", path)
	}
	return nil
}

// Encode remaps every categorical field present in both the record and
// the encoder set, leaving other fields untouched. The input map is
// modified in place and returned.
func (b *Bundle) Encode(record map[string]any) (map[string]any, error) {
	for field, enc := range b.Encoders {
		v, ok := record[field]
		if !ok || v == nil {
			continue
		}
		label, ok := v.(string)
		if !ok {
			// Already numeric; nothing to remap.
			continue
		}
		code, err := enc.Transform(label)
		if err != nil {
			return nil, eris.Wrapf(err, "serving: encode field %q", field)
		}
		record[field] = code
	}
	return record, nil
}
