package vectorindex

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const (
	manifestName = "manifest.json"
	unitsName    = "units.json"
	vectorsName  = "vectors.bin"
)

// MismatchError reports that a persisted index was produced with a
// different embedding model or dimension than the one currently
// configured. Reusing such an index would silently corrupt every
// similarity score, so the caller must rebuild explicitly.
type MismatchError struct {
	CachedModel      string
	CurrentModel     string
	CachedDimension  int
	CurrentDimension int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf(
		"persisted index was built with model %q (dimension %d) but the configured model is %q (dimension %d); rebuild the index",
		e.CachedModel, e.CachedDimension, e.CurrentModel, e.CurrentDimension,
	)
}

// manifest records everything needed to validate a persisted index
// against the current configuration.
type manifest struct {
	Model     string    `json:"model"`
	Dimension int       `json:"dimension"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

// Save persists the index into dir: the ordered unit list, the raw
// vectors and a manifest naming the embedding model and dimension. The
// manifest is written last so a partially written index never validates.
func (ix *Index) Save(dir string) error {
	if len(ix.units) == 0 {
		return errors.New("refusing to persist an empty index")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	if err := writeJSON(filepath.Join(dir, unitsName), ix.units); err != nil {
		return fmt.Errorf("persisting corpus units: %w", err)
	}

	if err := ix.writeVectors(filepath.Join(dir, vectorsName)); err != nil {
		return fmt.Errorf("persisting vectors: %w", err)
	}

	man := manifest{
		Model:     ix.embedder.ModelName(),
		Dimension: ix.embedder.Dimension(),
		Count:     len(ix.units),
		CreatedAt: time.Now().UTC(),
	}
	if err := writeJSON(filepath.Join(dir, manifestName), man); err != nil {
		return fmt.Errorf("persisting manifest: %w", err)
	}

	ix.logger.Info("vector index persisted", zap.String("dir", dir), zap.Int("units", len(ix.units)))
	return nil
}

// Load reads a persisted index from dir after verifying that its
// manifest matches the configured embedder. A model or dimension
// mismatch returns a *MismatchError.
func (ix *Index) Load(dir string) error {
	var man manifest
	if err := readJSON(filepath.Join(dir, manifestName), &man); err != nil {
		return fmt.Errorf("reading index manifest: %w", err)
	}

	if man.Model != ix.embedder.ModelName() || man.Dimension != ix.embedder.Dimension() {
		return &MismatchError{
			CachedModel:      man.Model,
			CurrentModel:     ix.embedder.ModelName(),
			CachedDimension:  man.Dimension,
			CurrentDimension: ix.embedder.Dimension(),
		}
	}

	var units []string
	if err := readJSON(filepath.Join(dir, unitsName), &units); err != nil {
		return fmt.Errorf("reading corpus units: %w", err)
	}
	if len(units) != man.Count {
		return fmt.Errorf("index manifest lists %d units but %d are stored", man.Count, len(units))
	}

	vectors, err := readVectors(filepath.Join(dir, vectorsName), man.Count, man.Dimension)
	if err != nil {
		return err
	}

	ix.units = units
	ix.vectors = vectors

	ix.logger.Info("vector index loaded", zap.String("dir", dir), zap.Int("units", len(units)))
	return nil
}

// Exists reports whether dir contains a persisted index manifest.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, manifestName))
	return err == nil
}

func (ix *Index) writeVectors(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	buf := make([]byte, 4)
	for _, vector := range ix.vectors {
		for _, v := range vector {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
			if _, err := file.Write(buf); err != nil {
				return err
			}
		}
	}
	return file.Sync()
}

func readVectors(path string, count, dimension int) ([][]float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vectors: %w", err)
	}

	expected := count * dimension * 4
	if len(data) != expected {
		return nil, fmt.Errorf("vectors file holds %d bytes, expected %d (%d x %d float32)", len(data), expected, count, dimension)
	}

	vectors := make([][]float32, count)
	offset := 0
	for i := range vectors {
		vector := make([]float32, dimension)
		for j := range vector {
			vector[j] = math.Float32frombits(binary.LittleEndian.Uint32(data[offset:]))
			offset += 4
		}
		vectors[i] = vector
	}
	return vectors, nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return file.Sync()
}

func readJSON(path string, v any) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(v)
}
