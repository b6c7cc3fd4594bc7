package tfidf

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/mevzuat-labs/mevzuat-cli/internal/logger"
)

// Persisted artifact file names, co-located under the index directory.
const (
	vectorizerFile = "vectorizer.json"
	vectorsFile    = "vectors.bin"
	idsFile        = "ids.json"
)

// vectorsMagic guards against loading a foreign or truncated matrix file.
const vectorsMagic = uint32(0x7f1d51d7)

var errModelInconsistent = errors.New("persisted model inconsistent")

// saveLocked persists vectorizer, matrix and id list. Each file is written
// to a temp path and renamed into place so a crash mid-save leaves either
// the old model or the new one, never a mix the loader would accept with
// mismatched row counts (loadLocked verifies consistency regardless).
// Caller holds the write lock.
func (x *Index) saveLocked() error {
	if err := os.MkdirAll(x.dir, 0700); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	vectorizerJSON, err := json.Marshal(x.vectorizer)
	if err != nil {
		return fmt.Errorf("marshalling vectorizer: %w", err)
	}
	idsJSON, err := json.Marshal(x.articleIDs)
	if err != nil {
		return fmt.Errorf("marshalling id list: %w", err)
	}

	if err := writeFileAtomic(filepath.Join(x.dir, vectorizerFile), vectorizerJSON); err != nil {
		return fmt.Errorf("writing vectorizer: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(x.dir, vectorsFile), encodeMatrix(x.vectors)); err != nil {
		return fmt.Errorf("writing vectors: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(x.dir, idsFile), idsJSON); err != nil {
		return fmt.Errorf("writing id list: %w", err)
	}

	logger.Debug("TF-IDF model persisted to %s", x.dir)
	return nil
}

// loadLocked reads the three artifact files and installs them only when
// mutually consistent. Any failure leaves the index state untouched.
// Caller holds the write lock.
func (x *Index) loadLocked() error {
	vectorizerJSON, err := os.ReadFile(filepath.Join(x.dir, vectorizerFile))
	if err != nil {
		return fmt.Errorf("reading vectorizer: %w", err)
	}
	var vectorizer Vectorizer
	if err := json.Unmarshal(vectorizerJSON, &vectorizer); err != nil {
		return fmt.Errorf("unmarshalling vectorizer: %w", err)
	}

	vectorsRaw, err := os.ReadFile(filepath.Join(x.dir, vectorsFile))
	if err != nil {
		return fmt.Errorf("reading vectors: %w", err)
	}
	vectors, err := decodeMatrix(vectorsRaw)
	if err != nil {
		return fmt.Errorf("decoding vectors: %w", err)
	}

	idsJSON, err := os.ReadFile(filepath.Join(x.dir, idsFile))
	if err != nil {
		return fmt.Errorf("reading id list: %w", err)
	}
	var ids []int64
	if err := json.Unmarshal(idsJSON, &ids); err != nil {
		return fmt.Errorf("unmarshalling id list: %w", err)
	}

	rows, cols := vectors.Dims()
	if rows != len(ids) || cols != vectorizer.Features() {
		return fmt.Errorf("%w: %d rows, %d ids, %d columns, %d features",
			errModelInconsistent, rows, len(ids), cols, vectorizer.Features())
	}

	x.vectorizer = &vectorizer
	x.vectors = vectors
	x.articleIDs = ids
	return nil
}

// clearPersistedLocked removes the artifact files. Missing files are fine.
func (x *Index) clearPersistedLocked() {
	for _, name := range []string{vectorizerFile, vectorsFile, idsFile} {
		if err := os.Remove(filepath.Join(x.dir, name)); err != nil && !os.IsNotExist(err) {
			logger.Warn("Removing %s failed: %v", name, err)
		}
	}
}

// encodeMatrix serialises a dense matrix as magic, row count, column count
// and row-major float64 data, all little-endian.
func encodeMatrix(m *mat.Dense) []byte {
	rows, cols := m.Dims()
	buf := make([]byte, 4+8+8+rows*cols*8)
	binary.LittleEndian.PutUint32(buf[0:], vectorsMagic)
	binary.LittleEndian.PutUint64(buf[4:], uint64(rows))
	binary.LittleEndian.PutUint64(buf[12:], uint64(cols))

	off := 20
	for i := 0; i < rows; i++ {
		row := m.RawRowView(i)
		for _, v := range row {
			binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(v))
			off += 8
		}
	}
	return buf
}

func decodeMatrix(raw []byte) (*mat.Dense, error) {
	if len(raw) < 20 {
		return nil, errors.New("matrix file truncated")
	}
	if binary.LittleEndian.Uint32(raw[0:]) != vectorsMagic {
		return nil, errors.New("matrix file has wrong magic")
	}
	rows := int(binary.LittleEndian.Uint64(raw[4:]))
	cols := int(binary.LittleEndian.Uint64(raw[12:]))
	if rows <= 0 || cols <= 0 || len(raw) != 20+rows*cols*8 {
		return nil, fmt.Errorf("matrix file size mismatch: %d rows x %d cols, %d bytes", rows, cols, len(raw))
	}

	data := make([]float64, rows*cols)
	off := 20
	for i := range data {
		data[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[off:]))
		off += 8
	}
	return mat.NewDense(rows, cols, data), nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over the destination.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
