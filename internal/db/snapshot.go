package db

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
)

// serializeGrid compresses the grid samples using gob encoding and gzip
// compression.
func serializeGrid(data []float64) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	enc := gob.NewEncoder(gz)
	if err := enc.Encode(data); err != nil {
		gz.Close()
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// deserializeGrid is the inverse of serializeGrid.
func deserializeGrid(blob []byte) ([]float64, error) {
	gz, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	var data []float64
	if err := gob.NewDecoder(gz).Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}
