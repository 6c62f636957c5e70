package game

import (
	"bytes"
	"encoding/gob"
	"math/rand/v2"
)

// Bytes gob-encodes the engine for storage.
func (e Engine) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeEngine restores a stored engine. The randomness source is not
// part of the stored state and must be supplied again; it is only used
// if the board is rebuilt.
func DecodeEngine(b []byte, rnd *rand.Rand) (*Engine, error) {
	var e Engine
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&e); err != nil {
		return nil, err
	}
	e.rnd = rnd
	return &e, nil
}
