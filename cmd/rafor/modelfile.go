package main

import (
	"fmt"
	"io"
	"os"
)

// modelKind tags a saved model file so predict/eval can dispatch to the
// right façade type without the caller re-specifying --task/--single-tree.
// rf's Save/Load already produce a self-describing gob payload; this
// one-byte header only disambiguates which of the four façade types that
// payload belongs to.
type modelKind byte

const (
	kindClassifierForest modelKind = iota
	kindRegressorForest
	kindClassifierTree
	kindRegressorTree
)

type saver interface {
	Save(w io.Writer) error
}

func writeModel(path string, kind modelKind, m saver) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating model file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write([]byte{byte(kind)}); err != nil {
		return err
	}
	return m.Save(f)
}

func openModel(path string) (modelKind, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, fmt.Errorf("opening model file %s: %w", path, err)
	}
	var header [1]byte
	if _, err := io.ReadFull(f, header[:]); err != nil {
		f.Close()
		return 0, nil, fmt.Errorf("reading model header from %s: %w", path, err)
	}
	return modelKind(header[0]), f, nil
}
