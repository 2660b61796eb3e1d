package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/segmentio/encoding/json"
	"github.com/sirupsen/logrus"
)

const (
	HexOutputFile = "national-colors-hex.json"
	RGBOutputFile = "national-colors-rgb.json"
)

type Emitter struct {
	dir string
	log *logrus.Logger
}

type EmitterOptions struct {
	OutputDir string
	Logger    *logrus.Logger
}

func NewEmitter(options *EmitterOptions) *Emitter {
	return &Emitter{
		dir: options.OutputDir,
		log: options.Logger,
	}
}

func (e *Emitter) HexPath() string {
	return filepath.Join(e.dir, HexOutputFile)
}

func (e *Emitter) RGBPath() string {
	return filepath.Join(e.dir, RGBOutputFile)
}

// Emit writes the hex table and its RGB view, creating the output directory
// when needed and replacing existing files. Both payloads are encoded before
// either file is touched.
func (e *Emitter) Emit(table *ColorTable) error {
	rgb, err := table.RGB()

	if err != nil {
		return fmt.Errorf("derive rgb colors: %w", err)
	}

	hexData, err := json.Marshal(table)

	if err != nil {
		return fmt.Errorf("encode hex colors: %w", err)
	}

	rgbData, err := json.Marshal(rgb)

	if err != nil {
		return fmt.Errorf("encode rgb colors: %w", err)
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := e.writeFile(e.HexPath(), hexData); err != nil {
		return err
	}

	return e.writeFile(e.RGBPath(), rgbData)
}

// writeFile replaces path through a temporary file in the same directory so a
// failed write never leaves a truncated file behind.
func (e *Emitter) writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(e.dir, "."+filepath.Base(path)+".*")

	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	e.log.WithField("bytes", len(data)).Infof("Wrote %s", path)

	return nil
}
