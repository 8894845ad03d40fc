// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// DefaultSettle is how long the watcher waits for a burst of file events to
// end before it re-reads the file.
const DefaultSettle = 50 * time.Millisecond

// FileWatcher feeds a YAML draft file into a [Sink]. The file is a flat
// mapping of field key to scalar value; every save re-reads it, calls Update
// per key and then FlushIfChanged.
//
// The parent directory is watched rather than the file, so editors that save
// by renaming a temporary file are followed.
type FileWatcher struct {
	path   string
	sink   Sink
	settle time.Duration

	watcher *fsnotify.Watcher

	logger *logger.Logger
}

// NewFileWatcher starts watching the directory of path. The file itself does
// not have to exist yet.
func NewFileWatcher(path string, sink Sink, log *logger.Logger) (*FileWatcher, error) {
	if sink == nil {
		return nil, ErrNilSink
	}
	if path == "" {
		return nil, ErrEmptyDraftPath
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve draft file path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err = watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &FileWatcher{
		path:    abs,
		sink:    sink,
		settle:  DefaultSettle,
		watcher: watcher,
		logger:  log,
	}, nil
}

// Path returns the absolute path of the watched file.
func (w *FileWatcher) Path() string {
	return w.path
}

// Run applies the current file once, then every settled change, until ctx is
// cancelled. The fsnotify watcher is closed on return.
func (w *FileWatcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	if err := w.Load(ctx); err != nil {
		w.logger.Warn().Err(err).Str("file", w.path).Msg("initial draft file load failed")
	}

	var (
		timer   *time.Timer
		settled <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.settle)
			} else {
				timer.Reset(w.settle)
			}
			settled = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Err(err).Str("file", w.path).Msg("draft file watcher error")

		case <-settled:
			settled = nil
			if err := w.Load(ctx); err != nil {
				w.logger.Warn().Err(err).Str("file", w.path).Msg("draft file reload failed")
			}
		}
	}
}

func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// Load reads the file and hands its fields to the sink. A missing file is not
// an error. Null and non-scalar values are skipped.
func (w *FileWatcher) Load(ctx context.Context) error {
	fields, err := readDraftFile(w.path)
	if err != nil {
		return err
	}
	if fields == nil {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	applied := 0
	for _, key := range keys {
		node := fields[key]
		if node.Kind != yaml.ScalarNode || node.ShortTag() == "!!null" {
			w.logger.Debug().Str("file", w.path).Str("key", key).Msg("non-scalar draft value skipped")
			continue
		}
		w.sink.Update(key, node.Value)
		applied++
	}

	w.logger.Debug().Str("file", w.path).Int("fields", applied).Msg("draft file applied")

	return w.sink.FlushIfChanged(ctx)
}

func readDraftFile(path string) (map[string]yaml.Node, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read draft file: %w", err)
	}

	fields := map[string]yaml.Node{}
	if err = yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDraftFile, err)
	}

	return fields, nil
}
