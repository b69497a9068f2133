// Package zstdsnap stores point-in-time world exports as zstd-compressed
// files, one directory per simulation, one file per snapshotted tick. Each
// file opens with a JSON header line followed by a gob payload.
package zstdsnap

import (
	"bufio"
	"context"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"
)

type Header struct {
	Version      int    `json:"version"`
	SimulationID string `json:"simulation_id"`
	Tick         int64  `json:"tick"`
}

type Store struct {
	dir string
}

var _ ports.SnapshotStore = (*Store)(nil)

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// path zero-pads the tick so lexical order is tick order.
func (s *Store) path(simulationID string, tick int64) string {
	return filepath.Join(s.dir, simulationID, fmt.Sprintf("%012d.snap", tick))
}

// Write exports the world at its current tick. The file lands under a temp
// name and is renamed in, so Latest never sees a torn snapshot.
func (s *Store) Write(_ context.Context, world *mind.World) error {
	path := s.path(world.SimulationID, world.Tick)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	werr := func() error {
		enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		bw := bufio.NewWriterSize(enc, 256*1024)

		hb, _ := json.Marshal(Header{Version: 1, SimulationID: world.SimulationID, Tick: world.Tick})
		if _, err := bw.Write(hb); err != nil {
			enc.Close()
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			enc.Close()
			return err
		}
		if err := gob.NewEncoder(bw).Encode(world); err != nil {
			enc.Close()
			return fmt.Errorf("gob encode: %w", err)
		}
		if err := bw.Flush(); err != nil {
			enc.Close()
			return err
		}
		return enc.Close()
	}()
	cerr := f.Close()
	if werr != nil {
		os.Remove(tmp)
		return werr
	}
	if cerr != nil {
		os.Remove(tmp)
		return cerr
	}
	return os.Rename(tmp, path)
}

func (s *Store) Read(_ context.Context, simulationID string, tick int64) (*mind.World, error) {
	return readFile(s.path(simulationID, tick))
}

func (s *Store) Latest(_ context.Context, simulationID string) (*mind.World, error) {
	dir := filepath.Join(s.dir, simulationID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	best := ""
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".snap") {
			continue
		}
		if name > best {
			best = name
		}
	}
	if best == "" {
		return nil, ports.ErrNotFound
	}
	return readFile(filepath.Join(dir, best))
}

func readFile(path string) (*mind.World, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	// Header line is advisory; the gob payload carries the whole world.
	if _, err := br.ReadBytes('\n'); err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}

	var w mind.World
	if err := gob.NewDecoder(br).Decode(&w); err != nil {
		return nil, fmt.Errorf("gob decode: %w", err)
	}
	return &w, nil
}
