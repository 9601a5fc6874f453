// File: persistence.go
// Role: Binary on-disk persistence (C7): one fixed-layout file per
// backing array under a directory, written and read with
// encoding/binary. The one place this package reaches past the
// third-party stack into the standard library alone — see DESIGN.md
// for why no pack library fits this exact fixed-width shape.

package roadgraph

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/geoindex/roadgraph/flags"
	"github.com/geoindex/roadgraph/internal/bitset"
	"github.com/geoindex/roadgraph/internal/segstore"
)

const (
	fileLats     = "lats"
	fileLons     = "lons"
	fileRefs     = "refs"
	fileDeleted  = "deleted"
	fileSettings = "settings"
)

func edgeSegmentFile(i int) string {
	return fmt.Sprintf("edges%d", i)
}

const settingsMagic uint32 = 0x52474731 // "RGG1"

// settingsSlotCount is the number of required int64 slots in the
// settings file: nodeCount, creationTimeMillis, nextGlobalPointer,
// currentSegmentIndex, segmentSize, and the four bounds components
// (as raw float64 bits). Comfortably exceeds the minimum of three
// fields the format requires.
const settingsSlotCount = 9

// settingsSlotCountWithEdgeCount adds one supplemented slot,
// liveEdgeCount, after the required nine. Optimize never reclaims an
// orphaned edge record's physical slot (the segmented store only
// grows), so a linear rescan of the reloaded store would overcount
// edges removed by a prior deletion; persisting the authoritative
// in-memory counter avoids that.
const settingsSlotCountWithEdgeCount = settingsSlotCount + 1

// Flush runs Optimize, so pending deletions are compacted away, and
// then persists the graph's entire state to dir, creating it (and any
// missing parents) if necessary. Existing files of the same names are
// overwritten. dir is remembered so a later Close flushes there again.
//
// Flush is not safe to call concurrently with any write method.
//
// Complexity: O(V + E).
func (g *Graph) Flush(dir string) error {
	if err := g.Optimize(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("roadgraph: flush mkdir: %w", err)
	}

	if err := writeFloat32File(filepath.Join(dir, fileLats), g.lats[:g.nodeCount]); err != nil {
		return err
	}
	if err := writeFloat32File(filepath.Join(dir, fileLons), g.lons[:g.nodeCount]); err != nil {
		return err
	}
	if err := writeInt32File(filepath.Join(dir, fileRefs), g.head[:g.nodeCount]); err != nil {
		return err
	}
	if err := writeDeletedFile(filepath.Join(dir, fileDeleted), g.deleted); err != nil {
		return err
	}
	if err := writeEdgeSegments(dir, g.store); err != nil {
		return err
	}
	if err := writeSettingsFile(filepath.Join(dir, fileSettings), g); err != nil {
		return err
	}

	g.dir = dir
	return nil
}

// Open loads a graph previously written by Flush from dir. If dir does
// not exist, Open treats that as "no existing data" and returns a
// fresh, empty Graph (as NewGraph would), remembering dir so a later
// Flush or Close writes there — the same open-or-create pattern
// embedders would otherwise have to build around os.Stat themselves.
// A dir that exists but holds a corrupt or partial snapshot still
// fails with ErrFormatMismatch or the underlying I/O error.
//
// Complexity: O(V + E).
func Open(dir string, opts ...GraphOption) (*Graph, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			g := NewGraph(opts...)
			g.dir = dir
			return g, nil
		}
		return nil, fmt.Errorf("roadgraph: stat %s: %w", dir, err)
	}

	settings, err := readSettingsFile(filepath.Join(dir, fileSettings))
	if err != nil {
		return nil, err
	}

	lats, err := readFloat32File(filepath.Join(dir, fileLats))
	if err != nil {
		return nil, err
	}
	lons, err := readFloat32File(filepath.Join(dir, fileLons))
	if err != nil {
		return nil, err
	}
	if len(lats) != len(lons) {
		return nil, fmt.Errorf("%w: lats/lons length mismatch", ErrFormatMismatch)
	}
	if int64(settings.nodeCount) != int64(len(lats)) {
		return nil, fmt.Errorf("%w: nodeCount %d != len(lats) %d", ErrFormatMismatch, settings.nodeCount, len(lats))
	}
	head, err := readInt32File(filepath.Join(dir, fileRefs))
	if err != nil {
		return nil, err
	}
	if len(head) != len(lats) {
		return nil, fmt.Errorf("%w: refs/lats length mismatch", ErrFormatMismatch)
	}
	deleted, err := readDeletedFile(filepath.Join(dir, fileDeleted))
	if err != nil {
		return nil, err
	}
	store, err := readEdgeSegments(dir, settings)
	if err != nil {
		return nil, err
	}

	g := &Graph{
		codec:              flags.NewDefaultCodec(),
		capacityHint:       defaultCapacityHint,
		creationTimeMillis: settings.creationTimeMillis,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.lats = lats
	g.lons = lons
	g.head = head
	g.nodeCount = int(settings.nodeCount)
	g.store = store
	g.deleted = deleted
	g.bounds = Bounds{
		MinLat: math.Float64frombits(settings.minLatBits),
		MaxLat: math.Float64frombits(settings.maxLatBits),
		MinLon: math.Float64frombits(settings.minLonBits),
		MaxLon: math.Float64frombits(settings.maxLonBits),
	}
	g.liveEdgeCount = int(settings.liveEdgeCount)
	g.dir = dir

	return g, nil
}

type settingsRecord struct {
	nodeCount           int64
	creationTimeMillis  int64
	nextGlobalPointer   int64
	currentSegmentIndex int64
	segmentSize         int64
	minLonBits          uint64
	maxLonBits          uint64
	minLatBits          uint64
	maxLatBits          uint64
	liveEdgeCount       int64
}

func writeSettingsFile(path string, g *Graph) error {
	slots := []int64{
		int64(g.nodeCount),
		g.creationTimeMillis,
		int64(g.store.Next()),
		int64(g.store.SegmentCount()) - 1,
		int64(g.store.SegmentSize()),
		int64(math.Float64bits(g.bounds.MinLon)),
		int64(math.Float64bits(g.bounds.MaxLon)),
		int64(math.Float64bits(g.bounds.MinLat)),
		int64(math.Float64bits(g.bounds.MaxLat)),
		int64(g.liveEdgeCount),
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("roadgraph: write %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, settingsMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int32(len(slots))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, slots); err != nil {
		return err
	}
	return w.Flush()
}

func readSettingsFile(path string) (settingsRecord, error) {
	var rec settingsRecord

	f, err := os.Open(path)
	if err != nil {
		return rec, fmt.Errorf("roadgraph: read %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var magic uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return rec, fmt.Errorf("roadgraph: read %s: %w", path, err)
	}
	if magic != settingsMagic {
		return rec, fmt.Errorf("%w: bad settings magic", ErrFormatMismatch)
	}

	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return rec, err
	}
	if count < 3 {
		return rec, fmt.Errorf("%w: settings has fewer than 3 fields", ErrFormatMismatch)
	}

	slots := make([]int64, count)
	if err := binary.Read(r, binary.LittleEndian, slots); err != nil {
		return rec, err
	}

	rec.nodeCount = slots[0]
	if count > 1 {
		rec.creationTimeMillis = slots[1]
	}
	if count > 2 {
		rec.nextGlobalPointer = slots[2]
	}
	if count >= settingsSlotCount {
		rec.currentSegmentIndex = slots[3]
		rec.segmentSize = slots[4]
		rec.minLonBits = uint64(slots[5])
		rec.maxLonBits = uint64(slots[6])
		rec.minLatBits = uint64(slots[7])
		rec.maxLatBits = uint64(slots[8])
	} else {
		rec.minLatBits = math.Float64bits(math.Inf(1))
		rec.maxLatBits = math.Float64bits(math.Inf(-1))
		rec.minLonBits = math.Float64bits(math.Inf(1))
		rec.maxLonBits = math.Float64bits(math.Inf(-1))
	}
	if count >= settingsSlotCountWithEdgeCount {
		rec.liveEdgeCount = slots[9]
	}
	return rec, nil
}

func writeFloat32File(path string, vals []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("roadgraph: write %s: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, int32(len(vals))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, vals); err != nil {
		return err
	}
	return w.Flush()
}

func readFloat32File(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("roadgraph: read %s: %w", path, err)
	}
	defer f.Close()
	r := bufio.NewReader(f)
	var n int32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	vals := make([]float32, n)
	if err := binary.Read(r, binary.LittleEndian, vals); err != nil {
		return nil, err
	}
	return vals, nil
}

func writeInt32File(path string, vals []int32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("roadgraph: write %s: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, int32(len(vals))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, vals); err != nil {
		return err
	}
	return w.Flush()
}

func readInt32File(path string) ([]int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("roadgraph: read %s: %w", path, err)
	}
	defer f.Close()
	r := bufio.NewReader(f)
	var n int32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	vals := make([]int32, n)
	if err := binary.Read(r, binary.LittleEndian, vals); err != nil {
		return nil, err
	}
	return vals, nil
}

func writeDeletedFile(path string, d *bitset.Dense) error {
	var ids []int32
	d.Each(func(i uint) { ids = append(ids, int32(i)) })
	return writeInt32File(path, ids)
}

func readDeletedFile(path string) (*bitset.Dense, error) {
	ids, err := readInt32File(path)
	if err != nil {
		return nil, err
	}
	d := bitset.NewDense()
	for _, id := range ids {
		d.Set(uint(id))
	}
	return d, nil
}

// writeEdgeSegments writes one file per segment of the edge store
// (edges0, edges1, ..., edgesN), each containing that segment's raw
// int32 contents in full (segmentSize values; the settings file's
// nextGlobalPointer marks how much of the final segment is live).
func writeEdgeSegments(dir string, s *segstore.Store) error {
	for i := 0; i < s.SegmentCount(); i++ {
		if err := writeInt32Raw(filepath.Join(dir, edgeSegmentFile(i)), s.Segment(i)); err != nil {
			return err
		}
	}
	return nil
}

func readEdgeSegments(dir string, settings settingsRecord) (*segstore.Store, error) {
	segSize := int32(settings.segmentSize)
	segCount := int(settings.currentSegmentIndex) + 1
	if segCount <= 0 {
		// No edge ever allocated: currentSegmentIndex was persisted as
		// -1 (SegmentCount()-1 on an empty store).
		return segstore.NewFromSegments(segSize, nil, 0), nil
	}
	if segSize <= 0 {
		return nil, fmt.Errorf("%w: bad edge store settings", ErrFormatMismatch)
	}

	segments := make([][]int32, segCount)
	for i := 0; i < segCount; i++ {
		seg, err := readInt32Raw(filepath.Join(dir, edgeSegmentFile(i)), segSize)
		if err != nil {
			return nil, err
		}
		segments[i] = seg
	}
	return segstore.NewFromSegments(segSize, segments, int32(settings.nextGlobalPointer)), nil
}

// writeInt32Raw writes vals with no length prefix: segment files are
// always exactly segmentSize long, a fact recorded once in settings
// rather than repeated per file.
func writeInt32Raw(path string, vals []int32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("roadgraph: write %s: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, vals); err != nil {
		return err
	}
	return w.Flush()
}

func readInt32Raw(path string, n int32) ([]int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("roadgraph: read %s: %w", path, err)
	}
	defer f.Close()
	vals := make([]int32, n)
	if err := binary.Read(bufio.NewReader(f), binary.LittleEndian, vals); err != nil {
		return nil, err
	}
	return vals, nil
}
