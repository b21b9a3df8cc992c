// Package systems implements the SPH particle passes: smoothing kernels,
// neighbour search, density and force evaluation, boundary resolution and the
// batch executor that runs the per-particle passes in parallel.
package systems

import (
	"cmp"
	"math"
	"slices"

	"github.com/pthm-cable/sph/components"
)

// Cell hash primes.
const (
	hashPrimeX = 73856093
	hashPrimeY = 19349663
)

// emptyBucket marks a hash key with no particles.
const emptyBucket = -1

// Neighbor is a particle found within the smoothing radius of a query point.
type Neighbor struct {
	Index  int
	DistSq float32 // squared distance, avoids sqrt in the density pass
}

// cellEntry is one sorted slot: the particle index and its cell hash.
type cellEntry struct {
	Key   int32
	Index int32
}

// SpatialHash is a compact hash grid with cell size equal to the smoothing
// radius. It is rebuilt from scratch every substep and owns only index
// permutations; positions are borrowed from the caller.
//
// The table size tracks the live particle count, so distant cells can share a
// bucket. Such candidates are rejected by the distance test.
type SpatialHash struct {
	cellSize float32
	n        int
	entries  []cellEntry // sorted ascending by Key
	start    []int32     // start[key] = first sorted slot with that key, or emptyBucket
	points   []components.Vec2
}

// NewSpatialHash allocates a grid able to index up to capacity particles.
func NewSpatialHash(capacity int) *SpatialHash {
	return &SpatialHash{
		entries: make([]cellEntry, capacity),
		start:   make([]int32, capacity),
	}
}

// Capacity returns the maximum number of indexable particles.
func (g *SpatialHash) Capacity() int { return len(g.entries) }

// Len returns the number of particles indexed by the last Rebuild.
func (g *SpatialHash) Len() int { return g.n }

// Rebuild indexes points with cell size h. len(points) must not exceed the
// capacity. The slice is retained until the next Rebuild and must not be
// mutated while queries run.
func (g *SpatialHash) Rebuild(points []components.Vec2, h float32) {
	n := len(points)
	if n > len(g.entries) {
		panic("systems: spatial hash rebuilt past capacity")
	}
	g.cellSize = h
	g.n = n
	g.points = points
	if n == 0 {
		return
	}

	entries := g.entries[:n]
	for i, p := range points {
		cx, cy := cellCoord(p, h)
		entries[i] = cellEntry{Key: hashCell(cx, cy, n), Index: int32(i)}
	}
	slices.SortStableFunc(entries, func(a, b cellEntry) int {
		return cmp.Compare(a.Key, b.Key)
	})

	start := g.start[:n]
	for i := range start {
		start[i] = emptyBucket
	}
	for i, e := range entries {
		if i == 0 || e.Key != entries[i-1].Key {
			start[e.Key] = int32(i)
		}
	}
}

// ForEachNeighbor calls fn for every indexed particle within the cell size of
// p, including a particle sitting exactly on p. Each particle is reported at
// most once.
func (g *SpatialHash) ForEachNeighbor(p components.Vec2, fn func(j int, distSq float32)) {
	if g.n == 0 {
		return
	}
	cx, cy := cellCoord(p, g.cellSize)
	radiusSq := g.cellSize * g.cellSize

	// Adjacent cells may alias to the same bucket; scan each bucket once.
	var scanned [9]int32
	numScanned := 0

	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			key := hashCell(cx+dx, cy+dy, g.n)
			if slices.Contains(scanned[:numScanned], key) {
				continue
			}
			scanned[numScanned] = key
			numScanned++

			first := g.start[key]
			if first == emptyBucket {
				continue
			}
			for i := int(first); i < g.n && g.entries[i].Key == key; i++ {
				j := int(g.entries[i].Index)
				distSq := g.points[j].Sub(p).LenSq()
				if distSq <= radiusSq {
					fn(j, distSq)
				}
			}
		}
	}
}

// QueryInto appends all neighbours of p to dst and returns the extended slice.
// Reuse dst across calls to avoid allocations.
func (g *SpatialHash) QueryInto(dst []Neighbor, p components.Vec2) []Neighbor {
	g.ForEachNeighbor(p, func(j int, distSq float32) {
		dst = append(dst, Neighbor{Index: j, DistSq: distSq})
	})
	return dst
}

// CellKey returns the bucket key p hashes to under the current table size.
func (g *SpatialHash) CellKey(p components.Vec2) int32 {
	if g.n == 0 {
		return emptyBucket
	}
	cx, cy := cellCoord(p, g.cellSize)
	return hashCell(cx, cy, g.n)
}

// BucketStart returns the first sorted slot of key, or -1 if the bucket is empty.
func (g *SpatialHash) BucketStart(key int32) int {
	if key < 0 || int(key) >= g.n {
		return emptyBucket
	}
	return int(g.start[key])
}

// Slot returns the particle index and key stored in sorted slot i.
func (g *SpatialHash) Slot(i int) (index int, key int32) {
	e := g.entries[i]
	return int(e.Index), e.Key
}

// cellCoord returns the integer cell containing p.
func cellCoord(p components.Vec2, cellSize float32) (int32, int32) {
	return int32(math.Floor(float64(p.X / cellSize))), int32(math.Floor(float64(p.Y / cellSize)))
}

// hashCell maps a cell to [0, tableSize).
func hashCell(cx, cy int32, tableSize int) int32 {
	v := (int64(cx)*hashPrimeX + int64(cy)*hashPrimeY) % int64(tableSize)
	if v < 0 {
		v += int64(tableSize)
	}
	return int32(v)
}
