// Package testgraph provides deterministic and seeded fixture
// topologies for exercising roadgraph.Graph in tests, in the style of
// a property-based graph builder: small Constructor closures that
// populate a *roadgraph.Graph with nodes and edges in a stable,
// documented order.
package testgraph

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/geoindex/roadgraph"
	"github.com/geoindex/roadgraph/flags"
)

// Sentinel errors. Callers branch with errors.Is; never compare
// strings.
var (
	ErrTooFewVertices      = errors.New("testgraph: parameter too small")
	ErrInvalidProbability  = errors.New("testgraph: probability out of range")
	ErrNeedRandSource      = errors.New("testgraph: rng is required")
)

// Constructor populates g with a fixture topology. BuildGraph applies
// one or more in sequence against a fresh Graph.
type Constructor func(g *roadgraph.Graph) error

// BuildGraph constructs a new Graph and applies each Constructor in
// order, stopping at the first error.
func BuildGraph(opts []roadgraph.GraphOption, cs ...Constructor) (*roadgraph.Graph, error) {
	g := roadgraph.NewGraph(opts...)
	for _, c := range cs {
		if err := c(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Reference origin and metric-to-degree conversion for every
// fixture below. Fixtures lay nodes out on a local tangent-plane
// approximation; fine for the small extents test graphs need.
const (
	originLat          = 50.0
	originLon          = 10.0
	metersPerLatDegree = 111_320.0
)

func lonDegreesPerMeter(lat float64) float64 {
	return 1.0 / (metersPerLatDegree * math.Cos(lat*math.Pi/180))
}

func latAt(row int, stepMeters float64) float64 {
	return originLat + float64(row)*stepMeters/metersPerLatDegree
}

func lonAt(lat float64, col int, stepMeters float64) float64 {
	return originLon + float64(col)*stepMeters*lonDegreesPerMeter(lat)
}

func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusMeters = 6_371_000.0
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}

// File-local constants for method tagging and parameter minima.
const (
	methodPath         = "Path"
	minPathNodes       = 2
	methodGrid         = "Grid"
	minGridDim         = 2
	methodRandomSparse = "RandomSparse"
	minSparseNodes     = 1
	probMin            = 0.0
	probMax            = 1.0

	defaultStepMeters = 100.0
)

// Path returns a Constructor that lays n nodes, ids 0..n-1, along a
// straight line running east at defaultStepMeters spacing, and
// connects consecutive nodes with a bidirectional edge of that
// length.
//
// Complexity: O(n).
func Path(n int) Constructor {
	return func(g *roadgraph.Graph) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}

		for i := 0; i < n; i++ {
			lon := lonAt(originLat, i, defaultStepMeters)
			if err := g.SetNode(int32(i), originLat, lon); err != nil {
				return fmt.Errorf("%s: SetNode(%d): %w", methodPath, i, err)
			}
		}
		for i := 1; i < n; i++ {
			if _, err := g.AddEdge(int32(i-1), int32(i), defaultStepMeters, flags.Both); err != nil {
				return fmt.Errorf("%s: AddEdge(%d,%d): %w", methodPath, i-1, i, err)
			}
		}
		return nil
	}
}

// Grid returns a Constructor that lays out a rows*cols rectangular
// mesh, node (r,c) getting id r*cols+c, with bidirectional edges to
// its right and lower neighbors. Useful for exercising the bounding
// box and compaction against a topology with real, non-collinear
// degree.
//
// Complexity: O(rows*cols).
func Grid(rows, cols int) Constructor {
	return func(g *roadgraph.Graph) error {
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("%s: rows=%d cols=%d < min=%d: %w", methodGrid, rows, cols, minGridDim, ErrTooFewVertices)
		}

		id := func(r, c int) int32 { return int32(r*cols + c) }

		for r := 0; r < rows; r++ {
			lat := latAt(r, defaultStepMeters)
			for c := 0; c < cols; c++ {
				lon := lonAt(lat, c, defaultStepMeters)
				if err := g.SetNode(id(r, c), lat, lon); err != nil {
					return fmt.Errorf("%s: SetNode(%d,%d): %w", methodGrid, r, c, err)
				}
			}
		}

		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if c+1 < cols {
					dist := distanceBetween(g, id(r, c), id(r, c+1))
					if _, err := g.AddEdge(id(r, c), id(r, c+1), dist, flags.Both); err != nil {
						return fmt.Errorf("%s: AddEdge right (%d,%d): %w", methodGrid, r, c, err)
					}
				}
				if r+1 < rows {
					dist := distanceBetween(g, id(r, c), id(r+1, c))
					if _, err := g.AddEdge(id(r, c), id(r+1, c), dist, flags.Both); err != nil {
						return fmt.Errorf("%s: AddEdge down (%d,%d): %w", methodGrid, r, c, err)
					}
				}
			}
		}
		return nil
	}
}

func distanceBetween(g *roadgraph.Graph, a, b int32) float64 {
	return haversineMeters(g.Lat(a), g.Lon(a), g.Lat(b), g.Lon(b))
}

// RandomSparse returns a Constructor that lays out n nodes on a
// square-ish grid and samples each of the undirected pairs {i,j} with
// i<j independently with probability p, in stable (i asc, j asc)
// trial order, using rng for the Bernoulli draws.
//
// Complexity: O(n) vertices + O(n^2) Bernoulli trials.
func RandomSparse(n int, p float64, rng *rand.Rand) Constructor {
	return func(g *roadgraph.Graph) error {
		if n < minSparseNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodRandomSparse, n, minSparseNodes, ErrTooFewVertices)
		}
		if p < probMin || p > probMax {
			return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w", methodRandomSparse, p, probMin, probMax, ErrInvalidProbability)
		}
		if rng == nil && p > 0.0 && p < 1.0 {
			return fmt.Errorf("%s: rng is required: %w", methodRandomSparse, ErrNeedRandSource)
		}

		cols := int(math.Ceil(math.Sqrt(float64(n))))
		for i := 0; i < n; i++ {
			r, c := i/cols, i%cols
			lat := latAt(r, defaultStepMeters)
			lon := lonAt(lat, c, defaultStepMeters)
			if err := g.SetNode(int32(i), lat, lon); err != nil {
				return fmt.Errorf("%s: SetNode(%d): %w", methodRandomSparse, i, err)
			}
		}

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				include := p == 1.0
				if rng != nil {
					include = rng.Float64() <= p
				}
				if !include {
					continue
				}
				dist := distanceBetween(g, int32(i), int32(j))
				if _, err := g.AddEdge(int32(i), int32(j), dist, flags.Both); err != nil {
					return fmt.Errorf("%s: AddEdge(%d,%d): %w", methodRandomSparse, i, j, err)
				}
			}
		}
		return nil
	}
}
