package palette

import (
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// WeightedPoint is one palette entry's position in weighted-OKLab space,
// tagged with its index into the originating Palette.
type WeightedPoint struct {
	Coords [3]float64
	Index  int
}

// Neighbor is one result of an N-nearest query: the palette index and its
// squared Euclidean distance from the query point.
type Neighbor struct {
	Index  int
	SqDist float64
}

// Index is the K-NN spatial index over 3D weighted-OKLab coordinates
// described in §4.8, backed by gonum's k-d tree. It is built once and never
// mutated afterward; concurrent reads from many goroutines are safe.
type Index struct {
	tree *kdtree.Tree
}

// NewIndex builds a K-NN index over pts. Built only by callers that need
// fewer than all palette colors per query (§4.4's "K-NN optional" rule);
// exhaustive callers iterate their palette slice directly instead.
func NewIndex(pts []WeightedPoint) *Index {
	data := make(points, len(pts))
	for i, p := range pts {
		data[i] = weightedPoint{coords: p.Coords, index: p.Index}
	}
	return &Index{tree: kdtree.New(data, false)}
}

// Nearest returns the palette index and squared distance of the single
// closest point to q.
func (ix *Index) Nearest(q [3]float64) (int, float64) {
	query := weightedPoint{coords: q, index: -1}
	c, dist := ix.tree.Nearest(query)
	return c.(weightedPoint).index, dist
}

// NearestN returns the n closest points to q, sorted by ascending squared
// distance.
func (ix *Index) NearestN(q [3]float64, n int) []Neighbor {
	query := weightedPoint{coords: q, index: -1}
	keeper := kdtree.NewNKeeper(n)
	ix.tree.NearestSet(keeper, query)

	out := make([]Neighbor, 0, len(keeper.Heap))
	for _, cd := range keeper.Heap {
		out = append(out, Neighbor{
			Index:  cd.Comparable.(weightedPoint).index,
			SqDist: cd.Dist,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SqDist < out[j].SqDist })
	return out
}

// weightedPoint is the kdtree.Comparable implementation carrying a palette
// index payload alongside its 3D coordinates.
type weightedPoint struct {
	coords [3]float64
	index  int
}

func (p weightedPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(weightedPoint)
	return p.coords[d] - q.coords[d]
}

func (p weightedPoint) Dims() int { return 3 }

func (p weightedPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(weightedPoint)
	dl := p.coords[0] - q.coords[0]
	da := p.coords[1] - q.coords[1]
	db := p.coords[2] - q.coords[2]
	return dl*dl + da*da + db*db
}

// points is the kdtree.Interface implementation over a slice of
// weightedPoint, following gonum's own Points/Plane example pattern for
// implementing Pivot via Partition + MedianOfRandoms.
type points []weightedPoint

func (p points) Index(i int) kdtree.Comparable        { return p[i] }
func (p points) Len() int                             { return len(p) }
func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }
func (p points) Pivot(d kdtree.Dim) int {
	return plane{points: p, dim: d}.Pivot()
}

type plane struct {
	points
	dim kdtree.Dim
}

func (p plane) Less(i, j int) bool { return p.points[i].coords[p.dim] < p.points[j].coords[p.dim] }
func (p plane) Swap(i, j int)      { p.points[i], p.points[j] = p.points[j], p.points[i] }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
func (p plane) Pivot() int {
	return kdtree.Partition(p, kdtree.MedianOfRandoms(p, kdtree.Randoms))
}
