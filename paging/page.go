package paging

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/quantization"
	"github.com/hupe1980/pixgo/scene"
)

// MaxObjectsPerPage is the number of distinct object ids a single page
// can reference.
const MaxObjectsPerPage = 256

// ReservedObjectID is never a valid object id. Renderers use it to
// mark pixels not covered by any geometry.
const ReservedObjectID = uint32(math.MaxUint32)

var (
	// ErrTooManyObjects is returned when a page would need more than
	// MaxObjectsPerPage distinct object ids.
	ErrTooManyObjects = errors.New("too many distinct object ids for one page")

	// ErrReservedObjectID is returned when a chunk carries the
	// reserved object id.
	ErrReservedObjectID = errors.New("chunk uses reserved object id")

	// ErrIndexOutOfChunk is returned when a chunk triangle references
	// a vertex outside the chunk's vertex range.
	ErrIndexOutOfChunk = errors.New("triangle index outside chunk vertex range")
)

// Page is a self-contained, quantized batch of renderable triangles.
// Triangle indices reference the page-local position array; each
// triangle carries the 8-bit local id of the object it belongs to.
type Page struct {
	// ObjectIDMap maps local object ids to global ones. Only the
	// first NumObjects entries are valid.
	ObjectIDMap [MaxObjectsPerPage]uint32

	// NumObjects is the number of distinct objects in the page.
	NumObjects int

	// LocalObjectIDs holds the local object id per triangle.
	LocalObjectIDs []uint8

	// Positions are the page vertices, quantized at 16 bits per axis.
	Positions quantization.Positions

	// Triangles are index triples into Positions.
	Triangles []scene.Triangle

	// AABB is the dequantization domain of the page in world space.
	AABB geom.AABB
}

// GlobalID returns the global object id for a local one.
func (p *Page) GlobalID(local uint8) uint32 {
	return p.ObjectIDMap[local]
}

// TriangleCount returns the number of triangles in the page.
func (p *Page) TriangleCount() int {
	return len(p.Triangles)
}

// DequantizationMatrix returns the transform from raw quantized
// integer coordinates back to world space.
func (p *Page) DequantizationMatrix() geom.Mat4 {
	desc := p.Positions.Descriptor()

	s := desc.Extent / float32(math.MaxUint16)

	return geom.Translate(desc.Lower).Mul(geom.Scale(geom.Vec3{X: s, Y: s, Z: s}))
}

// GroupStrategy partitions chunks into groups that end up in one page
// each. It returns chunk indices per group.
type GroupStrategy func(chunks []Chunk) [][]int

// OneChunkPerPage puts every chunk into its own page. This is the
// default strategy; spatial strategies can batch nearby chunks into
// shared pages for better locality.
func OneChunkPerPage(chunks []Chunk) [][]int {
	groups := make([][]int, len(chunks))
	for i := range chunks {
		groups[i] = []int{i}
	}

	return groups
}

// Options configures the page builder.
type Options struct {
	// Strategy partitions chunks into pages.
	Strategy GroupStrategy
}

// DefaultOptions are the default page builder options.
var DefaultOptions = Options{
	Strategy: OneChunkPerPage,
}

// Builder builds pages from chunks.
type Builder struct {
	opts Options
}

// NewBuilder creates a new page builder.
func NewBuilder(optFns ...func(o *Options)) *Builder {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Builder{opts: opts}
}

// Build compiles chunks into pages. Groups without any triangles are
// dropped.
func (b *Builder) Build(chunks []Chunk) ([]*Page, error) {
	groups := b.opts.Strategy(chunks)

	pages := make([]*Page, 0, len(groups))

	for _, group := range groups {
		page, err := buildPage(chunks, group)
		if err != nil {
			return nil, err
		}

		if page != nil {
			pages = append(pages, page)
		}
	}

	return pages, nil
}

func buildPage(chunks []Chunk, group []int) (*Page, error) {
	var triangleCount, vertexCount int

	for _, ci := range group {
		triangleCount += chunks[ci].TriangleRange.Len()
		vertexCount += chunks[ci].VertexRange.Len()
	}

	if triangleCount == 0 {
		return nil, nil
	}

	page := &Page{
		LocalObjectIDs: make([]uint8, 0, triangleCount),
		Triangles:      make([]scene.Triangle, 0, triangleCount),
	}

	localByGlobal := make(map[uint32]uint8, len(group))
	world := make([]geom.Vec3, 0, vertexCount)

	for _, ci := range group {
		chunk := chunks[ci]
		if chunk.TriangleRange.IsEmpty() {
			continue
		}

		if chunk.ObjectID == ReservedObjectID {
			return nil, fmt.Errorf("%w: %d", ErrReservedObjectID, chunk.ObjectID)
		}

		local, ok := localByGlobal[chunk.ObjectID]
		if !ok {
			if page.NumObjects == MaxObjectsPerPage {
				return nil, fmt.Errorf("%w: limit is %d", ErrTooManyObjects, MaxObjectsPerPage)
			}

			local = uint8(page.NumObjects)
			page.ObjectIDMap[page.NumObjects] = chunk.ObjectID
			page.NumObjects++
			localByGlobal[chunk.ObjectID] = local
		}

		base := uint32(len(world))

		positions := chunk.Geometry.Positions()
		for i := chunk.VertexRange.Start; i < chunk.VertexRange.End; i++ {
			world = append(world, chunk.Transform.TransformPoint(positions[i]))
		}

		triangles := chunk.Geometry.Triangles()
		for i := chunk.TriangleRange.Start; i < chunk.TriangleRange.End; i++ {
			var tri scene.Triangle

			for k, idx := range triangles[i] {
				if idx < chunk.VertexRange.Start || idx >= chunk.VertexRange.End {
					return nil, fmt.Errorf("%w: triangle %d references vertex %d", ErrIndexOutOfChunk, i, idx)
				}

				tri[k] = base + (idx - chunk.VertexRange.Start)
			}

			page.Triangles = append(page.Triangles, tri)
			page.LocalObjectIDs = append(page.LocalObjectIDs, local)
		}
	}

	page.Positions = quantization.NewPositions(world, quantization.Bits16)

	desc := page.Positions.Descriptor()
	page.AABB = geom.AABB{
		Min: desc.Lower,
		Max: desc.Lower.Add(geom.Vec3{X: desc.Extent, Y: desc.Extent, Z: desc.Extent}),
	}

	return page, nil
}
