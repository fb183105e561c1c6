package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/tilebake/bake"
	"github.com/milk9111/tilebake/collision"
	"github.com/milk9111/tilebake/common"
	"github.com/milk9111/tilebake/levels"
)

const (
	collisionTypeProbe cp.CollisionType = iota + 1
	collisionTypeSolid
	collisionTypeHazard
)

// segmentRadius gives baked edges some thickness so fast probes do not
// tunnel through them.
const segmentRadius = 1.0

// ShapeInfo is stored as user data on every static shape.
type ShapeInfo struct {
	Layer  string
	Hole   bool
	Hazard bool
}

// ColliderWorld is a chipmunk space holding baked level colliders. Each baked
// path becomes a closed chain of static segments.
type ColliderWorld struct {
	space    *cp.Space
	width    float64
	height   float64
	segments int
	probes   []*cp.Body
}

// NewColliderWorld builds static geometry from a bake report, in the report's
// output units, plus segments along the level bounds.
func NewColliderWorld(r *bake.Report) *ColliderWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})

	cw := &ColliderWorld{
		space:  space,
		width:  float64(r.Width) * r.PixelsPerUnit,
		height: float64(r.Height) * r.PixelsPerUnit,
	}
	for _, layer := range r.Layers {
		for _, path := range layer.WorldPaths(r.PixelsPerUnit) {
			info := &ShapeInfo{Layer: layer.Name, Hole: path.IsHole()}
			path.Segments(func(a, b collision.Point) {
				cw.addSegment(cp.Vector{X: a.X, Y: a.Y}, cp.Vector{X: b.X, Y: b.Y}, info)
			})
		}
	}
	cw.addBounds()
	return cw
}

func (cw *ColliderWorld) addSegment(a, b cp.Vector, info *ShapeInfo) {
	shape := cp.NewSegment(cw.space.StaticBody, a, b, segmentRadius)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.UserData = info
	cw.space.AddShape(shape)
	cw.segments++
}

// add world bounds matching the level size
func (cw *ColliderWorld) addBounds() {
	w, h := cw.width, cw.height
	if w <= 0 || h <= 0 {
		return
	}
	info := &ShapeInfo{Layer: "bounds"}
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: w, Y: 0}}, // top
		{a: cp.Vector{X: 0, Y: h}, b: cp.Vector{X: w, Y: h}}, // bottom
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: h}}, // left
		{a: cp.Vector{X: w, Y: 0}, b: cp.Vector{X: w, Y: h}}, // right
	}
	for _, seg := range segments {
		cw.addSegment(seg.a, seg.b, info)
	}
}

// AddHazards adds a sensor triangle for every hazard tile of a layer. Hazards
// are not part of the baked outline, so they stay individual shapes.
func (cw *ColliderWorld) AddHazards(lvl *levels.Level, layer int, tileSize float64) int {
	if layer < 0 || layer >= len(lvl.Layers) {
		return 0
	}
	info := &ShapeInfo{Layer: lvl.LayerMeta[layer].Name, Hazard: true}
	n := 0
	for y := 0; y < lvl.Height; y++ {
		for x := 0; x < lvl.Width; x++ {
			if lvl.Tile(layer, x, y) != levels.TileTriangle {
				continue
			}
			x0 := float64(x) * tileSize
			y0 := float64(y) * tileSize
			verts := []cp.Vector{
				{X: x0, Y: y0 + tileSize},
				{X: x0 + tileSize, Y: y0 + tileSize},
				{X: x0 + tileSize/2.0, Y: y0},
			}
			shape := cp.NewPolyShapeRaw(cw.space.StaticBody, 3, verts, 0)
			shape.SetSensor(true)
			shape.SetCollisionType(collisionTypeHazard)
			shape.UserData = info
			cw.space.AddShape(shape)
			n++
		}
	}
	return n
}

func (cw *ColliderWorld) Space() *cp.Space {
	return cw.space
}

// SegmentCount returns the number of static segments, bounds included.
func (cw *ColliderWorld) SegmentCount() int {
	return cw.segments
}

// Hit describes the first shape crossed by a ray.
type Hit struct {
	Point  collision.Point
	Normal collision.Point
	// Alpha is the fraction of the ray travelled before the hit.
	Alpha float64
	Info  *ShapeInfo
}

// Raycast returns the first shape between from and to, probes included.
// Sensors are ignored.
func (cw *ColliderWorld) Raycast(from, to collision.Point) (Hit, bool) {
	filter := cp.SHAPE_FILTER_ALL
	info := cw.space.SegmentQueryFirst(cp.Vector{X: from.X, Y: from.Y}, cp.Vector{X: to.X, Y: to.Y}, 0, filter)
	if info.Shape == nil {
		return Hit{}, false
	}
	hit := Hit{
		Point:  collision.Point{X: info.Point.X, Y: info.Point.Y},
		Normal: collision.Point{X: info.Normal.X, Y: info.Normal.Y},
		Alpha:  info.Alpha,
	}
	hit.Info, _ = info.Shape.UserData.(*ShapeInfo)
	return hit, true
}

// DropProbe adds a dynamic circle at (x, y) that falls under gravity and
// comes to rest on the baked colliders.
func (cw *ColliderWorld) DropProbe(x, y, radius float64) *cp.Body {
	mass := 1.0
	body := cw.space.AddBody(cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{})))
	body.SetPosition(cp.Vector{X: x, Y: y})
	shape := cw.space.AddShape(cp.NewCircle(body, radius, cp.Vector{}))
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeProbe)
	cw.probes = append(cw.probes, body)
	return body
}

// Probes returns the current probe positions.
func (cw *ColliderWorld) Probes() []collision.Point {
	out := make([]collision.Point, len(cw.probes))
	for i, b := range cw.probes {
		p := b.Position()
		out[i] = collision.Point{X: p.X, Y: p.Y}
	}
	return out
}

// ClearProbes removes every probe body and its shape.
func (cw *ColliderWorld) ClearProbes() {
	for _, b := range cw.probes {
		var shapes []*cp.Shape
		b.EachShape(func(s *cp.Shape) {
			shapes = append(shapes, s)
		})
		for _, s := range shapes {
			cw.space.RemoveShape(s)
		}
		cw.space.RemoveBody(b)
	}
	cw.probes = nil
}

func (cw *ColliderWorld) Step(dt float64) {
	cw.space.Step(dt)
}

// DrawSpace renders every shape through a chipmunk drawer.
func (cw *ColliderWorld) DrawSpace(d cp.Drawer) {
	cp.DrawSpace(cw.space, d)
}
