package scene

import (
	"math"
	"sync"
)

const (
	transitionRate = 0.04
	noiseSpeed     = 0.4
	noiseAmplitude = 0.015
	spinRate       = 0.015
	tiltAngle      = 0.2
	tiltRateAway   = 0.02
	tiltRateHome   = 0.05
)

// Renderer owns the point buffer. Step is called by a single writer;
// Frame may be called concurrently.
type Renderer struct {
	targets Targets
	count   int

	mu        sync.RWMutex
	positions []float32
	rotationX float64
	rotationY float64
	shape     Shape
	frames    uint64
}

// NewRenderer starts every point on its sphere position.
func NewRenderer(targets Targets) *Renderer {
	sphere := targets[ShapeSphere]
	return &Renderer{
		targets:   targets,
		count:     len(sphere) / 3,
		positions: append([]float32(nil), sphere...),
		shape:     ShapeSphere,
	}
}

// Count returns the number of points.
func (r *Renderer) Count() int {
	return r.count
}

// Step advances one frame: every coordinate moves a fixed fraction of the
// way toward the route's shape, then a small time-driven oscillation is
// added. elapsed is the time since the scene started, in seconds.
func (r *Renderer) Step(route string, elapsed float64) {
	shape := ShapeForRoute(route)
	target := r.targets[shape]

	r.mu.Lock()
	defer r.mu.Unlock()

	pos := r.positions
	for i := 0; i < r.count; i++ {
		i3 := i * 3
		noise := float32(math.Sin(elapsed*noiseSpeed+float64(i)*0.001) * noiseAmplitude)
		pos[i3] = lerp32(pos[i3], target[i3], transitionRate) + noise
		pos[i3+1] = lerp32(pos[i3+1], target[i3+1], transitionRate) + noise
		pos[i3+2] = lerp32(pos[i3+2], target[i3+2], transitionRate) + noise
	}

	r.rotationY = elapsed * spinRate
	if IsHome(route) {
		r.rotationX = lerp(r.rotationX, 0, tiltRateHome)
	} else {
		r.rotationX = lerp(r.rotationX, tiltAngle, tiltRateAway)
	}
	r.shape = shape
	r.frames++
}

// Frame is a sampled copy of the renderer state.
type Frame struct {
	Shape     Shape     `json:"shape"`
	Frame     uint64    `json:"frame"`
	RotationX float64   `json:"rotationX"`
	RotationY float64   `json:"rotationY"`
	Count     int       `json:"count"`
	Stride    int       `json:"stride"`
	Points    []float32 `json:"points"`
}

// Frame copies every stride-th point. stride < 1 is treated as 1.
func (r *Renderer) Frame(stride int) Frame {
	if stride < 1 {
		stride = 1
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	points := make([]float32, 0, (r.count/stride+1)*3)
	for i := 0; i < r.count; i += stride {
		points = append(points, r.positions[i*3:i*3+3]...)
	}

	return Frame{
		Shape:     r.shape,
		Frame:     r.frames,
		RotationX: r.rotationX,
		RotationY: r.rotationY,
		Count:     r.count,
		Stride:    stride,
		Points:    points,
	}
}

// Distance returns the mean distance between the current points and the
// given shape.
func (r *Renderer) Distance(shape Shape) float64 {
	target := r.targets[shape]

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < r.count; i++ {
		i3 := i * 3
		dx := float64(r.positions[i3] - target[i3])
		dy := float64(r.positions[i3+1] - target[i3+1])
		dz := float64(r.positions[i3+2] - target[i3+2])
		sum += math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	return sum / float64(r.count)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerp32(a, b float32, t float32) float32 {
	return a + (b-a)*t
}
