// Package scene simulates the ambient point cloud behind every page: a
// fixed set of points easing toward one of four precomputed shapes picked
// by the current route.
package scene

import (
	"math"
	"math/rand/v2"
	"strings"
)

// Shape names a target configuration of the point cloud.
type Shape string

const (
	ShapeSphere    Shape = "sphere"
	ShapeOrganic   Shape = "organic"
	ShapeFlow      Shape = "flow"
	ShapeContainer Shape = "container-silhouette"
)

// Shapes lists every shape.
var Shapes = []Shape{ShapeSphere, ShapeOrganic, ShapeFlow, ShapeContainer}

// ShapeForRoute maps a request path to its shape. Unknown paths get the
// sphere.
func ShapeForRoute(path string) Shape {
	switch {
	case path == "/" || path == "":
		return ShapeSphere
	case strings.HasPrefix(path, "/topics"):
		return ShapeOrganic
	case strings.HasPrefix(path, "/news"):
		return ShapeFlow
	case strings.HasPrefix(path, "/contact"):
		return ShapeContainer
	default:
		return ShapeSphere
	}
}

// IsHome reports whether path is the home route, which is rendered level.
func IsHome(path string) bool {
	return path == "/" || path == ""
}

// Targets holds the precomputed coordinates of every shape, laid out as
// x, y, z triples.
type Targets map[Shape][]float32

// NewTargets generates all shapes for count points from seed. The same
// seed always yields the same targets.
func NewTargets(count int, seed uint64) Targets {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	t := Targets{
		ShapeSphere:    make([]float32, count*3),
		ShapeOrganic:   make([]float32, count*3),
		ShapeFlow:      make([]float32, count*3),
		ShapeContainer: make([]float32, count*3),
	}

	for i := 0; i < count; i++ {
		i3 := i * 3
		put(t[ShapeSphere], i3, spherePoint(rng))
		put(t[ShapeOrganic], i3, organicPoint(rng))
		put(t[ShapeFlow], i3, flowPoint(rng))
		put(t[ShapeContainer], i3, containerPoint(rng))
	}
	return t
}

type vec3 [3]float64

func put(dst []float32, i3 int, p vec3) {
	dst[i3] = float32(p[0])
	dst[i3+1] = float32(p[1])
	dst[i3+2] = float32(p[2])
}

// spherePoint samples a shell of radius 3.5, 5% thick either way.
func spherePoint(rng *rand.Rand) vec3 {
	r := 3.5 * (0.95 + rng.Float64()*0.1)
	theta := 2 * math.Pi * rng.Float64()
	phi := math.Acos(2*rng.Float64() - 1)
	return vec3{
		r * math.Sin(phi) * math.Cos(theta),
		r * math.Sin(phi) * math.Sin(theta),
		r * math.Cos(phi),
	}
}

// organicPoint samples a sphere of base radius 2.8 with a lobed distortion.
func organicPoint(rng *rand.Rand) vec3 {
	phi := rng.Float64() * math.Pi * 2
	theta := rng.Float64() * math.Pi
	distortion := math.Sin(phi*5)*math.Cos(theta*4)*2 +
		math.Sin(phi*0.8)*1.5 +
		(rng.Float64()-0.5)*1
	r := 2.8 + distortion
	return vec3{
		r * math.Sin(theta) * math.Cos(phi),
		r * math.Sin(theta) * math.Sin(phi),
		r * math.Cos(theta),
	}
}

// flowPoint scatters points around a horizontal sine wave 14 units wide.
func flowPoint(rng *rand.Rand) vec3 {
	x := (rng.Float64() - 0.5) * 14
	return vec3{
		x,
		math.Sin(x*0.6)*1.5 + (rng.Float64()-0.5)*3,
		(rng.Float64() - 0.5) * 4,
	}
}

// containerPoint samples a post box: 60% cylinder body, 30% upper dome,
// 10% mail slot on the front face.
func containerPoint(rng *rand.Rand) vec3 {
	const radius = 1.5

	switch pick := rng.Float64(); {
	case pick < 0.6:
		angle := rng.Float64() * math.Pi * 2
		return vec3{
			math.Cos(angle) * radius,
			(rng.Float64()-0.5)*6 - 1,
			math.Sin(angle) * radius,
		}
	case pick < 0.9:
		theta := 2 * math.Pi * rng.Float64()
		phi := math.Acos(2*(rng.Float64()*0.5) - 1)
		return vec3{
			radius * math.Sin(phi) * math.Cos(theta),
			radius*math.Cos(phi) + 2,
			radius * math.Sin(phi) * math.Sin(theta),
		}
	default:
		return vec3{
			(rng.Float64() - 0.5) * 2,
			(rng.Float64()-0.5)*0.4 + 0.5,
			1.6,
		}
	}
}
