package scene

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/Supremolink81/gotracer/types"
)

// The Material interface describes how a surface scatters incoming light.
// Scatter returns the color attenuation and the outgoing ray; ok=false means
// the ray was absorbed and the path terminates.
type Material interface {
	Scatter(rayIn Ray, rec HitRecord, rng *rand.Rand) (attenuation types.Vec3, scattered Ray, ok bool)
}

// The Emitter interface is implemented by materials that emit light.
type Emitter interface {
	Emit(u, v float32, p types.Vec3) types.Vec3
}

// A diffuse surface scattering rays in a cosine-weighted distribution around
// the surface normal.
type Lambertian struct {
	Albedo Texture
}

// Create a lambertian material with a solid albedo.
func NewLambertian(albedo types.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolid(albedo)}
}

// Create a lambertian material with a textured albedo.
func NewTexturedLambertian(albedo Texture) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

func (m *Lambertian) Scatter(_ Ray, rec HitRecord, rng *rand.Rand) (types.Vec3, Ray, bool) {
	scatterDir := rec.Normal.Add(RandomInUnitSphere(rng))
	if scatterDir.NearZero() {
		scatterDir = rec.Normal
	}
	return m.Albedo.Sample(rec.U, rec.V, rec.Point), NewRay(rec.Point, scatterDir), true
}

// A specular surface reflecting rays around the mirror direction, perturbed
// by a fuzz factor.
type Metal struct {
	Albedo types.Vec3
	Fuzz   float32
}

// Create a metal material. Fuzz is clamped to [0, 1].
func NewMetal(albedo types.Vec3, fuzz float32) *Metal {
	if fuzz < 0 {
		fuzz = 0
	} else if fuzz > 1 {
		fuzz = 1
	}
	return &Metal{Albedo: albedo, Fuzz: fuzz}
}

func (m *Metal) Scatter(rayIn Ray, rec HitRecord, rng *rand.Rand) (types.Vec3, Ray, bool) {
	reflected := rayIn.Dir.Normalize().Reflect(rec.Normal)
	if m.Fuzz > 0 {
		reflected = reflected.Add(RandomInUnitSphere(rng).Mul(m.Fuzz))
	}
	scattered := NewRay(rec.Point, reflected)

	// Rays perturbed below the surface horizon are absorbed.
	return m.Albedo, scattered, scattered.Dir.Dot(rec.Normal) > 0
}

// A transparent surface refracting rays per Snell's law. Glass transmits
// without color loss, so the attenuation is always white.
type Dielectric struct {
	// Index of refraction relative to the surrounding medium.
	RefractionIndex float32
}

// Create a dielectric material.
func NewDielectric(refractionIndex float32) *Dielectric {
	return &Dielectric{RefractionIndex: refractionIndex}
}

func (m *Dielectric) Scatter(rayIn Ray, rec HitRecord, rng *rand.Rand) (types.Vec3, Ray, bool) {
	etaRatio := m.RefractionIndex
	if rec.FrontFace {
		etaRatio = 1.0 / m.RefractionIndex
	}

	unitDir := rayIn.Dir.Normalize()
	cosTheta := math32.Min(unitDir.Mul(-1).Dot(rec.Normal), 1.0)
	sinTheta := math32.Sqrt(1.0 - cosTheta*cosTheta)

	// Reflect on total internal reflection, or probabilistically based on
	// the Fresnel reflectance.
	var outDir types.Vec3
	if etaRatio*sinTheta > 1.0 || schlick(cosTheta, etaRatio) > rng.Float32() {
		outDir = unitDir.Reflect(rec.Normal)
	} else {
		outDir = unitDir.Refract(rec.Normal, etaRatio)
	}

	return types.XYZ(1, 1, 1), NewRay(rec.Point, outDir), true
}

// Schlick's approximation of the Fresnel reflectance.
func schlick(cosine, etaRatio float32) float32 {
	r0 := (1 - etaRatio) / (1 + etaRatio)
	r0 *= r0
	return r0 + (1-r0)*math32.Pow(1-cosine, 5)
}

// An emissive surface. Light sources never scatter; they only contribute
// their emitted radiance.
type Light struct {
	Emission Texture
}

// Create a light with a uniform emission color. Values above 1 brighten the
// scene beyond the display range before tone mapping.
func NewLight(emission types.Vec3) *Light {
	return &Light{Emission: NewSolid(emission)}
}

func (m *Light) Scatter(_ Ray, _ HitRecord, _ *rand.Rand) (types.Vec3, Ray, bool) {
	return types.Vec3{}, Ray{}, false
}

func (m *Light) Emit(u, v float32, p types.Vec3) types.Vec3 {
	return m.Emission.Sample(u, v, p)
}

// A material scattering uniformly in all directions. Used for the interior of
// constant-density media.
type Isotropic struct {
	Albedo Texture
}

// Create an isotropic material with a solid albedo.
func NewIsotropic(albedo types.Vec3) *Isotropic {
	return &Isotropic{Albedo: NewSolid(albedo)}
}

func (m *Isotropic) Scatter(_ Ray, rec HitRecord, rng *rand.Rand) (types.Vec3, Ray, bool) {
	return m.Albedo.Sample(rec.U, rec.V, rec.Point), NewRay(rec.Point, RandomUnitVector(rng)), true
}
