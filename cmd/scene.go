package cmd

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math/rand"
	"os"
	"sort"

	"github.com/Supremolink81/gotracer/scene"
	"github.com/Supremolink81/gotracer/types"
)

// The built-in scene gallery. Scene construction happens here, outside the
// render core, which only ever sees a compiled immutable scene.
var sceneBuilders = map[string]func(aspect float32) *scene.Scene{
	"spheres": spheresScene,
	"cornell": cornellScene,
	"marbles": marblesScene,
	"smoke":   smokeScene,
	"earth":   earthScene,
}

// Look up a gallery scene by name and compile it.
func buildScene(name string, aspect float32) (*scene.Scene, error) {
	builder, exists := sceneBuilders[name]
	if !exists {
		return nil, fmt.Errorf("unknown scene %q; run list-scenes for the available names", name)
	}

	sc := builder(aspect)
	sc.Compile()
	return sc, nil
}

// Names of the gallery scenes in stable order.
func sceneNames() []string {
	names := make([]string, 0, len(sceneBuilders))
	for name := range sceneBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// A large sphere field: a checkered ground plane, three feature spheres and a
// grid of small randomized diffuse/metal/glass spheres.
func spheresScene(aspect float32) *scene.Scene {
	camera := scene.NewCamera(scene.CameraOptions{
		LookFrom:  types.XYZ(13, 2, 3),
		LookAt:    types.XYZ(0, 0, 0),
		Up:        types.XYZ(0, 1, 0),
		Vfov:      20,
		Aspect:    aspect,
		Aperture:  0.1,
		FocusDist: 10,
	})

	sc := scene.New(camera)

	ground := scene.NewTexturedLambertian(scene.NewChecker(
		types.XYZ(0.2, 0.3, 0.1),
		types.XYZ(0.9, 0.9, 0.9),
	))
	sc.Add(scene.NewSphere(types.XYZ(0, -1000, 0), 1000, ground))

	rng := rand.New(rand.NewSource(20))
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			origin := types.XYZ(
				float32(a)+0.9*rng.Float32(),
				0.2,
				float32(b)+0.9*rng.Float32(),
			)
			if origin.Sub(types.XYZ(4, 0.2, 0)).Len() <= 0.9 {
				continue
			}

			var mat scene.Material
			switch choose := rng.Float32(); {
			case choose < 0.8:
				albedo := types.XYZ(
					rng.Float32()*rng.Float32(),
					rng.Float32()*rng.Float32(),
					rng.Float32()*rng.Float32(),
				)
				mat = scene.NewLambertian(albedo)
			case choose < 0.95:
				albedo := types.XYZ(
					0.5+0.5*rng.Float32(),
					0.5+0.5*rng.Float32(),
					0.5+0.5*rng.Float32(),
				)
				mat = scene.NewMetal(albedo, 0.5*rng.Float32())
			default:
				mat = scene.NewDielectric(1.5)
			}
			sc.Add(scene.NewSphere(origin, 0.2, mat))
		}
	}

	sc.Add(
		scene.NewSphere(types.XYZ(0, 1, 0), 1, scene.NewDielectric(1.5)),
		scene.NewSphere(types.XYZ(-4, 1, 0), 1, scene.NewLambertian(types.XYZ(0.4, 0.2, 0.1))),
		scene.NewSphere(types.XYZ(4, 1, 0), 1, scene.NewMetal(types.XYZ(0.7, 0.6, 0.5), 0)),
	)
	return sc
}

// The Cornell box: emissive ceiling panel, colored walls and two boxes.
func cornellScene(aspect float32) *scene.Scene {
	camera := scene.NewCamera(scene.CameraOptions{
		LookFrom:  types.XYZ(278, 278, -800),
		LookAt:    types.XYZ(278, 278, 0),
		Up:        types.XYZ(0, 1, 0),
		Vfov:      40,
		Aspect:    aspect,
		FocusDist: 800,
	})

	sc := scene.New(camera)
	sc.Background = scene.BlackBackground

	red := scene.NewLambertian(types.XYZ(0.65, 0.05, 0.05))
	white := scene.NewLambertian(types.XYZ(0.73, 0.73, 0.73))
	green := scene.NewLambertian(types.XYZ(0.12, 0.45, 0.15))
	light := scene.NewLight(types.XYZ(15, 15, 15))

	sc.Add(
		&scene.RectYZ{Y0: 0, Y1: 555, Z0: 0, Z1: 555, K: 555, Material: green},
		&scene.RectYZ{Y0: 0, Y1: 555, Z0: 0, Z1: 555, K: 0, Material: red},
		&scene.RectXZ{X0: 213, X1: 343, Z0: 227, Z1: 332, K: 554, Material: light},
		&scene.RectXZ{X0: 0, X1: 555, Z0: 0, Z1: 555, K: 0, Material: white},
		&scene.RectXZ{X0: 0, X1: 555, Z0: 0, Z1: 555, K: 555, Material: white},
		&scene.RectXY{X0: 0, X1: 555, Y0: 0, Y1: 555, K: 555, Material: white},
		scene.NewBox(types.XYZ(130, 0, 65), types.XYZ(295, 165, 230), white),
		scene.NewBox(types.XYZ(265, 0, 295), types.XYZ(430, 330, 460), white),
	)
	return sc
}

// Perlin-marble spheres under an emissive sun sphere.
func marblesScene(aspect float32) *scene.Scene {
	camera := scene.NewCamera(scene.CameraOptions{
		LookFrom:  types.XYZ(13, 2, 3),
		LookAt:    types.XYZ(0, 0, 0),
		Up:        types.XYZ(0, 1, 0),
		Vfov:      20,
		Aspect:    aspect,
		FocusDist: 10,
	})

	sc := scene.New(camera)

	marble := scene.NewTexturedLambertian(scene.NewNoise(4, 7))
	sc.Add(
		scene.NewSphere(types.XYZ(0, -1000, 0), 1000, marble),
		scene.NewSphere(types.XYZ(0, 2, 0), 2, marble),
		scene.NewSphere(types.XYZ(0, 7, 0), 2, scene.NewLight(types.XYZ(4, 4, 4))),
	)
	return sc
}

// A globe wrapped in an image texture under the gradient sky. The texture is
// read from earth.png in the working directory; a missing or unreadable file
// falls back to a solid blue so the scene still renders.
func earthScene(aspect float32) *scene.Scene {
	camera := scene.NewCamera(scene.CameraOptions{
		LookFrom:  types.XYZ(13, 2, 3),
		LookAt:    types.XYZ(0, 0, 0),
		Up:        types.XYZ(0, 1, 0),
		Vfov:      20,
		Aspect:    aspect,
		FocusDist: 10,
	})

	sc := scene.New(camera)
	sc.Add(scene.NewSphere(types.XYZ(0, 0, 0), 2, scene.NewTexturedLambertian(loadTexture("earth.png"))))
	return sc
}

// Load an image file as a texture, falling back to a solid color when the
// file cannot be read or decoded.
func loadTexture(path string) scene.Texture {
	f, err := os.Open(path)
	if err != nil {
		logger.Warningf("could not open texture %s: %s; using solid fallback", path, err)
		return scene.NewSolid(types.XYZ(0.2, 0.3, 0.7))
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		logger.Warningf("could not decode texture %s: %s; using solid fallback", path, err)
		return scene.NewSolid(types.XYZ(0.2, 0.3, 0.7))
	}
	return scene.NewImage(img)
}

// A Cornell-style room with boxes of constant-density smoke and fog.
func smokeScene(aspect float32) *scene.Scene {
	sc := cornellScene(aspect)

	dark := scene.NewIsotropic(types.XYZ(0, 0, 0))
	fog := scene.NewIsotropic(types.XYZ(1, 1, 1))
	white := scene.NewLambertian(types.XYZ(0.73, 0.73, 0.73))

	sc.Add(
		scene.NewVolume(scene.NewBox(types.XYZ(100, 170, 65), types.XYZ(265, 335, 230), white), 0.01, dark),
		scene.NewVolume(scene.NewBox(types.XYZ(300, 170, 295), types.XYZ(465, 335, 460), white), 0.01, fog),
	)
	return sc
}
