// Package main renders a voxel scene to a PNG by casting one traversal query
// per pixel, as a thin consumer of the traversal engine.
package main

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/edaniels/golog"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
	"gonum.org/v1/gonum/num/quat"

	"github.com/voxtrace/voxtrace/octree"
	"github.com/voxtrace/voxtrace/trace"
	"github.com/voxtrace/voxtrace/world"
)

var logger = golog.NewDevelopmentLogger("voxview")

func main() {
	goutils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	Width      int    `flag:"width,default=640,usage=output image width"`
	Height     int    `flag:"height,default=480,usage=output image height"`
	Out        string `flag:"out,default=voxview.png,usage=output PNG path"`
	Scene      string `flag:"scene,usage=octree wire file (renders a built-in scene when empty)"`
	RootIndex  int    `flag:"root-index,default=0,usage=root node index for -scene"`
	RootHeight int    `flag:"root-height,default=5,usage=root height for -scene"`
	Fov        int    `flag:"fov,default=70,usage=vertical field of view in degrees"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := goutils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}

	objects, err := buildScene(argsParsed, logger)
	if err != nil {
		return err
	}
	compositor := world.NewCompositor(objects, logger)

	start := time.Now()
	img := render(compositor, argsParsed.Width, argsParsed.Height, argsParsed.Fov)
	logger.Infow("render finished",
		"width", argsParsed.Width,
		"height", argsParsed.Height,
		"objects", len(objects),
		"took", time.Since(start),
	)

	out, err := os.Create(argsParsed.Out)
	if err != nil {
		return errors.Wrap(err, "error creating output file")
	}
	defer goutils.UncheckedErrorFunc(out.Close)
	return png.Encode(out, img)
}

func buildScene(args Arguments, logger golog.Logger) ([]world.Object, error) {
	if args.Scene != "" {
		f, err := os.Open(args.Scene)
		if err != nil {
			return nil, errors.Wrap(err, "error opening scene file")
		}
		defer goutils.UncheckedErrorFunc(f.Close)
		store, err := octree.ReadStore(f, logger)
		if err != nil {
			return nil, err
		}
		root := octree.Root{Index: uint32(args.RootIndex), Height: uint32(args.RootHeight)}
		return []world.Object{{
			Orientation: world.NoRotation(),
			Store:       store,
			Root:        root,
			Extent:      trace.CubeExtent(root.Height),
		}}, nil
	}

	// Built-in scene: a 16^3 floor slab with a central pillar, plus a second
	// copy tilted about the vertical axis.
	store, root := octree.MakeStore(4, func(x, y, z uint32) bool {
		if y == 0 {
			return true
		}
		return y <= 2 && x >= 3 && x <= 4 && z >= 3 && z <= 4
	})
	s, c := math.Sin(math.Pi/8), math.Cos(math.Pi/8)
	return []world.Object{
		{
			Orientation: world.NoRotation(),
			Store:       store,
			Root:        root,
			Extent:      trace.CubeExtent(4),
		},
		{
			Position:    r3.Vector{X: 20, Y: 2, Z: 4},
			Orientation: quat.Number{Real: c, Jmag: s},
			Store:       store,
			Root:        root,
			Extent:      trace.CubeExtent(4),
		},
	}, nil
}

func render(compositor *world.Compositor, width, height, fovDegrees int) image.Image {
	eye := mgl64.Vec3{24, 14, -18}
	target := mgl64.Vec3{12, 2, 8}
	forward := target.Sub(eye).Normalize()
	right := forward.Cross(mgl64.Vec3{0, 1, 0}).Normalize()
	up := right.Cross(forward)

	tanFov := math.Tan(float64(fovDegrees) * math.Pi / 360)
	aspect := float64(width) / float64(height)
	origin := r3.Vector{X: eye.X(), Y: eye.Y(), Z: eye.Z()}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rows := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < runtime.NumCPU(); w++ {
		wg.Add(1)
		goutils.PanicCapturingGo(func() {
			defer wg.Done()
			for y := range rows {
				for x := 0; x < width; x++ {
					u := (2*(float64(x)+0.5)/float64(width) - 1) * tanFov * aspect
					v := (1 - 2*(float64(y)+0.5)/float64(height)) * tanFov
					d := forward.Add(right.Mul(u)).Add(up.Mul(v))
					dir := r3.Vector{X: d.X(), Y: d.Y(), Z: d.Z()}
					img.Set(x, y, shade(compositor.Query(origin, dir), dir))
				}
			}
		})
	}
	for y := 0; y < height; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()
	return img
}

// shade gives hits a lambert-style brightness from the surface normal and
// misses a vertical sky gradient.
func shade(hit world.Hit, dir r3.Vector) color.RGBA {
	if hit.Occupant == 0 {
		t := 0.5 * (dir.Normalize().Y + 1)
		return color.RGBA{
			R: uint8(255 * (1 - 0.5*t)),
			G: uint8(255 * (1 - 0.3*t)),
			B: 255,
			A: 255,
		}
	}
	light := r3.Vector{X: 0.4, Y: 0.8, Z: -0.45}.Normalize()
	lambert := math.Max(0.25, hit.Normal.Dot(light))
	base := [3]float64{0.85, 0.6, 0.35}
	return color.RGBA{
		R: uint8(255 * base[0] * lambert),
		G: uint8(255 * base[1] * lambert),
		B: uint8(255 * base[2] * lambert),
		A: 255,
	}
}
