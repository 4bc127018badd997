package visualization

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

// sliceExtensions lists the file types read by LoadVolume
var sliceExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tif":  true,
	".tiff": true,
}

// Volume is a reference image held in subject space. Voxel (x, y, z) sits at
// the subject point (x*spacing.X, y*spacing.Y, z*spacing.Z) in mm.
type Volume struct {
	// data holds intensities in [0, 1], x fastest then y then z
	data []float64

	width  int
	height int
	depth  int

	spacing r3.Vec
}

// NewVolume wraps voxel data of the given dimensions and spacing in mm.
func NewVolume(data []float64, width, height, depth int, spacing r3.Vec) (*Volume, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("volume dimensions must be positive, got %dx%dx%d", width, height, depth)
	}
	if len(data) != width*height*depth {
		return nil, fmt.Errorf("volume data has %d voxels, expected %d", len(data), width*height*depth)
	}
	if spacing.X <= 0 || spacing.Y <= 0 || spacing.Z <= 0 {
		return nil, fmt.Errorf("voxel spacing must be positive, got %v", spacing)
	}
	return &Volume{data: data, width: width, height: height, depth: depth, spacing: spacing}, nil
}

// LoadVolume loads a stack of JPEG, PNG or TIFF slices from dir. Slices are
// ordered by the number in their file names and stacked along subject Z.
// Slices whose size differs from the first one are resampled to match it.
func LoadVolume(dir string, spacing r3.Vec) (*Volume, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var imageFiles []string
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !entry.IsDir() && sliceExtensions[ext] {
			imageFiles = append(imageFiles, entry.Name())
		}
	}
	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("no slice images found in %s", dir)
	}

	sort.SliceStable(imageFiles, func(i, j int) bool {
		return extractNumber(imageFiles[i]) < extractNumber(imageFiles[j])
	})

	var data []float64
	var width, height int
	for i, name := range imageFiles {
		img, err := loadImage(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to load image %s: %w", name, err)
		}

		bounds := img.Bounds()
		if i == 0 {
			width, height = bounds.Dx(), bounds.Dy()
			data = make([]float64, 0, width*height*len(imageFiles))
		} else if bounds.Dx() != width || bounds.Dy() != height {
			img = resample(img, width, height)
		}
		data = append(data, imageToFloat(img)...)
	}

	return NewVolume(data, width, height, len(imageFiles), spacing)
}

// Dimensions returns the volume size in voxels.
func (v *Volume) Dimensions() (width, height, depth int) {
	return v.width, v.height, v.depth
}

// Spacing returns the voxel spacing in mm.
func (v *Volume) Spacing() r3.Vec {
	return v.spacing
}

// Center returns the subject point at the middle of the volume.
func (v *Volume) Center() r3.Vec {
	return r3.Vec{
		X: float64(v.width-1) * v.spacing.X / 2,
		Y: float64(v.height-1) * v.spacing.Y / 2,
		Z: float64(v.depth-1) * v.spacing.Z / 2,
	}
}

// Voxel returns the intensity stored at a voxel index.
func (v *Volume) Voxel(x, y, z int) float64 {
	return v.data[z*v.width*v.height+y*v.width+x]
}

// Sample returns the trilinearly interpolated intensity at a subject point.
// ok is false outside the volume.
func (v *Volume) Sample(p r3.Vec) (value float64, ok bool) {
	fx, okX := voxelCoord(p.X/v.spacing.X, v.width)
	fy, okY := voxelCoord(p.Y/v.spacing.Y, v.height)
	fz, okZ := voxelCoord(p.Z/v.spacing.Z, v.depth)
	if !okX || !okY || !okZ {
		return 0, false
	}

	x0, y0, z0 := int(fx), int(fy), int(fz)
	x1, y1, z1 := min(x0+1, v.width-1), min(y0+1, v.height-1), min(z0+1, v.depth-1)
	tx, ty, tz := fx-float64(x0), fy-float64(y0), fz-float64(z0)

	c00 := lerp(v.Voxel(x0, y0, z0), v.Voxel(x1, y0, z0), tx)
	c10 := lerp(v.Voxel(x0, y1, z0), v.Voxel(x1, y1, z0), tx)
	c01 := lerp(v.Voxel(x0, y0, z1), v.Voxel(x1, y0, z1), tx)
	c11 := lerp(v.Voxel(x0, y1, z1), v.Voxel(x1, y1, z1), tx)

	c0 := lerp(c00, c10, ty)
	c1 := lerp(c01, c11, ty)
	return lerp(c0, c1, tz), true
}

// AutoWindowLevel returns a window of four standard deviations centred on the
// mean intensity.
func (v *Volume) AutoWindowLevel() (window, level float64) {
	mean, std := stat.MeanStdDev(v.data, nil)
	if math.IsNaN(std) || std == 0 {
		return 1, mean
	}
	return 4 * std, mean
}

// voxelCoord clamps rounding noise at the volume faces and reports whether c
// lies within [0, n-1].
func voxelCoord(c float64, n int) (float64, bool) {
	const eps = 1e-9
	hi := float64(n - 1)
	if c < -eps || c > hi+eps {
		return 0, false
	}
	return math.Max(0, math.Min(hi, c)), true
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// extractNumber extracts the numeric part from a filename
func extractNumber(filename string) int {
	base := filepath.Base(filename)
	var digits strings.Builder
	for _, c := range base {
		if c >= '0' && c <= '9' {
			digits.WriteRune(c)
		}
	}

	if digits.Len() > 0 {
		if num, err := strconv.Atoi(digits.String()); err == nil {
			return num
		}
	}
	return 0
}

// loadImage loads an image from a file
func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	return img, err
}

// resample scales img to width x height with Catmull-Rom filtering
func resample(img image.Image, width, height int) image.Image {
	dst := image.NewGray16(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// imageToFloat converts a single image to intensities in [0, 1]
func imageToFloat(img image.Image) []float64 {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	result := make([]float64, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, _, _, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			result[y*width+x] = float64(r) / 65535.0
		}
	}

	return result
}
