// Package visualization reslices the reference volume along view planes and
// writes the results as preview images.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"
	"gonum.org/v1/gonum/spatial/r3"

	"histoalign/internal/models"
	"histoalign/pkg/camera"
	"histoalign/pkg/frame"
)

// Plane describes an image plane in World space. The plane is the z=0 plane
// of WorldOPlane with image columns along its +X axis and rows along -Y, and
// is centred on its origin.
type Plane struct {
	WorldOPlane frame.Frame

	// Width and Height are the image size in pixels
	Width  int
	Height int

	// PixelSpacing is the World size of a pixel in mm
	PixelSpacing float64
}

// Viewer reslices a reference volume positioned in World by world_O_subject.
type Viewer struct {
	volume *Volume

	// window and level map intensities onto the display range
	window float64
	level  float64
}

// NewViewer creates a viewer for vol using the identity intensity window.
func NewViewer(vol *Volume) *Viewer {
	return &Viewer{volume: vol, window: 1, level: 0.5}
}

// Volume returns the resliced volume.
func (v *Viewer) Volume() *Volume {
	return v.volume
}

// SetWindowLevel sets the intensity window width and level. Non-positive
// widths are ignored.
func (v *Viewer) SetWindowLevel(window, level float64) {
	if window > 0 {
		v.window = window
	}
	v.level = level
}

// WindowLevel returns the intensity window width and level.
func (v *Viewer) WindowLevel() (window, level float64) {
	return v.window, v.level
}

// ExtractPlane samples the volume on a plane. Pixels falling outside the
// volume are black.
func (v *Viewer) ExtractPlane(p Plane, worldOSubject frame.Frame) (*image.Gray16, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("plane size must be positive, got %dx%d", p.Width, p.Height)
	}
	if p.PixelSpacing <= 0 {
		return nil, fmt.Errorf("pixel spacing must be positive, got %f", p.PixelSpacing)
	}

	// subject_O_plane maps plane pixels straight into the volume
	subjectOPlane := worldOSubject.Inverse().Compose(p.WorldOPlane)
	cx := float64(p.Width-1) / 2
	cy := float64(p.Height-1) / 2

	img := image.NewGray16(image.Rect(0, 0, p.Width, p.Height))
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			local := r3.Vec{
				X: (float64(x) - cx) * p.PixelSpacing,
				Y: (cy - float64(y)) * p.PixelSpacing,
			}
			value, ok := v.volume.Sample(subjectOPlane.MapPointToWorld(local))
			if !ok {
				continue
			}
			img.SetGray16(x, y, color.Gray16{Y: v.display(value)})
		}
	}

	return img, nil
}

// display maps an intensity through the window onto 16 bits.
func (v *Viewer) display(value float64) uint16 {
	t := (value-v.level)/v.window + 0.5
	return uint16(math.Round(math.Max(0, math.Min(1, t)) * 65535))
}

// CameraPlane returns the plane shown by a camera at the given square image
// size: its z=0 plane, covering the visible half height.
func CameraPlane(cam *camera.Camera, size int) Plane {
	_, hh := cam.ViewHalfExtents()
	spacing := 1.0
	if size > 0 {
		spacing = 2 * hh / float64(size)
	}
	return Plane{
		WorldOPlane:  cam.WorldOCamera(),
		Width:        size,
		Height:       size,
		PixelSpacing: spacing,
	}
}

// SaveSlice saves an extracted slice. The format follows the file extension:
// JPEG, PNG, or TIFF which keeps the full 16 bit range.
func (v *Viewer) SaveSlice(img image.Image, filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".tif", ".tiff":
	default:
		return fmt.Errorf("unsupported image format %q", ext)
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	switch ext {
	case ".png":
		return png.Encode(file, img)
	case ".tif", ".tiff":
		return tiff.Encode(file, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
	}
}

// ViewCamera pairs a view with the camera showing it.
type ViewCamera struct {
	View   models.View
	Camera *camera.Camera
}

// SavePreviews reslices the volume for each view and saves one image per view
// in outputDir, named after the view UID with the given format extension. It
// returns the written paths.
func (v *Viewer) SavePreviews(views []ViewCamera, worldOSubject frame.Frame, size int, outputDir, format string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, err
	}

	var paths []string
	for _, vc := range views {
		img, err := v.ExtractPlane(CameraPlane(vc.Camera, size), worldOSubject)
		if err != nil {
			return paths, fmt.Errorf("view %s: %w", vc.View.UID, err)
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("view_%s.%s", vc.View.UID, strings.TrimPrefix(format, ".")))
		if err := v.SaveSlice(img, filename); err != nil {
			return paths, fmt.Errorf("view %s: %w", vc.View.UID, err)
		}
		paths = append(paths, filename)
	}

	return paths, nil
}
