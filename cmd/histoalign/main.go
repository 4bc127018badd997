package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"histoalign/internal/models"
	"histoalign/pkg/config"
	"histoalign/pkg/frame"
	"histoalign/pkg/interaction"
	"histoalign/pkg/transformation"
	"histoalign/pkg/visualization"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "histoalign.yaml", "YAML configuration file")
	initConfig := flag.Bool("init-config", false, "Write the default configuration to -config and exit")
	verbose := flag.Bool("verbose", false, "Log view registration and interaction mode changes")
	crosshairs := flag.String("crosshairs", "0,0,0", "Initial crosshairs position in World (LPS) mm as x,y,z")
	modeName := flag.String("mode", interaction.ModePointer.String(), "Initial interaction mode")
	volumeDir := flag.String("volume-dir", "", "Directory containing the reference image as JPEG, PNG or TIFF slices")
	spacing := flag.String("spacing", "1,1,1", "Reference image voxel spacing in mm as x,y,z")
	previewDir := flag.String("preview-dir", "", "Directory to save a reslice preview per view (overrides config)")
	flag.Parse()

	if *initConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatalf("Failed to write default config: %v", err)
		}
		fmt.Printf("Default configuration written to: %s\n", *configPath)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *previewDir != "" {
		cfg.Output.PreviewDir = *previewDir
	}

	layouts, err := cfg.ParsedLayouts()
	if err != nil {
		log.Fatalf("Invalid layout: %v", err)
	}
	var views []models.View
	for _, l := range layouts {
		views = append(views, l.Views...)
	}
	convention, err := cfg.Convention()
	if err != nil {
		log.Fatalf("Invalid interaction settings: %v", err)
	}
	mode, err := interaction.ParseModeType(*modeName)
	if err != nil {
		log.Fatalf("Invalid mode: %v", err)
	}
	origin, err := parseVec(*crosshairs)
	if err != nil {
		log.Fatalf("Invalid -crosshairs: %v", err)
	}

	fmt.Println("================================")
	fmt.Println("HISTOLOGY TO MRI ALIGNMENT: VIEW SETUP")
	fmt.Printf("Convention: %v, mode: %v\n", convention, mode)
	fmt.Println("================================")

	opts := []interaction.Option{
		interaction.WithSettings(cfg.InteractionSettings()),
		interaction.WithConvention(convention),
	}
	if *verbose || cfg.Output.Verbose {
		opts = append(opts, interaction.WithLogger(log.New(os.Stderr, "histoalign: ", log.LstdFlags)))
	}

	transforms := transformation.NewManager()
	transforms.StageCrosshairsOrigin(origin)
	transforms.CommitCrosshairsFrame()
	transforms.CommitSlideStackFrame()

	manager, err := interaction.NewManager(transforms, opts...)
	if err != nil {
		log.Fatalf("Failed to create interaction manager: %v", err)
	}
	if err := manager.RegisterViews(views); err != nil {
		log.Fatalf("Failed to register views: %v", err)
	}
	if err := manager.SetInteractionModeType(mode); err != nil {
		log.Fatalf("Failed to set interaction mode: %v", err)
	}

	fmt.Printf("Registered %d views in %d layouts\n", len(views), len(layouts))
	for _, l := range layouts {
		fmt.Printf("Layout %s:\n", l.Name)
		for _, v := range l.Views {
			printView(manager, v, convention)
		}
	}

	if *volumeDir == "" {
		return
	}

	// Load the reference image and centre it on the World origin
	voxelSpacing, err := parseVec(*spacing)
	if err != nil {
		log.Fatalf("Invalid -spacing: %v", err)
	}
	volume, err := visualization.LoadVolume(*volumeDir, voxelSpacing)
	if err != nil {
		log.Fatalf("Failed to load reference image: %v", err)
	}
	w, h, d := volume.Dimensions()
	fmt.Printf("\nLoaded reference image %dx%dx%d with spacing %v mm\n", w, h, d, voxelSpacing)

	subject := transforms.SubjectSlot()
	subject.Stage(frame.New(r3.Scale(-1, volume.Center()), frame.Identity))
	subject.Commit()

	viewer := visualization.NewViewer(volume)
	window, level := volume.AutoWindowLevel()
	viewer.SetWindowLevel(window, level)
	fmt.Printf("Auto window/level: %.3f/%.3f\n", window, level)

	if cfg.Output.PreviewDir == "" {
		return
	}

	var viewCameras []visualization.ViewCamera
	for _, v := range manager.Views() {
		pack, _ := manager.Pack(v.UID)
		pack.WindowLevelHandler().SetWindowLevel(window, level)
		viewCameras = append(viewCameras, visualization.ViewCamera{View: v, Camera: pack.Camera()})
	}

	worldOSubject, err := subject.Get(transformation.Committed)
	if err != nil {
		log.Fatalf("Failed to read subject frame: %v", err)
	}
	paths, err := viewer.SavePreviews(viewCameras, worldOSubject, cfg.Output.PreviewSize, cfg.Output.PreviewDir, cfg.Output.PreviewFormat)
	if err != nil {
		log.Printf("Warning: Failed to save previews: %v", err)
	}

	fmt.Printf("\nSaved %d previews to: %s\n", len(paths), filepath.Clean(cfg.Output.PreviewDir))
	for _, p := range paths {
		fmt.Printf("- %s\n", filepath.Base(p))
	}
}

// printView reports the camera and handler a registered view ended up with.
func printView(manager *interaction.Manager, v models.View, convention interaction.Convention) {
	cameraType, _ := interaction.CameraTypeFor(v.Type)
	startType, _ := interaction.StartFrameTypeFor(cameraType, convention)
	pack, err := manager.Pack(v.UID)
	if err != nil {
		log.Fatalf("Missing pack for view %s: %v", v.UID, err)
	}
	fmt.Printf("- %-12s %-20s camera %-18v start %-26v %v (%v)\n",
		v.UID, v.Type, cameraType, startType, pack.Camera().Projection(), pack.ActiveHandlerType())
	fmt.Printf("  world_O_camera: %v\n", pack.Camera().WorldOCamera())
}

// parseVec parses "x,y,z" into a vector.
func parseVec(s string) (r3.Vec, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return r3.Vec{}, fmt.Errorf("expected x,y,z, got %q", s)
	}

	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return r3.Vec{}, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		v[i] = f
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
}
