// mdltool is a CLI utility for inspecting 3DS model files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/demo3ds/internal/assets"
	"github.com/Faultbox/demo3ds/internal/engine/gpu"
	"github.com/Faultbox/demo3ds/internal/engine/scene"
	"github.com/Faultbox/demo3ds/internal/logger"
	"github.com/Faultbox/demo3ds/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "chunks", "tree":
		cmdChunks(args)
	case "normals":
		cmdNormals(args)
	case "sample":
		cmdSample(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mdltool - 3DS model utility

Usage:
  mdltool <command> [options]

Commands:
  info [-textures] [-encoding name] <file.3ds>   Load a model and show meshes and materials
  chunks <file.3ds>                              Print the raw chunk tree
  normals [-n count] <file.3ds>                  Print computed vertex normals
  sample [-o file.3ds]                           Write a textureless sample cube

Examples:
  mdltool info -textures data/bigroom.3DS
  mdltool chunks data/bigroom.3DS
  mdltool normals -n 8 cube.3ds
  mdltool sample -o cube.3ds`)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadScene reads path into a fresh scene. Texture files are looked up next
// to the model when textures is set.
func loadScene(path string, textures bool, encoding string, verbose bool) (*scene.Scene, *scene.Mesh, *gpu.Headless) {
	level := "warn"
	if verbose {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fail("%v", err)
	}

	enc, err := formats.LookupNameEncoding(encoding)
	if err != nil {
		fail("%v", err)
	}

	cfg := scene.DefaultConfig()
	cfg.Logger = logger.Named("scene")
	cfg.KeepCPUCopy = true
	cfg.NameEncoding = enc

	var dev *gpu.Headless
	if textures {
		dev = gpu.NewHeadless(assets.NewManager(filepath.Dir(path)), logger.Named("texture"))
		cfg.Textures = dev
		cfg.Buffers = dev
	}

	s := scene.New(cfg)
	m, err := s.LoadMesh(path, "")
	if err != nil {
		fail("%v", err)
	}
	return s, m, dev
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	textures := fs.Bool("textures", false, "Decode texture maps found next to the model")
	encoding := fs.String("encoding", "", "Character encoding of names (cp437, cp850, windows1252, latin1, euc-kr)")
	verbose := fs.Bool("v", false, "Verbose logging")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mdltool info [-textures] [-encoding name] <file.3ds>")
		os.Exit(1)
	}

	s, m, dev := loadScene(fs.Arg(0), *textures, *encoding, *verbose)
	defer s.Shutdown()

	fmt.Printf("File: %s\n\n", fs.Arg(0))
	scene.PrintMeshInfo(os.Stdout, m)

	materials := s.Materials()
	fmt.Printf("\n%d materials\n", len(materials))
	for _, mat := range materials {
		scene.PrintMaterialInfo(os.Stdout, mat)
		if dev == nil {
			continue
		}
		if info, ok := dev.Texture(mat.TexMap1.Handle); ok {
			fmt.Printf("  texture:   %dx%d %s\n", info.Width, info.Height, info.Format)
		}
	}
}

func cmdChunks(args []string) {
	fs := flag.NewFlagSet("chunks", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mdltool chunks <file.3ds>")
		os.Exit(1)
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		fail("%v", err)
	}
	defer f.Close()

	root, err := formats.ReadTree(f)
	if err != nil {
		fail("%v", err)
	}
	root.Print(os.Stdout)
	fmt.Printf("\n%d objects, %d materials\n",
		root.Count(formats.ChunkObject), root.Count(formats.ChunkMaterial))
}

func cmdNormals(args []string) {
	fs := flag.NewFlagSet("normals", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N vertices per submesh (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mdltool normals [-n count] <file.3ds>")
		os.Exit(1)
	}

	s, m, _ := loadScene(fs.Arg(0), false, "", false)
	defer s.Shutdown()

	for _, sm := range m.Submeshes {
		fmt.Printf("Submesh %q (%d vertices)\n", sm.Name, len(sm.Normals))
		for i, n := range sm.Normals {
			if *limit > 0 && i >= *limit {
				fmt.Printf("  ... %d more\n", len(sm.Normals)-i)
				break
			}
			v := sm.Vertices[i]
			fmt.Printf("  %4d  pos (%9.3f %9.3f %9.3f)  normal (%6.3f %6.3f %6.3f)\n",
				i, v.X, v.Y, v.Z, n.X, n.Y, n.Z)
		}
	}
}

func cmdSample(args []string) {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	output := fs.String("o", "cube.3ds", "Output file")
	object := fs.String("object", "Cube01", "Object name")
	material := fs.String("material", "Red", "Material name")
	fs.Parse(args)

	data := formats.SampleCube(*object, *material).Bytes()
	if err := os.WriteFile(*output, data, 0644); err != nil {
		fail("writing %s: %v", *output, err)
	}
	fmt.Printf("Wrote: %s (%d bytes)\n", *output, len(data))
}
