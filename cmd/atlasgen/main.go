// Command atlasgen renders YAML text request files into RGBA texture atlases.
//
// Each request file yields one atlas, written as PNG and optionally stored
// in a bbolt resource file and uploaded to the GPU:
//
//	atlasgen -requests hud.atlas.yml -font DejaVuSans.ttf -size 48 -out hud.png
//	atlasgen -requests ./ui -font res:dejavu -db stage.res -out ./build -gpu auto
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/textatlas"
	"github.com/gogpu/textatlas/gpu"
	"github.com/gogpu/textatlas/store"
	"github.com/gogpu/textatlas/text"
)

// fontResPrefix selects a font stored in the resource file.
const fontResPrefix = "res:"

type config struct {
	requestsPath string
	fontPath     string
	size         int
	width        int
	height       int
	rasterizer   string
	outPath      string
	dbPath       string
	name         string
	gpuMode      string
	verbose      bool
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.requestsPath, "requests", "",
		"Request file, or a directory searched for *.atlas.yml files.")
	flag.StringVar(&cfg.fontPath, "font", "",
		"Font file path, or res:<name> for a font stored in -db.")
	flag.IntVar(&cfg.size, "size", 48, "Font size in points.")
	flag.IntVar(&cfg.width, "width", 1480, "Atlas width in pixels.")
	flag.IntVar(&cfg.height, "height", 800, "Atlas height in pixels.")
	flag.StringVar(&cfg.rasterizer, "rasterizer", "sfnt",
		"Glyph rasterizer: "+strings.Join(text.Rasterizers(), ", ")+".")
	flag.StringVar(&cfg.outPath, "out", "atlas.png",
		"Output PNG, or output directory when -requests is a directory.")
	flag.StringVar(&cfg.dbPath, "db", "", "Resource file to store atlases and fonts in.")
	flag.StringVar(&cfg.name, "name", "", "Atlas name for a single request file (default: file name).")
	flag.StringVar(&cfg.gpuMode, "gpu", "none", "Upload to the GPU: none, noop or auto.")
	flag.BoolVar(&cfg.verbose, "v", false, "Verbose logging.")

	flag.Parse()
	return cfg
}

func main() {
	cfg := parseFlags()

	if cfg.verbose {
		textatlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(cfg); err != nil {
		log.Fatalf("atlasgen: %v", err)
	}
}

func run(cfg config) error {
	if cfg.requestsPath == "" || cfg.fontPath == "" {
		return errors.New("-requests and -font are required")
	}

	var res *store.Store
	if cfg.dbPath != "" {
		s, err := store.Open(cfg.dbPath)
		if err != nil {
			return err
		}
		defer s.Close()
		res = s
	}

	fontName, fontData, err := loadFontData(cfg.fontPath, res)
	if err != nil {
		return err
	}

	font, err := text.NewFontResource(fontData, cfg.size, cfg.width, cfg.height,
		text.WithRasterizer(cfg.rasterizer), text.WithFontLabel(fontName))
	if err != nil {
		return err
	}
	defer font.Close()

	files, err := collectRequestFiles(cfg.requestsPath)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files under %s", requestFileSuffix, cfg.requestsPath)
	}
	multi := len(files) > 1 || isDir(cfg.requestsPath)
	if multi {
		if err := os.MkdirAll(cfg.outPath, 0o755); err != nil {
			return err
		}
	}

	var up *gpu.Uploader
	if cfg.gpuMode != "none" {
		dev, err := gpu.OpenDevice(cfg.gpuMode)
		if err != nil {
			return err
		}
		defer dev.Close()
		if up, err = dev.NewUploader(gpu.WithLabel("atlasgen")); err != nil {
			return err
		}
	}

	compositor, err := textatlas.NewCompositor(font)
	if err != nil {
		return err
	}

	defaultTint := font.Tint()
	defaultLineHeight := font.Metrics().LineHeight()

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		reqFile, err := ReadRequestsData(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		name := atlasName(path)
		if cfg.name != "" && !multi {
			name = cfg.name
		}

		font.SetTint(reqFile.TintOr(defaultTint))
		buf, err := compositor.Composite(reqFile.ToTextRequests(defaultLineHeight))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		out := cfg.outPath
		if multi {
			out = filepath.Join(cfg.outPath, name+".png")
		}
		if err := buf.SavePNG(out); err != nil {
			return err
		}

		if res != nil {
			tint := font.Tint()
			err := res.PutAtlas(name, buf, store.AtlasMeta{
				Font:       fontName,
				Size:       cfg.size,
				Rasterizer: cfg.rasterizer,
				Tint:       [3]uint8{tint.R, tint.G, tint.B},
				Requests:   len(reqFile.Requests),
			})
			if err != nil {
				return err
			}
		}

		if up != nil {
			tex, err := up.Upload(buf)
			if err != nil {
				return err
			}
			log.Printf("%s: uploaded %dx%d, %d mip levels", name, tex.Width(), tex.Height(), tex.MipLevelCount())
			tex.Destroy()
		}

		log.Printf("%s: %d requests -> %s", name, len(reqFile.Requests), out)
	}

	return nil
}

// loadFontData reads the font from disk or from the resource file. Fonts
// read from disk are also stored in the resource file, so atlases there
// can be regenerated from it alone.
func loadFontData(fontArg string, res *store.Store) (string, []byte, error) {
	if name, ok := strings.CutPrefix(fontArg, fontResPrefix); ok {
		if res == nil {
			return "", nil, fmt.Errorf("font %q needs -db", fontArg)
		}
		data, err := res.Font(name)
		return name, data, err
	}

	data, err := os.ReadFile(fontArg)
	if err != nil {
		return "", nil, err
	}
	name := strings.TrimSuffix(filepath.Base(fontArg), filepath.Ext(fontArg))
	if res != nil {
		if err := res.PutFont(name, data); err != nil {
			return "", nil, err
		}
	}
	return name, data, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
