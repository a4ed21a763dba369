package main

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgpdf"
	"github.com/benoitkugler/svgscene/svgraster"
	"github.com/benoitkugler/svgscene/svgscene"
	"github.com/benoitkugler/svgscene/svgtree"
	"github.com/tdewolff/argp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Render struct {
	Config  string `short:"c" desc:"YAML options file"`
	Output  string `short:"o" desc:"Output file, .png or .pdf"`
	LogFile string `desc:"Rotating log file"`
	Verbose bool   `short:"v" desc:"Debug logging"`
	Quiet   bool   `short:"q" desc:"Do not print the scene items"`
	Input   string `index:"0" desc:"Input SVG file"`
}

func main() {
	root := argp.NewCmd(&Render{}, "Compile SVG documents into drawing items, and render them to PNG or PDF")
	root.Parse()
	root.PrintHelp()
}

// options returns the configuration, with the command line
// flags applied on top
func (cmd *Render) options() (svgtree.Options, error) {
	opts := svgtree.DefaultOptions()
	if cmd.Config != "" {
		f, err := os.Open(cmd.Config)
		if err != nil {
			return opts, err
		}
		defer f.Close()
		if opts, err = svgtree.LoadOptions(f); err != nil {
			return opts, fmt.Errorf("%s: %w", cmd.Config, err)
		}
	}
	if cmd.LogFile != "" {
		opts.Logging.File = cmd.LogFile
	}
	if cmd.Verbose {
		opts.Logging.Level = "debug"
	}
	return opts, nil
}

func (cmd *Render) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	opts, err := cmd.options()
	if err != nil {
		return err
	}
	logger, err := newLogger(opts.Logging, zapcore.Lock(os.Stderr))
	if err != nil {
		return err
	}
	defer logger.Sync()
	svgtree.SetLogger(logger)

	tree, err := svgtree.LoadFile(cmd.Input, opts)
	if err != nil {
		return err
	}
	scene, err := svgscene.Build(tree, opts)
	if err != nil {
		return err
	}
	logger.Info("scene compiled", zap.String("input", cmd.Input), zap.Int("items", len(scene.Items)))
	if !cmd.Quiet {
		printScene(os.Stdout, tree, scene)
	}
	if cmd.Output == "" {
		return nil
	}
	return cmd.render(opts)
}

func printScene(w io.Writer, tree *svgtree.Tree, scene *svgscene.Scene) {
	for _, title := range scene.Titles {
		fmt.Fprintf(w, "title: %s\n", title)
	}
	fmt.Fprintf(w, "viewBox: %g %g %g %g, size: %gx%g\n", scene.ViewBox.X, scene.ViewBox.Y, scene.ViewBox.W, scene.ViewBox.H, scene.Width, scene.Height)
	for i, item := range scene.Items {
		el := tree.Element(item.Element)
		fmt.Fprintf(w, "%d <%s", i, el.Tag)
		if el.ID != "" {
			fmt.Fprintf(w, " id=%q", el.ID)
		}
		fmt.Fprintf(w, "> fill=%s@%g (%s) stroke=%s@%g", svgscene.Describe(item.Fill), item.FillOpacity, item.FillRule,
			svgscene.Describe(item.Stroke), item.StrokeOpacity)
		if item.Stroke != nil {
			fmt.Fprintf(w, " width=%g", item.StrokeStyle.Width)
		}
		// in root user space
		path := item.Path
		if p, err := svgpath.ApplyMatrix(item.Path, item.Matrix); err == nil {
			path = p
		}
		fmt.Fprintf(w, "\n\t%s\n", path)
	}
}

// render reads the input again, so that drivers get a fresh scene
func (cmd *Render) render(opts svgtree.Options) error {
	in, err := os.Open(cmd.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	switch ext := strings.ToLower(filepath.Ext(cmd.Output)); ext {
	case ".pdf":
		return svgpdf.RenderSVGToPDF(in, cmd.Output, opts)
	case ".png":
		img, err := svgraster.RasterSVGToImage(in, opts)
		if err != nil {
			return err
		}
		out, err := os.Create(cmd.Output)
		if err != nil {
			return err
		}
		if err = png.Encode(out, img); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
}
