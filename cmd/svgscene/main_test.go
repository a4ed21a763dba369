package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/svgscene/svgscene"
	"github.com/benoitkugler/svgscene/svgtree"
	"github.com/tdewolff/test"
	"go.uber.org/zap/zapcore"
)

const icon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 20">
	<title>Square</title>
	<g transform="translate(5 5)">
		<rect id="sq" width="10" height="10" fill="teal" stroke="black"/>
	</g>
</svg>`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	test.Error(t, os.WriteFile(fn, []byte(content), 0o644))
	return fn
}

func TestPrintScene(t *testing.T) {
	tree, err := svgtree.Load(strings.NewReader(icon), svgtree.DefaultOptions())
	test.Error(t, err)
	scene, err := svgscene.Build(tree, svgtree.DefaultOptions())
	test.Error(t, err)

	var buf bytes.Buffer
	printScene(&buf, tree, scene)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	test.T(t, len(lines), 4)
	test.String(t, lines[0], "title: Square")
	test.String(t, lines[1], "viewBox: 0 0 20 20, size: 20x20")
	test.That(t, strings.HasPrefix(lines[2], `0 <rect id="sq"> fill=`), lines[2])
	test.That(t, strings.HasSuffix(lines[2], "width=1"), lines[2])
	// translated path
	test.That(t, strings.HasPrefix(strings.TrimSpace(lines[3]), "M5,5"), lines[3])
}

func TestOptions(t *testing.T) {
	cmd := Render{Verbose: true, LogFile: "out.log"}
	opts, err := cmd.options()
	test.Error(t, err)
	test.String(t, opts.Logging.Level, "debug")
	test.String(t, opts.Logging.File, "out.log")
	test.Float(t, opts.DPI, 96)

	cmd = Render{Config: writeFile(t, "opts.yaml", "dpi: 192\nerror_mode: strict\n")}
	opts, err = cmd.options()
	test.Error(t, err)
	test.Float(t, opts.DPI, 192)
	test.T(t, opts.ErrorMode, svgtree.StrictErrorMode)

	cmd = Render{Config: writeFile(t, "opts.yaml", "dpi: -1\n")}
	_, err = cmd.options()
	test.That(t, err != nil)
}

func TestRun(t *testing.T) {
	input := writeFile(t, "icon.svg", icon)
	dir := t.TempDir()
	for _, name := range []string{"icon.png", "icon.pdf"} {
		out := filepath.Join(dir, name)
		cmd := Render{Input: input, Output: out, Quiet: true}
		test.Error(t, cmd.Run(), name)
		info, err := os.Stat(out)
		test.Error(t, err)
		test.That(t, info.Size() > 0, name)
	}

	cmd := Render{Input: input, Output: filepath.Join(dir, "icon.gif"), Quiet: true}
	test.That(t, cmd.Run() != nil)

	cmd = Render{Input: filepath.Join(dir, "missing.svg"), Quiet: true}
	test.That(t, cmd.Run() != nil)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "svgscene.log")
	cfg := svgtree.DefaultOptions().Logging
	cfg.Level, cfg.File = "warn", logFile
	logger, err := newLogger(cfg, zapcore.AddSync(&buf))
	test.Error(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	test.Error(t, logger.Sync())
	test.That(t, !strings.Contains(buf.String(), "hidden"))
	test.That(t, strings.Contains(buf.String(), "shown"))

	b, err := os.ReadFile(logFile)
	test.Error(t, err)
	test.That(t, strings.Contains(string(b), `"msg":"shown"`), string(b))

	cfg.Level = "loud"
	_, err = newLogger(cfg, zapcore.AddSync(&buf))
	test.That(t, err != nil)
}
