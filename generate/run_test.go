package generate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"mktoc/config"
	"mktoc/state"
	"mktoc/toc"
)

const sampleMarkdown = `# Document title

Intro paragraph.

## Section One

Some text.

### Nested

` + "```" + `
## not a heading
` + "```" + `

## Section Two
`

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	return ctx, env
}

// newApp builds a command tree mirroring the generate surface of the real
// program so tests exercise flag parsing the same way users do.
func newApp() *cli.Command {
	return &cli.Command{
		Name: "mktoc",
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Action: Run,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: config.OutputFmtMarkdown.String()},
					&cli.IntFlag{Name: "indent", Aliases: []string{"i"}, Value: 4},
					&cli.BoolFlag{Name: "use-custom-anchors", Aliases: []string{"a"}},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}},
				},
			},
		},
	}
}

func writeSample(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write sample document: %v", err)
	}
	return path
}

func runGenerate(t *testing.T, ctx context.Context, args ...string) error {
	t.Helper()
	return newApp().Run(ctx, append([]string{"mktoc", "generate"}, args...))
}

func TestParserFor(t *testing.T) {
	log := zap.NewNop()

	tests := []struct {
		path     string
		markdown bool
	}{
		{"doc.md", true},
		{"doc.MD", true},
		{"doc.Rmd", true},
		{"doc.html", false},
		{"doc.htm", false},
		{"doc.XHTML", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, err := parserFor(tt.path, false, log)
			if err != nil {
				t.Fatalf("parserFor(%q) error = %v", tt.path, err)
			}
			_, isMarkdown := p.(*toc.MarkdownParser)
			if isMarkdown != tt.markdown {
				t.Errorf("parserFor(%q) = %T", tt.path, p)
			}
		})
	}
}

func TestParserFor_Unsupported(t *testing.T) {
	for _, path := range []string{"doc.txt", "doc.pdf", "doc"} {
		t.Run(path, func(t *testing.T) {
			if _, err := parserFor(path, false, zap.NewNop()); err == nil {
				t.Errorf("parserFor(%q) expected to fail", path)
			}
		})
	}
}

func TestRendererFor(t *testing.T) {
	if _, ok := rendererFor(config.OutputFmtMarkdown).(toc.MarkdownRenderer); !ok {
		t.Error("markdown format selected wrong renderer")
	}
	if _, ok := rendererFor(config.OutputFmtHtml).(toc.HTMLRenderer); !ok {
		t.Error("html format selected wrong renderer")
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for out of range format")
		}
	}()
	_ = rendererFor(config.OutputFmt(42))
}

func TestRun_MarkdownToMarkdown(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	src := writeSample(t, "doc.md", sampleMarkdown)
	dst := filepath.Join(t.TempDir(), "toc.md")

	if err := runGenerate(t, ctx, "-o", dst, src); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := strings.Join([]string{
		"## Table of Contents",
		"",
		"* [Section One](#section-one)",
		"    * [Nested](#nested)",
		"* [Section Two](#section-two)",
		"",
	}, "\n")
	if string(got) != want {
		t.Errorf("output =\n%s\nwant:\n%s", got, want)
	}
}

func TestRun_MarkdownToHTML(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	src := writeSample(t, "doc.md", sampleMarkdown)
	dst := filepath.Join(t.TempDir(), "toc.html")

	if err := runGenerate(t, ctx, "-f", "html", "-i", "2", "-o", dst, src); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := strings.Join([]string{
		`<h2>Table of Contents</h2>`,
		`<ul>`,
		`  <li><a href="#section-one">Section One</a></li>`,
		`  <ul>`,
		`    <li><a href="#nested">Nested</a></li>`,
		`  </ul>`,
		`  <li><a href="#section-two">Section Two</a></li>`,
		`</ul>`,
		``,
	}, "\n")
	if string(got) != want {
		t.Errorf("output =\n%s\nwant:\n%s", got, want)
	}
}

func TestRun_HTMLInput(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	src := writeSample(t, "doc.html", `<html><body>
<h1>Title</h1>
<h2 id="one">One</h2>
<h2>Two</h2>
</body></html>`)
	dst := filepath.Join(t.TempDir(), "toc.md")

	if err := runGenerate(t, ctx, "-o", dst, src); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := strings.Join([]string{
		"## Table of Contents",
		"",
		"* Title",
		"    * [One](#one)",
		"    * Two",
		"",
	}, "\n")
	if string(got) != want {
		t.Errorf("output =\n%s\nwant:\n%s", got, want)
	}
}

func TestRun_CustomAnchors(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	src := writeSample(t, "doc.md", "## Introduction {#intro}\n## Plain\n")
	dst := filepath.Join(t.TempDir(), "toc.md")

	if err := runGenerate(t, ctx, "-a", "-o", dst, src); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(got), "* [Introduction](#intro)") {
		t.Errorf("custom anchor not honored:\n%s", got)
	}
	if !strings.Contains(string(got), "* [Plain](#plain)") {
		t.Errorf("derived anchor missing:\n%s", got)
	}
}

func TestRun_UnknownFormatFallsBack(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	src := writeSample(t, "doc.md", "## Heading\n")
	dst := filepath.Join(t.TempDir(), "toc.out")

	if err := runGenerate(t, ctx, "-f", "asciidoc", "-o", dst, src); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(got), "## Table of Contents") {
		t.Errorf("expected markdown fallback output, got:\n%s", got)
	}
}

func TestRun_OverwritesOutput(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	src := writeSample(t, "doc.md", "## Heading\n")
	dst := filepath.Join(t.TempDir(), "toc.md")
	if err := os.WriteFile(dst, []byte("stale content"), 0644); err != nil {
		t.Fatalf("write stale output: %v", err)
	}

	if err := runGenerate(t, ctx, "-o", dst, src); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if strings.Contains(string(got), "stale") {
		t.Errorf("destination was not overwritten:\n%s", got)
	}
}

func TestRun_NoInput(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	if err := runGenerate(t, ctx); err == nil {
		t.Error("Run() without input document expected to fail")
	}
}

func TestRun_MissingFile(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	err := runGenerate(t, ctx, filepath.Join(t.TempDir(), "absent.md"))
	if err == nil {
		t.Fatal("Run() with missing input expected to fail")
	}
	if !strings.Contains(err.Error(), "unable to open input document") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRun_UnsupportedExtension(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	src := writeSample(t, "doc.txt", "## Heading\n")
	err := runGenerate(t, ctx, src)
	if err == nil {
		t.Fatal("Run() with unsupported extension expected to fail")
	}
	if !strings.Contains(err.Error(), "unsupported input format") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRun_BadIndent(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	src := writeSample(t, "doc.md", "## Heading\n")
	err := runGenerate(t, ctx, "-i", "0", src)
	if err == nil {
		t.Fatal("Run() with zero indent expected to fail")
	}
	if !strings.Contains(err.Error(), "indent width must be positive") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	cancelCtx, cancel := context.WithCancel(ctx)
	cancel()

	src := writeSample(t, "doc.md", "## Heading\n")
	if err := runGenerate(t, cancelCtx, src); err == nil {
		t.Error("Run() with cancelled context expected to fail")
	}
}

func TestRun_DebugReportArtifacts(t *testing.T) {
	ctx, env := setupTestEnv(t)

	rptDst := filepath.Join(t.TempDir(), "report.zip")
	env.Cfg.Reporting.Destination = rptDst
	rpt, err := env.Cfg.Reporting.Prepare()
	if err != nil {
		t.Fatalf("prepare reporter: %v", err)
	}
	env.Rpt = rpt

	src := writeSample(t, "doc.md", "## Heading\n")
	dst := filepath.Join(t.TempDir(), "toc.md")
	if err := runGenerate(t, ctx, "-o", dst, src); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if err := rpt.Close(); err != nil {
		t.Fatalf("close report: %v", err)
	}

	info, err := os.Stat(rptDst)
	if err != nil {
		t.Fatalf("report archive missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("report archive is empty")
	}
}
