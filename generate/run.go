// Package generate implements the TOC generation pipeline: it selects a
// parser by document extension, a renderer by requested output format, and
// writes the rendered table of contents to stdout or to a file.
package generate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"mktoc/config"
	"mktoc/state"
	"mktoc/toc"
)

// parserFor selects a document parser by file extension. The set of
// supported formats is closed - anything unrecognized is a configuration
// error, reported before any file I/O happens.
func parserFor(path string, useCustomAnchors bool, log *zap.Logger) (toc.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".md", ".rmd":
		return toc.NewMarkdownParser(useCustomAnchors, log), nil
	case ".html", ".htm", ".xhtml":
		return toc.NewHTMLParser(), nil
	default:
		return nil, fmt.Errorf("unsupported input format %q", ext)
	}
}

func rendererFor(format config.OutputFmt) toc.Renderer {
	switch format {
	case config.OutputFmtMarkdown:
		return toc.MarkdownRenderer{}
	case config.OutputFmtHtml:
		return toc.HTMLRenderer{}
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("generate")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input document has been specified")
	}
	src, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	format := env.Cfg.Document.Format
	if cmd.IsSet("format") {
		if format, err = config.ParseOutputFmt(cmd.String("format")); err != nil {
			log.Warn("Unknown output format requested, switching to markdown", zap.Error(err))
			format = config.OutputFmtMarkdown
		}
	}
	indent := env.Cfg.Document.Indent
	if cmd.IsSet("indent") {
		indent = int(cmd.Int("indent"))
	}
	if indent <= 0 {
		return fmt.Errorf("indent width must be positive, got %d", indent)
	}
	useCustomAnchors := env.Cfg.Document.UseCustomAnchors || cmd.Bool("use-custom-anchors")

	parser, err := parserFor(src, useCustomAnchors, log)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open input document: %w", err)
	}
	defer in.Close()

	entries, err := parser.Parse(in)
	if err != nil {
		return fmt.Errorf("unable to parse %q: %w", src, err)
	}

	out := rendererFor(format).Render(entries, indent) + "\n"

	dst := cmd.String("output")
	if len(dst) == 0 {
		if _, err := os.Stdout.WriteString(out); err != nil {
			return fmt.Errorf("unable to write TOC: %w", err)
		}
	} else if err := os.WriteFile(dst, []byte(out), 0644); err != nil {
		return fmt.Errorf("unable to write %q: %w", dst, err)
	}

	env.Rpt.Store(filepath.Base(src), src)
	env.Rpt.StoreData("toc"+format.Ext(), []byte(out))

	log.Debug("TOC generated",
		zap.String("source", src),
		zap.Int("entries", len(entries)),
		zap.Stringer("format", format),
		zap.Duration("elapsed", env.Uptime()))
	return nil
}
