// Package timelabel parses time-label command flags and runs one localization
// pass over an HTML document.
package timelabel

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/timelabel/internal/platform/cmd"
	"github.com/louisbranch/timelabel/internal/platform/i18n/datetime"
	"github.com/louisbranch/timelabel/internal/platform/otel"
	"github.com/louisbranch/timelabel/internal/timelabel"
	"github.com/louisbranch/timelabel/internal/timelabel/htmldoc"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var _ timelabel.LocatedFormatter = (*datetime.Formatter)(nil)

// stdStream selects stdin or stdout in place of a path.
const stdStream = "-"

// Config holds time-label command configuration.
type Config struct {
	Locale   string `env:"TIMELABEL_LOCALE" envDefault:"en-US"`
	Timezone string `env:"TIMELABEL_TIMEZONE" envDefault:"Local"`
	Input    string `env:"TIMELABEL_INPUT" envDefault:"-"`
	Output   string `env:"TIMELABEL_OUTPUT" envDefault:"-"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Viewer locale, e.g. en-US or pt-BR")
	fs.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "Viewer IANA timezone, or Local")
	fs.StringVar(&cfg.Input, "in", cfg.Input, "HTML input path, - for stdin")
	fs.StringVar(&cfg.Output, "out", cfg.Output, "HTML output path, - for stdout")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run localizes the configured document under telemetry.
func Run(ctx context.Context, cfg Config, stdin io.Reader, stdout io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceTimelabel, func(ctx context.Context) error {
		return localize(ctx, cfg, stdin, stdout)
	})
}

func localize(ctx context.Context, cfg Config, stdin io.Reader, stdout io.Writer) (err error) {
	ctx, span := otel.Tracer().Start(ctx, "timelabel.localize")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	if err := ctx.Err(); err != nil {
		return err
	}

	loc, err := loadLocation(cfg.Timezone)
	if err != nil {
		return err
	}
	bundle, err := datetime.NewBundle()
	if err != nil {
		return fmt.Errorf("load locale layouts: %w", err)
	}
	formatter, err := bundle.Formatter(cfg.Locale, loc)
	if err != nil {
		return fmt.Errorf("init formatter: %w", err)
	}

	doc, err := readDocument(cfg.Input, stdin)
	if err != nil {
		return err
	}
	elements := len(doc.TimeElements())
	span.SetAttributes(
		attribute.String("timelabel.locale", formatter.Tag().String()),
		attribute.String("timelabel.timezone", loc.String()),
		attribute.Int("timelabel.elements", elements),
	)

	trigger := timelabel.NewTrigger(timelabel.New(formatter), doc)
	if err := trigger.Fire(); err != nil {
		return fmt.Errorf("localize times: %w", err)
	}
	log.Printf("localized %d time elements for %s in %s", elements, formatter.Tag(), loc)

	return writeDocument(cfg.Output, stdout, doc)
}

func loadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

func readDocument(path string, stdin io.Reader) (*htmldoc.Document, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == stdStream {
		if stdin == nil {
			return nil, fmt.Errorf("stdin is not available")
		}
		return htmldoc.Parse(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return htmldoc.Parse(f)
}

func writeDocument(path string, stdout io.Writer, doc *htmldoc.Document) error {
	path = strings.TrimSpace(path)
	if path == "" || path == stdStream {
		if stdout == nil {
			return fmt.Errorf("stdout is not available")
		}
		return doc.Render(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := doc.Render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}
