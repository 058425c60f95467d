// html5input renders a pongo2 template that uses the html5_input tag against
// a YAML or JSON data file.
//
//	html5input --template form.tpl --data data.yaml
//	html5input --template form.tpl --data data.yaml --openapi api.yaml --bind user=User
//
// With --openapi, each --bind var=Schema pairs a top-level data variable with
// a component schema so constraint attributes come from the OpenAPI
// document instead of the raw data.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/goliatone/go-html5input"
	"github.com/goliatone/go-html5input/pkg/config"
	pkgopenapi "github.com/goliatone/go-html5input/pkg/openapi"
	"github.com/goliatone/go-html5input/pkg/render/template/gotemplate"
	"github.com/goliatone/go-html5input/pkg/resolver"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	template string
	data     string
	openapi  string
	binds    []string
	config   string
	output   string
	timeout  time.Duration
	verbose  bool
}

// Overridden in tests.
var (
	interactive    = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	promptTemplate = askTemplate
)

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("html5input", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.template, "template", "t", "", "pongo2 template file to render")
	flagSet.StringVarP(&opts.data, "data", "d", "", "YAML or JSON file with template variables")
	flagSet.StringVar(&opts.openapi, "openapi", "", "OpenAPI document (path or URL) supplying constraints")
	flagSet.StringArrayVar(&opts.binds, "bind", nil, "bind a data variable to a schema, as var=Schema (repeatable)")
	flagSet.StringVarP(&opts.config, "config", "c", "", "YAML or JSONC settings file")
	flagSet.StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	flagSet.DurationVar(&opts.timeout, "timeout", 30*time.Second, "timeout for remote OpenAPI documents")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log unresolved fields at debug level")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage:\n  html5input --template form.tpl [--data data.yaml] [--openapi api.yaml --bind var=Schema]\n\nFlags:\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() > 0 && opts.template == "" {
		opts.template = flagSet.Arg(0)
	}

	cfg := config.Default()
	if opts.config != "" {
		loaded, err := config.Load(opts.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger, err := newLogger(stderr, cfg, opts.verbose)
	if err != nil {
		return err
	}

	if opts.template == "" {
		if !interactive() {
			return errors.New("--template is required")
		}
		answer, err := promptTemplate()
		if err != nil {
			return fmt.Errorf("prompt template: %w", err)
		}
		opts.template = strings.TrimSpace(answer)
		if opts.template == "" {
			return errors.New("no template given")
		}
	}

	if filepath.Ext(opts.template) == "" {
		return fmt.Errorf("template %q needs a file extension", opts.template)
	}

	data := map[string]any{}
	if opts.data != "" {
		if err := config.DecodeFile(opts.data, &data); err != nil {
			return fmt.Errorf("load data: %w", err)
		}
		logger.Debug("data loaded", slog.String("path", opts.data), slog.Int("variables", len(data)))
	}

	if err := bindModels(ctx, data, opts, logger); err != nil {
		return err
	}

	engine, err := gotemplate.New(
		gotemplate.WithBaseDir(filepath.Dir(opts.template)),
		gotemplate.WithExtension(filepath.Ext(opts.template)),
		gotemplate.WithTagName(cfg.TagName),
		gotemplate.WithResolver(resolver.New(cfg.ResolverOptions(logger)...)),
	)
	if err != nil {
		return err
	}

	rendered, err := engine.RenderTemplate(filepath.Base(opts.template), data)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := io.WriteString(stdout, rendered)
		return err
	}
	if err := os.WriteFile(opts.output, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("output written", slog.String("path", opts.output), slog.Int("bytes", len(rendered)))
	return nil
}

func newLogger(w io.Writer, cfg config.Config, verbose bool) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// bindModels replaces each bound data variable with its schema-backed
// object. Variables missing from data bind to an empty value map so the
// template still gets constraint attributes.
func bindModels(ctx context.Context, data map[string]any, opts options, logger *slog.Logger) error {
	if opts.openapi == "" {
		if len(opts.binds) > 0 {
			return errors.New("--bind requires --openapi")
		}
		return nil
	}

	src, err := pkgopenapi.ParseSource(opts.openapi)
	if err != nil {
		return err
	}
	models, err := html5input.LoadModels(ctx, src, []pkgopenapi.LoaderOption{
		pkgopenapi.WithHTTPFallback(opts.timeout),
	})
	if err != nil {
		return err
	}
	logger.Debug("openapi models loaded", slog.String("source", src.Location()), slog.Any("models", models.Names()))

	for _, bind := range opts.binds {
		variable, schemaName, ok := strings.Cut(bind, "=")
		variable, schemaName = strings.TrimSpace(variable), strings.TrimSpace(schemaName)
		if !ok || variable == "" || schemaName == "" {
			return fmt.Errorf("invalid --bind %q, want var=Schema", bind)
		}
		model, found := models.Lookup(schemaName)
		if !found {
			return fmt.Errorf("schema %q not found in %s (have %s)", schemaName, src.Location(), strings.Join(models.Names(), ", "))
		}

		values := map[string]any{}
		if raw, exists := data[variable]; exists && raw != nil {
			typed, ok := raw.(map[string]any)
			if !ok {
				return fmt.Errorf("data variable %q is %T, want an object", variable, raw)
			}
			values = typed
		}
		data[variable] = model.Bind(values)
		logger.Debug("variable bound", slog.String("variable", variable), slog.String("schema", model.Name))
	}
	return nil
}

func askTemplate() (string, error) {
	var out string
	prompt := &survey.Input{
		Message: "Template file",
		Help:    "pongo2 template using the html5_input tag",
		Default: "form.tpl",
	}
	if err := survey.AskOne(prompt, &out, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return out, nil
}
