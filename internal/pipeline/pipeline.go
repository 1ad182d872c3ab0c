package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"codgen/internal/binding"
	"codgen/internal/config"
	"codgen/internal/emit"
	"codgen/internal/schema"
)

// ErrNoSchema is returned when a request names neither a schema file nor
// schema text.
var ErrNoSchema = errors.New("no schema given")

// Request describes one generation run.
type Request struct {
	// Settings selects the schema, style, package and output directory.
	Settings config.Settings
	// SchemaText, when non-nil, is used instead of reading Settings.Schema.
	SchemaText []byte
}

type options struct {
	logger *slog.Logger
	dryRun bool
}

// Option customizes Run.
type Option func(*options)

// WithLogger sets the logger. The run ID is attached to every record.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDryRun computes file statuses without writing anything.
func WithDryRun(enabled bool) Option {
	return func(o *options) { o.dryRun = enabled }
}

// Run executes the request. Typed errors from the stages
// (*schema.SchemaParseError, *binding.UnsupportedTypeError, *emit.WriteError)
// are returned unwrapped.
func Run(ctx context.Context, req Request, opts ...Option) (*emit.GenerationResult, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger.With(slog.String("run_id", uuid.NewString()))
	s := req.Settings

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	style, err := s.Style()
	if err != nil {
		return nil, err
	}

	format, err := s.SchemaFormat()
	if err != nil {
		return nil, err
	}

	mapperOpts, err := s.MapperOptions()
	if err != nil {
		return nil, err
	}

	logger.Info("generation started",
		slog.String("schema", schemaSource(req)),
		slog.String("style", style.String()),
		slog.String("output_dir", s.OutputDir),
		slog.Bool("dry_run", o.dryRun))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	model, err := loadSchema(req, format)
	if err != nil {
		return nil, err
	}

	for _, w := range model.Warnings {
		logger.Warn("schema diagnostic",
			slog.String("severity", w.Severity.String()),
			slog.String("code", w.Code),
			slog.String("detail", w.String()))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mapper := binding.NewMapper(append(mapperOpts, binding.WithLogger(logger))...)

	plan, err := mapper.Map(model, style, s.PackageName)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	emitter := emit.NewEmitter(emit.WithDryRun(o.dryRun), emit.WithLogger(logger))

	res, err := emitter.Emit(plan, s.OutputDir)
	if err != nil {
		return nil, err
	}

	logger.Info("generation finished",
		slog.String("status", res.Status.String()),
		slog.Int("files", len(res.Files)),
		slog.Int("created", res.Count(emit.StatusCreated)),
		slog.Int("updated", res.Count(emit.StatusUpdated)),
		slog.Int("unchanged", res.Count(emit.StatusUnchanged)))

	return res, nil
}

func loadSchema(req Request, format schema.Format) (*schema.Model, error) {
	if req.SchemaText != nil {
		return schema.Load(req.SchemaText, format)
	}

	if req.Settings.Schema == "" {
		return nil, ErrNoSchema
	}

	return schema.LoadFile(req.Settings.Schema, format)
}

func schemaSource(req Request) string {
	if req.SchemaText != nil {
		return "<inline>"
	}

	return req.Settings.Schema
}
