package emit

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"

	"codgen/internal/binding"
	"codgen/internal/common"
)

// GeneratedFile represents a rendered Java source file.
type GeneratedFile struct {
	// Filename is the slash-separated path relative to the output directory
	// (e.g., "org/example/Person.java").
	Filename string
	// TypeName is the schema type the file was rendered from.
	TypeName string
	Content  []byte
}

// Emitter renders plans and writes the result to an output directory.
type Emitter struct {
	dryRun bool
	logger *slog.Logger
}

// Option customizes an Emitter.
type Option func(*Emitter)

// WithDryRun computes file statuses without writing anything.
func WithDryRun(enabled bool) Option {
	return func(e *Emitter) { e.dryRun = enabled }
}

// WithLogger overrides the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Emitter) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEmitter creates an Emitter with the given options.
func NewEmitter(opts ...Option) *Emitter {
	e := &Emitter{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Filename returns the output path of a descriptor relative to the output
// directory. It depends only on the package and class name.
func Filename(packageName, className string) string {
	return path.Join(common.PackageDir(packageName), className+".java")
}

// Render renders every descriptor of the plan in plan order.
func (e *Emitter) Render(plan *binding.Plan) ([]GeneratedFile, error) {
	tmpl, ok := styleTemplates[plan.Style]
	if !ok {
		return nil, fmt.Errorf("no template for binding style %v", plan.Style)
	}

	files := make([]GeneratedFile, 0, len(plan.Descriptors))

	for i := range plan.Descriptors {
		d := &plan.Descriptors[i]

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, newTemplateData(plan, d)); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", d.TypeName, err)
		}

		files = append(files, GeneratedFile{
			Filename: Filename(plan.PackageName, d.ClassName),
			TypeName: d.TypeName,
			Content:  []byte(tidy(buf.String())),
		})
	}

	return files, nil
}

// Emit renders the plan and writes changed files below outputDir.
// Files whose content hash matches the file on disk are left untouched.
// The first filesystem failure aborts the run with a *WriteError; files
// written before the failure stay complete.
func (e *Emitter) Emit(plan *binding.Plan, outputDir string) (*GenerationResult, error) {
	if plan == nil {
		return nil, fmt.Errorf("emitting: plan is nil")
	}

	files, err := e.Render(plan)
	if err != nil {
		return nil, err
	}

	if !e.dryRun {
		if err := os.MkdirAll(outputDir, dirPerm); err != nil {
			return nil, &WriteError{Path: outputDir, Err: err}
		}
	}

	res := &GenerationResult{OutputDir: outputDir}

	for _, file := range files {
		fr, err := e.emitFile(file, outputDir)
		if err != nil {
			return nil, err
		}

		res.Files = append(res.Files, fr)
	}

	sort.Slice(res.Files, func(i, j int) bool {
		return res.Files[i].RelPath < res.Files[j].RelPath
	})

	res.Status = summarize(res.Files)

	return res, nil
}

func (e *Emitter) emitFile(file GeneratedFile, outputDir string) (FileResult, error) {
	outputPath := filepath.Join(outputDir, filepath.FromSlash(file.Filename))
	fr := FileResult{
		Path:     outputPath,
		RelPath:  file.Filename,
		TypeName: file.TypeName,
		Hash:     contentHash(file.Content),
	}

	oldHash, exists, err := existingHash(outputPath)
	if err != nil {
		return FileResult{}, &WriteError{Path: outputPath, Err: err}
	}

	switch {
	case !exists:
		fr.Status = StatusCreated
	case oldHash == fr.Hash:
		fr.Status = StatusUnchanged
		e.logger.Debug("file unchanged", slog.String("path", file.Filename))

		return fr, nil
	default:
		fr.Status = StatusUpdated
	}

	if e.dryRun {
		e.logger.Debug("dry run: file would change",
			slog.String("path", file.Filename),
			slog.String("status", fr.Status.String()))

		return fr, nil
	}

	if err := writeFileAtomic(outputPath, file.Content); err != nil {
		return FileResult{}, &WriteError{Path: outputPath, Err: err}
	}

	e.logger.Debug("file written",
		slog.String("path", file.Filename),
		slog.String("status", fr.Status.String()),
		slog.String("hash", fr.Hash))

	return fr, nil
}
