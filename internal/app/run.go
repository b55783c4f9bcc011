package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/xspecgen/internal/classify"
	"github.com/vk/xspecgen/internal/ctxlog"
	"github.com/vk/xspecgen/internal/emit"
	"github.com/vk/xspecgen/internal/fsutil"
	"github.com/vk/xspecgen/internal/modeldat"
	"github.com/vk/xspecgen/internal/report"
)

// Generated section names used in insert mode.
const (
	SectionModels       = "MODELS"
	SectionDeclarations = "DECLARATIONS"
	SectionMethodDefs   = "METHODDEFS"
)

// Run reads the model file, classifies and renders its entries, and writes
// or checks the resulting artifacts. Nothing is written unless every stage
// succeeds.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "model_file", a.cfg.ModelFile, "mode", a.cfg.Mode)

	entries, err := modeldat.ParseFile(ctx, a.cfg.ModelFile, a.readerOptions())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("%s: %w", a.cfg.ModelFile, ErrNoModels)
	}
	a.logger.Info("Model file parsed.", "path", a.cfg.ModelFile, "entries", len(entries))

	if err := ctx.Err(); err != nil {
		return err
	}

	accepted, rep := classify.New(a.rules).ClassifyAll(entries)
	for _, s := range rep.Skipped {
		a.logger.Info("Skipping model.", "model", s.Name, "reason", s.Reason)
	}
	for _, w := range rep.Warnings {
		a.logger.Warn(w)
	}
	if len(accepted) == 0 {
		return fmt.Errorf("%s: %w", a.cfg.ModelFile, ErrNothingAccepted)
	}

	em, err := emit.New(a.module, a.registry)
	if err != nil {
		return err
	}
	arts, err := em.Emit(ctx, accepted)
	if err != nil {
		return fmt.Errorf("failed to render models: %w", err)
	}
	for _, n := range arts.Notes {
		a.logger.Warn(n)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	files, err := a.artifacts(arts)
	if err != nil {
		return err
	}

	summary := report.New(a.cfg.ModelFile, a.cfg.Mode, a.module, rep)
	summary.Notes = arts.Notes
	a.summary = summary

	if a.cfg.Check {
		return a.check(files)
	}

	for _, f := range files {
		summary.Outputs = append(summary.Outputs, f.Path)
	}
	// The report is committed together with the artifacts so that a failure
	// on either side leaves both untouched.
	batch := files
	if a.cfg.ReportFile != "" {
		rf, err := summary.File(a.cfg.ReportFile)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		batch = append(append([]fsutil.File{}, files...), rf)
	}
	if err := fsutil.WriteAll(batch); err != nil {
		return fmt.Errorf("failed to write generated files: %w", err)
	}
	for _, f := range batch {
		a.logger.Debug("Wrote file.", "path", f.Path, "bytes", len(f.Content))
	}

	a.logger.Info("Generation complete.",
		"accepted", len(rep.Accepted),
		"skipped", len(rep.Skipped),
		"files", len(files),
	)
	return nil
}

// artifacts returns the files to produce for the configured mode.
func (a *App) artifacts(arts *emit.Artifacts) ([]fsutil.File, error) {
	if a.cfg.Mode != ModeInsert {
		return arts.Outputs(a.cfg.OutPrefix), nil
	}

	pyPath := filepath.Join(a.cfg.RepoRoot, a.config.Insert.PythonFile)
	cPath := filepath.Join(a.cfg.RepoRoot, a.config.Insert.CFile)

	py, err := fsutil.SpliceFile(pyPath,
		fsutil.Insertion{Section: SectionModels, Fragment: []byte(arts.Python())},
	)
	if err != nil {
		return nil, err
	}
	cc, err := fsutil.SpliceFile(cPath,
		fsutil.Insertion{Section: SectionDeclarations, Fragment: []byte(arts.Declare())},
		fsutil.Insertion{Section: SectionMethodDefs, Fragment: []byte(arts.MethodDef())},
	)
	if err != nil {
		return nil, err
	}
	return []fsutil.File{py, cc}, nil
}

// check prints the differences between files and the disk without writing
// any artifact. The report, when requested, is still written.
func (a *App) check(files []fsutil.File) error {
	changes, err := fsutil.Compare(files)
	if err != nil {
		return err
	}
	for _, c := range changes {
		a.summary.Outputs = append(a.summary.Outputs, c.Path)
		a.logger.Info("File differs.", "path", c.Path, "missing", c.Missing)

		diff := c.Diff
		if a.cfg.Color {
			diff = colorizeDiff(diff)
		}
		fmt.Fprint(a.outW, diff)
	}
	if err := a.writeReport(); err != nil {
		return err
	}

	if len(changes) > 0 {
		return fmt.Errorf("%w: %d of %d files differ", ErrOutOfDate, len(changes), len(files))
	}
	a.logger.Info("Generated files are up to date.", "files", len(files))
	return nil
}

func (a *App) writeReport() error {
	if a.cfg.ReportFile == "" {
		return nil
	}
	if err := a.summary.Write(a.cfg.ReportFile); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	a.logger.Debug("Report written.", "path", a.cfg.ReportFile)
	return nil
}
