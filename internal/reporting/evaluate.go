package reporting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/diff"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/filesystem"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/filtering"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/formatter"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/history"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/parser"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/reportconfig"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/tree"
)

// Evaluate loads the build described by the configuration of rc, runs the
// pipeline and records the result in the history store when one is
// configured.
func Evaluate(ctx context.Context, rc IReportContext) (*Output, error) {
	cfg, logger, fsys := rc.ReportConfiguration(), rc.Logger(), rc.Filesystem()
	if cfg.TreeFile() == "" {
		return nil, reportconfig.ErrNoTree
	}

	importCfg := parser.Config{FS: fsys, Logger: logger}
	current, err := parser.Parse(cfg.TreeFile(), importCfg)
	if err != nil {
		return nil, err
	}
	gates, err := cfg.QualityGates()
	if err != nil {
		return nil, err
	}
	filter, err := filtering.NewDefaultFilter(cfg.FileFilters())
	if err != nil {
		return nil, err
	}
	changes, err := loadChanges(fsys, cfg)
	if err != nil {
		return nil, err
	}

	var store *history.Store
	if cfg.HistoryFile() != "" {
		store, err = history.Open(cfg.HistoryFile())
		if err != nil {
			return nil, err
		}
		defer store.Close()
	}
	reference, err := loadReference(importCfg, cfg, store)
	if err != nil {
		return nil, err
	}

	out, err := Run(ctx, Input{
		Tree:       current,
		Reference:  reference,
		Changes:    changes,
		Filter:     filter,
		Gates:      gates,
		SourceDirs: cfg.SourceDirectories(),
		FS:         fsys,
		Formatter:  formatter.New(cfg.Language()),
	}, logger)
	if err != nil {
		return nil, err
	}

	if store != nil {
		record := &history.Record{
			Build:    cfg.Build(),
			Recorded: time.Now().UTC(),
			Tree:     out.Project,
			Delta:    out.ProjectDelta,
			Result:   out.Result,
		}
		if err := store.Save(cfg.Job(), record); err != nil {
			return nil, fmt.Errorf("recording build %d: %w", cfg.Build(), err)
		}
		logger.WithFields(log.Fields{"job": cfg.Job(), "build": cfg.Build()}).Debug("Recorded build in history")
	}
	return out, nil
}

// ReadTree imports a coverage tree from any supported report format.
func ReadTree(fsys filesystem.Filesystem, path string) (*tree.Tree, error) {
	return parser.Parse(path, parser.Config{FS: fsys})
}

// WriteTree stores t as JSON.
func WriteTree(fsys filesystem.Filesystem, path string, t *tree.Tree) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding coverage tree: %w", err)
	}
	return fsys.WriteFile(path, data, 0o644)
}

// loadReference prefers an explicit reference file over the history store.
// A history without an earlier build is not an error.
func loadReference(importCfg parser.Config, cfg reportconfig.IReportConfiguration, store *history.Store) (*tree.Tree, error) {
	logger := importCfg.Logger
	if cfg.ReferenceFile() != "" {
		return parser.Parse(cfg.ReferenceFile(), importCfg)
	}
	if store == nil {
		return nil, nil
	}
	record, err := store.Reference(cfg.Job(), cfg.Build())
	if errors.Is(err, history.ErrNoReference) {
		logger.Infof("No reference build found in history for job '%s'", cfg.Job())
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	logger.Infof("Using build %d of job '%s' as reference", record.Build, cfg.Job())
	return record.Tree, nil
}

func loadChanges(fsys filesystem.Filesystem, cfg reportconfig.IReportConfiguration) (*diff.ChangeSet, error) {
	if cfg.DiffFile() == "" {
		return nil, nil
	}
	raw, err := fsys.ReadFile(cfg.DiffFile())
	if err != nil {
		return nil, fmt.Errorf("reading diff: %w", err)
	}
	changes, err := diff.ParseUnified(string(raw))
	if err != nil {
		return nil, err
	}
	if cfg.StripPrefix() != "" {
		changes = changes.StripPrefix(cfg.StripPrefix())
	}
	return changes, nil
}
