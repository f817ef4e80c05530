// Package reporting runs the evaluation of a build: it decorates the coverage
// tree with the changes of the build, derives the change-focused views and
// checks the quality gates against them.
package reporting

import (
	"context"
	"math/big"

	log "github.com/sirupsen/logrus"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/delta"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/diff"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/filechange"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/filesystem"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/filtering"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/formatter"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/language"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/logging"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/metric"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/qualitygate"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/reportconfig"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/statistics"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/tree"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/treecreator"

	_ "github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/language/default"
	_ "github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/language/golang"
)

// Input is a build ready for evaluation. Only Tree is required.
type Input struct {
	Tree       *tree.Tree
	Reference  *tree.Tree
	Changes    *diff.ChangeSet
	Filter     filtering.IFilter
	Gates      []qualitygate.QualityGate
	SourceDirs []string
	FS         filesystem.Filesystem
	Formatter  *formatter.Formatter
}

// Output holds the decorated tree, its derived views and the verdict.
type Output struct {
	Project            *tree.Tree
	ModifiedLines      *tree.Tree
	ModifiedFiles      *tree.Tree
	IndirectChanges    *tree.Tree
	ProjectDelta       map[metric.Metric]*big.Rat
	ModifiedLinesDelta map[metric.Metric]*big.Rat
	ModifiedFilesDelta map[metric.Metric]*big.Rat
	Statistics         *statistics.Statistics
	Result             *qualitygate.Result
	TreeLog            *logging.FilteredLog
	QualityGateLog     *logging.FilteredLog
}

// Run evaluates in. The current tree is decorated in place; the reference is
// only read, through a private copy. Cancellation is checked between stages.
func Run(ctx context.Context, in Input, logger log.FieldLogger) (*Output, error) {
	if in.Tree == nil {
		return nil, reportconfig.ErrNoTree
	}
	f := in.Formatter
	if f == nil {
		f = formatter.Default()
	}
	out := &Output{
		Project:        in.Tree,
		TreeLog:        logging.NewFilteredLog("Coverage tree").WithLogger(logger),
		QualityGateLog: logging.NewFilteredLog("Quality gates").WithLogger(logger),
	}

	prepare := func(t *tree.Tree) int {
		t.SplitPackages(t.Root())
		if in.Filter != nil {
			return filtering.FilterFiles(t, in.Filter)
		}
		return 0
	}
	if removed := prepare(in.Tree); removed > 0 {
		logger.Debugf("Filtered out %d files", removed)
	}
	var reference *tree.Tree
	if in.Reference != nil {
		reference = in.Reference.CopyTree(in.Reference.Root())
		prepare(reference)
	}
	in.Tree.VerifyPathUniqueness(out.TreeLog)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(in.SourceDirs) > 0 && in.FS != nil {
		n := language.AttachComplexity(in.Tree, in.FS, in.SourceDirs, logger)
		logger.Debugf("Attached complexity to %d methods", n)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	changes, oldPaths := map[string]filechange.FileChange{}, map[string]string{}
	if in.Changes != nil {
		changes, oldPaths = in.Changes.Files, in.Changes.OldPaths
	}
	filechange.AttachChangedCodeLines(in.Tree, changes)
	if reference != nil {
		filechange.AttachFileCoverageDeltas(in.Tree, reference, oldPaths)
		filechange.AttachIndirectCoverageChanges(in.Tree, reference, changes, oldPaths)
		out.ProjectDelta = delta.Project(in.Tree, reference)
	} else {
		logger.Info("No reference build found, skipping delta computation")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out.ModifiedLines = treecreator.CreateModifiedLinesTree(in.Tree)
	out.IndirectChanges = treecreator.CreateIndirectChangesTree(in.Tree)
	if hasModifiedLinesCoverage(out.ModifiedLines) {
		out.ModifiedFiles = treecreator.CreateModifiedFilesTree(in.Tree)
		out.ModifiedFilesDelta = delta.Project(out.ModifiedFiles, in.Tree)
		out.ModifiedLinesDelta = delta.Project(out.ModifiedLines, out.ModifiedFiles)
	} else if hasChangedLines(in.Tree) {
		out.TreeLog.LogInfo("No detected code changes affect the code coverage")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out.Statistics = statistics.New(statistics.Input{
		Project:            out.Project,
		ModifiedLines:      out.ModifiedLines,
		ModifiedFiles:      out.ModifiedFiles,
		IndirectChanges:    out.IndirectChanges,
		ProjectDelta:       out.ProjectDelta,
		ModifiedLinesDelta: out.ModifiedLinesDelta,
		ModifiedFilesDelta: out.ModifiedFilesDelta,
	})
	out.Result = qualitygate.NewEvaluator(qualitygate.WithFormatter(f)).Evaluate(out.Statistics, in.Gates)
	logQualityGates(out.QualityGateLog, out.Result)
	return out, nil
}

func logQualityGates(l *logging.FilteredLog, result *qualitygate.Result) {
	if result.IsInactive() {
		l.LogInfo("No quality gates have been set - skipping")
		return
	}
	l.LogInfo("Evaluating quality gates")
	if result.IsSuccessful() {
		l.LogInfo("-> All quality gates have been passed")
	} else {
		l.LogInfo("-> Some quality gates have been missed: overall result is %s", result.Overall.Name())
	}
	l.LogInfo("-> Details for each quality gate:")
	for _, msg := range result.Messages {
		l.LogInfo("%s", msg)
	}
}

func hasModifiedLinesCoverage(t *tree.Tree) bool {
	return t.Coverage(t.Root(), metric.Line).IsSet() || t.Coverage(t.Root(), metric.Branch).IsSet()
}

func hasChangedLines(t *tree.Tree) bool {
	for _, id := range t.AllFiles(t.Root()) {
		if t.File(id).HasChangedLines() {
			return true
		}
	}
	return false
}
