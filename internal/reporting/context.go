package reporting

import (
	log "github.com/sirupsen/logrus"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/filesystem"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/reportconfig"
)

// IReportContext bundles what an evaluation needs from its surroundings.
type IReportContext interface {
	ReportConfiguration() reportconfig.IReportConfiguration
	Logger() log.FieldLogger
	Filesystem() filesystem.Filesystem
}

// ReportContext is the concrete implementation of IReportContext.
type ReportContext struct {
	Cfg reportconfig.IReportConfiguration
	Log log.FieldLogger
	FS  filesystem.Filesystem
}

func (rc *ReportContext) ReportConfiguration() reportconfig.IReportConfiguration { return rc.Cfg }
func (rc *ReportContext) Logger() log.FieldLogger                                { return rc.Log }
func (rc *ReportContext) Filesystem() filesystem.Filesystem                      { return rc.FS }

// NewReportContext creates a new ReportContext. A nil filesystem selects the
// host filesystem.
func NewReportContext(cfg reportconfig.IReportConfiguration, logger log.FieldLogger, fsys filesystem.Filesystem) *ReportContext {
	if fsys == nil {
		fsys = filesystem.DefaultFS{}
	}
	return &ReportContext{Cfg: cfg, Log: logger, FS: fsys}
}
