package parser

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/filesystem"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/tree"
)

// sniffSize is the number of leading bytes importers inspect to recognize
// their format.
const sniffSize = 512

// Config carries what importers need beyond the report itself.
type Config struct {
	FS     filesystem.Filesystem
	Logger log.FieldLogger
}

func (c Config) withDefaults() Config {
	if c.FS == nil {
		c.FS = filesystem.DefaultFS{}
	}
	if c.Logger == nil {
		discard := log.New()
		discard.SetOutput(io.Discard)
		c.Logger = discard
	}
	return c
}

// IParser defines the contract for all coverage report importers.
type IParser interface {
	Name() string
	SupportsFile(fsys filesystem.Filesystem, filePath string) bool
	Parse(filePath string, cfg Config) (*tree.Tree, error)
}

var registeredParsers []IParser

// RegisterParser adds an importer to the list of available importers.
// Implementations call it from their init function.
func RegisterParser(p IParser) {
	registeredParsers = append(registeredParsers, p)
}

// GetParsers returns all registered importers in registration order.
func GetParsers() []IParser {
	return registeredParsers
}

// FindParserForFile returns the first importer that accepts the file.
func FindParserForFile(fsys filesystem.Filesystem, filePath string) (IParser, error) {
	for _, p := range registeredParsers {
		if p.SupportsFile(fsys, filePath) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no suitable parser found for file: %s", filePath)
}

// Parse imports a coverage report with the first importer that accepts it.
func Parse(filePath string, cfg Config) (*tree.Tree, error) {
	cfg = cfg.withDefaults()
	if _, err := cfg.FS.Stat(filePath); err != nil {
		return nil, fmt.Errorf("reading coverage tree: %w", err)
	}
	p, err := FindParserForFile(cfg.FS, filePath)
	if err != nil {
		return nil, err
	}
	t, err := p.Parse(filePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s parser: reading %s: %w", p.Name(), filePath, err)
	}
	cfg.Logger.WithFields(log.Fields{"parser": p.Name(), "file": filePath}).Debug("Imported coverage report")
	return t, nil
}

// Head returns up to sniffSize leading bytes of a file, or nil when it
// cannot be opened.
func Head(fsys filesystem.Filesystem, filePath string) []byte {
	f, err := fsys.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()
	buf := make([]byte, sniffSize)
	n, _ := io.ReadFull(f, buf)
	return buf[:n]
}
