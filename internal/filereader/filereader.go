package filereader

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/filesystem"
)

// CountLinesInFile counts the number of physical lines in a file.
func CountLinesInFile(filePath string) (int, error) {
	lines, err := ReadLines(filesystem.DefaultFS{}, filePath)
	if err != nil {
		return 0, err
	}
	return len(lines), nil
}

// ReadLinesInFile reads all lines from a file on the host filesystem.
func ReadLinesInFile(filePath string) ([]string, error) {
	return ReadLines(filesystem.DefaultFS{}, filePath)
}

// ReadLines reads all lines of a file. UTF-16 and UTF-8 files with a byte
// order mark are decoded, everything else is read as UTF-8.
func ReadLines(fsys filesystem.Filesystem, filePath string) ([]string, error) {
	file, err := fsys.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	lines, err := ReadLinesFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return lines, nil
}

// ReadLinesFrom decodes r like ReadLines.
func ReadLinesFrom(r io.Reader) ([]string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	scanner := bufio.NewScanner(transform.NewReader(r, decoder))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
