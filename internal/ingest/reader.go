package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// readTable reads a raw dataset file into a header row and data rows.
// CSV and Excel workbooks are both accepted.
func readTable(path string) ([]string, [][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSX(path)
	}
	return readCSV(path)
}

// readCSV reads a delimited text file. The EPA extracts use ';' while the
// sports extract uses ',', so the delimiter is sniffed from the header
// line rather than configured.
func readCSV(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	buffered := bufio.NewReader(file)
	headerLine, err := buffered.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, nil, fmt.Errorf("read header line: %w", err)
	}

	delim := sniffDelimiter(headerLine)

	// Re-read from the start with the sniffed delimiter.
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, nil, err
	}

	reader := csv.NewReader(bufio.NewReader(file))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("file is empty: %s", path)
	}
	return stripBOM(rows[0]), rows[1:], nil
}

// sniffDelimiter picks the delimiter with the most occurrences in the
// header line, defaulting to comma.
func sniffDelimiter(header string) rune {
	semis := strings.Count(header, ";")
	commas := strings.Count(header, ",")
	tabs := strings.Count(header, "\t")
	switch {
	case semis > commas && semis > tabs:
		return ';'
	case tabs > commas:
		return '\t'
	default:
		return ','
	}
}

// stripBOM removes a UTF-8 byte order mark from the first header cell.
// Excel-produced CSVs frequently carry one.
func stripBOM(header []string) []string {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	return header
}
