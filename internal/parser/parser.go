package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxLineBytes bounds a single log line.
const maxLineBytes = 1024 * 1024

// Result holds the outcome of parsing a log file.
type Result struct {
	Rows       Dataset
	TotalLines int
	// RawLines lists 1-based line numbers the CSV reader rejected. Those
	// lines are kept in Rows as a single field holding the raw text.
	RawLines []int
}

// ParseLine reads one line as a CSV record. Empty lines give an empty row.
func ParseLine(line string) (LogRow, error) {
	if line == "" {
		return LogRow{}, nil
	}

	cr := csv.NewReader(strings.NewReader(line))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	record, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return LogRow{}, nil
	}
	if err != nil {
		return nil, err
	}
	return LogRow(record), nil
}

// ParseReader splits r into lines using \n, \r\n or a lone \r and parses each
// line as a CSV record. No line is dropped and the first line is data.
func ParseReader(r io.Reader) (Result, error) {
	var result Result
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineBytes)
	scanner.Split(scanUniversalLines)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		row, err := ParseLine(line)
		if err != nil {
			row = LogRow{line}
			result.RawLines = append(result.RawLines, lineNum)
		}
		result.Rows = append(result.Rows, row)
	}
	result.TotalLines = lineNum

	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("parser: line %d: %w", lineNum+1, err)
	}
	return result, nil
}

// ParseString is ParseReader over an in-memory document.
func ParseString(text string) (Result, error) {
	return ParseReader(strings.NewReader(text))
}

// scanUniversalLines is a bufio.SplitFunc that ends lines at \n, \r\n or \r
// and drops the terminator. A final terminator does not yield an empty line.
func scanUniversalLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// Lone \r at the end of the buffer; wait to see if \n follows.
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
