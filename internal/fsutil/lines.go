package fsutil

import (
	"bufio"
	"bytes"
	"os"
	"strings"
)

// ReadLines returns the lines of a text file without their terminators.
// Both "\n" and "\r\n" endings are accepted.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// WriteLines writes lines to path, each terminated by "\n".
func WriteLines(path string, lines []string, perm os.FileMode) error {
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	return os.WriteFile(path, buf.Bytes(), perm)
}
