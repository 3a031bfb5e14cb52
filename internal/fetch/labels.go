package fetch

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ReadLabels parses newline-delimited labels. Blank lines and lines
// starting with '#' are skipped.
func ReadLabels(r io.Reader) ([]string, error) {
	var labels []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		labels = append(labels, s)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read labels")
	}
	return labels, nil
}

// ReadLabelsFile reads labels from the file at path.
func ReadLabelsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open labels file")
	}
	defer f.Close()
	return ReadLabels(f)
}
