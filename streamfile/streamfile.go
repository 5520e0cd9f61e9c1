// Package streamfile reads the demo harness's record-stream format: one
// whitespace-separated record per line, only "E" (entry) lines consumed.
package streamfile

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/psimatis/rstartree-go/rtree"
)

// Read consumes every "E ID X Y ..." line from r and returns the resulting
// point rectangles in file order. Lines with any other TYPE, and blank
// lines, are skipped. Trailing fields after Y are ignored.
func Read(r io.Reader) ([]rtree.Rectangle, error) {
	var rects []rtree.Rectangle
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if fields[0] != "E" {
			continue
		}
		if len(fields) < 4 {
			return nil, errors.Errorf("streamfile: line %d: entry record needs at least TYPE ID X Y, got %q", lineNo, line)
		}

		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errors.Wrapf(err, "streamfile: line %d: invalid ID", lineNo)
		}
		x, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, errors.Wrapf(err, "streamfile: line %d: invalid X", lineNo)
		}
		y, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, errors.Wrapf(err, "streamfile: line %d: invalid Y", lineNo)
		}

		rects = append(rects, rtree.NewPoint(id, []float32{float32(x), float32(y)}))
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "streamfile: reading stream")
	}
	return rects, nil
}
