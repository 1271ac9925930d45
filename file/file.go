package file

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode reads chart text. A UTF-16 or UTF-8 byte order mark selects the
// encoding and is dropped; without one the input is taken as UTF-8.
func Decode(r io.Reader) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	dat, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return "", errors.Wrap(err, "could not decode chart")
	}
	return strings.ReplaceAll(string(dat), "\r\n", "\n"), nil
}

func ReadChart(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "could not open chart")
	}
	defer f.Close()
	return Decode(f)
}

// GatherChartPaths walks dir for .chart files. maxNum of 0 means no limit.
func GatherChartPaths(dir string, maxNum int) ([]string, error) {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(s), ".chart") {
			if maxNum == 0 || len(res) < maxNum {
				res = append(res, s)
			}
		}
		return nil
	}
	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, errors.Wrapf(err, "could not walk %s", dir)
	}
	return res, nil
}
