package export

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"
)

// WriteCSV writes the table to w.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return errors.Wrapf(err, "writing header of %s", t.Name)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return errors.Wrapf(err, "writing rows of %s", t.Name)
	}

	return nil
}

// FileName returns the name of the file a table is saved to.
func FileName(prefix string, t Table, compress bool) string {
	name := strings.ToLower(t.Name) + ".csv"
	if prefix != "" {
		name = prefix + "_" + name
	}
	if compress {
		name += ".gz"
	}

	return name
}

// SaveCSV writes each table to its own file within directory and returns
// the paths written.
func SaveCSV(directory, prefix string, tables []Table, compress bool) ([]string, error) {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating %v", directory)
	}

	var paths []string
	for _, t := range tables {
		path := filepath.Join(directory, FileName(prefix, t, compress))
		glog.V(1).Infof("Saving %s (%d rows) to %v", t.Name, len(t.Rows), path)
		if err := saveCSV(path, t, compress); err != nil {
			return paths, err
		}

		paths = append(paths, path)
	}

	return paths, nil
}

func saveCSV(path string, t Table, compress bool) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %v", path)
	}
	defer f.Close()

	if !compress {
		if err := WriteCSV(f, t); err != nil {
			return err
		}

		return f.Close()
	}

	gz := gzip.NewWriter(f)
	if err := WriteCSV(gz, t); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return errors.Wrapf(err, "compressing %v", path)
	}

	return f.Close()
}

// ReadCSV reads back a file written by SaveCSV, decompressing it if the
// name ends in .gz. The first record is returned as the header.
func ReadCSV(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, errors.Wrapf(err, "opening %v", path)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return Table{}, errors.Wrapf(err, "decompressing %v", path)
		}
		defer gz.Close()
		r = gz
	}

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return Table{}, errors.Wrapf(err, "reading %v", path)
	}

	t := Table{Name: strings.TrimSuffix(strings.TrimSuffix(filepath.Base(path), ".gz"), ".csv")}
	if len(records) > 0 {
		t.Header = records[0]
		t.Rows = records[1:]
	}

	return t, nil
}
