package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/omicalign/omicalign/pkg/errors"
)

// Manifest describes a set of input datasets in TOML form.
//
// Records and cross-references can be given inline or loaded from CSV
// files referenced relative to the manifest location:
//
//	[[datasets]]
//	name = "rna"
//	features_file = "rna_features.csv"
//
//	[[datasets.crossrefs]]
//	src = "sad"
//	namespace = "geneid"
//	target = "947440"
type Manifest struct {
	Datasets []ManifestDataset `toml:"datasets"`
}

// ManifestDataset is one dataset entry in a manifest.
type ManifestDataset struct {
	Name string `toml:"name"`

	Features  []ManifestRecord `toml:"features"`
	Columns   []ManifestRecord `toml:"columns"`
	CrossRefs []ManifestXref   `toml:"crossrefs"`

	// Optional CSV files, resolved relative to the manifest directory.
	FeaturesFile  string `toml:"features_file"`
	ColumnsFile   string `toml:"columns_file"`
	CrossRefsFile string `toml:"crossrefs_file"`
}

// ManifestRecord is one inline record row.
type ManifestRecord struct {
	ID        string `toml:"id"`
	Entity    string `toml:"entity"`
	Namespace string `toml:"namespace"`
	Role      string `toml:"role"`
}

// ManifestXref is one inline cross-reference row.
type ManifestXref struct {
	Src       string `toml:"src"`
	Namespace string `toml:"namespace"`
	Target    string `toml:"target"`
}

// LoadManifest reads a TOML manifest and materializes its datasets,
// loading any referenced CSV files relative to the manifest location.
func LoadManifest(path string) ([]Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to read manifest %s", path)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to parse manifest %s", path)
	}
	return m.Materialize(filepath.Dir(path))
}

// Materialize converts manifest entries to datasets, loading CSV files
// relative to dir.
func (m Manifest) Materialize(dir string) ([]Dataset, error) {
	if len(m.Datasets) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "manifest declares no datasets")
	}

	seen := make(map[string]bool, len(m.Datasets))
	out := make([]Dataset, 0, len(m.Datasets))
	for _, md := range m.Datasets {
		if err := errors.ValidateDatasetName(md.Name); err != nil {
			return nil, err
		}
		ds := Dataset{Name: md.Name}
		if seen[ds.Scope()] {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "duplicate dataset name %q", md.Name)
		}
		seen[ds.Scope()] = true

		ds.Features = toRecords(md.Features)
		ds.Columns = toRecords(md.Columns)
		ds.CrossRefs = toXrefs(md.CrossRefs)

		if md.FeaturesFile != "" {
			recs, err := loadRecordsCSV(filepath.Join(dir, md.FeaturesFile))
			if err != nil {
				return nil, err
			}
			ds.Features = append(ds.Features, recs...)
		}
		if md.ColumnsFile != "" {
			recs, err := loadRecordsCSV(filepath.Join(dir, md.ColumnsFile))
			if err != nil {
				return nil, err
			}
			ds.Columns = append(ds.Columns, recs...)
		}
		if md.CrossRefsFile != "" {
			xrefs, err := loadXrefsCSV(filepath.Join(dir, md.CrossRefsFile))
			if err != nil {
				return nil, err
			}
			ds.CrossRefs = append(ds.CrossRefs, xrefs...)
		}

		out = append(out, ds)
	}
	return out, nil
}

func toRecords(rows []ManifestRecord) []Record {
	if len(rows) == 0 {
		return nil
	}
	recs := make([]Record, len(rows))
	for i, r := range rows {
		recs[i] = Record{ID: r.ID, Entity: r.Entity, Namespace: r.Namespace, Role: r.Role}
	}
	return recs
}

func toXrefs(rows []ManifestXref) []CrossRef {
	if len(rows) == 0 {
		return nil
	}
	xrefs := make([]CrossRef, len(rows))
	for i, r := range rows {
		xrefs[i] = CrossRef{Src: r.Src, Namespace: r.Namespace, Target: r.Target}
	}
	return xrefs
}

// loadRecordsCSV reads record rows from a CSV file with header
// id,entity,namespace[,role]. Column order follows the header.
func loadRecordsCSV(path string) ([]Record, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	idx, err := columnIndex(header, path, "id")
	if err != nil {
		return nil, err
	}

	recs := make([]Record, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, Record{
			ID:        field(row, idx, "id"),
			Entity:    field(row, idx, "entity"),
			Namespace: field(row, idx, "namespace"),
			Role:      field(row, idx, "role"),
		})
	}
	return recs, nil
}

// loadXrefsCSV reads cross-reference rows from a CSV file with header
// src,namespace,target.
func loadXrefsCSV(path string) ([]CrossRef, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	idx, err := columnIndex(header, path, "src", "namespace", "target")
	if err != nil {
		return nil, err
	}

	xrefs := make([]CrossRef, 0, len(rows))
	for _, row := range rows {
		xrefs = append(xrefs, CrossRef{
			Src:       field(row, idx, "src"),
			Namespace: field(row, idx, "namespace"),
			Target:    field(row, idx, "target"),
		})
	}
	return xrefs, nil
}

func readCSV(path string) (rows [][]string, header []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err = r.Read()
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to read header of %s", path)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to read %s", path)
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

// columnIndex maps header names to positions and checks required columns.
func columnIndex(header []string, path string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "%s is missing required column %q", path, name)
		}
	}
	return idx, nil
}

func field(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
