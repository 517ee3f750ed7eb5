package dataset

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/personafuse/catalog"
)

// File names LoadDir expects inside a catalogue directory. The treasure file
// is optional; a catalogue without treasure personas needs none.
const (
	PersonasFile      = "personas.tsv"
	CompatibilityFile = "compatibility.tsv"
	TreasureFile      = "treasure.tsv"
)

// ErrUnsupported is returned by Load for paths that are neither a directory
// nor a YAML bundle.
var ErrUnsupported = errors.New("dataset: unsupported catalogue path")

//go:embed data/*.tsv
var sampleFS embed.FS

// Sample returns the embedded sample catalogue.
func Sample() (*catalog.Catalog, error) {
	return LoadDir(sampleFS, "data")
}

// LoadDir reads the three TSV files from dir inside fsys.
func LoadDir(fsys fs.FS, dir string) (*catalog.Catalog, error) {
	var arcana []*catalog.Arcana
	if err := parseFile(fsys, path.Join(dir, PersonasFile), func(r io.Reader) (err error) {
		arcana, err = ParsePersonas(r)
		return err
	}); err != nil {
		return nil, err
	}

	var compat []catalog.Compatibility
	if err := parseFile(fsys, path.Join(dir, CompatibilityFile), func(r io.Reader) (err error) {
		compat, err = ParseCompatibility(r)
		return err
	}); err != nil {
		return nil, err
	}

	var treasure catalog.TreasureTable
	err := parseFile(fsys, path.Join(dir, TreasureFile), func(r io.Reader) (err error) {
		treasure, err = ParseTreasure(r)
		return err
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return catalog.New(arcana, compat, treasure)
}

func parseFile(fsys fs.FS, name string, parse func(io.Reader) error) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("dataset: open %s: %w", name, err)
	}
	defer f.Close()

	if err := parse(f); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return nil
}

// Load reads a catalogue from the local filesystem: a directory is read with
// LoadDir, a .yaml or .yml file with LoadBundle.
func Load(p string) (*catalog.Catalog, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	if info.IsDir() {
		return LoadDir(os.DirFS(p), ".")
	}

	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml":
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}
		defer f.Close()

		c, err := LoadBundle(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, p)
	}
}
