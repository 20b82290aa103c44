// Package fixtures holds the bike_rental schema snapshots used by the
// workshop. Snapshots are YAML files laid out as <N>_<label>/<stem>.yaml;
// the built-in set is embedded in the binary and a directory with the same
// layout can be loaded instead.
package fixtures

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/driftlab/pkg/types"
)

//go:embed data
var embedded embed.FS

// eraPattern matches era directory names such as "0_spring_2011".
var eraPattern = regexp.MustCompile(`^(\d+)_`)

// Era groups the snapshots of one numbered data directory.
type Era struct {
	Name string   `json:"name"`
	IDs  []string `json:"ids"`
}

// Catalog is an immutable, ordered set of snapshots addressable by id.
type Catalog struct {
	snapshots []types.Snapshot
	byID      map[string]int
}

// Default returns the catalog of embedded snapshots.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("%w: embedded fixtures: %v", types.ErrIO, err)
	}
	return Load(sub)
}

// LoadDir loads snapshots from a directory on disk. A missing directory
// returns ErrNotFound.
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: fixtures directory %s", types.ErrNotFound, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrIO, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", types.ErrIO, dir)
	}
	return Load(os.DirFS(dir))
}

// Load reads every <N>_<label>/<stem>.yaml file in fsys. Directories that do
// not start with a number and an underscore are ignored, as are files
// without a .yaml or .yml extension. Each snapshot is validated on its own;
// snapshots are never checked against each other.
func Load(fsys fs.FS) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("%w: reading fixtures: %v", types.ErrIO, err)
	}

	type era struct {
		prefix int
		name   string
	}
	var eras []era
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m := eraPattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		prefix, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		eras = append(eras, era{prefix: prefix, name: e.Name()})
	}
	sort.SliceStable(eras, func(i, j int) bool {
		if eras[i].prefix != eras[j].prefix {
			return eras[i].prefix < eras[j].prefix
		}
		return eras[i].name < eras[j].name
	})

	c := &Catalog{byID: make(map[string]int)}
	for _, e := range eras {
		files, err := fs.ReadDir(fsys, e.name)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", types.ErrIO, e.name, err)
		}

		var stems []string
		exts := make(map[string]string)
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			ext := path.Ext(f.Name())
			if ext != ".yaml" && ext != ".yml" {
				continue
			}
			stem := strings.TrimSuffix(f.Name(), ext)
			if _, dup := exts[stem]; dup {
				return nil, fmt.Errorf("%w: %s/%s defined twice", types.ErrSchema, e.name, stem)
			}
			exts[stem] = ext
			stems = append(stems, stem)
		}
		sort.Slice(stems, func(i, j int) bool { return lessStem(stems[i], stems[j]) })

		for _, stem := range stems {
			id := e.name + "/" + stem
			snap, err := readSnapshot(fsys, e.name+"/"+stem+exts[stem])
			if err != nil {
				return nil, err
			}
			snap.ID = id
			if err := snap.Validate(); err != nil {
				return nil, err
			}
			c.byID[id] = len(c.snapshots)
			c.snapshots = append(c.snapshots, snap)
		}
	}
	return c, nil
}

// readSnapshot decodes a single fixture file. Unknown keys are rejected.
func readSnapshot(fsys fs.FS, name string) (types.Snapshot, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("%w: reading %s: %v", types.ErrIO, name, err)
	}

	var snap types.Snapshot
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&snap); err != nil {
		if errors.Is(err, types.ErrSchema) {
			return types.Snapshot{}, fmt.Errorf("%s: %w", name, err)
		}
		return types.Snapshot{}, fmt.Errorf("%w: decoding %s: %v", types.ErrSchema, name, err)
	}
	return snap, nil
}

// lessStem orders numeric stems numerically and everything else lexically,
// with numeric stems first.
func lessStem(a, b string) bool {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return ai < bi
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	default:
		return a < b
	}
}

// Get returns the snapshot with the given id, or ErrNotFound.
func (c *Catalog) Get(id string) (types.Snapshot, error) {
	i, ok := c.byID[id]
	if !ok {
		return types.Snapshot{}, fmt.Errorf("%w: snapshot %q", types.ErrNotFound, id)
	}
	return clone(c.snapshots[i]), nil
}

// Latest returns the last snapshot in catalog order.
func (c *Catalog) Latest() (types.Snapshot, error) {
	if len(c.snapshots) == 0 {
		return types.Snapshot{}, fmt.Errorf("%w: catalog has no snapshots", types.ErrNotFound)
	}
	return clone(c.snapshots[len(c.snapshots)-1]), nil
}

// Resolve returns the snapshot for id, or the latest snapshot when id is empty.
func (c *Catalog) Resolve(id string) (types.Snapshot, error) {
	if id == "" {
		return c.Latest()
	}
	return c.Get(id)
}

// Len returns the number of snapshots.
func (c *Catalog) Len() int {
	return len(c.snapshots)
}

// IDs returns every snapshot id in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.snapshots))
	for i, s := range c.snapshots {
		ids[i] = s.ID
	}
	return ids
}

// Snapshots returns copies of all snapshots in catalog order.
func (c *Catalog) Snapshots() []types.Snapshot {
	out := make([]types.Snapshot, len(c.snapshots))
	for i, s := range c.snapshots {
		out[i] = clone(s)
	}
	return out
}

// Eras groups snapshot ids by era directory, in catalog order.
func (c *Catalog) Eras() []Era {
	var eras []Era
	for _, s := range c.snapshots {
		name, _, _ := strings.Cut(s.ID, "/")
		if len(eras) == 0 || eras[len(eras)-1].Name != name {
			eras = append(eras, Era{Name: name})
		}
		eras[len(eras)-1].IDs = append(eras[len(eras)-1].IDs, s.ID)
	}
	return eras
}

// Match returns the ids of snapshots whose table and columns equal the
// given ones by name, order and type.
func (c *Catalog) Match(table string, cols []types.Column) []string {
	var ids []string
	for _, s := range c.snapshots {
		if s.Table == table && s.SameColumns(cols) {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func clone(s types.Snapshot) types.Snapshot {
	s.Columns = append([]types.Column(nil), s.Columns...)
	return s
}
