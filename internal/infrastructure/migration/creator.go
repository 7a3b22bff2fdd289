package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

const upStub = `-- %s

`

const downStub = `-- Rollback: %s

`

var nameSanitizer = regexp.MustCompile(`[^a-z0-9]+`)

// Pair is an up/down migration file pair on disk.
type Pair struct {
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

// Create writes a new timestamped up/down migration pair.
func Create(dir, name string) (*Pair, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	version := time.Now().Format("20060102150405")
	slug := sanitize(name)
	base := version + "_" + slug

	p := &Pair{
		Version:  version,
		Name:     slug,
		UpPath:   filepath.Join(dir, base+".up.sql"),
		DownPath: filepath.Join(dir, base+".down.sql"),
	}

	if err := os.WriteFile(p.UpPath, []byte(fmt.Sprintf(upStub, name)), 0o644); err != nil {
		return nil, fmt.Errorf("write up migration: %w", err)
	}
	if err := os.WriteFile(p.DownPath, []byte(fmt.Sprintf(downStub, name)), 0o644); err != nil {
		return nil, fmt.Errorf("write down migration: %w", err)
	}
	return p, nil
}

// List returns the migration pairs in dir ordered by version.
func List(dir string) ([]Pair, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	byVersion := make(map[string]*Pair)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		var up bool
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			up = true
		case strings.HasSuffix(name, ".down.sql"):
			up = false
		default:
			continue
		}

		base := strings.TrimSuffix(strings.TrimSuffix(name, ".up.sql"), ".down.sql")
		version, slug, ok := strings.Cut(base, "_")
		if !ok {
			continue
		}

		p, exists := byVersion[version]
		if !exists {
			p = &Pair{Version: version, Name: slug}
			byVersion[version] = p
		}
		if up {
			p.UpPath = filepath.Join(dir, name)
		} else {
			p.DownPath = filepath.Join(dir, name)
		}
	}

	pairs := make([]Pair, 0, len(byVersion))
	for _, p := range byVersion {
		pairs = append(pairs, *p)
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Version < pairs[j].Version })
	return pairs, nil
}

func sanitize(name string) string {
	s := nameSanitizer.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(s, "_")
}
