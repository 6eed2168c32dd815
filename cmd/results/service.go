package results

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Run is one sweep file in the results directory.
type Run struct {
	Name    string
	Path    string
	ModTime time.Time
	Size    int64
}

// Service lists the sweep files available to the viewer.
type Service interface {
	List() ([]Run, error)
	Get(name string) (Run, error)
	Dir() string
}

var _ Service = (*fileService)(nil)

// fileService finds *.csv files directly under baseDir.
type fileService struct {
	baseDir string
}

// NewFileService creates a results service rooted at dir (created if missing).
func NewFileService(dir string) (Service, error) {
	if dir == "" {
		return nil, errors.New("empty results dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &fileService{baseDir: dir}, nil
}

func (s *fileService) Dir() string { return s.baseDir }

// List returns every sweep file sorted by mtime, newest first. Entries that
// vanish while listing are skipped.
func (s *fileService) List() ([]Run, error) {
	dir, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}
	var runs []Run
	for _, de := range dir {
		if de.IsDir() || !strings.EqualFold(filepath.Ext(de.Name()), ".csv") {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		runs = append(runs, runOf(s.baseDir, info))
	}
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].ModTime.After(runs[j].ModTime) })
	return runs, nil
}

// Get returns the run stored as name, with or without its extension.
func (s *fileService) Get(name string) (Run, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Run{}, errors.New("empty name")
	}
	if filepath.Ext(name) == "" {
		name += ".csv"
	}
	info, err := os.Stat(filepath.Join(s.baseDir, filepath.Base(name)))
	if err != nil {
		return Run{}, err
	}
	if info.IsDir() {
		return Run{}, fmt.Errorf("%s is a directory", name)
	}
	return runOf(s.baseDir, info), nil
}

func runOf(dir string, info fs.FileInfo) Run {
	return Run{
		Name:    strings.TrimSuffix(info.Name(), filepath.Ext(info.Name())),
		Path:    filepath.Join(dir, info.Name()),
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}
}
