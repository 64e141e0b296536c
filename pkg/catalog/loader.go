package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/strive-cao-api/internal/models"
)

type document struct {
	Courses []models.Course `yaml:"courses"`
}

// Loader serves a course catalog read from a YAML file.
type Loader struct {
	path    string
	courses []models.Course
	logger  *zap.Logger
	mu      sync.RWMutex
}

// NewLoader creates a loader and reads the catalog file.
func NewLoader(path string, logger *zap.Logger) (*Loader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Loader{path: path, logger: logger}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Reload re-reads the catalog file, replacing the loaded courses on success.
func (l *Loader) Reload() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", l.path, err)
	}
	courses, err := Parse(data)
	if err != nil {
		return fmt.Errorf("parse catalog %s: %w", l.path, err)
	}

	l.mu.Lock()
	l.courses = courses
	l.mu.Unlock()

	l.logger.Info("course catalog loaded", zap.String("path", l.path), zap.Int("courses", len(courses)))
	return nil
}

// List returns a copy of the catalog in file order.
func (l *Loader) List(_ context.Context) ([]models.Course, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Course, len(l.courses))
	copy(out, l.courses)
	return out, nil
}

// Parse decodes a catalog document. Entries without a title are skipped and
// categories are stored lower-case.
func Parse(data []byte) ([]models.Course, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	courses := make([]models.Course, 0, len(doc.Courses))
	for i, c := range doc.Courses {
		c.Title = strings.TrimSpace(c.Title)
		if c.Title == "" {
			continue
		}
		if c.Points < 0 {
			return nil, fmt.Errorf("course %d (%s): negative points", i, c.Title)
		}
		c.Category = strings.ToLower(strings.TrimSpace(c.Category))
		if c.Category == "" {
			c.Category = string(models.CategoryGeneral)
		}
		courses = append(courses, c)
	}
	return courses, nil
}
