// Package render writes assembled briefings to disk, one document per audience.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
)

// StampLayout formats the run timestamp embedded in file names.
const StampLayout = "20060102_1504"

// Document is one audience briefing handed to a Renderer.
type Document struct {
	Audience domain.Audience
	Title    string
	Sections []domain.Section
	Meta     domain.RunMeta
}

// Renderer turns a document into a stored artifact and returns its location.
type Renderer interface {
	Render(doc Document) (string, error)
}

var docNames = map[domain.Audience]struct{ file, title string }{
	domain.AudienceExecutive:  {file: "Executive_Insights", title: "Executive Insights"},
	domain.AudienceConsulting: {file: "Consulting_News", title: "Consulting News"},
	domain.AudienceSocial:     {file: "Social_Draft_Kit", title: "Social Draft Kit"},
}

// FileName returns the document file name for audience a at stamp.
func FileName(a domain.Audience, stamp string) string {
	name, ok := docNames[a]
	if !ok {
		name.file = "Briefing_" + a.String()
	}

	return fmt.Sprintf("%s_%s.md", name.file, stamp)
}

// DocumentTitle returns "<brand> - <audience document name>".
func DocumentTitle(brand string, a domain.Audience) string {
	name, ok := docNames[a]
	if !ok {
		name.title = a.String()
	}

	if brand == "" {
		return name.title
	}

	return brand + " - " + name.title
}

// Markdown writes documents as Markdown files into a directory.
type Markdown struct {
	dir    string
	stamp  string
	logger *zerolog.Logger
}

// NewMarkdown creates a Markdown renderer whose file names carry the stamp of now.
func NewMarkdown(dir string, now time.Time, logger *zerolog.Logger) *Markdown {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &Markdown{dir: dir, stamp: now.Format(StampLayout), logger: logger}
}

// Render writes doc and returns the file path.
func (m *Markdown) Render(doc Document) (string, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(m.dir, FileName(doc.Audience, m.stamp))

	if err := os.WriteFile(path, []byte(Format(doc)), 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	m.logger.Info().Str("audience", doc.Audience.String()).Str("path", path).Msg("Document written")

	return path, nil
}

// RenderAll renders one document per audience in order and returns the paths written.
// It stops at the first failure.
func RenderAll(r Renderer, docs []Document) ([]string, error) {
	paths := make([]string, 0, len(docs))

	for _, doc := range docs {
		path, err := r.Render(doc)
		if err != nil {
			return paths, fmt.Errorf("render %s: %w", doc.Audience, err)
		}

		paths = append(paths, path)
	}

	return paths, nil
}
