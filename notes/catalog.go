// Package notes lists the markdown notes in a directory. It never writes to
// the directory.
package notes

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Extension is the file extension of a note.
const Extension = ".md"

// headerScanLimit bounds how much of a note is read to find its title.
const headerScanLimit = 8 * 1024

// Note is one markdown file in the catalog.
type Note struct {
	Path    string
	Title   string
	ModTime time.Time
	Size    int64
}

// Name returns the note's file name relative to dir.
func (n Note) Name(dir string) string {
	rel, err := filepath.Rel(dir, n.Path)
	if err != nil {
		return filepath.Base(n.Path)
	}
	return rel
}

// Catalog reads notes from a directory tree.
type Catalog struct {
	dir string
}

// NewCatalog creates a catalog rooted at dir.
func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir}
}

// Dir returns the catalog root.
func (c *Catalog) Dir() string {
	return c.dir
}

// Load walks the catalog and returns its notes, most recently modified first.
// Hidden files and directories are skipped.
func (c *Catalog) Load() ([]Note, error) {
	info, err := os.Stat(c.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open notes directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("notes path %s is not a directory", c.dir)
	}

	var notes []Note
	err = filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != c.dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), Extension) {
			return nil
		}

		note, err := ReadNote(path)
		if err != nil {
			return err
		}
		notes = append(notes, note)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	sort.SliceStable(notes, func(i, j int) bool {
		if !notes[i].ModTime.Equal(notes[j].ModTime) {
			return notes[i].ModTime.After(notes[j].ModTime)
		}
		return notes[i].Path < notes[j].Path
	})
	return notes, nil
}

// ReadNote stats path and extracts its title.
func ReadNote(path string) (Note, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Note{}, fmt.Errorf("failed to stat note: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return Note{}, fmt.Errorf("failed to open note: %w", err)
	}
	defer f.Close()

	head, err := io.ReadAll(io.LimitReader(f, headerScanLimit))
	if err != nil {
		return Note{}, fmt.Errorf("failed to read note: %w", err)
	}

	title := ParseTitle(head)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return Note{
		Path:    path,
		Title:   title,
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}, nil
}

// ReadBody returns the note content, capped at limit bytes when limit > 0.
func ReadBody(path string, limit int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open note: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, limit)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read note: %w", err)
	}
	return string(data), nil
}

type frontMatter struct {
	Title string `yaml:"title"`
}

var errNoFrontMatter = errors.New("no front matter")

// ParseTitle returns the note title from its front matter, or else its first
// level-one heading. It returns "" when neither exists.
func ParseTitle(content []byte) string {
	body := content
	if fm, rest, err := splitFrontMatter(content); err == nil {
		var meta frontMatter
		if yaml.Unmarshal(fm, &meta) == nil && strings.TrimSpace(meta.Title) != "" {
			return strings.TrimSpace(meta.Title)
		}
		body = rest
	}

	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

// splitFrontMatter separates a leading "---" delimited YAML block.
func splitFrontMatter(content []byte) (fm, rest []byte, err error) {
	content = bytes.TrimPrefix(content, []byte("\ufeff"))
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return nil, content, errNoFrontMatter
	}
	start := bytes.IndexByte(content, '\n') + 1
	for i := start; i < len(content); {
		end := bytes.IndexByte(content[i:], '\n')
		line := content[i:]
		next := len(content)
		if end >= 0 {
			line = content[i : i+end]
			next = i + end + 1
		}
		if strings.TrimSpace(string(line)) == "---" {
			return content[start:i], content[next:], nil
		}
		i = next
	}
	return nil, content, errNoFrontMatter
}
