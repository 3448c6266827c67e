// Package loader walks a content directory, parses frontmatter, validates
// documents, and computes their derived fields. One load produces the full
// document set for a snapshot; documents that fail validation are reported
// and skipped without aborting the rest of the load.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yigityalim/imperial-tobacco-web/internal/content"
	"github.com/yigityalim/imperial-tobacco-web/internal/frontmatter"
)

// kindRoots maps the content root directories to document kinds.
var kindRoots = map[string]content.Kind{
	"brands":     content.KindBrand,
	"categories": content.KindCategory,
	"products":   content.KindProduct,
	"posts":      content.KindPost,
}

// Problem is a single document that could not be loaded, with the reason.
// The document is excluded from the snapshot; the load itself continues.
type Problem struct {
	Path string
	Err  error
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %v", p.Path, p.Err)
}

// Result is the outcome of one content load.
type Result struct {
	Documents []*content.Document
	Problems  []Problem
}

// Load reads every .mdx/.md file under the kind roots of dir. Per-document
// parse and derive work is independent, so files are processed in parallel.
func Load(ctx context.Context, dir string) (*Result, error) {
	files, err := discover(dir)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := loadOne(file)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Problems = append(result.Problems, Problem{Path: file.relPath, Err: err})
				return nil
			}
			result.Documents = append(result.Documents, doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Parallel completion order is nondeterministic; restore raw-path order
	// for stable logs and reports.
	sort.Slice(result.Documents, func(i, j int) bool {
		return strings.Join(result.Documents[i].RawPath, "/") < strings.Join(result.Documents[j].RawPath, "/")
	})
	sort.Slice(result.Problems, func(i, j int) bool {
		return result.Problems[i].Path < result.Problems[j].Path
	})

	for _, p := range result.Problems {
		slog.Warn("Document excluded from snapshot", "path", p.Path, "error", p.Err)
	}

	return result, nil
}

type contentFile struct {
	absPath string
	relPath string
	kind    content.Kind
	rawPath []string
}

func discover(dir string) ([]contentFile, error) {
	var files []contentFile

	for root, kind := range kindRoots {
		rootDir := filepath.Join(dir, root)
		if _, err := os.Stat(rootDir); os.IsNotExist(err) {
			continue
		}

		err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			ext := filepath.Ext(path)
			if ext != ".mdx" && ext != ".md" {
				return nil
			}

			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			files = append(files, contentFile{
				absPath: path,
				relPath: filepath.ToSlash(rel),
				kind:    kind,
				rawPath: rawPathFor(rel, ext),
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", rootDir, err)
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].relPath < files[j].relPath })
	return files, nil
}

// rawPathFor flattens a file path into hierarchical segments: the extension is
// dropped, and an "index" leaf collapses into its directory.
func rawPathFor(rel, ext string) []string {
	flattened := strings.TrimSuffix(filepath.ToSlash(rel), ext)
	segments := strings.Split(flattened, "/")
	if len(segments) > 1 && segments[len(segments)-1] == "index" {
		segments = segments[:len(segments)-1]
	}
	return segments
}

func loadOne(file contentFile) (*content.Document, error) {
	// #nosec G304 -- paths come from walking the configured content dir.
	raw, err := os.ReadFile(file.absPath)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	fm, body, _, err := frontmatter.Split(raw)
	if err != nil {
		return nil, err
	}
	fields, err := frontmatter.Parse(fm)
	if err != nil {
		return nil, fmt.Errorf("frontmatter: %w", err)
	}

	doc, err := content.Validate(content.RawDocument{
		Kind:    file.kind,
		RawPath: file.rawPath,
		Fields:  fields,
		Body:    body,
	})
	if err != nil {
		return nil, err
	}

	content.Derive(doc, body)
	return doc, nil
}
