// Package loader fills the card grid from an external markup file named by
// the grid's data-cards-src attribute, before the widget binds to it.
package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/hack-pad/hackpadfs"
	"go.uber.org/zap"

	"github.com/kittclouds/rarestones/pkg/dom"
)

// Source fetches card markup by reference.
type Source interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// HTTPSource fetches over HTTP. Under js/wasm net/http runs on the
// browser's fetch.
type HTTPSource struct {
	Client *http.Client
	// Base resolves relative references, typically the document URL.
	Base *url.URL
}

func (s *HTTPSource) Fetch(ctx context.Context, ref string) ([]byte, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("cards src %q: %w", ref, err)
	}
	if s.Base != nil {
		u = s.Base.ResolveReference(u)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: HTTP %d", u, res.StatusCode)
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u, err)
	}
	return body, nil
}

// FSSource reads from a hackpadfs filesystem. References are slash paths
// relative to Dir; a leading slash makes them relative to the FS root.
type FSSource struct {
	FS  hackpadfs.FS
	Dir string
}

func (s *FSSource) Fetch(_ context.Context, ref string) ([]byte, error) {
	p := strings.TrimPrefix(ref, "/")
	if !strings.HasPrefix(ref, "/") && s.Dir != "" {
		p = path.Join(s.Dir, ref)
	}
	p = path.Clean(p)
	body, err := hackpadfs.ReadFile(s.FS, p)
	if err != nil {
		return nil, fmt.Errorf("read cards %s: %w", p, err)
	}
	return body, nil
}

// Loader inserts external card markup into the grid.
type Loader struct {
	source Source
	attr   string
	logger *zap.Logger
}

// New creates a Loader reading the reference from attr on the grid.
func New(source Source, attr string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{source: source, attr: attr, logger: logger}
}

// Load fills grid when it names a source and reports whether it did.
// Without the attribute the grid keeps its inline cards. On error the
// grid is left untouched.
func (l *Loader) Load(ctx context.Context, grid dom.Element) (bool, error) {
	ref, ok := grid.Attr(l.attr)
	ref = strings.TrimSpace(ref)
	if !ok || ref == "" {
		l.logger.Debug("no cards source, using inline cards")
		return false, nil
	}

	body, err := l.source.Fetch(ctx, ref)
	if err != nil {
		l.logger.Error("card markup load failed", zap.String("src", ref), zap.Error(err))
		return false, err
	}
	if err := grid.SetInnerHTML(string(body)); err != nil {
		return false, fmt.Errorf("insert cards from %s: %w", ref, err)
	}
	l.logger.Info("card markup loaded", zap.String("src", ref), zap.Int("bytes", len(body)))
	return true, nil
}

// CachedSource wraps a Source with a filesystem copy of the last good
// response per reference, kept under Dir ("cards" when empty). A failed
// fetch falls back to that copy.
type CachedSource struct {
	Source Source
	Cache  hackpadfs.FS
	Dir    string
	Logger *zap.Logger
}

func (s *CachedSource) Fetch(ctx context.Context, ref string) ([]byte, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	p := s.cachePath(ref)

	body, err := s.Source.Fetch(ctx, ref)
	if err == nil {
		if werr := s.store(p, body); werr != nil {
			logger.Warn("card cache write failed", zap.String("path", p), zap.Error(werr))
		}
		return body, nil
	}

	cached, cerr := hackpadfs.ReadFile(s.Cache, p)
	if cerr != nil {
		return nil, err
	}
	logger.Warn("serving cached card markup", zap.String("src", ref), zap.Error(err))
	return cached, nil
}

func (s *CachedSource) cachePath(ref string) string {
	dir := s.Dir
	if dir == "" {
		dir = "cards"
	}
	return path.Join(dir, url.PathEscape(ref))
}

func (s *CachedSource) store(p string, body []byte) error {
	if err := hackpadfs.MkdirAll(s.Cache, path.Dir(p), 0o755); err != nil {
		return err
	}
	return hackpadfs.WriteFullFile(s.Cache, p, body, 0o644)
}
