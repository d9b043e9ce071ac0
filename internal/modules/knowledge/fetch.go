package knowledge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/editais-backend/internal/platform/logger"
)

type Config struct {
	// FetchTimeout bounds a single download; 0 disables it.
	FetchTimeout time.Duration
	// Budget bounds LoadAll as a whole; 0 disables it.
	Budget time.Duration
	// MaxBytes caps a single body; 0 disables it.
	MaxBytes    int64
	Concurrency int
}

func DefaultConfig() Config {
	return Config{
		FetchTimeout: 30 * time.Second,
		Budget:       60 * time.Second,
		MaxBytes:     25 << 20,
		Concurrency:  8,
	}
}

// Document is the outcome of fetching one training file. Text already carries
// the delimiter header and is empty whenever Err is set.
type Document struct {
	SourceURL string
	FileName  string
	Kind      Kind
	Text      string
	Err       error
}

type Fetcher struct {
	log        *logger.Logger
	httpClient *http.Client
	cfg        Config
}

func NewFetcher(log *logger.Logger, httpClient *http.Client, cfg Config) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConfig().Concurrency
	}
	return &Fetcher{log: log.With("module", "KnowledgeFetcher"), httpClient: httpClient, cfg: cfg}
}

// Header is the delimiter placed before each file's extracted text.
func Header(fileName string) string {
	return fmt.Sprintf("\n--- CONTEÚDO DO ARQUIVO (%s) ---\n", fileName)
}

// FetchAndExtract never fails: any problem is logged and yields "".
func (f *Fetcher) FetchAndExtract(ctx context.Context, rawURL string) string {
	return f.fetch(ctx, rawURL).Text
}

// LoadAll fetches every URL concurrently and returns results in input order.
// Files still in flight when the budget runs out contribute "".
func (f *Fetcher) LoadAll(ctx context.Context, urls []string) []Document {
	out := make([]Document, len(urls))
	if len(urls) == 0 {
		return out
	}
	if f.cfg.Budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.cfg.Budget)
		defer cancel()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.cfg.Concurrency)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			out[i] = f.fetch(gctx, u)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Join concatenates the non-empty document texts.
func Join(docs []Document) string {
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		if d.Text != "" {
			parts = append(parts, d.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) Document {
	doc := Document{SourceURL: rawURL, FileName: FileName(rawURL)}
	text, kind, err := f.download(ctx, rawURL)
	doc.Kind = kind
	if err != nil {
		doc.Err = err
		f.log.Warn("training file skipped", "url", rawURL, "kind", kind, "error", err)
		return doc
	}
	if strings.TrimSpace(text) == "" {
		if kind == KindUnknown {
			return doc
		}
		f.log.Debug("training file has no text", "url", rawURL, "kind", kind)
		return doc
	}
	doc.Text = Header(doc.FileName) + text + "\n"
	return doc
}

func (f *Fetcher) download(ctx context.Context, rawURL string) (string, Kind, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", KindUnknown, fmt.Errorf("invalid url %q", rawURL)
	}
	if f.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.cfg.FetchTimeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", KindUnknown, err
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", KindUnknown, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return "", KindUnknown, fmt.Errorf("fetch status %d", resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if f.cfg.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, f.cfg.MaxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", KindUnknown, fmt.Errorf("read body: %w", err)
	}
	if f.cfg.MaxBytes > 0 && int64(len(data)) > f.cfg.MaxBytes {
		return "", KindUnknown, fmt.Errorf("body exceeds %d bytes", f.cfg.MaxBytes)
	}

	kind := Classify(resp.Header.Get("Content-Type"), strings.ToLower(u.Path), data)
	if kind == KindUnknown {
		f.log.Debug("training file format not supported", "url", rawURL, "content_type", resp.Header.Get("Content-Type"))
		return "", kind, nil
	}
	text, err := Extract(kind, data)
	return text, kind, err
}

// FileName is the last path segment of the URL, percent-decoded.
func FileName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return rawURL
	}
	base := path.Base(u.Path)
	if base == "/" || base == "." {
		return rawURL
	}
	return base
}
