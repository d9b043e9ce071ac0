package knowledge

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	types "github.com/yungbote/editais-backend/internal/domain/congress"
	"github.com/yungbote/editais-backend/internal/modules/prompt"
	"github.com/yungbote/editais-backend/internal/platform/logger"
)

// minimalPDF renders a one-page PDF showing text with a standard font.
func minimalPDF(text string) []byte {
	content := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func minimalDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		fmt.Fprintf(&body, `<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, p)
	}
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() + `</w:body></w:document>`
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("zip create: %v", err)
	}
	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	docx := minimalDOCX(t, "Regra um", "Regra dois")
	mux := http.NewServeMux()
	mux.HandleFunc("/files/edital.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(minimalPDF("Hello edital"))
	})
	mux.HandleFunc("/files/regras.docx", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(docx)
	})
	mux.HandleFunc("/files/notas.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Inscrições até 19/12/2025.\n"))
	})
	mux.HandleFunc("/files/dados.xyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte{0x01, 0x02, 0x03})
	})
	mux.HandleFunc("/files/legado.doc", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/msword")
		_, _ = w.Write([]byte{0xD0, 0xCF, 0x11, 0xE0})
	})
	mux.HandleFunc("/files/slow.txt", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newFetcher(cfg Config) *Fetcher {
	return NewFetcher(logger.Nop(), nil, cfg)
}

func TestFetchAndExtractText(t *testing.T) {
	srv := newTestServer(t)
	f := newFetcher(DefaultConfig())
	got := f.FetchAndExtract(context.Background(), srv.URL+"/files/notas.txt")
	want := "\n--- CONTEÚDO DO ARQUIVO (notas.txt) ---\nInscrições até 19/12/2025.\n"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFetchAndExtractPDF(t *testing.T) {
	srv := newTestServer(t)
	f := newFetcher(DefaultConfig())
	got := f.FetchAndExtract(context.Background(), srv.URL+"/files/edital.pdf")
	if !strings.HasPrefix(got, Header("edital.pdf")) {
		t.Fatalf("missing header: %q", got)
	}
	if !strings.Contains(got, "Hello edital") {
		t.Fatalf("missing pdf text: %q", got)
	}
}

func TestFetchAndExtractDOCXByExtension(t *testing.T) {
	srv := newTestServer(t)
	f := newFetcher(DefaultConfig())
	got := f.FetchAndExtract(context.Background(), srv.URL+"/files/regras.docx")
	if !strings.Contains(got, "Regra um\nRegra dois") {
		t.Fatalf("docx text: %q", got)
	}
}

func TestFetchAndExtractFailuresYieldEmpty(t *testing.T) {
	srv := newTestServer(t)
	f := newFetcher(DefaultConfig())
	for _, u := range []string{
		srv.URL + "/files/dados.xyz",
		srv.URL + "/files/legado.doc",
		srv.URL + "/files/missing.pdf",
		"http://127.0.0.1:1/unreachable.pdf",
		"ftp://example.com/a.txt",
		"::not a url",
	} {
		if got := f.FetchAndExtract(context.Background(), u); got != "" {
			t.Fatalf("%s: expected empty, got %q", u, got)
		}
	}
}

func TestFetchRespectsMaxBytes(t *testing.T) {
	srv := newTestServer(t)
	cfg := DefaultConfig()
	cfg.MaxBytes = 8
	f := newFetcher(cfg)
	if got := f.FetchAndExtract(context.Background(), srv.URL+"/files/notas.txt"); got != "" {
		t.Fatalf("oversized body should be dropped, got %q", got)
	}
}

func TestLoadAllPreservesOrderAndSkipsFailures(t *testing.T) {
	srv := newTestServer(t)
	f := newFetcher(DefaultConfig())
	urls := []string{
		srv.URL + "/files/notas.txt",
		"http://127.0.0.1:1/unreachable.pdf",
		srv.URL + "/files/edital.pdf",
		srv.URL + "/files/dados.xyz",
	}
	docs := f.LoadAll(context.Background(), urls)
	if len(docs) != len(urls) {
		t.Fatalf("len=%d", len(docs))
	}
	for i, d := range docs {
		if d.SourceURL != urls[i] {
			t.Fatalf("order broken at %d: %s", i, d.SourceURL)
		}
	}
	if docs[1].Err == nil || docs[1].Text != "" {
		t.Fatalf("unreachable doc: %+v", docs[1])
	}
	joined := Join(docs)
	if strings.Index(joined, "notas.txt") > strings.Index(joined, "edital.pdf") {
		t.Fatalf("joined out of order: %q", joined)
	}
	if strings.Contains(joined, "dados.xyz") {
		t.Fatalf("unsupported file leaked: %q", joined)
	}
	if docs[3].Err != nil || docs[3].Kind != KindUnknown {
		t.Fatalf("unsupported file should be skipped without error: %+v", docs[3])
	}
}

func TestLoadAllBudget(t *testing.T) {
	srv := newTestServer(t)
	cfg := DefaultConfig()
	cfg.Budget = 100 * time.Millisecond
	f := newFetcher(cfg)
	start := time.Now()
	docs := f.LoadAll(context.Background(), []string{srv.URL + "/files/slow.txt", srv.URL + "/files/notas.txt"})
	if time.Since(start) > time.Second {
		t.Fatalf("budget not enforced: %v", time.Since(start))
	}
	if docs[0].Text != "" {
		t.Fatalf("slow doc should be empty")
	}
	if docs[1].Text == "" {
		t.Fatalf("fast doc should be present")
	}
}

func TestLoadAllConcurrencyLimit(t *testing.T) {
	var inflight, peak int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inflight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inflight, -1)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Concurrency = 2
	f := newFetcher(cfg)
	urls := make([]string, 6)
	for i := range urls {
		urls[i] = fmt.Sprintf("%s/f%d.txt", srv.URL, i)
	}
	docs := f.LoadAll(context.Background(), urls)
	if Join(docs) == "" {
		t.Fatalf("expected text")
	}
	if atomic.LoadInt32(&peak) > 2 {
		t.Fatalf("peak concurrency %d > 2", peak)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		ct, path string
		head     []byte
		want     Kind
	}{
		{"application/pdf", "/a", nil, KindPDF},
		{"", "/a.pdf", nil, KindPDF},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "/a", nil, KindWord},
		{"", "/a.doc", nil, KindWord},
		{"text/markdown", "/a.md", nil, KindText},
		{"application/octet-stream", "/a.txt", nil, KindText},
		{"application/octet-stream", "/blob", []byte("%PDF-1.7"), KindPDF},
		{"image/png", "/a.png", []byte("%PDF-1.7"), KindUnknown},
		{"application/json", "/a.xyz", nil, KindUnknown},
	}
	for _, tc := range cases {
		if got := Classify(tc.ct, tc.path, tc.head); got != tc.want {
			t.Fatalf("Classify(%q,%q)=%s want %s", tc.ct, tc.path, got, tc.want)
		}
	}
}

func TestFileName(t *testing.T) {
	got := FileName("https://cdn.example.com/congress-templates/1/training-edital%20final.pdf?x=1")
	if got != "training-edital final.pdf" {
		t.Fatalf("FileName=%q", got)
	}
}

func TestTrainingFilesDegradeIntoCompletePrompt(t *testing.T) {
	srv := newTestServer(t)
	f := newFetcher(DefaultConfig())
	docs := f.LoadAll(context.Background(), []string{
		srv.URL + "/files/edital.pdf",
		"http://127.0.0.1:1/unreachable.pdf",
		srv.URL + "/files/dados.xyz",
	})

	nonEmpty := 0
	for _, d := range docs {
		if d.Text != "" {
			nonEmpty++
		}
	}
	if nonEmpty != 1 || docs[0].Text == "" {
		t.Fatalf("expected only the pdf to contribute text: %+v", docs)
	}

	out := prompt.BuildSystemPrompt(prompt.Input{
		Congress:  &types.Congress{Title: "CONIC 2025"},
		Knowledge: Join(docs),
		Now:       time.Date(2025, time.December, 19, 12, 0, 0, 0, time.UTC),
		Location:  time.UTC,
	})
	if n := strings.Count(out, "--- CONTEÚDO DO ARQUIVO ("); n != 1 {
		t.Fatalf("file blocks=%d\n%s", n, out)
	}
	if !strings.Contains(out, "--- CONTEÚDO DO ARQUIVO (edital.pdf) ---") || !strings.Contains(out, "Hello edital") {
		t.Fatalf("pdf block missing:\n%s", out)
	}
	if !strings.Contains(out, "### DIRETRIZES ESTRITAS DE RESPOSTA:") || !strings.HasSuffix(out, "Histórico da conversa segue abaixo.\n") {
		t.Fatalf("directives tail incomplete:\n%s", out)
	}
}
