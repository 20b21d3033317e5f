package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ludo-technologies/plaincheck/domain"
	"github.com/ludo-technologies/plaincheck/internal/testutil"
)

var defaultWalk = WalkOptions{
	Extensions:  []string{".jsx", ".js", ".tsx", ".ts"},
	ExcludeDirs: []string{"node_modules", "dist", "build", ".git"},
}

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func relPaths(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil {
			t.Fatalf("Rel failed: %v", err)
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestFileHelper_CollectSourceFiles(t *testing.T) {
	root := testutil.CreateSourceTree(t, map[string]string{
		"b.ts":                     "",
		"a.jsx":                    "",
		"notes.md":                 "",
		"styles.css":               "",
		"components/Button.tsx":    "",
		"components/index.js":      "",
		"node_modules/pkg/i.js":    "",
		"dist/bundle.js":           "",
		"nested/build/out.js":      "",
		"nested/deep/Upper.JSX":    "", // extensions match case-sensitively
		".git/hooks/pre-commit.js": "",
	})

	var logs bytes.Buffer
	files, skipped := NewFileHelper(newLogger(&logs)).CollectSourceFiles(root, defaultWalk)

	want := []string{
		"a.jsx",
		"b.ts",
		"components/Button.tsx",
		"components/index.js",
	}
	got := relPaths(t, root, files)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("got %v, want %v", got, want)
	}
	if skipped != 0 || logs.Len() != 0 {
		t.Errorf("expected no skipped entries, got %d: %s", skipped, logs.String())
	}
}

func TestFileHelper_RespectGitignore(t *testing.T) {
	root := testutil.CreateSourceTree(t, map[string]string{
		".gitignore":         "legacy/\n*.generated.js\n",
		"app.js":             "",
		"api.generated.js":   "",
		"legacy/old.js":      "",
		"features/legacy.js": "",
	})

	helper := NewFileHelper(nil)

	files, _ := helper.CollectSourceFiles(root, defaultWalk)
	if len(files) != 4 {
		t.Errorf("gitignore should be off by default, got %v", relPaths(t, root, files))
	}

	opts := defaultWalk
	opts.RespectGitignore = true
	files, _ = helper.CollectSourceFiles(root, opts)
	got := relPaths(t, root, files)
	want := []string{"app.js", "features/legacy.js"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFileHelper_UnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	root := testutil.CreateSourceTree(t, map[string]string{
		"ok.js":         "",
		"locked/bad.js": "",
	})
	locked := filepath.Join(root, "locked")
	if err := os.Chmod(locked, 0000); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	var logs bytes.Buffer
	files, skipped := NewFileHelper(newLogger(&logs)).CollectSourceFiles(root, defaultWalk)

	if len(files) != 1 || skipped != 1 {
		t.Errorf("expected 1 file and 1 skipped entry, got %v and %d", files, skipped)
	}
	if strings.Count(logs.String(), "level=ERROR") != 1 {
		t.Errorf("expected one error record, got %s", logs.String())
	}
}

// fakeScanService records the request and returns canned results
type fakeScanService struct {
	req     domain.ScanRequest
	results *domain.ScanResults
	err     error
}

func (f *fakeScanService) Scan(_ context.Context, req domain.ScanRequest) (*domain.ScanResults, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

// memoryStore keeps saved reports in memory
type memoryStore struct {
	saved map[string]*domain.Report
	err   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{saved: map[string]*domain.Report{}}
}

func (m *memoryStore) Save(report *domain.Report, path string) error {
	if m.err != nil {
		return m.err
	}
	m.saved[path] = report
	return nil
}

func (m *memoryStore) Load(path string) (*domain.Report, error) {
	r, ok := m.saved[path]
	if !ok {
		return nil, domain.NewFileNotFoundError(path, os.ErrNotExist)
	}
	return r, nil
}

// textFormatter writes a fixed marker with the issue count
type textFormatter struct{ marker string }

func (f textFormatter) Write(report *domain.Report, w io.Writer) error {
	_, err := io.WriteString(w, f.marker+":"+strings.Repeat("!", report.Summary.TotalIssues))
	return err
}

func buildUseCase(t *testing.T, svc domain.ScanService, store domain.ReportStore) *ScanUseCase {
	t.Helper()
	uc, err := NewScanUseCaseBuilder().
		WithService(svc).
		WithReportStore(store).
		WithConsoleFormatter(textFormatter{marker: "console"}).
		WithHTMLFormatter(textFormatter{marker: "html"}).
		WithClock(func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return uc
}

func TestScanUseCase_Execute(t *testing.T) {
	root := testutil.CreateSourceTree(t, map[string]string{
		"a.js":                "",
		"node_modules/b.js":   "",
		"components/Card.tsx": "",
	})

	results := domain.NewScanResults()
	results.MarkFileProcessed()
	results.MarkFileProcessed()
	results.AddPassiveVoice(domain.PassiveVoiceIssue{File: "a.js", Line: 1, Indicator: "has been"})

	svc := &fakeScanService{results: results}
	store := newMemoryStore()
	var out bytes.Buffer

	resp, err := buildUseCase(t, svc, store).Execute(context.Background(), domain.ScanRequest{
		Root:         root,
		Extensions:   defaultWalk.Extensions,
		ExcludeDirs:  defaultWalk.ExcludeDirs,
		ReportPath:   "report.json",
		OutputWriter: &out,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if got := relPaths(t, root, svc.req.Files); strings.Join(got, ",") != "a.js,components/Card.tsx" {
		t.Errorf("unexpected files handed to the service: %v", got)
	}
	if out.String() != "console:!" {
		t.Errorf("unexpected console output %q", out.String())
	}
	saved := store.saved["report.json"]
	if saved == nil || saved.Summary.TotalIssues != 1 || saved.Summary.TotalFiles != 2 {
		t.Errorf("unexpected saved report %+v", saved)
	}
	if saved.Timestamp != "2026-05-01T00:00:00Z" {
		t.Errorf("unexpected timestamp %s", saved.Timestamp)
	}
	if resp.HTMLPath != "" {
		t.Error("HTML should not be written unless requested")
	}
}

func TestScanUseCase_WriteHTML(t *testing.T) {
	root := t.TempDir()
	htmlPath := filepath.Join(t.TempDir(), "nested", "report.html")

	resp, err := buildUseCase(t, &fakeScanService{results: domain.NewScanResults()}, newMemoryStore()).
		Execute(context.Background(), domain.ScanRequest{
			Root:       root,
			Extensions: defaultWalk.Extensions,
			ReportPath: "report.json",
			HTMLPath:   htmlPath,
			WriteHTML:  true,
		})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if resp.HTMLPath != htmlPath {
		t.Errorf("unexpected HTML path %s", resp.HTMLPath)
	}
	if got := testutil.ReadFile(t, htmlPath); got != "html:" {
		t.Errorf("unexpected HTML content %q", got)
	}
}

func TestScanUseCase_Errors(t *testing.T) {
	dir := t.TempDir()
	file := testutil.WriteFile(t, dir, "file.js", "")

	tests := []struct {
		name  string
		req   domain.ScanRequest
		svc   *fakeScanService
		store *memoryStore
		code  string
	}{
		{
			name: "empty root",
			req:  domain.ScanRequest{Extensions: []string{".js"}, ReportPath: "r.json"},
			code: domain.ErrCodeInvalidInput,
		},
		{
			name: "missing root",
			req:  domain.ScanRequest{Root: filepath.Join(dir, "missing"), Extensions: []string{".js"}, ReportPath: "r.json"},
			code: domain.ErrCodeFileNotFound,
		},
		{
			name: "root is a file",
			req:  domain.ScanRequest{Root: file, Extensions: []string{".js"}, ReportPath: "r.json"},
			code: domain.ErrCodeInvalidInput,
		},
		{
			name: "no report path",
			req:  domain.ScanRequest{Root: dir, Extensions: []string{".js"}},
			code: domain.ErrCodeInvalidInput,
		},
		{
			name:  "store failure",
			req:   domain.ScanRequest{Root: dir, Extensions: []string{".js"}, ReportPath: "r.json"},
			store: &memoryStore{err: domain.NewReportError("disk full", nil)},
			code:  domain.ErrCodeReportError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := tt.svc
			if svc == nil {
				svc = &fakeScanService{results: domain.NewScanResults()}
			}
			store := tt.store
			if store == nil {
				store = newMemoryStore()
			}
			_, err := buildUseCase(t, svc, store).Execute(context.Background(), tt.req)
			if !domain.HasCode(err, tt.code) {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestScanUseCase_ServiceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := buildUseCase(t, &fakeScanService{err: boom}, newMemoryStore()).
		Execute(context.Background(), domain.ScanRequest{Root: t.TempDir(), Extensions: []string{".js"}, ReportPath: "r.json"})
	if !errors.Is(err, boom) {
		t.Errorf("expected service error, got %v", err)
	}
}

func TestScanUseCaseBuilder_Requirements(t *testing.T) {
	if _, err := NewScanUseCaseBuilder().WithReportStore(newMemoryStore()).Build(); err == nil {
		t.Error("expected error without a scan service")
	}
	if _, err := NewScanUseCaseBuilder().WithService(&fakeScanService{}).Build(); err == nil {
		t.Error("expected error without a report store")
	}
}

func TestRenderUseCase_MissingReport(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "report.html")

	uc := NewRenderUseCase(newMemoryStore(), textFormatter{marker: "html"})
	_, err := uc.Execute(context.Background(), domain.RenderRequest{
		ReportPath: filepath.Join(dir, "report.json"),
		HTMLPath:   htmlPath,
	})
	if !domain.HasCode(err, domain.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
	testutil.AssertNoFile(t, htmlPath)
}

func TestRenderUseCase_Execute(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "report.html")
	if err := os.WriteFile(htmlPath, []byte("stale"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	results := domain.NewScanResults()
	results.AddLongSentence(domain.LongSentenceIssue{File: "a.js", Line: 2, WordCount: 30})
	store := newMemoryStore()
	store.saved["report.json"] = domain.NewReport(results, time.Now())

	var out bytes.Buffer
	path, err := NewRenderUseCase(store, textFormatter{marker: "html"}).Execute(context.Background(), domain.RenderRequest{
		ReportPath:   "report.json",
		HTMLPath:     htmlPath,
		OutputWriter: &out,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if path != htmlPath {
		t.Errorf("unexpected path %s", path)
	}
	if got := testutil.ReadFile(t, htmlPath); got != "html:!" {
		t.Errorf("existing file should be overwritten, got %q", got)
	}
	if !strings.Contains(out.String(), htmlPath) {
		t.Errorf("expected output path to be printed, got %q", out.String())
	}
}
