// devwebserver serves a jazz program to the web browser, building it to
// WebAssembly whenever the page asks for main.wasm.
package devwebserver

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"net/http"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"golang.org/x/tools/go/packages"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index.html").Parse(indexHTML))

// Options configure the server
type Options struct {
	// Addr defaults to :8080
	Addr string
	// Dir is the directory the package is resolved and built from
	Dir string
	// Package is the main package to build, ie. ./cmd/jazz-demo
	Package string
	// Tags is a list of build tags, ie. "debug"
	Tags string
	// GOROOT defaults to runtime.GOROOT()
	GOROOT string
	Logger *log.Logger
}

// Server builds and serves one main package.
type Server struct {
	options    Options
	logger     *log.Logger
	pkgDir     string
	title      string
	wasmJSPath string
	outputDir  string

	// mu serializes builds
	mu sync.Mutex
}

// New resolves the package and the toolchain's wasm_exec.js.
func New(options Options) (*Server, error) {
	if options.Addr == "" {
		options.Addr = ":8080"
	}
	if options.Dir == "" {
		options.Dir = "."
	}
	if options.Package == "" {
		options.Package = "."
	}
	if options.GOROOT == "" {
		options.GOROOT = runtime.GOROOT()
	}
	if options.Logger == nil {
		options.Logger = log.Default()
	}

	pkgDir, name, err := resolvePackage(options.Dir, options.Package, options.Tags)
	if err != nil {
		return nil, err
	}
	wasmJSPath, err := findWasmExecJS(options.GOROOT)
	if err != nil {
		return nil, err
	}
	outputDir, err := os.MkdirTemp("", "jazz-serve-")
	if err != nil {
		return nil, errors.Wrap(err, "create output directory")
	}
	return &Server{
		options:    options,
		logger:     options.Logger,
		pkgDir:     pkgDir,
		title:      name,
		wasmJSPath: wasmJSPath,
		outputDir:  outputDir,
	}, nil
}

// resolvePackage returns the directory and name of a main package
func resolvePackage(dir, pattern, tags string) (string, string, error) {
	currentDir, err := filepath.Abs(dir)
	if err != nil {
		return "", "", err
	}
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles,
		Dir:  currentDir,
		Env:  append(os.Environ(), "GOOS=js", "GOARCH=wasm"),
	}
	if tags != "" {
		cfg.BuildFlags = []string{"-tags", tags}
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return "", "", errors.Wrapf(err, "load package %s", pattern)
	}
	if len(pkgs) != 1 {
		return "", "", errors.Errorf("expected one package for %s, found %d", pattern, len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return "", "", errors.Errorf("package %s: %s", pattern, pkg.Errors[0].Msg)
	}
	if pkg.Name != "main" {
		return "", "", errors.Errorf("package %s is not a main package", pkg.PkgPath)
	}
	if len(pkg.GoFiles) == 0 {
		return "", "", errors.Errorf("cannot find *.go files in %s", pattern)
	}
	return filepath.Dir(pkg.GoFiles[0]), path.Base(pkg.PkgPath), nil
}

// findWasmExecJS looks for wasm_exec.js where the Go distribution keeps it,
// lib/wasm since Go 1.24 and misc/wasm before that.
func findWasmExecJS(goroot string) (string, error) {
	for _, dir := range []string{"lib/wasm", "misc/wasm"} {
		p := filepath.Join(goroot, dir, "wasm_exec.js")
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", errors.Errorf("wasm_exec.js not found in %s", goroot)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	upath := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	switch upath {
	case "", "index.html":
		s.serveIndex(w)
	case "wasm_exec.js":
		http.ServeFile(w, r, s.wasmJSPath)
	case "main.wasm":
		s.serveWasm(w, r)
	default:
		// anything else is a file next to the program, ie. images it loads
		fpath := filepath.Join(s.pkgDir, filepath.FromSlash(upath))
		if info, err := os.Stat(fpath); err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		s.logger.Debug("serving file", "path", upath)
		http.ServeFile(w, r, fpath)
	}
}

func (s *Server) serveIndex(w http.ResponseWriter) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, struct{ Title string }{Title: s.title}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) serveWasm(w http.ResponseWriter, r *http.Request) {
	output, out, err := s.build(r.Context())
	if err != nil {
		s.logger.Error("build failed", "err", err, "output", string(out))
		http.Error(w, string(out), http.StatusInternalServerError)
		return
	}
	if len(out) > 0 {
		s.logger.Info("build output", "output", string(out))
	}
	f, err := os.Open(output)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer f.Close()
	w.Header().Set("Content-Type", "application/wasm")
	http.ServeContent(w, r, "main.wasm", time.Now(), f)
}

// build compiles the package, returning the output path and the compiler
// output
func (s *Server) build(ctx context.Context) (string, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	output := filepath.Join(s.outputDir, "main.wasm")
	args := []string{"build", "-o", output}
	if s.options.Tags != "" {
		args = append(args, "-tags", s.options.Tags)
	}
	args = append(args, ".")
	s.logger.Info("go "+strings.Join(args, " "), "dir", s.pkgDir)

	start := time.Now()
	cmd := exec.CommandContext(ctx, s.gobin(), args...)
	cmd.Env = append(os.Environ(), "GOOS=js", "GOARCH=wasm")
	cmd.Dir = s.pkgDir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", out, errors.Wrap(err, "go build")
	}
	s.logger.Debug("build finished", "took", time.Since(start))
	return output, out, nil
}

func (s *Server) gobin() string {
	return filepath.Join(s.options.GOROOT, "bin", "go")
}

// ListenAndServe serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.options.Addr,
		Handler: s,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- server.ListenAndServe()
	}()
	s.logger.Info("listening", "url", "http://localhost"+s.options.Addr, "package", s.options.Package)

	select {
	case err := <-errc:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// Close removes the build output.
func (s *Server) Close() error {
	return os.RemoveAll(s.outputDir)
}
