// Package submission loads student submissions from a directory tree into
// token.List values the similarity kernel can compare: one submission per
// immediate child directory of a root, one TokenList per submission.
package submission

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"

	"github.com/codetile/simtok/normalize"
	"github.com/codetile/simtok/token"
)

// Tokenizer turns one source file's bytes into its token stream, ending in
// the FILE_END pivot like every token.List. Loader drops each file's
// FILE_END, joins the files with SEPARATOR, and appends one FILE_END per
// submission. This is the "buildTokens"
// contract from the language-agnostic core, supplied by a concrete frontend
// such as frontend/golang.Tokenize.
type Tokenizer func(src []byte) (*token.List, error)

// Submission is one student's (or one team's) tokenized code, identified by
// the directory it was loaded from.
type Submission struct {
	ID   string
	Root string
	List *token.List
}

// Loader discovers submission directories under a root and tokenizes every
// source file extension it's configured to handle.
type Loader struct {
	fs         afs.Service
	tokenize   Tokenizer
	extensions map[string]bool
}

// New returns a Loader that tokenizes files ending in any of extensions
// (e.g. ".go") with tokenize.
func New(tokenize Tokenizer, extensions ...string) *Loader {
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[e] = true
	}
	return &Loader{fs: afs.New(), tokenize: tokenize, extensions: exts}
}

// Load treats every immediate child directory of rootURL as one submission,
// tokenizes every matching source file it contains (recursively) in
// deterministic path order, and joins them with token.Separator.
func (l *Loader) Load(ctx context.Context, rootURL string) ([]*Submission, error) {
	dirs, err := childDirs(ctx, l.fs, rootURL)
	if err != nil {
		return nil, fmt.Errorf("submission: list %s: %w", rootURL, err)
	}

	submissions := make([]*Submission, 0, len(dirs))
	for _, dir := range dirs {
		sub, err := l.loadOne(ctx, dir)
		if err != nil {
			return nil, fmt.Errorf("submission: load %s: %w", dir, err)
		}
		if sub == nil {
			slog.Warn("skipping directory with no matching files", "dir", dir)
			continue
		}
		submissions = append(submissions, sub)
	}
	return submissions, nil
}

func (l *Loader) loadOne(ctx context.Context, dir string) (*Submission, error) {
	root := ModuleRoot(ctx, l.fs, dir)

	files, err := l.discoverFiles(ctx, dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	sort.Strings(files)

	var tokens []*token.Token
	for i, f := range files {
		if i > 0 {
			tokens = append(tokens, &token.Token{Type: token.Separator})
		}
		data, err := l.fs.DownloadWithURL(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		fileTokens, err := l.tokenize(data)
		if err != nil {
			return nil, fmt.Errorf("tokenize %s: %w", f, err)
		}
		// Normalized per file: line numbers are only meaningful within the
		// file they came from, so a multi-file submission's lines must be
		// reordered before the SEPARATOR-joined stream loses that boundary.
		normalized, err := normalize.Normalize(fileTokens.Tokens())
		if err != nil {
			return nil, fmt.Errorf("normalize %s: %w", f, err)
		}
		for _, t := range normalized {
			if t.Type == token.FileEnd {
				continue
			}
			tokens = append(tokens, t)
		}
	}
	tokens = append(tokens, &token.Token{Type: token.FileEnd})

	list, err := token.NewList(tokens)
	if err != nil {
		return nil, err
	}
	return &Submission{ID: filepath.Base(dir), Root: root, List: list}, nil
}

// discoverFiles lists every source file in dir matching l.extensions. For a
// Go submission that carries its own go.mod, GoModuleFiles is preferred over
// a raw directory walk since it respects build constraints and excludes
// generated/vendored files the same way `go build ./...` would; any other
// extension, or a go.mod-less directory, falls back to walking the tree
// directly.
func (l *Loader) discoverFiles(ctx context.Context, dir string) ([]string, error) {
	if l.extensions[".go"] {
		if files, err := GoModuleFiles(dir); err == nil && len(files) > 0 {
			return files, nil
		}
	}

	var files []string
	var visitor storage.OnVisit = func(_ context.Context, baseURL, parent string, info os.FileInfo, _ io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		if !l.extensions[strings.ToLower(filepath.Ext(info.Name()))] {
			return true, nil
		}
		files = append(files, url.Join(baseURL, parent, info.Name()))
		return true, nil
	}
	if err := l.fs.Walk(ctx, dir, visitor); err != nil {
		return nil, err
	}
	return files, nil
}

// GoModuleFiles resolves every Go source file belonging to dir's module via
// go/packages, the same loader analyzer.LoadProject uses, generalized here
// from "load for type-checking" to "load to discover which files to
// tokenize".
func GoModuleFiles(dir string) ([]string, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("submission: load module at %s: %w", dir, err)
	}
	var files []string
	for _, pkg := range pkgs {
		files = append(files, pkg.GoFiles...)
	}
	return files, nil
}

// ModuleRoot returns the module path declared in dir's go.mod, or dir's base
// name if none is found.
func ModuleRoot(ctx context.Context, fs afs.Service, dir string) string {
	goModURL := url.Join(dir, "go.mod")
	content, err := fs.DownloadWithURL(ctx, goModURL)
	if err != nil || len(content) == 0 {
		return filepath.Base(dir)
	}
	mod, err := modfile.Parse(goModURL, content, nil)
	if err != nil || mod.Module == nil {
		return filepath.Base(dir)
	}
	return mod.Module.Mod.Path
}

func childDirs(ctx context.Context, fs afs.Service, rootURL string) ([]string, error) {
	var dirs []string
	var visitor storage.OnVisit = func(_ context.Context, baseURL, parent string, info os.FileInfo, _ io.Reader) (bool, error) {
		if parent != "" {
			return false, nil
		}
		if info.IsDir() {
			dirs = append(dirs, url.Join(baseURL, info.Name()))
		}
		return true, nil
	}
	if err := fs.Walk(ctx, rootURL, visitor); err != nil {
		return nil, err
	}
	sort.Strings(dirs)
	return dirs, nil
}
