package submission

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/codetile/simtok/token"
	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func stubTokenize(src []byte) (*token.List, error) {
	return token.NewList([]*token.Token{
		{Type: token.Type(string(src)), Line: 1},
		{Type: token.FileEnd},
	})
}

func TestLoader_LoadOneSubmissionPerChildDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "alice", "main.txt"), "alice-code")
	writeFile(t, filepath.Join(root, "bob", "main.txt"), "bob-code")

	l := New(stubTokenize, ".txt")
	subs, err := l.Load(context.Background(), root)
	assert.NoError(t, err)
	assert.Len(t, subs, 2)

	ids := map[string]bool{}
	for _, s := range subs {
		ids[s.ID] = true
		assert.True(t, s.List.Len() > 0)
		assert.Equal(t, token.FileEnd, s.List.At(s.List.Len()-1).Type)
	}
	assert.True(t, ids["alice"])
	assert.True(t, ids["bob"])
}

func TestLoader_SkipsDirectoryWithNoMatchingFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "empty", "readme.md"), "nothing relevant here")

	l := New(stubTokenize, ".txt")
	subs, err := l.Load(context.Background(), root)
	assert.NoError(t, err)
	assert.Len(t, subs, 0)
}

func TestLoader_JoinsMultipleFilesWithSeparator(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "carol", "a.txt"), "a")
	writeFile(t, filepath.Join(root, "carol", "b.txt"), "b")

	l := New(stubTokenize, ".txt")
	subs, err := l.Load(context.Background(), root)
	assert.NoError(t, err)
	assert.Len(t, subs, 1)

	hasSeparator := false
	for i := 0; i < subs[0].List.Len(); i++ {
		if subs[0].List.At(i).Type == token.Separator {
			hasSeparator = true
		}
	}
	assert.True(t, hasSeparator)
}

func TestModuleRoot_FallsBackToDirNameWithoutGoMod(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "noop")
	assert.NoError(t, os.MkdirAll(dir, 0o755))

	l := New(stubTokenize, ".go")
	got := ModuleRoot(context.Background(), l.fs, dir)
	assert.Equal(t, "noop", got)
}

func TestModuleRoot_ReadsDeclaredModulePath(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "proj")
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/proj\n\ngo 1.23\n")

	l := New(stubTokenize, ".go")
	got := ModuleRoot(context.Background(), l.fs, dir)
	assert.Equal(t, "example.com/proj", got)
}
