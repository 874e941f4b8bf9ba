package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewList_RequiresFileEnd(t *testing.T) {
	_, err := NewList([]*Token{{Type: "a"}})
	assert.ErrorIs(t, err, ErrMissingFileEnd)

	_, err = NewList(nil)
	assert.ErrorIs(t, err, ErrMissingFileEnd)

	list, err := NewList([]*Token{{Type: "a"}, {Type: FileEnd}})
	assert.NoError(t, err)
	assert.Equal(t, 2, list.Len())
}

func TestList_ResetMarks(t *testing.T) {
	a := &Token{Type: "a"}
	a.SetMarked(true)
	a.SetBaseCode(true)
	list, err := NewList([]*Token{a, {Type: FileEnd}})
	assert.NoError(t, err)

	list.ResetMarks()

	assert.False(t, a.Marked())
	assert.False(t, a.BaseCode())
}

func TestList_CloneIsIndependentOfOriginal(t *testing.T) {
	a := &Token{Type: "a", Line: 3, Semantics: &Semantics{Reads: []*Variable{{Name: "x"}}}}
	a.SetMarked(true)
	a.SetHash(42)
	original, err := NewList([]*Token{a, {Type: FileEnd}})
	assert.NoError(t, err)

	clone := original.Clone()

	assert.Equal(t, original.Len(), clone.Len())
	assert.Equal(t, a.Type, clone.At(0).Type)
	assert.Equal(t, a.Line, clone.At(0).Line)
	assert.Same(t, a.Semantics, clone.At(0).Semantics)
	assert.False(t, clone.At(0).Marked())
	assert.Equal(t, int64(0), clone.At(0).Hash())

	clone.At(0).SetMarked(true)
	clone.At(0).SetHash(7)
	assert.True(t, a.Marked())
	assert.Equal(t, int64(42), a.Hash())
}
