// Package golang is a concrete frontend: it turns Go source into a
// token.List with per-line Semantics populated, satisfying the
// buildTokens(sourceFiles) contract the similarity kernel expects, using
// github.com/smacker/go-tree-sitter to parse.
package golang

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/codetile/simtok/token"
)

// commentTypes are leaf node types tree-sitter-go emits for comments; they
// carry no matching-relevant information and are dropped, same as
// whitespace (tree-sitter never emits whitespace as a node at all).
var commentTypes = map[string]bool{
	"comment": true,
}

// Tokenize parses Go source and returns its token stream with Semantics
// populated, ending in token.FileEnd as required by token.NewList.
func Tokenize(src []byte) (*token.List, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("golang: parse source: %w", err)
	}

	var tokens []*token.Token
	walkLeaves(tree.RootNode(), src, &tokens)
	tokens = append(tokens, &token.Token{Type: token.FileEnd, Line: lastLine(tokens) + 1})

	annotate(tree.RootNode(), src, tokens)

	return token.NewList(tokens)
}

// TokenizeFile reads path and tokenizes its contents.
func TokenizeFile(path string) (*token.List, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("golang: read %s: %w", path, err)
	}
	return Tokenize(src)
}

// walkLeaves appends one Token per terminal (childless) tree-sitter node in
// source order, skipping comments.
func walkLeaves(n *sitter.Node, src []byte, out *[]*token.Token) {
	if n.ChildCount() == 0 {
		if commentTypes[n.Type()] {
			return
		}
		*out = append(*out, &token.Token{
			Type: token.Type(n.Type()),
			Line: int(n.StartPoint().Row) + 1,
		})
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walkLeaves(n.Child(i), src, out)
	}
}

func lastLine(tokens []*token.Token) int {
	if len(tokens) == 0 {
		return 0
	}
	return tokens[len(tokens)-1].Line
}
