// Package fsmock is the static, read-only file tree browsed by the file
// explorer.
package fsmock

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tree.yaml
var defaultTree []byte

// NodeType distinguishes folders from files.
type NodeType string

const (
	Folder NodeType = "folder"
	File   NodeType = "file"
)

// Node is a folder or file.
type Node struct {
	Name     string   `yaml:"name"`
	Type     NodeType `yaml:"type"`
	Content  string   `yaml:"content,omitempty"`
	Size     int64    `yaml:"size,omitempty"`
	Children []*Node  `yaml:"children,omitempty"`
}

// IsFolder reports whether n is a folder.
func (n *Node) IsFolder() bool { return n.Type == Folder }

// ByteSize returns the declared size, or the content length for text files.
func (n *Node) ByteSize() int64 {
	if n.Size > 0 {
		return n.Size
	}
	return int64(len(n.Content))
}

// Child returns the direct child called name.
func (n *Node) Child(name string) (*Node, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Parse decodes a tree from yaml.
func Parse(data []byte) (*Node, error) {
	var root Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse file tree: %w", err)
	}
	if err := validate(&root, root.Name); err != nil {
		return nil, err
	}
	return &root, nil
}

// Default returns a fresh copy of the built-in tree.
func Default() *Node {
	root, err := Parse(defaultTree)
	if err != nil {
		panic(err)
	}
	return root
}

func validate(n *Node, path string) error {
	if strings.TrimSpace(n.Name) == "" {
		return fmt.Errorf("%s: node without a name", path)
	}
	switch n.Type {
	case Folder:
	case File:
		if len(n.Children) > 0 {
			return fmt.Errorf("%s: file with children", path)
		}
	default:
		return fmt.Errorf("%s: unknown node type %q", path, n.Type)
	}
	seen := make(map[string]bool, len(n.Children))
	for _, c := range n.Children {
		if seen[c.Name] {
			return fmt.Errorf("%s: duplicate entry %q", path, c.Name)
		}
		seen[c.Name] = true
		if err := validate(c, path+" > "+c.Name); err != nil {
			return err
		}
	}
	return nil
}
