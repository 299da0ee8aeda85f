package editorconfig

import (
	"context"
	"path/filepath"
)

// DefaultFileName is the configuration file looked up in every directory.
const DefaultFileName = ".editorconfig"

// Chain is the ordered list of levels that apply to a directory, outermost first.
type Chain []Level

// BuildChain reads fileName in startDir and each ancestor, stopping after a
// root level, at the filesystem root, or at an unset directory. Directories
// whose file is missing or holds no effective lines contribute no level.
func BuildChain(src Source, startDir, fileName string) Chain {
	chain, _ := buildChain(context.Background(), src, startDir, fileName)

	return chain
}

func buildChain(ctx context.Context, src Source, startDir, fileName string) (Chain, error) {
	if fileName == "" {
		fileName = DefaultFileName
	}

	if !src.IsSet(startDir) {
		return nil, nil
	}

	var levels []Level

	dir := filepath.Clean(startDir)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		level := ParseLevel(dir, src.ReadText(filepath.Join(dir, fileName)))
		if len(level.Lines) > 0 {
			levels = append(levels, level)
		}

		if level.Root || src.IsRoot(dir) {
			break
		}

		parent := src.ParentOf(dir)
		if !src.IsSet(parent) || parent == dir {
			break
		}

		dir = parent
	}

	chain := make(Chain, len(levels))
	for i, level := range levels {
		chain[len(levels)-1-i] = level
	}

	return chain, nil
}

// Dirs returns the directories of the chain, outermost first.
func (c Chain) Dirs() []string {
	dirs := make([]string, len(c))
	for i, level := range c {
		dirs[i] = level.Dir
	}

	return dirs
}

// HasRoot reports whether any level declares root = true.
func (c Chain) HasRoot() bool {
	for _, level := range c {
		if level.Root {
			return true
		}
	}

	return false
}
