// Package commands contains the core logic for the dump and undump pipelines.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/projdump/internal/types"
)

const (
	// warningSkipSubdirFormat is used when a subdirectory cannot be processed.
	warningSkipSubdirFormat = "Warning: Skipping subdirectory %s due to error: %v"

	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"

	// errorBuildTreeFormat is used when building the tree fails.
	errorBuildTreeFormat = "building tree for %s: %w"

	// errorReadDirectoryFormat is used when a directory cannot be read.
	errorReadDirectoryFormat = "reading directory %s: %w"
)

// GetTreeData generates the tree for rootDirectoryPath. Directories precede files
// at every level and each group is ordered case-insensitively. Ignored
// directories are dropped before they are read.
func (treeBuilder *TreeBuilder) GetTreeData(rootDirectoryPath string) (*types.TreeNode, error) {
	absoluteRootDirPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}

	rootNode := &types.TreeNode{
		Name: filepath.Base(absoluteRootDirPath),
		Type: types.NodeTypeDirectory,
	}
	children, buildError := treeBuilder.buildTreeNodes(absoluteRootDirPath, treeBuilder.ignoredSet(), treeBuilder.excludedSet())
	if buildError != nil {
		return nil, fmt.Errorf(errorBuildTreeFormat, rootDirectoryPath, buildError)
	}
	rootNode.Children = children
	return rootNode, nil
}

// buildTreeNodes recursively builds child nodes for the directory tree.
func (treeBuilder *TreeBuilder) buildTreeNodes(currentDirectoryPath string, ignored map[string]struct{}, excluded map[string]struct{}) ([]*types.TreeNode, error) {
	directoryEntries, readDirectoryError := os.ReadDir(currentDirectoryPath)
	if readDirectoryError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, currentDirectoryPath, readDirectoryError)
	}

	var directoryNodes []*types.TreeNode
	var fileNodes []*types.TreeNode
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(currentDirectoryPath, directoryEntry.Name())
		if _, isExcluded := excluded[childPath]; isExcluded {
			continue
		}
		if !directoryEntry.IsDir() {
			fileNodes = append(fileNodes, &types.TreeNode{Name: directoryEntry.Name(), Type: types.NodeTypeFile})
			continue
		}
		if _, isIgnored := ignored[directoryEntry.Name()]; isIgnored {
			continue
		}

		node := &types.TreeNode{Name: directoryEntry.Name(), Type: types.NodeTypeDirectory}
		childNodes, buildError := treeBuilder.buildTreeNodes(childPath, ignored, excluded)
		if buildError != nil {
			treeBuilder.warn(fmt.Sprintf(warningSkipSubdirFormat, childPath, buildError))
		} else {
			node.Children = childNodes
		}
		directoryNodes = append(directoryNodes, node)
	}

	sortTreeNodes(directoryNodes)
	sortTreeNodes(fileNodes)
	return append(directoryNodes, fileNodes...), nil
}

func sortTreeNodes(nodes []*types.TreeNode) {
	sort.SliceStable(nodes, func(left, right int) bool {
		leftKey := strings.ToLower(nodes[left].Name)
		rightKey := strings.ToLower(nodes[right].Name)
		if leftKey != rightKey {
			return leftKey < rightKey
		}
		return nodes[left].Name < nodes[right].Name
	})
}

func (treeBuilder *TreeBuilder) ignoredSet() map[string]struct{} {
	ignored := make(map[string]struct{}, len(treeBuilder.IgnoredDirectories))
	for _, directoryName := range treeBuilder.IgnoredDirectories {
		ignored[directoryName] = struct{}{}
	}
	return ignored
}

func (treeBuilder *TreeBuilder) excludedSet() map[string]struct{} {
	excluded := make(map[string]struct{}, len(treeBuilder.ExcludedPaths))
	for _, excludedPath := range treeBuilder.ExcludedPaths {
		if absolutePath, absoluteError := filepath.Abs(excludedPath); absoluteError == nil {
			excluded[filepath.Clean(absolutePath)] = struct{}{}
		}
	}
	return excluded
}

func (treeBuilder *TreeBuilder) warn(message string) {
	if treeBuilder.Warn != nil {
		treeBuilder.Warn(message)
	}
}
