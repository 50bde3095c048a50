package output

import "github.com/temirov/projdump/internal/types"

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "
	directorySuffix     = "/"
)

// TreeLines renders node as the lines of the project tree block. The root is
// printed bare and every directory name carries a trailing slash.
func TreeLines(node *types.TreeNode) []string {
	var lines []string
	appendTreeNode(&lines, node, "", true, true)
	return lines
}

func treeNodeLinePrefix(prefix string, isRoot bool, isLast bool) (string, string) {
	if isRoot {
		return "", ""
	}
	connector := treeBranchConnector
	childPrefix := prefix + treeBranchPadding
	if isLast {
		connector = treeLastConnector
		childPrefix = prefix + treeLastPadding
	}
	return prefix + connector, childPrefix
}

func appendTreeNode(lines *[]string, node *types.TreeNode, prefix string, isRoot bool, isLast bool) {
	if node == nil {
		return
	}
	linePrefix, childPrefix := treeNodeLinePrefix(prefix, isRoot, isLast)
	if node.Type != types.NodeTypeDirectory {
		*lines = append(*lines, linePrefix+node.Name)
		return
	}
	*lines = append(*lines, linePrefix+node.Name+directorySuffix)
	for index, child := range node.Children {
		appendTreeNode(lines, child, childPrefix, false, index == len(node.Children)-1)
	}
}
