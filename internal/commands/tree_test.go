package commands_test

import (
	"path/filepath"
	"testing"

	"github.com/temirov/projdump/internal/commands"
	"github.com/temirov/projdump/internal/types"
)

func childNames(node *types.TreeNode) []string {
	names := make([]string, 0, len(node.Children))
	for _, child := range node.Children {
		names = append(names, child.Name)
	}
	return names
}

func TestGetTreeDataOrdersAndPrunes(t *testing.T) {
	rootDirectory := filepath.Join(t.TempDir(), "root")
	writeFixture(t, rootDirectory, map[string]string{
		"b.txt":              "b",
		"A.txt":              "a",
		"zeta/z.go":          "z",
		"Alpha/inner.go":     "i",
		"vendor/lib.go":      "v",
		"project_dump.txt":   "previous dump",
		"Alpha/.git/HEAD.go": "h",
	})

	treeBuilder := &commands.TreeBuilder{
		IgnoredDirectories: []string{"vendor", ".git"},
		ExcludedPaths:      []string{filepath.Join(rootDirectory, "project_dump.txt")},
	}
	rootNode, treeError := treeBuilder.GetTreeData(rootDirectory)
	if treeError != nil {
		t.Fatalf("GetTreeData error: %v", treeError)
	}
	if rootNode.Name != "root" || rootNode.Type != types.NodeTypeDirectory {
		t.Fatalf("unexpected root node: %+v", rootNode)
	}

	expected := []string{"Alpha", "zeta", "A.txt", "b.txt"}
	actual := childNames(rootNode)
	if len(actual) != len(expected) {
		t.Fatalf("expected children %v, got %v", expected, actual)
	}
	for index := range expected {
		if actual[index] != expected[index] {
			t.Fatalf("expected children %v, got %v", expected, actual)
		}
	}

	alphaNode := rootNode.Children[0]
	if alphaNames := childNames(alphaNode); len(alphaNames) != 1 || alphaNames[0] != "inner.go" {
		t.Fatalf("expected nested ignored directory to be pruned, got %v", alphaNames)
	}
	if rootNode.Children[2].Type != types.NodeTypeFile {
		t.Fatalf("expected file node, got %s", rootNode.Children[2].Type)
	}
}

func TestGetTreeDataMissingRoot(t *testing.T) {
	treeBuilder := &commands.TreeBuilder{}
	if _, treeError := treeBuilder.GetTreeData(filepath.Join(t.TempDir(), "missing")); treeError == nil {
		t.Fatalf("expected error for missing root")
	}
}
