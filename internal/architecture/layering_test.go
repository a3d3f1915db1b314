package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePrefix = "studyquest/internal/modules/"

type importRef struct {
	file string
	path string
}

// walkImports collects the studyquest imports of every non-test file under root.
func walkImports(t *testing.T, root string) []importRef {
	t.Helper()
	fset := token.NewFileSet()
	var refs []importRef
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if strings.HasPrefix(importPath, "studyquest/") {
				refs = append(refs, importRef{file: filepath.ToSlash(path), path: importPath})
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return refs
}

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	for _, ref := range walkImports(t, filepath.Join("..", "modules")) {
		module := moduleName(ref.file)
		layer := detectLayer(ref.file)
		if module == "" || layer == "" || !strings.HasPrefix(ref.path, modulePrefix) {
			continue
		}
		if violatesLayerRule(module, layer, ref.path) {
			t.Errorf("forbidden import in %s (%s): %s", ref.file, layer, ref.path)
		}
	}
}

// The UI renders dto values handed to it through ports; it never reaches into
// a module's services or domain.
func TestUIImportsOnlyDTOs(t *testing.T) {
	t.Parallel()
	for _, ref := range walkImports(t, filepath.Join("..", "ui")) {
		if strings.HasPrefix(ref.path, modulePrefix) && !isDTO(ref.path) {
			t.Errorf("ui file %s imports %s", ref.file, ref.path)
		}
		if strings.HasPrefix(ref.path, "studyquest/internal/bootstrap") {
			t.Errorf("ui file %s imports the composition root", ref.file)
		}
	}
}

func TestPlatformIsLeaf(t *testing.T) {
	t.Parallel()
	for _, ref := range walkImports(t, filepath.Join("..", "platform")) {
		if !strings.HasPrefix(ref.path, "studyquest/internal/platform/") {
			t.Errorf("platform file %s imports %s", ref.file, ref.path)
		}
	}
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func isPortIn(path string) bool {
	return strings.Contains(path, "/port/in/") || strings.HasSuffix(path, "/port/in")
}

func isDTO(path string) bool {
	return strings.Contains(path, "/dto/") || strings.HasSuffix(path, "/dto")
}

func violatesLayerRule(module, layer, importPath string) bool {
	sameModule := strings.HasPrefix(importPath, modulePrefix+module+"/")
	if !sameModule {
		if strings.Contains(importPath, "/service") || strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase") {
			return true
		}
		if isPortIn(importPath) || isDTO(importPath) {
			return false
		}
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return strings.Contains(importPath, "/adapter/")
	case "service":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase")
	case "domain", "dto":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase") || strings.Contains(importPath, "/service")
	default:
		return false
	}
}
