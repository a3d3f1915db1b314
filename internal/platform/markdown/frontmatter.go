package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---\n"

// SplitFrontmatter separates a leading YAML block from the document body.
// Documents without a block return an empty map and the content untouched.
func SplitFrontmatter(content string) (map[string]any, string, error) {
	if !strings.HasPrefix(content, fence) {
		return map[string]any{}, content, nil
	}
	rest := content[len(fence):]
	end := strings.Index(rest, "\n"+fence)
	if end < 0 {
		return nil, "", fmt.Errorf("frontmatter: closing fence not found")
	}
	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(rest[:end]), &meta); err != nil {
		return nil, "", fmt.Errorf("decode frontmatter: %w", err)
	}
	return meta, rest[end+1+len(fence):], nil
}

// RenderFrontmatter writes meta as a YAML block followed by body. Keys are
// emitted in sorted order so re-exports produce stable diffs.
func RenderFrontmatter(meta map[string]any, body string) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(fence)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	buf.WriteString(fence)
	if !strings.HasPrefix(body, "\n") {
		buf.WriteByte('\n')
	}
	buf.WriteString(body)
	return buf.String(), nil
}
