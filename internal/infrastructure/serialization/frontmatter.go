package serialization

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	yamlDelimiter = "---"
)

// FrontmatterDocument represents a markdown document with YAML frontmatter.
// The frontmatter is kept raw so callers can decode it into their own types.
type FrontmatterDocument struct {
	frontmatter []byte
	Content     string
}

// HasFrontmatter reports whether the document opened with a frontmatter block
func (d *FrontmatterDocument) HasFrontmatter() bool {
	return len(d.frontmatter) > 0
}

// Decode unmarshals the frontmatter into out
func (d *FrontmatterDocument) Decode(out interface{}) error {
	if !d.HasFrontmatter() {
		return fmt.Errorf("document has no frontmatter")
	}
	if err := yaml.Unmarshal(d.frontmatter, out); err != nil {
		return fmt.Errorf("failed to parse YAML frontmatter: %w", err)
	}
	return nil
}

// ParseFrontmatter splits a markdown file into frontmatter and body
func ParseFrontmatter(data []byte) (*FrontmatterDocument, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	doc := &FrontmatterDocument{}

	if !scanner.Scan() {
		return doc, nil
	}

	firstLine := strings.TrimSpace(scanner.Text())
	if firstLine != yamlDelimiter {
		doc.Content = string(data)
		return doc, nil
	}

	var frontmatterLines []string
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == yamlDelimiter {
			closed = true
			break
		}
		frontmatterLines = append(frontmatterLines, line)
	}
	if !closed {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("error reading document: %w", err)
		}
		return nil, fmt.Errorf("unterminated frontmatter block")
	}
	doc.frontmatter = []byte(strings.Join(frontmatterLines, "\n"))

	var contentLines []string
	for scanner.Scan() {
		contentLines = append(contentLines, scanner.Text())
	}
	doc.Content = strings.TrimSpace(strings.Join(contentLines, "\n"))

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading document: %w", err)
	}

	return doc, nil
}

// SerializeFrontmatter renders frontmatter as YAML between delimiters followed by content
func SerializeFrontmatter(frontmatter interface{}, content string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(yamlDelimiter)
	buf.WriteString("\n")

	yamlData, err := yaml.Marshal(frontmatter)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
	}
	buf.Write(yamlData)

	buf.WriteString(yamlDelimiter)
	buf.WriteString("\n")

	if content != "" {
		buf.WriteString("\n")
		buf.WriteString(content)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}
