package mapper

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"mboard/internal/domain/entity"
	"mboard/internal/infrastructure/serialization"
)

const documentFormatVersion = 1

// BoardDocumentFrontmatter is the YAML header of an exported board
type BoardDocumentFrontmatter struct {
	FormatVersion int               `yaml:"format_version"`
	StateKey      string            `yaml:"state_key,omitempty"`
	ExportedAt    time.Time         `yaml:"exported_at"`
	Board         BoardStateStorage `yaml:"board"`
}

// SnapshotToDocument renders a snapshot as markdown with YAML frontmatter.
// The body is a per-column checklist for humans; import reads the frontmatter.
func SnapshotToDocument(snapshot entity.Snapshot, stateKey string, exportedAt time.Time) ([]byte, error) {
	frontmatter := BoardDocumentFrontmatter{
		FormatVersion: documentFormatVersion,
		StateKey:      stateKey,
		ExportedAt:    exportedAt.UTC(),
		Board:         SnapshotToState(snapshot),
	}

	data, err := serialization.SerializeFrontmatter(frontmatter, renderChecklist(snapshot))
	if err != nil {
		return nil, fmt.Errorf("failed to render board document: %w", err)
	}
	return data, nil
}

// SnapshotFromDocument accepts an exported markdown document or a raw JSON state blob
func SnapshotFromDocument(data []byte) (entity.Snapshot, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("{")) {
		return SnapshotFromStorage(string(trimmed))
	}

	doc, err := serialization.ParseFrontmatter(data)
	if err != nil {
		return entity.Snapshot{}, fmt.Errorf("%w: %v", entity.ErrStateMalformed, err)
	}

	var frontmatter BoardDocumentFrontmatter
	if err := doc.Decode(&frontmatter); err != nil {
		return entity.Snapshot{}, fmt.Errorf("%w: %v", entity.ErrStateMalformed, err)
	}
	if frontmatter.FormatVersion != documentFormatVersion {
		return entity.Snapshot{}, fmt.Errorf("%w: unsupported format version %d", entity.ErrStateMalformed, frontmatter.FormatVersion)
	}

	return SnapshotFromState(frontmatter.Board), nil
}

func renderChecklist(snapshot entity.Snapshot) string {
	var b strings.Builder
	b.WriteString("# Board\n")

	for _, col := range snapshot.Columns {
		fmt.Fprintf(&b, "\n## %s\n\n", col.Title)
		tasks := snapshot.TasksIn(col.ID)
		if len(tasks) == 0 {
			b.WriteString("_empty_\n")
			continue
		}
		for _, task := range tasks {
			fmt.Fprintf(&b, "- [ ] %s\n", singleLine(task.Content))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
