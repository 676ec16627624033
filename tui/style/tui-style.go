package style

import (
	"github.com/charmbracelet/lipgloss"

	"mboard/internal/infrastructure/config"
)

var (
	ColumnStyle           lipgloss.Style
	FocusedColumnStyle    lipgloss.Style
	DropTargetColumnStyle lipgloss.Style
	ColumnTitleStyle      lipgloss.Style
	TaskCardStyle         lipgloss.Style
	SelectedTaskCardStyle lipgloss.Style
	GrabbedTaskCardStyle  lipgloss.Style
	TaskStyle             lipgloss.Style
	HelpStyle             lipgloss.Style
	StatusStyle           lipgloss.Style
	ErrorStyle            lipgloss.Style

	// ColumnWidth is the content width of a column
	ColumnWidth int
)

// InitStyles initializes the styles from config
func InitStyles(cfg *config.Config) {
	styles := cfg.TUI.Styles

	ColumnStyle = columnStyle(styles.Column)
	FocusedColumnStyle = columnStyle(styles.FocusedColumn)
	DropTargetColumnStyle = columnStyle(styles.DropTargetColumn)

	ColumnWidth = styles.Column.Width
	if ColumnWidth < 12 {
		ColumnWidth = 12
	}

	ColumnTitleStyle = textStyle(styles.ColumnTitle)
	if styles.ColumnTitle.Align != "" {
		ColumnTitleStyle = ColumnTitleStyle.Align(getAlign(styles.ColumnTitle.Align))
	}

	TaskCardStyle = cardStyle(styles.TaskCard)
	SelectedTaskCardStyle = cardStyle(styles.SelectedTaskCard)
	GrabbedTaskCardStyle = cardStyle(styles.GrabbedTaskCard).Border(lipgloss.ThickBorder())

	TaskStyle = textStyle(styles.Task)

	HelpStyle = lipgloss.NewStyle().
		Padding(styles.Help.PaddingVertical, 0, 0, styles.Help.PaddingHorizontal)
	if styles.Help.Foreground != "" {
		HelpStyle = HelpStyle.Foreground(lipgloss.Color(styles.Help.Foreground))
	}

	StatusStyle = textStyle(styles.Status)
	ErrorStyle = textStyle(styles.Error)
}

func columnStyle(s config.ColumnStyle) lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(s.PaddingVertical, s.PaddingHorizontal).
		Border(getBorder(s.BorderStyle)).
		BorderForeground(lipgloss.Color(s.BorderColor))
}

func cardStyle(s config.TaskCardStyle) lipgloss.Style {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if s.BorderColor != "" {
		style = style.BorderForeground(lipgloss.Color(s.BorderColor))
	}
	return style
}

func textStyle(s config.TextStyle) lipgloss.Style {
	style := lipgloss.NewStyle().
		Padding(s.PaddingVertical, s.PaddingHorizontal)
	if s.Foreground != "" {
		style = style.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Background != "" {
		style = style.Background(lipgloss.Color(s.Background))
	}
	if s.Bold {
		style = style.Bold(true)
	}
	if s.Italic {
		style = style.Italic(true)
	}
	return style
}

// getBorder returns the border style based on the name
func getBorder(name string) lipgloss.Border {
	switch name {
	case "rounded":
		return lipgloss.RoundedBorder()
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// getAlign returns the alignment based on the name
func getAlign(name string) lipgloss.Position {
	switch name {
	case "left":
		return lipgloss.Left
	case "center":
		return lipgloss.Center
	case "right":
		return lipgloss.Right
	default:
		return lipgloss.Center
	}
}
