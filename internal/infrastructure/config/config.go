package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFileName = "config.yml"
	defaultConfigDirName  = ".config/mboard"
	defaultDataDirName    = ".local/share/mboard"

	// EnvConfigPath overrides the default config location
	EnvConfigPath = "MBOARD_CONFIG"

	DefaultStateKey        = "kanbanState"
	DefaultHistoryCapacity = 100
)

// Storage backends
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// ID strategies
const (
	IDStrategyUUID     = "uuid"
	IDStrategySequence = "sequence"
)

// Config holds application configuration
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	History     HistoryConfig     `yaml:"history"`
	IDs         IDConfig          `yaml:"ids"`
	Daemon      DaemonConfig      `yaml:"daemon"`
	Logging     LoggingConfig     `yaml:"logging"`
	TUI         TUIConfig         `yaml:"tui"`
	Keybindings KeybindingsConfig `yaml:"keybindings"`
}

// StorageConfig selects where the board snapshot lives
type StorageConfig struct {
	Backend  string      `yaml:"backend"`
	DataPath string      `yaml:"data_path"`
	StateKey string      `yaml:"state_key"`
	Redis    RedisConfig `yaml:"redis"`
}

// RedisConfig holds connection settings for the redis backend
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password,omitempty"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// HistoryConfig controls the undo/redo log
type HistoryConfig struct {
	// Capacity of 0 or less keeps every entry
	Capacity        int  `yaml:"capacity"`
	RecordDragTicks bool `yaml:"record_drag_ticks"`
}

// IDConfig selects the id generator
type IDConfig struct {
	Strategy string `yaml:"strategy"`
}

// DaemonConfig holds daemon-related configuration
type DaemonConfig struct {
	SocketDir  string `yaml:"socket_dir"`
	SocketName string `yaml:"socket_name"`
}

// SocketPath returns the full unix socket path
func (d DaemonConfig) SocketPath() string {
	return filepath.Join(d.SocketDir, d.SocketName)
}

// LoggingConfig holds log output configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
	File   string `yaml:"file,omitempty"`
}

// TUIConfig holds TUI styling configuration
type TUIConfig struct {
	Styles StylesConfig `yaml:"styles"`
}

// StylesConfig holds color and styling configuration
type StylesConfig struct {
	Column           ColumnStyle   `yaml:"column"`
	FocusedColumn    ColumnStyle   `yaml:"focused_column"`
	DropTargetColumn ColumnStyle   `yaml:"drop_target_column"`
	ColumnTitle      TextStyle     `yaml:"column_title"`
	TaskCard         TaskCardStyle `yaml:"task_card"`
	SelectedTaskCard TaskCardStyle `yaml:"selected_task_card"`
	GrabbedTaskCard  TaskCardStyle `yaml:"grabbed_task_card"`
	Task             TextStyle     `yaml:"task"`
	Help             TextStyle     `yaml:"help"`
	Status           TextStyle     `yaml:"status"`
	Error            TextStyle     `yaml:"error"`
}

// ColumnStyle represents column styling
type ColumnStyle struct {
	Width             int    `yaml:"width"`
	PaddingVertical   int    `yaml:"padding_vertical"`
	PaddingHorizontal int    `yaml:"padding_horizontal"`
	BorderStyle       string `yaml:"border_style"`
	BorderColor       string `yaml:"border_color"`
}

// TextStyle represents text styling
type TextStyle struct {
	Foreground        string `yaml:"foreground,omitempty"`
	Background        string `yaml:"background,omitempty"`
	Bold              bool   `yaml:"bold,omitempty"`
	Italic            bool   `yaml:"italic,omitempty"`
	PaddingVertical   int    `yaml:"padding_vertical,omitempty"`
	PaddingHorizontal int    `yaml:"padding_horizontal,omitempty"`
	Align             string `yaml:"align,omitempty"`
}

// TaskCardStyle represents task card border styling
type TaskCardStyle struct {
	BorderColor string `yaml:"border_color"`
}

// KeybindingsConfig holds keybinding configuration
type KeybindingsConfig struct {
	Up           []string `yaml:"up"`
	Down         []string `yaml:"down"`
	Left         []string `yaml:"left"`
	Right        []string `yaml:"right"`
	Grab         []string `yaml:"grab"`
	Cancel       []string `yaml:"cancel"`
	AddTask      []string `yaml:"add_task"`
	AddColumn    []string `yaml:"add_column"`
	Edit         []string `yaml:"edit"`
	DeleteTask   []string `yaml:"delete_task"`
	DeleteColumn []string `yaml:"delete_column"`
	Undo         []string `yaml:"undo"`
	Redo         []string `yaml:"redo"`
	Quit         []string `yaml:"quit"`
}

// Validate checks enumerated fields
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	switch c.IDs.Strategy {
	case IDStrategyUUID, IDStrategySequence:
	default:
		return fmt.Errorf("unknown id strategy %q", c.IDs.Strategy)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown logging format %q", c.Logging.Format)
	}

	if c.Storage.StateKey == "" {
		return fmt.Errorf("storage.state_key must not be empty")
	}

	return nil
}

// Loader handles loading and saving configuration
type Loader struct {
	configPath string
	homeDir    string
}

// NewLoader creates a config loader. An empty path falls back to
// $MBOARD_CONFIG and then to ~/.config/mboard/config.yml.
func NewLoader(path string) (*Loader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = filepath.Join(homeDir, defaultConfigDirName, defaultConfigFileName)
	}

	return &Loader{
		configPath: expandHome(path, homeDir),
		homeDir:    homeDir,
	}, nil
}

// Load loads the configuration, creating defaults if it doesn't exist.
// Fields missing from the file keep their default values.
func (l *Loader) Load() (*Config, error) {
	if _, err := os.Stat(l.configPath); os.IsNotExist(err) {
		return l.createDefaultConfig()
	}

	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default(l.homeDir)
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.Storage.DataPath = expandHome(config.Storage.DataPath, l.homeDir)
	config.Daemon.SocketDir = expandHome(config.Daemon.SocketDir, l.homeDir)
	config.Logging.File = expandHome(config.Logging.File, l.homeDir)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", l.configPath, err)
	}

	return config, nil
}

// Save persists the configuration to disk
func (l *Loader) Save(config *Config) error {
	configDir := filepath.Dir(l.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(config)
	if err != nil {
		return err
	}

	if err := os.WriteFile(l.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Marshal renders the configuration as YAML
func Marshal(config *Config) ([]byte, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// GetConfigPath returns the path to the config file
func (l *Loader) GetConfigPath() string {
	return l.configPath
}

func (l *Loader) createDefaultConfig() (*Config, error) {
	config := Default(l.homeDir)

	if err := l.Save(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Default returns the built-in configuration rooted at homeDir
func Default(homeDir string) *Config {
	dataDir := filepath.Join(homeDir, defaultDataDirName)

	return &Config{
		Storage: StorageConfig{
			Backend:  BackendFile,
			DataPath: dataDir,
			StateKey: DefaultStateKey,
			Redis: RedisConfig{
				Addr:      "localhost:6379",
				KeyPrefix: "mboard:",
			},
		},
		History: HistoryConfig{
			Capacity: DefaultHistoryCapacity,
		},
		IDs: IDConfig{
			Strategy: IDStrategyUUID,
		},
		Daemon: DaemonConfig{
			SocketDir:  dataDir,
			SocketName: "mboardd.sock",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		TUI: TUIConfig{
			Styles: StylesConfig{
				Column: ColumnStyle{
					Width:             28,
					PaddingVertical:   0,
					PaddingHorizontal: 1,
					BorderStyle:       "rounded",
					BorderColor:       "240",
				},
				FocusedColumn: ColumnStyle{
					Width:             28,
					PaddingVertical:   0,
					PaddingHorizontal: 1,
					BorderStyle:       "rounded",
					BorderColor:       "62",
				},
				DropTargetColumn: ColumnStyle{
					Width:             28,
					PaddingVertical:   0,
					PaddingHorizontal: 1,
					BorderStyle:       "double",
					BorderColor:       "#FFE66D",
				},
				ColumnTitle: TextStyle{
					Foreground: "99",
					Bold:       true,
					Align:      "center",
				},
				TaskCard: TaskCardStyle{
					BorderColor: "#444444",
				},
				SelectedTaskCard: TaskCardStyle{
					BorderColor: "#A8DADC",
				},
				GrabbedTaskCard: TaskCardStyle{
					BorderColor: "#FFE66D",
				},
				Task: TextStyle{
					Foreground:        "252",
					PaddingHorizontal: 1,
				},
				Help: TextStyle{
					Foreground:        "241",
					PaddingHorizontal: 1,
				},
				Status: TextStyle{
					Foreground: "#95E1D3",
					Italic:     true,
				},
				Error: TextStyle{
					Foreground: "#FF6B6B",
					Bold:       true,
				},
			},
		},
		Keybindings: KeybindingsConfig{
			Up:           []string{"up", "k"},
			Down:         []string{"down", "j"},
			Left:         []string{"left", "h"},
			Right:        []string{"right", "l"},
			Grab:         []string{" ", "enter"},
			Cancel:       []string{"esc"},
			AddTask:      []string{"a"},
			AddColumn:    []string{"A"},
			Edit:         []string{"e"},
			DeleteTask:   []string{"d"},
			DeleteColumn: []string{"D"},
			Undo:         []string{"u"},
			Redo:         []string{"ctrl+r"},
			Quit:         []string{"q", "ctrl+c"},
		},
	}
}

func expandHome(path, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
