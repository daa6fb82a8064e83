package config

import (
	"os"
	"path/filepath"
)

// AppName 用于 XDG 目录、gdata 存储和窗口标题的应用名
const AppName = "moodgarden"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath 返回默认配置文件路径
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), AppName, "garden.yaml")
}

// DefaultDBPath 返回 SQLite 情绪库的默认路径
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), AppName, "moods.db")
}
