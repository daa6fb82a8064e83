package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/moodgarden/pkg/app"
	"github.com/decker502/moodgarden/pkg/config"
	"github.com/decker502/moodgarden/pkg/embedded"
	"github.com/decker502/moodgarden/pkg/game"
	"github.com/decker502/moodgarden/pkg/history"
)

// setupHome 把 HOME 和 XDG 目录重定向到临时目录
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_DATA_HOME", home)
	embedded.Init(dataFS)
	return home
}

// runCLI 执行一次命令，返回标准输出
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEmbeddedGardenConfig(t *testing.T) {
	embedded.Init(dataFS)

	data, err := embedded.GardenConfig()
	if err != nil {
		t.Fatalf("embedded config missing: %v", err)
	}
	cfg, err := config.ParseGardenConfig(data)
	if err != nil {
		t.Fatalf("embedded config invalid: %v", err)
	}

	def := config.DefaultGardenConfig()
	if cfg.TileSize != def.TileSize || cfg.Columns != def.Columns {
		t.Errorf("grid = %dx%d, want %dx%d", cfg.TileSize, cfg.Columns, def.TileSize, def.Columns)
	}
	if cfg.Interaction != def.Interaction {
		t.Errorf("interaction = %+v, want %+v", cfg.Interaction, def.Interaction)
	}
	if cfg.Particles != def.Particles {
		t.Errorf("particles = %+v, want %+v", cfg.Particles, def.Particles)
	}
	if len(cfg.Bubble.Messages) != len(def.Bubble.Messages) {
		t.Errorf("bubble messages = %d, want %d", len(cfg.Bubble.Messages), len(def.Bubble.Messages))
	}
	for emoji, icon := range def.EmojiIcons {
		if got := cfg.IconFor(emoji); got != icon {
			t.Errorf("IconFor(%s) = %s, want %s", emoji, got, icon)
		}
	}
}

// TestEmbeddedSymbolFont 二进制内嵌的符号字体能画出所有默认图标
func TestEmbeddedSymbolFont(t *testing.T) {
	setupHome(t)

	if !embedded.Exists(embedded.SymbolFontPath) {
		t.Fatalf("%s is not embedded", embedded.SymbolFontPath)
	}
	cfg, err := loadGardenConfig("")
	if err != nil {
		t.Fatalf("loadGardenConfig failed: %v", err)
	}
	glyphs, _, err := app.LoadFaces(game.NewResourceManager(), cfg)
	if err != nil {
		t.Fatalf("LoadFaces failed: %v", err)
	}
	for emoji := range cfg.EmojiIcons {
		icon := cfg.IconFor(emoji)
		if got := glyphs.Printable(icon); got == "" || !glyphs.Covers(got) {
			t.Errorf("icon %s for %s draws as %q", icon, emoji, got)
		}
	}
}

func TestCLI_LogCalendarListClear(t *testing.T) {
	home := setupHome(t)
	store := []string{"--store", "sqlite", "--db", filepath.Join(home, "moods.db")}

	logs := [][]string{
		{"log", "--emoji", "😄", "--text", "sunny walk", "--date", "2026-02-01"},
		{"log", "--emoji", "😭", "--text", "rainy evening", "--date", "2026-02-01"},
		{"log", "--emoji", "😔", "--text", "tired", "--date", "2026-02-15"},
	}
	for _, args := range logs {
		out, err := runCLI(t, "", append(store, args...)...)
		if err != nil {
			t.Fatalf("%v failed: %v", args, err)
		}
		if !strings.Contains(out, "Mood saved!") {
			t.Errorf("%v output = %q", args, out)
		}
	}

	out, err := runCLI(t, "", append(store, "calendar", "--month", "2026-02")...)
	if err != nil {
		t.Fatalf("calendar failed: %v", err)
	}
	if !strings.Contains(out, "February 2026") {
		t.Errorf("calendar missing title:\n%s", out)
	}
	if !strings.Contains(out, " 1 😄") || !strings.Contains(out, "15 😔") {
		t.Errorf("calendar missing moods:\n%s", out)
	}
	if strings.Contains(out, "😭") {
		t.Errorf("calendar should show the first mood of a day:\n%s", out)
	}

	out, err = runCLI(t, "", append(store, "list")...)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"sunny walk", "rainy evening", "tired"} {
		if !strings.Contains(out, want) {
			t.Errorf("list missing %q:\n%s", want, out)
		}
	}

	if _, err := runCLI(t, "", append(store, "clear", "--yes")...); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	out, err = runCLI(t, "", append(store, "calendar", "--month", "2026-02")...)
	if err != nil {
		t.Fatalf("calendar failed: %v", err)
	}
	if !strings.Contains(out, history.EmptyMessage) {
		t.Errorf("calendar after clear should be empty:\n%s", out)
	}
}

func TestCLI_ClearNeedsConfirmation(t *testing.T) {
	home := setupHome(t)
	store := []string{"--store", "sqlite", "--db", filepath.Join(home, "moods.db")}

	if _, err := runCLI(t, "", append(store, "log", "--emoji", "🙂", "--text", "fine", "--date", "2026-02-03")...); err != nil {
		t.Fatalf("log failed: %v", err)
	}

	out, err := runCLI(t, "n\n", append(store, "clear")...)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if !strings.Contains(out, "Clear all saved moods?") || !strings.Contains(out, "Nothing cleared.") {
		t.Errorf("unexpected clear output %q", out)
	}

	out, _ = runCLI(t, "", append(store, "list")...)
	if !strings.Contains(out, "fine") {
		t.Errorf("declined clear should keep moods, got %q", out)
	}

	if _, err := runCLI(t, "yes\n", append(store, "clear")...); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	out, _ = runCLI(t, "", append(store, "list")...)
	if !strings.Contains(out, history.EmptyMessage) {
		t.Errorf("confirmed clear should remove moods, got %q", out)
	}
}

func TestCLI_LogValidation(t *testing.T) {
	home := setupHome(t)
	store := []string{"--store", "sqlite", "--db", filepath.Join(home, "moods.db")}

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no emoji", []string{"log", "--text", "hello", "--date", "2026-02-01"}, "pick an emoji"},
		{"no text", []string{"log", "--emoji", "😄", "--date", "2026-02-01"}, "short note"},
		{"bad date", []string{"log", "--emoji", "😄", "--text", "hello", "--date", "yesterday"}, "pick the date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, "", append(store, tt.args...)...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}

	out, _ := runCLI(t, "", append(store, "list")...)
	if !strings.Contains(out, history.EmptyMessage) {
		t.Errorf("rejected moods should not be saved, got %q", out)
	}
}

func TestCLI_GdataStore(t *testing.T) {
	setupHome(t)

	if _, err := runCLI(t, "", "log", "--emoji", "🤩", "--text", "party", "--date", "2026-03-07"); err != nil {
		t.Fatalf("log failed: %v", err)
	}
	out, err := runCLI(t, "", "calendar", "--month", "2026-03")
	if err != nil {
		t.Fatalf("calendar failed: %v", err)
	}
	if !strings.Contains(out, " 7 🤩") {
		t.Errorf("calendar missing gdata mood:\n%s", out)
	}
}

func TestCLI_BadMonthAndStore(t *testing.T) {
	setupHome(t)

	if _, err := runCLI(t, "", "calendar", "--month", "2026/02"); err == nil {
		t.Error("expected an error for a malformed month")
	}
	if _, err := runCLI(t, "", "--store", "redis", "list"); err == nil {
		t.Error("expected an error for an unknown store")
	}
}

func TestConfigInitAndLoad(t *testing.T) {
	setupHome(t)

	cfg, err := loadGardenConfig("")
	if err != nil {
		t.Fatalf("loadGardenConfig() without files failed: %v", err)
	}
	if cfg.TileSize != 48 {
		t.Errorf("embedded tileSize = %d, want 48", cfg.TileSize)
	}

	out, err := runCLI(t, "", "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	path := config.DefaultConfigPath()
	if !strings.Contains(out, path) {
		t.Errorf("config init output = %q, want path %s", out, path)
	}
	if _, err := runCLI(t, "", "config", "init"); err == nil {
		t.Error("second config init should refuse to overwrite")
	}

	// 修改默认路径下的配置后应被优先使用
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	edited := strings.Replace(string(data), "tileSize: 48", "tileSize: 40", 1)
	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err = loadGardenConfig("")
	if err != nil {
		t.Fatalf("loadGardenConfig() failed: %v", err)
	}
	if cfg.TileSize != 40 {
		t.Errorf("tileSize = %d, want 40 from %s", cfg.TileSize, path)
	}

	// --config 指定的 TOML 文件优先
	tomlPath := filepath.Join(t.TempDir(), "garden.toml")
	if err := os.WriteFile(tomlPath, []byte("tileSize = 32\n"), 0o644); err != nil {
		t.Fatalf("write toml: %v", err)
	}
	cfg, err = loadGardenConfig(tomlPath)
	if err != nil {
		t.Fatalf("loadGardenConfig(toml) failed: %v", err)
	}
	if cfg.TileSize != 32 {
		t.Errorf("tileSize = %d, want 32", cfg.TileSize)
	}
}
