// Package config 读取 YAML 配置：页面设置、字体、排版常量、日志级别与输出后端。
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ByLCY/scroll/fonts"
	"github.com/ByLCY/scroll/layout"
	"github.com/ByLCY/scroll/renderer"
	canvasrenderer "github.com/ByLCY/scroll/renderer/canvas"
)

// maxConfigSize 限制配置文件大小。
const maxConfigSize = 1 << 20

var (
	ErrConfigNotFound = errors.New("配置文件不存在")
	ErrConfigParse    = errors.New("配置文件解析失败")
	ErrInvalidConfig  = errors.New("配置无效")
)

// Config 是全部可配置项，零值不可直接使用，请从 Default 开始。
type Config struct {
	Page   string       `yaml:"page"`
	Font   FontConfig   `yaml:"font"`
	Layout LayoutConfig `yaml:"layout"`
	Log    LogConfig    `yaml:"log"`
	Output OutputConfig `yaml:"output"`
}

// FontConfig 选择内置字体族，并可用 TTF 文件覆盖单个变体。
type FontConfig struct {
	Family     string `yaml:"family"`
	Regular    string `yaml:"regular"`
	Bold       string `yaml:"bold"`
	Italic     string `yaml:"italic"`
	BoldItalic string `yaml:"boldItalic"`
}

// LayoutConfig 的单位均为 pt。
type LayoutConfig struct {
	TabWidth     float64 `yaml:"tabWidth"`
	CellPadding  float64 `yaml:"cellPadding"`
	MinRowHeight float64 `yaml:"minRowHeight"`
	LineGap      float64 `yaml:"lineGap"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type OutputConfig struct {
	Backend string `yaml:"backend"`
}

// Default 返回默认配置：A4 纵向、50pt 边距、Go 字体、PDF 输出。
func Default() *Config {
	opts := layout.DefaultOptions()
	return &Config{
		Page: "A4 portrait margin 50pt",
		Font: FontConfig{Family: fonts.Go},
		Layout: LayoutConfig{
			TabWidth:     opts.TabWidth,
			CellPadding:  opts.CellPadding,
			MinRowHeight: opts.MinRowHeight,
			LineGap:      opts.LineGap,
		},
		Log:    LogConfig{Level: "info"},
		Output: OutputConfig{Backend: renderer.KindPDF},
	}
}

// Load 读取配置文件，未出现的键保留默认值，未知键视为错误。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}
	return Parse(data)
}

// Parse 在默认配置之上解析 YAML 数据并校验。
func Parse(data []byte) (*Config, error) {
	if len(data) > maxConfigSize {
		return nil, fmt.Errorf("%w: 配置超过 %d 字节", ErrConfigParse, maxConfigSize)
	}
	cfg := Default()
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查各字段取值。
func (c *Config) Validate() error {
	if _, err := layout.ParsePage(c.Page); err != nil {
		return fmt.Errorf("%w: page: %v", ErrInvalidConfig, err)
	}
	if family := strings.ToLower(c.Font.Family); family != "" && !slices.Contains(fonts.Families(), family) {
		return fmt.Errorf("%w: font.family %q（可选：%s）", ErrInvalidConfig, c.Font.Family, strings.Join(fonts.Families(), ", "))
	}
	if c.Layout.TabWidth <= 0 {
		return fmt.Errorf("%w: layout.tabWidth 必须大于 0", ErrInvalidConfig)
	}
	if c.Layout.MinRowHeight <= 0 {
		return fmt.Errorf("%w: layout.minRowHeight 必须大于 0", ErrInvalidConfig)
	}
	if c.Layout.CellPadding < 0 || c.Layout.LineGap < 0 {
		return fmt.Errorf("%w: layout.cellPadding 与 layout.lineGap 不能为负数", ErrInvalidConfig)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.Output.Backend) {
	case renderer.KindPDF, renderer.KindTrace:
	default:
		return fmt.Errorf("%w: output.backend %q", ErrInvalidConfig, c.Output.Backend)
	}
	return nil
}

// LogLevel 解析日志级别（debug/info/warn/error）。
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

// LayoutOptions 生成排版选项。
func (c *Config) LayoutOptions(logger *slog.Logger) (layout.Options, error) {
	geo, err := layout.ParsePage(c.Page)
	if err != nil {
		return layout.Options{}, err
	}
	opts := layout.DefaultOptions()
	opts.Geometry = geo
	opts.TabWidth = c.Layout.TabWidth
	opts.CellPadding = c.Layout.CellPadding
	opts.MinRowHeight = c.Layout.MinRowHeight
	opts.LineGap = c.Layout.LineGap
	opts.Logger = logger
	return opts, nil
}

// RendererOptions 生成 PDF 渲染器的字体选项。
func (c *Config) RendererOptions(creator string) canvasrenderer.Options {
	return canvasrenderer.Options{
		Family:     strings.ToLower(c.Font.Family),
		Regular:    c.Font.Regular,
		Bold:       c.Font.Bold,
		Italic:     c.Font.Italic,
		BoldItalic: c.Font.BoldItalic,
		Creator:    creator,
	}
}
