package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/ByLCY/scroll/config"
	"github.com/ByLCY/scroll/document"
	"github.com/ByLCY/scroll/docx"
	"github.com/ByLCY/scroll/layout"
	"github.com/ByLCY/scroll/renderer"
	"github.com/ByLCY/scroll/renderer/trace"
)

const creator = "scroll"

type cliOptions struct {
	input      string
	output     string
	configPath string
	page       string
	data       string
	backend    string
	debugPath  string
	logLevel   string
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("参数错误: %v", err)
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	level, _ := cfg.LogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, opts, cfg, logger); err != nil {
		log.Fatalf("转换失败: %v", err)
	}
	fmt.Printf("已生成：%s\n", opts.output)
}

func parseFlags(args []string) (*cliOptions, error) {
	o := &cliOptions{}
	fs := flag.NewFlagSet("scroll", flag.ContinueOnError)
	fs.StringVarP(&o.input, "in", "i", "", "DOCX 文件路径（也可作为第一个参数）")
	fs.StringVarP(&o.output, "out", "o", "output.pdf", "输出文件路径")
	fs.StringVarP(&o.configPath, "config", "c", "", "YAML 配置文件路径")
	fs.StringVar(&o.page, "page", "", `页面设置，例如 "A4 portrait margin 50pt"`)
	fs.StringVar(&o.data, "data", "", "绑定到 ${...} 占位符的 JSON 数据")
	fs.StringVar(&o.backend, "backend", "", "输出后端：pdf 或 trace")
	fs.StringVar(&o.debugPath, "debug", "", "额外输出排版记录 JSON 的路径")
	fs.StringVar(&o.logLevel, "log-level", "", "日志级别：debug、info、warn、error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.input == "" && fs.NArg() > 0 {
		o.input = fs.Arg(0)
	}
	if o.input == "" {
		return nil, errors.New("缺少输入文件（--in）")
	}
	return o, nil
}

// loadConfig 读取配置文件后用命令行参数覆盖。
func loadConfig(o *cliOptions) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if o.page != "" {
		cfg.Page = o.page
	}
	if o.backend != "" {
		cfg.Output.Backend = o.backend
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run 串联读取、绑定、排版与输出。输出先写入内存，成功后才落盘。
func run(ctx context.Context, o *cliOptions, cfg *config.Config, logger *slog.Logger) error {
	var data any
	if o.data != "" {
		if err := json.Unmarshal([]byte(o.data), &data); err != nil {
			return fmt.Errorf("解析 data JSON 失败: %w", err)
		}
	}

	doc, err := docx.Load(o.input)
	if err != nil {
		return err
	}
	if data != nil {
		doc = document.Bind(doc, data)
	}
	logger.Debug("文档已读取", "path", o.input, "blocks", len(doc.Blocks), "title", doc.Meta.Title)

	opts, err := cfg.LayoutOptions(logger)
	if err != nil {
		return err
	}
	if o.debugPath != "" {
		if err := writeDebug(ctx, doc, opts, o.debugPath); err != nil {
			return err
		}
	}

	backend, err := renderer.New(cfg.Output.Backend, cfg.RendererOptions(creator))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := layout.Convert(ctx, doc, backend, &buf, opts); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(o.output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(o.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	return nil
}

// writeDebug 用记录后端再排一遍，输出每页的文本与线段。
func writeDebug(ctx context.Context, doc *document.Document, opts layout.Options, debugPath string) error {
	rec := trace.New()
	if err := layout.Convert(ctx, doc, rec, io.Discard, opts); err != nil {
		return fmt.Errorf("生成排版记录失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := rec.WriteFile(debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
