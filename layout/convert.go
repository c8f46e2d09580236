// Package layout 实现文档排版与分页：文本流、表格布局、分页管理与总调度。
// 所有坐标以 pt 为单位，原点位于页面左下角。
package layout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ByLCY/scroll/document"
)

// engine 持有单次转换的全部可变状态。
type engine struct {
	backend Backend
	opts    Options
	pager   *Paginator
	log     *slog.Logger
}

func newEngine(backend Backend, opts Options) *engine {
	return &engine{
		backend: backend,
		opts:    opts,
		pager:   newPaginator(backend, opts.Geometry, opts.Logger),
		log:     opts.Logger,
	}
}

func (e *engine) bodyFlow() *flow {
	geo := e.opts.Geometry
	return &flow{
		mode:    modeBody,
		backend: e.backend,
		pager:   e.pager,
		opts:    e.opts,
		cur:     e.pager.Cursor(),
		left:    geo.Margin.Left,
		right:   geo.Width - geo.Margin.Right,
		bottom:  geo.Bottom(),
	}
}

// Convert 按文档顺序排版所有块，全部成功后才调用 backend.Save 写入 out。
// 取消只在块与块之间检查。
func Convert(ctx context.Context, doc *document.Document, backend Backend, out io.Writer, opts Options) error {
	if doc == nil {
		return fmt.Errorf("%w: 文档为空", document.ErrDocumentStructure)
	}
	if backend == nil {
		return errors.New("layout: 缺少排版后端 Backend")
	}
	opts = opts.withDefaults()
	if err := opts.Geometry.Validate(); err != nil {
		return err
	}
	if ms, ok := backend.(MetaSetter); ok {
		ms.SetMeta(doc.Meta)
	}

	e := newEngine(backend, opts)
	if err := e.pager.NewPage(); err != nil {
		return err
	}
	for i, block := range doc.Blocks {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("转换在第 %d 个块前中止: %w", i+1, err)
		}
		var err error
		switch b := block.(type) {
		case *document.Paragraph:
			err = e.bodyFlow().paragraph(b)
		case *document.Table:
			err = e.table(b)
		default:
			continue
		}
		if errors.Is(err, ErrEmptyTable) {
			e.log.Warn("跳过无法排版的表格", "block", i+1, "err", err)
			continue
		}
		if err != nil {
			return &ConversionError{Block: i, Err: err}
		}
	}
	if err := backend.Save(out); err != nil {
		return fmt.Errorf("保存输出失败: %w", err)
	}
	e.log.Info("转换完成", "blocks", len(doc.Blocks), "pages", e.pager.Pages())
	return nil
}
