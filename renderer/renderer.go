// Package renderer 按名称选择排版后端。
package renderer

import (
	"fmt"
	"strings"

	"github.com/ByLCY/scroll/layout"
	canvasrenderer "github.com/ByLCY/scroll/renderer/canvas"
	"github.com/ByLCY/scroll/renderer/trace"
)

// 后端名称。
const (
	KindPDF   = "pdf"
	KindTrace = "trace"
)

// New 返回指定类型的后端：pdf 使用 canvas 渲染，trace 只记录绘制调用并输出 JSON。
func New(kind string, opts canvasrenderer.Options) (layout.Backend, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindPDF:
		return canvasrenderer.New(opts), nil
	case KindTrace:
		return trace.New(), nil
	default:
		return nil, fmt.Errorf("未知的输出后端 %q（可选：%s、%s）", kind, KindPDF, KindTrace)
	}
}
