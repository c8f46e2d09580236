package layout

import (
	"io"

	"github.com/ByLCY/scroll/document"
)

// Font 选择字体族中的字形变体。
type Font struct {
	Bold   bool `json:"bold,omitempty"`
	Italic bool `json:"italic,omitempty"`
}

// FontOf 从样式中取出字体变体。
func FontOf(s document.Style) Font {
	return Font{Bold: s.Bold, Italic: s.Italic}
}

// Backend 负责页面创建、文本测量与最终序列化。所有坐标与尺寸均以 pt 为单位。
type Backend interface {
	NewPage(width, height float64) (Page, error)
	TextWidth(text string, font Font, sizePt float64) (float64, error)
	Save(w io.Writer) error
}

// Page 是后端页面句柄，(x, y) 为基线起点，原点位于页面左下角。
type Page interface {
	DrawText(x, y float64, text string, font Font, sizePt float64, color document.Color) error
	StrokeLine(x1, y1, x2, y2, width float64, color document.Color) error
}

// MetaSetter 由能够写入文档属性的后端实现。
type MetaSetter interface {
	SetMeta(meta document.Meta)
}
