package layout

import (
	"log/slog"

	"github.com/ByLCY/scroll/document"
)

// Options 配置一次转换的页面与排版常量。
type Options struct {
	Geometry     PageGeometry
	TabWidth     float64 // 制表符前进的宽度
	CellPadding  float64 // 单元格四周内边距
	MinRowHeight float64 // 表格行的最小高度
	LineGap      float64 // 行高 = 字号 + LineGap
	BorderWidth  float64
	BorderColor  document.Color
	Logger       *slog.Logger
}

// DefaultOptions 返回 A4、50pt 边距与默认排版常量。
func DefaultOptions() Options {
	return Options{
		Geometry:     A4(),
		TabWidth:     40,
		CellPadding:  4,
		MinRowHeight: 20,
		LineGap:      2,
		BorderWidth:  0.5,
		BorderColor:  document.Black,
	}
}

// withDefaults 为零值字段填充默认值。
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Geometry == (PageGeometry{}) {
		o.Geometry = def.Geometry
	}
	if o.TabWidth <= 0 {
		o.TabWidth = def.TabWidth
	}
	if o.CellPadding < 0 {
		o.CellPadding = def.CellPadding
	}
	if o.MinRowHeight <= 0 {
		o.MinRowHeight = def.MinRowHeight
	}
	if o.LineGap < 0 {
		o.LineGap = def.LineGap
	}
	if o.BorderWidth <= 0 {
		o.BorderWidth = def.BorderWidth
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

func (o Options) lineHeight(sizePt int) float64 {
	return float64(sizePt) + o.LineGap
}
