package layout

import (
	"fmt"
	"strings"

	"github.com/ByLCY/scroll/dsl"
)

// DefaultMarginPt 是未声明边距时四边使用的边距。
const DefaultMarginPt = 50.0

// Margin 以 pt 为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// PageGeometry 描述固定页面尺寸与边距，坐标原点位于页面左下角，y 轴向上。
type PageGeometry struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// Top 是新页面上光标的起始 y 坐标。
func (g PageGeometry) Top() float64 { return g.Height - g.Margin.Top }

// Bottom 是底部界限，光标低于该值时需要换页。
func (g PageGeometry) Bottom() float64 { return g.Margin.Bottom }

// ContentWidth 返回左右边距之间的宽度。
func (g PageGeometry) ContentWidth() float64 { return g.Width - g.Margin.Left - g.Margin.Right }

// ContentHeight 返回上下边距之间的高度。
func (g PageGeometry) ContentHeight() float64 { return g.Top() - g.Bottom() }

// Validate 确保页面在扣除边距后仍有可排版区域。
func (g PageGeometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: 页面尺寸 %gx%g", ErrInvalidPage, g.Width, g.Height)
	}
	if g.ContentWidth() <= 0 || g.ContentHeight() <= 0 {
		return fmt.Errorf("%w: 边距 %+v 超出页面 %gx%g", ErrInvalidPage, g.Margin, g.Width, g.Height)
	}
	return nil
}

// A4 是默认页面：A4 纵向、四边 50pt。
func A4() PageGeometry {
	w, h := pagePresets["A4"][0]*MmToPt, pagePresets["A4"][1]*MmToPt
	return PageGeometry{Width: w, Height: h, Margin: uniformMargin(DefaultMarginPt)}
}

// 纸张预设，单位 mm（宽, 高）。
var pagePresets = map[string][2]float64{
	"A3":     {297, 420},
	"A4":     {210, 297},
	"A5":     {148, 210},
	"LETTER": {215.9, 279.4},
	"LEGAL":  {215.9, 355.6},
}

// ResolvePage 将页面设置语法树解析为 pt 单位的页面几何。
func ResolvePage(spec *dsl.PageSpec) (PageGeometry, error) {
	if spec == nil {
		return A4(), nil
	}
	width, height, err := resolvePageSize(spec)
	if err != nil {
		return PageGeometry{}, err
	}
	margin, err := resolveMargin(spec.Margin)
	if err != nil {
		return PageGeometry{}, err
	}
	geo := PageGeometry{Width: width, Height: height, Margin: margin}
	if err := geo.Validate(); err != nil {
		return PageGeometry{}, err
	}
	return geo, nil
}

// ParsePage 解析页面设置字符串，例如 "Letter landscape margin 1in"。
func ParsePage(input string) (PageGeometry, error) {
	spec, err := dsl.ParseString(input)
	if err != nil {
		return PageGeometry{}, fmt.Errorf("%w: %v", ErrInvalidPage, err)
	}
	return ResolvePage(spec)
}

func resolvePageSize(spec *dsl.PageSpec) (float64, float64, error) {
	var width, height float64
	if spec.Custom != nil {
		w, err := ParseLength(spec.Custom.Width)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %v", ErrInvalidPage, err)
		}
		h, err := ParseLength(spec.Custom.Height)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %v", ErrInvalidPage, err)
		}
		width, height = w.ToPT(), h.ToPT()
	} else {
		base, ok := pagePresets[strings.ToUpper(spec.Size)]
		if !ok {
			return 0, 0, fmt.Errorf("%w: 暂不支持的纸张尺寸：%s", ErrInvalidPage, spec.Size)
		}
		width, height = base[0]*MmToPt, base[1]*MmToPt
	}
	// 显式方向只决定长边朝向，与自定义尺寸的书写顺序无关。
	if spec.Orientation != "" && spec.Landscape() != (width > height) && width != height {
		width, height = height, width
	}
	return width, height, nil
}

// resolveMargin 按 CSS 语义展开 1~4 个边距值，多余的值忽略。
func resolveMargin(values []string) (Margin, error) {
	if len(values) == 0 {
		return uniformMargin(DefaultMarginPt), nil
	}
	vals := make([]float64, 0, 4)
	for _, raw := range values {
		if len(vals) == 4 {
			break
		}
		l, err := ParseLength(raw)
		if err != nil {
			return Margin{}, fmt.Errorf("%w: %v", ErrInvalidPage, err)
		}
		vals = append(vals, l.ToPT())
	}
	switch len(vals) {
	case 1:
		return uniformMargin(vals[0]), nil
	case 2:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, nil
	case 3:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}, nil
	default:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	}
}

func uniformMargin(v float64) Margin {
	return Margin{Top: v, Right: v, Bottom: v, Left: v}
}
