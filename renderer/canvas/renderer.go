package canvasrenderer

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/scroll/document"
	"github.com/ByLCY/scroll/fonts"
	"github.com/ByLCY/scroll/layout"
)

// Renderer 基于 github.com/tdewolff/canvas 实现 layout.Backend。
// 页面在内存中绘制，Save 时统一写出为 PDF。
type Renderer struct {
	family    string
	overrides [4]string // 按 fonts.Variant 排列的字体文件路径
	creator   string

	fontMu       sync.Mutex
	fontFamilies map[int]*canvas.FontFamily

	pages []*Page
	meta  document.Meta
}

var (
	_ layout.Backend    = (*Renderer)(nil)
	_ layout.MetaSetter = (*Renderer)(nil)
	_ layout.Page       = (*Page)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	Family     string // 内置字体族：go（默认）或 latin-modern
	Regular    string // 可选 TTF 路径，覆盖内置字形
	Bold       string
	Italic     string
	BoldItalic string
	Creator    string // 写入 PDF 属性的生成工具名
}

// New creates a canvas-based renderer. 字体在首次使用时加载。
func New(opts Options) *Renderer {
	return &Renderer{
		family:       opts.Family,
		overrides:    [4]string{opts.Regular, opts.Bold, opts.Italic, opts.BoldItalic},
		creator:      opts.Creator,
		fontFamilies: map[int]*canvas.FontFamily{},
	}
}

// Page 是一张 canvas 画布；画布使用默认的左下角原点坐标系，单位 mm。
type Page struct {
	r      *Renderer
	c      *canvas.Canvas
	ctx    *canvas.Context
	width  float64 // mm
	height float64 // mm
}

// NewPage 创建一页，宽高以 pt 给出。
func (r *Renderer) NewPage(width, height float64) (layout.Page, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: 页面尺寸 %gx%g", layout.ErrInvalidPage, width, height)
	}
	w, h := toMm(width), toMm(height)
	c := canvas.New(w, h)
	p := &Page{r: r, c: c, ctx: canvas.NewContext(c), width: w, height: h}
	r.pages = append(r.pages, p)
	return p, nil
}

// TextWidth 返回文本在指定字形与字号下的宽度（pt）。
func (r *Renderer) TextWidth(text string, font layout.Font, sizePt float64) (float64, error) {
	if text == "" {
		return 0, nil
	}
	face, err := r.fontFace(font, sizePt, document.Black)
	if err != nil {
		return 0, err
	}
	return toPt(face.TextWidth(text)), nil
}

// SetMeta 记录写入 PDF 属性的文档信息。
func (r *Renderer) SetMeta(meta document.Meta) { r.meta = meta }

// Save 将全部页面写为 PDF。
func (r *Renderer) Save(w io.Writer) error {
	if len(r.pages) == 0 {
		return fmt.Errorf("缺少可渲染的页面")
	}
	first := r.pages[0]
	writer := pdf.New(w, first.width, first.height, nil)
	r.applyMeta(writer)
	for i, page := range r.pages {
		if i > 0 {
			writer.NewPage(page.width, page.height)
		}
		page.c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return nil
}

// Pages 返回已创建的页数。
func (r *Renderer) Pages() int { return len(r.pages) }

func (r *Renderer) applyMeta(writer *pdf.PDF) {
	keywords := strings.Join(r.meta.Keywords, ", ")
	writer.SetInfo(r.meta.Title, r.meta.Subject, keywords, r.meta.Author, r.creator)
}

// DrawText 以 (x, y) 为基线起点绘制单行文本，坐标单位 pt。
func (p *Page) DrawText(x, y float64, text string, font layout.Font, sizePt float64, col document.Color) error {
	face, err := p.r.fontFace(font, sizePt, col)
	if err != nil {
		return err
	}
	line := canvas.NewTextLine(face, text, canvas.Left)
	p.ctx.DrawText(toMm(x), toMm(y), line)
	return nil
}

// StrokeLine 绘制线段，坐标与线宽单位 pt。
func (p *Page) StrokeLine(x1, y1, x2, y2, width float64, col document.Color) error {
	p.ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	p.ctx.SetStrokeColor(colorOf(col))
	p.ctx.SetStrokeWidth(toMm(width))
	path := &canvas.Path{}
	path.MoveTo(0, 0)
	path.LineTo(toMm(x2-x1), toMm(y2-y1))
	p.ctx.DrawPath(toMm(x1), toMm(y1), path)
	return nil
}

func (r *Renderer) fontFace(font layout.Font, sizePt float64, col document.Color) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily(fonts.Variant(font.Bold, font.Italic))
	if err != nil {
		return nil, err
	}
	return family.Face(sizePt, colorOf(col), canvas.FontRegular, canvas.FontNormal), nil
}

// ensureFontFamily 按变体懒加载字体，每个变体单独成族，避免 canvas 合成伪粗体/伪斜体。
func (r *Renderer) ensureFontFamily(variant int) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[variant]; ok {
		return family, nil
	}
	data, err := r.loadFontBytes(variant)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", layout.ErrResource, err)
	}
	family := canvas.NewFontFamily(fmt.Sprintf("scroll-%d", variant))
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("%w: 加载字体失败: %v", layout.ErrResource, err)
	}
	r.fontFamilies[variant] = family
	return family, nil
}

func (r *Renderer) loadFontBytes(variant int) ([]byte, error) {
	if path := r.overrides[variant]; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取字体文件 %s 失败: %w", path, err)
		}
		return data, nil
	}
	return fonts.Load(r.family, variant&1 != 0, variant&2 != 0)
}

func colorOf(c document.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }
