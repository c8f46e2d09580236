// Package trace 提供一个只记录不渲染的排版后端，输出 JSON 便于调试或比对排版结果。
package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-runewidth"

	"github.com/ByLCY/scroll/document"
	"github.com/ByLCY/scroll/layout"
)

// 字宽按终端显示宽度估算：半角字符为字号的一半，全角字符为一个字号。
const (
	halfWidthEm = 0.5
	boldFactor  = 1.1
)

// Recorder 记录每一页的文本与线段。
type Recorder struct {
	Meta  document.Meta `json:"meta"`
	Pages []*Page       `json:"pages"`
}

// Page 是一页的绘制记录，坐标单位 pt。
type Page struct {
	Number int     `json:"number"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Texts  []Text  `json:"texts"`
	Lines  []Line  `json:"lines,omitempty"`
}

// Text 是一次文本绘制，(X, Y) 为基线起点。
type Text struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Text   string  `json:"text"`
	Size   float64 `json:"size"`
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
	Color  string  `json:"color"`
}

// Line 是一条线段，颜色为 RRGGBB。
type Line struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

var (
	_ layout.Backend    = (*Recorder)(nil)
	_ layout.MetaSetter = (*Recorder)(nil)
	_ layout.Page       = (*Page)(nil)
)

// New 创建空的记录器。
func New() *Recorder { return &Recorder{} }

func (r *Recorder) NewPage(width, height float64) (layout.Page, error) {
	p := &Page{Number: len(r.Pages) + 1, Width: width, Height: height}
	r.Pages = append(r.Pages, p)
	return p, nil
}

// TextWidth 用 go-runewidth 的显示宽度估算文本宽度，粗体加宽 10%。
func (r *Recorder) TextWidth(text string, font layout.Font, sizePt float64) (float64, error) {
	w := float64(runewidth.StringWidth(text)) * sizePt * halfWidthEm
	if font.Bold {
		w *= boldFactor
	}
	return w, nil
}

func (r *Recorder) SetMeta(meta document.Meta) { r.Meta = meta }

// Save 以缩进 JSON 写出全部记录。
func (r *Recorder) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("写入排版记录失败: %w", err)
	}
	return nil
}

// WriteFile 将记录写入文件。
func (r *Recorder) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (p *Page) DrawText(x, y float64, text string, font layout.Font, sizePt float64, color document.Color) error {
	p.Texts = append(p.Texts, Text{X: x, Y: y, Text: text, Size: sizePt, Bold: font.Bold, Italic: font.Italic, Color: color.Hex()})
	return nil
}

func (p *Page) StrokeLine(x1, y1, x2, y2, width float64, color document.Color) error {
	p.Lines = append(p.Lines, Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Width: width, Color: color.Hex()})
	return nil
}
