package layout

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"unicode/utf8"

	"github.com/ByLCY/scroll/document"
)

// stubBackend 是测试用的最小后端：每个字符宽度为字号的一半，记录全部绘制调用。
type stubBackend struct {
	pages       []*stubPage
	saved       bool
	meta        document.Meta
	measureErr  error
	measureHits int // 第几次测量开始返回 measureErr，0 表示首次
	measured    int
}

type textCall struct {
	x, y float64
	text string
	font Font
	size float64
	col  document.Color
}

type lineCall struct {
	x1, y1, x2, y2 float64
}

type stubPage struct {
	texts []textCall
	lines []lineCall
}

func (b *stubBackend) NewPage(width, height float64) (Page, error) {
	p := &stubPage{}
	b.pages = append(b.pages, p)
	return p, nil
}

func (b *stubBackend) TextWidth(text string, font Font, sizePt float64) (float64, error) {
	b.measured++
	if b.measureErr != nil && b.measured > b.measureHits {
		return 0, b.measureErr
	}
	return float64(utf8.RuneCountInString(text)) * sizePt * 0.5, nil
}

func (b *stubBackend) Save(w io.Writer) error {
	b.saved = true
	_, err := io.WriteString(w, "stub")
	return err
}

func (b *stubBackend) SetMeta(meta document.Meta) { b.meta = meta }

func (p *stubPage) DrawText(x, y float64, text string, font Font, sizePt float64, color document.Color) error {
	p.texts = append(p.texts, textCall{x: x, y: y, text: text, font: font, size: sizePt, col: color})
	return nil
}

func (p *stubPage) StrokeLine(x1, y1, x2, y2, width float64, color document.Color) error {
	p.lines = append(p.lines, lineCall{x1: x1, y1: y1, x2: x2, y2: y2})
	return nil
}

// verticals 返回页面上竖线的 x 坐标（按绘制顺序）。
func (p *stubPage) verticals() []float64 {
	var xs []float64
	for _, ln := range p.lines {
		if ln.x1 == ln.x2 {
			xs = append(xs, ln.x1)
		}
	}
	return xs
}

// smallPage 为 300x400、四边 50 的页面：正文区 x∈[50,250]，y∈[50,350]。
func smallPage() PageGeometry {
	return PageGeometry{Width: 300, Height: 400, Margin: uniformMargin(50)}
}

func testOptions(geo PageGeometry) Options {
	opts := DefaultOptions()
	opts.Geometry = geo
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return opts
}

func convert(t *testing.T, doc *document.Document, geo PageGeometry) *stubBackend {
	t.Helper()
	b := &stubBackend{}
	if err := Convert(context.Background(), doc, b, io.Discard, testOptions(geo)); err != nil {
		t.Fatalf("转换失败: %v", err)
	}
	if !b.saved {
		t.Fatalf("转换成功后应保存输出")
	}
	return b
}

func text(s string) document.TextRun {
	return document.TextRun{Text: s, Style: document.DefaultStyle()}
}

func para(runs ...document.Run) *document.Paragraph {
	return &document.Paragraph{Runs: runs}
}

func cell(span int, s string) document.Cell {
	return document.Cell{Span: span, Fragments: []document.Fragment{{Text: s, Style: document.DefaultStyle()}}}
}
