package layout

import (
	"fmt"
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/ByLCY/scroll/document"
)

// cellEpsilon 吸收单元格测量与绘制两遍之间的浮点误差。
const cellEpsilon = 1e-6

// Tokenize 将文本切分为交替的空白/非空白最大片段，拼接后与原文逐字节一致。
func Tokenize(text string) []string {
	var tokens []string
	start := 0
	prevSpace := false
	for i, r := range text {
		space := unicode.IsSpace(r)
		if i > start && space != prevSpace {
			tokens = append(tokens, text[start:i])
			start = i
		}
		prevSpace = space
	}
	if start < len(text) {
		tokens = append(tokens, text[start:])
	}
	return tokens
}

func sizeOf(s document.Style) float64 {
	if s.SizePt <= 0 {
		return document.DefaultSizePt
	}
	return float64(s.SizePt)
}

func isSpaceToken(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return unicode.IsSpace(r)
}

type flowMode int

const (
	modeBody    flowMode = iota // 正文：越过底部界限时换页
	modeCell                    // 单元格：越过底部界限的文本被丢弃
	modeMeasure                 // 只推进光标，不绘制
)

// placed 是已确定 x、等待基线的片段。
type placed struct {
	x     float64
	text  string
	style document.Style
}

// flow 在 [left, right] 的水平范围内做贪心折行。
// 单元格与测量模式按行缓冲：一行结束时以行内最大行高确定基线后再绘制。
type flow struct {
	mode      flowMode
	backend   Backend
	pager     *Paginator
	opts      Options
	cur       *Cursor
	left      float64
	right     float64
	bottom    float64
	truncated bool

	line    []placed
	lineMax float64
}

func (f *flow) lineHeight(sizePt int) float64 {
	if sizePt <= 0 {
		sizePt = document.DefaultSizePt
	}
	return f.opts.lineHeight(sizePt)
}

// newline 结束当前行。正文模式下移 lh 并按底部界限换页；
// 单元格与测量模式交给 endLine，lh 只用于空行。
func (f *flow) newline(lh float64) error {
	if f.mode == modeBody {
		return f.pager.Advance(lh, f.left)
	}
	return f.endLine(lh)
}

// endLine 以行内最大行高下移基线并绘制缓冲的片段。基线越过单元格底部时整行丢弃并停止排布。
func (f *flow) endLine(fallback float64) error {
	lh := f.lineMax
	if lh == 0 {
		lh = fallback
	}
	items := f.line
	f.line, f.lineMax = nil, 0
	f.cur.Y -= lh
	f.cur.X = f.left
	if f.mode != modeCell {
		return nil
	}
	if f.cur.Y < f.bottom-cellEpsilon {
		f.truncated = true
		return nil
	}
	for _, it := range items {
		if err := f.cur.Page.DrawText(it.x, f.cur.Y, it.text, FontOf(it.style), sizeOf(it.style), it.style.Color); err != nil {
			return fmt.Errorf("绘制文本失败: %w", err)
		}
	}
	return nil
}

func (f *flow) tab() {
	f.cur.X += f.opts.TabWidth
}

// text 按词排布一段同样式文本。
func (f *flow) text(s string, style document.Style) error {
	for _, tok := range Tokenize(s) {
		if f.truncated {
			return nil
		}
		var err error
		if isSpaceToken(tok) {
			err = f.space(tok, style)
		} else {
			err = f.word(tok, style)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (f *flow) measure(s string, style document.Style) (float64, error) {
	w, err := f.backend.TextWidth(s, FontOf(style), sizeOf(style))
	if err != nil {
		return 0, fmt.Errorf("测量文本 %q 失败: %w", s, err)
	}
	return w, nil
}

// word 放置一个非空白片段。只有当前行已有内容时才折行，行首的超宽片段原样绘制并越过右边界。
func (f *flow) word(tok string, style document.Style) error {
	w, err := f.measure(tok, style)
	if err != nil {
		return err
	}
	if f.cur.X+w > f.right && f.cur.X > f.left+cellEpsilon {
		if err := f.newline(f.lineHeight(style.SizePt)); err != nil {
			return err
		}
		if f.truncated {
			return nil
		}
	}
	if f.mode == modeBody {
		if err := f.cur.Page.DrawText(f.cur.X, f.cur.Y, tok, FontOf(style), sizeOf(style), style.Color); err != nil {
			return fmt.Errorf("绘制文本失败: %w", err)
		}
	} else {
		f.line = append(f.line, placed{x: f.cur.X, text: tok, style: style})
		f.lineMax = math.Max(f.lineMax, f.lineHeight(style.SizePt))
	}
	f.cur.X += w
	return nil
}

// space 推进空白片段：普通空白按测量宽度前进，\t 前进制表宽度，\n 换行，\r 忽略。
func (f *flow) space(tok string, style document.Style) error {
	start := -1
	flush := func(end int) error {
		if start < 0 {
			return nil
		}
		w, err := f.measure(tok[start:end], style)
		if err != nil {
			return err
		}
		f.cur.X += w
		start = -1
		return nil
	}
	for i, r := range tok {
		switch r {
		case '\n', '\t', '\r':
			if err := flush(i); err != nil {
				return err
			}
			switch r {
			case '\n':
				if err := f.newline(f.lineHeight(style.SizePt)); err != nil {
					return err
				}
				if f.truncated {
					return nil
				}
			case '\t':
				f.tab()
			}
		default:
			if start < 0 {
				start = i
			}
		}
	}
	return flush(len(tok))
}

// paragraph 依次排布段落中的 run，最后追加一次段落行距。
// 制表与换行使用段落内最近一个文本 run 的字号。
func (f *flow) paragraph(p *document.Paragraph) error {
	size := document.DefaultSizePt
	for _, run := range p.Runs {
		switch r := run.(type) {
		case document.TextRun:
			if r.Style.SizePt > 0 {
				size = r.Style.SizePt
			}
			if err := f.text(r.Text, r.Style); err != nil {
				return err
			}
		case document.TabRun:
			f.tab()
		case document.BreakRun:
			if err := f.newline(f.lineHeight(size)); err != nil {
				return err
			}
		}
	}
	return f.newline(f.lineHeight(size))
}

// cell 排布单元格片段，每行基线位于上一行基线（首行为起始 y）下方该行最大行高处。
func (f *flow) cell(frags []document.Fragment) error {
	if len(frags) == 0 {
		return nil
	}
	for _, frag := range frags {
		if f.truncated {
			return nil
		}
		if err := f.text(frag.Text, frag.Style); err != nil {
			return err
		}
	}
	if f.truncated {
		return nil
	}
	return f.endLine(f.lineHeight(frags[len(frags)-1].Style.SizePt))
}
