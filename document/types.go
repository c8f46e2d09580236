// Package document 定义排版引擎消费的文档模型，并负责从元素树构建它。
package document

import "fmt"

// Element 是只读的元素树视图。缺失时方法返回 nil 接口，而不是带类型的空指针。
type Element interface {
	Tag() string
	// FirstChild 返回第一个匹配 tag 的子元素，tag 为空时匹配任意元素。
	FirstChild(tag string) Element
	// NextSibling 返回之后第一个匹配 tag 的兄弟元素，tag 为空时匹配任意元素。
	NextSibling(tag string) Element
	Attr(name string) (string, bool)
	Text() string
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Black 是默认文字颜色。
var Black = Color{}

// Hex 以 RRGGBB 形式输出颜色。
func (c Color) Hex() string { return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B) }

// DefaultSizePt 是未指定字号时使用的磅值。
const DefaultSizePt = 12

// Style 描述一个文本片段的字体样式。
type Style struct {
	Bold   bool  `json:"bold"`
	Italic bool  `json:"italic"`
	Color  Color `json:"color"`
	SizePt int   `json:"sizePt"`
}

// DefaultStyle 返回 {常规, 黑色, 12pt}。
func DefaultStyle() Style {
	return Style{Color: Black, SizePt: DefaultSizePt}
}

// Run 是段落中的最小单元：文本、制表符或换行。
type Run interface {
	isRun()
}

// TextRun 是一段共享同一样式的文本。
type TextRun struct {
	Text  string
	Style Style
}

// TabRun 将水平游标前进固定的制表宽度。
type TabRun struct{}

// BreakRun 强制换行。
type BreakRun struct{}

func (TextRun) isRun()  {}
func (TabRun) isRun()   {}
func (BreakRun) isRun() {}

// Block 是文档流中的顶层单元：段落或表格。
type Block interface {
	isBlock()
}

// Paragraph 是有序的 Run 序列。没有 Run 的段落仍占用一行高度。
type Paragraph struct {
	Runs []Run
}

// Fragment 是单元格中的一段带样式文本，Text 中可以包含 "\n" 与 "\t"。
type Fragment struct {
	Text  string
	Style Style
}

// Cell 是表格单元格，Span 为其占用的逻辑列数（≥1）。
type Cell struct {
	Span      int
	Fragments []Fragment
}

// Row 是单元格序列。
type Row struct {
	Cells []Cell
}

// Columns 返回该行占用的列数，即各单元格 Span 之和；Span 小于 1 按 1 计。
func (r Row) Columns() int {
	n := 0
	for _, c := range r.Cells {
		n += max(c.Span, 1)
	}
	return n
}

// Table 是行序列，各行占用的列数可以不同。
type Table struct {
	Rows []Row
}

// Columns 返回表格的布局列数：所有行占用列数的最大值。
func (t *Table) Columns() int {
	n := 0
	for _, r := range t.Rows {
		if c := r.Columns(); c > n {
			n = c
		}
	}
	return n
}

func (*Paragraph) isBlock() {}
func (*Table) isBlock()     {}

// Meta 保存文档属性，最终写入 PDF 元信息。
type Meta struct {
	Title    string   `json:"title"`
	Subject  string   `json:"subject"`
	Author   string   `json:"author"`
	Keywords []string `json:"keywords"`
}

// Document 是构建完成后不再修改的块序列。
type Document struct {
	Blocks []Block
	Meta   Meta
}
