// Package dsl 解析页面设置描述，例如 "A4 portrait margin 50pt" 或 "210mm x 297mm margin 2cm 1.5cm"。
package dsl

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	pageLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Length", Pattern: `(?:\d+\.\d+|\d+|\.\d+)(?:pt|mm|cm|in)?`},
		{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[,;]`},
	})

	pageParser = participle.MustBuild[PageSpec](
		participle.Lexer(pageLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.CaseInsensitive("Ident"),
	)
)

// PageSpec 是页面设置的语法树：纸张（预设名或自定义宽高）、方向与边距。
type PageSpec struct {
	Pos         lexer.Position `parser:"" json:"-"`
	Custom      *Dimensions    `parser:"(  @@"`
	Size        string         `parser:" | @Ident )"`
	Orientation string         `parser:"@( 'portrait' | 'landscape' )?"`
	Margin      []string       `parser:"( 'margin' @Length ( ','? @Length )* )? ';'?"`
}

// Dimensions 描述自定义纸张尺寸，例如 "210mm x 297mm"。
type Dimensions struct {
	Width  string `parser:"@Length 'x'"`
	Height string `parser:"@Length"`
}

// Landscape 表示是否横向。
func (p *PageSpec) Landscape() bool {
	return strings.EqualFold(p.Orientation, "landscape")
}

// String 还原为规范形式，便于日志输出。
func (p *PageSpec) String() string {
	var b strings.Builder
	if p.Custom != nil {
		fmt.Fprintf(&b, "%s x %s", p.Custom.Width, p.Custom.Height)
	} else {
		b.WriteString(p.Size)
	}
	if p.Orientation != "" {
		b.WriteString(" " + strings.ToLower(p.Orientation))
	}
	if len(p.Margin) > 0 {
		b.WriteString(" margin " + strings.Join(p.Margin, " "))
	}
	return b.String()
}

// Parse 从 io.Reader 解析页面设置。
func Parse(r io.Reader) (*PageSpec, error) {
	return pageParser.Parse("", r)
}

// ParseString 从字符串解析页面设置。
func ParseString(input string) (*PageSpec, error) {
	return pageParser.ParseString("", input)
}
