package document_test

import (
	"errors"
	"testing"

	"github.com/ByLCY/scroll/document"
	"github.com/ByLCY/scroll/xmltree"
)

func wrap(body string) string {
	return `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`
}

func build(t *testing.T, xml string) *document.Document {
	t.Helper()
	root, err := xmltree.ParseString(xml)
	if err != nil {
		t.Fatalf("解析 XML 失败: %v", err)
	}
	doc, err := document.Build(root)
	if err != nil {
		t.Fatalf("构建文档失败: %v", err)
	}
	return doc
}

// 两个 run："Hello "（24 半磅、粗体）+ "World"（斜体、红色）。
func TestBuildStyledRunsScenario(t *testing.T) {
	doc := build(t, wrap(`<w:p>
  <w:r><w:rPr><w:b/><w:sz w:val="24"/></w:rPr><w:t xml:space="preserve">Hello </w:t></w:r>
  <w:r><w:rPr><w:i/><w:color w:val="FF0000"/></w:rPr><w:t>World</w:t></w:r>
</w:p>`))
	if len(doc.Blocks) != 1 {
		t.Fatalf("期望 1 个块，实际 %d", len(doc.Blocks))
	}
	p, ok := doc.Blocks[0].(*document.Paragraph)
	if !ok {
		t.Fatalf("第一个块应为段落: %T", doc.Blocks[0])
	}
	if len(p.Runs) != 2 {
		t.Fatalf("期望 2 个 run，实际 %d", len(p.Runs))
	}
	first := p.Runs[0].(document.TextRun)
	second := p.Runs[1].(document.TextRun)
	if first.Text != "Hello " || !first.Style.Bold || first.Style.Italic || first.Style.SizePt != 12 || first.Style.Color != document.Black {
		t.Fatalf("第一个 run 样式错误: %+v", first)
	}
	if second.Text != "World" || second.Style.Bold || !second.Style.Italic || second.Style.SizePt != 12 {
		t.Fatalf("第二个 run 样式错误: %+v", second)
	}
	if second.Style.Color != (document.Color{R: 0xFF}) {
		t.Fatalf("第二个 run 应为红色: %+v", second.Style.Color)
	}
}

func TestBuildMissingBody(t *testing.T) {
	root, err := xmltree.ParseString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"/>`)
	if err != nil {
		t.Fatalf("解析 XML 失败: %v", err)
	}
	if _, err := document.Build(root); !errors.Is(err, document.ErrDocumentStructure) {
		t.Fatalf("缺少 body 应返回 ErrDocumentStructure，实际 %v", err)
	}
	if _, err := document.Build(nil); !errors.Is(err, document.ErrDocumentStructure) {
		t.Fatalf("空元素树应返回 ErrDocumentStructure，实际 %v", err)
	}
}

func TestBuildControlRunsAndSkips(t *testing.T) {
	doc := build(t, wrap(`<w:p>
  <w:r><w:tab/><w:br/><w:t></w:t><w:t>x</w:t><w:cr/></w:r>
  <w:hyperlink><w:r><w:t>link</w:t></w:r></w:hyperlink>
  <w:bookmarkStart/>
</w:p><w:sectPr/><w:p/>`))
	if len(doc.Blocks) != 2 {
		t.Fatalf("sectPr 应被跳过，期望 2 个块，实际 %d", len(doc.Blocks))
	}
	p := doc.Blocks[0].(*document.Paragraph)
	want := []string{"tab", "break", "text:x", "break", "text:link"}
	if len(p.Runs) != len(want) {
		t.Fatalf("run 数量错误: got=%d want=%d (%#v)", len(p.Runs), len(want), p.Runs)
	}
	for i, run := range p.Runs {
		var got string
		switch r := run.(type) {
		case document.TabRun:
			got = "tab"
		case document.BreakRun:
			got = "break"
		case document.TextRun:
			got = "text:" + r.Text
		}
		if got != want[i] {
			t.Fatalf("第 %d 个 run 错误: got=%s want=%s", i, got, want[i])
		}
	}
	if empty := doc.Blocks[1].(*document.Paragraph); len(empty.Runs) != 0 {
		t.Fatalf("空段落不应包含 run")
	}
}

// 段落内未指定字号的 run 沿用前一个 run 的字号，颜色重置为黑色。
func TestBuildRunningSizeInheritance(t *testing.T) {
	doc := build(t, wrap(`<w:p>
  <w:r><w:rPr><w:sz w:val="40"/><w:color w:val="00FF00"/></w:rPr><w:t>big</w:t></w:r>
  <w:r><w:rPr><w:sz w:val="oops"/><w:color w:val="auto"/></w:rPr><w:t>still</w:t></w:r>
</w:p><w:p><w:r><w:t>fresh</w:t></w:r></w:p>`))
	runs := doc.Blocks[0].(*document.Paragraph).Runs
	still := runs[1].(document.TextRun)
	if still.Style.SizePt != 20 {
		t.Fatalf("格式错误的字号应沿用段落内字号 20，实际 %d", still.Style.SizePt)
	}
	if still.Style.Color != document.Black {
		t.Fatalf("颜色应重置为黑色，实际 %+v", still.Style.Color)
	}
	fresh := doc.Blocks[1].(*document.Paragraph).Runs[0].(document.TextRun)
	if fresh.Style.SizePt != 12 {
		t.Fatalf("新段落字号应回到 12，实际 %d", fresh.Style.SizePt)
	}
}

func TestBuildTableSpansAndFragments(t *testing.T) {
	doc := build(t, wrap(`<w:tbl>
  <w:tr>
    <w:tc><w:tcPr><w:gridSpan w:val="2"/></w:tcPr><w:p><w:r><w:t>wide</w:t><w:br/><w:t>next</w:t></w:r></w:p></w:tc>
    <w:tc><w:p><w:r><w:t>a</w:t></w:r></w:p><w:p><w:r><w:tab/><w:t>b</w:t></w:r></w:p></w:tc>
  </w:tr>
  <w:tr>
    <w:tc><w:tcPr><w:gridSpan w:val="x"/></w:tcPr><w:p/></w:tc>
    <w:tc><w:tcPr><w:gridSpan w:val="0"/></w:tcPr></w:tc>
  </w:tr>
</w:tbl>`))
	table, ok := doc.Blocks[0].(*document.Table)
	if !ok {
		t.Fatalf("应为表格: %T", doc.Blocks[0])
	}
	if got := table.Columns(); got != 3 {
		t.Fatalf("列数应为 3，实际 %d", got)
	}
	r0 := table.Rows[0]
	if r0.Cells[0].Span != 2 || r0.Cells[1].Span != 1 {
		t.Fatalf("gridSpan 读取错误: %+v", r0.Cells)
	}
	join := func(c document.Cell) string {
		s := ""
		for _, f := range c.Fragments {
			s += f.Text
		}
		return s
	}
	if got := join(r0.Cells[0]); got != "wide\nnext" {
		t.Fatalf("单元格换行错误: %q", got)
	}
	if got := join(r0.Cells[1]); got != "a\n\tb" {
		t.Fatalf("单元格多段落/制表符错误: %q", got)
	}
	r1 := table.Rows[1]
	if r1.Columns() != 2 || r1.Cells[0].Span != 1 || r1.Cells[1].Span != 1 {
		t.Fatalf("非法 gridSpan 应回退为 1: %+v", r1.Cells)
	}
}

func TestBuildNormalizesText(t *testing.T) {
	doc := build(t, wrap("<w:p><w:r><w:t>e\u0301</w:t></w:r></w:p>"))
	run := doc.Blocks[0].(*document.Paragraph).Runs[0].(document.TextRun)
	if run.Text != "\u00e9" {
		t.Fatalf("文本应做 NFC 规范化: %q", run.Text)
	}
}

func TestBindInterpolatesTextOnly(t *testing.T) {
	doc := &document.Document{Blocks: []document.Block{
		&document.Paragraph{Runs: []document.Run{document.TextRun{Text: "Dear ${name}"}, document.TabRun{}}},
		&document.Table{Rows: []document.Row{{Cells: []document.Cell{{Span: 1, Fragments: []document.Fragment{{Text: "${total|0}"}}}}}}},
	}}
	bound := document.Bind(doc, map[string]any{"name": "Ada"})
	p := bound.Blocks[0].(*document.Paragraph)
	if got := p.Runs[0].(document.TextRun).Text; got != "Dear Ada" {
		t.Fatalf("段落占位符未替换: %q", got)
	}
	if _, ok := p.Runs[1].(document.TabRun); !ok {
		t.Fatalf("控制 run 应保持不变")
	}
	cell := bound.Blocks[1].(*document.Table).Rows[0].Cells[0]
	if cell.Fragments[0].Text != "0" || cell.Span != 1 {
		t.Fatalf("单元格占位符未替换: %+v", cell)
	}
	if orig := doc.Blocks[0].(*document.Paragraph).Runs[0].(document.TextRun).Text; orig != "Dear ${name}" {
		t.Fatalf("原文档不应被修改: %q", orig)
	}
}

func TestRowColumnsTreatsZeroSpanAsOne(t *testing.T) {
	row := document.Row{Cells: []document.Cell{{}, {Span: 2}, {Span: -1}}}
	if got := row.Columns(); got != 4 {
		t.Fatalf("Span 小于 1 的单元格应按 1 列计，期望 4，实际 %d", got)
	}
	table := &document.Table{Rows: []document.Row{{Cells: []document.Cell{{Fragments: []document.Fragment{{Text: "x"}}}}}}}
	if got := table.Columns(); got != 1 {
		t.Fatalf("只含零值 Span 单元格的表格应有 1 列，实际 %d", got)
	}
}
