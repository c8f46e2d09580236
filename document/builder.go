package document

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrDocumentStructure 表示元素树缺少 body，无法生成任何内容。
var ErrDocumentStructure = errors.New("文档结构无效")

const (
	tagBody      = "w:body"
	tagParagraph = "w:p"
	tagTable     = "w:tbl"
	tagRow       = "w:tr"
	tagCell      = "w:tc"
	tagCellProps = "w:tcPr"
	tagGridSpan  = "w:gridSpan"
	tagRun       = "w:r"
	tagRunProps  = "w:rPr"
	tagText      = "w:t"
	tagTab       = "w:tab"
	tagBreak     = "w:br"
	tagCarriage  = "w:cr"
)

// 段落中包裹 run 的容器，其中的文本同样需要输出。
var runContainers = map[string]bool{
	"w:hyperlink": true,
	"w:ins":       true,
	"w:smartTag":  true,
}

// Build 遍历元素树，按文档顺序生成段落与表格。
// root 可以是 w:document，也可以直接是 w:body。
func Build(root Element) (*Document, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: 元素树为空", ErrDocumentStructure)
	}
	body := root
	if root.Tag() != tagBody {
		body = root.FirstChild(tagBody)
	}
	if body == nil {
		return nil, fmt.Errorf("%w: 缺少 %s 元素", ErrDocumentStructure, tagBody)
	}

	doc := &Document{}
	for el := body.FirstChild(""); el != nil; el = el.NextSibling("") {
		switch el.Tag() {
		case tagParagraph:
			doc.Blocks = append(doc.Blocks, buildParagraph(el))
		case tagTable:
			doc.Blocks = append(doc.Blocks, buildTable(el))
		}
		// 其余元素（sectPr、bookmark 等）不参与排版
	}
	return doc, nil
}

// buildParagraph 收集段落内的 run。字号沿用段落内最近一次解析出的值，颜色与粗斜体逐 run 重置。
func buildParagraph(p Element) *Paragraph {
	para := &Paragraph{}
	running := DefaultSizePt
	var visit func(parent Element)
	visit = func(parent Element) {
		for el := parent.FirstChild(""); el != nil; el = el.NextSibling("") {
			switch {
			case el.Tag() == tagRun:
				style := ResolveStyle(el.FirstChild(tagRunProps), Style{Color: Black, SizePt: running})
				running = style.SizePt
				para.Runs = append(para.Runs, runsOf(el, style)...)
			case runContainers[el.Tag()]:
				visit(el)
			}
		}
	}
	visit(p)
	return para
}

func runsOf(r Element, style Style) []Run {
	var runs []Run
	for el := r.FirstChild(""); el != nil; el = el.NextSibling("") {
		switch el.Tag() {
		case tagText:
			text := el.Text()
			if text == "" {
				continue
			}
			runs = append(runs, TextRun{Text: norm.NFC.String(text), Style: style})
		case tagTab:
			runs = append(runs, TabRun{})
		case tagBreak, tagCarriage:
			runs = append(runs, BreakRun{})
		}
	}
	return runs
}

func buildTable(tbl Element) *Table {
	table := &Table{}
	for tr := tbl.FirstChild(tagRow); tr != nil; tr = tr.NextSibling(tagRow) {
		var row Row
		for tc := tr.FirstChild(tagCell); tc != nil; tc = tc.NextSibling(tagCell) {
			row.Cells = append(row.Cells, buildCell(tc))
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func buildCell(tc Element) Cell {
	cell := Cell{Span: gridSpan(tc)}
	first := true
	for p := tc.FirstChild(tagParagraph); p != nil; p = p.NextSibling(tagParagraph) {
		para := buildParagraph(p)
		if !first {
			cell.Fragments = append(cell.Fragments, Fragment{Text: "\n", Style: lastStyle(cell.Fragments)})
		}
		first = false
		running := DefaultStyle()
		for _, run := range para.Runs {
			switch r := run.(type) {
			case TextRun:
				running = r.Style
				cell.Fragments = append(cell.Fragments, Fragment{Text: r.Text, Style: r.Style})
			case TabRun:
				cell.Fragments = append(cell.Fragments, Fragment{Text: "\t", Style: running})
			case BreakRun:
				cell.Fragments = append(cell.Fragments, Fragment{Text: "\n", Style: running})
			}
		}
	}
	return cell
}

func gridSpan(tc Element) int {
	props := tc.FirstChild(tagCellProps)
	if props == nil {
		return 1
	}
	span := props.FirstChild(tagGridSpan)
	if span == nil {
		return 1
	}
	v, ok := span.Attr(attrVal)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func lastStyle(frags []Fragment) Style {
	if len(frags) == 0 {
		return DefaultStyle()
	}
	return frags[len(frags)-1].Style
}
