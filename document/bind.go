package document

import "github.com/ByLCY/scroll/binding"

// Bind 返回一个新文档，其中所有文本中的 ${path} 占位符已替换为 data 中的值。
// 原文档保持不变。
func Bind(doc *Document, data any) *Document {
	if doc == nil || data == nil {
		return doc
	}
	out := &Document{Meta: doc.Meta, Blocks: make([]Block, 0, len(doc.Blocks))}
	for _, block := range doc.Blocks {
		switch b := block.(type) {
		case *Paragraph:
			p := &Paragraph{Runs: make([]Run, len(b.Runs))}
			for i, run := range b.Runs {
				if tr, ok := run.(TextRun); ok {
					tr.Text = binding.Interpolate(tr.Text, data)
					run = tr
				}
				p.Runs[i] = run
			}
			out.Blocks = append(out.Blocks, p)
		case *Table:
			t := &Table{Rows: make([]Row, len(b.Rows))}
			for i, row := range b.Rows {
				cells := make([]Cell, len(row.Cells))
				for j, cell := range row.Cells {
					frags := make([]Fragment, len(cell.Fragments))
					for k, f := range cell.Fragments {
						f.Text = binding.Interpolate(f.Text, data)
						frags[k] = f
					}
					cells[j] = Cell{Span: cell.Span, Fragments: frags}
				}
				t.Rows[i] = Row{Cells: cells}
			}
			out.Blocks = append(out.Blocks, t)
		default:
			out.Blocks = append(out.Blocks, block)
		}
	}
	return out
}
