package layout

import (
	"fmt"
	"math"

	"github.com/ByLCY/scroll/document"
)

// cellBox 是单元格在页面上的水平位置。
type cellBox struct {
	left  float64
	width float64
	cell  document.Cell
}

// columnWidths 将表格宽度均分给每一列。
func columnWidths(tableWidth float64, cols int) []float64 {
	widths := make([]float64, cols)
	for i := range widths {
		widths[i] = tableWidth / float64(cols)
	}
	return widths
}

// rowBoxes 计算行内单元格的位置，单元格宽度为其跨越列宽之和。
func rowBoxes(row document.Row, left float64, widths []float64) []cellBox {
	boxes := make([]cellBox, 0, len(row.Cells))
	col := 0
	x := left
	for _, cell := range row.Cells {
		span := cell.Span
		if span < 1 {
			span = 1
		}
		w := 0.0
		for i := col; i < col+span && i < len(widths); i++ {
			w += widths[i]
		}
		boxes = append(boxes, cellBox{left: x, width: w, cell: cell})
		x += w
		col += span
	}
	return boxes
}

func (e *engine) cellFlow(mode flowMode, box cellBox, top, bottom float64, page Page) *flow {
	pad := e.opts.CellPadding
	return &flow{
		mode:    mode,
		backend: e.backend,
		opts:    e.opts,
		cur:     &Cursor{X: box.left + pad, Y: top - pad, Page: page},
		left:    box.left + pad,
		right:   box.left + box.width - pad,
		bottom:  bottom + pad,
	}
}

// measureRow 以与绘制相同的折行规则试排每个单元格，返回行高。
// 行高不低于 MinRowHeight，且不超过页面内容区高度。
func (e *engine) measureRow(boxes []cellBox) (float64, error) {
	pad := e.opts.CellPadding
	height := e.opts.MinRowHeight
	for _, box := range boxes {
		f := e.cellFlow(modeMeasure, box, 0, math.Inf(-1), nil)
		if err := f.cell(box.cell.Fragments); err != nil {
			return 0, err
		}
		content := -pad - f.cur.Y
		height = math.Max(height, content+2*pad)
	}
	if limit := e.opts.Geometry.ContentHeight(); height > limit {
		e.log.Debug("行高超过页面内容区，单元格文本将被截断", "height", height, "limit", limit)
		height = limit
	}
	return height, nil
}

// drawRow 在光标处绘制一行：上下边框、每个单元格的左边框与最后一个单元格的右边框，再排布单元格文本。
func (e *engine) drawRow(boxes []cellBox, height float64) error {
	cur := e.pager.Cursor()
	top, bottom := cur.Y, cur.Y-height
	if len(boxes) == 0 {
		return nil
	}
	left := boxes[0].left
	last := boxes[len(boxes)-1]
	right := last.left + last.width
	stroke := func(x1, y1, x2, y2 float64) error {
		if err := cur.Page.StrokeLine(x1, y1, x2, y2, e.opts.BorderWidth, e.opts.BorderColor); err != nil {
			return fmt.Errorf("绘制表格边框失败: %w", err)
		}
		return nil
	}
	if err := stroke(left, top, right, top); err != nil {
		return err
	}
	if err := stroke(left, bottom, right, bottom); err != nil {
		return err
	}
	for _, box := range boxes {
		if err := stroke(box.left, top, box.left, bottom); err != nil {
			return err
		}
	}
	if err := stroke(right, top, right, bottom); err != nil {
		return err
	}
	for i, box := range boxes {
		f := e.cellFlow(modeCell, box, top, bottom, cur.Page)
		if err := f.cell(box.cell.Fragments); err != nil {
			return err
		}
		if f.truncated {
			e.log.Debug("单元格文本超出行高被截断", "cell", i, "page", e.pager.Pages())
		}
	}
	return nil
}

// table 逐行测量、换页并绘制表格，行不会跨页拆分。
// 表格结束后光标下移一个默认行高，x 回到左边距。
func (e *engine) table(t *document.Table) error {
	cols := t.Columns()
	if cols == 0 {
		return fmt.Errorf("%w: 共 %d 行", ErrEmptyTable, len(t.Rows))
	}
	geo := e.opts.Geometry
	widths := columnWidths(geo.ContentWidth(), cols)
	for i, row := range t.Rows {
		boxes := rowBoxes(row, geo.Margin.Left, widths)
		height, err := e.measureRow(boxes)
		if err != nil {
			return fmt.Errorf("测量第 %d 行失败: %w", i+1, err)
		}
		if err := e.pager.EnsureSpace(height); err != nil {
			return err
		}
		if err := e.drawRow(boxes, height); err != nil {
			return fmt.Errorf("绘制第 %d 行失败: %w", i+1, err)
		}
		e.pager.Cursor().Y -= height
	}
	return e.pager.Advance(e.opts.lineHeight(document.DefaultSizePt), geo.Margin.Left)
}
