package layout

import (
	"fmt"
	"log/slog"
)

// Cursor 是当前绘制位置与活动页面，单次转换内独占、按指针传递。
type Cursor struct {
	X, Y float64
	Page Page
}

// Paginator 持有当前页面与纵向光标，负责在溢出时创建新页面。
type Paginator struct {
	backend Backend
	geo     PageGeometry
	log     *slog.Logger
	cursor  *Cursor
	pages   int
}

func newPaginator(backend Backend, geo PageGeometry, log *slog.Logger) *Paginator {
	return &Paginator{
		backend: backend,
		geo:     geo,
		log:     log,
		cursor:  &Cursor{X: geo.Margin.Left, Y: geo.Top()},
	}
}

// Cursor 返回共享的光标。
func (p *Paginator) Cursor() *Cursor { return p.cursor }

// Pages 返回已创建的页数。
func (p *Paginator) Pages() int { return p.pages }

// NewPage 创建新页面并把光标 y 重置到页面顶部，x 保持不变。
func (p *Paginator) NewPage() error {
	page, err := p.backend.NewPage(p.geo.Width, p.geo.Height)
	if err != nil {
		return fmt.Errorf("创建第 %d 页失败: %w", p.pages+1, err)
	}
	p.pages++
	p.cursor.Page = page
	p.cursor.Y = p.geo.Top()
	p.log.Debug("新建页面", "page", p.pages, "width", p.geo.Width, "height", p.geo.Height)
	return nil
}

// EnsureSpace 在剩余空间不足 height 时换页。
func (p *Paginator) EnsureSpace(height float64) error {
	if p.cursor.Page != nil && p.cursor.Y-height >= p.geo.Bottom() {
		return nil
	}
	return p.NewPage()
}

// Advance 下移一行并把 x 复位到 left，光标越过底部界限时换页。
func (p *Paginator) Advance(lineHeight, left float64) error {
	p.cursor.Y -= lineHeight
	p.cursor.X = left
	if p.cursor.Y < p.geo.Bottom() {
		return p.NewPage()
	}
	return nil
}
