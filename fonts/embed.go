// Package fonts 提供内置字体数据，渲染器无需依赖系统字体即可输出 PDF。
package fonts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10bolditalic"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体族名称。
const (
	Go          = "go"
	LatinModern = "latin-modern"
)

// 每个字体族按 regular、bold、italic、bold-italic 的顺序排列。
var families = map[string][4][]byte{
	Go:          {goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF},
	LatinModern: {lmroman10regular.TTF, lmroman10bold.TTF, lmroman10italic.TTF, lmroman10bolditalic.TTF},
}

// Load 返回内置字体族中指定变体的 TTF 数据。family 为空时使用 Go 字体。
func Load(family string, bold, italic bool) ([]byte, error) {
	name := strings.ToLower(strings.TrimSpace(family))
	if name == "" {
		name = Go
	}
	faces, ok := families[name]
	if !ok {
		return nil, fmt.Errorf("未知的内置字体族 %q（可选：%s）", family, strings.Join(Families(), ", "))
	}
	return faces[Variant(bold, italic)], nil
}

// Variant 返回变体下标：0 regular、1 bold、2 italic、3 bold-italic。
func Variant(bold, italic bool) int {
	i := 0
	if bold {
		i |= 1
	}
	if italic {
		i |= 2
	}
	return i
}

// Families 返回全部内置字体族名称。
func Families() []string {
	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
