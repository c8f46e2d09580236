package document

import (
	"strconv"
	"strings"
)

// run 属性中识别的标签与属性名。
const (
	tagBold   = "w:b"
	tagItalic = "w:i"
	tagColor  = "w:color"
	tagSize   = "w:sz"
	attrVal   = "w:val"
)

// ResolveStyle 从 run 的属性节点（w:rPr，可为 nil）解析样式。
// 每个字段独立判断；缺失或格式错误的颜色、字号沿用 base 中的值，从不报错。
func ResolveStyle(rPr Element, base Style) Style {
	style := Style{Color: base.Color, SizePt: base.SizePt}
	if style.SizePt <= 0 {
		style.SizePt = DefaultSizePt
	}
	if rPr == nil {
		return style
	}
	style.Bold = toggleOn(rPr.FirstChild(tagBold))
	style.Italic = toggleOn(rPr.FirstChild(tagItalic))
	if el := rPr.FirstChild(tagColor); el != nil {
		if v, ok := el.Attr(attrVal); ok {
			if c, ok := parseHexColor(v); ok {
				style.Color = c
			}
		}
	}
	if el := rPr.FirstChild(tagSize); el != nil {
		if v, ok := el.Attr(attrVal); ok {
			if half, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && half/2 > 0 {
				style.SizePt = half / 2
			}
		}
	}
	return style
}

// toggleOn 判断 w:b / w:i 这类开关节点。存在即为开，显式的 0/false/off 为关。
func toggleOn(el Element) bool {
	if el == nil {
		return false
	}
	v, ok := el.Attr(attrVal)
	if !ok {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "0", "false", "off":
		return false
	default:
		return true
	}
}

// parseHexColor 只接受 6 位十六进制的 RRGGBB。
func parseHexColor(v string) (Color, bool) {
	if len(v) != 6 {
		return Color{}, false
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, true
}
