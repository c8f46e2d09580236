package fonts

import (
	"bytes"
	"testing"
)

func TestLoadAllVariants(t *testing.T) {
	for _, family := range Families() {
		var variants [][]byte
		for _, bold := range []bool{false, true} {
			for _, italic := range []bool{false, true} {
				data, err := Load(family, bold, italic)
				if err != nil {
					t.Fatalf("加载 %s 失败: %v", family, err)
				}
				// sfnt 文件以 0x00010000、"true" 或 "OTTO" 开头。
				if len(data) < 4 || !(bytes.Equal(data[:4], []byte{0, 1, 0, 0}) || string(data[:4]) == "true" || string(data[:4]) == "OTTO") {
					t.Fatalf("%s 变体 %d 不是字体数据", family, Variant(bold, italic))
				}
				variants = append(variants, data)
			}
		}
		for i := range variants {
			for j := i + 1; j < len(variants); j++ {
				if bytes.Equal(variants[i], variants[j]) {
					t.Fatalf("%s 的变体 %d 与 %d 不应相同", family, i, j)
				}
			}
		}
	}
}

func TestLoadDefaultsAndUnknown(t *testing.T) {
	def, err := Load("", false, false)
	if err != nil {
		t.Fatalf("默认字体加载失败: %v", err)
	}
	goRegular, _ := Load(Go, false, false)
	if !bytes.Equal(def, goRegular) {
		t.Fatalf("空字体族应回退到 Go 字体")
	}
	if _, err := Load("comic-sans", false, false); err == nil {
		t.Fatalf("未知字体族应返回错误")
	}
}
