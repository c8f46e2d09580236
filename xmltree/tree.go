// Package xmltree 将 XML 解析为只读的元素树，供文档模型构建时按标签名导航。
package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// 常见 OOXML 命名空间与约定前缀。未登记的命名空间仅保留本地名。
var knownPrefixes = map[string]string{
	"http://schemas.openxmlformats.org/wordprocessingml/2006/main":              "w",
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships":       "r",
	"http://schemas.openxmlformats.org/officeDocument/2006/math":                "m",
	"http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing":    "wp",
	"http://schemas.openxmlformats.org/drawingml/2006/main":                     "a",
	"http://schemas.openxmlformats.org/markup-compatibility/2006":               "mc",
	"http://schemas.microsoft.com/office/word/2010/wordml":                      "w14",
	"http://schemas.openxmlformats.org/package/2006/metadata/core-properties":   "cp",
	"http://purl.org/dc/elements/1.1/":                                          "dc",
	"http://purl.org/dc/terms/":                                                 "dcterms",
	"http://www.w3.org/XML/1998/namespace":                                      "xml",
	"http://schemas.openxmlformats.org/officeDocument/2006/extended-properties": "ep",
}

// ErrEmpty 表示输入中没有任何元素。
var ErrEmpty = errors.New("xmltree: 文档中没有根元素")

// Node 是一个不可变的元素节点。
type Node struct {
	tag      string
	attrs    map[string]string
	text     strings.Builder
	children []*Node
	parent   *Node
	index    int // 在父节点 children 中的位置
}

// Parse 读取完整的 XML 并返回根元素。
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xmltree: 解析失败: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{tag: qualify(t.Name), attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				n.attrs[qualify(a.Name)] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("xmltree: 存在多个根元素 %s", n.tag)
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				n.parent = parent
				n.index = len(parent.children)
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}
	if root == nil {
		return nil, ErrEmpty
	}
	return root, nil
}

// ParseString 是 Parse 的字符串版本，主要用于测试。
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

func qualify(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	if prefix, ok := knownPrefixes[name.Space]; ok {
		return prefix + ":" + name.Local
	}
	// 未声明的前缀（如缺少 xmlns 的片段）会被 encoding/xml 原样放在 Space 中
	if !strings.Contains(name.Space, "/") && !strings.Contains(name.Space, ":") {
		return name.Space + ":" + name.Local
	}
	return name.Local
}
