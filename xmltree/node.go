package xmltree

import "github.com/ByLCY/scroll/document"

var _ document.Element = (*Node)(nil)

// Tag 返回带前缀的标签名，例如 "w:p"。
func (n *Node) Tag() string { return n.tag }

// FirstChild 返回第一个标签匹配的子元素；tag 为空时匹配任意元素。
func (n *Node) FirstChild(tag string) document.Element {
	if c := n.firstChild(tag); c != nil {
		return c
	}
	return nil
}

// NextSibling 返回之后第一个标签匹配的兄弟元素；tag 为空时匹配任意元素。
func (n *Node) NextSibling(tag string) document.Element {
	if s := n.nextSibling(tag); s != nil {
		return s
	}
	return nil
}

// Attr 按带前缀的属性名读取属性值。
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// Text 返回元素自身的字符数据（不含子元素）。
func (n *Node) Text() string { return n.text.String() }

// Children 返回子元素数量。
func (n *Node) Children() int { return len(n.children) }

func (n *Node) firstChild(tag string) *Node {
	for _, c := range n.children {
		if tag == "" || c.tag == tag {
			return c
		}
	}
	return nil
}

func (n *Node) nextSibling(tag string) *Node {
	if n.parent == nil {
		return nil
	}
	siblings := n.parent.children
	for i := n.index + 1; i < len(siblings); i++ {
		if tag == "" || siblings[i].tag == tag {
			return siblings[i]
		}
	}
	return nil
}
