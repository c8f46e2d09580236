// Package docx 负责从 DOCX 压缩包中取出正文与文档属性部件。
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ByLCY/scroll/document"
	"github.com/ByLCY/scroll/xmltree"
)

const (
	documentPart  = "word/document.xml"
	corePropsPart = "docProps/core.xml"
	maxPartSize   = 64 << 20
)

// ErrNotDocx 表示压缩包中缺少 word/document.xml。
var ErrNotDocx = errors.New("不是有效的 DOCX 文件")

// Reader 按部件名索引 DOCX 压缩包。
type Reader struct {
	parts map[string]*zip.File
}

// NewReader 从任意 io.ReaderAt 读取 DOCX。
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("读取压缩包失败: %w", err)
	}
	rd := &Reader{parts: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		rd.parts[strings.TrimPrefix(f.Name, "/")] = f
	}
	if _, ok := rd.parts[documentPart]; !ok {
		return nil, fmt.Errorf("%w: 缺少 %s", ErrNotDocx, documentPart)
	}
	return rd, nil
}

// Open 将整个文件读入内存后解析。
func Open(path string) (*Reader, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开 DOCX 文件 %s: %w", path, err)
	}
	return NewReader(bytes.NewReader(content), int64(len(content)))
}

// Document 解析 word/document.xml 并返回根元素。
func (r *Reader) Document() (*xmltree.Node, error) {
	return r.parse(documentPart)
}

// Properties 读取 docProps/core.xml 中的标题、作者等信息，缺失时返回零值。
func (r *Reader) Properties() (document.Meta, error) {
	var meta document.Meta
	if _, ok := r.parts[corePropsPart]; !ok {
		return meta, nil
	}
	root, err := r.parse(corePropsPart)
	if err != nil {
		return meta, err
	}
	text := func(tag string) string {
		if el := root.FirstChild(tag); el != nil {
			return strings.TrimSpace(el.Text())
		}
		return ""
	}
	meta.Title = text("dc:title")
	meta.Subject = text("dc:subject")
	meta.Author = text("dc:creator")
	for _, kw := range strings.FieldsFunc(text("cp:keywords"), func(r rune) bool { return r == ',' || r == ';' }) {
		if kw = strings.TrimSpace(kw); kw != "" {
			meta.Keywords = append(meta.Keywords, kw)
		}
	}
	return meta, nil
}

// Parts 返回压缩包内的部件数量。
func (r *Reader) Parts() int { return len(r.parts) }

func (r *Reader) parse(name string) (*xmltree.Node, error) {
	f, ok := r.parts[name]
	if !ok {
		return nil, fmt.Errorf("部件 %s 不存在", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("打开部件 %s 失败: %w", name, err)
	}
	defer rc.Close()
	root, err := xmltree.Parse(io.LimitReader(rc, maxPartSize))
	if err != nil {
		return nil, fmt.Errorf("解析部件 %s 失败: %w", name, err)
	}
	return root, nil
}

// Load 读取 DOCX 并构建文档模型，同时附带文档属性。
func Load(path string) (*document.Document, error) {
	rd, err := Open(path)
	if err != nil {
		return nil, err
	}
	return rd.Load()
}

// Load 构建文档模型。属性部件损坏时忽略属性，不影响正文。
func (r *Reader) Load() (*document.Document, error) {
	root, err := r.Document()
	if err != nil {
		return nil, err
	}
	doc, err := document.Build(root)
	if err != nil {
		return nil, err
	}
	if meta, err := r.Properties(); err == nil {
		doc.Meta = meta
	}
	return doc, nil
}
