package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/scroll/document"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Hello</w:t></w:r></w:p>
    <w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
  </w:body>
</w:document>`

const coreXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:title>Quarterly Report</dc:title>
  <dc:creator>Ada</dc:creator>
  <cp:keywords>finance, internal;q3</cp:keywords>
</cp:coreProperties>`

func buildZip(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("创建部件 %s 失败: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("写入部件 %s 失败: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("关闭压缩包失败: %v", err)
	}
	return buf.Bytes()
}

func TestLoadBuildsDocumentAndMeta(t *testing.T) {
	data := buildZip(t, map[string]string{documentPart: documentXML, corePropsPart: coreXML})
	path := filepath.Join(t.TempDir(), "sample.docx")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if len(doc.Blocks) != 2 {
		t.Fatalf("期望 2 个块，实际 %d", len(doc.Blocks))
	}
	if _, ok := doc.Blocks[1].(*document.Table); !ok {
		t.Fatalf("第二个块应为表格: %T", doc.Blocks[1])
	}
	if doc.Meta.Title != "Quarterly Report" || doc.Meta.Author != "Ada" {
		t.Fatalf("文档属性读取错误: %+v", doc.Meta)
	}
	want := []string{"finance", "internal", "q3"}
	if len(doc.Meta.Keywords) != len(want) {
		t.Fatalf("关键词错误: %v", doc.Meta.Keywords)
	}
	for i := range want {
		if doc.Meta.Keywords[i] != want[i] {
			t.Fatalf("关键词 %d 错误: %q", i, doc.Meta.Keywords[i])
		}
	}
}

func TestMissingDocumentPart(t *testing.T) {
	data := buildZip(t, map[string]string{"word/styles.xml": "<w:styles/>"})
	if _, err := NewReader(bytes.NewReader(data), int64(len(data))); !errors.Is(err, ErrNotDocx) {
		t.Fatalf("期望 ErrNotDocx，实际 %v", err)
	}
}

func TestNotAZip(t *testing.T) {
	data := []byte("plain text")
	if _, err := NewReader(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Fatalf("非压缩包应返回错误")
	}
}

func TestMissingPropertiesIsZero(t *testing.T) {
	data := buildZip(t, map[string]string{documentPart: documentXML})
	rd, err := NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewReader 失败: %v", err)
	}
	meta, err := rd.Properties()
	if err != nil || meta.Title != "" || meta.Keywords != nil {
		t.Fatalf("缺少 core.xml 时应返回零值: %+v %v", meta, err)
	}
}

func TestMissingBodyPropagates(t *testing.T) {
	data := buildZip(t, map[string]string{documentPart: `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"/>`})
	rd, err := NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewReader 失败: %v", err)
	}
	if _, err := rd.Load(); !errors.Is(err, document.ErrDocumentStructure) {
		t.Fatalf("期望 ErrDocumentStructure，实际 %v", err)
	}
}
