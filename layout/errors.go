package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrResource 表示后端无法提供所需的字体等资源，转换终止。
	ErrResource = errors.New("排版资源不可用")
	// ErrEmptyTable 表示表格计算出的列数为 0，该表格被跳过。
	ErrEmptyTable = errors.New("表格没有任何列")
	// ErrInvalidPage 表示页面设置无效或扣除边距后没有可用区域。
	ErrInvalidPage = errors.New("页面设置无效")
)

// ConversionError 记录导致转换终止的块序号与原始错误。
type ConversionError struct {
	Block int
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("处理第 %d 个块失败: %v", e.Block+1, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }
