package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
)

// FieldCount 每行必需的字段数
const FieldCount = 4

// maxLineBytes 单行最大长度
const maxLineBytes = 64 * 1024

var headerFields = [FieldCount]string{"id", "name", "department", "position"}

// ErrEmpty 文件中没有任何记录
var ErrEmpty = errors.New("no records in file")

// ParseError 单行格式错误，Error() 返回可直接展示给用户的提示
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Parse 解析制表符分隔的数据记录
//
// 校验规则：
//   - 每行至少 4 个字段，前 4 个都不能为空，多余字段忽略
//   - id 必须是数值（允许小数）且不能重复
//   - 首行若为 id/name/department/position 表头则跳过
//   - 空行忽略
func Parse(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)

	records := make([]Record, 0, 32)
	seen := make(map[float64]int)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(records) == 0 && len(seen) == 0 && isHeader(fields) {
			continue
		}

		if len(fields) < FieldCount {
			return nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("expected %d tab-separated fields, got %d", FieldCount, len(fields))}
		}
		fields = fields[:FieldCount]

		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
			if fields[i] == "" {
				return nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("field %s must not be empty", headerFields[i])}
			}
		}

		id, err := parseID(fields[0])
		if err != nil {
			return nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("id %q is not numeric", fields[0])}
		}
		if first, dup := seen[id]; dup {
			return nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("duplicate id %s (first seen on line %d)", fields[0], first)}
		}
		seen[id] = lineNo

		records = append(records, Record{
			ID:         fields[0],
			Name:       fields[1],
			Department: fields[2],
			Position:   fields[3],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	return records, nil
}

// LoadFile 从磁盘加载数据文件
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// LoadFS 从文件系统（拖放文件、嵌入资源）加载数据文件
func LoadFS(fsys fs.FS, name string) ([]Record, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", name, err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return records, nil
}

// ErrNoDataFile 文件系统中找不到可加载的数据文件
var ErrNoDataFile = errors.New("no .tsv or .txt file found")

// dataExtensions 按优先级排列的数据文件扩展名
var dataExtensions = []string{".tsv", ".txt"}

// FindDataFile 返回 fsys 中第一个数据文件的路径（按扩展名优先级，同级按路径字典序）
//
// 拖放多个文件时只加载其中一个
func FindDataFile(fsys fs.FS) (string, error) {
	found := make(map[string]string, len(dataExtensions))
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(path.Ext(p))
		if _, seen := found[ext]; !seen {
			found[ext] = p
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to scan dropped files: %w", err)
	}
	for _, ext := range dataExtensions {
		if p, ok := found[ext]; ok {
			return p, nil
		}
	}
	return "", ErrNoDataFile
}

func isHeader(fields []string) bool {
	if len(fields) < FieldCount {
		return false
	}
	for i, f := range fields[:FieldCount] {
		if !strings.EqualFold(strings.TrimSpace(f), headerFields[i]) {
			return false
		}
	}
	return true
}
