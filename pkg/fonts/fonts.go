// Package fonts 内置 Go 字体的加载、缓存和文本换行
//
// 依赖 ebiten 的文本渲染，因此与纯计算的 utils 分开，
// 让布局、插值、配置和命令行检查工具不链接图形栈。
package fonts

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Weight 内置字体字重
type Weight int

const (
	Regular Weight = iota
	Bold
)

// Cache 内置 Go 字体的字号缓存
//
// 字体源只解析一次，同一字重和字号的 GoTextFace 复用同一个实例。
type Cache struct {
	sources map[Weight]*text.GoTextFaceSource
	faces   map[string]*text.GoTextFace
}

// NewCache 解析内置字体
func NewCache() (*Cache, error) {
	fc := &Cache{
		sources: make(map[Weight]*text.GoTextFaceSource),
		faces:   make(map[string]*text.GoTextFace),
	}

	for weight, data := range map[Weight][]byte{
		Regular: goregular.TTF,
		Bold:    gobold.TTF,
	} {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create font source (weight %d): %w", weight, err)
		}
		fc.sources[weight] = source
	}
	return fc, nil
}

// Face 返回指定字重和字号的字体
func (fc *Cache) Face(weight Weight, size float64) *text.GoTextFace {
	key := fmt.Sprintf("%d:%.1f", weight, size)
	if face, ok := fc.faces[key]; ok {
		return face
	}

	source, ok := fc.sources[weight]
	if !ok {
		source = fc.sources[Regular]
	}
	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	fc.faces[key] = face
	return face
}

// WrapText 将文本按指定宽度自动换行
//
// 优先在空格处断行；单个单词超过 maxWidth 时按字符强制断开。
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}
	if measureWidth(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(textStr) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measureWidth(candidate, font) <= maxWidth {
			current = candidate
			continue
		}

		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		if measureWidth(word, font) <= maxWidth {
			current = word
			continue
		}

		// 超长单词
		for _, r := range word {
			next := current + string(r)
			if current != "" && measureWidth(next, font) > maxWidth {
				lines = append(lines, current)
				next = string(r)
			}
			current = next
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = []string{textStr}
	}
	return lines
}

// measureWidth 测量文本宽度
func measureWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}
