package systems

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/cardgallery/pkg/dataset"
	"github.com/decker502/cardgallery/pkg/fonts"
	"github.com/decker502/cardgallery/pkg/utils"
)

const (
	tableMarginX    = 24.0
	tableMarginTop  = 72.0
	tableMarginBot  = 72.0
	tableRowHeight  = 24.0
	tablePadding    = 10.0
	tableFontSize   = 15.0
	tableFadeSecond = 0.3
)

// tableColumns 列标题和宽度（像素）
var tableColumns = []struct {
	title string
	width float64
}{
	{"ID", 70},
	{"Name", 150},
	{"Department", 130},
	{"Position", 170},
}

var (
	tableBackground = color.NRGBA{0, 16, 20, 200}
	tableHeaderBg   = color.NRGBA{0, 127, 127, 160}
	tableRuleColor  = color.NRGBA{127, 255, 255, 60}
)

// TableRenderSystem 表格视图中显示的数据表
//
// 显示时在左侧叠加一个半透明面板，逐行列出记录，面板淡入出现。
// 放不下的行折叠为最后一行的 "... N more"。
type TableRenderSystem struct {
	fonts   *fonts.Cache
	rows    [][4]string
	visible bool
	fade    float64
}

// NewTableRenderSystem 创建表格渲染系统，fc 为 nil 时不绘制
func NewTableRenderSystem(fc *fonts.Cache) *TableRenderSystem {
	return &TableRenderSystem{fonts: fc}
}

// Render 用记录重建表格内容
func (t *TableRenderSystem) Render(records []dataset.Record) {
	t.rows = t.rows[:0]
	for _, r := range records {
		t.rows = append(t.rows, [4]string{r.ID, r.Name, r.Department, r.Position})
	}
}

// HasContent 表格是否至少有一行
func (t *TableRenderSystem) HasContent() bool {
	return len(t.rows) > 0
}

// Rows 表格行数
func (t *TableRenderSystem) Rows() int {
	return len(t.rows)
}

// SetVisible 显示或隐藏表格，重新显示时从透明开始淡入
func (t *TableRenderSystem) SetVisible(visible bool) {
	if visible && !t.visible {
		t.fade = 0
	}
	t.visible = visible
}

// Visible 表格是否显示
func (t *TableRenderSystem) Visible() bool {
	return t.visible
}

// Update 推进淡入
func (t *TableRenderSystem) Update(deltaTime float64) {
	if !t.visible || t.fade >= 1 {
		return
	}
	t.fade = utils.Clamp(t.fade+deltaTime/tableFadeSecond, 0, 1)
}

// visibleRows 高度为 screenH 时能完整显示的行数（表头之外）
func visibleRows(screenH float64) int {
	n := int((screenH - tableMarginTop - tableMarginBot - 2*tablePadding) / tableRowHeight)
	n-- // 表头
	if n < 1 {
		return 1
	}
	return n
}

// Draw 绘制表格
func (t *TableRenderSystem) Draw(screen *ebiten.Image) {
	if !t.visible || t.fonts == nil || len(t.rows) == 0 || t.fade <= 0 {
		return
	}

	screenH := float64(screen.Bounds().Dy())
	limit := visibleRows(screenH)
	rows := t.rows
	overflow := 0
	if len(rows) > limit {
		overflow = len(rows) - (limit - 1)
		rows = rows[:limit-1]
	}

	width := 2 * tablePadding
	for _, c := range tableColumns {
		width += c.width
	}
	lines := len(rows) + 1
	if overflow > 0 {
		lines++
	}
	height := 2*tablePadding + float64(lines)*tableRowHeight

	alpha := float32(t.fade)
	scale := func(c color.NRGBA) color.NRGBA {
		c.A = uint8(float32(c.A) * alpha)
		return c
	}

	x0, y0 := tableMarginX, tableMarginTop
	vector.DrawFilledRect(screen, float32(x0), float32(y0), float32(width), float32(height), scale(tableBackground), false)
	vector.DrawFilledRect(screen, float32(x0), float32(y0), float32(width), float32(tablePadding+tableRowHeight), scale(tableHeaderBg), false)

	regular := t.fonts.Face(fonts.Regular, tableFontSize)
	bold := t.fonts.Face(fonts.Bold, tableFontSize)

	y := y0 + tablePadding
	x := x0 + tablePadding
	for _, c := range tableColumns {
		t.drawCell(screen, c.title, bold, x, y, c.width, alpha)
		x += c.width
	}

	for _, row := range rows {
		y += tableRowHeight
		vector.StrokeLine(screen, float32(x0), float32(y), float32(x0+width), float32(y), 1, scale(tableRuleColor), false)
		x = x0 + tablePadding
		for i, c := range tableColumns {
			t.drawCell(screen, row[i], regular, x, y, c.width, alpha)
			x += c.width
		}
	}

	if overflow > 0 {
		y += tableRowHeight
		t.drawCell(screen, fmt.Sprintf("... %d more", overflow), regular, x0+tablePadding, y, width, alpha)
	}
}

func (t *TableRenderSystem) drawCell(screen *ebiten.Image, s string, face *text.GoTextFace, x, y, width float64, alpha float32) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y+4)
	op.ColorScale.ScaleWithColor(cardTextColor)
	op.ColorScale.ScaleAlpha(alpha)
	text.Draw(screen, truncate(s, face, width-8), face, op)
}

// truncate 超出宽度的文本截断并加省略号
func truncate(s string, face *text.GoTextFace, maxWidth float64) string {
	if measureWidth(s, face) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if measureWidth(candidate, face) <= maxWidth {
			return candidate
		}
	}
	return ""
}

func measureWidth(s string, face *text.GoTextFace) float64 {
	w, _ := text.Measure(s, face, 0)
	return w
}
