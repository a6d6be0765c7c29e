package systems

import (
	"image/color"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/cardgallery/pkg/components"
	"github.com/decker502/cardgallery/pkg/config"
	"github.com/decker502/cardgallery/pkg/dataset"
	"github.com/decker502/cardgallery/pkg/ecs"
	"github.com/decker502/cardgallery/pkg/fonts"
	"github.com/decker502/cardgallery/pkg/game"
	"github.com/decker502/cardgallery/pkg/logging"
	"github.com/decker502/cardgallery/pkg/utils"
)

const (
	// 卡面贴图按 2 倍分辨率绘制，缩放后仍清晰
	cardTextureScale = 2

	detailPanelWidth   = 280.0
	detailPanelPadding = 14.0
	detailLineHeight   = 24.0
	detailPanelGap     = 24.0
)

var (
	glowColor        = color.NRGBA{0, 255, 255, 255}
	cardBorderColor  = color.NRGBA{127, 255, 255, 190}
	cardTextColor    = color.NRGBA{255, 255, 255, 235}
	cardSubtextColor = color.NRGBA{127, 255, 255, 220}
)

// departmentColors 部门底色，匹配时忽略大小写
var departmentColors = map[string]color.NRGBA{
	"engineering": {0, 127, 127, 255},
	"design":      {127, 0, 127, 255},
	"marketing":   {127, 127, 0, 255},
	"people":      {0, 127, 0, 255},
	"hr":          {0, 127, 0, 255},
	"finance":     {0, 70, 150, 255},
	"operations":  {150, 75, 0, 255},
	"sales":       {150, 30, 60, 255},
}

var defaultDepartmentColor = color.NRGBA{0, 127, 127, 255}

// positionBadges 职位关键字对应的标记，按顺序匹配第一个命中的单词
var positionBadges = []struct {
	keyword string
	badge   string
}{
	{"cto", "♠"},
	{"chief", "♠"},
	{"vp", "♠"},
	{"director", "♦"},
	{"head", "▲"},
	{"manager", "▲"},
	{"lead", "▲"},
	{"principal", "●"},
	{"staff", "●"},
	{"senior", "●"},
}

const defaultPositionBadge = "■"

// DepartmentColor 部门对应的卡片底色
func DepartmentColor(department string) color.NRGBA {
	if c, ok := departmentColors[strings.ToLower(strings.TrimSpace(department))]; ok {
		return c
	}
	return defaultDepartmentColor
}

// PositionBadge 职位对应的标记字符
func PositionBadge(position string) string {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(position), func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		words[w] = true
	}
	for _, b := range positionBadges {
		if words[b.keyword] {
			return b.badge
		}
	}
	return defaultPositionBadge
}

// DetailLines 详情面板的文本行
func DetailLines(r dataset.Record) []string {
	return []string{
		r.Name,
		"Department: " + r.Department,
		"Position: " + PositionBadge(r.Position) + " " + r.Position,
		"ID: " + r.ID,
	}
}

// CardRenderSystem 卡片内容渲染
//
// 卡面（编号、姓名首字母、部门和职位）绘制到每张卡片的贴图上，
// 再按卡片的三维变换投影成四边形绘制；详情面板在屏幕空间绘制。
type CardRenderSystem struct {
	session *game.Session
	fonts   *fonts.Cache

	// textures 按实体缓存的卡面贴图，数据集更换时整体丢弃
	textures  map[ecs.EntityID]*ebiten.Image
	textureOf uuid.UUID

	vertices []ebiten.Vertex
	indices  []uint16
	order    []projectedCard

	logger *log.Logger
}

// projectedCard 一帧内已投影的卡片
type projectedCard struct {
	index   int
	depth   float64
	corners [4][2]float64
	cx, cy  float64
	scale   float64
}

// NewCardRenderSystem 创建卡片渲染系统
//
// fc 为 nil 时只维护详情状态，不绘制
func NewCardRenderSystem(session *game.Session, fc *fonts.Cache) *CardRenderSystem {
	return &CardRenderSystem{
		session:  session,
		fonts:    fc,
		textures: make(map[ecs.EntityID]*ebiten.Image),
		vertices: make([]ebiten.Vertex, 4),
		indices:  []uint16{0, 1, 2, 1, 3, 2},
		logger:   logging.For("CardRender"),
	}
}

// AttachDetail 给卡片挂上详情
func (s *CardRenderSystem) AttachDetail(entity ecs.EntityID, record dataset.Record) {
	style, ok := ecs.GetComponent[*components.CardStyleComponent](s.session.Entities, entity)
	if !ok {
		return
	}
	style.Detailed = true
	style.DetailLines = DetailLines(record)
	style.DetailOpacity = 1
}

// RemoveDetail 移除卡片详情
func (s *CardRenderSystem) RemoveDetail(entity ecs.EntityID) {
	style, ok := ecs.GetComponent[*components.CardStyleComponent](s.session.Entities, entity)
	if !ok {
		return
	}
	style.Detailed = false
	style.DetailLines = nil
	style.DetailOpacity = 0
	style.DetailAnchor = 0
}

// RefreshFocusedDetail 只保留 index 卡片的详情
//
// 先移除其他卡片的详情再挂载，任何时刻最多一张卡片带详情。
func (s *CardRenderSystem) RefreshFocusedDetail(index int, cards []ecs.EntityID, records []dataset.Record) {
	for i, id := range cards {
		if i != index {
			s.RemoveDetail(id)
		}
	}
	if index < 0 || index >= len(cards) || index >= len(records) {
		s.logger.Warn("focused detail index out of range", "index", index, "cards", len(cards))
		return
	}
	s.AttachDetail(cards[index], records[index])
}

// Draw 按深度从远到近绘制所有卡片，最后绘制详情面板
func (s *CardRenderSystem) Draw(screen *ebiten.Image) {
	if s.fonts == nil || !s.session.HasData() {
		return
	}
	if s.textureOf != s.session.ID {
		s.resetTextures()
		s.textureOf = s.session.ID
	}

	bounds := screen.Bounds()
	proj := NewProjector(s.session.Camera, float64(bounds.Dx()), float64(bounds.Dy()))

	s.order = s.order[:0]
	for i := range s.session.Cards {
		if pc, ok := s.project(i, proj); ok {
			s.order = append(s.order, pc)
		}
	}
	sort.SliceStable(s.order, func(a, b int) bool {
		return s.order[a].depth > s.order[b].depth
	})

	for _, pc := range s.order {
		s.drawCard(screen, pc)
	}
	for _, pc := range s.order {
		s.drawDetail(screen, pc)
	}
}

// project 计算卡片四个角的屏幕坐标，任一角在近裁剪面内则跳过
func (s *CardRenderSystem) project(i int, proj Projector) (projectedCard, bool) {
	tr, ok := s.session.Transform(i)
	if !ok {
		return projectedCard{}, false
	}

	hw := config.CardWidth / 2 * tr.Scale.X
	hh := config.CardHeight / 2 * tr.Scale.Y
	local := [4]utils.Vec3{
		utils.V3(-hw, hh, 0),
		utils.V3(hw, hh, 0),
		utils.V3(-hw, -hh, 0),
		utils.V3(hw, -hh, 0),
	}

	pc := projectedCard{index: i, depth: proj.Depth(tr.Position)}
	for k, corner := range local {
		world := utils.RotateEuler(corner, tr.Rotation).Add(tr.Position)
		x, y, _, ok := proj.Project(world)
		if !ok {
			return projectedCard{}, false
		}
		pc.corners[k] = [2]float64{x, y}
	}
	cx, cy, scale, ok := proj.Project(tr.Position)
	if !ok {
		return projectedCard{}, false
	}
	pc.cx, pc.cy, pc.scale = cx, cy, scale
	return pc, true
}

// drawCard 贴图四边形和发光边框
func (s *CardRenderSystem) drawCard(screen *ebiten.Image, pc projectedCard) {
	style, ok := s.session.Style(pc.index)
	if !ok || style.Opacity <= 0 {
		return
	}

	tex := s.texture(pc.index)
	tw, th := float32(tex.Bounds().Dx()), float32(tex.Bounds().Dy())
	src := [4][2]float32{{0, 0}, {tw, 0}, {0, th}, {tw, th}}
	alpha := float32(utils.Clamp(style.Opacity, 0, 1))

	for k := range s.vertices {
		s.vertices[k] = ebiten.Vertex{
			DstX:   float32(pc.corners[k][0]),
			DstY:   float32(pc.corners[k][1]),
			SrcX:   src[k][0],
			SrcY:   src[k][1],
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: alpha,
		}
	}
	screen.DrawTriangles(s.vertices, s.indices, tex, &ebiten.DrawTrianglesOptions{AntiAlias: true})

	glow := utils.Clamp(style.Glow, 0, 1) * style.Opacity
	if glow <= 0.01 {
		return
	}
	clr := glowColor
	clr.A = uint8(255 * glow)
	width := float32(1 + 3*glow)
	edges := [4][2]int{{0, 1}, {1, 3}, {3, 2}, {2, 0}}
	for _, e := range edges {
		a, b := pc.corners[e[0]], pc.corners[e[1]]
		vector.StrokeLine(screen, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]), width, clr, true)
	}
}

// drawDetail 详情面板
//
// 锚点 0 时面板叠在卡片下部居中，锚点 1 时贴靠卡片左侧边缘。
func (s *CardRenderSystem) drawDetail(screen *ebiten.Image, pc projectedCard) {
	style, ok := s.session.Style(pc.index)
	if !ok || !style.Detailed || style.DetailOpacity <= 0 || len(style.DetailLines) == 0 {
		return
	}
	tr, _ := s.session.Transform(pc.index)

	halfW := config.CardWidth / 2 * tr.Scale.X * pc.scale
	halfH := config.CardHeight / 2 * tr.Scale.Y * pc.scale

	face := s.fonts.Face(fonts.Regular, 16)
	var lines []string
	for _, l := range style.DetailLines {
		lines = append(lines, fonts.WrapText(l, face, detailPanelWidth-2*detailPanelPadding)...)
	}
	panelH := 2*detailPanelPadding + float64(len(lines))*detailLineHeight

	a := utils.Clamp(style.DetailAnchor, 0, 1)
	x := utils.Lerp(pc.cx-detailPanelWidth/2, pc.cx-halfW-detailPanelGap-detailPanelWidth, a)
	y := utils.Lerp(pc.cy+halfH-panelH-detailPanelGap/2, pc.cy-panelH/2, a)

	opacity := utils.Clamp(style.DetailOpacity, 0, 1)
	bg := color.NRGBA{0, 20, 24, uint8(200 * opacity)}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(detailPanelWidth), float32(panelH), bg, true)
	border := cardBorderColor
	border.A = uint8(float64(border.A) * opacity)
	vector.StrokeRect(screen, float32(x), float32(y), float32(detailPanelWidth), float32(panelH), 1.5, border, true)

	for i, line := range lines {
		f := face
		clr := cardSubtextColor
		if i == 0 {
			f = s.fonts.Face(fonts.Bold, 16)
			clr = cardTextColor
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(x+detailPanelPadding, y+detailPanelPadding+float64(i)*detailLineHeight)
		op.ColorScale.ScaleWithColor(clr)
		op.ColorScale.ScaleAlpha(float32(opacity))
		text.Draw(screen, line, f, op)
	}
}

// texture 返回卡片的卡面贴图，首次使用时绘制
func (s *CardRenderSystem) texture(i int) *ebiten.Image {
	id := s.session.Cards[i]
	if tex, ok := s.textures[id]; ok {
		return tex
	}
	tex := s.renderFace(s.session.Records[i])
	s.textures[id] = tex
	return tex
}

// renderFace 绘制卡面：编号、姓名首字母、姓名、部门和职位
func (s *CardRenderSystem) renderFace(r dataset.Record) *ebiten.Image {
	w := int(config.CardWidth * cardTextureScale)
	h := int(config.CardHeight * cardTextureScale)
	img := ebiten.NewImage(w, h)

	bg := DepartmentColor(r.Department)
	bg.A = 150
	vector.DrawFilledRect(img, 0, 0, float32(w), float32(h), bg, false)
	vector.StrokeRect(img, 2, 2, float32(w-4), float32(h-4), 3, cardBorderColor, false)

	drawText := func(str string, weight fonts.Weight, size, x, y float64, clr color.Color, align text.Align) {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(clr)
		op.PrimaryAlign = align
		text.Draw(img, str, s.fonts.Face(weight, size), op)
	}

	fw, fh := float64(w), float64(h)
	drawText(r.ID, fonts.Regular, 22, fw-16, 14, cardSubtextColor, text.AlignEnd)
	drawText(r.Initial(), fonts.Bold, 110, fw/2, fh*0.2, cardTextColor, text.AlignCenter)
	drawText(r.Name, fonts.Bold, 26, fw/2, fh*0.62, cardTextColor, text.AlignCenter)

	small := s.fonts.Face(fonts.Regular, 20)
	footer := []string{r.Department}
	footer = append(footer, fonts.WrapText(PositionBadge(r.Position)+" "+r.Position, small, fw-24)...)
	for i, line := range footer {
		drawText(line, fonts.Regular, 20, fw/2, fh*0.76+float64(i)*24, cardSubtextColor, text.AlignCenter)
	}
	return img
}

// resetTextures 释放所有卡面贴图
func (s *CardRenderSystem) resetTextures() {
	for id, tex := range s.textures {
		tex.Deallocate()
		delete(s.textures, id)
	}
}
