package scenes

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/cardgallery/pkg/fonts"
)

const (
	uploadTitleSize   = 32.0
	uploadHintSize    = 18.0
	instructionSize   = 16.0
	noticeSize        = 16.0
	noticeMaxWidth    = 640.0
	noticePadding     = 12.0
	noticeLineHeight  = 22.0
	instructionBottom = 36.0
)

var (
	backgroundColor  = color.NRGBA{0, 0, 0, 255}
	uploadFrameColor = color.NRGBA{127, 255, 255, 120}
	textColor        = color.NRGBA{220, 255, 255, 255}
	hintColor        = color.NRGBA{127, 200, 200, 255}
	noticeBackground = color.NRGBA{80, 20, 20, 220}
	noticeBorder     = color.NRGBA{255, 120, 120, 200}
)

// Draw 实现 game.Scene
func (s *GalleryScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if s.fonts == nil {
		return
	}

	s.cards.Draw(screen)
	s.table.Draw(screen)

	if s.uploadVisible {
		s.drawUploadPrompt(screen)
	}
	if s.settings.GetSettings().ShowInstructions && s.instruction != "" {
		s.drawInstruction(screen)
	}
	if s.notice != nil {
		s.drawNotice(screen)
	}
}

// drawUploadPrompt 绘制拖放提示框
func (s *GalleryScene) drawUploadPrompt(screen *ebiten.Image) {
	b := screen.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	boxW, boxH := 560.0, 220.0
	x, y := (w-boxW)/2, (h-boxH)/2

	vector.StrokeRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), 2, uploadFrameColor, false)

	title := s.fonts.Face(fonts.Bold, uploadTitleSize)
	hint := s.fonts.Face(fonts.Regular, uploadHintSize)
	drawCentered(screen, "Drop a data file here", title, w/2, y+60, textColor)
	drawCentered(screen, "Tab-separated: id, name, department, position", hint, w/2, y+120, hintColor)
	drawCentered(screen, "or start with --data <file>", hint, w/2, y+150, hintColor)
}

// drawInstruction 在底部居中绘制当前状态的操作提示
func (s *GalleryScene) drawInstruction(screen *ebiten.Image) {
	b := screen.Bounds()
	face := s.fonts.Face(fonts.Regular, instructionSize)
	line := s.instruction
	if s.datasetName != "" {
		line = fmt.Sprintf("%s  |  %s (%d)", line, filepath.Base(s.datasetName), len(s.session.Records))
	}
	drawCentered(screen, line, face, float64(b.Dx())/2, float64(b.Dy())-instructionBottom, hintColor)
}

// drawNotice 在顶部居中绘制提示，过长时换行
func (s *GalleryScene) drawNotice(screen *ebiten.Image) {
	b := screen.Bounds()
	face := s.fonts.Face(fonts.Regular, noticeSize)
	lines := fonts.WrapText(s.notice.text, face, noticeMaxWidth)

	boxW := noticeMaxWidth + 2*noticePadding
	boxH := float64(len(lines))*noticeLineHeight + 2*noticePadding
	x := (float64(b.Dx()) - boxW) / 2
	y := 24.0

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), noticeBackground, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), 1, noticeBorder, false)

	for i, l := range lines {
		drawCentered(screen, l, face, float64(b.Dx())/2, y+noticePadding+float64(i)*noticeLineHeight, textColor)
	}
}

// drawCentered 以 (cx, top) 为顶边中点绘制一行文本
func drawCentered(screen *ebiten.Image, s string, face *text.GoTextFace, cx, top float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, top)
	op.PrimaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}
