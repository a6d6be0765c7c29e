package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyBindings 键盘到动作的映射
var keyBindings = []struct {
	key    ebiten.Key
	action Action
}{
	{ebiten.KeySpace, ActionAdvance},
	{ebiten.KeyEnter, ActionAdvance},
	{ebiten.KeyArrowRight, ActionNext},
	{ebiten.KeyArrowLeft, ActionPrevious},
}

// EbitenSource 从 ebiten 读取键盘和触摸输入
//
// 桌面端鼠标左键留给镜头拖拽，不产生导航动作。
type EbitenSource struct {
	gesture  *GestureTracker
	touchIDs []ebiten.TouchID
}

// NewEbitenSource 创建输入源
func NewEbitenSource() *EbitenSource {
	return &EbitenSource{gesture: NewGestureTracker()}
}

// Poll 每帧调用一次，返回本帧产生的动作（最多一个）
func (s *EbitenSource) Poll() Action {
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			return b.action
		}
	}

	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	if len(s.touchIDs) > 0 {
		x, y := ebiten.TouchPosition(s.touchIDs[0])
		return s.gesture.Feed(true, x, y)
	}
	return s.gesture.Feed(false, 0, 0)
}

// DismissPressed 本帧是否按下了关闭提示的输入（Esc 或点击）
func DismissPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	return len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
}
