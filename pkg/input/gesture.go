package input

import (
	"math"

	"github.com/decker502/cardgallery/pkg/config"
)

// GestureTracker 触摸手势识别
//
// 每帧传入当前触点状态；手指抬起时根据起点和终点判断：
// 水平位移超过 SwipeThreshold 且大于垂直位移为左右滑动，
// 位移都很小为轻点，其余（如垂直拖动）忽略。
type GestureTracker struct {
	active         bool
	startX, startY int
	lastX, lastY   int
	threshold      int
}

// NewGestureTracker 创建手势识别器
func NewGestureTracker() *GestureTracker {
	return &GestureTracker{threshold: config.SwipeThreshold}
}

// Feed 输入一帧触点状态，返回识别出的动作
func (g *GestureTracker) Feed(touching bool, x, y int) Action {
	if touching {
		if !g.active {
			g.active = true
			g.startX, g.startY = x, y
		}
		g.lastX, g.lastY = x, y
		return ActionNone
	}

	if !g.active {
		return ActionNone
	}
	g.active = false
	return g.classify(g.lastX-g.startX, g.lastY-g.startY)
}

// Reset 放弃进行中的手势
func (g *GestureTracker) Reset() {
	g.active = false
}

func (g *GestureTracker) classify(dx, dy int) Action {
	ax, ay := math.Abs(float64(dx)), math.Abs(float64(dy))
	switch {
	case ax >= float64(g.threshold) && ax > ay:
		// 向左滑看下一张，向右滑看上一张
		if dx < 0 {
			return ActionNext
		}
		return ActionPrevious
	case ax < float64(g.threshold)/3 && ay < float64(g.threshold)/3:
		return ActionAdvance
	default:
		return ActionNone
	}
}
