package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 应用中的一个场景（画廊、加载提示等）
// 每个场景有自己的更新和绘制逻辑
type Scene interface {
	// Update 按经过的时间推进场景逻辑
	// deltaTime 为距上一帧的秒数
	Update(deltaTime float64)

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口，场景在程序退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 窗口关闭
//   - 用户通过 OS 命令关闭程序
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败（程序仍会正常退出）
	SaveOnExit() bool
}
