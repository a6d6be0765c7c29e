package components

import "github.com/decker502/cardgallery/pkg/utils"

// CameraComponent 画廊镜头状态
// 过渡期间由编排系统插值移动，渲染系统据此做透视投影
type CameraComponent struct {
	// Position 镜头位置（世界坐标）
	Position utils.Vec3

	// LookAt 镜头注视点（世界坐标）
	LookAt utils.Vec3

	// ControlsEnabled 用户镜头控制是否可用
	// 过渡进行中为 false，过渡完成后恢复
	ControlsEnabled bool

	// FOV 垂直视场角（弧度）
	FOV float64
}
