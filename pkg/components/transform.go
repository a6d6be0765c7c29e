package components

import "github.com/decker502/cardgallery/pkg/utils"

// TransformComponent 卡片的三维变换
// 由插值任务和环境旋转逐帧修改，渲染系统读取
type TransformComponent struct {
	// Position 世界坐标位置
	Position utils.Vec3

	// Rotation 欧拉角（弧度，XYZ 顺序）
	Rotation utils.Vec3

	// Scale 各轴缩放
	Scale utils.Vec3
}

// NewTransformComponent 创建位于 pos、单位缩放、无旋转的变换
func NewTransformComponent(pos utils.Vec3) *TransformComponent {
	return &TransformComponent{
		Position: pos,
		Scale:    utils.V3(1, 1, 1),
	}
}
