// Package layout 计算卡片在各命名布局下的目标变换
//
// 所有函数都是纯函数：相同的卡片数量和参数总是得到相同的结果，
// 不会修改任何卡片实体。
package layout

import "github.com/decker502/cardgallery/pkg/utils"

// Target 单张卡片的目标位置与朝向（欧拉角，弧度）
type Target struct {
	Position utils.Vec3
	Rotation utils.Vec3
}

// Targets 按卡片索引对齐的目标序列，Targets[i] 对应第 i 张卡片
type Targets []Target

// At 返回索引 i 的目标，越界时返回 false
func (t Targets) At(i int) (Target, bool) {
	if i < 0 || i >= len(t) {
		return Target{}, false
	}
	return t[i], true
}
