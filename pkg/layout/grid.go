package layout

import (
	"github.com/decker502/cardgallery/pkg/config"
	"github.com/decker502/cardgallery/pkg/utils"
)

// GridParams 表格网格参数
type GridParams struct {
	Columns  int
	SpacingX float64
	SpacingY float64
	StartY   float64
}

// DefaultGridParams 返回默认网格参数（5 列）
func DefaultGridParams() GridParams {
	return GridParams{
		Columns:  config.GridColumns,
		SpacingX: config.GridSpacingX,
		SpacingY: config.GridSpacingY,
		StartY:   config.GridStartY,
	}
}

// GridCell 返回索引 i 所在的列和行（行优先）
func GridCell(i, columns int) (col, row int) {
	return i % columns, i / columns
}

// ComputeGridTargets 计算 n 张卡片的表格网格目标
//
// 卡片按行优先排列：第 i 张位于列 i mod Columns、行 ⌊i/Columns⌋。
// 列在 X 方向以 0 为中心对称分布，行从 StartY 开始每行向下偏移 SpacingY。
// 所有卡片朝向为单位旋转（正对镜头）。
func ComputeGridTargets(n int, p GridParams) Targets {
	if n <= 0 {
		return Targets{}
	}
	if p.Columns <= 0 {
		p.Columns = config.GridColumns
	}

	centerCol := float64(p.Columns-1) / 2
	targets := make(Targets, n)
	for i := 0; i < n; i++ {
		col, row := GridCell(i, p.Columns)
		targets[i] = Target{
			Position: utils.V3(
				(float64(col)-centerCol)*p.SpacingX,
				p.StartY-float64(row)*p.SpacingY,
				0,
			),
		}
	}
	return targets
}
