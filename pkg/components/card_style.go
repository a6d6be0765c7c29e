package components

// CardStyleComponent 卡片可被编排修改的视觉参数
//
// 核心逻辑只修改这些声明过的参数，卡片内容的具体绘制由渲染系统负责。
type CardStyleComponent struct {
	// Opacity 卡片透明度 0.0 ~ 1.0
	Opacity float64

	// Glow 边框发光强度 0.0 ~ 1.0
	Glow float64

	// Detailed 是否带有"详情"标记
	Detailed bool

	// DetailOpacity 详情面板透明度（淡入淡出）
	DetailOpacity float64

	// DetailAnchor 详情面板锚点：0 = 卡片居中，1 = 贴靠卡片边缘
	DetailAnchor float64

	// DetailLines 详情面板文本，由卡片内容渲染器填充
	DetailLines []string
}
