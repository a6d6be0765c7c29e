package game

// ViewState 画廊当前布局状态
type ViewState int

const (
	// StateUpload 等待上传数据
	StateUpload ViewState = iota
	// StateTable 表格网格
	StateTable
	// StateSphere 球面，带环境旋转
	StateSphere
	// StateCardFocus 单卡居中放大
	StateCardFocus
	// StateCardFixed 单卡贴靠侧边，其余卡片继续旋转
	StateCardFixed
)

// String 返回状态名称
func (s ViewState) String() string {
	switch s {
	case StateUpload:
		return "Upload"
	case StateTable:
		return "Table"
	case StateSphere:
		return "Sphere"
	case StateCardFocus:
		return "CardFocus"
	case StateCardFixed:
		return "CardFixed"
	default:
		return "Unknown"
	}
}

// Next 循环顺序中的下一个状态
//
// Upload→Table→Sphere→CardFocus→CardFixed→Table，循环不会回到 Upload
func (s ViewState) Next() ViewState {
	switch s {
	case StateUpload:
		return StateTable
	case StateTable:
		return StateSphere
	case StateSphere:
		return StateCardFocus
	case StateCardFocus:
		return StateCardFixed
	default:
		return StateTable
	}
}

// stateRequirements 进入某状态的前置条件
type stateRequirements struct {
	RequiresData         bool
	MinObjects           int
	RequiresFocus        bool
	RequiresTableContent bool
}

var requirements = map[ViewState]stateRequirements{
	StateUpload:    {},
	StateTable:     {RequiresData: true, MinObjects: 1, RequiresTableContent: true},
	StateSphere:    {RequiresData: true, MinObjects: 1},
	StateCardFocus: {RequiresData: true, MinObjects: 1, RequiresFocus: true},
	StateCardFixed: {RequiresData: true, MinObjects: 1, RequiresFocus: true},
}

// instructions 每个状态的操作提示
var instructions = map[ViewState]string{
	StateUpload:    "Drop a TSV file (id, name, department, position) or pass --data",
	StateTable:     "Press SPACE for the sphere view",
	StateSphere:    "Press SPACE to focus a card",
	StateCardFocus: "Press SPACE to dock the card, LEFT/RIGHT to browse",
	StateCardFixed: "Press SPACE to return to the table, LEFT/RIGHT to browse",
}

// Instruction 返回状态对应的操作提示
func (s ViewState) Instruction() string {
	return instructions[s]
}
