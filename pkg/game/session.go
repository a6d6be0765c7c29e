package game

import (
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/decker502/cardgallery/pkg/components"
	"github.com/decker502/cardgallery/pkg/config"
	"github.com/decker502/cardgallery/pkg/dataset"
	"github.com/decker502/cardgallery/pkg/ecs"
	"github.com/decker502/cardgallery/pkg/layout"
	"github.com/decker502/cardgallery/pkg/utils"
)

// Session 一次画廊会话的全部可变状态
//
// 状态机、编排系统和旋转系统共享同一个 Session，不再依赖包级全局变量。
// 数据集整体替换时 Cards、TableTargets、SphereTargets 一并重建，下标始终对齐。
type Session struct {
	// ID 每次加载数据集时重新生成，用于日志关联
	ID uuid.UUID

	Records []dataset.Record

	// Cards 与 Records 下标一一对应的卡片实体
	Cards    []ecs.EntityID
	Entities *ecs.EntityManager

	Camera *components.CameraComponent

	TableTargets  layout.Targets
	SphereTargets layout.Targets

	// FocusedIndex 聚焦/固定卡片下标，-1 表示未选择
	FocusedIndex int

	rng *rand.Rand
}

// NewSession 创建空会话
//
// seed 决定卡片初始散布位置和旋转相位，测试中传入固定值即可复现
func NewSession(seed int64) *Session {
	return &Session{
		Entities:     ecs.NewEntityManager(),
		Camera:       NewDefaultCamera(),
		FocusedIndex: -1,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// NewDefaultCamera 返回位于远景机位的镜头
func NewDefaultCamera() *components.CameraComponent {
	return &components.CameraComponent{
		Position:        utils.V3(0, 0, config.CameraDefaultDistance),
		ControlsEnabled: true,
		FOV:             config.CameraFOV,
	}
}

// LoadDataset 用新数据集替换当前卡片
//
// 旧卡片实体全部销毁；新卡片随机散布在 ±CardScatterRange 范围内，
// 等待进入表格状态时动画归位。焦点重置为第一张卡片。
func (s *Session) LoadDataset(records []dataset.Record) {
	s.Clear()

	s.ID = uuid.New()
	s.Records = append([]dataset.Record(nil), records...)
	s.Cards = make([]ecs.EntityID, len(records))

	for i, rec := range s.Records {
		id := s.Entities.CreateEntity()
		pos := utils.V3(s.scatter(), s.scatter(), s.scatter())

		ecs.AddComponent(s.Entities, id, components.NewTransformComponent(pos))
		ecs.AddComponent(s.Entities, id, &components.CardComponent{Index: i, Record: rec})
		ecs.AddComponent(s.Entities, id, &components.CardStyleComponent{
			Opacity: 1,
			Glow:    config.CardDefaultGlow,
		})
		ecs.AddComponent(s.Entities, id, &components.SpinComponent{
			Factor: 1 + config.RotationFactorStep*float64(i%5),
			Phase:  s.rng.Float64() * 2 * math.Pi,
		})
		s.Cards[i] = id
	}

	s.TableTargets = layout.ComputeGridTargets(len(s.Cards), layout.DefaultGridParams())
	s.SphereTargets = layout.ComputeSphereTargets(len(s.Cards), config.SphereRadius)

	if len(s.Cards) > 0 {
		s.FocusedIndex = 0
	}
}

// Clear 丢弃数据集和全部卡片实体
func (s *Session) Clear() {
	s.Entities.Clear()
	s.Records = nil
	s.Cards = nil
	s.TableTargets = nil
	s.SphereTargets = nil
	s.FocusedIndex = -1
	s.ID = uuid.Nil
}

func (s *Session) scatter() float64 {
	return (s.rng.Float64()*2 - 1) * config.CardScatterRange
}

// HasData 是否已加载数据集
func (s *Session) HasData() bool {
	return len(s.Records) > 0
}

// CardCount 仍然存活的卡片数量
func (s *Session) CardCount() int {
	n := 0
	for _, id := range s.Cards {
		if s.Entities.Exists(id) {
			n++
		}
	}
	return n
}

// ValidIndex 下标对应的卡片和记录是否都存在
func (s *Session) ValidIndex(i int) bool {
	return i >= 0 && i < len(s.Cards) && i < len(s.Records) && s.Entities.Exists(s.Cards[i])
}

// Transform 返回第 i 张卡片的变换组件
func (s *Session) Transform(i int) (*components.TransformComponent, bool) {
	if i < 0 || i >= len(s.Cards) {
		return nil, false
	}
	return ecs.GetComponent[*components.TransformComponent](s.Entities, s.Cards[i])
}

// Style 返回第 i 张卡片的样式组件
func (s *Session) Style(i int) (*components.CardStyleComponent, bool) {
	if i < 0 || i >= len(s.Cards) {
		return nil, false
	}
	return ecs.GetComponent[*components.CardStyleComponent](s.Entities, s.Cards[i])
}

// Spin 返回第 i 张卡片的旋转参数
func (s *Session) Spin(i int) (*components.SpinComponent, bool) {
	if i < 0 || i >= len(s.Cards) {
		return nil, false
	}
	return ecs.GetComponent[*components.SpinComponent](s.Entities, s.Cards[i])
}

// Rand 会话随机源（抖动等视觉随机量使用）
func (s *Session) Rand() *rand.Rand {
	return s.rng
}
