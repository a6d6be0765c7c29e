package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/decker502/cardgallery/pkg/utils"
)

// TransitionName 过渡名称，作为编排表的键
type TransitionName string

const (
	TransitionTable     TransitionName = "table"
	TransitionSphere    TransitionName = "sphere"
	TransitionCardFocus TransitionName = "cardFocus"
	TransitionCardFixed TransitionName = "cardFixed"
)

// 卡片目标布局
const (
	CardLayoutTable  = "table"  // 移动到表格网格目标
	CardLayoutSphere = "sphere" // 移动到球面目标
	CardLayoutRecede = "recede" // 从球面位置向外、向后散开
)

// 详情内容挂载时机
const (
	AttachDetailImmediate     = "immediate"
	AttachDetailAfterDuration = "afterDuration"
)

// CameraShot 镜头机位
type CameraShot struct {
	Position utils.Vec3 `yaml:"position" toml:"position"`
	LookAt   utils.Vec3 `yaml:"lookAt" toml:"lookAt"`
	Ease     string     `yaml:"ease" toml:"ease"`
}

// CardMotion 非焦点卡片（或全部卡片）的运动参数
type CardMotion struct {
	// Layout 目标布局：table / sphere / recede
	Layout string `yaml:"layout" toml:"layout"`

	// Ease 主运动缓动名称
	Ease string `yaml:"ease" toml:"ease"`

	// MaxDelayMs 每张卡片随机延迟上限 [0, MaxDelayMs]
	MaxDelayMs int `yaml:"maxDelayMs" toml:"maxDelayMs"`

	// Opacity 目标透明度，nil 表示保持不变
	Opacity *float64 `yaml:"opacity,omitempty" toml:"opacity,omitempty"`

	// Glow 目标发光强度，nil 表示保持不变
	Glow *float64 `yaml:"glow,omitempty" toml:"glow,omitempty"`

	// recede 专用参数
	RecedeScaleXY float64 `yaml:"recedeScaleXY,omitempty" toml:"recedeScaleXY,omitempty"`
	RecedePushZ   float64 `yaml:"recedePushZ,omitempty" toml:"recedePushZ,omitempty"`
	JitterRadians float64 `yaml:"jitterRadians,omitempty" toml:"jitterRadians,omitempty"`
}

// PopConfig 主运动结束后的缩放"弹出"
type PopConfig struct {
	DurationMs int     `yaml:"durationMs" toml:"durationMs"`
	Ease       string  `yaml:"ease" toml:"ease"`
	FromScale  float64 `yaml:"fromScale" toml:"fromScale"`
}

// FocusMotion 焦点卡片（聚焦/固定）的运动参数
type FocusMotion struct {
	Position utils.Vec3 `yaml:"position" toml:"position"`
	Rotation utils.Vec3 `yaml:"rotation" toml:"rotation"`
	Scale    utils.Vec3 `yaml:"scale" toml:"scale"`
	Ease     string     `yaml:"ease" toml:"ease"`
	Glow     float64    `yaml:"glow" toml:"glow"`

	// AttachDetail 详情挂载时机：immediate / afterDuration
	AttachDetail string `yaml:"attachDetail" toml:"attachDetail"`

	// DetailAnchorFrom / DetailAnchorTo 详情面板锚点（0=居中, 1=贴边）
	DetailAnchorFrom float64 `yaml:"detailAnchorFrom" toml:"detailAnchorFrom"`
	DetailAnchorTo   float64 `yaml:"detailAnchorTo" toml:"detailAnchorTo"`
}

// TransitionConfig 单个过渡的声明式配置
type TransitionConfig struct {
	DurationMs int          `yaml:"durationMs" toml:"durationMs"`
	Camera     CameraShot   `yaml:"camera" toml:"camera"`
	Cards      CardMotion   `yaml:"cards" toml:"cards"`
	Pop        *PopConfig   `yaml:"pop,omitempty" toml:"pop,omitempty"`
	Focus      *FocusMotion `yaml:"focus,omitempty" toml:"focus,omitempty"`

	// ClearDetail 淡出并移除所有卡片上的详情内容
	ClearDetail bool `yaml:"clearDetail" toml:"clearDetail"`

	// DetailFadeMs 详情淡出时长
	DetailFadeMs int `yaml:"detailFadeMs,omitempty" toml:"detailFadeMs,omitempty"`
}

// Duration 主过渡时长
func (c *TransitionConfig) Duration() time.Duration {
	return time.Duration(c.DurationMs) * time.Millisecond
}

// MaxDelay 随机延迟上限
func (c *TransitionConfig) MaxDelay() time.Duration {
	return time.Duration(c.Cards.MaxDelayMs) * time.Millisecond
}

// ChoreographyTable 编排表：每个过渡一项
//
// 配置文件位置: data/choreography.yaml（可通过 --choreography 替换为 yaml 或 toml 文件）
type ChoreographyTable struct {
	Table     TransitionConfig `yaml:"table" toml:"table"`
	Sphere    TransitionConfig `yaml:"sphere" toml:"sphere"`
	CardFocus TransitionConfig `yaml:"cardFocus" toml:"cardFocus"`
	CardFixed TransitionConfig `yaml:"cardFixed" toml:"cardFixed"`
}

// Get 按过渡名称查找配置
func (t *ChoreographyTable) Get(name TransitionName) (*TransitionConfig, bool) {
	switch name {
	case TransitionTable:
		return &t.Table, true
	case TransitionSphere:
		return &t.Sphere, true
	case TransitionCardFocus:
		return &t.CardFocus, true
	case TransitionCardFixed:
		return &t.CardFixed, true
	}
	return nil, false
}

// TransitionNames 按循环顺序返回全部过渡名称
func TransitionNames() []TransitionName {
	return []TransitionName{TransitionTable, TransitionSphere, TransitionCardFocus, TransitionCardFixed}
}

func floatPtr(v float64) *float64 {
	return &v
}

// DefaultChoreographyTable 返回内置编排表
//
// 时长：table=1500, sphere=1800, cardFocus=1200, cardFixed=1500 (ms)
func DefaultChoreographyTable() *ChoreographyTable {
	wide := utils.V3(0, 0, 3000)
	origin := utils.Vec3{}

	return &ChoreographyTable{
		Table: TransitionConfig{
			DurationMs: 1500,
			Camera:     CameraShot{Position: wide, LookAt: origin, Ease: "expoInOut"},
			Cards: CardMotion{
				Layout:     CardLayoutTable,
				Ease:       "expoInOut",
				MaxDelayMs: 200,
				Opacity:    floatPtr(1),
				Glow:       floatPtr(CardDefaultGlow),
			},
			ClearDetail:  true,
			DetailFadeMs: 400,
		},
		Sphere: TransitionConfig{
			DurationMs: 1800,
			Camera:     CameraShot{Position: wide, LookAt: origin, Ease: "sineIn"},
			Cards: CardMotion{
				Layout:     CardLayoutSphere,
				Ease:       "sineInOut",
				MaxDelayMs: 300,
				Opacity:    floatPtr(1),
			},
			Pop: &PopConfig{DurationMs: 600, Ease: "bounceOut", FromScale: 0.6},
		},
		CardFocus: TransitionConfig{
			DurationMs: 1200,
			Camera:     CameraShot{Position: utils.V3(0, 0, 1500), LookAt: origin, Ease: "cubicOut"},
			Cards: CardMotion{
				Layout:        CardLayoutRecede,
				Ease:          "cubicOut",
				MaxDelayMs:    200,
				Opacity:       floatPtr(RecedeOpacity),
				RecedeScaleXY: RecedeScaleXY,
				RecedePushZ:   RecedePushZ,
				JitterRadians: RecedeJitter,
			},
			Focus: &FocusMotion{
				Position:     utils.V3(0, 0, 700),
				Rotation:     origin,
				Scale:        utils.V3(2.5, 2.5, 2.5),
				Ease:         "elasticOut",
				Glow:         CardFocusGlow,
				AttachDetail: AttachDetailAfterDuration,
			},
		},
		CardFixed: TransitionConfig{
			DurationMs: 1500,
			Camera:     CameraShot{Position: utils.V3(-400, 0, 2200), LookAt: utils.V3(300, 0, 0), Ease: "sineInOut"},
			Cards: CardMotion{
				Layout:     CardLayoutSphere,
				Ease:       "sineInOut",
				MaxDelayMs: 300,
				Opacity:    floatPtr(1),
			},
			Pop: &PopConfig{DurationMs: 600, Ease: "bounceOut", FromScale: 0.6},
			Focus: &FocusMotion{
				Position:         utils.V3(650, 0, 900),
				Rotation:         utils.V3(0, -0.35, 0),
				Scale:            utils.V3(1.8, 1.8, 1.8),
				Ease:             "sineInOut",
				Glow:             CardFocusGlow,
				AttachDetail:     AttachDetailImmediate,
				DetailAnchorFrom: 0,
				DetailAnchorTo:   1,
			},
		},
	}
}

// LoadChoreographyTable 从文件加载编排表
//
// 根据扩展名选择格式：.yaml/.yml 使用 YAML，.toml 使用 TOML。
// 文件中未出现的字段保留内置默认值。
func LoadChoreographyTable(path string) (*ChoreographyTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read choreography config: %w", err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return ParseChoreographyTable(data, format)
}

// ParseChoreographyTable 解析编排表数据
//
// 参数:
//   - data: 配置内容
//   - format: "yaml"、"yml" 或 "toml"
func ParseChoreographyTable(data []byte, format string) (*ChoreographyTable, error) {
	table := DefaultChoreographyTable()

	switch format {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(table); err != nil {
			return nil, fmt.Errorf("failed to parse choreography yaml: %w", err)
		}
	case "toml":
		md, err := toml.Decode(string(data), table)
		if err != nil {
			return nil, fmt.Errorf("failed to parse choreography toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown choreography keys: %v", undecoded)
		}
	default:
		return nil, fmt.Errorf("unsupported choreography format %q", format)
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid choreography config: %w", err)
	}
	return table, nil
}

// Validate 验证编排表有效性
//
// 检查：
//   - 时长必须为正
//   - 随机延迟不能为负
//   - 缓动名称必须已注册
//   - 聚焦/固定过渡必须包含 focus 段
func (t *ChoreographyTable) Validate() error {
	for _, name := range TransitionNames() {
		c, _ := t.Get(name)
		if err := c.validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if t.CardFocus.Focus == nil {
		return fmt.Errorf("%s: focus section is required", TransitionCardFocus)
	}
	if t.CardFixed.Focus == nil {
		return fmt.Errorf("%s: focus section is required", TransitionCardFixed)
	}
	return nil
}

func (c *TransitionConfig) validate() error {
	if c.DurationMs <= 0 {
		return fmt.Errorf("durationMs must be > 0, got %d", c.DurationMs)
	}
	if c.Cards.MaxDelayMs < 0 {
		return fmt.Errorf("cards.maxDelayMs must be >= 0, got %d", c.Cards.MaxDelayMs)
	}
	if c.DetailFadeMs < 0 {
		return fmt.Errorf("detailFadeMs must be >= 0, got %d", c.DetailFadeMs)
	}

	switch c.Cards.Layout {
	case CardLayoutTable, CardLayoutSphere, CardLayoutRecede:
	default:
		return fmt.Errorf("unknown cards.layout %q", c.Cards.Layout)
	}

	if err := checkEase("camera.ease", c.Camera.Ease); err != nil {
		return err
	}
	if err := checkEase("cards.ease", c.Cards.Ease); err != nil {
		return err
	}

	if c.Pop != nil {
		if c.Pop.DurationMs <= 0 {
			return fmt.Errorf("pop.durationMs must be > 0, got %d", c.Pop.DurationMs)
		}
		if err := checkEase("pop.ease", c.Pop.Ease); err != nil {
			return err
		}
	}

	if c.Focus != nil {
		if err := checkEase("focus.ease", c.Focus.Ease); err != nil {
			return err
		}
		switch c.Focus.AttachDetail {
		case AttachDetailImmediate, AttachDetailAfterDuration:
		default:
			return fmt.Errorf("unknown focus.attachDetail %q", c.Focus.AttachDetail)
		}
	}
	return nil
}

func checkEase(field, name string) error {
	if _, ok := utils.EasingByName(name); !ok {
		return fmt.Errorf("unknown easing %q for %s", name, field)
	}
	return nil
}
