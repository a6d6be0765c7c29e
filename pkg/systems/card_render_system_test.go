package systems

import (
	"testing"

	"github.com/decker502/cardgallery/pkg/dataset"
)

// TestDepartmentColor 部门匹配忽略大小写，未知部门使用默认色
func TestDepartmentColor(t *testing.T) {
	tests := []struct {
		department string
		want       string
	}{
		{"Engineering", "engineering"},
		{"  design ", "design"},
		{"MARKETING", "marketing"},
		{"Legal", ""},
	}
	for _, tt := range tests {
		t.Run(tt.department, func(t *testing.T) {
			want := defaultDepartmentColor
			if tt.want != "" {
				want = departmentColors[tt.want]
			}
			if got := DepartmentColor(tt.department); got != want {
				t.Errorf("DepartmentColor(%q) = %v, want %v", tt.department, got, want)
			}
		})
	}
}

// TestPositionBadge 按第一个命中的关键字选择标记
func TestPositionBadge(t *testing.T) {
	tests := []struct {
		position string
		want     string
	}{
		{"CTO", "♠"},
		{"VP of Sales", "♠"},
		{"Design Director", "♦"},
		{"Engineering Manager", "▲"},
		{"Staff Engineer", "●"},
		{"Recruiter", defaultPositionBadge},
	}
	for _, tt := range tests {
		t.Run(tt.position, func(t *testing.T) {
			if got := PositionBadge(tt.position); got != tt.want {
				t.Errorf("PositionBadge(%q) = %q, want %q", tt.position, got, tt.want)
			}
		})
	}
}

// TestDetailLines 详情面板包含姓名、部门、职位和编号
func TestDetailLines(t *testing.T) {
	r := dataset.Record{ID: "1010", Name: "Jonas Berg", Department: "Engineering", Position: "Engineering Manager"}
	got := DetailLines(r)
	want := []string{"Jonas Berg", "Department: Engineering", "Position: ▲ Engineering Manager", "ID: 1010"}
	if len(got) != len(want) {
		t.Fatalf("DetailLines() = %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestRefreshFocusedDetailKeepsSingleDetail 任何时刻最多一张卡片带详情
func TestRefreshFocusedDetailKeepsSingleDetail(t *testing.T) {
	s := newTestSession(t, 4)
	r := NewCardRenderSystem(s, nil)

	r.AttachDetail(s.Cards[0], s.Records[0])
	r.AttachDetail(s.Cards[1], s.Records[1])
	r.RefreshFocusedDetail(2, s.Cards, s.Records)

	for i := range s.Cards {
		style, _ := s.Style(i)
		if style.Detailed != (i == 2) {
			t.Errorf("卡片 %d Detailed = %v", i, style.Detailed)
		}
	}
	style, _ := s.Style(2)
	if style.DetailOpacity != 1 || style.DetailLines[0] != s.Records[2].Name {
		t.Errorf("详情 = %+v", style)
	}

	r.RemoveDetail(s.Cards[2])
	if style.Detailed || style.DetailLines != nil || style.DetailOpacity != 0 {
		t.Errorf("移除后详情 = %+v", style)
	}

	// 越界下标只移除，不挂载
	r.AttachDetail(s.Cards[3], s.Records[3])
	r.RefreshFocusedDetail(9, s.Cards, s.Records)
	for i := range s.Cards {
		if style, _ := s.Style(i); style.Detailed {
			t.Errorf("卡片 %d 不应带详情", i)
		}
	}
}
