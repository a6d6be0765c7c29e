package systems

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/decker502/cardgallery/pkg/dataset"
	"github.com/decker502/cardgallery/pkg/ecs"
	"github.com/decker502/cardgallery/pkg/game"
	"github.com/decker502/cardgallery/pkg/tween"
	"github.com/decker502/cardgallery/pkg/utils"
)

const testFrame = 16 * time.Millisecond

// testRecords 生成 n 条记录
func testRecords(n int) []dataset.Record {
	departments := []string{"Engineering", "Design", "Marketing"}
	records := make([]dataset.Record, n)
	for i := range records {
		records[i] = dataset.Record{
			ID:         fmt.Sprintf("%d", 1000+i),
			Name:       fmt.Sprintf("Person %c", 'A'+i),
			Department: departments[i%len(departments)],
			Position:   "Engineer",
		}
	}
	return records
}

// newTestSession 加载了 n 张卡片的会话
func newTestSession(t *testing.T, n int) *game.Session {
	t.Helper()
	s := game.NewSession(7)
	s.LoadDataset(testRecords(n))
	return s
}

// recordingDetails 记录详情调用顺序，并转发给真实的渲染系统
type recordingDetails struct {
	inner   *CardRenderSystem
	session *game.Session
	calls   []string
}

func (r *recordingDetails) indexOf(id ecs.EntityID) int {
	for i, c := range r.session.Cards {
		if c == id {
			return i
		}
	}
	return -1
}

func (r *recordingDetails) AttachDetail(id ecs.EntityID, rec dataset.Record) {
	r.calls = append(r.calls, fmt.Sprintf("attach:%d", r.indexOf(id)))
	r.inner.AttachDetail(id, rec)
}

func (r *recordingDetails) RemoveDetail(id ecs.EntityID) {
	r.calls = append(r.calls, fmt.Sprintf("remove:%d", r.indexOf(id)))
	r.inner.RemoveDetail(id)
}

func (r *recordingDetails) RefreshFocusedDetail(index int, cards []ecs.EntityID, records []dataset.Record) {
	r.calls = append(r.calls, fmt.Sprintf("refresh:%d", index))
	r.inner.RefreshFocusedDetail(index, cards, records)
}

// step 以固定帧长推进 d
func step(m *tween.Manager, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += testFrame {
		m.Update(testFrame)
	}
}

// settle 推进到没有任务为止
func settle(t *testing.T, m *tween.Manager) {
	t.Helper()
	for i := 0; i < 1000 && m.Busy(); i++ {
		m.Update(testFrame)
	}
	if m.Busy() {
		t.Fatal("插值任务没有在 16s 内结束")
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func vecNear(a, b utils.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}
