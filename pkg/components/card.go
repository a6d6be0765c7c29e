package components

import "github.com/decker502/cardgallery/pkg/dataset"

// CardComponent 卡片与数据记录的对应关系
// Index 与 Session.Records 的下标一致
type CardComponent struct {
	Index  int
	Record dataset.Record
}
