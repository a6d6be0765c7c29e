// Package dataset 加载并校验画廊的数据记录
//
// 上传格式为制表符分隔的文本，每行至少 4 列：id、name、department、position，
// 多余的列忽略。首行可以是同名表头，空行会被忽略。
package dataset

import (
	"math"
	"strconv"
)

// Record 一条人员记录，加载后不可变
type Record struct {
	ID         string
	Name       string
	Department string
	Position   string
}

// NumericID 返回数值形式的 ID，可以是小数
func (r Record) NumericID() (float64, error) {
	return parseID(r.ID)
}

// parseID 解析有限数值，拒绝 NaN 和 Inf
func parseID(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}

// Initial 返回姓名首字母，用于卡片主视觉
func (r Record) Initial() string {
	for _, c := range r.Name {
		return string(c)
	}
	return "?"
}
