package utils

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

// OpenStorage 打开跨平台的用户数据存储
//
// 返回错误时调用方应降级为只在内存中保存设置
func OpenStorage(appName string) (*gdata.Manager, error) {
	if err := ensureStorageDir(appName); err != nil {
		return nil, err
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage for %s: %w", appName, err)
	}
	return m, nil
}
