//go:build !android

package utils

// ensureStorageDir 非 Android 平台由 gdata 自行创建目录
func ensureStorageDir(appName string) error {
	return nil
}
