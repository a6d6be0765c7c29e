package embedded

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
)

// withFS 用内存文件系统初始化，测试结束后恢复未初始化状态
func withFS(t *testing.T, files fstest.MapFS) {
	t.Helper()
	Init(files)
	t.Cleanup(func() {
		dataFS = nil
		initialized = false
	})
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/sample_people.tsv": {Data: []byte("1\tAda\tEngineering\tCTO\n")},
		"data/choreography.yaml": {Data: []byte("table:\n  durationMs: 1500\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	if IsInitialized() {
		t.Fatal("expected IsInitialized() to be false before Init()")
	}
	withFS(t, testFS())
	if !IsInitialized() {
		t.Error("expected IsInitialized() to be true after Init()")
	}
}

// TestNotInitialized 未初始化时所有访问都返回 ErrNotInitialized
func TestNotInitialized(t *testing.T) {
	if _, err := Open("data/sample_people.tsv"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Open() error = %v", err)
	}
	if _, err := ReadFile("data/sample_people.tsv"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile() error = %v", err)
	}
	if _, err := Sub("data"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Sub() error = %v", err)
	}
	if Exists("data/sample_people.tsv") {
		t.Error("Exists() should be false before Init()")
	}
}

// TestReadFile 测试路径标准化和前缀检查
func TestReadFile(t *testing.T) {
	withFS(t, testFS())

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"标准路径", "data/sample_people.tsv", false},
		{"带 ./ 前缀", "./data/sample_people.tsv", false},
		{"未知前缀", "assets/logo.png", true},
		{"文件不存在", "data/missing.tsv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && len(data) == 0 {
				t.Error("expected file content")
			}
		})
	}
}

// TestGlobAndSub 测试匹配和子文件系统
func TestGlobAndSub(t *testing.T) {
	withFS(t, testFS())

	matches, err := Glob("data/*.tsv")
	if err != nil || len(matches) != 1 || matches[0] != "data/sample_people.tsv" {
		t.Errorf("Glob() = %v, %v", matches, err)
	}

	sub, err := Sub("data/")
	if err != nil {
		t.Fatalf("Sub() error = %v", err)
	}
	if _, err := fs.Stat(sub, "choreography.yaml"); err != nil {
		t.Errorf("sub FS should contain choreography.yaml: %v", err)
	}
	if !Exists("data/choreography.yaml") {
		t.Error("Exists() = false for an embedded file")
	}
}
