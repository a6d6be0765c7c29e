package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCheck(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newCheckCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// TestGalleryCheck 测试数据文件和编排配置的检查输出
func TestGalleryCheck(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "team.tsv")
	bad := filepath.Join(dir, "broken.tsv")
	choreo := filepath.Join(dir, "fast.yaml")
	if err := os.WriteFile(good, []byte("1\tAda\tEngineering\tCTO\n2\tGrace\tEngineering\tEngineer\n3\tLin\tDesign\tDesigner\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("1\tAda\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(choreo, []byte("table:\n  durationMs: 500\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		args    []string
		wantErr bool
		want    []string
	}{
		{"合法数据", []string{good}, false, []string{"3 records", "Engineering    2"}},
		{"格式错误", []string{good, bad}, true, []string{"❌", "line 1"}},
		{"编排配置", []string{"-c", choreo}, false, []string{"table", "500 ms"}},
		{"没有参数", []string{}, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCheck(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v\n%s", err, tt.wantErr, out)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}
