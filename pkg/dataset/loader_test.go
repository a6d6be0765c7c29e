package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

// TestParseValid 测试合法数据解析
func TestParseValid(t *testing.T) {
	input := "id\tname\tdepartment\tposition\n" +
		"1\tAda\tEngineering\tEngineer\r\n" +
		"\n" +
		"2\t Bo \tDesign\tDesigner\n"

	records, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	want := Record{ID: "2", Name: "Bo", Department: "Design", Position: "Designer"}
	if records[1] != want {
		t.Errorf("records[1] = %+v, want %+v", records[1], want)
	}
	if id, _ := records[0].NumericID(); id != 1 {
		t.Errorf("NumericID = %v, want 1", id)
	}
	if records[0].Initial() != "A" {
		t.Errorf("Initial = %q, want A", records[0].Initial())
	}
}

// TestParseErrors 测试各种格式错误及行号
func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantText string
	}{
		{"字段不足", "1\tAda\tEngineering\n", 1, "expected 4 tab-separated"},
		{"字段为空", "1\tAda\t\tEngineer\n", 1, "field department must not be empty"},
		{"id 非数字", "x1\tAda\tEng\tEngineer\n", 1, "is not numeric"},
		{"id 为 NaN", "NaN\tAda\tEng\tEngineer\n", 1, "is not numeric"},
		{"小数 id 重复", "1\tA\tB\tC\n1.0\tD\tE\tF\n", 2, "duplicate id 1.0"},
		{"id 重复", "1\tA\tB\tC\n2\tD\tE\tF\n1\tG\tH\tI\n", 3, "first seen on line 1"},
		{"逗号分隔", "1,Ada,Eng,Engineer\n", 1, "expected 4 tab-separated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if pe.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", pe.Line, tt.wantLine)
			}
			if !strings.Contains(pe.Error(), tt.wantText) {
				t.Errorf("error %q does not contain %q", pe.Error(), tt.wantText)
			}
		})
	}
}

// TestParseExtraColumns 多余列和行尾制表符被忽略，id 可以是小数
func TestParseExtraColumns(t *testing.T) {
	input := "id\tname\tdepartment\tposition\tnote\n" +
		"1.5\tAda\tEngineering\tEngineer\tremote\tx\n" +
		"2\tBo\tDesign\tDesigner\t\t\n"

	records, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	want := []Record{
		{ID: "1.5", Name: "Ada", Department: "Engineering", Position: "Engineer"},
		{ID: "2", Name: "Bo", Department: "Design", Position: "Designer"},
	}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for i := range want {
		if records[i] != want[i] {
			t.Errorf("records[%d] = %+v, want %+v", i, records[i], want[i])
		}
	}
	if id, err := records[0].NumericID(); err != nil || id != 1.5 {
		t.Errorf("NumericID = %v, %v; want 1.5", id, err)
	}
}

// TestParseEmpty 只有表头或空白时返回 ErrEmpty
func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", "\n\n", "id\tname\tdepartment\tposition\n"} {
		if _, err := Parse(strings.NewReader(input)); !errors.Is(err, ErrEmpty) {
			t.Errorf("input %q: expected ErrEmpty, got %v", input, err)
		}
	}
}

// TestLoadFile 测试从磁盘加载
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.tsv")
	if err := os.WriteFile(path, []byte("7\tAda\tEng\tEngineer\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if len(records) != 1 || records[0].ID != "7" {
		t.Errorf("unexpected records: %+v", records)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.tsv")); err == nil {
		t.Error("expected error for missing file")
	}
}

// TestLoadFS 测试从 fs.FS（拖放文件）加载，错误保留 ParseError
func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"ok.tsv":  {Data: []byte("1\tA\tB\tC\n")},
		"bad.tsv": {Data: []byte("1\tA\tB\n")},
	}

	if _, err := LoadFS(fsys, "ok.tsv"); err != nil {
		t.Errorf("LoadFS(ok) error: %v", err)
	}

	_, err := LoadFS(fsys, "bad.tsv")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Errorf("expected wrapped *ParseError, got %v", err)
	}
}

// TestSampleDataset 内置示例数据可以被解析
func TestSampleDataset(t *testing.T) {
	records, err := LoadFile(filepath.Join("..", "..", "data", "sample_people.tsv"))
	if err != nil {
		t.Skipf("sample dataset unavailable: %v", err)
	}
	if len(records) != 12 {
		t.Errorf("expected 12 sample records, got %d", len(records))
	}
}

// TestFindDataFile 测试拖放文件中数据文件的选择
func TestFindDataFile(t *testing.T) {
	tests := []struct {
		name    string
		files   fstest.MapFS
		want    string
		wantErr error
	}{
		{
			name:  "单个文件",
			files: fstest.MapFS{"people.tsv": {Data: []byte("1\tA\tB\tC\n")}},
			want:  "people.tsv",
		},
		{
			name: "tsv 优先于 txt",
			files: fstest.MapFS{
				"a.txt":      {Data: []byte("x")},
				"b/team.TSV": {Data: []byte("x")},
			},
			want: "b/team.TSV",
		},
		{
			name:    "没有数据文件",
			files:   fstest.MapFS{"photo.png": {Data: []byte("x")}},
			wantErr: ErrNoDataFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindDataFile(tt.files)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("FindDataFile() = %q, %v; want %q", got, err, tt.want)
			}
		})
	}
}
