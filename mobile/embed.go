//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前需要把根目录的数据文件复制到此目录：
//
//	mkdir -p mobile/data && cp data/choreography.yaml data/sample_people.tsv mobile/data/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed data/choreography.yaml data/sample_people.tsv
var dataFS embed.FS
