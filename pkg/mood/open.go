package mood

import (
	"context"
	"fmt"
)

// 存储后端名称
const (
	BackendGdata  = "gdata"
	BackendSQLite = "sqlite"
)

// OpenStore 按后端名称打开情绪存储
//
// 参数:
//   - backend: "gdata"（默认）或 "sqlite"
//   - appName: gdata 使用的应用名
//   - dbPath: SQLite 数据库路径（仅 sqlite 后端使用）
func OpenStore(backend, appName, dbPath string) (Store, error) {
	switch backend {
	case "", BackendGdata:
		return OpenGdataStore(appName)
	case BackendSQLite:
		return OpenSQLiteStore(dbPath)
	default:
		return nil, fmt.Errorf("unknown mood store %q (want %q or %q)", backend, BackendGdata, BackendSQLite)
	}
}

// StaticSource 内存中的只读数据源，用于演示和测试
type StaticSource []Record

// Load 返回记录的副本
func (s StaticSource) Load(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Record, len(s))
	copy(out, s)
	return out, nil
}
