package mood

import "context"

// Source 只读的情绪数据源，花园启动时读取一次
type Source interface {
	Load(ctx context.Context) ([]Record, error)
}

// Store 可写的情绪存储，供日记和历史命令使用
//
// Load 按保存顺序返回记录，同一天的多条记录以最后保存的为准由调用方决定。
type Store interface {
	Source
	Append(ctx context.Context, r Record) error
	Clear(ctx context.Context) error
	Close() error
}
