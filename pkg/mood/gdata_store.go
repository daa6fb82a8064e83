package mood

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const (
	moodsObject   = "moods"
	moodsProperty = "entries"
)

// ErrCorruptMoods 已保存的情绪数据无法解析
var ErrCorruptMoods = errors.New("saved moods are corrupt")

// GdataStore 基于 gdata 的情绪存储
//
// 整个列表序列化为一个 YAML 文档保存在同一个属性下，
// 追加时读出全部、追加、整体写回。
type GdataStore struct {
	manager *gdata.Manager
}

// OpenGdataStore 打开应用 appName 的 gdata 存储
func OpenGdataStore(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata storage: %w", err)
	}
	return NewGdataStore(m), nil
}

// NewGdataStore 使用已有的 gdata Manager 创建存储
func NewGdataStore(m *gdata.Manager) *GdataStore {
	return &GdataStore{manager: m}
}

// Load 读取全部记录；尚未保存过任何记录时返回空列表
//
// 数据损坏时记录警告并返回空列表，花园仍然可以打开。
func (s *GdataStore) Load(ctx context.Context) ([]Record, error) {
	records, err := s.load(ctx)
	if errors.Is(err, ErrCorruptMoods) {
		log.Printf("[GdataStore] Warning: %v (treating as empty)", err)
		return []Record{}, nil
	}
	return records, err
}

// Append 在列表末尾追加一条记录
//
// 已有数据损坏时拒绝写入，避免覆盖还能手动恢复的内容；Clear 之后可以继续记录。
func (s *GdataStore) Append(ctx context.Context, r Record) error {
	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	records = append(records, r)
	return s.save(records)
}

func (s *GdataStore) load(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.manager.ObjectPropExists(moodsObject, moodsProperty) {
		return []Record{}, nil
	}

	data, err := s.manager.LoadObjectProp(moodsObject, moodsProperty)
	if err != nil {
		return nil, fmt.Errorf("failed to load moods: %w", err)
	}

	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptMoods, err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// Clear 清空全部记录
func (s *GdataStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.save([]Record{})
}

// Close gdata 没有需要释放的句柄
func (s *GdataStore) Close() error {
	return nil
}

func (s *GdataStore) save(records []Record) error {
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal moods: %w", err)
	}
	if err := s.manager.SaveObjectProp(moodsObject, moodsProperty, data); err != nil {
		return fmt.Errorf("failed to save moods: %w", err)
	}
	log.Printf("[GdataStore] Saved %d mood records", len(records))
	return nil
}
