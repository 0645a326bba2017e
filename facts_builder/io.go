package facts_builder

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hssqz/dragon-tiger/model"
)

// LoadSnapshot 从磁盘加载龙虎榜快照JSON
func LoadSnapshot(path string) (model.Snapshot, error) {
	var snap model.Snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return snap, fmt.Errorf("加载快照失败: %w", err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("解析快照JSON失败: %w", err)
	}
	return snap, nil
}
