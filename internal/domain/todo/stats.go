package todo

import (
	"fmt"
	"time"
)

// Statistics 每个优先级的平均完成耗时（分钟），始终包含三个优先级
type Statistics map[Priority]int64

// NewStatistics 创建三个优先级均为 0 的统计结果
func NewStatistics() Statistics {
	stats := make(Statistics, 3)
	for _, p := range Priorities() {
		stats[p] = 0
	}
	return stats
}

// DurationFunc 计算两个时间点之间的时长
type DurationFunc func(a, b time.Time) (time.Duration, error)

// DurationBetween a 到 b 的时长，b 早于 a 视为数据不一致
func DurationBetween(a, b time.Time) (time.Duration, error) {
	if b.Before(a) {
		return 0, fmt.Errorf("%w: end %s precedes start %s", ErrInternal, b.Format(time.RFC3339), a.Format(time.RFC3339))
	}
	return b.Sub(a), nil
}

// AverageCompletionMinutes 已完成待办从创建到完成的平均整分钟数
// 无数据时为 0；先按整分钟累加再整除（截断，不四舍五入）
func AverageCompletionMinutes(items []*TodoItem, duration DurationFunc) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if duration == nil {
		duration = DurationBetween
	}

	var total int64
	for _, item := range items {
		if !item.Done || item.DoneDate == nil {
			return 0, fmt.Errorf("%w: todo %d is not completed", ErrInternal, item.ID)
		}
		d, err := duration(item.CreationTime, *item.DoneDate)
		if err != nil {
			return 0, fmt.Errorf("todo %d: %w", item.ID, err)
		}
		total += int64(d / time.Minute)
	}
	return total / int64(len(items)), nil
}
