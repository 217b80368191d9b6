package utils

import (
	"fmt"
	"time"
)

// FormatHMS 将时长格式化为 HH:MM:SS。
// 小时数不取模，超过 24 小时会显示为 25:00:00 这样的值；不足一秒的部分截断，负数按 0 处理。
func FormatHMS(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
