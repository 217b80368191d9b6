package model

import (
	"time"

	"film-vault/pkg/utils"
)

// SessionState 观看会话状态：无会话 → 进行中 → 已结束
type SessionState int

const (
	SessionNone SessionState = iota
	SessionOpen
	SessionClosed
)

func (s SessionState) String() string {
	switch s {
	case SessionOpen:
		return "open"
	case SessionClosed:
		return "closed"
	default:
		return "none"
	}
}

// WatchHistory 观看记录
// 同一 (movie, ip) 最多只有一条 EndTime 为空的记录：开始新会话前会先关闭旧会话。
// 被新会话顶替而关闭的记录 Duration 保持为空。
type WatchHistory struct {
	ID        int64          `gorm:"primaryKey;autoIncrement;comment:观看记录ID" json:"id"`
	MovieID   int64          `gorm:"not null;index:idx_watch_movie_ip_open,priority:1;comment:电影ID" json:"movie_id"`
	UserID    *int64         `gorm:"comment:用户ID" json:"user_id"`
	IPAddress string         `gorm:"size:45;not null;index:idx_watch_movie_ip_open,priority:2;index:idx_watch_ip_start,priority:1;comment:客户端IP" json:"ip_address"`
	StartTime time.Time      `gorm:"not null;index:idx_watch_ip_start,priority:2;comment:开始时间" json:"start_time"`
	EndTime   *time.Time     `gorm:"index:idx_watch_movie_ip_open,priority:3;comment:结束时间" json:"end_time"`
	Duration  *time.Duration `gorm:"comment:观看时长（纳秒）" json:"duration"`

	Movie *Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"movie,omitempty"`
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}

// State 返回会话当前状态，nil 表示无会话
func (w *WatchHistory) State() SessionState {
	switch {
	case w == nil:
		return SessionNone
	case w.EndTime == nil:
		return SessionOpen
	default:
		return SessionClosed
	}
}

// IsLive 会话仍在进行且开始时间落在 window 内才算"正在观看"。
// 客户端崩溃未调用 stop 的会话一直处于 open，只会因为超出 window 不再计入。
func (w *WatchHistory) IsLive(now time.Time, window time.Duration) bool {
	if w.State() != SessionOpen {
		return false
	}
	return !w.StartTime.Before(now.Add(-window))
}

// Stop 将进行中的会话结束并计算时长，已结束的会话不做任何修改。
// 返回是否发生了状态迁移。
func (w *WatchHistory) Stop(at time.Time) bool {
	if w.State() != SessionOpen {
		return false
	}
	end := at
	if end.Before(w.StartTime) {
		end = w.StartTime
	}
	d := end.Sub(w.StartTime)
	w.EndTime = &end
	w.Duration = &d
	return true
}

// DurationHMS 以 HH:MM:SS 返回观看时长，未记录时为 00:00:00
func (w *WatchHistory) DurationHMS() string {
	if w.Duration == nil {
		return utils.FormatHMS(0)
	}
	return utils.FormatHMS(*w.Duration)
}
