package limiter

import (
	"sync/atomic"

	"github.com/vidprocc/vidpro/ddd/domain/port"
)

// LocalSlotLimiter 进程内原子计数的槽位限制
type LocalSlotLimiter struct {
	capacity int64
	inUse    atomic.Int64
}

// NewLocalSlotLimiter 创建本地限制器
func NewLocalSlotLimiter(capacity int) port.SlotLimiter {
	if capacity < 1 {
		capacity = 1
	}
	return &LocalSlotLimiter{capacity: int64(capacity)}
}

// Acquire 先占后验，超额立即回退，无竞态窗口。
func (l *LocalSlotLimiter) Acquire() bool {
	if l.inUse.Add(1) > l.capacity {
		l.inUse.Add(-1)
		return false
	}
	return true
}

func (l *LocalSlotLimiter) Release() {
	l.inUse.Add(-1)
}
