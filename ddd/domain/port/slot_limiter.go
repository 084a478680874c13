package port

// SlotLimiter 并发槽位限制。Acquire成功后必须配对Release。
type SlotLimiter interface {
	Acquire() bool
	Release()
}
