package clock

import "time"

// Clock 时间来源，服务层通过注入获取当前时间
type Clock interface {
	Now() time.Time
}

// Real 系统时钟
type Real struct{}

// Now 返回当前时间
func (Real) Now() time.Time { return time.Now() }

// Fixed 固定时间的时钟，用于测试
type Fixed struct {
	T time.Time
}

// Now 返回固定时间
func (f Fixed) Now() time.Time { return f.T }

// Func 函数适配器
type Func func() time.Time

// Now 调用函数获取时间
func (f Func) Now() time.Time { return f() }
