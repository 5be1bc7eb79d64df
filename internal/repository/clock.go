package repository

import "time"

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock は time.Now を返す。
var SystemClock Clock = ClockFunc(time.Now)
