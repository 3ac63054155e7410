package clock

import "time"

// Clock внедряется в сервис, чтобы производные поля считались детерминированно в тестах
type Clock interface {
	Now() time.Time
}

type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

// Fixed всегда возвращает один и тот же момент, Set меняет его
type Fixed struct {
	T time.Time
}

func NewFixed(t time.Time) *Fixed {
	return &Fixed{T: t}
}

func (f *Fixed) Now() time.Time {
	return f.T
}

func (f *Fixed) Set(t time.Time) {
	f.T = t
}

func (f *Fixed) Advance(d time.Duration) {
	f.T = f.T.Add(d)
}
