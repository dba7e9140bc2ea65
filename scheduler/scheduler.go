package scheduler

import (
	"context"
	"log"
	"time"
)

// DailyScheduler 每天在固定时刻执行一次任务。
type DailyScheduler struct{}

func NewDailyScheduler() *DailyScheduler {
	return &DailyScheduler{}
}

func (s *DailyScheduler) ScheduleDaily(ctx context.Context, hour, min int, job func()) {
	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
			if !next.After(now) {
				next = next.Add(24 * time.Hour)
			}
			wait := time.Until(next)
			log.Printf("距离下次检测还有: %v", wait)

			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			job()
		}
	}()
}
