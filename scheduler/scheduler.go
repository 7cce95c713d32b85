package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"profile_search/config"
	"profile_search/logger"
	"profile_search/services"
)

// 验证小时和分钟是否有效
func validateHourMinute(hour, minute int) (int, int) {
	if hour < 0 || hour > 23 {
		logger.Warn("无效的小时值", "hour", hour, "default", 3)
		hour = 3
	}
	if minute < 0 || minute > 59 {
		logger.Warn("无效的分钟值", "minute", minute, "default", 0)
		minute = 0
	}
	return hour, minute
}

// 计算下一个指定时间点
func getNextTimePoint(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// 任务类型
type TaskType int

const (
	TaskPruneSearchLogs TaskType = iota
)

// 任务状态
type TaskStatus struct {
	LastRun     time.Time
	NextRun     time.Time
	IsRunning   bool
	Description string
}

// 任务调度器
type Scheduler struct {
	cfg   *config.Config
	store services.SearchLogStore
	tasks map[TaskType]*TaskStatus
	mutex sync.Mutex
	wg    sync.WaitGroup
}

// 创建新的调度器
func NewScheduler(cfg *config.Config, store services.SearchLogStore) *Scheduler {
	return &Scheduler{
		cfg:   cfg,
		store: store,
		tasks: make(map[TaskType]*TaskStatus),
	}
}

// Start 创建调度器并在后台运行，ctx 取消时退出
func Start(ctx context.Context, cfg *config.Config, store services.SearchLogStore) *Scheduler {
	s := NewScheduler(cfg, store)
	s.initTasks(time.Now())

	go s.run(ctx)

	logger.Info("调度器已启动", "check_interval_sec", cfg.Scheduler.CheckIntervalSec)
	return s
}

// 初始化任务
func (s *Scheduler) initTasks(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.cfg.Debug.Enabled {
		// Debug模式：按配置的秒数间隔清理
		interval := time.Duration(s.cfg.Debug.PruneFreqSec) * time.Second
		s.tasks[TaskPruneSearchLogs] = &TaskStatus{
			LastRun:     now.Add(-interval),
			NextRun:     now.Add(interval),
			Description: fmt.Sprintf("搜索历史清理 (Debug模式: 每%d秒)", s.cfg.Debug.PruneFreqSec),
		}
		logger.Info("Debug模式已启用", "frequency_seconds", s.cfg.Debug.PruneFreqSec)
	} else {
		// 正常模式：每天在指定时间点运行
		hour, minute := validateHourMinute(s.cfg.Scheduler.PruneHour, s.cfg.Scheduler.PruneMinute)
		next := getNextTimePoint(now, hour, minute)
		s.tasks[TaskPruneSearchLogs] = &TaskStatus{
			LastRun:     next.Add(-24 * time.Hour),
			NextRun:     next,
			Description: fmt.Sprintf("搜索历史清理 (%02d:%02d)", hour, minute),
		}
		logger.Info("正常模式", "schedule_time", fmt.Sprintf("%02d:%02d", hour, minute))
	}

	logger.Info("定时任务初始化完成", "task_count", len(s.tasks))
}

// 主循环
func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(s.cfg.Scheduler.CheckIntervalSec) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			logger.Info("调度器已停止")
			return
		case now := <-ticker.C:
			s.checkTasks(ctx, now)
		}
	}
}

// 检查任务
func (s *Scheduler) checkTasks(ctx context.Context, now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for taskType, status := range s.tasks {
		// 如果任务正在运行，跳过
		if status.IsRunning {
			continue
		}

		// 如果任务的NextRun为零值，跳过（表示不需要定期调度）
		if status.NextRun.IsZero() {
			continue
		}

		// 如果到达或超过下次运行时间，执行任务
		if !now.Before(status.NextRun) {
			status.IsRunning = true
			s.wg.Add(1)
			go s.runTask(ctx, taskType, now)
		}
	}
}

// 运行任务
func (s *Scheduler) runTask(ctx context.Context, taskType TaskType, now time.Time) {
	defer s.wg.Done()
	defer func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()

		status := s.tasks[taskType]
		status.IsRunning = false
		status.LastRun = now

		// 更新下次运行时间
		if s.cfg.Debug.Enabled {
			status.NextRun = now.Add(time.Duration(s.cfg.Debug.PruneFreqSec) * time.Second)
		} else {
			hour, minute := validateHourMinute(s.cfg.Scheduler.PruneHour, s.cfg.Scheduler.PruneMinute)
			status.NextRun = getNextTimePoint(now, hour, minute)
		}

		logger.Info("任务执行完成", "task", status.Description, "next_run", status.NextRun.Format("2006-01-02 15:04:05"))
	}()

	switch taskType {
	case TaskPruneSearchLogs:
		if _, err := services.PruneSearchLogs(ctx, s.cfg, s.store, now); err != nil {
			logger.Error("清理搜索历史失败", "error", err)
		}
	}
}

// Status 返回任务状态的快照
func (s *Scheduler) Status(taskType TaskType) (TaskStatus, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	status, ok := s.tasks[taskType]
	if !ok {
		return TaskStatus{}, false
	}
	return *status, true
}
