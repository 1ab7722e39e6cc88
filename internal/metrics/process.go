package metrics

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessStats собирает сведения о текущем процессе для отладочного вывода
type ProcessStats struct {
	StartTime time.Time
	proc      *process.Process
}

// NewProcessStats создаёт сборщик для текущего процесса
func NewProcessStats() (*ProcessStats, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	return &ProcessStats{StartTime: time.Now(), proc: proc}, nil
}

// Snapshot – снимок состояния процесса
type Snapshot struct {
	Uptime     time.Duration
	CPUPercent float64
	RSSMB      float64
	HeapMB     float64
	Goroutines int
}

// Snapshot возвращает текущие значения. Если процессные метрики недоступны,
// CPU и RSS остаются нулевыми, а ошибка возвращается вместе с остальными данными.
func (ps *ProcessStats) Snapshot() (Snapshot, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	snap := Snapshot{
		Uptime:     time.Since(ps.StartTime),
		HeapMB:     float64(m.HeapAlloc) / 1024 / 1024,
		Goroutines: runtime.NumGoroutine(),
	}

	cpu, err := ps.proc.CPUPercent()
	if err != nil {
		return snap, fmt.Errorf("cpu percent: %w", err)
	}
	snap.CPUPercent = cpu

	mem, err := ps.proc.MemoryInfo()
	if err != nil {
		return snap, fmt.Errorf("memory info: %w", err)
	}
	snap.RSSMB = float64(mem.RSS) / 1024 / 1024
	return snap, nil
}

// String форматирует снимок одной строкой
func (s Snapshot) String() string {
	return fmt.Sprintf("CPU %.1f%%  RSS %.1f MB  heap %.1f MB  goroutines %d  uptime %s",
		s.CPUPercent, s.RSSMB, s.HeapMB, s.Goroutines, s.Uptime.Truncate(time.Second))
}
