package handlers

import (
	"context"
	"runtime"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"mytube.com/cmd/api/pack"
	"mytube.com/pkg/errno"
)

type HostStats struct {
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryPercent float64 `json:"memoryPercent"`
	Goroutines    int     `json:"goroutines"`
}

// HealthCheck answers as long as the process serves requests; host stats
// are best effort.
func HealthCheck(ctx context.Context, c *app.RequestContext) {
	stats := HostStats{Goroutines: runtime.NumGoroutine()}
	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		stats.CPUPercent = pct[0]
	} else if err != nil {
		hlog.CtxDebugf(ctx, "cpu stats unavailable: %v", err)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = vm.UsedPercent
	} else {
		hlog.CtxDebugf(ctx, "memory stats unavailable: %v", err)
	}
	pack.SendResponse(c, errno.SuccessCode, stats, "OK")
}
