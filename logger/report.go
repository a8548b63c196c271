package logger

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aws/aws-sdk-go-v2/aws"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

var (
	queriesServed   int64
	pagesFetched    int64
	recordsFetched  int64
	recordsRejected int64
	emptyResults    int64
	warnsTotal      int64
	errorsTotal     int64
	absorbedByStage sync.Map // map[string]*int64
	warnsByComp     sync.Map // map[string]*int64
)

func recordWarn(component string) {
	atomic.AddInt64(&warnsTotal, 1)
	v, _ := warnsByComp.LoadOrStore(component, new(int64))
	atomic.AddInt64(v.(*int64), 1)
}

func recordError(component string) {
	atomic.AddInt64(&errorsTotal, 1)
}

// IncrementQueries counts one completed engine invocation.
func IncrementQueries() {
	atomic.AddInt64(&queriesServed, 1)
}

// IncrementPages counts one upstream page fetch carrying n raw items.
func IncrementPages(n int) {
	atomic.AddInt64(&pagesFetched, 1)
	atomic.AddInt64(&recordsFetched, int64(n))
}

// IncrementRejected counts one raw record dropped during normalization.
func IncrementRejected() {
	atomic.AddInt64(&recordsRejected, 1)
}

// IncrementEmptyResults counts one invocation that failed closed to the
// empty result.
func IncrementEmptyResults() {
	atomic.AddInt64(&emptyResults, 1)
}

// RecordAbsorbedError counts an absorbed failure against the pipeline
// stage that swallowed it.
func RecordAbsorbedError(stage string) {
	v, _ := absorbedByStage.LoadOrStore(stage, new(int64))
	atomic.AddInt64(v.(*int64), 1)
}

// StartReport begins periodic logging of engine and host statistics.
func StartReport(ctx context.Context, log *Log, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-ticker.C:
				logReport(ctx, log)
			}
		}
	}()
}

func logReport(ctx context.Context, log *Log) {
	cpuPercent, _ := cpu.Percent(0, false)
	memStats, _ := mem.VirtualMemory()

	cpuPct := 0.0
	if len(cpuPercent) > 0 {
		cpuPct = cpuPercent[0]
	}
	memMB := int64(0)
	if memStats != nil {
		memMB = int64(memStats.Used) / 1024 / 1024
	}

	absorbed := map[string]int64{}
	absorbedByStage.Range(func(k, v any) bool {
		absorbed[k.(string)] = atomic.LoadInt64(v.(*int64))
		return true
	})
	warnsComp := map[string]int64{}
	warnsByComp.Range(func(k, v any) bool {
		warnsComp[k.(string)] = atomic.LoadInt64(v.(*int64))
		return true
	})

	fields := Fields{
		"queries_served":   atomic.LoadInt64(&queriesServed),
		"pages_fetched":    atomic.LoadInt64(&pagesFetched),
		"records_fetched":  atomic.LoadInt64(&recordsFetched),
		"records_rejected": atomic.LoadInt64(&recordsRejected),
		"empty_results":    atomic.LoadInt64(&emptyResults),
		"warns":            atomic.LoadInt64(&warnsTotal),
		"errors":           atomic.LoadInt64(&errorsTotal),
		"absorbed_errors":  absorbed,
		"warns_by_comp":    warnsComp,
		"goroutines":       runtime.NumGoroutine(),
		"cpu_percent":      cpuPct,
		"memory_mb":        memMB,
	}

	log.WithComponent("report").WithFields(fields).Info("runtime report")

	data := []cwtypes.MetricDatum{
		{MetricName: aws.String("Agriflow-CPUPercent"), Unit: cwtypes.StandardUnitPercent, Value: aws.Float64(cpuPct)},
		{MetricName: aws.String("Agriflow-MemoryMB"), Unit: cwtypes.StandardUnitMegabytes, Value: aws.Float64(float64(memMB))},
		{MetricName: aws.String("Agriflow-QueriesServed"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(atomic.LoadInt64(&queriesServed)))},
		{MetricName: aws.String("Agriflow-PagesFetched"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(atomic.LoadInt64(&pagesFetched)))},
		{MetricName: aws.String("Agriflow-RecordsFetched"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(atomic.LoadInt64(&recordsFetched)))},
		{MetricName: aws.String("Agriflow-RecordsRejected"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(atomic.LoadInt64(&recordsRejected)))},
		{MetricName: aws.String("Agriflow-EmptyResults"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(atomic.LoadInt64(&emptyResults)))},
		{MetricName: aws.String("Agriflow-Warns"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(atomic.LoadInt64(&warnsTotal)))},
		{MetricName: aws.String("Agriflow-Errors"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(atomic.LoadInt64(&errorsTotal)))},
	}

	for stage, count := range absorbed {
		data = append(data, cwtypes.MetricDatum{
			MetricName: aws.String("Agriflow-AbsorbedErrors"),
			Unit:       cwtypes.StandardUnitCount,
			Dimensions: []cwtypes.Dimension{{Name: aws.String("Stage"), Value: aws.String(stage)}},
			Value:      aws.Float64(float64(count)),
		})
	}

	publishMetrics(ctx, data)
}
