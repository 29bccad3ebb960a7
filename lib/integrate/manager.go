package integrate

import (
	"errors"

	"distr/lib/core"
	"distr/lib/manager"
)

// ManagerContext accumulates worker core counts as they join, partitions
// the job's [A, B) interval across them in proportion to reported core
// count as each worker is dispatched to, and sums partial results as they
// arrive. It implements manager.Capabilities.
//
// Ported from original_source/examples/integral_app.c's
// integral_manager_ctx_t and its three callbacks; the partitioning math is
// unchanged.
type ManagerContext struct {
	job             core.JobConfig
	requiredWorkers int
	workerCores     []int
	totalCores      int
	prefixCores     int
	assignedN       int64
	nextLeft        float64
	total           float64
}

var _ manager.Capabilities = (*ManagerContext)(nil)

// NewManagerContext builds a ManagerContext for a job to be split across
// requiredWorkers workers.
func NewManagerContext(requiredWorkers int, job core.JobConfig) (*ManagerContext, error) {
	if requiredWorkers < 1 {
		return nil, errors.New("integrate: required_workers must be >= 1")
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &ManagerContext{
		job:             job,
		requiredWorkers: requiredWorkers,
		workerCores:     make([]int, requiredWorkers),
		nextLeft:        job.A,
	}, nil
}

// Total returns the accumulated integral once every worker's RESULT has
// been folded in.
func (c *ManagerContext) Total() float64 {
	return c.total
}

// TotalCores returns the sum of every admitted worker's reported core
// count.
func (c *ManagerContext) TotalCores() int {
	return c.totalCores
}

func (c *ManagerContext) OnWorkerHello(workerIndex int, helloPayload []byte) error {
	if workerIndex < 0 || workerIndex >= c.requiredWorkers {
		return errors.New("integrate: worker index out of range")
	}
	hello, err := DecodeHello(helloPayload)
	if err != nil {
		return err
	}
	cores := int(hello.Cores)
	if cores < 1 {
		cores = 1
	}
	c.workerCores[workerIndex] = cores
	c.totalCores += cores
	return nil
}

func (c *ManagerContext) BuildTask(workerIndex int, buf []byte) (int, error) {
	if workerIndex < 0 || workerIndex >= c.requiredWorkers || c.totalCores < 1 {
		return 0, errors.New("integrate: build_task called out of order")
	}

	c.prefixCores += c.workerCores[workerIndex]

	var right float64
	var ni int64
	if workerIndex == c.requiredWorkers-1 {
		right = c.job.B
		ni = c.job.N - c.assignedN
	} else {
		right = c.job.A + (c.job.B-c.job.A)*(float64(c.prefixCores)/float64(c.totalCores))
		ni = int64(float64(c.job.N) * (float64(c.workerCores[workerIndex]) / float64(c.totalCores)))
		if ni < 1 {
			ni = 1
		}
		if c.assignedN+ni > c.job.N {
			ni = c.job.N - c.assignedN
		}
	}
	c.assignedN += ni

	n := EncodeTask(buf, Task{
		ID:      uint32(workerIndex),
		A:       c.nextLeft,
		B:       right,
		N:       ni,
		Threads: uint32(c.workerCores[workerIndex]),
	})
	c.nextLeft = right
	return n, nil
}

func (c *ManagerContext) OnWorkerResult(workerIndex int, resultPayload []byte) error {
	result, err := DecodeResult(resultPayload)
	if err != nil {
		return err
	}
	if int(result.ID) < 0 || int(result.ID) >= c.requiredWorkers {
		return errors.New("integrate: result id out of range")
	}
	c.total += result.Value
	return nil
}
