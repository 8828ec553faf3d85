package cleanup

import (
	"sync"

	"go.uber.org/zap"
)

type Job struct {
	Name string
	F    func() error
}

var (
	mu   sync.Mutex
	jobs []*Job
)

func Register(j *Job) {
	mu.Lock()
	defer mu.Unlock()
	jobs = append(jobs, j)
}

// CleanUp runs registered jobs in reverse registration order, so resources
// are released before the ones they were built on. Jobs run once.
func CleanUp(logger *zap.Logger) {
	mu.Lock()
	pending := jobs
	jobs = nil
	mu.Unlock()

	for i := len(pending) - 1; i >= 0; i-- {
		j := pending[i]
		logger.Info("cleanup_job_started", zap.String("job", j.Name))
		if err := j.F(); err != nil {
			logger.Error("cleanup_job_failed", zap.String("job", j.Name), zap.Error(err))
			continue
		}
		logger.Info("cleanup_job_done", zap.String("job", j.Name))
	}
}
