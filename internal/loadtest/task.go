package loadtest

import (
	"context"
	"fmt"
	"math/rand"
)

// Task is one kind of simulated request. Run classifies the outcome: a nil
// error is a success, a non-nil error marks that single invocation failed.
// Weight biases random selection; a weight-3 task runs three times as often
// as a weight-1 task.
type Task struct {
	Name   string
	Weight int
	Run    func(ctx context.Context, c *Client) error
}

// classifyError builds the failure reason for an unexpected status.
func classifyError(wanted, got int) error {
	return fmt.Errorf("expected %d, got %d", wanted, got)
}

// pickTask selects a task by weight using the provided source.
func pickTask(rng *rand.Rand, tasks []Task) *Task {
	total := 0
	for i := range tasks {
		total += tasks[i].Weight
	}
	n := rng.Intn(total)
	for i := range tasks {
		n -= tasks[i].Weight
		if n < 0 {
			return &tasks[i]
		}
	}
	return &tasks[len(tasks)-1]
}
