package group

import "fmt"

// TaskError wraps an error together with the index, within a batch
// passed to [WaitAll] or [MapSlice], of the Task that produced it. This
// is the group package's equivalent of the core runtime's bare failure
// token: the core only ever attributes a failure to "the one Task that
// observed it"; a batch of many Tasks needs to say which one.
type TaskError struct {
	Index int
	Err   error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("group: task[%d] failed: %v", e.Index, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }
