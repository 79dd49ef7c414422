package domain

// TaskStatistics aggregates task counts. Completed and Active only count
// non-archived tasks, so Total is not Completed+Active when archived tasks exist.
type TaskStatistics struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Active    int `json:"active"`
	Advanced  int `json:"advanced"`
	Archived  int `json:"archived"`
}

// Add counts task into the statistics.
func (s *TaskStatistics) Add(task *Task) {
	s.Total++
	if task.Type == TaskTypeAdvanced {
		s.Advanced++
	}
	if task.Archived {
		s.Archived++
		return
	}
	if task.Completed {
		s.Completed++
	} else {
		s.Active++
	}
}
