package service

// PendingSessions returns how many sessions have transitions tracked.
func (ls *LessonService) PendingSessions() int {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return len(ls.pending)
}
