package repository

// OutboxLen counts messages still held by an in-memory outbox.
func OutboxLen(repo OutboxMsgRepository) int {
	r := repo.(*outboxMsgRepository)
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}
