package taskgraph

// logNodeRegistered, logNodeDispatched, logNodeCompleted, logNodeFailed,
// logExecutionStarted, and logExecutionFinished are thin wrappers around the scheduler's configured logger,
// kept here so the registration and execution paths stay free of logging
// boilerplate. A nil logger (the default) makes every call below a no-op,
// since logiface.Logger is safe to use at its zero value.

func (s *Scheduler) logNodeRegistered(id NodeID, kind string) {
	s.logger.Debug().
		Int("node", int(id)).
		Str("kind", kind).
		Log("registered node")
}

func (s *Scheduler) logNodeDispatched(id NodeID) {
	s.logger.Debug().
		Int("node", int(id)).
		Log("dispatched node")
}

func (s *Scheduler) logNodeCompleted(id NodeID) {
	s.logger.Debug().
		Int("node", int(id)).
		Log("completed node")
}

func (s *Scheduler) logNodeFailed(id NodeID, err error) {
	s.logger.Err().
		Int("node", int(id)).
		Err(err).
		Log("node failed")
}

func (s *Scheduler) logExecutionStarted(ready int, total int) {
	s.logger.Info().
		Int("ready", ready).
		Int("total", total).
		Log("execution started")
}

func (s *Scheduler) logExecutionFinished() {
	s.logger.Info().Log("execution finished, pool idle")
}
