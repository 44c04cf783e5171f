package notifier

// envelope records one delivery attempt for the log.
type envelope struct {
	from ID
	to   ID
	err  error
}

func (e envelope) log() {
	if e.err != nil {
		logger().Warn("Send failed.", "from", e.from, "to", e.to, "error", e.err)
		return
	}

	logger().Debug("Sent.", "from", e.from, "to", e.to)
}
