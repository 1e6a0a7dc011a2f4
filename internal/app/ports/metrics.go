package ports

type DecisionMetrics interface {
	RecordAction(kind ActionKind)
	RecordRejected()
	RecordGenerationFailure()
	RecordTransportFailure()
}
