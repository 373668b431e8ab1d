package pkg

const (
	// INF_FLOW is larger than any flow a real pipe network can carry.
	INF_FLOW = 2e9
	// EPSILON is the tolerance used when comparing flow values in MLD.
	EPSILON = 1e-6
)

const (
	DEFAULT_SOURCE_NAME = "S"
	DEFAULT_SINK_NAME   = "T"
)
