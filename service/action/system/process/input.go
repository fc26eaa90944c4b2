package process

// Process describes an OS process
type Process struct {
	Pid     int     `json:"pid"`
	Command string  `json:"command,omitempty"`
	CPU     float64 `json:"cpu"`
	Memory  float64 `json:"memory"`
}

type ListInput struct {
	TimeoutMs int `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty" description:"max wait time for the process listing"`
}

type ListOutput struct {
	Processes []*Process `json:"processes,omitempty"`
	Text      string     `json:"text,omitempty"`
}

type KillInput struct {
	Pid    int    `json:"pid,omitempty" description:"process id"`
	Signal string `json:"signal,omitempty" description:"signal name, SIGTERM by default"`
}

type KillOutput struct {
	Text string `json:"text,omitempty"`
}
