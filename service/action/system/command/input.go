package command

// Input names a command or a command line
type Input struct {
	Command string `json:"command,omitempty" description:"base command name, or a full command line for validate"`
}

type ValidateOutput struct {
	Allowed bool   `json:"allowed,omitempty"`
	Base    string `json:"base,omitempty"`
	Text    string `json:"text,omitempty"`
}

type ChangeOutput struct {
	Changed bool   `json:"changed,omitempty"`
	Text    string `json:"text,omitempty"`
}

type ListInput struct{}

type ListOutput struct {
	Commands []string `json:"commands,omitempty"`
	Text     string   `json:"text,omitempty"`
}
