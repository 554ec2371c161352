package application

type SessionStartCommand struct {
	SessionID string
	Source    string
}

type UserPromptCommand struct {
	SessionID string
	Prompt    string
}

type StopCommand struct {
	SessionID string
}
