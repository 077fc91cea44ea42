package session

// Model identifies an inference target
type Model string

const (
	ModelGPT4oMini    Model = "gpt-4o-mini"
	ModelGPT4o        Model = "gpt-4o"
	ModelO1Mini       Model = "o1-mini"
	ModelO1Preview    Model = "o1-preview"
	ModelClaudeSonnet Model = "claude-sonnet-4"
	ModelDallE3       Model = "dall-e-3"
)

// Provider identifies which API serves a model
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// modelInfo holds the presentation and budget properties derived from a model
type modelInfo struct {
	displayName     string
	chatPrefix      string
	maxContextChars int
	provider        Provider
	image           bool
	systemRole      bool // whether the model accepts a system entry
}

var models = map[Model]modelInfo{
	ModelGPT4oMini: {
		displayName:     "4o mini",
		chatPrefix:      "4o mini:\n\n",
		maxContextChars: 128000,
		provider:        ProviderOpenAI,
		systemRole:      true,
	},
	ModelGPT4o: {
		displayName:     "4o",
		chatPrefix:      "4o:\n\n",
		maxContextChars: 128000,
		provider:        ProviderOpenAI,
		systemRole:      true,
	},
	ModelO1Mini: {
		displayName:     "o1 mini",
		chatPrefix:      "o1 mini:\n\n",
		maxContextChars: 128000,
		provider:        ProviderOpenAI,
	},
	ModelO1Preview: {
		displayName:     "o1",
		chatPrefix:      "o1:\n\n",
		maxContextChars: 128000,
		provider:        ProviderOpenAI,
	},
	ModelClaudeSonnet: {
		displayName:     "Claude Sonnet",
		chatPrefix:      "Claude Sonnet:\n\n",
		maxContextChars: 128000,
		provider:        ProviderAnthropic,
		systemRole:      true,
	},
	ModelDallE3: {
		displayName: "DALL·E 3",
		chatPrefix:  "DALL·E 3:\n\n",
		provider:    ProviderOpenAI,
		image:       true,
	},
}

// Valid reports whether m is a known model
func (m Model) Valid() bool {
	_, ok := models[m]
	return ok
}

// Provider returns the API serving this model
func (m Model) Provider() Provider {
	return models[m].provider
}

// IsImage reports whether this model generates images instead of text
func (m Model) IsImage() bool {
	return models[m].image
}

// AcceptsSystemRole reports whether a system entry may be sent to this model
func (m Model) AcceptsSystemRole() bool {
	return models[m].systemRole
}

// TextModels lists the chat models in menu order
func TextModels() []Model {
	return []Model{ModelGPT4oMini, ModelGPT4o, ModelO1Mini, ModelO1Preview, ModelClaudeSonnet}
}
