package openai

import "time"

const (
	// DefaultBaseURL is the default OpenAI API endpoint
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the default model to use
	DefaultModel = "gpt-4o-mini"

	// DeepSeekBaseURL serves the OpenAI-compatible DeepSeek API
	DeepSeekBaseURL = "https://api.deepseek.com/v1"

	// QwenBaseURL serves the OpenAI-compatible DashScope API
	QwenBaseURL = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 60 * time.Second

	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"

	ToolTypeFunction = "function"
	ToolChoiceNone   = "none"
)
