package agent

// Tool names.
const (
	ToolGetResumeText          = "get_resume_text"
	ToolGetJobDescription      = "get_job_description"
	ToolWebSearch              = "web_search"
	ToolOptimizeResumeSections = "optimize_resume_sections"
)

// Payload keys shared by tools and the trace builder.
const (
	PayloadKeyOK         = "ok"
	PayloadKeyError      = "error"
	PayloadKeyOutputPath = "output_path"
	PayloadKeyTrace      = "_trace"
	PayloadKeyResults    = "results"
	PayloadKeyRefused    = "refused"
)

// Log prefixes
const (
	LogPrefixExecute = "internal.agent.Executor.Execute"
)
