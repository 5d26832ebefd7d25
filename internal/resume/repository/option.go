package repository

// CreateResumeOptions holds parameters for inserting a new Resume.
type CreateResumeOptions struct {
	FileName    string
	FileURL     string
	LinkedInURL string
	GitHubURL   string
	LeetCodeURL string
}
