package websearch

import (
	"context"
	"fmt"
	"strings"
)

const maxKeywordResults = 5

type keywordCategory struct {
	name     string
	keywords []string
}

// Ordered so that results are deterministic.
var atsKeywords = []keywordCategory{
	{"ai engineer", []string{
		"Machine Learning, Deep Learning, Neural Networks, TensorFlow, PyTorch",
		"Natural Language Processing (NLP), Computer Vision, LLMs, Transformers",
		"Python, R, SQL, Data Analysis, Model Training, Model Deployment",
		"LangChain, RAG, Prompt Engineering, Vector Databases, Embeddings",
		"AWS, Azure, GCP, Docker, Kubernetes, MLOps, CI/CD",
	}},
	{"nlp", []string{
		"Natural Language Processing, Text Mining, Sentiment Analysis, Named Entity Recognition",
		"BERT, GPT, Transformers, Hugging Face, spaCy, NLTK",
		"Language Models, Text Classification, Information Extraction, Question Answering",
		"Tokenization, Word Embeddings, Attention Mechanisms, Sequence-to-Sequence",
	}},
	{"llm", []string{
		"Large Language Models, GPT, BERT, LLaMA, Claude, Gemini",
		"Prompt Engineering, Few-Shot Learning, Fine-Tuning, RLHF",
		"LangChain, LlamaIndex, Vector Databases, RAG (Retrieval-Augmented Generation)",
		"OpenAI API, Anthropic API, Model Evaluation, Hallucination Mitigation",
	}},
	{"action verbs", []string{
		"Developed, Engineered, Implemented, Designed, Architected, Built",
		"Optimized, Enhanced, Improved, Increased, Reduced, Streamlined",
		"Led, Managed, Coordinated, Collaborated, Mentored, Trained",
		"Analyzed, Evaluated, Assessed, Researched, Investigated, Tested",
	}},
}

var defaultKeywords = []Result{
	{Title: "Core AI/ML: Machine Learning, Deep Learning, Neural Networks, TensorFlow, PyTorch, Scikit-learn", URL: "built-in-ai-ml"},
	{Title: "NLP/LLM: Natural Language Processing, Large Language Models, Transformers, BERT, GPT, LangChain", URL: "built-in-nlp"},
	{Title: "Data: Python, SQL, Data Analysis, Feature Engineering, Model Training, Model Evaluation", URL: "built-in-data"},
	{Title: "Cloud/DevOps: AWS, Azure, Docker, Kubernetes, CI/CD, MLOps, Model Deployment", URL: "built-in-cloud"},
	{Title: "Action Verbs: Developed, Engineered, Optimized, Implemented, Designed, Led, Analyzed", URL: "built-in-verbs"},
}

// Keywords answers from a curated ATS keyword list. It never fails.
type Keywords struct{}

func NewKeywords() *Keywords { return &Keywords{} }

func (k *Keywords) Name() string { return ProviderKeywords }

func (k *Keywords) Search(_ context.Context, query string, _ int) ([]Result, error) {
	q := strings.ToLower(query)

	var out []Result
	for _, cat := range atsKeywords {
		if !strings.Contains(q, cat.name) {
			continue
		}
		for i, kw := range cat.keywords {
			out = append(out, Result{
				Title: "ATS Keywords: " + kw,
				URL:   fmt.Sprintf("built-in-keywords-%s-%d", cat.name, i),
			})
		}
	}
	if len(out) == 0 {
		out = append(out, defaultKeywords...)
	}
	if len(out) > maxKeywordResults {
		out = out[:maxKeywordResults]
	}
	return out, nil
}
