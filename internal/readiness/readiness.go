// Package readiness scores a short questionnaire about operational maturity
// and recommends an AKS operating mode.
package readiness

import (
	"github.com/imamik/akswiz/internal/config"
)

// Threshold is the minimum score that recommends Standard mode.
const Threshold = 5

// Answer is the response to one question.
type Answer int

const (
	Unanswered Answer = iota
	Yes
	No
)

// String returns "yes", "no" or "unanswered".
func (a Answer) String() string {
	switch a {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unanswered"
	}
}

// Question is a single readiness question. A yes answer adds Weight to the
// score.
type Question struct {
	ID     string
	Text   string
	Hint   string
	Weight int
}

// Questions is the fixed questionnaire in display order.
var Questions = []Question{
	{
		ID:     "dedicated_platform",
		Text:   "Does your team include dedicated platform / infrastructure engineers responsible for Kubernetes operations?",
		Hint:   "Platform engineers own cluster upgrades, node pool sizing, and networking configurations.",
		Weight: 2,
	},
	{
		ID:     "upgrade_cadence",
		Text:   "Can your team commit to reviewing and applying Kubernetes upgrades within 30 days of release?",
		Hint:   "AKS drops support for Kubernetes versions older than three minor releases.",
		Weight: 2,
	},
	{
		ID:     "custom_networking",
		Text:   "Do you require advanced networking customisation (custom CNI, BYO VNET, UDR, or private cluster)?",
		Hint:   "AKS Automatic constrains certain networking options to accelerate onboarding.",
		Weight: 3,
	},
	{
		ID:     "gitops_cicd",
		Text:   "Does your team already operate a GitOps or CI/CD pipeline for infrastructure changes?",
		Hint:   "Mature CI/CD pipelines are required to safely manage Standard AKS cluster lifecycle.",
		Weight: 2,
	},
	{
		ID:     "node_customisation",
		Text:   "Do your workloads require custom OS configurations, GPU nodes, or specialised node pool settings?",
		Hint:   "AKS Automatic manages node pools on your behalf, limiting low-level node customisation.",
		Weight: 3,
	},
	{
		ID:     "multi_env",
		Text:   "Are you deploying across multiple environments (dev, staging, prod) with environment-specific configurations?",
		Hint:   "Multi-environment setups benefit from IaC-driven Standard AKS to keep configs consistent.",
		Weight: 1,
	},
}

// Answers maps question IDs to responses. Missing IDs are unanswered.
type Answers map[string]Answer

// Answered returns how many questions have a yes or no answer.
func Answered(answers Answers) int {
	n := 0
	for _, q := range Questions {
		if a := answers[q.ID]; a == Yes || a == No {
			n++
		}
	}
	return n
}

// Complete reports whether every question has been answered.
func Complete(answers Answers) bool {
	return Answered(answers) == len(Questions)
}

// Score sums the weights of the questions answered yes. No answers and
// unanswered questions contribute nothing.
func Score(answers Answers) int {
	score := 0
	for _, q := range Questions {
		if answers[q.ID] == Yes {
			score += q.Weight
		}
	}
	return score
}

// Recommend returns the recommended mode. The second result is false while
// any question is unanswered.
func Recommend(answers Answers) (config.Mode, bool) {
	if !Complete(answers) {
		return "", false
	}
	if Score(answers) >= Threshold {
		return config.ModeStandard, true
	}
	return config.ModeAutomatic, true
}

// Rationale explains a recommended mode.
func Rationale(mode config.Mode) string {
	if mode == config.ModeAutomatic {
		return "Your team will benefit from AKS Automatic's managed operations: fewer Kubernetes administration tasks so you can focus on application delivery."
	}
	return "Your team has the maturity to leverage AKS Standard's full control over cluster configuration, networking, and lifecycle management."
}
