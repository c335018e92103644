package services

import (
	"math"

	"github.com/Ethansurfas/launchpad/internal/models"
)

// HighGhostingThreshold is the ghosting percentage above which a company is flagged.
const HighGhostingThreshold = 25

// Aggregate holds per-dimension means of student reviews, one decimal each.
type Aggregate struct {
	Responsiveness      float64 `json:"responsiveness"`
	Transparency        float64 `json:"transparency"`
	Professionalism     float64 `json:"professionalism"`
	InterviewExperience float64 `json:"interview_experience"`
	Overall             float64 `json:"overall"`
}

// roundedMean rounds sum/n to one decimal, halves away from zero.
func roundedMean(sum, n int) float64 {
	return math.Round(float64(sum)*10/float64(n)) / 10
}

// AggregateReviews derives the company aggregate and ghosting rate from the
// full review set. No reviews yields a nil aggregate and rate 0.
func AggregateReviews(reviews []models.Review) (*Aggregate, int) {
	n := len(reviews)
	if n == 0 {
		return nil, 0
	}

	var resp, transp, prof, exp, overall, ghosted int
	for _, r := range reviews {
		resp += r.Responsiveness
		transp += r.Transparency
		prof += r.Professionalism
		exp += r.InterviewExperience
		overall += r.Overall
		if r.WasGhosted {
			ghosted++
		}
	}

	agg := &Aggregate{
		Responsiveness:      roundedMean(resp, n),
		Transparency:        roundedMean(transp, n),
		Professionalism:     roundedMean(prof, n),
		InterviewExperience: roundedMean(exp, n),
		Overall:             roundedMean(overall, n),
	}
	rate := int(math.Round(float64(ghosted) * 100 / float64(n)))
	return agg, rate
}

func HighGhosting(rate int) bool { return rate > HighGhostingThreshold }

const (
	TipResponsiveness      = "Respond to candidates within 48 hours to improve responsiveness ratings"
	TipTransparency        = "Include salary range and timeline expectations in job postings"
	TipProfessionalism     = "Review candidate materials before interviews and be on time"
	TipInterviewExperience = "Use consistent, job-relevant questions and provide feedback"
	TipGhosting            = "Always send rejection emails - ghosting severely impacts your reputation"
	TipPraise              = "Great work! Your ratings are excellent. Keep it up!"
)

// Tips lists improvement suggestions for an employer. A nil aggregate has none.
func Tips(agg *Aggregate, ghostingRate int) []string {
	if agg == nil {
		return []string{}
	}
	tips := []string{}
	if agg.Responsiveness < 4 {
		tips = append(tips, TipResponsiveness)
	}
	if agg.Transparency < 4 {
		tips = append(tips, TipTransparency)
	}
	if agg.Professionalism < 4 {
		tips = append(tips, TipProfessionalism)
	}
	if agg.InterviewExperience < 4 {
		tips = append(tips, TipInterviewExperience)
	}
	if ghostingRate > 10 {
		tips = append(tips, TipGhosting)
	}
	if len(tips) == 0 && agg.Overall >= 4 {
		tips = append(tips, TipPraise)
	}
	return tips
}
