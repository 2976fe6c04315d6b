package provider

import (
	"strconv"

	"github.com/example/microdecide/internal/core/rng"
	"github.com/example/microdecide/internal/models"
)

// GenerateFunc builds a decision from a seed. It must be pure: the same
// seed and createdAt always give the same decision.
type GenerateFunc func(seed int64, createdAt int64) models.Decision

var (
	emailSenders = []string{"DailyDeals", "TechGadgets", "TravelNow", "FitnessClub"}

	emailSubjects = []string{
		"Black Friday Deals Inside!",
		"50% Off Everything This Week",
		"Free Shipping on Orders Over $50",
		"Exclusive Offer For You",
	}
)

const (
	emailSampleSize = 3
	photoImageURL   = "https://images.unsplash.com/photo-1622588907467-915ab508ae2a?w=900&auto=format&fit=crop&q=60"
)

func decisionID(prefix string, seed int64) string {
	return prefix + "-" + strconv.FormatInt(seed, 10)
}

func acceptSkip(acceptLabel string) []models.DecisionAction {
	return []models.DecisionAction{
		{Kind: models.ActionAccept, Label: acceptLabel},
		{Kind: models.ActionSkip, Label: "Skip"},
	}
}

// generateEmailUnsub suggests unsubscribing from a low-engagement sender.
// Draw 0 picks the sender, draws 1..3 pick the sample subjects.
func generateEmailUnsub(seed int64, createdAt int64) models.Decision {
	r := rng.New(seed)
	sender := emailSenders[r.Intn(len(emailSenders))]
	sample := make([]string, emailSampleSize)
	for i := range sample {
		sample[i] = emailSubjects[r.Intn(len(emailSubjects))]
	}

	return models.Decision{
		ID:          decisionID("email", seed),
		ProviderID:  models.ProviderEmailUnsub,
		Title:       "Unsubscribe from " + sender + "?",
		Explanation: "Low engagement in the last 60 days",
		Payload: models.Payload{
			"sender":           sender + " Newsletter",
			"last_seen":        "2023-10-15",
			"example_subjects": sample,
			"unsubscribe_link": "https://example.com/unsubscribe",
		},
		Actions:   acceptSkip("Accept"),
		CreatedAt: createdAt,
	}
}

func generatePhotoDupes(seed int64, createdAt int64) models.Decision {
	return models.Decision{
		ID:          decisionID("photo", seed),
		ProviderID:  models.ProviderPhotoDupes,
		Title:       "Remove Duplicate Photos?",
		Explanation: "Found visually similar images from the same session",
		Payload: models.Payload{
			"image": photoImageURL,
		},
		Actions:   acceptSkip("Accept"),
		CreatedAt: createdAt,
	}
}

func generateWorkout(seed int64, createdAt int64) models.Decision {
	return models.Decision{
		ID:          decisionID("workout", seed),
		ProviderID:  models.ProviderWorkout,
		Title:       "Do a 5-min stretch?",
		Explanation: "Quick routine to boost energy",
		Payload:     models.Payload{},
		Actions:     acceptSkip("Start"),
		CreatedAt:   createdAt,
	}
}
