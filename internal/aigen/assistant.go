package aigen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lovemypet/backend/internal/metrics"
)

// Manual-entry texts returned when generation fails.
const (
	FallbackDescription = "Could not generate AI description. Please write one manually."
	FallbackMessage     = "Could not generate AI message. Please write one manually."
	FallbackTestimonial = "Could not generate AI testimonial. Please write one manually."
)

// PetFacts are the profile fields the prompts draw on.
type PetFacts struct {
	Name              string
	Species           string
	Breed             string
	Color             string
	Age               int
	RoamingArea       string
	PersonalityTraits string
	Description       string
	LastSeenLocation  string
}

// Assistant asks each provider in turn and falls back to manual-entry text.
type Assistant struct {
	providers []Provider
	timeout   time.Duration
}

func NewAssistant(timeout time.Duration, providers ...Provider) *Assistant {
	return &Assistant{providers: providers, timeout: timeout}
}

func (a *Assistant) Enabled() bool { return len(a.providers) > 0 }

func (a *Assistant) generate(ctx context.Context, kind string, p Prompt) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	for _, provider := range a.providers {
		text, err := provider.Generate(ctx, p)
		if err == nil {
			metrics.RecordGeneration(kind, true)
			return text, nil
		}
		slog.Warn("AI generation failed", "provider", provider.Name(), "kind", kind, "error", err)
	}
	metrics.RecordGeneration(kind, false)
	return "", ErrNoProvider
}

// Description drafts a profile blurb. imageDataURL may be empty; an invalid
// one is ignored.
func (a *Assistant) Description(ctx context.Context, pet PetFacts, imageDataURL string) string {
	prompt := Prompt{Text: fmt.Sprintf(`Write a heartwarming, short profile description for a pet. The description should be suitable for a social platform for pet lovers and should highlight the pet's unique charm.

Use the provided image to describe the pet's physical appearance, including its fur color, markings, and any distinguishing features.

Pet Details:
- Name: %s
- Species: %s
- Breed: %s
- Color: %s
- Age: %d
- Personality Traits: %s

Generate the description now.`, pet.Name, pet.Species, pet.Breed, pet.Color, pet.Age, pet.PersonalityTraits)}

	if imageDataURL != "" {
		if mime, data, ok := ParseDataURL(imageDataURL); ok {
			prompt.ImageMIME, prompt.ImageData = mime, data
		} else {
			slog.Warn("invalid image data URL, generating description without image")
		}
	}

	text, err := a.generate(ctx, "description", prompt)
	if err != nil {
		return FallbackDescription
	}
	return text
}

// Keywords returns 5-7 search keywords, or none when generation fails.
func (a *Assistant) Keywords(ctx context.Context, pet PetFacts) []string {
	text, err := a.generate(ctx, "keywords", Prompt{Text: fmt.Sprintf(`Based on the following pet profile, generate 5-7 relevant keywords for search and filtering. Keywords should include breed, color, size, temperament, and location hints. Return as a single comma-separated string without any introductory text.

Pet Details:
- Name: %s
- Species: %s
- Breed: %s
- Color: %s
- Age: %d
- Primary Roaming Area: %s
- Personality Traits: %s

Example output: golden retriever, friendly, energetic, family dog, large, golden, central park

Generate the keywords now.`, pet.Name, pet.Species, pet.Breed, pet.Color, pet.Age, pet.RoamingArea, pet.PersonalityTraits)})
	if err != nil {
		return []string{}
	}
	return SplitKeywords(text)
}

func SplitKeywords(text string) []string {
	out := []string{}
	for _, kw := range strings.Split(text, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

func (a *Assistant) MissingMessage(ctx context.Context, pet PetFacts, lastSeenLocation, lastSeenTime string) string {
	text, err := a.generate(ctx, "missing_message", Prompt{Text: fmt.Sprintf(`You are a helpful assistant for a community of pet lovers. A user has lost their pet and needs to write an alert message.
Based on the details below, write a clear, concise, and heartfelt message to the community.
The message should include the pet's name, a brief description of its appearance and personality, its last seen location and time, and a call to action.
Do not add any introductory text like "Here is a draft:". Just generate the message itself.

Pet Details:
- Name: %s
- Species: %s
- Breed: %s
- Color: %s
- Key characteristics from profile: %s

Last Seen:
- Location: %s
- Time: %s

Generate the message now.`, pet.Name, pet.Species, pet.Breed, pet.Color, pet.Description, lastSeenLocation, lastSeenTime)})
	if err != nil {
		return FallbackMessage
	}
	return text
}

func (a *Assistant) OwnerTestimonial(ctx context.Context, pet PetFacts) string {
	text, err := a.generate(ctx, "owner_testimonial", Prompt{Text: fmt.Sprintf(`Write a short, heartfelt testimonial from a pet owner who has just been reunited with their pet.
The pet's name is %s, a %s.
The tone should be relieved and happy. Focus on the joy of having them back.
Do not add any introductory text like "Here is a draft:". Just generate the testimonial itself.
Keep it to about 2-3 sentences.`, pet.Name, pet.Breed)})
	if err != nil {
		return FallbackTestimonial
	}
	return text
}

func (a *Assistant) FinderTestimonial(ctx context.Context, pet PetFacts) string {
	text, err := a.generate(ctx, "finder_testimonial", Prompt{Text: fmt.Sprintf(`Write a short, positive testimonial from the perspective of someone who found a lost pet.
The pet's name is %s. They were last seen near %s.
The tone should be happy and humble. Focus on the positive feeling of helping out.
Do not add any introductory text like "Here is a draft:". Just generate the testimonial itself.
Keep it to about 2-3 sentences.`, pet.Name, pet.LastSeenLocation)})
	if err != nil {
		return FallbackTestimonial
	}
	return text
}
