package service

import (
	"fmt"
	"unicode/utf8"
)

// Prompt builders. Each takes the shared transcript (or narrative) and
// returns the full instruction text sent to the text provider.

// futureSystemInstruction steers the narrative synthesis; the transcript
// rides separately as the user turn.
const futureSystemInstruction = `You are helping generate a descriptive "future" for a user based on a questionnaire.

Use ONLY the information in the questionnaire. Do NOT reveal the questions directly.
Instead, infer themes, directions, and likely life trajectories over the next 10-20 years.
Although this is a "future", do not make significant references to futuristic ideas or ideals. Assume the world has not changed much, just the user.
Avoid supernatural guarantees or exact dates. Try to be realistic, cautious, and critical. One of the main purposes of this "future" is to help improve someone's decision-making and planning.
When the user's stated intent contradicts their behavior, prioritize their behavior. For example, if a user says they care about health but also say they drink 5 cans of soda each day, the fact that they drink soda should have a much greater weight over their stated intent.

You must respond ONLY in JSON with this exact structure:

{
  "description": "a detailed multi-paragraph narrative about the person's future",
  "qualityScore": 0-100 number representing how positive/fulfilling the future is overall,
  "qualityLabel": "a short qualitative label like 'Challenging', 'Balanced', 'Strong Outlook'"
}`

func buildFutureUserPrompt(transcript string) string {
	return fmt.Sprintf("Here is the questionnaire data:\n\n%s\n", transcript)
}

func buildRoundQuestionsPrompt(transcript string, requestedRoundNumber, count int) string {
	return fmt.Sprintf(`Based on the following questionnaire transcript, generate %d open-ended follow-up questions for Round %d.
These questions should primarily dig deeper into the user's habits, actions, and typical behaviors.
The purpose of these questions is to determine the quality of someone's life as quickly as possible. Don't be afraid to ask harder questions, but don't dive into overly sensitive topics without decent context and reason.

Return ONLY a JSON array of question objects with this shape:

[{"id": "short_snake_case_id", "prompt": "the question text", "type": "text", "category": "career|health|relationships|finance|personal", "options": ["only", "for", "select"]}]

Use type "select" with an options array for closed questions and "text" otherwise.

%s
`, count, requestedRoundNumber, transcript)
}

func buildImagePromptInstruction(description string) string {
	return fmt.Sprintf(`You are an expert visual prompt writer for a realistic photographic image model.

Given the following description of someone's life and future context, write a SINGLE, concise English prompt (no more than 1-2 short sentences) that a text-to-image model can use to render a realistic scene.

Requirements:
- Focus on how the person looks (age, gender presentation, clothing, expression, posture) and their immediate environment.
- Make it clear what the person is doing in the scene and what setting they are in.
- Prefer concrete visual details over abstract concepts or metaphors.
- Do NOT mention questionnaires, descriptions, prompts, "future", or anything about how this text was generated.
- Do NOT include quotation marks or any extra commentary - just the prompt itself.

DESCRIPTION:
%s
`, description)
}

// buildSubjectScenario combines the narrative with the optional selfie
// description into a "same person, now in this scenario" framing for the
// image-prompt compression step.
func buildSubjectScenario(narrative, imageDescription string) string {
	ref := imageDescription
	if ref == "" {
		ref = "(no separate image description provided)"
	}
	return "The subject of this image is the same person as in the following reference photo description.\n\n" +
		"Reference photo description (who the person is and what they look like):\n" +
		ref +
		"\n\n" +
		"Now depict this same person inside the following realistic future life scenario. " +
		"The person in the image must clearly be the same individual in age, body type, skin tone, hair, and general style, " +
		"but shown within this future: \n" +
		narrative
}

const describeImagePrompt = "Describe this image in a few sentences. This description will be used to generate a story about the person in the image."

// truncateRunes caps a string at max runes. Cutting on a rune boundary keeps
// truncated prompts valid UTF-8.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
