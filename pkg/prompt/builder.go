// Package prompt renders provider-neutral prompts for the tutor intents.
// Build is pure: the same inputs always produce the same string.
package prompt

import (
	"fmt"
	"strings"

	"github.com/artem13815/tutor/pkg/content"
)

// Build renders the prompt for intent. question is the student's question for
// content.IntentAsk and the instruction for content.IntentExplainSlide.
func Build(intent content.Intent, question string, c content.Resolved) string {
	question = strings.TrimSpace(question)
	if intent == content.IntentExplainSlide {
		return explainSlide(question, c)
	}
	return ask(question, c)
}

func ask(question string, c content.Resolved) string {
	if c.Kind() == content.KindNone {
		return fmt.Sprintf(`You are an AI tutor helping a student. Please answer their question in a clear, educational manner.

Student's question: %s`, question)
	}

	var material string
	switch c.Kind() {
	case content.KindImageOnly:
		material = "The referenced slide contains no text; its content is provided as the attached image."
	case content.KindTextAndImage:
		material = strings.TrimSpace(c.Text) + "\n\nAn image from the referenced slide is also attached."
	default:
		material = strings.TrimSpace(c.Text)
	}

	return fmt.Sprintf(`You are an AI tutor helping a student understand their course material.
Use the following slide deck content as your primary reference to answer the question.
If the answer cannot be fully derived from the slides, you may supplement with your knowledge,
but clearly indicate which parts come from the slides vs. your general knowledge.

%s

Student's question: %s

Please provide a clear, educational response that:
1. Primarily uses information from the slides
2. Clearly indicates which parts come from the slides
3. Only supplements with your knowledge if necessary
4. Maintains a helpful, tutoring tone`, material, question)
}

const explainStyle = `Explain it the way an expert teacher would:
1. Start with a short overview of what the slide is about
2. Break the content down step by step
3. Use analogies and concrete examples to make abstract ideas intuitive
4. Point out common misconceptions
5. Finish with a brief summary of the key takeaways`

func explainSlide(instruction string, c content.Resolved) string {
	var b strings.Builder
	b.WriteString("You are an expert teacher explaining a single lecture slide to a student.\n")
	b.WriteString("Explain exactly the content of this slide; do not drift into unrelated topics.\n\n")

	switch c.Kind() {
	case content.KindImageOnly:
		b.WriteString("This slide has no text. Explain it from the attached image of the slide alone.\n\n")
	case content.KindTextAndImage:
		b.WriteString("Use both the slide text below and the attached image of the slide.\n\n")
		fmt.Fprintf(&b, "Slide text:\n%s\n\n", strings.TrimSpace(c.Text))
	default:
		fmt.Fprintf(&b, "Slide text:\n%s\n\n", strings.TrimSpace(c.Text))
	}

	if instruction != "" {
		fmt.Fprintf(&b, "Request: %s\n\n", instruction)
	}
	b.WriteString(explainStyle)
	return b.String()
}
