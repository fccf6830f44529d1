package llm

import "fmt"

// SystemInstructions sets the interviewer persona for every feedback request.
const SystemInstructions = "You are Paul Graham, the founder of Y Combinator. Provide brief, direct feedback on the interviewee's response in your characteristic style. Be concise, insightful, and if necessary, critical."

// UserPrompt is the single user turn sent alongside SystemInstructions.
func UserPrompt(question, transcript string) string {
	return fmt.Sprintf("The interview question was: %s\n\nThe interviewee's response was: %s", question, transcript)
}
