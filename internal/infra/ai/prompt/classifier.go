package prompt

import "fmt"

// GetSystemPrompt frames the model as a scam/threat classifier. The caller
// only scans the reply for threat-indicating words, so the prompt pins the
// vocabulary down.
func GetSystemPrompt() string {
	return "You are a scam and threat classifier for social platforms. " +
		"Inspect the submitted content and reply with a one-line classification. " +
		"If the content is a scam, phishing attempt, or otherwise hostile, the reply " +
		"must contain the word \"threat\" or \"phishing\". Otherwise reply \"safe\"."
}

// GetUserPrompt builds the classification prompt for one submission.
func GetUserPrompt(platform, input string) string {
	return fmt.Sprintf("Classify this %s for threats: %s", platform, input)
}
