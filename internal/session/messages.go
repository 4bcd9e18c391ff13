package session

// Text shown to the user.
const (
	PromptTopic      = "What health topic or medical condition would you like to learn about? "
	PromptFocus      = "Do you want to focus on a specific aspect (e.g., symptoms, treatment, prevention)? If yes, enter it, otherwise press Enter: "
	PromptGate       = "Press Enter when you are ready to take a comprehension check."
	PromptAnswer     = "Enter your answer to the quiz question: "
	PromptNextAction = "Would you like to take another quiz on this topic (enter 'quiz'), learn about a new topic (enter 'new'), or exit (enter 'exit')? "

	MsgTopicChosen    = "You have chosen to learn about: %s"
	MsgSummaryHeading = "Here is a summary of what you asked about:"
	MsgQuizHeading    = "Quiz Question:"
	MsgFeedback       = "Your grade and feedback:"
	MsgAnotherQuiz    = "Let's take another quiz on this topic!"
	MsgNewTopic       = "Let's learn about a new topic!"
	MsgInvalidChoice  = "Invalid input. Please enter 'quiz', 'new', or 'exit'."
	MsgFarewell       = "Thank you for using HealthBot. Stay healthy!"
)
