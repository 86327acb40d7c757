package game

import "math/rand"

const incorrectAnswerReply = "No"

var correctAnswerReplies = []string{
	"Correct!",
	"Right!",
	"Spot on!",
	"No doubt about it",
	"Brilliant answer!",
	"Excellent!",
	"Well done, moving on",
}

var stickers = []string{
	"celebrate-01",
	"celebrate-02",
	"applause-01",
	"applause-02",
	"confetti-01",
	"thumbs-up-01",
}

func randCorrectAnswerReply() string {
	return correctAnswerReplies[rand.Intn(len(correctAnswerReplies))]
}

func randSticker() string {
	return stickers[rand.Intn(len(stickers))]
}
