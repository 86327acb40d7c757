package questions

import (
	"encoding/json"
	"fmt"
	"os"
)

// Meta is the per-game description loaded from the game config file: the
// tours to play and which board cells hide special questions.
type Meta struct {
	QuestionsPerTopic int        `json:"questionsPerTopic"`
	Tours             []Tour     `json:"tours"`
	Manual            []Cell     `json:"manualQuestions"`
	Auctions          []Cell     `json:"auctions"`
	CatsInBags        []CatInBag `json:"catsInBags"`
}

func LoadMeta(path string) (Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return Meta{}, fmt.Errorf("open game config: %w", err)
	}
	defer f.Close()

	var m Meta
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return Meta{}, fmt.Errorf("parse game config: %w", err)
	}
	return m, nil
}
