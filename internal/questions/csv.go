package questions

import (
	"encoding/csv"
	"fmt"
	"os"
)

type key struct {
	topic string
	tier  int
}

// CSVStorage reads the question corpus from a CSV file.
// Row format: question,answer,comment,topic. Rows belonging to the same topic
// must be contiguous; the difficulty tier is the row's 1-based position within
// its topic block.
type CSVStorage struct {
	questions map[key]Question
}

func NewCSVStorage(path string) (*CSVStorage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open questions file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse questions file: %w", err)
	}

	questions := make(map[key]Question)
	currentTopic := ""
	tier := 0
	for i, record := range records {
		if i == 0 {
			// header row
			continue
		}
		if len(record) != 4 {
			return nil, fmt.Errorf("row %d: expected 4 fields, got %d", i+1, len(record))
		}
		topic := record[3]
		if topic != currentTopic {
			currentTopic = topic
			tier = 1
		} else {
			tier++
		}
		questions[key{topic, tier}] = Question{
			Text:     record[0],
			Answer:   record[1],
			Comments: record[2],
		}
	}

	return &CSVStorage{questions: questions}, nil
}

func (s *CSVStorage) Get(topic string, tier int) (Question, bool) {
	q, ok := s.questions[key{topic, tier}]
	return q, ok
}
