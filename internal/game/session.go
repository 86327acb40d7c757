package game

import (
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/quizdash/quizdash/internal/questions"
)

// Session is the aggregate owning all game state. It is single-writer: the
// caller applies one input at a time and executes the returned intents. No
// method blocks; unauthorized or out-of-phase inputs are logged no-ops.
type Session struct {
	adminID string
	log     zerolog.Logger

	phase  Phase
	roster *Roster
	board  *Board
	source questions.Source

	perTopic int
	tours    []questions.Tour
	tourIx   int

	kinds map[questions.Cell]Kind
	cats  map[questions.Cell]questions.CatInBag

	current *Player // whose turn it is to choose
	chooser *Player // who picked the live question; regains the turn on failure

	falsestarted map[string]bool
	answered     map[string]bool

	// live question payload, valid in question-carrying phases
	question questions.Question
	topic    string
	cost     int
	anyone   bool // false for auction / cat-in-bag single-answerer flows
}

// NewSession validates the configuration against the question source and
// builds a session waiting for players. Construction failures are fatal;
// nothing else in the session's lifetime is.
func NewSession(adminID string, source questions.Source, questionsPerTopic int, log zerolog.Logger) (*Session, error) {
	if questionsPerTopic == 0 {
		return nil, fmt.Errorf("questions per topic can't be zero")
	}
	tours := source.Tours()
	if len(tours) == 0 {
		return nil, fmt.Errorf("no tours configured")
	}
	for i, tour := range tours {
		if tour.Multiplier <= 0 {
			return nil, fmt.Errorf("tour %d has no positive cost multiplier", i)
		}
		for _, topic := range tour.Topics {
			for tier := 1; tier <= questionsPerTopic; tier++ {
				if _, ok := source.Get(topic.Name, tier); !ok {
					return nil, fmt.Errorf("question %d not found in topic %q", tier, topic.Name)
				}
			}
		}
	}

	kinds := make(map[questions.Cell]Kind)
	for _, cell := range source.ManualQuestions() {
		kinds[cell] = KindManual
	}
	for _, cell := range source.Auctions() {
		kinds[cell] = KindAuction
	}
	cats := make(map[questions.Cell]questions.CatInBag)
	for _, cat := range source.CatsInBags() {
		kinds[cat.Cell] = KindCatInBag
		cats[cat.Cell] = cat
	}

	return &Session{
		adminID:      adminID,
		log:          log,
		phase:        PhaseWaitingForPlayers,
		roster:       NewRoster(),
		source:       source,
		perTopic:     questionsPerTopic,
		tours:        tours,
		kinds:        kinds,
		cats:         cats,
		falsestarted: make(map[string]bool),
		answered:     make(map[string]bool),
	}, nil
}

func (s *Session) Phase() Phase { return s.phase }

// Current returns whose turn it is to choose, nil before the game starts.
func (s *Session) Current() *Player { return s.current }

func (s *Session) Players() []*Player { return s.roster.Players() }

func (s *Session) PlayerScore(id string) (int, bool) { return s.roster.Score(id) }

func (s *Session) setPhase(phase Phase) {
	s.phase = phase
	if phase == PhaseWaitingForQuestion {
		s.falsestarted = make(map[string]bool)
		s.answered = make(map[string]bool)
	}
	s.log.Debug().Str("phase", string(phase)).Msg("phase change")
}

func (s *Session) isAdmin(userID string) bool {
	return userID == s.adminID
}

func (s *Session) isCurrent(userID string) bool {
	return s.current != nil && s.current.ID == userID
}

// Join registers a player while the session waits for the game to start.
func (s *Session) Join(userID, name, handle string) []Intent {
	if s.phase != PhaseWaitingForPlayers {
		s.log.Warn().Str("name", name).Msg("join after the game has started")
		return nil
	}
	switch err := s.roster.Join(userID, name, handle); err {
	case ErrPlayerExists:
		return []Intent{SendText{"Such a player already exists"}}
	case ErrNameTaken:
		return []Intent{SendText{"A player with this name already exists"}}
	}
	return []Intent{SendText{fmt.Sprintf("Hi %s", name)}}
}

// Start begins the game: the first joined player gets the opening turn and
// the first tour is loaded onto the board.
func (s *Session) Start(userID string) []Intent {
	if !s.isAdmin(userID) {
		s.log.Warn().Msg("non-admin attempted to start the game")
		return nil
	}
	if s.phase != PhaseWaitingForPlayers {
		s.log.Warn().Msg("attempt to start the game twice")
		return nil
	}
	players := s.roster.Players()
	if len(players) == 0 {
		return []Intent{SendText{"Nobody has joined the game!"}}
	}
	s.current = players[0]
	s.tourIx = 0
	s.board = NewBoard(s.tours[0], s.perTopic)
	s.setPhase(PhasePause)
	return []Intent{SendText{fmt.Sprintf("%s starts the game", s.current.Name)}}
}

// NextTour advances to the next round. Scores carry over; the board reloads.
func (s *Session) NextTour(userID string) []Intent {
	if !s.isAdmin(userID) {
		s.log.Warn().Msg("non-admin attempted to advance the tour")
		return nil
	}
	if s.phase != PhasePause && s.phase != PhaseWaitingForTopic {
		s.log.Warn().Str("phase", string(s.phase)).Msg("wrong phase to advance the tour")
		return nil
	}
	if s.tourIx+1 >= len(s.tours) {
		s.log.Warn().Int("tour", s.tourIx).Msg("no more tours")
		return nil
	}
	s.tourIx++
	s.board = NewBoard(s.tours[s.tourIx], s.perTopic)
	return []Intent{SendText{"Moving on to the next tour"}}
}

// NextQuestion offers the remaining topics to the current player.
func (s *Session) NextQuestion(userID string) []Intent {
	if !s.isAdmin(userID) {
		s.log.Warn().Msg("non-admin attempted to request the next question")
		return nil
	}
	if s.phase != PhasePause {
		s.log.Warn().Str("phase", string(s.phase)).Msg("wrong phase to request the next question")
		return nil
	}
	if s.current == nil {
		s.log.Error().Msg("no current player")
		return nil
	}
	s.setPhase(PhaseWaitingForTopic)
	return []Intent{
		SendScores{s.board.Snapshot()},
		OfferTopics{Player: s.current.Name, Topics: s.board.RemainingTopics()},
	}
}

// SelectTopic narrows the choice to one topic's remaining costs.
func (s *Session) SelectTopic(userID, topic string) []Intent {
	if s.phase != PhaseWaitingForTopic {
		s.log.Warn().Str("phase", string(s.phase)).Msg("unexpected topic selection")
		return nil
	}
	if !s.isCurrent(userID) {
		s.log.Warn().Msg("only the current player can select a topic")
		return nil
	}
	costs := s.board.Costs(topic)
	if len(costs) == 0 {
		s.log.Warn().Str("topic", topic).Msg("topic has no remaining questions")
		return nil
	}
	s.setPhase(PhaseWaitingForQuestion)
	return []Intent{OfferCosts{Topic: topic, Costs: costs}}
}

// SelectQuestion takes the chosen cell off the board and dispatches by kind.
// The cost is gone for good even if the question lookup then fails.
func (s *Session) SelectQuestion(userID, topic string, cost int) []Intent {
	if s.phase != PhaseWaitingForQuestion {
		s.log.Warn().Str("phase", string(s.phase)).Msg("unexpected question selection")
		return nil
	}
	if !s.isCurrent(userID) {
		s.log.Warn().Msg("only the current player can select a question")
		return nil
	}
	if err := s.board.Take(topic, cost); err != nil {
		s.log.Warn().Err(err).Str("topic", topic).Int("cost", cost).Msg("question not on the board")
		return nil
	}

	cell := questions.Cell{Topic: topic, Cost: cost}
	if s.kinds[cell] == KindCatInBag {
		cat := s.cats[cell]
		s.question = cat.Question
		s.topic = cat.Topic
		s.anyone = false
		s.setPhase(PhaseCatInBagPlayer)
		var candidates []string
		for _, p := range s.roster.Players() {
			if p.ID != s.current.ID {
				candidates = append(candidates, p.Name)
			}
		}
		return []Intent{
			SendToAdmin{adminReveal(cat.Question)},
			SendText{fmt.Sprintf("Cat in a bag! The real topic is %s", cat.Topic)},
			OfferCatPlayers{Candidates: candidates},
		}
	}

	question, ok := s.source.Get(topic, cost/s.board.Multiplier())
	if !ok {
		s.log.Error().Str("topic", topic).Int("cost", cost).Msg("question missing from the source")
		return nil
	}

	switch s.kinds[cell] {
	case KindManual:
		s.setPhase(PhasePause)
		return []Intent{
			SendToAdmin{adminReveal(question)},
			SendText{"This question is played manually"},
		}
	case KindAuction:
		s.question = question
		s.topic = topic
		s.anyone = false
		s.setPhase(PhaseWaitingForAuction)
		return []Intent{
			SendToAdmin{adminReveal(question)},
			SendText{fmt.Sprintf("Auction for topic %s!", topic)},
			SendText{s.roster.RenderScores()},
		}
	default:
		s.question = question
		s.topic = topic
		s.cost = cost
		s.anyone = true
		s.chooser = s.current
		s.setPhase(PhaseBeforeQuestion)
		return []Intent{
			SendToAdmin{adminReveal(question)},
			SendText{fmt.Sprintf("Playing %s for %d", topic, cost)},
			ScheduleTimeout{Delay: DelayMedium},
		}
	}
}

// Timeout is delivered by the transport when a scheduled delay elapses. It
// drives the automatic edges of the question flow.
func (s *Session) Timeout() []Intent {
	switch s.phase {
	case PhaseBeforeQuestion:
		s.setPhase(PhaseFalsestart)
		intents := []Intent{SendText{s.question.Text}}
		if s.question.Image != "" {
			intents = append(intents, SendImage{s.question.Image})
		}
		if s.question.Audio != "" {
			intents = append(intents, SendAudio{s.question.Audio})
		}
		return append(intents, ScheduleTimeout{Text: "!", Delay: delayFor(s.question)})
	case PhaseFalsestart:
		s.setPhase(PhaseCanAnswer)
		return []Intent{ScheduleTimeout{Delay: DelayLong}}
	case PhaseCanAnswer:
		return s.closeUnanswered("Time's up!")
	default:
		s.log.Warn().Str("phase", string(s.phase)).Msg("unexpected timeout")
		return nil
	}
}

// Message is a buzz. During the falsestart window it disqualifies the sender
// for this question; once answers are open, the first eligible buzzer gets
// the floor.
func (s *Session) Message(userID, text string) []Intent {
	switch s.phase {
	case PhaseFalsestart:
		player := s.roster.ByID(userID)
		if player == nil {
			return nil
		}
		s.falsestarted[player.ID] = true
		return []Intent{SendText{fmt.Sprintf("False start by %s", player.Name)}}
	case PhaseCanAnswer:
		player := s.roster.ByID(userID)
		if player == nil {
			return nil
		}
		if s.answered[player.ID] {
			s.log.Debug().Str("player", player.Name).Msg("already answered this question")
			return nil
		}
		if s.falsestarted[player.ID] {
			s.log.Debug().Str("player", player.Name).Msg("falsestarted on this question")
			return nil
		}
		s.current = player
		s.answered[player.ID] = true
		s.setPhase(PhaseAnswering)
		return []Intent{
			CancelTimeout{},
			SendText{fmt.Sprintf("%s answers", player.Name)},
			AskAdminYesNo{"Correct answer?"},
		}
	default:
		s.log.Debug().Str("phase", string(s.phase)).Msg("message outside the buzz window")
		return nil
	}
}

// YesReply credits the answering player and closes the question; the turn
// stays with whoever answered correctly.
func (s *Session) YesReply(userID string) []Intent {
	if !s.isAdmin(userID) {
		s.log.Warn().Msg("non-admin yes reply")
		return nil
	}
	if s.phase != PhaseAnswering {
		s.log.Warn().Str("phase", string(s.phase)).Msg("unexpected yes reply")
		return nil
	}
	if err := s.adjustCurrentScore(s.cost); err != nil {
		s.log.Error().Err(err).Msg("crediting the answer")
		return nil
	}
	return s.closeAnswered()
}

// NoReply debits the answering player. In the normal flow the buzz window
// reopens for players who haven't tried; single-answerer flows and an
// exhausted roster close the question instead.
func (s *Session) NoReply(userID string) []Intent {
	if !s.isAdmin(userID) {
		s.log.Warn().Msg("non-admin no reply")
		return nil
	}
	if s.phase != PhaseAnswering {
		s.log.Warn().Str("phase", string(s.phase)).Msg("unexpected no reply")
		return nil
	}
	if err := s.adjustCurrentScore(-s.cost); err != nil {
		s.log.Error().Err(err).Msg("debiting the answer")
		return nil
	}
	if !s.anyone || len(s.answered) == s.roster.Len() {
		return s.closeUnanswered("Everyone tried, but nobody got it")
	}
	s.setPhase(PhaseCanAnswer)
	s.falsestarted = make(map[string]bool)
	return []Intent{ScheduleTimeout{Text: incorrectAnswerReply, Delay: DelayLong}}
}

// UpdateAuctionCost assigns the auction's winner and price, decided off-band
// by the admin, and goes straight to judgment.
func (s *Session) UpdateAuctionCost(userID, name string, cost int) []Intent {
	if !s.isAdmin(userID) {
		s.log.Warn().Msg("non-admin attempted to assign the auction")
		return nil
	}
	if s.phase != PhaseWaitingForAuction {
		s.log.Warn().Str("phase", string(s.phase)).Msg("unexpected auction assignment")
		return nil
	}
	player := s.roster.ByName(name)
	if player == nil {
		s.log.Warn().Str("name", name).Msg("unknown auction player")
		return nil
	}
	s.current = player
	s.chooser = player
	s.cost = cost
	s.anyone = false
	s.setPhase(PhaseAnswering)
	intents := []Intent{
		SendText{fmt.Sprintf("%s plays the auction for %d", player.Name, cost)},
		SendText{s.question.Text},
	}
	intents = append(intents, s.mediaIntents()...)
	return append(intents, AskAdminYesNo{"Correct answer?"})
}

// SelectCatInBagPlayer hands the cat in a bag to another player. The chooser
// may not keep it.
func (s *Session) SelectCatInBagPlayer(userID, name string) []Intent {
	if s.phase != PhaseCatInBagPlayer {
		s.log.Warn().Str("phase", string(s.phase)).Msg("unexpected cat-in-bag player selection")
		return nil
	}
	if !s.isCurrent(userID) {
		s.log.Warn().Msg("only the current player can hand over the cat in a bag")
		return nil
	}
	target := s.roster.ByName(name)
	if target == nil {
		s.log.Warn().Str("name", name).Msg("unknown cat-in-bag player")
		return nil
	}
	if target.ID == userID {
		s.log.Warn().Msg("cannot keep the cat in a bag")
		return nil
	}
	s.current = target
	s.chooser = target
	s.setPhase(PhaseCatInBagCost)
	return []Intent{
		SendText{fmt.Sprintf("The cat in a bag goes to %s", target.Name)},
		OfferCatCosts{Costs: []int{s.board.MinCost(), s.board.MaxCost()}},
	}
}

// SelectCatInBagCost fixes the price at the tour's minimum or maximum and
// goes to judgment.
func (s *Session) SelectCatInBagCost(userID string, cost int) []Intent {
	if s.phase != PhaseCatInBagCost {
		s.log.Warn().Str("phase", string(s.phase)).Msg("unexpected cat-in-bag cost selection")
		return nil
	}
	if !s.isCurrent(userID) {
		s.log.Warn().Msg("only the receiving player can pick the cat-in-bag cost")
		return nil
	}
	if cost != s.board.MinCost() && cost != s.board.MaxCost() {
		s.log.Warn().Int("cost", cost).Msg("cat-in-bag cost not offered")
		return nil
	}
	s.cost = cost
	s.setPhase(PhaseAnswering)
	intents := []Intent{SendText{s.question.Text}}
	intents = append(intents, s.mediaIntents()...)
	return append(intents, AskAdminYesNo{"Correct answer?"})
}

// GetScore reports the scoreboard to the room. Anyone may ask.
func (s *Session) GetScore(userID string) []Intent {
	return []Intent{SendText{s.roster.RenderScores()}}
}

// CurrentPlayer reports whose turn it is. Anyone may ask.
func (s *Session) CurrentPlayer(userID string) []Intent {
	if s.current == nil {
		return []Intent{SendText{"No current player!"}}
	}
	return []Intent{SendText{s.current.Name}}
}

// ChangePlayer force-reassigns the turn, e.g. to correct a mistake.
func (s *Session) ChangePlayer(userID, name string) []Intent {
	if !s.isAdmin(userID) {
		s.log.Warn().Msg("non-admin attempted to change the current player")
		return nil
	}
	player := s.roster.ByName(name)
	if player == nil {
		s.log.Warn().Str("name", name).Msg("unknown player")
		return nil
	}
	s.current = player
	return []Intent{SendText{fmt.Sprintf("The turn goes to %s", player.Name)}}
}

// UpdateScore overrides a player's score outright.
func (s *Session) UpdateScore(userID, name string, score int) []Intent {
	if !s.isAdmin(userID) {
		s.log.Warn().Msg("non-admin attempted to update a score")
		return nil
	}
	player := s.roster.ByName(name)
	if player == nil {
		s.log.Warn().Str("name", name).Msg("unknown player")
		return nil
	}
	if err := s.roster.SetScore(player.ID, score); err != nil {
		s.log.Error().Err(err).Msg("updating score")
	}
	return nil
}

// HideQuestion marks a cell taken without playing it, e.g. to skip a broken
// entry.
func (s *Session) HideQuestion(userID, topic string, cost int) []Intent {
	if !s.isAdmin(userID) {
		s.log.Warn().Msg("non-admin attempted to hide a question")
		return nil
	}
	if s.board == nil {
		s.log.Warn().Msg("no board to hide a question from")
		return nil
	}
	if err := s.board.Take(topic, cost); err != nil {
		s.log.Warn().Err(err).Str("topic", topic).Int("cost", cost).Msg("hiding question")
		return nil
	}
	return []Intent{SendToAdmin{fmt.Sprintf("Hidden %s for %d", topic, cost)}}
}

// Snapshot exposes the current board state for rendering.
func (s *Session) Snapshot() ScoreTable {
	if s.board == nil {
		return ScoreTable{}
	}
	return s.board.Snapshot()
}

func (s *Session) closeAnswered() []Intent {
	s.setPhase(PhasePause)
	s.chooser = nil
	if s.current == nil {
		s.log.Error().Msg("closing an answered question with no current player")
		return nil
	}
	html := fmt.Sprintf("%s\nAnswer: <b>%s</b>", randCorrectAnswerReply(), s.question.Answer)
	if s.question.Comments != "" {
		html += "\n" + s.question.Comments
	}
	return []Intent{
		SendHTML{html},
		SendSticker{randSticker()},
		SendText{s.roster.RenderScores()},
		SendText{fmt.Sprintf("%s continues", s.current.Name)},
	}
}

func (s *Session) closeUnanswered(reason string) []Intent {
	s.setPhase(PhasePause)
	// Nobody answered correctly, so the turn returns to whoever picked the
	// question (http://vladimirkhil.com/tv/game/10).
	if s.chooser != nil {
		s.current = s.chooser
	} else {
		s.log.Error().Msg("closing an unanswered question with no chooser")
	}
	html := fmt.Sprintf("Correct answer: <b>%s</b>", s.question.Answer)
	if s.question.Comments != "" {
		html += "\n" + s.question.Comments
	}
	intents := []Intent{SendText{reason}, SendHTML{html}, SendText{s.roster.RenderScores()}}
	if s.current != nil {
		intents = append(intents, SendText{fmt.Sprintf("%s picks the next question", s.current.Name)})
	}
	return intents
}

func (s *Session) adjustCurrentScore(delta int) error {
	if s.current == nil {
		return fmt.Errorf("no current player")
	}
	return s.roster.AdjustScore(s.current.ID, delta)
}

func (s *Session) mediaIntents() []Intent {
	var intents []Intent
	if s.question.Image != "" {
		intents = append(intents, SendImage{s.question.Image})
	}
	if s.question.Audio != "" {
		intents = append(intents, SendAudio{s.question.Audio})
	}
	return intents
}

func adminReveal(q questions.Question) string {
	return fmt.Sprintf("question: %s\nanswer: %s", q.Text, q.Answer)
}

// delayFor sizes the reading window after a question is revealed: longer
// questions and questions with an image get more time.
func delayFor(q questions.Question) Delay {
	if q.Image != "" {
		return DelayLong
	}
	switch n := utf8.RuneCountInString(q.Text); {
	case n <= 100:
		return DelayShort
	case n <= 230:
		return DelayMedium
	default:
		return DelayLong
	}
}
