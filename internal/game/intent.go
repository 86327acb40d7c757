package game

// Intent is an abstracted outbound instruction for the transport layer. Every
// session operation returns an ordered list of intents; the transport executes
// them in order.
type Intent interface{ isIntent() }

// SendText posts a plain text message to the game room.
type SendText struct {
	Text string
}

// SendHTML posts a rich message to the game room.
type SendHTML struct {
	HTML string
}

// SendImage posts an image attachment to the game room.
type SendImage struct {
	Ref string
}

// SendAudio posts an audio attachment to the game room.
type SendAudio struct {
	Ref string
}

// SendSticker posts a sticker to the game room.
type SendSticker struct {
	Ref string
}

// ScheduleTimeout asks the transport to deliver a timeout event after the
// delay elapses, posting Text (if not empty) right before delivering it.
// A new ScheduleTimeout supersedes any delay already in flight.
type ScheduleTimeout struct {
	Text  string
	Delay Delay
}

// CancelTimeout discards the in-flight delay, if any.
type CancelTimeout struct{}

// OfferTopics asks the named player to choose one of the remaining topics.
type OfferTopics struct {
	Player string
	Topics []string
}

// OfferCosts asks for a cost choice within the selected topic.
type OfferCosts struct {
	Topic string
	Costs []int
}

// AskAdminYesNo prompts the admin for a correct/incorrect judgment.
type AskAdminYesNo struct {
	Prompt string
}

// SendToAdmin posts a message visible to the admin only.
type SendToAdmin struct {
	Text string
}

// SendScores sends the structured board snapshot for rendering.
type SendScores struct {
	Table ScoreTable
}

// OfferCatPlayers asks the chooser to hand the cat in a bag to another player.
type OfferCatPlayers struct {
	Candidates []string
}

// OfferCatCosts asks the receiving player to pick the cat-in-bag cost.
type OfferCatCosts struct {
	Costs []int
}

func (SendText) isIntent()        {}
func (SendHTML) isIntent()        {}
func (SendImage) isIntent()       {}
func (SendAudio) isIntent()       {}
func (SendSticker) isIntent()     {}
func (ScheduleTimeout) isIntent() {}
func (CancelTimeout) isIntent()   {}
func (OfferTopics) isIntent()     {}
func (OfferCosts) isIntent()      {}
func (AskAdminYesNo) isIntent()   {}
func (SendToAdmin) isIntent()     {}
func (SendScores) isIntent()      {}
func (OfferCatPlayers) isIntent() {}
func (OfferCatCosts) isIntent()   {}
