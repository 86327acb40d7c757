package questions

// Question is an immutable prompt/answer pair as loaded from the corpus.
type Question struct {
	Text     string `json:"text"`
	Answer   string `json:"answer"`
	Comments string `json:"comments,omitempty"`
	Image    string `json:"image,omitempty"`
	Audio    string `json:"audio,omitempty"`
}

type Topic struct {
	Name string `json:"name"`
}

// Tour is one round of the game: a cost multiplier and its topics, in play order.
type Tour struct {
	Multiplier int     `json:"multiplier"`
	Topics     []Topic `json:"topics"`
}

// Cell addresses one position on the question board.
type Cell struct {
	Topic string `json:"topic"`
	Cost  int    `json:"cost"`
}

// CatInBag substitutes the question at Cell with a bundled question from
// another topic, handed to a player the chooser picks.
type CatInBag struct {
	Cell     Cell     `json:"cell"`
	Topic    string   `json:"topic"`
	Question Question `json:"question"`
}

// Source is the read-only question corpus the game session consumes.
type Source interface {
	// Get returns the question for a topic at the given difficulty tier (1-based).
	Get(topic string, tier int) (Question, bool)
	Tours() []Tour
	ManualQuestions() []Cell
	Auctions() []Cell
	CatsInBags() []CatInBag
}

// Storage looks up raw questions; the Catalog layers the game metadata on top.
type Storage interface {
	Get(topic string, tier int) (Question, bool)
}

// Catalog combines a question storage with the per-game metadata (tours and
// special-question lists) into a full Source.
type Catalog struct {
	storage Storage
	meta    Meta
}

func NewCatalog(storage Storage, meta Meta) *Catalog {
	return &Catalog{storage: storage, meta: meta}
}

func (c *Catalog) Get(topic string, tier int) (Question, bool) {
	return c.storage.Get(topic, tier)
}

func (c *Catalog) Tours() []Tour           { return c.meta.Tours }
func (c *Catalog) ManualQuestions() []Cell { return c.meta.Manual }
func (c *Catalog) Auctions() []Cell        { return c.meta.Auctions }
func (c *Catalog) CatsInBags() []CatInBag  { return c.meta.CatsInBags }
