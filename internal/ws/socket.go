package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/zerolog/log"

	"github.com/quizdash/quizdash/internal/config"
	"github.com/quizdash/quizdash/internal/game"
	"github.com/quizdash/quizdash/internal/timers"
)

type ConnCtx struct {
	ID   string // engine identity: admin token or player token
	Role string // "admin" | "player" | ""
}

// Server bridges socket.io connections and the game session: inbound events
// become engine actions, the returned intents become socket emits and timer
// schedules. All engine calls are serialized.
type Server struct {
	mu      sync.Mutex
	session *game.Session
	runner  *timers.Runner
	config  config.Config

	adminToken string

	memMu   sync.Mutex
	members map[string]socketio.Conn // socketID -> Conn
}

func New(session *game.Session, runner *timers.Runner, adminToken string, cfg config.Config) *Server {
	return &Server{
		session:    session,
		runner:     runner,
		config:     cfg,
		adminToken: adminToken,
		members:    make(map[string]socketio.Conn),
	}
}

// dispatch serializes engine calls: the session is single-writer, so every
// action (socket event or timer expiry) takes the lock, applies its input,
// and executes the resulting intents outside the lock.
func (srv *Server) dispatch(fn func() []game.Intent) {
	srv.mu.Lock()
	intents := fn()
	srv.mu.Unlock()
	srv.execute(intents)
}

// Mount attaches the socket.io server with all game event handlers.
func (srv *Server) Mount(r *gin.Engine) *socketio.Server {
	io := socketio.NewServer(nil)

	io.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext(&ConnCtx{})
		srv.memMu.Lock()
		srv.members[s.ID()] = s
		srv.memMu.Unlock()
		log.Info().Str("sid", s.ID()).Msg("socket connected")
		return nil
	})

	// game:auth authenticates a connection: the admin token grants the admin
	// role, a previously issued player token resumes that player.
	io.OnEvent("/", "game:auth", func(s socketio.Conn, payload struct {
		Token string `json:"token"`
	}) map[string]any {
		ctx := s.Context().(*ConnCtx)
		if payload.Token == srv.adminToken {
			ctx.ID = payload.Token
			ctx.Role = "admin"
			log.Info().Str("sid", s.ID()).Msg("admin authenticated")
			return map[string]any{"role": "admin"}
		}
		ctx.ID = payload.Token
		ctx.Role = "player"
		return map[string]any{"role": "player"}
	})

	io.OnEvent("/", "game:join", func(s socketio.Conn, payload struct {
		Name   string `json:"name"`
		Handle string `json:"handle"`
	}) map[string]any {
		ctx := s.Context().(*ConnCtx)
		token := ctx.ID
		if token == "" || token == srv.adminToken {
			token = uuid.NewString()
		}
		srv.dispatch(func() []game.Intent {
			return srv.session.Join(token, payload.Name, payload.Handle)
		})
		ctx.ID = token
		ctx.Role = "player"
		log.Info().Str("sid", s.ID()).Str("name", payload.Name).Msg("game:join")
		return map[string]any{"playerToken": token}
	})

	on(io, srv, "game:start", func(ctx *ConnCtx, _ emptyPayload) []game.Intent {
		return srv.session.Start(ctx.ID)
	})
	on(io, srv, "game:next", func(ctx *ConnCtx, _ emptyPayload) []game.Intent {
		return srv.session.NextQuestion(ctx.ID)
	})
	on(io, srv, "game:nextTour", func(ctx *ConnCtx, _ emptyPayload) []game.Intent {
		return srv.session.NextTour(ctx.ID)
	})
	on(io, srv, "game:topic", func(ctx *ConnCtx, p topicPayload) []game.Intent {
		return srv.session.SelectTopic(ctx.ID, p.Topic)
	})
	on(io, srv, "game:question", func(ctx *ConnCtx, p cellPayload) []game.Intent {
		return srv.session.SelectQuestion(ctx.ID, p.Topic, p.Cost)
	})
	on(io, srv, "game:buzz", func(ctx *ConnCtx, p textPayload) []game.Intent {
		return srv.session.Message(ctx.ID, p.Text)
	})
	on(io, srv, "game:yes", func(ctx *ConnCtx, _ emptyPayload) []game.Intent {
		return srv.session.YesReply(ctx.ID)
	})
	on(io, srv, "game:no", func(ctx *ConnCtx, _ emptyPayload) []game.Intent {
		return srv.session.NoReply(ctx.ID)
	})
	on(io, srv, "game:auction", func(ctx *ConnCtx, p playerCostPayload) []game.Intent {
		return srv.session.UpdateAuctionCost(ctx.ID, p.Name, p.Cost)
	})
	on(io, srv, "game:catPlayer", func(ctx *ConnCtx, p namePayload) []game.Intent {
		return srv.session.SelectCatInBagPlayer(ctx.ID, p.Name)
	})
	on(io, srv, "game:catCost", func(ctx *ConnCtx, p costPayload) []game.Intent {
		return srv.session.SelectCatInBagCost(ctx.ID, p.Cost)
	})
	on(io, srv, "game:updateScore", func(ctx *ConnCtx, p playerScorePayload) []game.Intent {
		return srv.session.UpdateScore(ctx.ID, p.Name, p.Score)
	})
	on(io, srv, "game:changePlayer", func(ctx *ConnCtx, p namePayload) []game.Intent {
		return srv.session.ChangePlayer(ctx.ID, p.Name)
	})
	on(io, srv, "game:hide", func(ctx *ConnCtx, p cellPayload) []game.Intent {
		return srv.session.HideQuestion(ctx.ID, p.Topic, p.Cost)
	})
	on(io, srv, "game:score", func(ctx *ConnCtx, _ emptyPayload) []game.Intent {
		return srv.session.GetScore(ctx.ID)
	})
	on(io, srv, "game:currentPlayer", func(ctx *ConnCtx, _ emptyPayload) []game.Intent {
		return srv.session.CurrentPlayer(ctx.ID)
	})

	io.OnError("/", func(s socketio.Conn, e error) {
		log.Error().Str("sid", s.ID()).Err(e).Msg("socket error")
	})
	io.OnDisconnect("/", func(s socketio.Conn, reason string) {
		srv.memMu.Lock()
		delete(srv.members, s.ID())
		srv.memMu.Unlock()
		log.Info().Str("sid", s.ID()).Str("reason", reason).Msg("socket disconnected")
	})

	go io.Serve()

	r.GET("/socket.io/*any", gin.WrapH(io))
	r.POST("/socket.io/*any", gin.WrapH(io))
	r.OPTIONS("/socket.io/*any", func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Status(http.StatusNoContent)
	})

	return io
}

type emptyPayload struct{}
type textPayload struct {
	Text string `json:"text"`
}
type topicPayload struct {
	Topic string `json:"topic"`
}
type namePayload struct {
	Name string `json:"name"`
}
type costPayload struct {
	Cost int `json:"cost"`
}
type cellPayload struct {
	Topic string `json:"topic"`
	Cost  int    `json:"cost"`
}
type playerCostPayload struct {
	Name string `json:"name"`
	Cost int    `json:"cost"`
}
type playerScorePayload struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func on[P any](io *socketio.Server, srv *Server, event string, handler func(*ConnCtx, P) []game.Intent) {
	io.OnEvent("/", event, func(s socketio.Conn, payload P) map[string]any {
		ctx := s.Context().(*ConnCtx)
		srv.dispatch(func() []game.Intent { return handler(ctx, payload) })
		log.Debug().Str("sid", s.ID()).Str("event", event).Msg("handled")
		return map[string]any{"ok": true}
	})
}

// State reads the session's phase and roster under the dispatch lock.
func (srv *Server) State() (game.Phase, []*game.Player) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return srv.session.Phase(), srv.session.Players()
}

// execute carries out the intents a session operation produced, in order.
func (srv *Server) execute(intents []game.Intent) {
	for _, intent := range intents {
		switch it := intent.(type) {
		case game.SendText:
			srv.broadcast("game:text", map[string]any{"text": it.Text})
		case game.SendHTML:
			srv.broadcast("game:html", map[string]any{"html": it.HTML})
		case game.SendImage:
			srv.broadcast("game:image", map[string]any{"ref": it.Ref})
		case game.SendAudio:
			srv.broadcast("game:audio", map[string]any{"ref": it.Ref})
		case game.SendSticker:
			srv.broadcast("game:sticker", map[string]any{"ref": it.Ref})
		case game.ScheduleTimeout:
			text := it.Text
			srv.runner.Schedule(srv.duration(it.Delay), func() {
				if text != "" {
					srv.broadcast("game:text", map[string]any{"text": text})
				}
				srv.dispatch(srv.session.Timeout)
			})
		case game.CancelTimeout:
			srv.runner.Stop()
		case game.OfferTopics:
			srv.broadcast("game:chooseTopic", map[string]any{"player": it.Player, "topics": it.Topics})
		case game.OfferCosts:
			srv.broadcast("game:chooseCost", map[string]any{"topic": it.Topic, "costs": it.Costs})
		case game.AskAdminYesNo:
			srv.toAdmin("game:judge", map[string]any{"prompt": it.Prompt})
		case game.SendToAdmin:
			srv.toAdmin("game:admin", map[string]any{"text": it.Text})
		case game.SendScores:
			srv.broadcast("game:scoreTable", map[string]any{
				"table":    it.Table,
				"rendered": it.Table.Render(),
			})
			if srv.config.ExportEnabled {
				if err := game.ExportScoreTable(it.Table, srv.config.ExportFile); err != nil {
					log.Error().Err(err).Str("file", srv.config.ExportFile).Msg("failed to export score table")
				}
			}
		case game.OfferCatPlayers:
			srv.broadcast("game:catChoosePlayer", map[string]any{"candidates": it.Candidates})
		case game.OfferCatCosts:
			srv.broadcast("game:catChooseCost", map[string]any{"costs": it.Costs})
		}
	}
}

func (srv *Server) conns() []socketio.Conn {
	srv.memMu.Lock()
	defer srv.memMu.Unlock()
	out := make([]socketio.Conn, 0, len(srv.members))
	for _, c := range srv.members {
		out = append(out, c)
	}
	return out
}

func (srv *Server) broadcast(event string, payload map[string]any) {
	for _, c := range srv.conns() {
		c.Emit(event, payload)
	}
}

func (srv *Server) toAdmin(event string, payload map[string]any) {
	for _, c := range srv.conns() {
		if ctx, ok := c.Context().(*ConnCtx); ok && ctx.Role == "admin" {
			c.Emit(event, payload)
		}
	}
}

func (srv *Server) duration(delay game.Delay) time.Duration {
	switch delay {
	case game.DelayShort:
		return srv.config.ShortDelay
	case game.DelayMedium:
		return srv.config.MediumDelay
	default:
		return srv.config.LongDelay
	}
}
