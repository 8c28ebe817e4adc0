package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"globetrotter-service/internal/app"
	"globetrotter-service/internal/challenge"
	"globetrotter-service/internal/domain"
	"globetrotter-service/internal/score"
)

// WSHandler exposes the game core to UI surfaces over a websocket. Each
// connection gets its own Synchronizer instance over the shared persisted
// store, so two connections behave like two tabs: live updates in-process,
// reconciliation across instances.
type WSHandler struct {
	service        *app.GameService
	store          score.Store
	flags          challenge.FlagStore
	pollInterval   time.Duration
	celebrationTTL time.Duration
	upgrader       websocket.Upgrader
}

func NewWSHandler(service *app.GameService, store score.Store, flags challenge.FlagStore, pollInterval, celebrationTTL time.Duration) *WSHandler {
	if celebrationTTL <= 0 {
		celebrationTTL = challenge.DefaultCelebrationTTL
	}
	return &WSHandler{
		service:        service,
		store:          store,
		flags:          flags,
		pollInterval:   pollInterval,
		celebrationTTL: celebrationTTL,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type guessPayload struct {
	Option string `json:"option"`
}

type secondChancePayload struct {
	Accept bool `json:"accept"`
}

type invitePayload struct {
	ID string `json:"id"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func errorMessage(msg string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: msg}}
}

type joinedPayload struct {
	Player    domain.Player    `json:"player"`
	Score     float64          `json:"score"`
	Challenge *challenge.State `json:"challenge,omitempty"`
}

type scorePayload struct {
	Score float64      `json:"score"`
	Tally domain.Tally `json:"tally"`
}

type inviteResult struct {
	Invitation domain.Invitation `json:"invitation"`
	Link       string            `json:"link,omitempty"`
}

// ServeWS upgrades the request and wires the connection into the game core.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("playerId")
	name := r.URL.Query().Get("name")
	inviteID := r.URL.Query().Get("invite")
	if name == "" {
		name = h.service.DefaultPlayerName()
	}

	player, err := h.service.Join(playerID, name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	bus := score.NewBus()
	syncr := score.NewSynchronizer(ctx, h.store, bus, h.pollInterval)
	go syncr.Run(ctx)

	var session *challenge.Session
	if inviteID != "" {
		inv, err := h.service.GetInvitation(ctx, inviteID)
		if err != nil {
			_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "this invitation is invalid or has expired"}})
		} else {
			// Accepting a challenge starts from zero.
			syncr.Reset(ctx)
			session = challenge.NewSession(ctx, inv.InviterName, inv.Score, syncr, bus, h.flags,
				challenge.WithCelebrationTTL(h.celebrationTTL))
		}
	}

	engine, err := h.service.NewEngine(ctx, syncr)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	updates, cancelSub := bus.Subscribe(score.ChannelCanonical)
	defer cancelSub()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	// Score fan-in. Updates arriving after teardown are discarded here rather
	// than applied to a closed connection.
	go func() {
		defer close(updatesDone)
		for {
			select {
			case v, ok := <-updates:
				if !ok {
					return
				}
				msgs := []outboundMessage[any]{
					{Type: "score", Payload: scorePayload{Score: v, Tally: engine.Tally()}},
				}
				if session != nil {
					session.Observe(ctx, v)
					snap := session.Snapshot()
					msgs = append(msgs, outboundMessage[any]{Type: "challenge", Payload: snap})
				}
				for _, msg := range msgs {
					select {
					case send <- msg:
					case <-closeSignals:
						return
					}
				}
			case <-closeSignals:
				return
			}
		}
	}()

	// trySend refuses to queue once the writer is gone, so a full buffer
	// cannot wedge the read loop on a dying connection.
	trySend := func(msg outboundMessage[any]) bool {
		select {
		case send <- msg:
			return true
		case <-writerDone:
			return false
		}
	}

	joined := joinedPayload{Player: player, Score: syncr.Current()}
	if session != nil {
		snap := session.Snapshot()
		joined.Challenge = &snap
	}
	// The buffer is empty here, so these cannot block.
	send <- outboundMessage[any]{Type: "joined", Payload: joined}
	send <- outboundMessage[any]{Type: "round", Payload: engine.StartRound()}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		var out outboundMessage[any]
		switch inbound.Type {
		case "guess":
			var payload guessPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				out = errorMessage("invalid guess payload")
				break
			}
			result, err := engine.Guess(ctx, payload.Option)
			if err != nil {
				out = errorMessage(err.Error())
				break
			}
			out = outboundMessage[any]{Type: "guessResult", Payload: result}
		case "secondChance":
			var payload secondChancePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				out = errorMessage("invalid secondChance payload")
				break
			}
			if payload.Accept {
				snap, err := engine.AcceptSecondChance()
				if err != nil {
					out = errorMessage(err.Error())
					break
				}
				out = outboundMessage[any]{Type: "round", Payload: snap}
			} else {
				result, err := engine.DeclineSecondChance(ctx)
				if err != nil {
					out = errorMessage(err.Error())
					break
				}
				out = outboundMessage[any]{Type: "guessResult", Payload: result}
			}
		case "next":
			out = outboundMessage[any]{Type: "round", Payload: engine.NextRound()}
		case "createInvite":
			inv, link, err := h.service.CreateInvitation(ctx, player, syncr.Current())
			if err != nil {
				out = errorMessage(err.Error())
				break
			}
			out = outboundMessage[any]{Type: "invite", Payload: inviteResult{Invitation: inv, Link: link}}
		case "getInvite":
			var payload invitePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				out = errorMessage("invalid invite payload")
				break
			}
			inv, err := h.service.GetInvitation(ctx, payload.ID)
			if err != nil {
				out = errorMessage("this invitation is invalid or has expired")
				break
			}
			out = outboundMessage[any]{Type: "invite", Payload: inviteResult{Invitation: inv, Link: h.service.InvitationLink(inv.ID)}}
		default:
			out = errorMessage("unsupported message type")
		}
		if !trySend(out) {
			break
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
