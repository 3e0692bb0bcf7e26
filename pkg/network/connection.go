package network

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cbodonnell/sweeper/pkg/engine"
	"github.com/cbodonnell/sweeper/pkg/game"
	"github.com/cbodonnell/sweeper/pkg/game/types"
	"github.com/cbodonnell/sweeper/pkg/log"
	"github.com/cbodonnell/sweeper/pkg/messages"
	"github.com/cbodonnell/sweeper/pkg/queue"
	"github.com/cbodonnell/sweeper/pkg/replay"
	"github.com/cbodonnell/sweeper/pkg/repositories"
	"github.com/cbodonnell/sweeper/pkg/workers"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	// CommandQueueSize is the number of commands a connection may have pending
	CommandQueueSize = 256
	// WriteTimeout bounds a single websocket write
	WriteTimeout = 5 * time.Second
)

var connectionLogger = log.Named("connection")

// Connection is one websocket client playing its own game.
// Commands read from the socket are queued for the connection's runner,
// and everything the session and player report is written back as messages.
type Connection struct {
	conn         *websocket.Conn
	outgoing     chan *messages.Message
	commandQueue queue.Queue
	session      *game.Session
	player       *replay.Player
	runner       *game.Runner
	cancel       context.CancelFunc
}

// NewConnectionOptions contains options for creating a new Connection
type NewConnectionOptions struct {
	Engine engine.Engine
	// Repository checks highscores and loads stored replays. Nil disables both.
	Repository     repositories.Repository
	SaveReplayChan chan<- workers.SaveReplayRequest
	TimerPeriod    time.Duration
}

// NewConnection wires a session, a replay player and a runner to a websocket connection
func NewConnection(conn *websocket.Conn, opts NewConnectionOptions) *Connection {
	c := &Connection{
		conn:         conn,
		outgoing:     make(chan *messages.Message, messages.MessageBufferSize),
		commandQueue: queue.NewInMemoryQueue(CommandQueueSize),
		cancel:       func() {},
	}

	sessionOpts := game.NewSessionOptions{
		Engine:      opts.Engine,
		TimerPeriod: opts.TimerPeriod,
	}
	runnerOpts := game.NewRunnerOptions{
		CommandQueue:   c.commandQueue,
		SaveReplayChan: opts.SaveReplayChan,
		Handler:        c,
	}
	if opts.Repository != nil {
		sessionOpts.Highscores = opts.Repository
		runnerOpts.ReplayLoader = opts.Repository
	}

	c.session = game.NewSession(sessionOpts)
	c.session.AddObserver(&sessionView{connection: c})
	c.player = replay.NewPlayer(replay.NewPlayerOptions{TimerPeriod: opts.TimerPeriod})
	c.player.AddObserver(&replayView{connection: c})

	runnerOpts.Session = c.session
	runnerOpts.Player = c.player
	c.runner = game.NewRunner(runnerOpts)
	return c
}

// Serve runs the connection until the client disconnects or the context is
// cancelled. The runner has stopped when Serve returns.
func (c *Connection) Serve(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	defer cancel()

	wg := &sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := c.runner.Start(ctx); err != nil {
			connectionLogger.Error("Runner stopped: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		c.writeMessages(ctx)
	}()

	c.readMessages(ctx)
	cancel()
	wg.Wait()
}

func (c *Connection) readMessages(ctx context.Context) {
	for {
		msg := &messages.Message{}
		if err := wsjson.Read(ctx, c.conn, msg); err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && ctx.Err() == nil {
				connectionLogger.Error("Error reading websocket message: %v", err)
			}
			connectionLogger.Trace("Stopped reading: %v", err)
			return
		}

		command, err := messages.ParseCommand(msg)
		if err != nil {
			c.sendError(msg.Type, err)
			continue
		}
		if err := c.commandQueue.Enqueue(command); err != nil {
			c.sendError(msg.Type, fmt.Errorf("failed to enqueue command: %v", err))
		}
	}
}

func (c *Connection) writeMessages(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-c.outgoing:
			writeCtx, cancel := context.WithTimeout(ctx, WriteTimeout)
			err := wsjson.Write(writeCtx, c.conn, msg)
			cancel()
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					connectionLogger.Error("Failed to write %s message: %v", msg.Type, err)
				}
				c.cancel()
				return
			}
		}
	}
}

// send queues a message for the writer. A client that cannot keep up is disconnected.
func (c *Connection) send(msgType string, payload interface{}) {
	msg, err := messages.NewMessage(msgType, payload)
	if err != nil {
		connectionLogger.Error("Failed to create message: %v", err)
		return
	}
	select {
	case c.outgoing <- msg:
	default:
		connectionLogger.Warn("Outgoing buffer is full, dropping connection")
		c.cancel()
	}
}

func (c *Connection) sendError(msgType string, err error) {
	c.send(messages.MessageTypeServerError, &messages.ServerError{Command: msgType, Reason: err.Error()})
}

func (c *Connection) OnCommandError(command interface{}, err error) {
	c.sendError(fmt.Sprintf("%T", command), err)
}

func (c *Connection) OnReplayLoaded(replay *types.Replay) {
	c.send(messages.MessageTypeServerReplayLoaded, &messages.ServerReplayLoaded{
		Config:         replay.Config,
		PlayerName:     replay.PlayerName,
		PlayTimeMillis: replay.PlayTimeMillis,
		Steps:          len(replay.Steps),
	})
}

// OnReplaySaved is called from the save worker
func (c *Connection) OnReplaySaved(gameID string, err error) {
	if err != nil {
		c.sendError(messages.MessageTypeClientSaveReplay, err)
		return
	}
	c.send(messages.MessageTypeServerReplaySaved, &messages.ServerReplaySaved{GameID: gameID})
}

// sessionView forwards live game events to the client
type sessionView struct {
	connection *Connection
}

func (v *sessionView) OnGridRebuilt(config types.GridConfig) {
	v.connection.send(messages.MessageTypeServerGrid, &messages.ServerGrid{Config: config})
	for y := 0; y < config.Height; y++ {
		for x := 0; x < config.Width; x++ {
			sink := &cellSink{connection: v.connection, position: types.NewPosition(x, y), msgType: messages.MessageTypeServerCell}
			if err := v.connection.session.SetCellSink(sink); err != nil {
				connectionLogger.Error("Failed to register cell %s: %v", sink.position, err)
			}
		}
	}
}

func (v *sessionView) OnTimeUpdate(millis int64) {
	v.connection.send(messages.MessageTypeServerTime, &messages.ServerTime{Millis: millis})
}

func (v *sessionView) OnRemainingMinesChanged(remaining int) {
	v.connection.send(messages.MessageTypeServerMines, &messages.ServerMines{Remaining: remaining})
}

func (v *sessionView) OnWon(millis int64, isHighscore bool) {
	v.connection.send(messages.MessageTypeServerWon, &messages.ServerWon{Millis: millis, IsHighscore: isHighscore})
}

func (v *sessionView) OnLost(millis int64) {
	v.connection.send(messages.MessageTypeServerLost, &messages.ServerLost{Millis: millis})
}

// replayView forwards playback events to the client
type replayView struct {
	connection *Connection
}

func (v *replayView) OnGridRebuilt(config types.GridConfig) {
	v.connection.send(messages.MessageTypeServerReplayGrid, &messages.ServerGrid{Config: config})
	for y := 0; y < config.Height; y++ {
		for x := 0; x < config.Width; x++ {
			sink := &cellSink{connection: v.connection, position: types.NewPosition(x, y), msgType: messages.MessageTypeServerReplayCell}
			if err := v.connection.player.RegisterCellSink(sink); err != nil {
				connectionLogger.Error("Failed to register replay cell %s: %v", sink.position, err)
			}
		}
	}
}

func (v *replayView) OnTimeUpdate(millis int64) {
	v.connection.send(messages.MessageTypeServerReplayTime, &messages.ServerTime{Millis: millis})
}

func (v *replayView) OnRemainingMinesChanged(remaining int) {
	v.connection.send(messages.MessageTypeServerReplayMines, &messages.ServerMines{Remaining: remaining})
}

func (v *replayView) OnReplayEnded() {
	v.connection.send(messages.MessageTypeServerReplayEnded, nil)
}

type cellSink struct {
	connection *Connection
	position   types.Position
	msgType    string
}

func (s *cellSink) Position() types.Position {
	return s.position
}

func (s *cellSink) UpdateCell(status types.CellStatus, adjacentMines int) {
	s.connection.send(s.msgType, &messages.ServerCell{
		X:             s.position.X,
		Y:             s.position.Y,
		Status:        status,
		AdjacentMines: adjacentMines,
	})
}
