package ctank

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ChiaYing-Chen/Chemical-MANG-SYSTEM-sub001/pkg"
)

func InitializeFeedRoutes(app, api *fiber.App) {

	app.Use("/ws", pkg.HandleWSUpgrade)
	api.Get("/ws", pkg.CTMSAuth, websocket.New(WSFeedClient_Connect))
}

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

/* CONNECTED READING FEED CLIENT */
type FeedClient struct {
	WSClientID string
	DataOut    chan string
	Close      chan struct{}
	Kill       chan struct{}
}

var feedClients = make(map[string]*FeedClient)
var feedClientsRWMutex = sync.RWMutex{}

func feedClientsMapWrite(fc *FeedClient) {
	feedClientsRWMutex.Lock()
	feedClients[fc.WSClientID] = fc
	feedClientsRWMutex.Unlock()
}
func feedClientsMapRemove(wsClientID string) {
	feedClientsRWMutex.Lock()
	delete(feedClients, wsClientID)
	feedClientsRWMutex.Unlock()
}

/* PUSH A COMMITTED READING TO ALL CONNECTED FEED CLIENTS */
func FeedBroadcastReading(reading *Reading) {

	js, err := json.Marshal(&WSMessage{Type: "reading", Data: reading})
	if err != nil {
		pkg.LogErr(err)
		return
	}

	feedClientsRWMutex.RLock()
	defer feedClientsRWMutex.RUnlock()
	for _, fc := range feedClients {
		select {
		case fc.DataOut <- string(js):
		default:
			/* SLOW CLIENT; DROP THIS MESSAGE RATHER THAN BLOCK THE WRITER */
		}
	}
}

/* PUSH A FLUCTUATION ALERT TO ALL CONNECTED FEED CLIENTS */
func FeedBroadcastAlert(alert *FluctuationAlert) {

	js, err := json.Marshal(&WSMessage{Type: "alert", Data: alert})
	if err != nil {
		pkg.LogErr(err)
		return
	}

	feedClientsRWMutex.RLock()
	defer feedClientsRWMutex.RUnlock()
	for _, fc := range feedClients {
		select {
		case fc.DataOut <- string(js):
		default:
		}
	}
}

/* CONNECTED FEED CLIENT *** DO NOT RUN IN GO ROUTINE *** */
func WSFeedClient_Connect(c *websocket.Conn) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Viewer(c.Locals("role")) {
		txt := "You must be a viewer to connect."
		js, err := json.Marshal(&WSMessage{Type: "auth", Data: txt})
		if err != nil {
			pkg.LogErr(err)
		}
		c.WriteMessage(websocket.TextMessage, js)
		c.Close()
		return
	}

	fc := FeedClient{
		WSClientID: uuid.NewString(),
		DataOut:    make(chan string, 32),
		Close:      make(chan struct{}),
		Kill:       make(chan struct{}),
	}
	feedClientsMapWrite(&fc)

	/* LISTEN FOR MESSAGES FROM CONNECTED USER */
	go fc.ListenForMessages(c)

	/* KEEP ALIVE GO ROUTINE SEND "live" EVERY 30 SECONDS TO PREVENT DISCONNECT */
	go fc.RunKeepAlive()

	/* *** DO NOT RUN IN GO ROUTINE *** SEND MESSAGES TO CONNECTED USER */
	fc.SendMessages(c)
}

/* SEND MESSAGES TO CONNECTED USER */
func (fc *FeedClient) SendMessages(c *websocket.Conn) {
	open := true
	for open {
		select {

		case <-fc.Close:
			open = false

		case data := <-fc.DataOut:
			if err := c.WriteMessage(websocket.TextMessage, []byte(data)); err != nil {
				open = false
			}
		}
	}

	/* REMOVE FROM MAP BEFORE TEARDOWN; BROADCASTERS NEVER SEE A DEAD CLIENT */
	feedClientsMapRemove(fc.WSClientID)
	close(fc.Kill)
}

/* LISTEN FOR MESSAGES FROM CONNECTED USER */
func (fc *FeedClient) ListenForMessages(c *websocket.Conn) {
	listen := true
	for listen {
		_, msg, err := c.ReadMessage()
		if err != nil {
			listen = false
		} else if string(msg) == "close" {
			/* USER HAS CLOSED THE CONNECTION */
			fmt.Printf("WSFeedClient_Connect -> c.ReadMessage(): %s\n", string(msg))
			listen = false
		}
	}
	select {
	case fc.Close <- struct{}{}:
	case <-fc.Kill:
	}
}

/* KEEP ALIVE GO ROUTINE SEND "live" EVERY 30 SECONDS TO PREVENT WS DISCONNECT */
func (fc *FeedClient) RunKeepAlive() {

	live := true
	for live {
		select {

		case <-fc.Kill:
			live = false

		case <-time.After(time.Second * 30):
			js, err := json.Marshal(&WSMessage{Type: "live", Data: ""})
			if err != nil {
				pkg.LogErr(err)
			}
			select {
			case fc.DataOut <- string(js):
			case <-fc.Kill:
				live = false
			}
		}
	}
}
