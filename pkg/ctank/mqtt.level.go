package ctank

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	phao "github.com/eclipse/paho.mqtt.golang"

	"github.com/ChiaYing-Chen/Chemical-MANG-SYSTEM-sub001/pkg"
)

/* LEVEL-SENSOR SIGNAL TOPIC; ONE TOPIC PER TANK, WILDCARD SUBSCRIBED */
const MQTT_TOPIC_LEVEL_SIG = "ctms/sig/level"

var levelIngestClient pkg.CTMSMQTTClient

/* PAYLOAD PUBLISHED BY LEVEL SENSORS */
type LevelSignal struct {
	Time    int64   `json:"time"`
	LevelCm float64 `json:"level_cm"`
	SG      float64 `json:"sg,omitempty"`
}

/*
CONNECT THE LEVEL INGEST CLIENT AND SUBSCRIBE ctms/sig/level/+

EACH SIGNAL RUNS THE SAME Calculate -> PERSIST PATH AS MANUAL ENTRY, THEN
FEEDS THE LIVE WEBSOCKET CLIENTS
*/
func MQTTLevelIngest_Connect() (err error) {

	levelIngestClient = pkg.CTMSMQTTClient{
		MQTTBroker:   pkg.Conf.MQTTBroker,
		MQTTUser:     pkg.Conf.MQTTUser,
		MQTTPW:       pkg.Conf.MQTTPW,
		MQTTClientID: fmt.Sprintf("CTMS-LEVEL-INGEST-%d", time.Now().UTC().UnixMilli()),
	}
	if err = levelIngestClient.CTMSMQTTClient_Connect(); err != nil {
		return pkg.LogErr(err)
	}

	MQTTSubscription_LevelSignal().Sub(levelIngestClient)
	return
}

func MQTTLevelIngest_Disconnect() (err error) {
	MQTTSubscription_LevelSignal().UnSub(levelIngestClient)
	return levelIngestClient.CTMSMQTTClient_Disconnect()
}

/* SUBSCRIPTION -> ctms/sig/level/+ */
func MQTTSubscription_LevelSignal() pkg.MQTTSubscription {
	return pkg.MQTTSubscription{

		Topic: fmt.Sprintf("%s/+", MQTT_TOPIC_LEVEL_SIG),
		Qos:   0,

		Handler: func(c phao.Client, msg phao.Message) {

			/* TANK ID IS THE LAST TOPIC SEGMENT */
			segments := strings.Split(msg.Topic(), "/")
			tankID, err := strconv.ParseInt(segments[len(segments)-1], 10, 64)
			if err != nil {
				pkg.LogErr(fmt.Errorf("level signal on %s: bad tank id: %v", msg.Topic(), err))
				return
			}

			sig := LevelSignal{}
			if err := json.Unmarshal(msg.Payload(), &sig); err != nil {
				pkg.LogErr(fmt.Errorf("level signal on %s: %v", msg.Topic(), err))
				return
			}
			if sig.Time == 0 {
				sig.Time = time.Now().UTC().UnixMilli()
			}

			reading := Reading{
				TankID:     tankID,
				Timestamp:  sig.Time,
				LevelCm:    sig.LevelCm,
				SGOverride: sig.SG,
			}
			if err := WriteReading(&reading); err != nil {
				pkg.LogErr(err)
				return
			}

			FeedBroadcastReading(&reading)

			/* DETECTOR RUNS OVER COMMITTED DATA; FRESH UNREVIEWED ALERTS GO TO THE FEED */
			alerts, err := GetTankFluctuations(tankID, 0)
			if err != nil {
				pkg.LogErr(err)
				return
			}
			for i := range alerts {
				if alerts[i].Timestamp == reading.Timestamp && !alerts[i].Dismissed {
					FeedBroadcastAlert(&alerts[i])
				}
			}
		},
	}
}
