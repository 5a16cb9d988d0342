package pkg

import (
	"fmt"
	"time"

	phao "github.com/eclipse/paho.mqtt.golang"
)

type CTMSMQTTClient struct {
	MQTTBroker   string
	MQTTUser     string
	MQTTPW       string
	MQTTClientID string
	phao.ClientOptions
	phao.Client
}

func (cmc *CTMSMQTTClient) CTMSMQTTClient_Connect() (err error) {

	cmc.ClientOptions = *phao.NewClientOptions()
	cmc.AddBroker(cmc.MQTTBroker)
	cmc.SetUsername(cmc.MQTTUser)
	cmc.SetPassword(cmc.MQTTPW)
	cmc.SetClientID(cmc.MQTTClientID)
	cmc.SetKeepAlive(time.Second * 60)
	cmc.SetAutoReconnect(true)
	cmc.SetMaxReconnectInterval(time.Second * 60)
	cmc.OnConnect = func(c phao.Client) {
		fmt.Printf("\nCTMSMQTTClient: %s connected...\n", cmc.MQTTClientID)
	}
	cmc.OnConnectionLost = func(c phao.Client, err error) {
		fmt.Printf("\nCTMSMQTTClient: %s connection lost...\n%s\n", cmc.MQTTClientID, err.Error())
	}
	cmc.DefaultPublishHandler = func(c phao.Client, msg phao.Message) {
		fmt.Printf(
			"\nCTMSMQTTClient: %s\nDefault Handler:\nTopic: %s:\nMessage:\n%s\n\n",
			cmc.MQTTClientID,
			msg.Topic(),
			msg.Payload(),
		)
	}

	c := phao.NewClient(&cmc.ClientOptions)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		fmt.Printf("\nCTMSMQTTClient: %s connection failed...\n%s\n", cmc.MQTTClientID, token.Error())
		return token.Error()
	}

	cmc.Client = c
	return err
}

func (cmc *CTMSMQTTClient) CTMSMQTTClient_Disconnect() (err error) {
	cmc.Client.Disconnect(0)
	return err
}

type MQTTSubscription struct {
	Topic   string
	Qos     byte
	Handler phao.MessageHandler
}

func (sub MQTTSubscription) Sub(client CTMSMQTTClient) {

	token := client.Subscribe(sub.Topic, sub.Qos, sub.Handler)
	token.Wait()
	fmt.Printf("\nSubscribed: %s to:\t%s\n\n", client.MQTTClientID, sub.Topic)
}

func (sub MQTTSubscription) UnSub(client CTMSMQTTClient) {

	token := client.Unsubscribe(sub.Topic)
	token.Wait()
	fmt.Printf("\nUnsubscribed: %s from:\t%s\n", client.MQTTClientID, sub.Topic)
}
