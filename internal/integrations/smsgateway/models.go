package smsgateway

import (
	"bytes"
	"encoding/json"
)

// StatusEnroute статус принятого к отправке сообщения
const StatusEnroute = "Enroute"

// Message тело POST /api/sms. Имена полей задаются шлюзом
type Message struct {
	SenderID             string `json:"SenderId"`
	UseRecipientTimeZone string `json:"UseRecepientTimeZone"`
	PhoneNumber          string `json:"PhoneNumber"`
	Text                 string `json:"Text"`
}

// statusBody ответ шлюза: объект или массив объектов со статусом
type statusBody struct {
	Status      string `json:"status"`
	StatusUpper string `json:"Status"`
	Error       string `json:"error"`
	Message     string `json:"message"`
}

func (b statusBody) status() string {
	if b.Status != "" {
		return b.Status
	}
	return b.StatusUpper
}

// parseStatus достает статус и текст ошибки из ответа шлюза
func parseStatus(raw []byte) (status string, detail string) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", ""
	}

	var single statusBody
	if err := json.Unmarshal(raw, &single); err == nil {
		return single.status(), firstDetail(single, raw)
	}

	var list []statusBody
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0].status(), firstDetail(list[0], raw)
	}

	return "", string(raw)
}

func firstDetail(b statusBody, raw []byte) string {
	switch {
	case b.Error != "":
		return b.Error
	case b.Message != "":
		return b.Message
	default:
		return string(raw)
	}
}
