package main

import (
	"log"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

type farmingSnapshot struct {
	ReadyToCollect string  `json:"ready_to_collect"`
	MaxAccrual     string  `json:"max_accrual"`
	FarmingRate    string  `json:"farming_rate"`
	ElapsedHours   float64 `json:"elapsed_hours"`
}

func main() {
	url := "ws://localhost:8888/api/v1/farming/ws"

	header := http.Header{}
	header.Add("Authorization", "Telegram query_id=AAHdF6IQAAAAAN0XohDhrOrc&user=%7B%22id%22%3A5060715466%2C%22first_name%22%3A%22Bob%22%2C%22username%22%3A%22tonix_farmer%22%7D&auth_date=1677649900&hash=e2e58...")

	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer conn.Close()

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			log.Println("read error:", err)
			return
		}

		var snapshot farmingSnapshot
		if err := json.Unmarshal(p, &snapshot); err != nil {
			log.Println("json unmarshal error:", err)
			continue
		}

		log.Printf("ready=%s max=%s rate=%s elapsed=%.2fh",
			snapshot.ReadyToCollect,
			snapshot.MaxAccrual,
			snapshot.FarmingRate,
			snapshot.ElapsedHours)
	}
}
