package models

import "time"

type LogEntry struct {
	Level    string         `bson:"level" json:"level"`
	Time     time.Time      `bson:"time" json:"time"`
	PID      int            `bson:"pid" json:"pid"`
	Service  string         `bson:"service" json:"service"`
	Message  string         `bson:"message" json:"message"`
	Metadata map[string]any `bson:"metadata" json:"metadata"`
}
