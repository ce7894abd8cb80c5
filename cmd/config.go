package main

import "time"

type Config struct {
	BadgerFilepath   string        `env:"BADGER_FILEPATH,required=true"`
	TranscriptDir    string        `env:"TRANSCRIPT_DIR,default=chat_logs"`
	JWTSecret        string        `env:"JWT_SECRET,required=true"`
	TokenTTL         time.Duration `env:"TOKEN_TTL,default=24h"`
	SinkTimeout      time.Duration `env:"SINK_TIMEOUT,required=true"`
	RestartInterval  time.Duration `env:"RESTART_INTERVAL,required=true"`
	ActivityInterval time.Duration `env:"ACTIVITY_INTERVAL,default=30s"`
	LogLevel         string        `env:"LOG_LEVEL,required=true"`
	Host             string        `env:"HOST,default=localhost"`
	Port             int           `env:"PORT,default=8080"`
}
