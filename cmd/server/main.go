package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sharetube/relay/internal/app"
)

type configVar[T any] struct {
	envKey       string
	flagKey      string
	defaultValue T
	usage        string
}

func (v configVar[T]) bind() {
	viper.BindEnv(v.flagKey, v.envKey)
	viper.SetDefault(v.flagKey, v.defaultValue)
}

var (
	host = configVar[string]{
		envKey:       "SERVER_HOST",
		flagKey:      "host",
		defaultValue: "0.0.0.0",
		usage:        "Server host",
	}
	port = configVar[int]{
		envKey:       "SERVER_PORT",
		flagKey:      "port",
		defaultValue: 3000,
		usage:        "Server port",
	}
	logLevel = configVar[string]{
		envKey:       "SERVER_LOG_LEVEL",
		flagKey:      "log-level",
		defaultValue: "INFO",
		usage:        "Logging level",
	}
	webRoot = configVar[string]{
		envKey:       "SERVER_WEB_ROOT",
		flagKey:      "web-root",
		defaultValue: "./public",
		usage:        "Directory with the static client",
	}
	readinessGating = configVar[bool]{
		envKey:       "SERVER_READINESS_GATING",
		flagKey:      "readiness-gating",
		defaultValue: false,
		usage:        "Require every member to send READY before playback",
	}
	sendBuffer = configVar[int]{
		envKey:       "SERVER_SEND_BUFFER",
		flagKey:      "send-buffer",
		defaultValue: 64,
		usage:        "Outbound messages queued per connection before dropping",
	}
	messagesPerSecond = configVar[int]{
		envKey:       "SERVER_MESSAGES_PER_SECOND",
		flagKey:      "messages-per-second",
		defaultValue: 0,
		usage:        "Inbound messages allowed per connection per second, 0 to disable",
	}
	playerStore = configVar[string]{
		envKey:       "SERVER_PLAYER_STORE",
		flagKey:      "player-store",
		defaultValue: app.PlayerStoreMemory,
		usage:        "Where room playback state is kept: memory or redis",
	}
	playerTTL = configVar[time.Duration]{
		envKey:       "SERVER_PLAYER_TTL",
		flagKey:      "player-ttl",
		defaultValue: 24 * time.Hour,
		usage:        "Expiration of playback state in redis",
	}
	redisPort = configVar[int]{
		envKey:       "REDIS_PORT",
		flagKey:      "redis-port",
		defaultValue: 6379,
		usage:        "Redis port",
	}
	redisHost = configVar[string]{
		envKey:       "REDIS_HOST",
		flagKey:      "redis-host",
		defaultValue: "localhost",
		usage:        "Redis host",
	}
	redisPassword = configVar[string]{
		envKey:       "REDIS_PASSWORD",
		flagKey:      "redis-password",
		defaultValue: "",
		usage:        "Redis password",
	}
)

func loadAppConfig() *app.AppConfig {
	_ = godotenv.Load()

	pflag.String(host.flagKey, host.defaultValue, host.usage)
	pflag.Int(port.flagKey, port.defaultValue, port.usage)
	pflag.String(logLevel.flagKey, logLevel.defaultValue, logLevel.usage)
	pflag.String(webRoot.flagKey, webRoot.defaultValue, webRoot.usage)
	pflag.Bool(readinessGating.flagKey, readinessGating.defaultValue, readinessGating.usage)
	pflag.Int(sendBuffer.flagKey, sendBuffer.defaultValue, sendBuffer.usage)
	pflag.Int(messagesPerSecond.flagKey, messagesPerSecond.defaultValue, messagesPerSecond.usage)
	pflag.String(playerStore.flagKey, playerStore.defaultValue, playerStore.usage)
	pflag.Duration(playerTTL.flagKey, playerTTL.defaultValue, playerTTL.usage)
	pflag.Int(redisPort.flagKey, redisPort.defaultValue, redisPort.usage)
	pflag.String(redisHost.flagKey, redisHost.defaultValue, redisHost.usage)
	pflag.String(redisPassword.flagKey, redisPassword.defaultValue, redisPassword.usage)
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)

	host.bind()
	// PORT is what most hosting platforms set.
	viper.BindEnv(port.flagKey, port.envKey, "PORT")
	viper.SetDefault(port.flagKey, port.defaultValue)
	logLevel.bind()
	webRoot.bind()
	readinessGating.bind()
	sendBuffer.bind()
	messagesPerSecond.bind()
	playerStore.bind()
	playerTTL.bind()
	redisPort.bind()
	redisHost.bind()
	redisPassword.bind()

	config := &app.AppConfig{
		Host:              viper.GetString(host.flagKey),
		Port:              viper.GetInt(port.flagKey),
		LogLevel:          viper.GetString(logLevel.flagKey),
		WebRoot:           viper.GetString(webRoot.flagKey),
		ReadinessGating:   viper.GetBool(readinessGating.flagKey),
		SendBuffer:        viper.GetInt(sendBuffer.flagKey),
		MessagesPerSecond: viper.GetInt(messagesPerSecond.flagKey),
		PlayerStore:       viper.GetString(playerStore.flagKey),
		PlayerTTL:         viper.GetDuration(playerTTL.flagKey),
		RedisPort:         viper.GetInt(redisPort.flagKey),
		RedisHost:         viper.GetString(redisHost.flagKey),
		RedisPassword:     viper.GetString(redisPassword.flagKey),
	}

	return config
}

func main() {
	ctx := context.Background()

	appConfig := loadAppConfig()

	jsonConfig, _ := json.MarshalIndent(appConfig, "", "  ")
	fmt.Printf("starting app with config: %s\n", jsonConfig)

	log.Fatal(app.Run(ctx, appConfig))
}
